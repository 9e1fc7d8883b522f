package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/fnb-pricing-service/internal/platform/demandmodel"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
)

var (
	port        = flag.String("port", envOr("DEMAND_STUB_PORT", "9091"), "Port to listen on")
	method      = flag.String("method", demandmodel.DefaultMethod, "Full gRPC method name to serve")
	baseDemand  = flag.Float64("base-demand", demandmodel.DefaultLinearElasticity().BaseDemand, "Demand at base_price")
	elasticity  = flag.Float64("elasticity", demandmodel.DefaultLinearElasticity().Elasticity, "Relative demand change per relative price change")
	trendWeight = flag.Float64("trend-weight", demandmodel.DefaultLinearElasticity().TrendWeight, "Weight of price_change_month_roll")
)

// demand_stub serves a linear elasticity model for local development.
func main() {
	flag.Parse()

	log, err := logger.New(envOr("LOG_MODE", "development"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	scorer := demandmodel.LinearElasticity{BaseDemand: *baseDemand, Elasticity: *elasticity, TrendWeight: *trendWeight}

	grpcServer := grpc.NewServer()
	if err := demandmodel.RegisterServer(grpcServer, *method, scorer); err != nil {
		log.Fatal("failed to register demand model", "error", err)
	}
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+*port)
	if err != nil {
		log.Fatal("failed to listen", "port", *port, "error", err)
	}

	go func() {
		log.Info("demand model stub listening", "port", *port, "method", demandmodel.NormalizeMethod(*method))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("gRPC server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	grpcServer.GracefulStop()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
