package testutil

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/light-bringer/fnb-pricing-service/internal/platform/demandmodel"
)

// StartDemandModel serves scorer over an in-memory listener and returns a connected client.
func StartDemandModel(t *testing.T, scorer demandmodel.Scorer) *demandmodel.Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	require.NoError(t, demandmodel.RegisterServer(srv, demandmodel.DefaultMethod, scorer))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///demand-model",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return demandmodel.NewClient(conn, demandmodel.DefaultMethod, 2*time.Second)
}
