package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/fnb-pricing-service/internal/config"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/demandmodel"
)

var (
	brand = flag.String("brand", "Buffet", "Brand to score")
	item  = flag.String("item", "Burger", "Item to score")
)

// model_probe scores the stored prices of one scope against the configured demand
// model and prints the prediction next to the recorded baseline demand.
func main() {
	flag.Parse()
	ctx := context.Background()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	model, err := demandmodel.Dial(cfg.DemandModel.Target, cfg.DemandModel.Method, cfg.DemandModel.CallTimeout)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer model.Close()

	catalog := repo.NewCatalogRepo(client)
	rows, err := catalog.CurrentRows(ctx, *brand, *item)
	if err != nil {
		log.Fatalf("Failed to read current rows: %v", err)
	}
	rows, err = catalog.JoinHistoricalDetail(ctx, rows)
	if err != nil {
		log.Fatalf("Failed to join detail: %v", err)
	}

	fmt.Printf("Scoring %s/%s via %s %s:\n\n", *brand, *item, cfg.DemandModel.Target, model.Method())
	for _, r := range rows {
		vec, err := domain.AssembleFeatureVector(r)
		if err != nil {
			fmt.Printf("%-9s skipped: %v\n", r.DayOfWeek, err)
			continue
		}
		demand, err := model.Predict(ctx, vec)
		if err != nil {
			log.Fatalf("Predict failed for %s: %v", r.DayOfWeek, err)
		}

		baseline := "n/a"
		if r.CurrentPriceDemand != nil {
			baseline = fmt.Sprintf("%.2f", *r.CurrentPriceDemand)
		}
		fmt.Printf("%-9s new_price=%s predicted=%.2f baseline=%s\n", r.DayOfWeek, r.NewPrice, demand, baseline)
	}
}
