package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/queries/price_history"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/fnb-pricing-service/internal/config"
	"github.com/light-bringer/fnb-pricing-service/internal/pkg/committer"
)

var (
	limit = flag.Int("limit", 20, "Number of rows to print, newest first; 0 prints everything")
	batch = flag.String("batch", "", "Print only this batch")
)

// price_history prints the committed pricing transaction log.
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

	history := price_history.NewQuery(repo.NewTransactionLogRepo(client, committer.NewCommitter(client)), cfg.Pricing.HistoryLimit)

	if *batch != "" {
		txs, err := history.Batch(ctx, domain.TransactionBatchID(*batch))
		if err != nil {
			log.Fatalf("Failed to read batch: %v", err)
		}
		for i, tx := range txs {
			printTransaction(i+1, tx)
		}
		return
	}

	n := *limit
	if n == 0 {
		n = -1
	}

	fmt.Println("Committed pricing transactions:")
	count := 0
	for tx, err := range history.Stream(ctx, &price_history.Request{Limit: n}) {
		if err != nil {
			log.Fatalf("Failed to iterate: %v", err)
		}
		count++
		printTransaction(count, tx)
	}

	if count == 0 {
		fmt.Println("No transactions found!")
	} else {
		fmt.Printf("\nTotal: %d rows\n", count)
	}
}

func printTransaction(n int, tx *domain.PricingTransaction) {
	r := tx.Record
	fmt.Printf("%d. %s %s/%s %-9s new_price=%s demand=%.2f profit=%s batch=%s comment=%q\n",
		n, tx.Timestamp.Format("2006-01-02 15:04:05"), r.Brand, r.Item, r.DayOfWeek,
		r.NewPrice, tx.NewPriceDemand, tx.NewPriceProfit, tx.BatchID, tx.Comment)
}
