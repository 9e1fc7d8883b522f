package testutil

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/models/m_pricing_detail"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/seed"
)

// WeekRow returns a complete seed row. Every day of a week gets the same prices
// and baseline so lift numbers are easy to reason about: base 4.50, new 5.00,
// cost 2.00, basket profit 1.00, demand 100 and profit 400.
func WeekRow(brand, item string, day domain.DayOfWeek) seed.Row {
	demand := 100.0
	features := make(map[string]float64, domain.HistoricalFeatureCount)
	for i, name := range domain.FeatureOrder[2:] {
		features[name] = 4.5 + float64(i)/100
	}
	features["price_change_month_roll"] = 0

	return seed.Row{
		Brand:               brand,
		Item:                item,
		DayOfWeek:           day.String(),
		BasePrice:           "4.50",
		NewPrice:            "5.00",
		Features:            features,
		ItemCost:            "2.00",
		AverageBasketProfit: "1.00",
		CurrentPriceDemand:  &demand,
		CurrentPriceProfit:  "400.00",
	}
}

// SeedWeek writes pricing and pricing_detail rows for all seven days.
func SeedWeek(t *testing.T, client *spanner.Client, brand, item string) {
	t.Helper()

	rows := make([]seed.Row, 0, 7)
	for _, day := range domain.AllDays() {
		rows = append(rows, WeekRow(brand, item, day))
	}
	SeedRows(t, client, rows...)
}

// SeedRows writes the given rows.
func SeedRows(t *testing.T, client *spanner.Client, rows ...seed.Row) {
	t.Helper()

	muts, err := (&seed.File{Rows: rows}).Mutations()
	require.NoError(t, err, "invalid seed rows")

	_, err = client.Apply(context.Background(), muts)
	require.NoError(t, err, "failed to seed pricing rows")
}

// DeleteDetail removes the pricing_detail row of one weekday.
func DeleteDetail(t *testing.T, client *spanner.Client, brand, item string, day domain.DayOfWeek) {
	t.Helper()

	mut := spanner.Delete(m_pricing_detail.TableName, spanner.Key{brand, item, day.String()})
	_, err := client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to delete detail row")
}

// ScoredWeek builds scored rows for a seeded week without going through the model.
func ScoredWeek(t *testing.T, brand, item string, demand float64) []domain.ScoredRecord {
	t.Helper()

	rows := make([]domain.ScoredRecord, 0, 7)
	for _, day := range domain.AllDays() {
		f := func(v float64) *float64 { return &v }
		features := domain.HistoricalFeatures{
			PriceHistDow: f(4.5), PriceYearDow: f(4.51), PriceMonthDow: f(4.52),
			PriceChangeHistDow: f(4.53), PriceChangeYearDow: f(4.54), PriceChangeMonthDow: f(4.55),
			PriceHistRoll: f(4.56), PriceYearRoll: f(4.57), PriceMonthRoll: f(4.58),
			PriceChangeHistRoll: f(4.59), PriceChangeYearRoll: f(4.6), PriceChangeMonthRoll: f(0),
		}
		rec := &domain.PricingRecord{
			Brand:               brand,
			Item:                item,
			DayOfWeek:           day,
			BasePrice:           domain.MustMoney(450, 100),
			NewPrice:            domain.MustMoney(500, 100),
			Features:            features,
			ItemCost:            domain.MustMoney(2, 1),
			AverageBasketProfit: domain.MustMoney(1, 1),
			CurrentPriceDemand:  domain.FloatPtr(100),
			CurrentPriceProfit:  domain.MustMoney(400, 1),
		}
		profit, err := rec.NewPrice.Subtract(rec.ItemCost).Add(rec.AverageBasketProfit).MultiplyByFloat(demand)
		require.NoError(t, err)
		rows = append(rows, domain.ScoredRecord{Record: rec, NewPriceDemand: demand, NewPriceProfit: profit})
	}
	return rows
}
