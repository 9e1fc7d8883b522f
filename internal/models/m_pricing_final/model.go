package m_pricing_final

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe database operations for the transaction log.
type Model struct{}

// NewModel creates a new transaction log model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for appending a transaction row.
// The timestamp column is always the commit timestamp, shared by the whole batch.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		m.ReadColumns(),
		[]interface{}{
			data.BatchID,
			data.Brand,
			data.Item,
			data.DayOfWeek,
			data.BasePrice,
			data.NewPrice,
			data.ItemCost,
			data.AverageBasketProfit,
			data.PriceHistDow,
			data.PriceYearDow,
			data.PriceMonthDow,
			data.PriceChangeHistDow,
			data.PriceChangeYearDow,
			data.PriceChangeMonthDow,
			data.PriceHistRoll,
			data.PriceYearRoll,
			data.PriceMonthRoll,
			data.PriceChangeHistRoll,
			data.PriceChangeYearRoll,
			data.PriceChangeMonthRoll,
			data.CurrentPriceDemand,
			data.CurrentPriceProfit,
			data.NewPriceDemand,
			data.NewPriceProfit,
			data.Comment,
			spanner.CommitTimestamp,
		},
	)
}

// ReadColumns returns the column names for reading transactions, in Data order.
func (m *Model) ReadColumns() []string {
	return []string{
		BatchID,
		Brand,
		Item,
		DayOfWeek,
		BasePrice,
		NewPrice,
		ItemCost,
		AverageBasketProfit,
		PriceHistDow,
		PriceYearDow,
		PriceMonthDow,
		PriceChangeHistDow,
		PriceChangeYearDow,
		PriceChangeMonthDow,
		PriceHistRoll,
		PriceYearRoll,
		PriceMonthRoll,
		PriceChangeHistRoll,
		PriceChangeYearRoll,
		PriceChangeMonthRoll,
		CurrentPriceDemand,
		CurrentPriceProfit,
		NewPriceDemand,
		NewPriceProfit,
		Comment,
		Timestamp,
	}
}
