package m_pricing_detail

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the pricing_detail table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns returns the column names for reading detail rows.
func (m *Model) ReadColumns() []string {
	return []string{
		Brand,
		Item,
		DayOfWeek,
		ItemCost,
		AverageBasketProfit,
		CurrentPriceDemand,
		CurrentPriceProfit,
	}
}

// InsertOrUpdateMut creates a Spanner mutation that upserts a detail row.
func (m *Model) InsertOrUpdateMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		m.ReadColumns(),
		[]interface{}{
			data.Brand,
			data.Item,
			data.DayOfWeek,
			data.ItemCost,
			data.AverageBasketProfit,
			data.CurrentPriceDemand,
			data.CurrentPriceProfit,
		},
	)
}
