package m_pricing

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the pricing table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns returns every column in Data order.
func (m *Model) ReadColumns() []string {
	cols := []string{Brand, Item, DayOfWeek, BasePrice, NewPrice}
	return append(cols, FeatureColumns...)
}

// InsertOrUpdateMut creates a Spanner mutation that upserts a current-price row.
// The service only reads this table; seeding and tests write through here.
func (m *Model) InsertOrUpdateMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		m.ReadColumns(),
		[]interface{}{
			data.Brand,
			data.Item,
			data.DayOfWeek,
			data.BasePrice,
			data.NewPrice,
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
		},
	)
}
