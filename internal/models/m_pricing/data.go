package m_pricing

import (
	"cloud.google.com/go/spanner"
)

// Data represents the database model for the pricing table.
// Every non-key column is nullable so missing values surface as malformed records.
type Data struct {
	Brand     string              `spanner:"brand"`
	Item      string              `spanner:"item"`
	DayOfWeek string              `spanner:"day_of_week"`
	BasePrice spanner.NullNumeric `spanner:"base_price"`
	NewPrice  spanner.NullNumeric `spanner:"new_price"`

	PriceHistDow         spanner.NullFloat64 `spanner:"price_hist_dow"`
	PriceYearDow         spanner.NullFloat64 `spanner:"price_year_dow"`
	PriceMonthDow        spanner.NullFloat64 `spanner:"price_month_dow"`
	PriceChangeHistDow   spanner.NullFloat64 `spanner:"price_change_hist_dow"`
	PriceChangeYearDow   spanner.NullFloat64 `spanner:"price_change_year_dow"`
	PriceChangeMonthDow  spanner.NullFloat64 `spanner:"price_change_month_dow"`
	PriceHistRoll        spanner.NullFloat64 `spanner:"price_hist_roll"`
	PriceYearRoll        spanner.NullFloat64 `spanner:"price_year_roll"`
	PriceMonthRoll       spanner.NullFloat64 `spanner:"price_month_roll"`
	PriceChangeHistRoll  spanner.NullFloat64 `spanner:"price_change_hist_roll"`
	PriceChangeYearRoll  spanner.NullFloat64 `spanner:"price_change_year_roll"`
	PriceChangeMonthRoll spanner.NullFloat64 `spanner:"price_change_month_roll"`
}
