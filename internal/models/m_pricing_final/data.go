package m_pricing_final

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// NumericScale is the number of fractional digits a Spanner NUMERIC keeps.
const NumericScale = spanner.NumericScaleDigits

// Data represents a committed pricing transaction row in the database.
type Data struct {
	BatchID             string  `spanner:"batch_id"`
	Brand               string  `spanner:"brand"`
	Item                string  `spanner:"item"`
	DayOfWeek           string  `spanner:"day_of_week"`
	BasePrice           big.Rat `spanner:"base_price"`
	NewPrice            big.Rat `spanner:"new_price"`
	ItemCost            big.Rat `spanner:"item_cost"`
	AverageBasketProfit big.Rat `spanner:"average_basket_profit"`

	PriceHistDow         float64 `spanner:"price_hist_dow"`
	PriceYearDow         float64 `spanner:"price_year_dow"`
	PriceMonthDow        float64 `spanner:"price_month_dow"`
	PriceChangeHistDow   float64 `spanner:"price_change_hist_dow"`
	PriceChangeYearDow   float64 `spanner:"price_change_year_dow"`
	PriceChangeMonthDow  float64 `spanner:"price_change_month_dow"`
	PriceHistRoll        float64 `spanner:"price_hist_roll"`
	PriceYearRoll        float64 `spanner:"price_year_roll"`
	PriceMonthRoll       float64 `spanner:"price_month_roll"`
	PriceChangeHistRoll  float64 `spanner:"price_change_hist_roll"`
	PriceChangeYearRoll  float64 `spanner:"price_change_year_roll"`
	PriceChangeMonthRoll float64 `spanner:"price_change_month_roll"`

	CurrentPriceDemand float64 `spanner:"current_price_demand"`
	CurrentPriceProfit big.Rat `spanner:"current_price_profit"`
	NewPriceDemand     float64 `spanner:"new_price_demand"`
	NewPriceProfit     big.Rat `spanner:"new_price_profit"`

	Comment   string    `spanner:"comment"`
	Timestamp time.Time `spanner:"timestamp"`
}
