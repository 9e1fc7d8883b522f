package m_pricing

// Field name constants for the pricing table (current prices and historical features).
const (
	TableName = "pricing"

	Brand     = "brand"
	Item      = "item"
	DayOfWeek = "day_of_week"
	BasePrice = "base_price"
	NewPrice  = "new_price"

	PriceHistDow         = "price_hist_dow"
	PriceYearDow         = "price_year_dow"
	PriceMonthDow        = "price_month_dow"
	PriceChangeHistDow   = "price_change_hist_dow"
	PriceChangeYearDow   = "price_change_year_dow"
	PriceChangeMonthDow  = "price_change_month_dow"
	PriceHistRoll        = "price_hist_roll"
	PriceYearRoll        = "price_year_roll"
	PriceMonthRoll       = "price_month_roll"
	PriceChangeHistRoll  = "price_change_hist_roll"
	PriceChangeYearRoll  = "price_change_year_roll"
	PriceChangeMonthRoll = "price_change_month_roll"
)

// FeatureColumns lists the historical feature columns in model order.
var FeatureColumns = []string{
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
}
