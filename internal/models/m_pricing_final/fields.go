package m_pricing_final

// Table name constant
const TableName = "pricing_final"

// TimestampIndex orders the log newest first.
const TimestampIndex = "pricing_final_by_timestamp"

// Field name constants for type-safe database access
const (
	BatchID             = "batch_id"
	Brand               = "brand"
	Item                = "item"
	DayOfWeek           = "day_of_week"
	BasePrice           = "base_price"
	NewPrice            = "new_price"
	ItemCost            = "item_cost"
	AverageBasketProfit = "average_basket_profit"

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

	CurrentPriceDemand = "current_price_demand"
	CurrentPriceProfit = "current_price_profit"
	NewPriceDemand     = "new_price_demand"
	NewPriceProfit     = "new_price_profit"

	Comment   = "comment"
	Timestamp = "timestamp"
)
