package m_pricing_detail

// Field name constants for the pricing_detail table.
const (
	TableName = "pricing_detail"

	Brand               = "brand"
	Item                = "item"
	DayOfWeek           = "day_of_week"
	ItemCost            = "item_cost"
	AverageBasketProfit = "average_basket_profit"
	CurrentPriceDemand  = "current_price_demand"
	CurrentPriceProfit  = "current_price_profit"
)
