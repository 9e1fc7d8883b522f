package m_pricing_detail

import (
	"cloud.google.com/go/spanner"
)

// Data represents the database model for the pricing_detail table.
type Data struct {
	Brand               string              `spanner:"brand"`
	Item                string              `spanner:"item"`
	DayOfWeek           string              `spanner:"day_of_week"`
	ItemCost            spanner.NullNumeric `spanner:"item_cost"`
	AverageBasketProfit spanner.NullNumeric `spanner:"average_basket_profit"`
	CurrentPriceDemand  spanner.NullFloat64 `spanner:"current_price_demand"`
	CurrentPriceProfit  spanner.NullNumeric `spanner:"current_price_profit"`
}
