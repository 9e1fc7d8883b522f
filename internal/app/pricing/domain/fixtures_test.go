package domain

// newTestRecord returns a fully populated, joined record for brand/item/day.
func newTestRecord(brand, item string, day DayOfWeek) *PricingRecord {
	return &PricingRecord{
		Brand:               brand,
		Item:                item,
		DayOfWeek:           day,
		BasePrice:           MustMoney(450, 100),
		NewPrice:            MustMoney(500, 100),
		ItemCost:            MustMoney(200, 100),
		AverageBasketProfit: MustMoney(100, 100),
		Features: HistoricalFeatures{
			PriceHistDow:         FloatPtr(4.40),
			PriceYearDow:         FloatPtr(4.45),
			PriceMonthDow:        FloatPtr(4.50),
			PriceChangeHistDow:   FloatPtr(0.01),
			PriceChangeYearDow:   FloatPtr(0.02),
			PriceChangeMonthDow:  FloatPtr(0.03),
			PriceHistRoll:        FloatPtr(4.41),
			PriceYearRoll:        FloatPtr(4.46),
			PriceMonthRoll:       FloatPtr(4.51),
			PriceChangeHistRoll:  FloatPtr(0.04),
			PriceChangeYearRoll:  FloatPtr(0.05),
			PriceChangeMonthRoll: FloatPtr(0.06),
		},
		CurrentPriceDemand: FloatPtr(100),
		CurrentPriceProfit: MustMoney(35000, 100),
	}
}
