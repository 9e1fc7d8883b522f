package domain

import (
	"fmt"
	"math"
)

// RecordKey identifies a pricing row. Model results are correlated back to rows by this key.
type RecordKey struct {
	Brand     string
	Item      string
	DayOfWeek DayOfWeek
}

func (k RecordKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Brand, k.Item, k.DayOfWeek)
}

// HistoricalFeatures holds the price and price-change aggregates over three windows
// (all history, same weekday this year, same weekday this month) in two modes
// (exact weekday match and rolling average). A nil field is a missing value.
type HistoricalFeatures struct {
	PriceHistDow         *float64
	PriceYearDow         *float64
	PriceMonthDow        *float64
	PriceChangeHistDow   *float64
	PriceChangeYearDow   *float64
	PriceChangeMonthDow  *float64
	PriceHistRoll        *float64
	PriceYearRoll        *float64
	PriceMonthRoll       *float64
	PriceChangeHistRoll  *float64
	PriceChangeYearRoll  *float64
	PriceChangeMonthRoll *float64
}

// ordered returns the features in model order. See FeatureOrder.
func (f HistoricalFeatures) ordered() [HistoricalFeatureCount]*float64 {
	return [HistoricalFeatureCount]*float64{
		f.PriceHistDow,
		f.PriceYearDow,
		f.PriceMonthDow,
		f.PriceChangeHistDow,
		f.PriceChangeYearDow,
		f.PriceChangeMonthDow,
		f.PriceHistRoll,
		f.PriceYearRoll,
		f.PriceMonthRoll,
		f.PriceChangeHistRoll,
		f.PriceChangeYearRoll,
		f.PriceChangeMonthRoll,
	}
}

func (f HistoricalFeatures) clone() HistoricalFeatures {
	return HistoricalFeatures{
		PriceHistDow:         cloneFloat(f.PriceHistDow),
		PriceYearDow:         cloneFloat(f.PriceYearDow),
		PriceMonthDow:        cloneFloat(f.PriceMonthDow),
		PriceChangeHistDow:   cloneFloat(f.PriceChangeHistDow),
		PriceChangeYearDow:   cloneFloat(f.PriceChangeYearDow),
		PriceChangeMonthDow:  cloneFloat(f.PriceChangeMonthDow),
		PriceHistRoll:        cloneFloat(f.PriceHistRoll),
		PriceYearRoll:        cloneFloat(f.PriceYearRoll),
		PriceMonthRoll:       cloneFloat(f.PriceMonthRoll),
		PriceChangeHistRoll:  cloneFloat(f.PriceChangeHistRoll),
		PriceChangeYearRoll:  cloneFloat(f.PriceChangeYearRoll),
		PriceChangeMonthRoll: cloneFloat(f.PriceChangeMonthRoll),
	}
}

// PricingRecord is one row per (brand, item, day_of_week).
// Cost and baseline fields are nil until joined with historical detail.
type PricingRecord struct {
	Brand     string
	Item      string
	DayOfWeek DayOfWeek

	BasePrice           *Money
	NewPrice            *Money
	ItemCost            *Money
	AverageBasketProfit *Money

	Features HistoricalFeatures

	CurrentPriceDemand *float64
	CurrentPriceProfit *Money
}

// HistoricalDetail is the per-key cost and baseline row joined onto a PricingRecord.
type HistoricalDetail struct {
	Key                 RecordKey
	ItemCost            *Money
	AverageBasketProfit *Money
	CurrentPriceDemand  *float64
	CurrentPriceProfit  *Money
}

// Key returns the record identity.
func (r *PricingRecord) Key() RecordKey {
	return RecordKey{Brand: r.Brand, Item: r.Item, DayOfWeek: r.DayOfWeek}
}

// Clone returns a deep copy.
func (r *PricingRecord) Clone() *PricingRecord {
	return &PricingRecord{
		Brand:               r.Brand,
		Item:                r.Item,
		DayOfWeek:           r.DayOfWeek,
		BasePrice:           cloneMoney(r.BasePrice),
		NewPrice:            cloneMoney(r.NewPrice),
		ItemCost:            cloneMoney(r.ItemCost),
		AverageBasketProfit: cloneMoney(r.AverageBasketProfit),
		Features:            r.Features.clone(),
		CurrentPriceDemand:  cloneFloat(r.CurrentPriceDemand),
		CurrentPriceProfit:  cloneMoney(r.CurrentPriceProfit),
	}
}

// WithNewPrice returns a copy carrying the proposed price.
func (r *PricingRecord) WithNewPrice(price *Money) *PricingRecord {
	out := r.Clone()
	out.NewPrice = cloneMoney(price)
	return out
}

// WithDetail returns a copy enriched with cost and baseline fields.
func (r *PricingRecord) WithDetail(d HistoricalDetail) *PricingRecord {
	out := r.Clone()
	out.ItemCost = cloneMoney(d.ItemCost)
	out.AverageBasketProfit = cloneMoney(d.AverageBasketProfit)
	out.CurrentPriceDemand = cloneFloat(d.CurrentPriceDemand)
	out.CurrentPriceProfit = cloneMoney(d.CurrentPriceProfit)
	return out
}

// ValidateProposal checks identity and the operator-edited price.
// new_price must be within [0, ceiling] and expressed in whole cents.
func (r *PricingRecord) ValidateProposal(ceiling *Money) error {
	if r.Brand == "" || r.Item == "" {
		return fmt.Errorf("%w: brand and item are required", ErrMalformedRecord)
	}
	if !r.DayOfWeek.Valid() {
		return fmt.Errorf("%w: %s: invalid day_of_week", ErrMalformedRecord, r.Key())
	}
	if r.BasePrice == nil {
		return fmt.Errorf("%w: %s: base_price is missing", ErrMalformedRecord, r.Key())
	}
	if r.BasePrice.IsNegative() {
		return fmt.Errorf("%w: %s: base_price must not be negative", ErrMalformedRecord, r.Key())
	}
	if r.NewPrice == nil {
		return fmt.Errorf("%w: %s: new_price is missing", ErrMalformedRecord, r.Key())
	}
	if r.NewPrice.IsNegative() {
		return fmt.Errorf("%w: %s: new_price must not be negative", ErrMalformedRecord, r.Key())
	}
	if ceiling != nil && r.NewPrice.GreaterThan(ceiling) {
		return fmt.Errorf("%w: %s: new_price %s exceeds ceiling %s", ErrMalformedRecord, r.Key(), r.NewPrice, ceiling)
	}
	if !r.NewPrice.HasAtMostDecimals(2) {
		return fmt.Errorf("%w: %s: new_price must be in whole cents", ErrMalformedRecord, r.Key())
	}
	return nil
}

// ValidateBaseline checks the fields joined from historical detail.
func (r *PricingRecord) ValidateBaseline() error {
	checks := []struct {
		name    string
		missing bool
	}{
		{"item_cost", r.ItemCost == nil},
		{"average_basket_profit", r.AverageBasketProfit == nil},
		{"current_price_demand", r.CurrentPriceDemand == nil},
		{"current_price_profit", r.CurrentPriceProfit == nil},
	}
	for _, c := range checks {
		if c.missing {
			return fmt.Errorf("%w: %s: %s is missing", ErrMalformedRecord, r.Key(), c.name)
		}
	}
	if r.ItemCost.IsNegative() || r.AverageBasketProfit.IsNegative() {
		return fmt.Errorf("%w: %s: item_cost and average_basket_profit must not be negative", ErrMalformedRecord, r.Key())
	}
	if d := *r.CurrentPriceDemand; math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return fmt.Errorf("%w: %s: current_price_demand must be a non-negative number", ErrMalformedRecord, r.Key())
	}
	return nil
}

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 {
	return &v
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneMoney(m *Money) *Money {
	if m == nil {
		return nil
	}
	return m.Copy()
}
