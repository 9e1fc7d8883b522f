package domain

import (
	"fmt"
	"math"
)

const (
	// HistoricalFeatureCount is the number of historical aggregates per record.
	HistoricalFeatureCount = 12

	// FeatureCount is the number of positional arguments the demand model takes.
	FeatureCount = HistoricalFeatureCount + 2
)

// FeatureOrder is the positional calling convention of the demand model.
// The scoring function has no field names, so this order must not drift.
var FeatureOrder = [FeatureCount]string{
	"new_price",
	"base_price",
	"price_hist_dow",
	"price_year_dow",
	"price_month_dow",
	"price_change_hist_dow",
	"price_change_year_dow",
	"price_change_month_dow",
	"price_hist_roll",
	"price_year_roll",
	"price_month_roll",
	"price_change_hist_roll",
	"price_change_year_roll",
	"price_change_month_roll",
}

// FeatureVector is the fixed-order numeric input to the demand model.
type FeatureVector [FeatureCount]float64

// Slice returns the vector as a slice in model order.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// AssembleFeatureVector builds the model input for r: new_price, base_price,
// then the twelve historical features in FeatureOrder.
func AssembleFeatureVector(r *PricingRecord) (FeatureVector, error) {
	var v FeatureVector
	if r == nil {
		return v, fmt.Errorf("%w: nil record", ErrMalformedRecord)
	}

	prices := [2]*Money{r.NewPrice, r.BasePrice}
	for i, p := range prices {
		if p == nil {
			return v, fmt.Errorf("%w: %s: %s is missing", ErrMalformedRecord, r.Key(), FeatureOrder[i])
		}
		v[i] = p.Float64()
	}

	for i, f := range r.Features.ordered() {
		name := FeatureOrder[i+2]
		if f == nil {
			return v, fmt.Errorf("%w: %s: %s is missing", ErrMalformedRecord, r.Key(), name)
		}
		if math.IsNaN(*f) || math.IsInf(*f, 0) {
			return v, fmt.Errorf("%w: %s: %s is not a finite number", ErrMalformedRecord, r.Key(), name)
		}
		v[i+2] = *f
	}

	return v, nil
}
