package demandmodel

import (
	"context"
	"math"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// LinearElasticity is a development scorer: demand falls linearly as new_price rises
// above base_price, nudged by the recent rolling price change.
//
//	demand = BaseDemand * (1 - Elasticity * (new - base) / base) * (1 - TrendWeight * price_change_month_roll)
//
// Results are clamped at zero. A zero base_price yields BaseDemand.
type LinearElasticity struct {
	BaseDemand  float64
	Elasticity  float64
	TrendWeight float64
}

// DefaultLinearElasticity returns the stub model used by cmd/demand_stub.
func DefaultLinearElasticity() LinearElasticity {
	return LinearElasticity{BaseDemand: 100, Elasticity: 1.2, TrendWeight: 0.5}
}

// Score implements Scorer.
func (m LinearElasticity) Score(_ context.Context, f domain.FeatureVector) (float64, error) {
	newPrice, basePrice := f[0], f[1]
	trend := f[domain.FeatureCount-1]

	demand := m.BaseDemand
	if basePrice > 0 {
		demand *= 1 - m.Elasticity*(newPrice-basePrice)/basePrice
	}
	demand *= 1 - m.TrendWeight*trend

	return math.Max(0, demand), nil
}
