package contracts

import (
	"context"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// DemandModel scores a feature vector into a predicted demand.
// Transport failures wrap domain.ErrModelUnavailable; rejected input wraps domain.ErrMalformedRecord.
type DemandModel interface {
	Predict(ctx context.Context, features domain.FeatureVector) (float64, error)
}
