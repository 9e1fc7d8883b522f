package current_rows

import (
	"context"
	"fmt"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// Request selects one brand and item.
type Request struct {
	Brand string
	Item  string
}

// Query handles the current rows query use case.
type Query struct {
	catalog contracts.CatalogRepository
}

// NewQuery creates a new current rows query.
func NewQuery(catalog contracts.CatalogRepository) *Query {
	return &Query{catalog: catalog}
}

// Execute returns the editable rows for one brand and item, Monday first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.PricingRecord, error) {
	if req.Brand == "" || req.Item == "" {
		return nil, fmt.Errorf("%w: brand and item are required", domain.ErrMalformedRecord)
	}
	return q.catalog.CurrentRows(ctx, req.Brand, req.Item)
}
