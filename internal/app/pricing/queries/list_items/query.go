package list_items

import (
	"context"
	"fmt"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// Request selects the brand to list items for.
type Request struct {
	Brand string
}

// Query handles the list items query use case.
type Query struct {
	catalog contracts.CatalogRepository
}

// NewQuery creates a new list items query.
func NewQuery(catalog contracts.CatalogRepository) *Query {
	return &Query{catalog: catalog}
}

// Execute returns the items of one brand, sorted. An unknown brand is not found.
func (q *Query) Execute(ctx context.Context, req *Request) ([]string, error) {
	if req.Brand == "" {
		return nil, fmt.Errorf("%w: brand is required", domain.ErrMalformedRecord)
	}

	items, err := q.catalog.ListItems(ctx, req.Brand)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: brand %s", domain.ErrScopeNotFound, req.Brand)
	}
	return items, nil
}
