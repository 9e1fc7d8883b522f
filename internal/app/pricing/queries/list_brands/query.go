package list_brands

import (
	"context"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/contracts"
)

// Query handles the list brands query use case.
type Query struct {
	catalog contracts.CatalogRepository
}

// NewQuery creates a new list brands query.
func NewQuery(catalog contracts.CatalogRepository) *Query {
	return &Query{catalog: catalog}
}

// Execute returns every brand with current prices, sorted.
func (q *Query) Execute(ctx context.Context) ([]string, error) {
	return q.catalog.ListBrands(ctx)
}
