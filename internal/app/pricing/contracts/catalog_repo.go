package contracts

import (
	"context"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// CatalogRepository reads current prices and their historical detail.
// It never writes; the current-price tables are owned by the upstream warehouse load.
type CatalogRepository interface {
	// ListBrands returns distinct brands, sorted.
	ListBrands(ctx context.Context) ([]string, error)

	// ListItems returns distinct items for a brand, sorted.
	ListItems(ctx context.Context, brand string) ([]string, error)

	// CurrentRows returns the current rows for one brand and item, Monday first.
	// An unknown day label is a malformed record.
	CurrentRows(ctx context.Context, brand, item string) ([]*domain.PricingRecord, error)

	// JoinHistoricalDetail returns copies of records enriched with cost and baseline fields.
	// A record with no detail row fails with domain.ErrJoinMismatch.
	JoinHistoricalDetail(ctx context.Context, records []*domain.PricingRecord) ([]*domain.PricingRecord, error)
}
