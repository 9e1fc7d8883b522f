package repo

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/models/m_pricing"
	"github.com/light-bringer/fnb-pricing-service/internal/models/m_pricing_detail"
	"github.com/light-bringer/fnb-pricing-service/internal/pkg/query"
)

// CatalogRepo implements CatalogRepository for Spanner.
type CatalogRepo struct {
	client      *spanner.Client
	model       *m_pricing.Model
	detailModel *m_pricing_detail.Model
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(client *spanner.Client) contracts.CatalogRepository {
	return &CatalogRepo{
		client:      client,
		model:       m_pricing.NewModel(),
		detailModel: m_pricing_detail.NewModel(),
	}
}

// ListBrands returns distinct brands, sorted.
func (r *CatalogRepo) ListBrands(ctx context.Context) ([]string, error) {
	stmt := query.From(m_pricing.TableName).
		Select(m_pricing.Brand).
		Distinct().
		OrderBy(m_pricing.Brand, query.Asc).
		Build()

	return r.queryStrings(ctx, stmt)
}

// ListItems returns distinct items for a brand, sorted.
func (r *CatalogRepo) ListItems(ctx context.Context, brand string) ([]string, error) {
	stmt := query.From(m_pricing.TableName).
		Select(m_pricing.Item).
		Distinct().
		Where(query.Eq(m_pricing.Brand, brand)).
		OrderBy(m_pricing.Item, query.Asc).
		Build()

	return r.queryStrings(ctx, stmt)
}

// CurrentRows returns the current rows for one brand and item, Monday first.
func (r *CatalogRepo) CurrentRows(ctx context.Context, brand, item string) ([]*domain.PricingRecord, error) {
	stmt := query.From(m_pricing.TableName).
		Select(r.model.ReadColumns()...).
		Where(query.Eq(m_pricing.Brand, brand)).
		Where(query.Eq(m_pricing.Item, item)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var records []*domain.PricingRecord
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate pricing rows: %w", err)
		}

		var data m_pricing.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse pricing row: %w", err)
		}

		record, err := pricingDataToDomain(&data)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrScopeNotFound, brand, item)
	}

	// Labels are stored as text; sort on the parsed weekday.
	sort.Slice(records, func(i, j int) bool {
		return records[i].DayOfWeek < records[j].DayOfWeek
	})

	return records, nil
}

// JoinHistoricalDetail enriches records with cost and baseline fields.
// Detail rows are matched on the parsed weekday, so "Mon" and "Monday" join.
func (r *CatalogRepo) JoinHistoricalDetail(ctx context.Context, records []*domain.PricingRecord) ([]*domain.PricingRecord, error) {
	type scope struct{ brand, item string }

	details := make(map[domain.RecordKey]domain.HistoricalDetail)
	loaded := make(map[scope]bool)

	for _, rec := range records {
		s := scope{brand: rec.Brand, item: rec.Item}
		if loaded[s] {
			continue
		}
		if err := r.loadDetail(ctx, s.brand, s.item, details); err != nil {
			return nil, err
		}
		loaded[s] = true
	}

	return joinDetail(records, details)
}

func (r *CatalogRepo) loadDetail(ctx context.Context, brand, item string, into map[domain.RecordKey]domain.HistoricalDetail) error {
	stmt := query.From(m_pricing_detail.TableName).
		Select(r.detailModel.ReadColumns()...).
		Where(query.Eq(m_pricing_detail.Brand, brand)).
		Where(query.Eq(m_pricing_detail.Item, item)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to iterate pricing detail: %w", err)
		}

		var data m_pricing_detail.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse pricing detail: %w", err)
		}

		detail, err := detailDataToDomain(&data)
		if err != nil {
			return err
		}
		into[detail.Key] = detail
	}
}

func (r *CatalogRepo) queryStrings(ctx context.Context, stmt spanner.Statement) ([]string, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	values := []string{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return values, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate %q: %w", stmt.SQL, err)
		}

		var v string
		if err := row.Column(0, &v); err != nil {
			return nil, fmt.Errorf("failed to parse column: %w", err)
		}
		values = append(values, v)
	}
}

// joinDetail returns enriched copies in input order.
func joinDetail(records []*domain.PricingRecord, details map[domain.RecordKey]domain.HistoricalDetail) ([]*domain.PricingRecord, error) {
	out := make([]*domain.PricingRecord, 0, len(records))
	for _, rec := range records {
		detail, ok := details[rec.Key()]
		if !ok {
			return nil, fmt.Errorf("%w: no historical detail for %s", domain.ErrJoinMismatch, rec.Key())
		}
		out = append(out, rec.WithDetail(detail))
	}
	return out, nil
}

// pricingDataToDomain converts a pricing row to a domain record.
// Null columns stay nil; validation happens when the record is scored.
func pricingDataToDomain(data *m_pricing.Data) (*domain.PricingRecord, error) {
	day, err := domain.ParseDayOfWeek(data.DayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("pricing row %s/%s: %w", data.Brand, data.Item, err)
	}

	return &domain.PricingRecord{
		Brand:     data.Brand,
		Item:      data.Item,
		DayOfWeek: day,
		BasePrice: moneyFromNull(data.BasePrice),
		NewPrice:  moneyFromNull(data.NewPrice),
		Features: domain.HistoricalFeatures{
			PriceHistDow:         floatFromNull(data.PriceHistDow),
			PriceYearDow:         floatFromNull(data.PriceYearDow),
			PriceMonthDow:        floatFromNull(data.PriceMonthDow),
			PriceChangeHistDow:   floatFromNull(data.PriceChangeHistDow),
			PriceChangeYearDow:   floatFromNull(data.PriceChangeYearDow),
			PriceChangeMonthDow:  floatFromNull(data.PriceChangeMonthDow),
			PriceHistRoll:        floatFromNull(data.PriceHistRoll),
			PriceYearRoll:        floatFromNull(data.PriceYearRoll),
			PriceMonthRoll:       floatFromNull(data.PriceMonthRoll),
			PriceChangeHistRoll:  floatFromNull(data.PriceChangeHistRoll),
			PriceChangeYearRoll:  floatFromNull(data.PriceChangeYearRoll),
			PriceChangeMonthRoll: floatFromNull(data.PriceChangeMonthRoll),
		},
	}, nil
}

func detailDataToDomain(data *m_pricing_detail.Data) (domain.HistoricalDetail, error) {
	day, err := domain.ParseDayOfWeek(data.DayOfWeek)
	if err != nil {
		return domain.HistoricalDetail{}, fmt.Errorf("pricing detail %s/%s: %w", data.Brand, data.Item, err)
	}

	return domain.HistoricalDetail{
		Key:                 domain.RecordKey{Brand: data.Brand, Item: data.Item, DayOfWeek: day},
		ItemCost:            moneyFromNull(data.ItemCost),
		AverageBasketProfit: moneyFromNull(data.AverageBasketProfit),
		CurrentPriceDemand:  floatFromNull(data.CurrentPriceDemand),
		CurrentPriceProfit:  moneyFromNull(data.CurrentPriceProfit),
	}, nil
}

func moneyFromNull(n spanner.NullNumeric) *domain.Money {
	if !n.Valid {
		return nil
	}
	return domain.NewMoneyFromRat(&n.Numeric)
}

func floatFromNull(n spanner.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return domain.FloatPtr(n.Float64)
}
