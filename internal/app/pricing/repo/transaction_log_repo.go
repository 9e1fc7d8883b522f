package repo

import (
	"context"
	"fmt"
	"iter"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/models/m_pricing_final"
	"github.com/light-bringer/fnb-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/fnb-pricing-service/internal/pkg/query"
)

// TransactionLogRepo implements TransactionLog for Spanner.
type TransactionLogRepo struct {
	client  *spanner.Client
	applier committer.Applier
	model   *m_pricing_final.Model
	newID   func() string
}

// NewTransactionLogRepo creates a new TransactionLogRepo.
func NewTransactionLogRepo(client *spanner.Client, applier committer.Applier) contracts.TransactionLog {
	return &TransactionLogRepo{
		client:  client,
		applier: applier,
		model:   m_pricing_final.NewModel(),
		newID:   func() string { return uuid.New().String() },
	}
}

// InsertMut creates a mutation appending one scored row to a batch.
func (r *TransactionLogRepo) InsertMut(batchID domain.TransactionBatchID, row domain.ScoredRecord, comment string) (*spanner.Mutation, error) {
	data, err := scoredToData(batchID, row, comment)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// Commit appends every row under a fresh batch ID in a single Apply.
func (r *TransactionLogRepo) Commit(ctx context.Context, rows []domain.ScoredRecord, comment string) (domain.TransactionBatchID, time.Time, error) {
	if len(rows) == 0 {
		return "", time.Time{}, fmt.Errorf("%w: %w: nothing to commit", domain.ErrCommitFailure, domain.ErrMalformedRecord)
	}

	batchID := domain.TransactionBatchID(r.newID())

	plan := committer.NewPlan()
	for _, row := range rows {
		mut, err := r.InsertMut(batchID, row, comment)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("%w: %w", domain.ErrCommitFailure, err)
		}
		plan.Add(mut)
	}

	commitTs, err := r.applier.Apply(ctx, plan)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: batch %s: %w", domain.ErrCommitFailure, batchID, err)
	}

	return batchID, commitTs, nil
}

// History yields committed rows newest first, ties broken by brand, item and weekday.
func (r *TransactionLogRepo) History(ctx context.Context, limit int) iter.Seq2[*domain.PricingTransaction, error] {
	b := query.From(m_pricing_final.TableName).
		Select(r.model.ReadColumns()...).
		OrderBy(m_pricing_final.Timestamp, query.Desc).
		ThenBy(m_pricing_final.Brand, query.Asc).
		ThenBy(m_pricing_final.Item, query.Asc).
		ThenBy(m_pricing_final.DayOfWeek, query.Asc)
	if limit > 0 {
		b = b.Limit(int64(limit))
	}

	return r.stream(ctx, b.Build())
}

// Batch returns the rows of one commit ordered by brand, item and weekday.
func (r *TransactionLogRepo) Batch(ctx context.Context, batchID domain.TransactionBatchID) ([]*domain.PricingTransaction, error) {
	stmt := query.From(m_pricing_final.TableName).
		Select(r.model.ReadColumns()...).
		Where(query.Eq(m_pricing_final.BatchID, string(batchID))).
		OrderBy(m_pricing_final.Brand, query.Asc).
		ThenBy(m_pricing_final.Item, query.Asc).
		ThenBy(m_pricing_final.DayOfWeek, query.Asc).
		Build()

	var out []*domain.PricingTransaction
	for tx, err := range r.stream(ctx, stmt) {
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batchID)
	}
	return out, nil
}

// stream runs stmt lazily; every range starts a new read-only transaction.
func (r *TransactionLogRepo) stream(ctx context.Context, stmt spanner.Statement) iter.Seq2[*domain.PricingTransaction, error] {
	return func(yield func(*domain.PricingTransaction, error) bool) {
		rows := r.client.Single().Query(ctx, stmt)
		defer rows.Stop()

		for {
			row, err := rows.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("failed to iterate transactions: %w", err))
				return
			}

			var data m_pricing_final.Data
			if err := row.ToStruct(&data); err != nil {
				yield(nil, fmt.Errorf("failed to parse transaction: %w", err))
				return
			}

			tx, err := dataToTransaction(&data)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(tx, nil) {
				return
			}
		}
	}
}

// scoredToData converts a scored row to a pricing_final row.
// Every field must be present; a committed row is a complete snapshot.
func scoredToData(batchID domain.TransactionBatchID, row domain.ScoredRecord, comment string) (*m_pricing_final.Data, error) {
	rec := row.Record
	if rec == nil {
		return nil, fmt.Errorf("%w: scored row has no record", domain.ErrMalformedRecord)
	}
	if err := rec.ValidateBaseline(); err != nil {
		return nil, err
	}
	if rec.BasePrice == nil || rec.NewPrice == nil || row.NewPriceProfit == nil {
		return nil, fmt.Errorf("%w: %s: prices and new_price_profit are required", domain.ErrMalformedRecord, rec.Key())
	}

	// Commit goes through the same assembler as scoring so a missing feature fails identically.
	features, err := domain.AssembleFeatureVector(rec)
	if err != nil {
		return nil, err
	}
	hist := features[2:]

	return &m_pricing_final.Data{
		BatchID:             string(batchID),
		Brand:               rec.Brand,
		Item:                rec.Item,
		DayOfWeek:           rec.DayOfWeek.String(),
		BasePrice:           *numeric(rec.BasePrice),
		NewPrice:            *numeric(rec.NewPrice),
		ItemCost:            *numeric(rec.ItemCost),
		AverageBasketProfit: *numeric(rec.AverageBasketProfit),

		PriceHistDow:         hist[0],
		PriceYearDow:         hist[1],
		PriceMonthDow:        hist[2],
		PriceChangeHistDow:   hist[3],
		PriceChangeYearDow:   hist[4],
		PriceChangeMonthDow:  hist[5],
		PriceHistRoll:        hist[6],
		PriceYearRoll:        hist[7],
		PriceMonthRoll:       hist[8],
		PriceChangeHistRoll:  hist[9],
		PriceChangeYearRoll:  hist[10],
		PriceChangeMonthRoll: hist[11],

		CurrentPriceDemand: *rec.CurrentPriceDemand,
		CurrentPriceProfit: *numeric(rec.CurrentPriceProfit),
		NewPriceDemand:     row.NewPriceDemand,
		NewPriceProfit:     *numeric(row.NewPriceProfit),

		Comment: comment,
	}, nil
}

// numeric rounds to the NUMERIC column scale.
func numeric(m *domain.Money) *big.Rat {
	return m.Quantize(m_pricing_final.NumericScale).Rat()
}

func dataToTransaction(data *m_pricing_final.Data) (*domain.PricingTransaction, error) {
	day, err := domain.ParseDayOfWeek(data.DayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", data.BatchID, err)
	}

	rec := &domain.PricingRecord{
		Brand:               data.Brand,
		Item:                data.Item,
		DayOfWeek:           day,
		BasePrice:           domain.NewMoneyFromRat(&data.BasePrice),
		NewPrice:            domain.NewMoneyFromRat(&data.NewPrice),
		ItemCost:            domain.NewMoneyFromRat(&data.ItemCost),
		AverageBasketProfit: domain.NewMoneyFromRat(&data.AverageBasketProfit),
		Features: domain.HistoricalFeatures{
			PriceHistDow:         domain.FloatPtr(data.PriceHistDow),
			PriceYearDow:         domain.FloatPtr(data.PriceYearDow),
			PriceMonthDow:        domain.FloatPtr(data.PriceMonthDow),
			PriceChangeHistDow:   domain.FloatPtr(data.PriceChangeHistDow),
			PriceChangeYearDow:   domain.FloatPtr(data.PriceChangeYearDow),
			PriceChangeMonthDow:  domain.FloatPtr(data.PriceChangeMonthDow),
			PriceHistRoll:        domain.FloatPtr(data.PriceHistRoll),
			PriceYearRoll:        domain.FloatPtr(data.PriceYearRoll),
			PriceMonthRoll:       domain.FloatPtr(data.PriceMonthRoll),
			PriceChangeHistRoll:  domain.FloatPtr(data.PriceChangeHistRoll),
			PriceChangeYearRoll:  domain.FloatPtr(data.PriceChangeYearRoll),
			PriceChangeMonthRoll: domain.FloatPtr(data.PriceChangeMonthRoll),
		},
		CurrentPriceDemand: domain.FloatPtr(data.CurrentPriceDemand),
		CurrentPriceProfit: domain.NewMoneyFromRat(&data.CurrentPriceProfit),
	}

	return &domain.PricingTransaction{
		BatchID: domain.TransactionBatchID(data.BatchID),
		ScoredRecord: domain.ScoredRecord{
			Record:         rec,
			NewPriceDemand: data.NewPriceDemand,
			NewPriceProfit: domain.NewMoneyFromRat(&data.NewPriceProfit),
		},
		Comment:   data.Comment,
		Timestamp: data.Timestamp,
	}, nil
}
