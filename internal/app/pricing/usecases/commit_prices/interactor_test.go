package commit_prices

import (
	"context"
	"fmt"
	"iter"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/usecases/evaluate_prices"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
)

type fakeEvaluator struct {
	cs      domain.CandidateSet
	eval    *domain.Evaluation
	err     error
	request *evaluate_prices.Request
}

func (f *fakeEvaluator) CandidateSet(_ context.Context, req *evaluate_prices.Request) (domain.CandidateSet, error) {
	f.request = req
	return f.cs, nil
}

func (f *fakeEvaluator) Evaluate(context.Context, domain.CandidateSet) (*domain.Evaluation, error) {
	return f.eval, f.err
}

type fakeLog struct {
	committed [][]domain.ScoredRecord
	comment   string
	err       error
}

func (f *fakeLog) InsertMut(domain.TransactionBatchID, domain.ScoredRecord, string) (*spanner.Mutation, error) {
	return nil, nil
}

func (f *fakeLog) Commit(_ context.Context, rows []domain.ScoredRecord, comment string) (domain.TransactionBatchID, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	f.committed = append(f.committed, rows)
	f.comment = comment
	return "batch-1", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), nil
}

func (f *fakeLog) History(context.Context, int) iter.Seq2[*domain.PricingTransaction, error] {
	return func(func(*domain.PricingTransaction, error) bool) {}
}

func (f *fakeLog) Batch(context.Context, domain.TransactionBatchID) ([]*domain.PricingTransaction, error) {
	return nil, domain.ErrBatchNotFound
}

func evaluation() *domain.Evaluation {
	rec := &domain.PricingRecord{Brand: "Buffet", Item: "Burger", DayOfWeek: domain.Friday}
	return &domain.Evaluation{
		Brand:         "Buffet",
		Item:          "Burger",
		DemandLiftPct: 6.7,
		Rows:          []domain.ScoredRecord{{Record: rec, NewPriceDemand: 30, NewPriceProfit: domain.MustMoney(120, 1)}},
	}
}

func TestInteractor_Execute(t *testing.T) {
	req := &Request{
		Request: evaluate_prices.Request{Brand: "Buffet", Item: "Burger"},
		Comment: "friday promo",
	}

	t.Run("commits the evaluated rows", func(t *testing.T) {
		eval := evaluation()
		ev := &fakeEvaluator{eval: eval}
		txLog := &fakeLog{}

		res, err := NewInteractor(ev, txLog, logger.NewNop()).Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, domain.TransactionBatchID("batch-1"), res.BatchID)
		assert.Same(t, eval, res.Evaluation)
		assert.Equal(t, "Buffet", ev.request.Brand)
		require.Len(t, txLog.committed, 1)
		assert.Equal(t, eval.Rows, txLog.committed[0])
		assert.Equal(t, "friday promo", txLog.comment)
	})

	t.Run("failed evaluation writes nothing", func(t *testing.T) {
		ev := &fakeEvaluator{err: fmt.Errorf("%w: zero baseline", domain.ErrUndefinedLift)}
		txLog := &fakeLog{}

		_, err := NewInteractor(ev, txLog, logger.NewNop()).Execute(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrUndefinedLift)
		assert.Empty(t, txLog.committed)
	})

	t.Run("commit failure is reported", func(t *testing.T) {
		ev := &fakeEvaluator{eval: evaluation()}
		txLog := &fakeLog{err: fmt.Errorf("%w: aborted", domain.ErrCommitFailure)}

		res, err := NewInteractor(ev, txLog, logger.NewNop()).Execute(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrCommitFailure)
		assert.Nil(t, res)
	})
}
