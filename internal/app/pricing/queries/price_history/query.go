package price_history

import (
	"context"
	"iter"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// Request limits the number of rows returned. Zero means the query default.
type Request struct {
	Limit int
}

// Query handles the price history query use case.
type Query struct {
	txLog        contracts.TransactionLog
	defaultLimit int
}

// NewQuery creates a new price history query.
func NewQuery(txLog contracts.TransactionLog, defaultLimit int) *Query {
	return &Query{txLog: txLog, defaultLimit: defaultLimit}
}

// Execute collects committed rows, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.PricingTransaction, error) {
	out := []*domain.PricingTransaction{}
	for tx, err := range q.Stream(ctx, req) {
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}

// Stream yields committed rows lazily, newest first. A negative limit streams everything.
func (q *Query) Stream(ctx context.Context, req *Request) iter.Seq2[*domain.PricingTransaction, error] {
	limit := req.Limit
	if limit == 0 {
		limit = q.defaultLimit
	}
	return q.txLog.History(ctx, limit)
}

// Batch returns the rows of one commit.
func (q *Query) Batch(ctx context.Context, batchID domain.TransactionBatchID) ([]*domain.PricingTransaction, error) {
	return q.txLog.Batch(ctx, batchID)
}
