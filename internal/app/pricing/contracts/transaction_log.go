package contracts

import (
	"context"
	"iter"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// TransactionLog is the append-only audit log of committed price changes.
type TransactionLog interface {
	// InsertMut creates a mutation appending one scored row to a batch.
	InsertMut(batchID domain.TransactionBatchID, row domain.ScoredRecord, comment string) (*spanner.Mutation, error)

	// Commit appends every row in one atomic write sharing a commit timestamp.
	// On failure nothing is visible and the error wraps domain.ErrCommitFailure.
	Commit(ctx context.Context, rows []domain.ScoredRecord, comment string) (domain.TransactionBatchID, time.Time, error)

	// History yields committed rows newest first. Each range issues a fresh query.
	// limit <= 0 means no limit.
	History(ctx context.Context, limit int) iter.Seq2[*domain.PricingTransaction, error]

	// Batch returns the rows of one commit, or domain.ErrBatchNotFound.
	Batch(ctx context.Context, batchID domain.TransactionBatchID) ([]*domain.PricingTransaction, error)
}
