package domain

import "time"

// TransactionBatchID identifies the rows written by one commit.
type TransactionBatchID string

// PricingTransaction is an immutable committed price change.
// Timestamp is the commit timestamp shared by every row of the batch.
type PricingTransaction struct {
	BatchID TransactionBatchID
	ScoredRecord
	Comment   string
	Timestamp time.Time
}
