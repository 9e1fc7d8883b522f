// Package committer applies batches of Spanner mutations atomically.
//
// Repositories build mutations without applying them. Callers collect the mutations
// into a CommitPlan and hand the plan to a Committer, which applies it in a single
// Spanner transaction: either every mutation becomes visible or none does.
//
//	plan := committer.NewPlan()
//	for _, row := range rows {
//	    plan.Add(model.InsertMut(row))
//	}
//	commitTs, err := comm.Apply(ctx, plan)
package committer

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations.
// It collects mutations from multiple sources and applies them atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Applier applies a plan atomically and returns the commit timestamp.
type Applier interface {
	Apply(ctx context.Context, plan *CommitPlan) (time.Time, error)
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction and returns
// the commit timestamp. Once Apply returns, the writes are visible to every later read.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) (time.Time, error) {
	if plan.IsEmpty() {
		return time.Time{}, nil // Nothing to commit
	}

	commitTs, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return commitTs, nil
}
