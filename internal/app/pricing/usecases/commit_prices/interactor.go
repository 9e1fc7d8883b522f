package commit_prices

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/usecases/evaluate_prices"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
)

var tracer = otel.Tracer("github.com/light-bringer/fnb-pricing-service/internal/app/pricing/usecases/commit_prices")

// Request contains the proposed prices and the operator's comment.
type Request struct {
	evaluate_prices.Request
	Comment string
}

// Result describes a committed batch.
type Result struct {
	BatchID     domain.TransactionBatchID
	CommittedAt time.Time
	Evaluation  *domain.Evaluation
}

// Evaluator builds and scores candidate sets.
type Evaluator interface {
	CandidateSet(ctx context.Context, req *evaluate_prices.Request) (domain.CandidateSet, error)
	Evaluate(ctx context.Context, cs domain.CandidateSet) (*domain.Evaluation, error)
}

// Interactor handles the commit prices use case.
type Interactor struct {
	evaluator Evaluator
	txLog     contracts.TransactionLog
	log       *logger.Logger
}

// NewInteractor creates a new commit prices interactor.
func NewInteractor(evaluator Evaluator, txLog contracts.TransactionLog, log *logger.Logger) *Interactor {
	return &Interactor{
		evaluator: evaluator,
		txLog:     txLog,
		log:       log,
	}
}

// Execute re-evaluates the proposal and appends every scored row to the transaction log.
// The stored rows are exactly the rows the returned evaluation was computed from.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "commit_prices.Execute")
	defer span.End()
	span.SetAttributes(attribute.String("brand", req.Brand), attribute.String("item", req.Item))

	result, err := i.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.KindOf(err).String())
		return nil, err
	}

	span.SetAttributes(attribute.String("batch_id", string(result.BatchID)))
	return result, nil
}

func (i *Interactor) execute(ctx context.Context, req *Request) (*Result, error) {
	// 1. Build the candidate set
	cs, err := i.evaluator.CandidateSet(ctx, &req.Request)
	if err != nil {
		return nil, err
	}

	// 2. Score it; nothing is written unless this succeeds
	eval, err := i.evaluator.Evaluate(ctx, cs)
	if err != nil {
		return nil, err
	}

	// 3. Append atomically
	batchID, committedAt, err := i.txLog.Commit(ctx, eval.Rows, req.Comment)
	if err != nil {
		i.log.Error("price commit failed", "brand", req.Brand, "item", req.Item, "error", err)
		return nil, err
	}

	i.log.Info("committed prices",
		"batch_id", batchID,
		"brand", req.Brand,
		"item", req.Item,
		"rows", len(eval.Rows),
		"committed_at", committedAt,
	)

	return &Result{
		BatchID:     batchID,
		CommittedAt: committedAt,
		Evaluation:  eval,
	}, nil
}
