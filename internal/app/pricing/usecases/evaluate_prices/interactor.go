package evaluate_prices

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/fnb-pricing-service/internal/pkg/retry"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
)

var tracer = otel.Tracer("github.com/light-bringer/fnb-pricing-service/internal/app/pricing/usecases/evaluate_prices")

// Request contains the proposed prices for one brand and item.
// Days not listed keep their stored new_price.
type Request struct {
	Brand          string
	Item           string
	ProposedPrices map[domain.DayOfWeek]*domain.Money
}

// Options tunes the scoring phase.
type Options struct {
	PriceCeiling   *domain.Money
	Concurrency    int
	ScoringTimeout time.Duration
	Retry          retry.Policy
	// Retryable reports whether a model error is transient. Nil means never retry.
	Retryable func(error) bool
}

// Interactor handles the evaluate prices use case.
type Interactor struct {
	catalog    contracts.CatalogRepository
	model      contracts.DemandModel
	aggregator *domain.LiftAggregator
	clock      clock.Clock
	log        *logger.Logger
	opts       Options
}

// NewInteractor creates a new evaluate prices interactor.
func NewInteractor(
	catalog contracts.CatalogRepository,
	model contracts.DemandModel,
	clock clock.Clock,
	log *logger.Logger,
	opts Options,
) *Interactor {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Interactor{
		catalog:    catalog,
		model:      model,
		aggregator: domain.NewLiftAggregator(),
		clock:      clock,
		log:        log,
		opts:       opts,
	}
}

// Execute loads the current scope, applies the proposed prices and evaluates the result.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Evaluation, error) {
	cs, err := i.CandidateSet(ctx, req)
	if err != nil {
		return nil, err
	}
	return i.Evaluate(ctx, cs)
}

// CandidateSet builds the immutable candidate set for req.
func (i *Interactor) CandidateSet(ctx context.Context, req *Request) (domain.CandidateSet, error) {
	if req.Brand == "" || req.Item == "" {
		return domain.CandidateSet{}, fmt.Errorf("%w: brand and item are required", domain.ErrMalformedRecord)
	}

	rows, err := i.catalog.CurrentRows(ctx, req.Brand, req.Item)
	if err != nil {
		return domain.CandidateSet{}, err
	}

	cs, err := domain.NewCandidateSet(req.Brand, req.Item, rows)
	if err != nil {
		return domain.CandidateSet{}, err
	}
	return cs.WithProposedPrices(req.ProposedPrices)
}

// Evaluate scores every row of cs and aggregates the lift.
// Either every row is scored or an error is returned; there is no partial result.
func (i *Interactor) Evaluate(ctx context.Context, cs domain.CandidateSet) (*domain.Evaluation, error) {
	ctx, span := tracer.Start(ctx, "evaluate_prices.Evaluate")
	defer span.End()
	span.SetAttributes(
		attribute.String("brand", cs.Brand()),
		attribute.String("item", cs.Item()),
		attribute.Int("rows", cs.Len()),
	)

	eval, err := i.evaluate(ctx, cs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.KindOf(err).String())
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("demand_lift_pct", eval.DemandLiftPct),
		attribute.Float64("profit_lift_pct", eval.ProfitLiftPct),
	)
	return eval, nil
}

func (i *Interactor) evaluate(ctx context.Context, cs domain.CandidateSet) (*domain.Evaluation, error) {
	started := i.clock.Now()

	// 1. Validate proposals
	if err := cs.Validate(i.opts.PriceCeiling); err != nil {
		return nil, err
	}

	// 2. Join costs and baselines
	records, err := i.catalog.JoinHistoricalDetail(ctx, cs.Records())
	if err != nil {
		return nil, err
	}

	// 3. Assemble every vector before any model call
	vectors := make(map[domain.RecordKey]domain.FeatureVector, len(records))
	for _, r := range records {
		if err := r.ValidateBaseline(); err != nil {
			return nil, err
		}
		v, err := domain.AssembleFeatureVector(r)
		if err != nil {
			return nil, err
		}
		vectors[r.Key()] = v
	}

	// 4. Score concurrently
	demand, err := i.score(ctx, vectors)
	if err != nil {
		return nil, err
	}

	// 5. Aggregate after the barrier
	eval, err := i.aggregator.Aggregate(records, demand)
	if err != nil {
		return nil, err
	}
	eval.EvaluatedAt = i.clock.Now()

	i.log.Info("evaluated prices",
		"brand", cs.Brand(),
		"item", cs.Item(),
		"rows", len(records),
		"demand_lift_pct", eval.DemandLiftPct,
		"profit_lift_pct", eval.ProfitLiftPct,
		"elapsed", eval.EvaluatedAt.Sub(started),
	)
	return eval, nil
}

// score calls the model once per key. Results are keyed, never positional.
func (i *Interactor) score(ctx context.Context, vectors map[domain.RecordKey]domain.FeatureVector) (map[domain.RecordKey]float64, error) {
	ctx, span := tracer.Start(ctx, "evaluate_prices.score")
	defer span.End()

	if i.opts.ScoringTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.opts.ScoringTimeout)
		defer cancel()
	}

	var mu sync.Mutex
	demand := make(map[domain.RecordKey]float64, len(vectors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.opts.Concurrency)

	for key, vec := range vectors {
		g.Go(func() error {
			d, err := retry.Do(gctx, i.opts.Retry,
				func(ctx context.Context) (float64, error) {
					return i.model.Predict(ctx, vec)
				},
				i.opts.Retryable,
				func(attempt uint, err error, wait time.Duration) {
					i.log.Warn("demand model call failed, retrying",
						"key", key.String(), "attempt", attempt, "wait", wait, "error", err)
				},
			)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}

			mu.Lock()
			demand[key] = d
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Deadline and cancellation surface unwrapped from the retry loop.
		if domain.KindOf(err) == domain.KindUnknown {
			err = fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
		}
		return nil, err
	}
	return demand, nil
}
