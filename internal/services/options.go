package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/queries/current_rows"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/queries/list_brands"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/queries/list_items"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/queries/price_history"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/usecases/commit_prices"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/usecases/evaluate_prices"
	"github.com/light-bringer/fnb-pricing-service/internal/config"
	"github.com/light-bringer/fnb-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/fnb-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/fnb-pricing-service/internal/pkg/retry"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/demandmodel"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
	httptransport "github.com/light-bringer/fnb-pricing-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	DemandModel   *demandmodel.Client

	EvaluatePrices *evaluate_prices.Interactor
	CommitPrices   *commit_prices.Interactor
	PriceHistory   *price_history.Query

	PricingHandler *httptransport.PricingHandler
	Router         *gin.Engine
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, log *logger.Logger) (*ServiceOptions, error) {
	ceiling, err := domain.ParseMoney(cfg.Pricing.PriceCeiling)
	if err != nil {
		return nil, fmt.Errorf("invalid price ceiling: %w", err)
	}

	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Connect to the demand model
	model, err := demandmodel.Dial(cfg.DemandModel.Target, cfg.DemandModel.Method, cfg.DemandModel.CallTimeout)
	if err != nil {
		spannerClient.Close()
		return nil, err
	}

	opts, err := Wire(spannerClient, model, clock.NewRealClock(), log, cfg, ceiling)
	if err != nil {
		spannerClient.Close()
		_ = model.Close()
		return nil, err
	}
	return opts, nil
}

// Wire builds repositories, use cases and transport on top of already opened clients.
// Integration tests call it directly with an emulator client and an in-process model.
func Wire(
	spannerClient *spanner.Client,
	model *demandmodel.Client,
	clk clock.Clock,
	log *logger.Logger,
	cfg *config.Config,
	ceiling *domain.Money,
) (*ServiceOptions, error) {
	if ceiling == nil {
		return nil, fmt.Errorf("price ceiling is required")
	}

	// Infrastructure and repositories
	comm := committer.NewCommitter(spannerClient)
	catalog := repo.NewCatalogRepo(spannerClient)
	txLog := repo.NewTransactionLogRepo(spannerClient, comm)

	// Commands
	evaluate := evaluate_prices.NewInteractor(catalog, model, clk, log, evaluate_prices.Options{
		PriceCeiling:   ceiling,
		Concurrency:    cfg.Scoring.Concurrency,
		ScoringTimeout: cfg.Scoring.Timeout,
		Retry: retry.Policy{
			MaxAttempts:    cfg.Retry.MaxAttempts,
			InitialBackoff: cfg.Retry.InitialBackoff,
			MaxBackoff:     cfg.Retry.MaxBackoff,
		},
		Retryable: demandmodel.Retryable,
	})
	commit := commit_prices.NewInteractor(evaluate, txLog, log)

	// Queries
	listBrands := list_brands.NewQuery(catalog)
	listItems := list_items.NewQuery(catalog)
	currentRows := current_rows.NewQuery(catalog)
	history := price_history.NewQuery(txLog, cfg.Pricing.HistoryLimit)

	handler := httptransport.NewPricingHandler(listBrands, listItems, currentRows, evaluate, commit, history, log)

	return &ServiceOptions{
		SpannerClient:  spannerClient,
		DemandModel:    model,
		EvaluatePrices: evaluate,
		CommitPrices:   commit,
		PriceHistory:   history,
		PricingHandler: handler,
		Router:         httptransport.NewRouter(handler, log, cfg.ServiceName),
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.DemandModel != nil {
		_ = s.DemandModel.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
