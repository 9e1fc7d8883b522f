package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/queries/current_rows"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/queries/list_items"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/queries/price_history"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/usecases/commit_prices"
	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/usecases/evaluate_prices"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
)

type brandLister interface {
	Execute(ctx context.Context) ([]string, error)
}

type itemLister interface {
	Execute(ctx context.Context, req *list_items.Request) ([]string, error)
}

type rowsReader interface {
	Execute(ctx context.Context, req *current_rows.Request) ([]*domain.PricingRecord, error)
}

type priceEvaluator interface {
	Execute(ctx context.Context, req *evaluate_prices.Request) (*domain.Evaluation, error)
}

type priceCommitter interface {
	Execute(ctx context.Context, req *commit_prices.Request) (*commit_prices.Result, error)
}

type historyReader interface {
	Execute(ctx context.Context, req *price_history.Request) ([]*domain.PricingTransaction, error)
	Batch(ctx context.Context, batchID domain.TransactionBatchID) ([]*domain.PricingTransaction, error)
}

// PricingHandler serves the pricing API.
type PricingHandler struct {
	brands   brandLister
	items    itemLister
	rows     rowsReader
	evaluate priceEvaluator
	commit   priceCommitter
	history  historyReader
	log      *logger.Logger
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(
	brands brandLister,
	items itemLister,
	rows rowsReader,
	evaluate priceEvaluator,
	commit priceCommitter,
	history historyReader,
	log *logger.Logger,
) *PricingHandler {
	return &PricingHandler{
		brands:   brands,
		items:    items,
		rows:     rows,
		evaluate: evaluate,
		commit:   commit,
		history:  history,
		log:      log,
	}
}

// ListBrands handles GET /api/v1/brands.
func (h *PricingHandler) ListBrands(c *gin.Context) {
	brands, err := h.brands.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// ListItems handles GET /api/v1/brands/:brand/items.
func (h *PricingHandler) ListItems(c *gin.Context) {
	items, err := h.items.Execute(c.Request.Context(), &list_items.Request{Brand: c.Param("brand")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": c.Param("brand"), "items": items})
}

// CurrentRows handles GET /api/v1/brands/:brand/items/:item/prices.
func (h *PricingHandler) CurrentRows(c *gin.Context) {
	records, err := h.rows.Execute(c.Request.Context(), &current_rows.Request{
		Brand: c.Param("brand"),
		Item:  c.Param("item"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	rows := make([]PricingRowResponse, 0, len(records))
	for _, r := range records {
		rows = append(rows, toPricingRowResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// Evaluate handles POST /api/v1/brands/:brand/items/:item/evaluations.
func (h *PricingHandler) Evaluate(c *gin.Context) {
	var payload PricesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidPayload, err))
		return
	}

	prices, err := toProposedPrices(payload.Prices)
	if err != nil {
		h.fail(c, err)
		return
	}

	eval, err := h.evaluate.Execute(c.Request.Context(), &evaluate_prices.Request{
		Brand:          c.Param("brand"),
		Item:           c.Param("item"),
		ProposedPrices: prices,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEvaluationResponse(eval))
}

// Commit handles POST /api/v1/brands/:brand/items/:item/commits.
func (h *PricingHandler) Commit(c *gin.Context) {
	var payload CommitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errInvalidPayload, err))
		return
	}

	prices, err := toProposedPrices(payload.Prices)
	if err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.commit.Execute(c.Request.Context(), &commit_prices.Request{
		Request: evaluate_prices.Request{
			Brand:          c.Param("brand"),
			Item:           c.Param("item"),
			ProposedPrices: prices,
		},
		Comment: payload.Comment,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, CommitResponse{
		BatchID:     string(res.BatchID),
		CommittedAt: res.CommittedAt,
		Evaluation:  toEvaluationResponse(res.Evaluation),
	})
}

// ListTransactions handles GET /api/v1/transactions?limit=N.
func (h *PricingHandler) ListTransactions(c *gin.Context) {
	req := &price_history.Request{}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			h.fail(c, fmt.Errorf("%w: limit must be a positive integer", errInvalidPayload))
			return
		}
		req.Limit = limit
	}

	txs, err := h.history.Execute(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": toTransactionResponses(txs)})
}

// GetBatch handles GET /api/v1/transactions/:batch_id.
func (h *PricingHandler) GetBatch(c *gin.Context) {
	txs, err := h.history.Batch(c.Request.Context(), domain.TransactionBatchID(c.Param("batch_id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch_id": c.Param("batch_id"), "transactions": toTransactionResponses(txs)})
}

func (h *PricingHandler) fail(c *gin.Context, err error) {
	status, body := mapDomainErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "code", body.Code, "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}

func toTransactionResponses(txs []*domain.PricingTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}
