package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/config"
	"github.com/light-bringer/fnb-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/demandmodel"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
)

func TestWire(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{ServiceName: "pricing-test"}
	cfg.Scoring.Concurrency = 2
	cfg.Pricing.HistoryLimit = 10

	model := demandmodel.NewClient(nil, "", time.Second)
	clk := clock.NewMockClock(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	t.Run("builds router", func(t *testing.T) {
		opts, err := Wire(nil, model, clk, logger.NewNop(), cfg, domain.MustMoney(1000, 1))
		require.NoError(t, err)
		assert.NotNil(t, opts.EvaluatePrices)
		assert.NotNil(t, opts.CommitPrices)
		assert.NotNil(t, opts.PriceHistory)

		w := httptest.NewRecorder()
		opts.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("requires ceiling", func(t *testing.T) {
		_, err := Wire(nil, model, clk, logger.NewNop(), cfg, nil)
		assert.Error(t, err)
	})
}
