//go:build integration

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/config"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/demandmodel"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
	"github.com/light-bringer/fnb-pricing-service/internal/services"
	"github.com/light-bringer/fnb-pricing-service/tests/testutil"
)

// Suite holds the wired service and its Spanner client for E2E tests.
type Suite struct {
	*services.ServiceOptions
	Client *spanner.Client
}

// priceSensitive loses 10 units of demand per unit of price above 5.00.
// At the seeded price it reproduces the stored baseline exactly.
var priceSensitive = demandmodel.ScoreFunc(func(_ context.Context, f domain.FeatureVector) (float64, error) {
	return 100 - 10*(f[0]-5), nil
})

func testConfig() *config.Config {
	cfg := &config.Config{ServiceName: "pricing-e2e"}
	cfg.Scoring.Concurrency = 7
	cfg.Scoring.Timeout = 5 * time.Second
	cfg.Retry.MaxAttempts = 2
	cfg.Retry.InitialBackoff = time.Millisecond
	cfg.Retry.MaxBackoff = 5 * time.Millisecond
	cfg.Pricing.HistoryLimit = 100
	return cfg
}

// setupTest wires every component against the emulator and an in-process model.
func setupTest(t *testing.T, scorer demandmodel.Scorer) (*Suite, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client, cleanup := testutil.SetupSpannerTest(t)
	model := testutil.StartDemandModel(t, scorer)

	opts, err := services.Wire(client, model, testutil.NewFixedClock(testutil.FixedTime), logger.NewNop(), testConfig(), domain.MustMoney(1000, 1))
	require.NoError(t, err)

	return &Suite{ServiceOptions: opts, Client: client}, cleanup
}

func (s *Suite) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func (s *Suite) get(t *testing.T, path string) (*httptest.ResponseRecorder, map[string]any) {
	return s.do(t, http.MethodGet, path, nil)
}

func (s *Suite) post(t *testing.T, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	return s.do(t, http.MethodPost, path, body)
}
