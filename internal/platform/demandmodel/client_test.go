package demandmodel

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

func startServer(t *testing.T, method string, scorer Scorer) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	require.NoError(t, RegisterServer(srv, method, scorer))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn, method, time.Second)
}

func vector(newPrice, basePrice float64) domain.FeatureVector {
	var v domain.FeatureVector
	v[0], v[1] = newPrice, basePrice
	for i := 2; i < domain.FeatureCount; i++ {
		v[i] = float64(i) / 100
	}
	return v
}

func TestClient_Predict(t *testing.T) {
	t.Run("features arrive in positional order", func(t *testing.T) {
		var seen domain.FeatureVector
		c := startServer(t, "", ScoreFunc(func(_ context.Context, f domain.FeatureVector) (float64, error) {
			seen = f
			return 42.5, nil
		}))

		got, err := c.Predict(context.Background(), vector(5.5, 4.5))
		require.NoError(t, err)
		assert.Equal(t, 42.5, got)
		assert.Equal(t, vector(5.5, 4.5), seen)
		assert.Equal(t, DefaultMethod, c.Method())
	})

	t.Run("custom method name", func(t *testing.T) {
		c := startServer(t, "acme.Scoring/Demand", ScoreFunc(func(context.Context, domain.FeatureVector) (float64, error) {
			return 1, nil
		}))

		_, err := c.Predict(context.Background(), vector(1, 1))
		require.NoError(t, err)
		assert.Equal(t, "/acme.Scoring/Demand", c.Method())
	})

	t.Run("unavailable is a retryable model failure", func(t *testing.T) {
		c := startServer(t, "", ScoreFunc(func(context.Context, domain.FeatureVector) (float64, error) {
			return 0, status.Error(grpccodes.Unavailable, "warming up")
		}))

		_, err := c.Predict(context.Background(), vector(1, 1))
		assert.ErrorIs(t, err, domain.ErrModelUnavailable)
		assert.True(t, Retryable(err))
	})

	t.Run("scorer errors become internal failures", func(t *testing.T) {
		c := startServer(t, "", ScoreFunc(func(context.Context, domain.FeatureVector) (float64, error) {
			return 0, errors.New("boom")
		}))

		_, err := c.Predict(context.Background(), vector(1, 1))
		assert.ErrorIs(t, err, domain.ErrModelUnavailable)
		assert.False(t, Retryable(err))
	})

	t.Run("negative prediction breaks the contract", func(t *testing.T) {
		c := startServer(t, "", ScoreFunc(func(context.Context, domain.FeatureVector) (float64, error) {
			return -3, nil
		}))

		_, err := c.Predict(context.Background(), vector(1, 1))
		assert.ErrorIs(t, err, domain.ErrModelUnavailable)
	})

	t.Run("unregistered method is unavailable", func(t *testing.T) {
		c := startServer(t, "", LinearElasticity{BaseDemand: 1})
		c.method = "/pricing.demand.v1.DemandModel/Missing"

		_, err := c.Predict(context.Background(), vector(1, 1))
		assert.ErrorIs(t, err, domain.ErrModelUnavailable)
	})
}

func TestPredict_RejectsMalformedRequests(t *testing.T) {
	_, err := decodeFeatures(encodeFeatures(vector(1, 1)))
	require.NoError(t, err)

	short := encodeFeatures(vector(1, 1))
	short.Values = short.Values[:3]
	_, err = predict(context.Background(), DefaultLinearElasticity(), short)
	assert.Equal(t, grpccodes.InvalidArgument, status.Code(err))

	assert.ErrorIs(t, classify(err), domain.ErrMalformedRecord)
}

func TestRegisterServer_InvalidMethod(t *testing.T) {
	err := RegisterServer(grpc.NewServer(), "no-service", DefaultLinearElasticity())
	assert.Error(t, err)
}

func TestLinearElasticity_Score(t *testing.T) {
	m := LinearElasticity{BaseDemand: 100, Elasticity: 1}

	tests := []struct {
		name      string
		newPrice  float64
		basePrice float64
		want      float64
	}{
		{"unchanged price", 5, 5, 100},
		{"ten percent rise", 5.5, 5, 90},
		{"price cut", 4, 5, 120},
		{"clamped at zero", 20, 5, 0},
		{"zero base price", 3, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f domain.FeatureVector
			f[0], f[1] = tt.newPrice, tt.basePrice
			got, err := m.Score(context.Background(), f)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
