package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
)

func TestSetup(t *testing.T) {
	ctx := context.Background()

	t.Run("none still records span context", func(t *testing.T) {
		shutdown, err := Setup(ctx, logger.NewNop(), "pricing-test", ExporterNone)
		require.NoError(t, err)
		defer func() { _ = shutdown(ctx) }()

		_, span := otel.Tracer("test").Start(ctx, "op")
		defer span.End()
		assert.True(t, span.SpanContext().IsValid())
	})

	t.Run("stdout exporter", func(t *testing.T) {
		shutdown, err := Setup(ctx, nil, "pricing-test", ExporterStdout)
		require.NoError(t, err)
		assert.NoError(t, shutdown(ctx))
	})

	t.Run("unknown exporter", func(t *testing.T) {
		_, err := Setup(ctx, nil, "pricing-test", "jaeger")
		assert.Error(t, err)
	})
}
