package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleFeatureVector(t *testing.T) {
	t.Run("positional order is new_price, base_price, then historical features", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)

		v, err := AssembleFeatureVector(r)
		require.NoError(t, err)

		assert.Equal(t, FeatureVector{
			5.00, 4.50,
			4.40, 4.45, 4.50,
			0.01, 0.02, 0.03,
			4.41, 4.46, 4.51,
			0.04, 0.05, 0.06,
		}, v)
	})

	t.Run("identical input yields bit-identical vectors", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)

		v1, err := AssembleFeatureVector(r)
		require.NoError(t, err)
		v2, err := AssembleFeatureVector(r.Clone())
		require.NoError(t, err)

		for i := range v1 {
			assert.Equal(t, math.Float64bits(v1[i]), math.Float64bits(v2[i]), "position %d (%s)", i, FeatureOrder[i])
		}
	})

	t.Run("different proposed prices give different vectors", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)

		v1, _ := AssembleFeatureVector(r)
		v2, _ := AssembleFeatureVector(r.WithNewPrice(MustMoney(600, 100)))

		assert.NotEqual(t, v1, v2)
		assert.Equal(t, v1[2:], v2[2:])
	})

	t.Run("missing historical feature is malformed", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)
		r.Features.PriceChangeYearRoll = nil

		_, err := AssembleFeatureVector(r)
		assert.ErrorIs(t, err, ErrMalformedRecord)
		assert.Contains(t, err.Error(), "price_change_year_roll")
	})

	t.Run("missing new price is malformed", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)
		r.NewPrice = nil

		_, err := AssembleFeatureVector(r)
		assert.ErrorIs(t, err, ErrMalformedRecord)
		assert.Contains(t, err.Error(), "new_price")
	})

	t.Run("non-finite feature is malformed", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)
		r.Features.PriceHistDow = FloatPtr(math.NaN())

		_, err := AssembleFeatureVector(r)
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("nil record is malformed", func(t *testing.T) {
		_, err := AssembleFeatureVector(nil)
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})
}

func TestFeatureOrder(t *testing.T) {
	assert.Len(t, FeatureOrder, 14)
	assert.Equal(t, "new_price", FeatureOrder[0])
	assert.Equal(t, "base_price", FeatureOrder[1])
	assert.Equal(t, "price_change_month_roll", FeatureOrder[FeatureCount-1])
}
