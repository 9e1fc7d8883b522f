package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiftAggregator_NewPriceProfit(t *testing.T) {
	agg := NewLiftAggregator()

	t.Run("demand times unit margin plus basket profit", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)
		r.ItemCost = MustMoney(200, 100)
		r.AverageBasketProfit = MustMoney(100, 100)
		r.NewPrice = MustMoney(500, 100)

		profit, err := agg.NewPriceProfit(r, 30)
		require.NoError(t, err)
		assert.True(t, profit.Equals(MustMoney(12000, 100)), "got %s", profit)
	})

	t.Run("missing cost is malformed", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)
		r.ItemCost = nil

		_, err := agg.NewPriceProfit(r, 30)
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})
}

func TestLiftAggregator_Aggregate(t *testing.T) {
	agg := NewLiftAggregator()

	t.Run("demand lift over two rows", func(t *testing.T) {
		mon := newTestRecord("Buffet", "Burger", Monday)
		mon.CurrentPriceDemand = FloatPtr(100)
		tue := newTestRecord("Buffet", "Burger", Tuesday)
		tue.CurrentPriceDemand = FloatPtr(50)

		eval, err := agg.Aggregate([]*PricingRecord{mon, tue}, map[RecordKey]float64{
			mon.Key(): 120,
			tue.Key(): 40,
		})
		require.NoError(t, err)

		assert.Equal(t, 6.7, eval.DemandLiftPct)
		assert.Equal(t, 150.0, eval.CurrentDemand)
		assert.Equal(t, 160.0, eval.NewDemand)
		assert.Len(t, eval.Rows, 2)
	})

	t.Run("profit lift uses derived new price profit", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)
		r.CurrentPriceProfit = MustMoney(100, 1)

		eval, err := agg.Aggregate([]*PricingRecord{r}, map[RecordKey]float64{r.Key(): 30})
		require.NoError(t, err)

		// 30 * (5.00 - 2.00 + 1.00) = 120 against a 100 baseline
		assert.Equal(t, 20.0, eval.ProfitLiftPct)
		assert.True(t, eval.Rows[0].NewPriceProfit.Equals(MustMoney(120, 1)))
		assert.True(t, eval.NewProfit.Equals(MustMoney(120, 1)))
	})

	t.Run("results are correlated by key not by position", func(t *testing.T) {
		mon := newTestRecord("Buffet", "Burger", Monday)
		tue := newTestRecord("Buffet", "Burger", Tuesday)

		eval, err := agg.Aggregate([]*PricingRecord{mon, tue}, map[RecordKey]float64{
			tue.Key(): 10,
			mon.Key(): 90,
		})
		require.NoError(t, err)

		assert.Equal(t, Monday, eval.Rows[0].Record.DayOfWeek)
		assert.Equal(t, 90.0, eval.Rows[0].NewPriceDemand)
		assert.Equal(t, 10.0, eval.Rows[1].NewPriceDemand)
	})

	t.Run("negative lift rounds half away from zero", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)
		r.CurrentPriceDemand = FloatPtr(2000)

		// (1999 - 2000) / 2000 * 100 = -0.05 -> -0.1
		eval, err := agg.Aggregate([]*PricingRecord{r}, map[RecordKey]float64{r.Key(): 1999})
		require.NoError(t, err)
		assert.Equal(t, -0.1, eval.DemandLiftPct)
	})

	t.Run("lifts are finite with one decimal", func(t *testing.T) {
		records := make([]*PricingRecord, 0, 7)
		demand := make(map[RecordKey]float64)
		for i, day := range AllDays() {
			r := newTestRecord("Buffet", "Burger", day)
			r.CurrentPriceDemand = FloatPtr(float64(37 + i*3))
			records = append(records, r)
			demand[r.Key()] = float64(41+i*2) + 0.333
		}

		eval, err := agg.Aggregate(records, demand)
		require.NoError(t, err)

		for _, v := range []float64{eval.DemandLiftPct, eval.ProfitLiftPct} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			assert.InDelta(t, math.Round(v*10)/10, v, 1e-9)
		}
	})

	t.Run("zero demand baseline is undefined lift", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)
		r.CurrentPriceDemand = FloatPtr(0)

		eval, err := agg.Aggregate([]*PricingRecord{r}, map[RecordKey]float64{r.Key(): 12})
		assert.ErrorIs(t, err, ErrUndefinedLift)
		assert.Nil(t, eval)
	})

	t.Run("zero profit baseline is undefined lift", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)
		r.CurrentPriceProfit = Zero()

		_, err := agg.Aggregate([]*PricingRecord{r}, map[RecordKey]float64{r.Key(): 12})
		assert.ErrorIs(t, err, ErrUndefinedLift)
	})

	t.Run("missing prediction fails the whole set", func(t *testing.T) {
		mon := newTestRecord("Buffet", "Burger", Monday)
		tue := newTestRecord("Buffet", "Burger", Tuesday)

		_, err := agg.Aggregate([]*PricingRecord{mon, tue}, map[RecordKey]float64{mon.Key(): 10})
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("missing baseline is malformed", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)
		r.CurrentPriceProfit = nil

		_, err := agg.Aggregate([]*PricingRecord{r}, map[RecordKey]float64{r.Key(): 10})
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("non-finite prediction is a model failure", func(t *testing.T) {
		r := newTestRecord("Buffet", "Burger", Monday)

		_, err := agg.Aggregate([]*PricingRecord{r}, map[RecordKey]float64{r.Key(): math.Inf(1)})
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("empty set is malformed", func(t *testing.T) {
		_, err := agg.Aggregate(nil, nil)
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})
}
