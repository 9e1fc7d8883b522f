package domain

import (
	"fmt"
	"math/big"
	"time"
)

// ScoredRecord is a pricing row with its predicted demand and profit at the proposed price.
type ScoredRecord struct {
	Record         *PricingRecord
	NewPriceDemand float64
	NewPriceProfit *Money
}

// Evaluation is the result of scoring a candidate set.
type Evaluation struct {
	Brand string
	Item  string

	DemandLiftPct float64
	ProfitLiftPct float64

	CurrentDemand float64
	NewDemand     float64
	CurrentProfit *Money
	NewProfit     *Money

	Rows []ScoredRecord

	// EvaluatedAt is set by the caller once scoring finishes.
	EvaluatedAt time.Time
}

// LiftAggregator combines predicted and baseline demand/profit across all rows of a
// candidate set into two percentage metrics.
//
// Sums and ratios are computed on big.Rat so the one-decimal rounding is exact.
type LiftAggregator struct{}

// NewLiftAggregator creates a new LiftAggregator instance.
func NewLiftAggregator() *LiftAggregator {
	return &LiftAggregator{}
}

// NewPriceProfit computes demand * (new_price - item_cost + average_basket_profit).
func (a *LiftAggregator) NewPriceProfit(r *PricingRecord, demand float64) (*Money, error) {
	if r.NewPrice == nil || r.ItemCost == nil || r.AverageBasketProfit == nil {
		return nil, fmt.Errorf("%w: %s: new_price, item_cost and average_basket_profit are required for profit", ErrMalformedRecord, r.Key())
	}
	margin := r.NewPrice.Subtract(r.ItemCost).Add(r.AverageBasketProfit)
	profit, err := margin.MultiplyByFloat(demand)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, r.Key(), err)
	}
	return profit, nil
}

// Aggregate computes the lift metrics over every record. demand must hold a prediction
// for every record key; a missing one means scoring did not finish for the whole set.
func (a *LiftAggregator) Aggregate(records []*PricingRecord, demand map[RecordKey]float64) (*Evaluation, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: candidate set is empty", ErrMalformedRecord)
	}

	sumCurrentDemand := new(big.Rat)
	sumNewDemand := new(big.Rat)
	sumCurrentProfit := new(big.Rat)
	sumNewProfit := new(big.Rat)

	rows := make([]ScoredRecord, 0, len(records))
	for _, r := range records {
		if err := r.ValidateBaseline(); err != nil {
			return nil, err
		}
		d, ok := demand[r.Key()]
		if !ok {
			return nil, fmt.Errorf("%w: %s: no demand prediction", ErrMalformedRecord, r.Key())
		}
		newDemand, err := exactRat(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: new_price_demand: %v", ErrModelUnavailable, r.Key(), err)
		}
		currentDemand, err := exactRat(*r.CurrentPriceDemand)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: current_price_demand: %v", ErrMalformedRecord, r.Key(), err)
		}
		profit, err := a.NewPriceProfit(r, d)
		if err != nil {
			return nil, err
		}

		sumCurrentDemand.Add(sumCurrentDemand, currentDemand)
		sumNewDemand.Add(sumNewDemand, newDemand)
		sumCurrentProfit.Add(sumCurrentProfit, r.CurrentPriceProfit.rat)
		sumNewProfit.Add(sumNewProfit, profit.rat)

		rows = append(rows, ScoredRecord{
			Record:         r.Clone(),
			NewPriceDemand: d,
			NewPriceProfit: profit,
		})
	}

	demandLift, err := liftPct(sumNewDemand, sumCurrentDemand)
	if err != nil {
		return nil, fmt.Errorf("%w: current_price_demand sums to zero", err)
	}
	profitLift, err := liftPct(sumNewProfit, sumCurrentProfit)
	if err != nil {
		return nil, fmt.Errorf("%w: current_price_profit sums to zero", err)
	}

	currentDemand, _ := sumCurrentDemand.Float64()
	newDemand, _ := sumNewDemand.Float64()

	return &Evaluation{
		Brand:         records[0].Brand,
		Item:          records[0].Item,
		DemandLiftPct: demandLift,
		ProfitLiftPct: profitLift,
		CurrentDemand: currentDemand,
		NewDemand:     newDemand,
		CurrentProfit: NewMoneyFromRat(sumCurrentProfit),
		NewProfit:     NewMoneyFromRat(sumNewProfit),
		Rows:          rows,
	}, nil
}

// liftPct returns round(100 * (next - base) / base, 1).
func liftPct(next, base *big.Rat) (float64, error) {
	if base.Sign() == 0 {
		return 0, ErrUndefinedLift
	}
	ratio := new(big.Rat).Sub(next, base)
	ratio.Quo(ratio, base)
	ratio.Mul(ratio, big.NewRat(100, 1))

	f, _ := roundRat(ratio, 1).Float64()
	return f, nil
}

func exactRat(f float64) (*big.Rat, error) {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		return nil, fmt.Errorf("non-finite value %v", f)
	}
	return r, nil
}
