package http

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// moneyPrecision matches the NUMERIC scale used in storage.
const moneyPrecision = 9

// PricesRequest carries proposed prices keyed by weekday name, e.g. {"Monday": "5.50"}.
type PricesRequest struct {
	Prices map[string]decimal.Decimal `json:"prices"`
}

// CommitRequest carries proposed prices and the operator comment.
type CommitRequest struct {
	Prices  map[string]decimal.Decimal `json:"prices"`
	Comment string                     `json:"comment"`
}

// PricingRowResponse is one current pricing row.
type PricingRowResponse struct {
	Brand     string             `json:"brand"`
	Item      string             `json:"item"`
	DayOfWeek string             `json:"day_of_week"`
	BasePrice *decimal.Decimal   `json:"base_price"`
	NewPrice  *decimal.Decimal   `json:"new_price"`
	Features  map[string]float64 `json:"features"`
}

// ScoredRowResponse is one evaluated or committed row.
type ScoredRowResponse struct {
	Brand               string           `json:"brand"`
	Item                string           `json:"item"`
	DayOfWeek           string           `json:"day_of_week"`
	BasePrice           *decimal.Decimal `json:"base_price"`
	NewPrice            *decimal.Decimal `json:"new_price"`
	ItemCost            *decimal.Decimal `json:"item_cost"`
	AverageBasketProfit *decimal.Decimal `json:"average_basket_profit"`
	CurrentPriceDemand  float64          `json:"current_price_demand"`
	CurrentPriceProfit  *decimal.Decimal `json:"current_price_profit"`
	NewPriceDemand      float64          `json:"new_price_demand"`
	NewPriceProfit      *decimal.Decimal `json:"new_price_profit"`
}

// EvaluationResponse is the result of scoring a candidate set.
type EvaluationResponse struct {
	Brand         string              `json:"brand"`
	Item          string              `json:"item"`
	DemandLiftPct float64             `json:"demand_lift_pct"`
	ProfitLiftPct float64             `json:"profit_lift_pct"`
	CurrentDemand float64             `json:"current_demand"`
	NewDemand     float64             `json:"new_demand"`
	CurrentProfit *decimal.Decimal    `json:"current_profit"`
	NewProfit     *decimal.Decimal    `json:"new_profit"`
	EvaluatedAt   time.Time           `json:"evaluated_at"`
	Rows          []ScoredRowResponse `json:"rows"`
}

// CommitResponse describes a committed batch.
type CommitResponse struct {
	BatchID     string             `json:"batch_id"`
	CommittedAt time.Time          `json:"committed_at"`
	Evaluation  EvaluationResponse `json:"evaluation"`
}

// TransactionResponse is one row of the transaction log.
type TransactionResponse struct {
	BatchID   string             `json:"batch_id"`
	Timestamp time.Time          `json:"timestamp"`
	Comment   string             `json:"comment"`
	Features  map[string]float64 `json:"features"`
	ScoredRowResponse
}

func toProposedPrices(prices map[string]decimal.Decimal) (map[domain.DayOfWeek]*domain.Money, error) {
	out := make(map[domain.DayOfWeek]*domain.Money, len(prices))
	for label, price := range prices {
		day, err := domain.ParseDayOfWeek(label)
		if err != nil {
			return nil, err
		}
		if _, dup := out[day]; dup {
			return nil, fmt.Errorf("%w: %s given twice", domain.ErrMalformedRecord, day)
		}
		out[day] = domain.NewMoneyFromRat(price.Rat())
	}
	return out, nil
}

func toDecimal(m *domain.Money) *decimal.Decimal {
	if m == nil {
		return nil
	}
	d := decimal.NewFromBigRat(m.Rat(), moneyPrecision)
	return &d
}

// featureMap returns the present historical features keyed by column name.
func featureMap(r *domain.PricingRecord) map[string]float64 {
	f := r.Features
	out := make(map[string]float64, domain.HistoricalFeatureCount)
	for i, v := range []*float64{
		f.PriceHistDow, f.PriceYearDow, f.PriceMonthDow,
		f.PriceChangeHistDow, f.PriceChangeYearDow, f.PriceChangeMonthDow,
		f.PriceHistRoll, f.PriceYearRoll, f.PriceMonthRoll,
		f.PriceChangeHistRoll, f.PriceChangeYearRoll, f.PriceChangeMonthRoll,
	} {
		if v != nil {
			out[domain.FeatureOrder[i+2]] = *v
		}
	}
	return out
}

func toPricingRowResponse(r *domain.PricingRecord) PricingRowResponse {
	return PricingRowResponse{
		Brand:     r.Brand,
		Item:      r.Item,
		DayOfWeek: r.DayOfWeek.String(),
		BasePrice: toDecimal(r.BasePrice),
		NewPrice:  toDecimal(r.NewPrice),
		Features:  featureMap(r),
	}
}

func toScoredRowResponse(row domain.ScoredRecord) ScoredRowResponse {
	r := row.Record
	resp := ScoredRowResponse{
		Brand:               r.Brand,
		Item:                r.Item,
		DayOfWeek:           r.DayOfWeek.String(),
		BasePrice:           toDecimal(r.BasePrice),
		NewPrice:            toDecimal(r.NewPrice),
		ItemCost:            toDecimal(r.ItemCost),
		AverageBasketProfit: toDecimal(r.AverageBasketProfit),
		CurrentPriceProfit:  toDecimal(r.CurrentPriceProfit),
		NewPriceDemand:      row.NewPriceDemand,
		NewPriceProfit:      toDecimal(row.NewPriceProfit),
	}
	if r.CurrentPriceDemand != nil {
		resp.CurrentPriceDemand = *r.CurrentPriceDemand
	}
	return resp
}

func toEvaluationResponse(e *domain.Evaluation) EvaluationResponse {
	rows := make([]ScoredRowResponse, 0, len(e.Rows))
	for _, row := range e.Rows {
		rows = append(rows, toScoredRowResponse(row))
	}
	return EvaluationResponse{
		Brand:         e.Brand,
		Item:          e.Item,
		DemandLiftPct: e.DemandLiftPct,
		ProfitLiftPct: e.ProfitLiftPct,
		CurrentDemand: e.CurrentDemand,
		NewDemand:     e.NewDemand,
		CurrentProfit: toDecimal(e.CurrentProfit),
		NewProfit:     toDecimal(e.NewProfit),
		EvaluatedAt:   e.EvaluatedAt,
		Rows:          rows,
	}
}

func toTransactionResponse(tx *domain.PricingTransaction) TransactionResponse {
	return TransactionResponse{
		BatchID:           string(tx.BatchID),
		Timestamp:         tx.Timestamp,
		Comment:           tx.Comment,
		Features:          featureMap(tx.Record),
		ScoredRowResponse: toScoredRowResponse(tx.ScoredRecord),
	}
}
