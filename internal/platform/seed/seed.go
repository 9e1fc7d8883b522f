// Package seed loads pricing and pricing_detail rows from a YAML file.
package seed

import (
	"fmt"
	"os"
	"slices"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/fnb-pricing-service/internal/models/m_pricing"
	"github.com/light-bringer/fnb-pricing-service/internal/models/m_pricing_detail"
)

// Row is one weekday of one brand and item. Money is written as a decimal string
// so it reaches NUMERIC columns without a float round trip. Omitted values stay NULL.
type Row struct {
	Brand     string `yaml:"brand"`
	Item      string `yaml:"item"`
	DayOfWeek string `yaml:"day_of_week"`
	BasePrice string `yaml:"base_price"`
	NewPrice  string `yaml:"new_price"`

	Features map[string]float64 `yaml:"features"`

	ItemCost            string   `yaml:"item_cost"`
	AverageBasketProfit string   `yaml:"average_basket_profit"`
	CurrentPriceDemand  *float64 `yaml:"current_price_demand"`
	CurrentPriceProfit  string   `yaml:"current_price_profit"`
}

// File is the top-level seed document.
type File struct {
	Rows []Row `yaml:"rows"`
}

// Load reads and parses a seed file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a seed document.
func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Mutations converts every row into an upsert on pricing and one on pricing_detail.
func (f *File) Mutations() ([]*spanner.Mutation, error) {
	pricing := m_pricing.NewModel()
	detail := m_pricing_detail.NewModel()

	muts := make([]*spanner.Mutation, 0, 2*len(f.Rows))
	for i, row := range f.Rows {
		p, d, err := row.toData()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		muts = append(muts, pricing.InsertOrUpdateMut(p), detail.InsertOrUpdateMut(d))
	}
	return muts, nil
}

func (r Row) toData() (*m_pricing.Data, *m_pricing_detail.Data, error) {
	day, err := domain.ParseDayOfWeek(r.DayOfWeek)
	if err != nil {
		return nil, nil, err
	}
	if r.Brand == "" || r.Item == "" {
		return nil, nil, fmt.Errorf("brand and item are required")
	}
	for name := range r.Features {
		if !slices.Contains(m_pricing.FeatureColumns, name) {
			return nil, nil, fmt.Errorf("unknown feature %q", name)
		}
	}

	p := &m_pricing.Data{Brand: r.Brand, Item: r.Item, DayOfWeek: day.String()}
	d := &m_pricing_detail.Data{Brand: r.Brand, Item: r.Item, DayOfWeek: day.String()}

	money := []struct {
		in  string
		out *spanner.NullNumeric
	}{
		{r.BasePrice, &p.BasePrice},
		{r.NewPrice, &p.NewPrice},
		{r.ItemCost, &d.ItemCost},
		{r.AverageBasketProfit, &d.AverageBasketProfit},
		{r.CurrentPriceProfit, &d.CurrentPriceProfit},
	}
	for _, m := range money {
		if err := numeric(m.in, m.out); err != nil {
			return nil, nil, err
		}
	}

	features := []*spanner.NullFloat64{
		&p.PriceHistDow, &p.PriceYearDow, &p.PriceMonthDow,
		&p.PriceChangeHistDow, &p.PriceChangeYearDow, &p.PriceChangeMonthDow,
		&p.PriceHistRoll, &p.PriceYearRoll, &p.PriceMonthRoll,
		&p.PriceChangeHistRoll, &p.PriceChangeYearRoll, &p.PriceChangeMonthRoll,
	}
	for i, col := range m_pricing.FeatureColumns {
		if v, ok := r.Features[col]; ok {
			*features[i] = spanner.NullFloat64{Float64: v, Valid: true}
		}
	}

	if r.CurrentPriceDemand != nil {
		d.CurrentPriceDemand = spanner.NullFloat64{Float64: *r.CurrentPriceDemand, Valid: true}
	}
	return p, d, nil
}

func numeric(s string, out *spanner.NullNumeric) error {
	if s == "" {
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	out.Numeric.Set(v.Rat())
	out.Valid = true
	return nil
}
