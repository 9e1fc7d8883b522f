package domain

import (
	"fmt"
	"sort"
)

// CandidateSet is the immutable batch of records under evaluation for one brand and item.
// It is built once editing is done and passed by value; accessors return copies.
type CandidateSet struct {
	brand   string
	item    string
	records []*PricingRecord
}

// NewCandidateSet validates scope and uniqueness and orders the rows by day of week.
func NewCandidateSet(brand, item string, records []*PricingRecord) (CandidateSet, error) {
	if brand == "" || item == "" {
		return CandidateSet{}, fmt.Errorf("%w: brand and item are required", ErrMalformedRecord)
	}
	if len(records) == 0 {
		return CandidateSet{}, fmt.Errorf("%w: candidate set for %s/%s is empty", ErrMalformedRecord, brand, item)
	}

	seen := make(map[DayOfWeek]bool, len(records))
	rows := make([]*PricingRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			return CandidateSet{}, fmt.Errorf("%w: nil record in candidate set", ErrMalformedRecord)
		}
		if r.Brand != brand || r.Item != item {
			return CandidateSet{}, fmt.Errorf("%w: %s is outside scope %s/%s", ErrMalformedRecord, r.Key(), brand, item)
		}
		if !r.DayOfWeek.Valid() {
			return CandidateSet{}, fmt.Errorf("%w: %s: invalid day_of_week", ErrMalformedRecord, r.Key())
		}
		if seen[r.DayOfWeek] {
			return CandidateSet{}, fmt.Errorf("%w: duplicate row for %s", ErrMalformedRecord, r.Key())
		}
		seen[r.DayOfWeek] = true
		rows = append(rows, r.Clone())
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DayOfWeek < rows[j].DayOfWeek })

	return CandidateSet{brand: brand, item: item, records: rows}, nil
}

// Brand returns the brand scope.
func (c CandidateSet) Brand() string { return c.brand }

// Item returns the item scope.
func (c CandidateSet) Item() string { return c.item }

// Len returns the number of rows.
func (c CandidateSet) Len() int { return len(c.records) }

// Records returns deep copies of the rows, day of week ascending.
func (c CandidateSet) Records() []*PricingRecord {
	out := make([]*PricingRecord, len(c.records))
	for i, r := range c.records {
		out[i] = r.Clone()
	}
	return out
}

// WithProposedPrices returns a new set where the listed days carry the proposed price.
// Days not listed keep their current new_price; the set always covers the full scope.
func (c CandidateSet) WithProposedPrices(prices map[DayOfWeek]*Money) (CandidateSet, error) {
	byDay := make(map[DayOfWeek]int, len(c.records))
	for i, r := range c.records {
		byDay[r.DayOfWeek] = i
	}
	for day, price := range prices {
		if _, ok := byDay[day]; !ok {
			return CandidateSet{}, fmt.Errorf("%w: %s/%s has no row for %s", ErrMalformedRecord, c.brand, c.item, day)
		}
		if price == nil {
			return CandidateSet{}, fmt.Errorf("%w: %s/%s/%s: proposed price is missing", ErrMalformedRecord, c.brand, c.item, day)
		}
	}

	rows := make([]*PricingRecord, len(c.records))
	for i, r := range c.records {
		if price, ok := prices[r.DayOfWeek]; ok {
			rows[i] = r.WithNewPrice(price)
		} else {
			rows[i] = r.Clone()
		}
	}
	return CandidateSet{brand: c.brand, item: c.item, records: rows}, nil
}

// Validate checks every proposal against the price ceiling.
func (c CandidateSet) Validate(ceiling *Money) error {
	if len(c.records) == 0 {
		return fmt.Errorf("%w: candidate set is empty", ErrMalformedRecord)
	}
	for _, r := range c.records {
		if err := r.ValidateProposal(ceiling); err != nil {
			return err
		}
	}
	return nil
}
