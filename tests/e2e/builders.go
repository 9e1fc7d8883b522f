//go:build integration

package e2e

// PricesBuilder builds evaluation and commit request bodies with a fluent interface.
type PricesBuilder struct {
	prices  map[string]string
	comment string
}

// NewPricesBuilder creates a builder that leaves every day at its stored price.
func NewPricesBuilder() *PricesBuilder {
	return &PricesBuilder{prices: map[string]string{}}
}

// WithPrice proposes a price for one weekday label.
func (b *PricesBuilder) WithPrice(day, price string) *PricesBuilder {
	b.prices[day] = price
	return b
}

// WithComment sets the commit comment.
func (b *PricesBuilder) WithComment(comment string) *PricesBuilder {
	b.comment = comment
	return b
}

// Build returns the JSON body.
func (b *PricesBuilder) Build() map[string]any {
	body := map[string]any{"prices": b.prices}
	if b.comment != "" {
		body["comment"] = b.comment
	}
	return body
}
