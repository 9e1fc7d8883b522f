package domain

import (
	"fmt"
	"math"
	"math/big"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// It stores the value as a rational number (numerator/denominator) to avoid floating-point precision issues.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(550, 100) represents $5.50
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	if denominator < 0 {
		return nil, fmt.Errorf("denominator must be positive")
	}

	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// MustMoney is NewMoney for literals that are known to be valid.
func MustMoney(numerator, denominator int64) *Money {
	m, err := NewMoney(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return &Money{rat: big.NewRat(0, 1)}
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// ParseMoney parses a decimal string such as "5.50".
func ParseMoney(s string) (*Money, error) {
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid money value %q", s)
	}
	return &Money{rat: rat}, nil
}

// Zero returns a zero Money value.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

// Rat returns a copy of the underlying rational value.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyByRat multiplies this Money value by a rational number and returns a new Money instance.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, rat)}
}

// MultiplyByFloat multiplies by a finite float64 using its exact binary value.
func (m *Money) MultiplyByFloat(f float64) (*Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("cannot multiply money by non-finite value %v", f)
	}
	return m.MultiplyByRat(new(big.Rat).SetFloat64(f)), nil
}

// Quantize rounds to the given number of decimal places, half away from zero.
func (m *Money) Quantize(places int) *Money {
	return &Money{rat: roundRat(m.rat, places)}
}

// HasAtMostDecimals reports whether the value is exactly representable with the given decimal places.
func (m *Money) HasAtMostDecimals(places int) bool {
	scaled := new(big.Rat).Mul(m.rat, new(big.Rat).SetInt(pow10(places)))
	return scaled.IsInt()
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns a string representation of the money value.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

func pow10(places int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
}

// roundRat rounds r to places decimal digits, half away from zero.
func roundRat(r *big.Rat, places int) *big.Rat {
	scale := pow10(places)
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(scale))

	abs := new(big.Rat).Abs(scaled)
	abs.Add(abs, big.NewRat(1, 2))
	whole := new(big.Int).Quo(abs.Num(), abs.Denom())
	if scaled.Sign() < 0 {
		whole.Neg(whole)
	}
	return new(big.Rat).SetFrac(whole, scale)
}
