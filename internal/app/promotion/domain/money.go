package domain

import (
	"fmt"
	"math/big"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// Prices enter the engine as whole currency units; percentage discounts can
// produce fractions, which are kept exact until the value is rendered.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(25, 2) represents 12.5 currency units.
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}

	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// Units creates Money from a whole number of currency units.
func Units(amount int64) *Money {
	return &Money{rat: new(big.Rat).SetInt64(amount)}
}

// Zero returns a zero Money value.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{rat: new(big.Rat).Set(rat)}
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

// MultiplyByInt multiplies this Money value by a quantity.
func (m *Money) MultiplyByInt(n int64) *Money {
	return m.MultiplyByRat(new(big.Rat).SetInt64(n))
}

// Ratio returns m / other as a rational, or nil when other is zero.
func (m *Money) Ratio(other *Money) *big.Rat {
	if other.rat.Sign() == 0 {
		return nil
	}
	return new(big.Rat).Quo(m.rat, other.rat)
}

// Min returns the smaller of the two values.
func (m *Money) Min(other *Money) *Money {
	if m.LessThan(other) {
		return m.Copy()
	}
	return other.Copy()
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
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
