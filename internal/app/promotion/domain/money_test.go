package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(25, 2)
		require.NoError(t, err)
		assert.Equal(t, "12.50", m.String())
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := Units(15000)
	b := Units(10000)

	assert.True(t, a.Add(b).Equals(Units(25000)))
	assert.True(t, a.Subtract(b).Equals(Units(5000)))
	assert.True(t, b.Subtract(a).IsNegative())
	assert.True(t, a.MultiplyByInt(3).Equals(Units(45000)))
	assert.True(t, a.MultiplyByRat(big.NewRat(1, 10)).Equals(Units(1500)))
}

func TestMoney_Min(t *testing.T) {
	assert.True(t, Units(500).Min(Units(700)).Equals(Units(500)))
	assert.True(t, Units(900).Min(Units(700)).Equals(Units(700)))
}

func TestMoney_Ratio(t *testing.T) {
	t.Run("ratio of two values", func(t *testing.T) {
		r := Units(5000).Ratio(Units(25000))
		require.NotNil(t, r)
		assert.Zero(t, big.NewRat(1, 5).Cmp(r))
	})

	t.Run("zero divisor returns nil", func(t *testing.T) {
		assert.Nil(t, Units(5000).Ratio(Zero()))
	})
}

func TestMoney_CopyIsIndependent(t *testing.T) {
	original := Units(100)
	copied := original.Copy()

	sum := copied.Add(Units(1))

	assert.True(t, original.Equals(Units(100)))
	assert.True(t, sum.Equals(Units(101)))
}

func TestNewMoneyFromRat(t *testing.T) {
	assert.True(t, NewMoneyFromRat(nil).IsZero())
	assert.Equal(t, 0.5, NewMoneyFromRat(big.NewRat(1, 2)).Float64())
}
