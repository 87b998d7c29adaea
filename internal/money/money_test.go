package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestAdd(t *testing.T) {
	sum, err := New(250, TWD).Add(New(420, TWD))
	require.NoError(t, err)
	assert.True(t, sum.Equal(New(670, TWD)))
}

func TestAdd_CurrencyMismatch(t *testing.T) {
	_, err := New(10, TWD).Add(New(10, currency.USD))
	require.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestAdd_RepeatedAggregationIsExact(t *testing.T) {
	total := Zero(TWD)
	for i := 0; i < 1000; i++ {
		var err error
		total, err = total.Add(New(3, TWD))
		require.NoError(t, err)
	}
	assert.True(t, total.Amount.Equal(decimal.NewFromInt(3000)))
}

func TestZero(t *testing.T) {
	z := Zero(TWD)
	assert.True(t, z.Amount.IsZero())
	assert.False(t, z.IsNegative())
}

func TestIsNegative(t *testing.T) {
	assert.True(t, New(-1, TWD).IsNegative())
	assert.False(t, New(0, TWD).IsNegative())
}

func TestEqual(t *testing.T) {
	assert.True(t, New(5, TWD).Equal(New(5, TWD)))
	assert.False(t, New(5, TWD).Equal(New(6, TWD)))
	assert.False(t, New(5, TWD).Equal(New(5, currency.USD)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "15 TWD", New(15, TWD).String())
}
