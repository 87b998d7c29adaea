package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// TWD is the storefront's trading currency. Listings are priced in whole
// New Taiwan dollars.
var TWD = currency.MustParseISO("TWD")

// ErrCurrencyMismatch is returned when arithmetic mixes currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an exact fixed-point amount in a single currency. Amounts are
// decimal so repeated aggregation never drifts.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// New builds a Money from a whole-unit amount.
func New(amount int64, unit currency.Unit) Money {
	return Money{Amount: decimal.NewFromInt(amount), Currency: unit}
}

// Zero returns the zero amount in the given currency.
func Zero(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

// Add returns m + other. Both operands must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Equal reports whether two amounts are the same value in the same currency.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.Currency.String())
}
