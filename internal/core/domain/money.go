package domain

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/bazario/settlement-daemon/pkg/mathutil"
)

// CurrencyCode is an ISO 4217 alphabetic currency code, ie. "USD".
type CurrencyCode string

// Money is a fixed-point monetary value expressed in integer minor units
// (ie. cents) tagged with its currency. Arithmetic between two Money values
// requires identical currencies, crossing currencies goes through ConvertTo.
type Money struct {
	Amount   int64
	Currency CurrencyCode
}

// NewMoney returns a Money worth the given amount of minor units.
func NewMoney(amount int64, currency CurrencyCode) Money {
	return Money{Amount: amount, Currency: currency}
}

// Add returns m + other, failing if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub returns m - other, failing if the currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// MulQuantity scales the amount by an integer quantity, failing with
// ErrAmountOverflow when the product does not fit the int64 minor units.
func (m Money) MulQuantity(qty uint) (Money, error) {
	if qty == 0 || m.Amount == 0 {
		return Money{Amount: 0, Currency: m.Currency}, nil
	}
	if uint64(qty) > math.MaxInt64 {
		return Money{}, ErrAmountOverflow
	}
	amount := m.Amount * int64(qty)
	if amount/int64(qty) != m.Amount {
		return Money{}, ErrAmountOverflow
	}
	return Money{Amount: amount, Currency: m.Currency}, nil
}

// ConvertTo converts the amount to the target currency applying the given
// rate, rounding half-to-even at the minor-unit boundary.
func (m Money) ConvertTo(rate decimal.Decimal, target CurrencyCode) Money {
	return Money{
		Amount:   mathutil.RoundHalfEven(mathutil.MulRate(m.Amount, rate)),
		Currency: target,
	}
}

// Percent returns the given percentage of the amount, rounded half-to-even
// at the minor-unit boundary. The percent must be validated upfront, values
// above 100 are rejected with ErrInvalidPercent.
func (m Money) Percent(percent uint) (Money, error) {
	if percent > 100 {
		return Money{}, ErrInvalidPercent
	}
	return Money{
		Amount:   mathutil.RoundHalfEven(mathutil.Percent(m.Amount, percent)),
		Currency: m.Currency,
	}, nil
}

// IsPositive returns whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// IsZero ...
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Equal returns whether two Money values have the same amount and currency.
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

// String formats the amount with two decimal places, ie. "18.00 EUR".
func (m Money) String() string {
	return decimal.New(m.Amount, -2).StringFixed(2) + " " + string(m.Currency)
}
