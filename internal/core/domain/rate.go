package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateSnapshot is an immutable point-in-time mapping of currencies to
// their rate against a base currency. A new snapshot is a new value, never
// mutated in place: the constructor and every accessor copy the rates map.
type ExchangeRateSnapshot struct {
	BaseCurrency CurrencyCode
	Rates        map[CurrencyCode]decimal.Decimal
	CapturedAt   time.Time
}

// NewExchangeRateSnapshot returns a snapshot owning a copy of the given
// rates. The base currency is always resolvable with rate 1.
func NewExchangeRateSnapshot(
	base CurrencyCode, rates map[CurrencyCode]decimal.Decimal,
	capturedAt time.Time,
) *ExchangeRateSnapshot {
	copied := make(map[CurrencyCode]decimal.Decimal, len(rates))
	for currency, rate := range rates {
		copied[currency] = rate
	}
	return &ExchangeRateSnapshot{
		BaseCurrency: base,
		Rates:        copied,
		CapturedAt:   capturedAt,
	}
}

// RateFor returns the rate of the given currency against the base currency.
func (s *ExchangeRateSnapshot) RateFor(currency CurrencyCode) (decimal.Decimal, bool) {
	if currency == s.BaseCurrency {
		return decimal.NewFromInt(1), true
	}
	rate, ok := s.Rates[currency]
	return rate, ok
}

// CrossRate returns the rate converting an amount in the from currency to
// the to currency, or ErrInvalidRate if the snapshot lacks an entry for
// either of them.
func (s *ExchangeRateSnapshot) CrossRate(from, to CurrencyCode) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	fromRate, ok := s.RateFor(from)
	if !ok || fromRate.IsZero() {
		return decimal.Decimal{}, ErrInvalidRate
	}
	toRate, ok := s.RateFor(to)
	if !ok {
		return decimal.Decimal{}, ErrInvalidRate
	}
	return toRate.Div(fromRate), nil
}
