package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

func TestExchangeRateSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	rates := map[domain.CurrencyCode]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.9"),
	}
	snapshot := domain.NewExchangeRateSnapshot("USD", rates, time.Now())

	rates["EUR"] = decimal.RequireFromString("0.5")

	rate, ok := snapshot.RateFor("EUR")
	require.True(t, ok)
	require.True(t, rate.Equal(decimal.RequireFromString("0.9")))
}

func TestExchangeRateSnapshotRateFor(t *testing.T) {
	t.Parallel()

	snapshot := newSnapshotUSD()

	rate, ok := snapshot.RateFor("USD")
	require.True(t, ok)
	require.True(t, rate.Equal(decimal.NewFromInt(1)))

	rate, ok = snapshot.RateFor("EUR")
	require.True(t, ok)
	require.True(t, rate.Equal(decimal.RequireFromString("0.9")))

	_, ok = snapshot.RateFor("CHF")
	require.False(t, ok)
}

func TestExchangeRateSnapshotCrossRate(t *testing.T) {
	t.Parallel()

	snapshot := newSnapshotUSD()

	tests := []struct {
		name     string
		from     domain.CurrencyCode
		to       domain.CurrencyCode
		expected string
	}{
		{
			name:     "same_currency",
			from:     "EUR",
			to:       "EUR",
			expected: "1",
		},
		{
			name:     "base_to_quoted",
			from:     "USD",
			to:       "EUR",
			expected: "0.9",
		},
		{
			name:     "quoted_to_base",
			from:     "GBP",
			to:       "USD",
			expected: "1.25",
		},
		{
			name:     "quoted_to_quoted",
			from:     "GBP",
			to:       "EUR",
			expected: "1.125",
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rate, err := snapshot.CrossRate(tt.from, tt.to)
			require.NoError(t, err)
			require.True(
				t, rate.Equal(decimal.RequireFromString(tt.expected)),
				"got %s", rate,
			)
		})
	}

	_, err := snapshot.CrossRate("CHF", "EUR")
	require.ErrorIs(t, err, domain.ErrInvalidRate)

	_, err = snapshot.CrossRate("EUR", "CHF")
	require.ErrorIs(t, err, domain.ErrInvalidRate)
}

func newSnapshotUSD() *domain.ExchangeRateSnapshot {
	return domain.NewExchangeRateSnapshot(
		"USD", map[domain.CurrencyCode]decimal.Decimal{
			"EUR": decimal.RequireFromString("0.9"),
			"GBP": decimal.RequireFromString("0.8"),
		}, time.Now(),
	)
}
