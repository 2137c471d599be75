package domain_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bazario/settlement-daemon/internal/core/domain"
)

func TestMoneyArithmetic(t *testing.T) {
	t.Parallel()

	a := domain.NewMoney(2000, "USD")
	b := domain.NewMoney(599, "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, domain.NewMoney(2599, "USD"), sum)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.Equal(t, domain.NewMoney(1401, "USD"), diff)

	product, err := a.MulQuantity(3)
	require.NoError(t, err)
	require.Equal(t, domain.NewMoney(6000, "USD"), product)
}

func TestMoneyMulQuantityOverflow(t *testing.T) {
	t.Parallel()

	zero, err := domain.NewMoney(2000, "USD").MulQuantity(0)
	require.NoError(t, err)
	require.Equal(t, domain.NewMoney(0, "USD"), zero)

	_, err = domain.NewMoney(math.MaxInt64, "USD").MulQuantity(2)
	require.ErrorIs(t, err, domain.ErrAmountOverflow)

	_, err = domain.NewMoney(math.MaxInt64/2+1, "USD").MulQuantity(2)
	require.ErrorIs(t, err, domain.ErrAmountOverflow)

	edge, err := domain.NewMoney(math.MaxInt64/2, "USD").MulQuantity(2)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64-1), edge.Amount)

	_, err = domain.NewMoney(math.MinInt64, "USD").MulQuantity(2)
	require.ErrorIs(t, err, domain.ErrAmountOverflow)
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	t.Parallel()

	usd := domain.NewMoney(1000, "USD")
	eur := domain.NewMoney(1000, "EUR")

	_, err := usd.Add(eur)
	require.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	_, err = usd.Sub(eur)
	require.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestMoneyConvertTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   int64
		rate     string
		expected int64
	}{
		{
			name:     "whole_rate",
			amount:   2000,
			rate:     "0.9",
			expected: 1800,
		},
		{
			name:     "half_rounds_to_even_down",
			amount:   250,
			rate:     "0.01",
			expected: 2,
		},
		{
			name:     "half_rounds_to_even_up",
			amount:   350,
			rate:     "0.01",
			expected: 4,
		},
		{
			name:     "rounds_to_nearest",
			amount:   1049,
			rate:     "0.1",
			expected: 105,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rate, err := decimal.NewFromString(tt.rate)
			require.NoError(t, err)

			converted := domain.NewMoney(tt.amount, "USD").ConvertTo(rate, "EUR")
			require.Equal(t, domain.NewMoney(tt.expected, "EUR"), converted)
		})
	}
}

func TestMoneyPercent(t *testing.T) {
	t.Parallel()

	price := domain.NewMoney(1800, "EUR")

	discount, err := price.Percent(10)
	require.NoError(t, err)
	require.Equal(t, domain.NewMoney(180, "EUR"), discount)

	_, err = price.Percent(101)
	require.ErrorIs(t, err, domain.ErrInvalidPercent)
}

func TestMoneyString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "18.00 EUR", domain.NewMoney(1800, "EUR").String())
	require.Equal(t, "0.81 EUR", domain.NewMoney(81, "EUR").String())
	require.Equal(t, "-2.50 USD", domain.NewMoney(-250, "USD").String())
}
