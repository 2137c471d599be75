package mathutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	// 18.00 in minor units, 10% -> 1.80
	res := Percent(1800, 10)
	require.True(t, res.Equal(decimal.NewFromInt(180)))
}

func TestRoundHalfEven(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected int64
	}{
		{"tie_rounds_to_even_down", "2.5", 2},
		{"tie_rounds_to_even_up", "3.5", 4},
		{"below_half", "10.4", 10},
		{"above_half", "10.6", 11},
		{"negative_tie", "-2.5", -2},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := decimal.NewFromString(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.expected, RoundHalfEven(d))
		})
	}
}

func TestMulRate(t *testing.T) {
	rate, _ := decimal.NewFromString("0.9")
	// 20.00 * 0.9 = 18.00
	require.True(t, MulRate(2000, rate).Equal(decimal.NewFromInt(1800)))
}
