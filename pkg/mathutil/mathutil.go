package mathutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// OneHundred is the divisor for percentage fields expressed as 0..100.
var OneHundred = decimal.NewFromInt(100)

func init() {
	decimal.DivisionPrecision = 8
}

// Percent returns amount * percent / 100 as an unrounded decimal. The amount
// is expected in integer minor units.
func Percent(amount int64, percent uint) decimal.Decimal {
	a := decimal.NewFromInt(amount)
	p := decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(percent)), 0)
	return a.Mul(p).Div(OneHundred)
}

// MulRate multiplies an amount in integer minor units by a decimal rate and
// returns the unrounded decimal result.
func MulRate(amount int64, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(amount).Mul(rate)
}

// RoundHalfEven rounds a decimal to the nearest integer, breaking ties
// towards the even neighbour, and returns it as int64 minor units.
func RoundHalfEven(d decimal.Decimal) int64 {
	return d.RoundBank(0).IntPart()
}

// SumDecimal folds the given decimals with addition.
func SumDecimal(ds ...decimal.Decimal) (z decimal.Decimal) {
	for _, d := range ds {
		z = z.Add(d)
	}
	return
}
