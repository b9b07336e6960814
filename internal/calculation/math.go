package calculation

import (
	"github.com/shopspring/decimal"
)

var (
	decimalZero    = decimal.Zero
	decimalOne     = decimal.NewFromInt(1)
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)

	// amounts below one paisa are treated as zero when detecting depletion
	depletionEpsilon = decimal.NewFromFloat(0.01)
)

// pct converts a percent value (12 means 12%) into a fraction
func pct(rate decimal.Decimal) decimal.Decimal {
	return rate.Div(decimalHundred)
}

// growthFactor returns (1 + rate%)^years. Repeated multiplication keeps the
// result exact for terminating rates.
func growthFactor(ratePct decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return decimalOne
	}
	base := decimalOne.Add(pct(ratePct))
	result := decimalOne
	for i := 0; i < years; i++ {
		result = result.Mul(base)
	}
	return result
}

// powInt raises base to a non-negative integer power
func powInt(base decimal.Decimal, n int) decimal.Decimal {
	result := decimalOne
	for i := 0; i < n; i++ {
		result = result.Mul(base)
	}
	return result
}

// annuityFactor returns sum_{j=0}^{years-1} (1 + rate%)^j, the future value of
// one unit contributed at the end of each of the given years.
func annuityFactor(ratePct decimal.Decimal, years int) decimal.Decimal {
	total := decimalZero
	factor := decimalOne
	base := decimalOne.Add(pct(ratePct))
	for j := 0; j < years; j++ {
		total = total.Add(factor)
		factor = factor.Mul(base)
	}
	return total
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
