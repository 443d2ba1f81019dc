// Package calc holds the fixed-point helpers shared by the Actual and
// Projection paths. All money and percent values are decimal.Decimal; Round2
// is the only rounding applied and only at settlement points.
package calc

import (
	"github.com/shopspring/decimal"
)

// Hundred is the percent base.
var Hundred = decimal.NewFromInt(100)

// Round2 settles a value to cents, rounding half away from zero (half-up on magnitude).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PercentOf returns part/base*100, or zero when base <= 0.
func PercentOf(part, base decimal.Decimal) decimal.Decimal {
	if base.Sign() <= 0 {
		return decimal.Zero
	}
	return part.Mul(Hundred).Div(base)
}

// ApplyPercent returns base*pct/100.
func ApplyPercent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(Hundred)
}

// Sum adds values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
