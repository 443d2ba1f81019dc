package projection

import (
	"fmt"

	"pacpro/pkg/core/calc"

	"github.com/shopspring/decimal"
)

// CheckSheet verifies the subtotal identities of a recalculated sheet for both
// columns: Total Controllable equals the three group sums and P.A.C. equals
// Product Sales less Total Controllable. Gap carries the largest dollar miss.
func CheckSheet(s Sheet) calc.VerificationResult {
	var warnings []string
	maxGap := decimal.Zero

	for _, c := range Columns {
		want := calc.Sum(
			groupDollars(&s, c, FoodPaperGroup),
			groupDollars(&s, c, LaborGroup),
			groupDollars(&s, c, PurchasesGroup),
		)
		gap := getValue(&s, TotalControllable, c, Dollar).Sub(want)
		if gap.Abs().GreaterThan(calc.Tolerance) {
			warnings = append(warnings, fmt.Sprintf("%s: Total Controllable off group sum by %s", c, gap.StringFixed(2)))
		}
		if gap.Abs().GreaterThan(maxGap.Abs()) {
			maxGap = gap
		}

		pacGap := getValue(&s, PAC, c, Dollar).
			Sub(getValue(&s, ProductSales, c, Dollar).Sub(getValue(&s, TotalControllable, c, Dollar)))
		if pacGap.Abs().GreaterThan(calc.Tolerance) {
			warnings = append(warnings, fmt.Sprintf("%s: P.A.C. off sales less controllables by %s", c, pacGap.StringFixed(2)))
		}
		if pacGap.Abs().GreaterThan(maxGap.Abs()) {
			maxGap = pacGap
		}
	}

	return calc.VerificationResult{
		IsBalanced: len(warnings) == 0,
		Gap:        maxGap,
		Warnings:   warnings,
	}
}
