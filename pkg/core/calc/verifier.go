package calc

import (
	"fmt"

	"pacpro/pkg/models"

	"github.com/shopspring/decimal"
)

// Tolerance is the accepted rounding gap for percent identities.
var Tolerance = decimal.RequireFromString("0.01")

// VerificationResult holds the status of integrity checks
type VerificationResult struct {
	IsBalanced bool
	Gap        decimal.Decimal
	Warnings   []string
}

// CheckTotals verifies a PAC report: total controllable equals the sum of every
// expense line exactly, and bottom-line% + total% = 100 within Tolerance.
// Reports with no product sales only need zeroed totals.
func CheckTotals(r models.CalculationResult) VerificationResult {
	var warnings []string

	if r.ProductNetSales.Sign() <= 0 {
		if !r.TotalControllableDollars.IsZero() || !r.BottomLineDollars.IsZero() {
			warnings = append(warnings, "report without product sales carries non-zero totals")
		}
		return VerificationResult{IsBalanced: len(warnings) == 0, Warnings: warnings}
	}

	sum := decimal.Zero
	for _, ne := range r.ControllableExpenses.Named() {
		sum = sum.Add(ne.Line.Dollars)
	}
	gap := r.TotalControllableDollars.Sub(sum)
	if !gap.IsZero() {
		warnings = append(warnings, fmt.Sprintf("Total controllable differs from line sum by %s", gap.StringFixed(2)))
	}

	pctGap := r.BottomLinePercent.Add(r.TotalControllablePercent).Sub(Hundred)
	if pctGap.Abs().GreaterThan(Tolerance) {
		warnings = append(warnings, fmt.Sprintf("P.A.C. %% and controllable %% miss 100 by %s", pctGap.StringFixed(2)))
	}

	return VerificationResult{
		IsBalanced: len(warnings) == 0,
		Gap:        gap,
		Warnings:   warnings,
	}
}
