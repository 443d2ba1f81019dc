// Package pac computes the Actual PAC report (product sales minus controllable
// expenses) for one store-month. Everything here is pure: no I/O, no shared
// state, safe for concurrent use.
package pac

import (
	"pacpro/pkg/core/calc"
	"pacpro/pkg/models"

	"github.com/shopspring/decimal"
)

// Summary carries the totals section of the report.
type Summary struct {
	TotalControllableDollars decimal.Decimal
	TotalControllablePercent decimal.Decimal
	BottomLinePercent        decimal.Decimal
	BottomLineDollars        decimal.Decimal
}

// Totals sums every expense line (no misc term) and derives the bottom line.
// Bottom-line percent is 100 minus the settled controllable percent, so the two
// always add to exactly 100.
func Totals(expenses models.ControllableExpenses, s decimal.Decimal) Summary {
	if s.Sign() <= 0 {
		return Summary{}
	}
	total := decimal.Zero
	for _, ne := range expenses.Named() {
		total = total.Add(ne.Line.Dollars)
	}
	totalPct := calc.Round2(calc.PercentOf(total, s))
	return Summary{
		TotalControllableDollars: total,
		TotalControllablePercent: totalPct,
		BottomLinePercent:        calc.Hundred.Sub(totalPct),
		BottomLineDollars:        calc.Round2(s.Sub(total)),
	}
}

// Calculator runs the Actual chain: amount used, expense lines, totals.
type Calculator struct {
	opts Options
}

// NewCalculator creates a calculator with the given options.
func NewCalculator(opts Options) *Calculator {
	if opts.CashSign == "" {
		opts.CashSign = CashAsExpense
	}
	return &Calculator{opts: opts}
}

// Calculate produces the PAC report. With product net sales <= 0 only the two
// sales figures are populated and everything else stays zero.
func (c *Calculator) Calculate(in models.InputRecord) models.CalculationResult {
	s := in.Sales.ProductNetSales
	result := models.CalculationResult{
		ProductNetSales: s,
		AllNetSales:     AllNetSales(in),
	}
	if s.Sign() <= 0 {
		return result
	}

	result.AmountUsed = ResolveAmountUsed(in)
	result.ControllableExpenses = CalculateExpenses(in, result.AmountUsed, s, c.opts)

	sum := Totals(result.ControllableExpenses, s)
	result.TotalControllableDollars = sum.TotalControllableDollars
	result.TotalControllablePercent = sum.TotalControllablePercent
	result.BottomLinePercent = sum.BottomLinePercent
	result.BottomLineDollars = sum.BottomLineDollars
	return result
}

// Calculate runs the chain with DefaultOptions.
func Calculate(in models.InputRecord) models.CalculationResult {
	return NewCalculator(DefaultOptions()).Calculate(in)
}
