package pac

import (
	"fmt"
	"strings"

	"pacpro/pkg/core/calc"
	"pacpro/pkg/models"

	"github.com/shopspring/decimal"
)

// CashSign selects how the Cash +/- line enters controllable expenses.
// Two conventions exist for the same store data, so the choice is explicit.
type CashSign string

const (
	// CashAsExpense passes cash adjustments through unchanged.
	CashAsExpense CashSign = "expense"
	// CashNegated flips the sign, so a cash overage reduces controllables.
	CashNegated CashSign = "negated"
)

// ParseCashSign accepts "expense" or "negated" (case-insensitive); empty means CashAsExpense.
func ParseCashSign(s string) (CashSign, error) {
	switch CashSign(strings.ToLower(strings.TrimSpace(s))) {
	case "", CashAsExpense:
		return CashAsExpense, nil
	case CashNegated:
		return CashNegated, nil
	default:
		return "", fmt.Errorf("unknown cash sign %q (want %q or %q)", s, CashAsExpense, CashNegated)
	}
}

// Options tunes the Actual calculation.
type Options struct {
	CashSign CashSign
}

// DefaultOptions returns the positive pass-through cash convention.
func DefaultOptions() Options {
	return Options{CashSign: CashAsExpense}
}

// AllNetSales is product net sales plus cash adjustments, promotions and manager meals.
func AllNetSales(in models.InputRecord) decimal.Decimal {
	return calc.Sum(
		in.Sales.ProductNetSales,
		in.Sales.CashAdjustments,
		in.Sales.Promotions,
		in.Sales.ManagerMeals,
	)
}

// line builds an expense whose percent is derived from its dollars.
func line(dollars, sales decimal.Decimal) models.ExpenseLine {
	return settle(dollars, calc.PercentOf(dollars, sales))
}

// settle rounds both halves of a line to cents.
func settle(dollars, percent decimal.Decimal) models.ExpenseLine {
	return models.ExpenseLine{Dollars: calc.Round2(dollars), Percent: calc.Round2(percent)}
}

// CalculateExpenses computes every controllable expense line against product
// net sales s. Lines whose percent is an authoritative input (condiment, total
// waste, the labor split) keep that percent; the rest derive it from dollars.
// With s <= 0 every derived percent is zero.
func CalculateExpenses(in models.InputRecord, used models.AmountUsed, s decimal.Decimal, opts Options) models.ControllableExpenses {
	labor, waste, buy := in.Labor, in.Waste, in.Purchases

	totalWastePct := waste.CompleteWastePercent.Add(waste.RawWastePercent)
	mgmtPct := labor.TotalLaborPercent.Sub(labor.CrewLaborPercent)
	// Payroll tax rate applies to the whole labor percent.
	payrollPct := labor.PayrollTaxRate.Div(calc.Hundred).Mul(labor.TotalLaborPercent)

	cash := in.Sales.CashAdjustments
	if opts.CashSign == CashNegated {
		cash = cash.Neg()
	}

	return models.ControllableExpenses{
		BaseFood:        line(used.Food, s),
		EmployeeMeal:    line(mealShare.Mul(in.Sales.ManagerMeals), s),
		Condiment:       settle(calc.ApplyPercent(s, waste.CondimentPercent), waste.CondimentPercent),
		TotalWaste:      settle(calc.ApplyPercent(s, totalWastePct), totalWastePct),
		Paper:           line(used.Paper, s),
		CrewLabor:       settle(calc.ApplyPercent(s, labor.CrewLaborPercent), labor.CrewLaborPercent),
		ManagementLabor: settle(calc.ApplyPercent(s, mgmtPct), mgmtPct),
		PayrollTax:      settle(calc.ApplyPercent(s, payrollPct), payrollPct),
		AdditionalLabor: line(labor.AdditionalLaborDollars, s),

		// Advertising is budgeted on all net sales but reported against product sales.
		Advertising: line(calc.ApplyPercent(AllNetSales(in), in.AdvertisingPercent), s),

		Travel:           line(buy.Travel, s),
		AdvertisingOther: line(buy.AdvertisingOther, s),
		// Promotion is 30% of promotions redeemed, not the promotion invoices.
		Promotion:            line(mealShare.Mul(in.Sales.Promotions), s),
		OutsideServices:      line(buy.OutsideServices, s),
		Linen:                line(buy.Linen, s),
		OperatingSupply:      line(buy.OperatingSupply, s),
		MaintenanceRepair:    line(buy.MaintenanceRepair, s),
		SmallEquipment:       line(buy.SmallEquipment, s),
		Utilities:            line(buy.Utilities, s),
		Office:               line(buy.Office, s),
		CashAdjustments:      line(cash, s),
		CrewRelations:        line(buy.CrewRelations, s),
		Training:             line(buy.Training, s),
		DuesAndSubscriptions: line(in.Sales.DuesAndSubscriptions, s),
	}
}
