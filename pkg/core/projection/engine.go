package projection

import (
	"fmt"

	"pacpro/pkg/core/calc"
	"pacpro/pkg/models"

	"github.com/shopspring/decimal"
)

// Stage is one named pass of the recalculation pipeline. Apply runs against a
// single column and must only read lines finalized by earlier stages.
type Stage struct {
	Name  string
	Apply func(s *Sheet, c Column)
}

// Stage names, in pipeline order.
const (
	StagePercentToDollar    = "percent_to_dollar"
	StagePassThroughPercent = "pass_through_percent"
	StageTotalControllable  = "total_controllable"
	StageBottomLine         = "bottom_line"
	StageSalesRatio         = "sales_ratio"
)

var stages = []Stage{
	{Name: StagePercentToDollar, Apply: percentToDollar},
	{Name: StagePassThroughPercent, Apply: passThroughPercent},
	{Name: StageTotalControllable, Apply: totalControllable},
	{Name: StageBottomLine, Apply: bottomLine},
	{Name: StageSalesRatio, Apply: salesRatio},
}

// Stages returns the pipeline in execution order.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// Recalculate runs every stage once, each over both columns. Operands that
// are unset read as zero; every field a stage writes becomes concrete and is
// settled to cents. The result is a fixed point: recalculating it again
// changes nothing.
func Recalculate(s Sheet) Sheet {
	for _, st := range stages {
		run(&s, st)
	}
	return s
}

// RecalculateThrough runs the pipeline up to and including the named stage.
func RecalculateThrough(s Sheet, stage string) (Sheet, error) {
	for _, st := range stages {
		run(&s, st)
		if st.Name == stage {
			return s, nil
		}
	}
	return Sheet{}, fmt.Errorf("unknown pipeline stage %q", stage)
}

func run(s *Sheet, st Stage) {
	for _, c := range Columns {
		st.Apply(s, c)
	}
}

// getValue reads a figure, treating unset as zero.
func getValue(s *Sheet, l Line, c Column, f Field) decimal.Decimal {
	return s.Get(l, c, f).OrZero()
}

func put(s *Sheet, l Line, c Column, f Field, v decimal.Decimal) {
	s.Set(l, c, f, models.Value(calc.Round2(v)))
}

func percentToDollar(s *Sheet, c Column) {
	sales := getValue(s, ProductSales, c, Dollar)
	for _, l := range PercentOfProductSales {
		put(s, l, c, Dollar, calc.ApplyPercent(sales, getValue(s, l, c, Percent)))
	}

	allNet := getValue(s, AllNetSales, c, Dollar)
	put(s, Advertising, c, Dollar, calc.ApplyPercent(allNet, getValue(s, Advertising, c, Percent)))

	// Crew and management dollars were settled above.
	labor := getValue(s, CrewLabor, c, Dollar).Add(getValue(s, ManagementLabor, c, Dollar))
	put(s, PayrollTax, c, Dollar, calc.ApplyPercent(labor, getValue(s, PayrollTax, c, Percent)))
}

func passThroughPercent(s *Sheet, c Column) {
	sales := getValue(s, ProductSales, c, Dollar)
	for _, l := range PassThrough {
		put(s, l, c, Percent, calc.PercentOf(getValue(s, l, c, Dollar), sales))
	}
}

func groupDollars(s *Sheet, c Column, group []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range group {
		total = total.Add(getValue(s, l, c, Dollar))
	}
	return total
}

func totalControllable(s *Sheet, c Column) {
	total := calc.Sum(
		groupDollars(s, c, FoodPaperGroup),
		groupDollars(s, c, LaborGroup),
		groupDollars(s, c, PurchasesGroup),
	)
	put(s, TotalControllable, c, Dollar, total)
	put(s, TotalControllable, c, Percent, calc.PercentOf(total, getValue(s, ProductSales, c, Dollar)))
}

func bottomLine(s *Sheet, c Column) {
	sales := getValue(s, ProductSales, c, Dollar)
	put(s, PAC, c, Dollar, sales.Sub(getValue(s, TotalControllable, c, Dollar)))
	if sales.Sign() <= 0 {
		put(s, PAC, c, Percent, decimal.Zero)
		return
	}
	put(s, PAC, c, Percent, calc.Hundred.Sub(getValue(s, TotalControllable, c, Percent)))
}

func salesRatio(s *Sheet, c Column) {
	allNet := getValue(s, AllNetSales, c, Dollar)
	put(s, ProductSales, c, Percent, calc.PercentOf(getValue(s, ProductSales, c, Dollar), allNet))
	if allNet.Sign() <= 0 {
		put(s, AllNetSales, c, Percent, decimal.Zero)
		return
	}
	put(s, AllNetSales, c, Percent, calc.Hundred)
}
