package projection

import (
	"strings"
)

// Line is one canonical row of the projection sheet. The set is closed and
// ordered; a Sheet is indexed by it.
type Line int

const (
	ProductSales Line = iota
	AllNetSales
	BaseFood
	EmployeeMeal
	Condiment
	TotalWaste
	Paper
	CrewLabor
	ManagementLabor
	PayrollTax
	Advertising
	Travel
	AdvOther
	Promotion
	OutsideServices
	Linen
	OpSupply
	MaintRepair
	SmallEquipment
	Utilities
	Office
	CashAdjustments
	CrewRelations
	Training
	TotalControllable
	PAC

	// LineCount is the number of canonical rows.
	LineCount = int(PAC) + 1
)

var lineNames = [LineCount]string{
	ProductSales:      "Product Sales",
	AllNetSales:       "All Net Sales",
	BaseFood:          "Base Food",
	EmployeeMeal:      "Employee Meal",
	Condiment:         "Condiment",
	TotalWaste:        "Total Waste",
	Paper:             "Paper",
	CrewLabor:         "Crew Labor",
	ManagementLabor:   "Management Labor",
	PayrollTax:        "Payroll Tax",
	Advertising:       "Advertising",
	Travel:            "Travel",
	AdvOther:          "Adv Other",
	Promotion:         "Promotion",
	OutsideServices:   "Outside Services",
	Linen:             "Linen",
	OpSupply:          "OP. Supply",
	MaintRepair:       "Maint. & Repair",
	SmallEquipment:    "Small Equipment",
	Utilities:         "Utilities",
	Office:            "Office",
	CashAdjustments:   "Cash +/-",
	CrewRelations:     "Crew Relations",
	Training:          "Training",
	TotalControllable: "Total Controllable",
	PAC:               "P.A.C.",
}

var linesByKey = func() map[string]Line {
	m := make(map[string]Line, LineCount)
	for i, name := range lineNames {
		m[nameKey(name)] = Line(i)
	}
	return m
}()

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Name returns the canonical display name.
func (l Line) Name() string {
	if l < 0 || int(l) >= LineCount {
		return ""
	}
	return lineNames[l]
}

func (l Line) String() string {
	return l.Name()
}

// LineByName resolves a row name case-insensitively.
func LineByName(name string) (Line, bool) {
	l, ok := linesByKey[nameKey(name)]
	return l, ok
}

// Lines returns every canonical line in sheet order.
func Lines() []Line {
	out := make([]Line, LineCount)
	for i := range out {
		out[i] = Line(i)
	}
	return out
}

// Names returns the canonical name list in sheet order.
func Names() []string {
	out := make([]string, LineCount)
	copy(out, lineNames[:])
	return out
}

// Row groups.
var (
	// PercentOfProductSales rows are driven by their percent of product sales.
	PercentOfProductSales = []Line{BaseFood, EmployeeMeal, Condiment, TotalWaste, Paper, CrewLabor, ManagementLabor}

	// PassThrough rows are driven by their dollars.
	PassThrough = []Line{
		Travel, AdvOther, Promotion, OutsideServices, Linen, OpSupply, MaintRepair,
		SmallEquipment, Utilities, Office, CashAdjustments, CrewRelations, Training,
	}

	FoodPaperGroup = []Line{BaseFood, EmployeeMeal, Condiment, TotalWaste, Paper}
	LaborGroup     = []Line{CrewLabor, ManagementLabor, PayrollTax}
	PurchasesGroup = append([]Line{Advertising}, PassThrough...)
)

// Column selects the projected or historical pair of a row.
type Column int

const (
	Projected Column = iota
	Historical
)

// Columns lists both columns; every pipeline stage runs once per column.
var Columns = []Column{Projected, Historical}

func (c Column) String() string {
	if c == Historical {
		return "historical"
	}
	return "projected"
}

// Field selects the dollar or percent half of a column.
type Field int

const (
	Dollar Field = iota
	Percent
)

func (f Field) String() string {
	if f == Percent {
		return "percent"
	}
	return "dollar"
}
