package models

import (
	"github.com/shopspring/decimal"
)

// SalesData holds the point-of-sale totals for a store-month.
type SalesData struct {
	ProductNetSales      decimal.Decimal `json:"product_net_sales"`
	CashAdjustments      decimal.Decimal `json:"cash_adjustments"`
	Promotions           decimal.Decimal `json:"promotions"`
	ManagerMeals         decimal.Decimal `json:"manager_meals"`
	DuesAndSubscriptions decimal.Decimal `json:"dues_and_subscriptions"`
}

// LaborData holds payroll figures. Percentages are 0-100.
type LaborData struct {
	CrewLaborPercent       decimal.Decimal `json:"crew_labor_percent"`
	TotalLaborPercent      decimal.Decimal `json:"total_labor_percent"`
	PayrollTaxRate         decimal.Decimal `json:"payroll_tax_rate"`
	AdditionalLaborDollars decimal.Decimal `json:"additional_labor_dollars"`
}

// WasteData holds waste and condiment percentages of product net sales.
type WasteData struct {
	CompleteWastePercent decimal.Decimal `json:"complete_waste_percent"`
	RawWastePercent      decimal.Decimal `json:"raw_waste_percent"`
	CondimentPercent     decimal.Decimal `json:"condiment_percent"`
}

// InventoryData is one inventory count (beginning or ending of the month).
type InventoryData struct {
	Food       decimal.Decimal `json:"food"`
	Condiment  decimal.Decimal `json:"condiment"`
	Paper      decimal.Decimal `json:"paper"`
	NonProduct decimal.Decimal `json:"non_product"`
	OpSupplies decimal.Decimal `json:"op_supplies"`
}

// PurchaseData holds month totals by invoice category.
type PurchaseData struct {
	Food              decimal.Decimal `json:"food"`
	Condiment         decimal.Decimal `json:"condiment"`
	Paper             decimal.Decimal `json:"paper"`
	NonProduct        decimal.Decimal `json:"non_product"`
	Travel            decimal.Decimal `json:"travel"`
	AdvertisingOther  decimal.Decimal `json:"advertising_other"`
	Promotion         decimal.Decimal `json:"promotion"`
	OutsideServices   decimal.Decimal `json:"outside_services"`
	Linen             decimal.Decimal `json:"linen"`
	OperatingSupply   decimal.Decimal `json:"operating_supply"`
	MaintenanceRepair decimal.Decimal `json:"maintenance_repair"`
	SmallEquipment    decimal.Decimal `json:"small_equipment"`
	Utilities         decimal.Decimal `json:"utilities"`
	Office            decimal.Decimal `json:"office"`
	Training          decimal.Decimal `json:"training"`
	CrewRelations     decimal.Decimal `json:"crew_relations"`
}

// InputRecord is the normalized snapshot of one store-month's raw figures.
// Absent fields decode to zero.
type InputRecord struct {
	Sales              SalesData       `json:"sales"`
	Labor              LaborData       `json:"labor"`
	Waste              WasteData       `json:"waste"`
	BeginningInventory InventoryData   `json:"beginning_inventory"`
	EndingInventory    InventoryData   `json:"ending_inventory"`
	Purchases          PurchaseData    `json:"purchases"`
	AdvertisingPercent decimal.Decimal `json:"advertising_percent"`
}

// AmountUsed is the quantity of each purchased category consumed in the period.
type AmountUsed struct {
	Food       decimal.Decimal `json:"food"`
	Paper      decimal.Decimal `json:"paper"`
	Condiment  decimal.Decimal `json:"condiment"`
	NonProduct decimal.Decimal `json:"non_product"`
	OpSupplies decimal.Decimal `json:"op_supplies"`
}

// ExpenseLine is one controllable expense in dollars and as a percent of product net sales.
type ExpenseLine struct {
	Dollars decimal.Decimal `json:"dollars"`
	Percent decimal.Decimal `json:"percent"`
}

// ControllableExpenses is the fixed set of Actual-path expense lines.
type ControllableExpenses struct {
	BaseFood             ExpenseLine `json:"base_food"`
	EmployeeMeal         ExpenseLine `json:"employee_meal"`
	Condiment            ExpenseLine `json:"condiment"`
	TotalWaste           ExpenseLine `json:"total_waste"`
	Paper                ExpenseLine `json:"paper"`
	CrewLabor            ExpenseLine `json:"crew_labor"`
	ManagementLabor      ExpenseLine `json:"management_labor"`
	PayrollTax           ExpenseLine `json:"payroll_tax"`
	AdditionalLabor      ExpenseLine `json:"additional_labor_dollars"`
	Advertising          ExpenseLine `json:"advertising"`
	Travel               ExpenseLine `json:"travel"`
	AdvertisingOther     ExpenseLine `json:"advertising_other"`
	Promotion            ExpenseLine `json:"promotion"`
	OutsideServices      ExpenseLine `json:"outside_services"`
	Linen                ExpenseLine `json:"linen"`
	OperatingSupply      ExpenseLine `json:"op_supply"`
	MaintenanceRepair    ExpenseLine `json:"maintenance_repair"`
	SmallEquipment       ExpenseLine `json:"small_equipment"`
	Utilities            ExpenseLine `json:"utilities"`
	Office               ExpenseLine `json:"office"`
	CashAdjustments      ExpenseLine `json:"cash_adjustments"`
	CrewRelations        ExpenseLine `json:"crew_relations"`
	Training             ExpenseLine `json:"training"`
	DuesAndSubscriptions ExpenseLine `json:"dues_and_subscriptions"`
}

// NamedExpense pairs an expense line with its report label.
type NamedExpense struct {
	Name string
	Line ExpenseLine
}

// Named returns every expense line in report order. Totals are summed over
// exactly this list.
func (c ControllableExpenses) Named() []NamedExpense {
	return []NamedExpense{
		{"Base Food", c.BaseFood},
		{"Employee Meal", c.EmployeeMeal},
		{"Condiment", c.Condiment},
		{"Total Waste", c.TotalWaste},
		{"Paper", c.Paper},
		{"Crew Labor", c.CrewLabor},
		{"Management Labor", c.ManagementLabor},
		{"Payroll Tax", c.PayrollTax},
		{"Additional Labor Dollars", c.AdditionalLabor},
		{"Advertising", c.Advertising},
		{"Travel", c.Travel},
		{"Adv Other", c.AdvertisingOther},
		{"Promotion", c.Promotion},
		{"Outside Services", c.OutsideServices},
		{"Linen", c.Linen},
		{"OP. Supply", c.OperatingSupply},
		{"Maint. & Repair", c.MaintenanceRepair},
		{"Small Equipment", c.SmallEquipment},
		{"Utilities", c.Utilities},
		{"Office", c.Office},
		{"Cash +/-", c.CashAdjustments},
		{"Crew Relations", c.CrewRelations},
		{"Training", c.Training},
		{"Dues & Subscriptions", c.DuesAndSubscriptions},
	}
}

// CalculationResult is the Actual/PAC report for one store-month.
type CalculationResult struct {
	// Sales Section (dollars only)
	ProductNetSales decimal.Decimal `json:"product_net_sales"`
	AllNetSales     decimal.Decimal `json:"all_net_sales"`

	AmountUsed           AmountUsed           `json:"amount_used"`
	ControllableExpenses ControllableExpenses `json:"controllable_expenses"`

	TotalControllableDollars decimal.Decimal `json:"total_controllable_dollars"`
	TotalControllablePercent decimal.Decimal `json:"total_controllable_percent"`
	BottomLinePercent        decimal.Decimal `json:"pac_percent"`
	BottomLineDollars        decimal.Decimal `json:"pac_dollars"`
}
