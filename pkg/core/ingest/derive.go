// Package ingest turns stored projection documents, operator-authored files
// and uploaded workbooks into the records the calculators consume.
package ingest

import (
	"strings"

	"pacpro/pkg/models"

	"github.com/shopspring/decimal"
)

// purchaseAlias maps a purchase category to the row names that may carry it.
// The first alias with a non-zero projected dollar wins.
type purchaseAlias struct {
	names []string
	field func(p *models.PurchaseData) *decimal.Decimal
}

var purchaseAliases = []purchaseAlias{
	{[]string{"Travel"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.Travel }},
	{[]string{"Adv Other", "Advertising Other"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.AdvertisingOther }},
	{[]string{"Promotion"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.Promotion }},
	{[]string{"Outside Services"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.OutsideServices }},
	{[]string{"Linen"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.Linen }},
	{[]string{"OP. Supply", "Operating Supply"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.OperatingSupply }},
	{[]string{"Maint. & Repair", "Maintenance & Repair"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.MaintenanceRepair }},
	{[]string{"Small Equipment"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.SmallEquipment }},
	{[]string{"Utilities"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.Utilities }},
	{[]string{"Office"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.Office }},
	{[]string{"Training"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.Training }},
	{[]string{"Crew Relations"}, func(p *models.PurchaseData) *decimal.Decimal { return &p.CrewRelations }},
}

var productSalesAliases = []string{"Product Sales", "Product Net Sales"}

// rowIndex looks rows up by trimmed, lower-cased name. The first row with a
// given name wins.
type rowIndex map[string]models.ProjectionRow

func indexRows(rows []models.ProjectionRow) rowIndex {
	idx := make(rowIndex, len(rows))
	for _, r := range rows {
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if _, ok := idx[key]; !ok {
			idx[key] = r
		}
	}
	return idx
}

// dollar returns the projected dollar of the first alias that is non-zero.
func (idx rowIndex) dollar(aliases ...string) decimal.Decimal {
	for _, name := range aliases {
		r, ok := idx[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if v := r.ProjectedDollar.OrZero(); !v.IsZero() {
			return v
		}
	}
	return decimal.Zero
}

// DeriveInput builds the input record for a stored document. Structured input
// takes precedence; product sales, cash adjustments and the purchase
// categories that are still zero are filled from the projection rows.
// A nil document yields a zero record.
func DeriveInput(doc *models.ProjectionDocument) models.InputRecord {
	if doc == nil {
		return models.InputRecord{}
	}
	var in models.InputRecord
	if doc.Input != nil {
		in = *doc.Input
	}
	if len(doc.Rows) == 0 {
		return in
	}

	idx := indexRows(doc.Rows)
	if in.Sales.ProductNetSales.IsZero() {
		in.Sales.ProductNetSales = idx.dollar(productSalesAliases...)
	}
	if in.Sales.CashAdjustments.IsZero() {
		in.Sales.CashAdjustments = idx.dollar("Cash +/-")
	}
	for _, alias := range purchaseAliases {
		field := alias.field(&in.Purchases)
		if field.IsZero() {
			*field = idx.dollar(alias.names...)
		}
	}
	return in
}
