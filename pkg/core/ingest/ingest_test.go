package ingest

import (
	"bytes"
	"strings"
	"testing"

	"pacpro/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func dollarRow(name, v string) models.ProjectionRow {
	return models.ProjectionRow{Name: name, ProjectedDollar: models.Value(decimal.RequireFromString(v))}
}

func assertDec(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s expected %s, got %s", label, want, got)
	}
}

func TestDeriveInput_FromRowsOnly(t *testing.T) {
	doc := &models.ProjectionDocument{
		Rows: []models.ProjectionRow{
			dollarRow("Product Net Sales", "98000"),
			dollarRow("cash +/-", "-120"),
			dollarRow("Adv Other", "0"),
			dollarRow("Advertising Other", "310"),
			dollarRow("Operating Supply", "450"),
			dollarRow("Maint. & Repair", "700"),
			dollarRow("Maintenance & Repair", "999"),
			dollarRow("Training", "85"),
		},
	}
	in := DeriveInput(doc)

	assertDec(t, "ProductNetSales", in.Sales.ProductNetSales, "98000")
	assertDec(t, "CashAdjustments", in.Sales.CashAdjustments, "-120")
	assertDec(t, "AdvertisingOther", in.Purchases.AdvertisingOther, "310")
	assertDec(t, "OperatingSupply", in.Purchases.OperatingSupply, "450")
	assertDec(t, "MaintenanceRepair", in.Purchases.MaintenanceRepair, "700")
	assertDec(t, "Training", in.Purchases.Training, "85")
	assertDec(t, "Utilities", in.Purchases.Utilities, "0")
}

func TestDeriveInput_StructuredWins(t *testing.T) {
	doc := &models.ProjectionDocument{
		Input: &models.InputRecord{
			Sales:     models.SalesData{ProductNetSales: decimal.NewFromInt(120000)},
			Purchases: models.PurchaseData{Travel: decimal.NewFromInt(50)},
			Labor:     models.LaborData{CrewLaborPercent: decimal.NewFromInt(24)},
		},
		Rows: []models.ProjectionRow{
			dollarRow("Product Sales", "100000"),
			dollarRow("Travel", "800"),
			dollarRow("Linen", "60"),
		},
	}
	in := DeriveInput(doc)

	assertDec(t, "ProductNetSales", in.Sales.ProductNetSales, "120000")
	assertDec(t, "Travel", in.Purchases.Travel, "50")
	assertDec(t, "Linen", in.Purchases.Linen, "60")
	assertDec(t, "CrewLaborPercent", in.Labor.CrewLaborPercent, "24")
	if !doc.Input.Purchases.Linen.IsZero() {
		t.Error("DeriveInput mutated the stored input")
	}
}

func TestDeriveInput_Nil(t *testing.T) {
	in := DeriveInput(nil)
	if !in.Sales.ProductNetSales.IsZero() {
		t.Error("expected zero record")
	}
}

func TestParseInputRecord(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"strict json", `{"sales": {"product_net_sales": 100000.10}, "advertising_percent": "2.0"}`},
		{"hjson", "{\n  # month end\n  sales: {\n    product_net_sales: 100000.10\n  }\n  advertising_percent: 2.0\n}"},
		{"commented json", "{\n  // month end\n  \"sales\": {\"product_net_sales\": 100000.10},\n  \"advertising_percent\": 2.0\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseInputRecord([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseInputRecord failed: %v", err)
			}
			assertDec(t, "ProductNetSales", in.Sales.ProductNetSales, "100000.10")
			assertDec(t, "AdvertisingPercent", in.AdvertisingPercent, "2")
		})
	}
}

func TestParseInputRecord_Truncated(t *testing.T) {
	in, err := ParseInputRecord([]byte(`{"sales": {"product_net_sales": 100000.5}, "advertising_percent": 2`))
	if err != nil {
		t.Fatalf("ParseInputRecord failed: %v", err)
	}
	assertDec(t, "ProductNetSales", in.Sales.ProductNetSales, "100000.5")
	assertDec(t, "AdvertisingPercent", in.AdvertisingPercent, "2")
}

// Cents above 2^24/100 do not survive a float32 round trip.
func TestParseInputRecord_KeepsExactCents(t *testing.T) {
	hjsonInput := "{\n  # large store\n  sales: {\n    product_net_sales: 1234567.89\n  }\n  purchases: {\n    utilities: 4250.37\n  }\n}"
	in, err := ParseInputRecord([]byte(hjsonInput))
	if err != nil {
		t.Fatalf("ParseInputRecord failed: %v", err)
	}
	assertDec(t, "ProductNetSales", in.Sales.ProductNetSales, "1234567.89")
	assertDec(t, "Utilities", in.Purchases.Utilities, "4250.37")

	// A repair that cannot keep the digits must fail rather than round.
	in, err = ParseInputRecord([]byte(`{"sales": {"product_net_sales": 1234567.89}, "purchases": {"utilities": 4250.37`))
	if err == nil {
		assertDec(t, "ProductNetSales after repair", in.Sales.ProductNetSales, "1234567.89")
		assertDec(t, "Utilities after repair", in.Purchases.Utilities, "4250.37")
	}
}

func TestSameNumbers(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{`{"a": 100000.10, "b": -2}`, `{"b":-2,"a":100000.1}`, true},
		{`{"a": 100000.10}`, `{"a":100000.1015625}`, false},
		{`{"a": 1, "b": 2}`, `{"a": 1}`, false},
		{`{"k1": "x"}`, `{"k1":"x"}`, true},
		{`{"a": 1e2}`, `{"a": 100}`, true},
	}
	for _, tt := range tests {
		if got := sameNumbers(tt.a, tt.b); got != tt.want {
			t.Errorf("sameNumbers(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseRows(t *testing.T) {
	for _, input := range []string{
		`[{"name": "Travel", "projectedDollar": 800, "projectedPercent": ""}]`,
		`{"pacGoal": 12, "rows": [{"name": "Travel", "projectedDollar": "800"}]}`,
	} {
		rows, err := ParseRows([]byte(input))
		if err != nil {
			t.Fatalf("ParseRows(%s): %v", input, err)
		}
		if len(rows) != 1 || rows[0].Name != "Travel" {
			t.Fatalf("unexpected rows %+v", rows)
		}
		assertDec(t, "Travel $", rows[0].ProjectedDollar.OrZero(), "800")
		if rows[0].ProjectedPercent.IsSet() {
			t.Error("blank percent should be unset")
		}
	}
}

func TestReadWorkbookRows_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if _, err := f.NewSheet(ProjectionsSheet); err != nil {
		t.Fatal(err)
	}
	data := [][]interface{}{
		{"Store 42 projections"},
		{"Name", "Projected $", "Projected %", "Historical $", "Historical %"},
		{"Product Sales", "$100,000.00", "", "95000", ""},
		{"Base Food", "", "43%", "", "41.5"},
		{"Cash +/-", "(250)", "", "-", ""},
		{"", "", "", "", ""},
	}
	for i, r := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(ProjectionsSheet, cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadWorkbookRows("upload.xlsx", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	assertDec(t, "Product Sales $", rows[0].ProjectedDollar.OrZero(), "100000")
	assertDec(t, "Product Sales hist $", rows[0].HistoricalDollar.OrZero(), "95000")
	assertDec(t, "Base Food %", rows[1].ProjectedPercent.OrZero(), "43")
	assertDec(t, "Cash $", rows[2].ProjectedDollar.OrZero(), "-250")
	if rows[1].ProjectedDollar.IsSet() || rows[2].HistoricalDollar.IsSet() {
		t.Error("blank and dash cells should be unset")
	}
}

func TestReadWorkbookRows_Errors(t *testing.T) {
	tests := []struct {
		name  string
		cells [][]string
		want  string
	}{
		{"no header", [][]string{{"Line item", "Amount"}}, "no header row"},
		{"bad number", [][]string{{"Name", "Projected $"}, {"Travel", "eight hundred"}}, "invalid number"},
		{"no rows", [][]string{{"Name", "Projected $"}}, "no projection rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rowsFromCells(tt.cells)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
