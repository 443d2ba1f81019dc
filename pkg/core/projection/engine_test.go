package projection_test

import (
	"math/rand"
	"testing"

	"pacpro/pkg/core/projection"
	"pacpro/pkg/models"

	"github.com/shopspring/decimal"
)

func fig(s string) models.Figure {
	return models.Value(decimal.RequireFromString(s))
}

func row(name string, pd, pp, hd, hp models.Figure) models.ProjectionRow {
	return models.ProjectionRow{
		Name:              name,
		ProjectedDollar:   pd,
		ProjectedPercent:  pp,
		HistoricalDollar:  hd,
		HistoricalPercent: hp,
	}
}

func projected(name string, dollar, percent models.Figure) models.ProjectionRow {
	return row(name, dollar, percent, models.Unset(), models.Unset())
}

func assertFig(t *testing.T, label string, got models.Figure, want string) {
	t.Helper()
	d, ok := got.Decimal()
	if !ok {
		t.Errorf("%s expected %s, got unset", label, want)
		return
	}
	if !d.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s expected %s, got %s", label, want, d.String())
	}
}

// referenceSheet is a projected month with every driver kind populated.
func referenceSheet() projection.Sheet {
	u := models.Unset()
	return projection.SeedMerge([]models.ProjectionRow{
		projected("Product Sales", fig("100000"), u),
		projected("All Net Sales", fig("102800"), u),
		projected("Base Food", u, fig("43")),
		projected("Crew Labor", u, fig("25.5")),
		projected("Management Labor", u, fig("9.5")),
		projected("Payroll Tax", u, fig("8.5")),
		projected("Advertising", u, fig("2")),
		projected("Travel", fig("800"), u),
	})
}

func TestPercentToDollar_BaseFood(t *testing.T) {
	s, err := projection.RecalculateThrough(referenceSheet(), projection.StagePercentToDollar)
	if err != nil {
		t.Fatal(err)
	}
	assertFig(t, "Base Food $", s.Get(projection.BaseFood, projection.Projected, projection.Dollar), "43000.00")
	// Stage 2 has not run yet.
	if s.Get(projection.Travel, projection.Projected, projection.Percent).IsSet() {
		t.Error("Travel % should still be unset after stage 1")
	}
}

func TestPassThroughPercent_Travel(t *testing.T) {
	s, err := projection.RecalculateThrough(referenceSheet(), projection.StagePassThroughPercent)
	if err != nil {
		t.Fatal(err)
	}
	assertFig(t, "Travel %", s.Get(projection.Travel, projection.Projected, projection.Percent), "0.80")
	assertFig(t, "Travel $", s.Get(projection.Travel, projection.Projected, projection.Dollar), "800")
}

func TestRecalculate_ReferenceSheet(t *testing.T) {
	s := projection.Recalculate(referenceSheet())

	tests := []struct {
		line  projection.Line
		field projection.Field
		want  string
	}{
		{projection.CrewLabor, projection.Dollar, "25500"},
		{projection.ManagementLabor, projection.Dollar, "9500"},
		{projection.PayrollTax, projection.Dollar, "2975"},
		{projection.Advertising, projection.Dollar, "2056"},
		{projection.EmployeeMeal, projection.Dollar, "0"},
		{projection.Training, projection.Percent, "0"},
		{projection.TotalControllable, projection.Dollar, "83831"},
		{projection.TotalControllable, projection.Percent, "83.83"},
		{projection.PAC, projection.Dollar, "16169"},
		{projection.PAC, projection.Percent, "16.17"},
		{projection.ProductSales, projection.Percent, "97.28"},
		{projection.AllNetSales, projection.Percent, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.line.Name()+" "+tt.field.String(), func(t *testing.T) {
			assertFig(t, tt.line.Name(), s.Get(tt.line, projection.Projected, tt.field), tt.want)
		})
	}

	if v := projection.CheckSheet(s); !v.IsBalanced {
		t.Errorf("recalculated sheet does not verify: %v", v.Warnings)
	}
}

func TestRecalculate_ColumnsAreIndependent(t *testing.T) {
	u := models.Unset()
	s := projection.Recalculate(projection.SeedMerge([]models.ProjectionRow{
		row("Product Sales", fig("100000"), u, fig("50000"), u),
		row("Base Food", u, fig("43"), u, fig("40")),
		row("Utilities", u, u, fig("1250"), u),
	}))

	assertFig(t, "projected Base Food $", s.Get(projection.BaseFood, projection.Projected, projection.Dollar), "43000")
	assertFig(t, "historical Base Food $", s.Get(projection.BaseFood, projection.Historical, projection.Dollar), "20000")
	assertFig(t, "historical Utilities %", s.Get(projection.Utilities, projection.Historical, projection.Percent), "2.5")
	assertFig(t, "projected Utilities %", s.Get(projection.Utilities, projection.Projected, projection.Percent), "0")
	assertFig(t, "historical P.A.C. $", s.Get(projection.PAC, projection.Historical, projection.Dollar), "28750")
	// No All Net Sales: both top-line ratios fall back to zero.
	assertFig(t, "historical Product Sales %", s.Get(projection.ProductSales, projection.Historical, projection.Percent), "0")
	assertFig(t, "historical All Net Sales %", s.Get(projection.AllNetSales, projection.Historical, projection.Percent), "0")
}

func TestRecalculate_NoSales(t *testing.T) {
	u := models.Unset()
	s := projection.Recalculate(projection.SeedMerge([]models.ProjectionRow{
		projected("Travel", fig("800"), u),
		projected("Base Food", u, fig("43")),
	}))

	assertFig(t, "Travel %", s.Get(projection.Travel, projection.Projected, projection.Percent), "0")
	assertFig(t, "Total Controllable $", s.Get(projection.TotalControllable, projection.Projected, projection.Dollar), "800")
	assertFig(t, "Total Controllable %", s.Get(projection.TotalControllable, projection.Projected, projection.Percent), "0")
	assertFig(t, "P.A.C. $", s.Get(projection.PAC, projection.Projected, projection.Dollar), "-800")
	assertFig(t, "P.A.C. %", s.Get(projection.PAC, projection.Projected, projection.Percent), "0")
}

func TestRecalculate_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	maybe := func(max int64) models.Figure {
		if rng.Intn(4) == 0 {
			return models.Unset()
		}
		return models.Value(decimal.New(rng.Int63n(max*100), -2))
	}

	for i := 0; i < 100; i++ {
		var rows []models.ProjectionRow
		for _, name := range projection.Names() {
			rows = append(rows, row(name, maybe(150000), maybe(60), maybe(150000), maybe(60)))
		}
		once := projection.Recalculate(projection.SeedMerge(rows))
		twice := projection.Recalculate(once)
		if !once.Equal(twice) {
			t.Fatalf("case %d: second pass changed the sheet", i)
		}
		if v := projection.CheckSheet(once); !v.IsBalanced {
			t.Fatalf("case %d: %v", i, v.Warnings)
		}
	}
}

func TestRecalculateThrough_UnknownStage(t *testing.T) {
	if _, err := projection.RecalculateThrough(referenceSheet(), "converge"); err == nil {
		t.Error("expected error for unknown stage")
	}
}

func TestStages_Order(t *testing.T) {
	want := []string{
		projection.StagePercentToDollar,
		projection.StagePassThroughPercent,
		projection.StageTotalControllable,
		projection.StageBottomLine,
		projection.StageSalesRatio,
	}
	got := projection.Stages()
	if len(got) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("stage %d expected %s, got %s", i, want[i], got[i].Name)
		}
	}
}

func TestEdit_Recalculates(t *testing.T) {
	s := projection.Recalculate(referenceSheet())
	s = projection.Edit(s, projection.Travel, projection.Projected, projection.Dollar, fig("1800"))

	assertFig(t, "Travel %", s.Get(projection.Travel, projection.Projected, projection.Percent), "1.80")
	assertFig(t, "Total Controllable $", s.Get(projection.TotalControllable, projection.Projected, projection.Dollar), "84831")
	assertFig(t, "P.A.C. $", s.Get(projection.PAC, projection.Projected, projection.Dollar), "15169")
}

func TestCheckSheet_DetectsDrift(t *testing.T) {
	s := projection.Recalculate(referenceSheet())
	s.Set(projection.TotalControllable, projection.Historical, projection.Dollar, fig("10"))

	v := projection.CheckSheet(s)
	if v.IsBalanced {
		t.Fatal("expected imbalance after manual edit")
	}
	if !v.Gap.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Gap expected 10, got %s", v.Gap)
	}
}
