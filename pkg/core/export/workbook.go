// Package export writes PAC reports and projection sheets to Excel workbooks.
package export

import (
	"errors"
	"fmt"
	"io"

	"pacpro/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	PACSheet         = "PAC"
	ProjectionsSheet = "Projections"
)

var projectionHeader = []interface{}{"Name", "Projected $", "Projected %", "Historical $", "Historical %"}

// Exporter fills a workbook sheet by sheet.
type Exporter struct {
	wb         *excelize.File
	moneyStyle int
	headStyle  int
}

// NewExporter creates an exporter over a fresh workbook.
func NewExporter() (*Exporter, error) {
	wb := excelize.NewFile()
	money, err := wb.NewStyle(&excelize.Style{CustomNumFmt: strPtr("#,##0.00")})
	if err != nil {
		_ = wb.Close()
		return nil, fmt.Errorf("money style: %w", err)
	}
	head, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = wb.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	return &Exporter{wb: wb, moneyStyle: money, headStyle: head}, nil
}

func strPtr(s string) *string { return &s }

// Workbook returns the underlying file.
func (e *Exporter) Workbook() *excelize.File {
	return e.wb
}

// WritePAC writes the Actual report: one row per expense line, then totals.
func (e *Exporter) WritePAC(storeID, period string, r models.CalculationResult) error {
	if e == nil || e.wb == nil {
		return errors.New("workbook is nil")
	}
	if err := e.ensureSheet(PACSheet); err != nil {
		return err
	}

	title := fmt.Sprintf("P.A.C. %s %s", storeID, period)
	if err := e.wb.SetCellValue(PACSheet, "A1", title); err != nil {
		return err
	}
	if err := e.header(PACSheet, 3, []interface{}{"Line", "$", "%"}); err != nil {
		return err
	}

	row := 4
	// Sales rows carry no percent column.
	put := func(label string, values ...decimal.Decimal) error {
		if err := e.wb.SetCellValue(PACSheet, cell(1, row), label); err != nil {
			return err
		}
		for i, v := range values {
			if err := e.number(PACSheet, cell(i+2, row), v); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	if err := put("Product Net Sales", r.ProductNetSales); err != nil {
		return err
	}
	if err := put("All Net Sales", r.AllNetSales); err != nil {
		return err
	}
	for _, ne := range r.ControllableExpenses.Named() {
		if err := put(ne.Name, ne.Line.Dollars, ne.Line.Percent); err != nil {
			return err
		}
	}
	if err := put("Total Controllable", r.TotalControllableDollars, r.TotalControllablePercent); err != nil {
		return err
	}
	if err := put("P.A.C.", r.BottomLineDollars, r.BottomLinePercent); err != nil {
		return err
	}
	return e.wb.SetColWidth(PACSheet, "A", "A", 24)
}

// WriteProjections writes the projection rows; unset figures stay blank.
func (e *Exporter) WriteProjections(rows []models.ProjectionRow) error {
	if e == nil || e.wb == nil {
		return errors.New("workbook is nil")
	}
	if err := e.ensureSheet(ProjectionsSheet); err != nil {
		return err
	}
	if err := e.header(ProjectionsSheet, 1, projectionHeader); err != nil {
		return err
	}

	for i, r := range rows {
		n := i + 2
		if err := e.wb.SetCellValue(ProjectionsSheet, cell(1, n), r.Name); err != nil {
			return err
		}
		for col, f := range []models.Figure{r.ProjectedDollar, r.ProjectedPercent, r.HistoricalDollar, r.HistoricalPercent} {
			d, ok := f.Decimal()
			if !ok {
				continue
			}
			if err := e.number(ProjectionsSheet, cell(col+2, n), d); err != nil {
				return err
			}
		}
	}
	return e.wb.SetColWidth(ProjectionsSheet, "A", "A", 24)
}

// WriteTo drops the default sheet if unused and streams the workbook.
func (e *Exporter) WriteTo(w io.Writer) (int64, error) {
	if idx, err := e.wb.GetSheetIndex("Sheet1"); err == nil && idx >= 0 && e.wb.SheetCount > 1 {
		if err := e.wb.DeleteSheet("Sheet1"); err != nil {
			return 0, err
		}
	}
	return e.wb.WriteTo(w)
}

// Close releases the workbook.
func (e *Exporter) Close() error {
	return e.wb.Close()
}

func (e *Exporter) ensureSheet(name string) error {
	idx, err := e.wb.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx >= 0 {
		return nil
	}
	idx, err = e.wb.NewSheet(name)
	if err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	e.wb.SetActiveSheet(idx)
	return nil
}

func (e *Exporter) header(sheet string, row int, values []interface{}) error {
	start := cell(1, row)
	if err := e.wb.SetSheetRow(sheet, start, &values); err != nil {
		return err
	}
	return e.wb.SetCellStyle(sheet, start, cell(len(values), row), e.headStyle)
}

func (e *Exporter) number(sheet, axis string, d decimal.Decimal) error {
	if err := e.wb.SetCellFloat(sheet, axis, d.InexactFloat64(), 2, 64); err != nil {
		return err
	}
	return e.wb.SetCellStyle(sheet, axis, axis, e.moneyStyle)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
