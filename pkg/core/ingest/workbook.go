package ingest

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pacpro/pkg/models"

	"github.com/extrame/xls"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ProjectionsSheet is the worksheet name preferred when a workbook has several.
const ProjectionsSheet = "Projections"

var headerAliases = map[string]string{
	"name":               "name",
	"line":               "name",
	"projected $":        "pd",
	"projected dollar":   "pd",
	"projected %":        "pp",
	"projected percent":  "pp",
	"historical $":       "hd",
	"historical dollar":  "hd",
	"historical %":       "hp",
	"historical percent": "hp",
}

// ReadWorkbookRows reads projection rows from an uploaded .xlsx or .xls file.
// The first row holding a "Name" header starts the table; blank cells become
// unset figures.
func ReadWorkbookRows(filename string, reader io.Reader) ([]models.ProjectionRow, error) {
	cells, err := readSpreadsheet(filename, reader)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", filename, err)
	}
	rows, err := rowsFromCells(cells)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", filename, err)
	}
	return rows, nil
}

func readSpreadsheet(filename string, reader io.Reader) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows := workbook.ReadAllCells(100000)
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if idx, err := file.GetSheetIndex(ProjectionsSheet); err == nil && idx >= 0 {
			sheetName = ProjectionsSheet
		}
		if sheetName == "" {
			return nil, fmt.Errorf("no worksheet found")
		}

		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	}
}

func rowsFromCells(cells [][]string) ([]models.ProjectionRow, error) {
	headerAt, cols := -1, map[string]int{}
	for i, r := range cells {
		found := map[string]int{}
		for j, h := range r {
			if key, ok := headerAliases[normalizeHeader(h)]; ok {
				if _, dup := found[key]; !dup {
					found[key] = j
				}
			}
		}
		if _, ok := found["name"]; ok {
			headerAt, cols = i, found
			break
		}
	}
	if headerAt < 0 {
		return nil, fmt.Errorf("no header row with a Name column")
	}

	var out []models.ProjectionRow
	for i := headerAt + 1; i < len(cells); i++ {
		r := cells[i]
		name := cellValue(r, cols["name"])
		if name == "" {
			continue
		}
		row := models.ProjectionRow{Name: name}
		targets := []struct {
			key string
			dst *models.Figure
		}{
			{"pd", &row.ProjectedDollar},
			{"pp", &row.ProjectedPercent},
			{"hd", &row.HistoricalDollar},
			{"hp", &row.HistoricalPercent},
		}
		for _, t := range targets {
			idx, ok := cols[t.key]
			if !ok {
				continue
			}
			f, err := parseFigure(cellValue(r, idx))
			if err != nil {
				return nil, fmt.Errorf("row %d (%s): %w", i+1, name, err)
			}
			*t.dst = f
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no projection rows below header")
	}
	return out, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.Join(strings.Fields(header), " "))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseFigure accepts spreadsheet-formatted numbers: "$1,250.00", "4.5%",
// "(300)" for negatives. Blank and "-" are unset.
func parseFigure(raw string) (models.Figure, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return models.Unset(), nil
	}
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if negative {
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return models.Unset(), fmt.Errorf("invalid number %q", raw)
	}
	if negative {
		d = d.Neg()
	}
	return models.Value(d), nil
}
