package projection

import (
	"pacpro/pkg/core/calc"
	"pacpro/pkg/models"
)

// SeedMerge completes a possibly partial row list into a canonical Sheet.
// See SeedMergeReport.
func SeedMerge(rows []models.ProjectionRow) Sheet {
	s, _ := SeedMergeReport(rows)
	return s
}

// SeedMergeReport matches rows to canonical lines by name (case-insensitive,
// first match wins) and leaves every unmatched line fully unset. Concrete
// figures are settled to cents; unset figures stay unset. Names that match no
// canonical line are returned so callers can log them.
func SeedMergeReport(rows []models.ProjectionRow) (Sheet, []string) {
	var s Sheet
	var seen [LineCount]bool
	var unknown []string

	for _, r := range rows {
		l, ok := LineByName(r.Name)
		if !ok {
			unknown = append(unknown, r.Name)
			continue
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		s.rows[l] = Row{
			Projected:  Cell{Dollar: normalize(r.ProjectedDollar), Percent: normalize(r.ProjectedPercent)},
			Historical: Cell{Dollar: normalize(r.HistoricalDollar), Percent: normalize(r.HistoricalPercent)},
		}
	}
	return s, unknown
}

func normalize(f models.Figure) models.Figure {
	d, ok := f.Decimal()
	if !ok {
		return f
	}
	return models.Value(calc.Round2(d))
}
