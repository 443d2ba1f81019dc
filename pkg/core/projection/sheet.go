package projection

import (
	"pacpro/pkg/models"
)

// Cell is the dollar/percent pair of one column.
type Cell struct {
	Dollar  models.Figure
	Percent models.Figure
}

func (c Cell) get(f Field) models.Figure {
	if f == Percent {
		return c.Percent
	}
	return c.Dollar
}

func (c *Cell) set(f Field, v models.Figure) {
	if f == Percent {
		c.Percent = v
		return
	}
	c.Dollar = v
}

// Row holds both columns of one line.
type Row struct {
	Projected  Cell
	Historical Cell
}

// Cell returns the pair for column c.
func (r Row) Cell(c Column) Cell {
	if c == Historical {
		return r.Historical
	}
	return r.Projected
}

func (r *Row) cell(c Column) *Cell {
	if c == Historical {
		return &r.Historical
	}
	return &r.Projected
}

// Sheet is the complete projection: one Row per canonical Line, in order.
// It is a value type; copies are independent.
type Sheet struct {
	rows [LineCount]Row
}

// Row returns the row for line l.
func (s Sheet) Row(l Line) Row {
	return s.rows[l]
}

// Get returns one figure.
func (s Sheet) Get(l Line, c Column, f Field) models.Figure {
	return s.rows[l].Cell(c).get(f)
}

// Set replaces one figure.
func (s *Sheet) Set(l Line, c Column, f Field, v models.Figure) {
	s.rows[l].cell(c).set(f, v)
}

// Rows renders the sheet as the ordered row list.
func (s Sheet) Rows() []models.ProjectionRow {
	out := make([]models.ProjectionRow, LineCount)
	for i, r := range s.rows {
		out[i] = models.ProjectionRow{
			Name:              lineNames[i],
			ProjectedDollar:   r.Projected.Dollar,
			ProjectedPercent:  r.Projected.Percent,
			HistoricalDollar:  r.Historical.Dollar,
			HistoricalPercent: r.Historical.Percent,
		}
	}
	return out
}

// Equal compares every figure of both sheets.
func (s Sheet) Equal(o Sheet) bool {
	for i := range s.rows {
		a, b := s.rows[i], o.rows[i]
		if !a.Projected.Dollar.Equal(b.Projected.Dollar) ||
			!a.Projected.Percent.Equal(b.Projected.Percent) ||
			!a.Historical.Dollar.Equal(b.Historical.Dollar) ||
			!a.Historical.Percent.Equal(b.Historical.Percent) {
			return false
		}
	}
	return true
}

// Edit sets one figure and recalculates the whole sheet.
func Edit(s Sheet, l Line, c Column, f Field, v models.Figure) Sheet {
	s.Set(l, c, f, v)
	return Recalculate(s)
}
