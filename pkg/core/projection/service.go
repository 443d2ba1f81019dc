package projection

import (
	"context"
	"fmt"
	"time"

	"pacpro/pkg/core/calc"
	"pacpro/pkg/core/period"
	"pacpro/pkg/models"

	"github.com/shopspring/decimal"
)

// Seed sources reported on a ProjectionSheet.
const (
	SourceCurrent  = "current"
	SourcePrevious = "previous"
	SourceEmpty    = "empty"
)

// Repository persists projection documents keyed by (store, period).
// Load returns nil, nil when no document exists.
type Repository interface {
	Load(ctx context.Context, storeID string, p period.Period) (*models.ProjectionDocument, error)
	Save(ctx context.Context, doc *models.ProjectionDocument) error
}

// Service wires seed/merge and the pipeline to a Repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a projection service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Seed loads the sheet for p, falling back to the previous month when p has
// no rows, and returns it seeded and recalculated.
func (s *Service) Seed(ctx context.Context, storeID string, p period.Period) (*models.ProjectionSheet, error) {
	source := SourceCurrent
	doc, err := s.repo.Load(ctx, storeID, p)
	if err != nil {
		return nil, fmt.Errorf("load projections %s/%s: %w", storeID, p, err)
	}
	if doc == nil || len(doc.Rows) == 0 {
		prev := p.Prev()
		doc, err = s.repo.Load(ctx, storeID, prev)
		if err != nil {
			return nil, fmt.Errorf("load projections %s/%s: %w", storeID, prev, err)
		}
		source = SourcePrevious
		if doc == nil || len(doc.Rows) == 0 {
			source = SourceEmpty
		}
	}

	var rows []models.ProjectionRow
	goal := decimal.Zero
	if doc != nil {
		rows, goal = doc.Rows, doc.PacGoal
	}
	return &models.ProjectionSheet{
		StoreID: storeID,
		Period:  p.String(),
		Source:  source,
		PacGoal: goal,
		Rows:    Recalculate(SeedMerge(rows)).Rows(),
	}, nil
}

// Historical returns the stored projected figures for p relabeled as
// historical values, one row per canonical line. Missing figures read as 0.00.
func (s *Service) Historical(ctx context.Context, storeID string, p period.Period) ([]models.ProjectionRow, error) {
	doc, err := s.repo.Load(ctx, storeID, p)
	if err != nil {
		return nil, fmt.Errorf("load projections %s/%s: %w", storeID, p, err)
	}
	var rows []models.ProjectionRow
	if doc != nil {
		rows = doc.Rows
	}
	sheet := SeedMerge(rows)

	out := make([]models.ProjectionRow, 0, LineCount)
	for _, l := range Lines() {
		cell := sheet.Row(l).Projected
		out = append(out, models.ProjectionRow{
			Name:              l.Name(),
			HistoricalDollar:  models.Value(calc.Round2(cell.Dollar.OrZero())),
			HistoricalPercent: models.Value(calc.Round2(cell.Percent.OrZero())),
		})
	}
	return out, nil
}

// Save seeds and recalculates rows, then persists them as a new revision.
// The structured input already stored for the period is kept.
func (s *Service) Save(ctx context.Context, storeID string, p period.Period, goal decimal.Decimal, rows []models.ProjectionRow) (*models.ProjectionSheet, error) {
	existing, err := s.repo.Load(ctx, storeID, p)
	if err != nil {
		return nil, fmt.Errorf("load projections %s/%s: %w", storeID, p, err)
	}

	recalculated := Recalculate(SeedMerge(rows)).Rows()
	doc := &models.ProjectionDocument{
		StoreID:   storeID,
		Period:    p.String(),
		PacGoal:   goal,
		Rows:      recalculated,
		UpdatedAt: s.now().UTC(),
	}
	if existing != nil {
		doc.Input = existing.Input
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save projections %s/%s: %w", storeID, p, err)
	}

	return &models.ProjectionSheet{
		StoreID: storeID,
		Period:  p.String(),
		Source:  SourceCurrent,
		PacGoal: goal,
		Rows:    recalculated,
	}, nil
}

// Import saves rows read from an uploaded workbook, keeping the stored goal.
func (s *Service) Import(ctx context.Context, storeID string, p period.Period, rows []models.ProjectionRow) (*models.ProjectionSheet, error) {
	existing, err := s.repo.Load(ctx, storeID, p)
	if err != nil {
		return nil, fmt.Errorf("load projections %s/%s: %w", storeID, p, err)
	}
	goal := decimal.Zero
	if existing != nil {
		goal = existing.PacGoal
	}
	return s.Save(ctx, storeID, p, goal, rows)
}

// SaveInput stores the structured input record for p as a new revision. The
// goal and rows already stored for the period are kept.
func (s *Service) SaveInput(ctx context.Context, storeID string, p period.Period, in models.InputRecord) (*models.ProjectionDocument, error) {
	existing, err := s.repo.Load(ctx, storeID, p)
	if err != nil {
		return nil, fmt.Errorf("load projections %s/%s: %w", storeID, p, err)
	}

	doc := &models.ProjectionDocument{
		StoreID:   storeID,
		Period:    p.String(),
		PacGoal:   decimal.Zero,
		Input:     &in,
		UpdatedAt: s.now().UTC(),
	}
	if existing != nil {
		doc.PacGoal = existing.PacGoal
		doc.Rows = existing.Rows
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save input %s/%s: %w", storeID, p, err)
	}
	return doc, nil
}
