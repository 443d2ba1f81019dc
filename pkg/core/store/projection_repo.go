package store

import (
	"context"
	"errors"
	"fmt"

	"pacpro/pkg/core/period"
	"pacpro/pkg/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectionRepo stores projection documents in the pac_projections table.
type ProjectionRepo struct {
	pool *pgxpool.Pool
}

// NewProjectionRepo creates a repository on the shared pool (see InitDB).
func NewProjectionRepo(p *pgxpool.Pool) *ProjectionRepo {
	return &ProjectionRepo{pool: p}
}

func (r *ProjectionRepo) Name() string { return "postgres" }

// Load returns the document for (storeID, p), or nil when none exists.
func (r *ProjectionRepo) Load(ctx context.Context, storeID string, p period.Period) (*models.ProjectionDocument, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT document FROM pac_projections WHERE doc_id = $1`

	var data []byte
	err := r.pool.QueryRow(ctx, query, period.DocumentID(storeID, p)).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load projections: %w", err)
	}
	return decode(data)
}

// Save upserts doc under its store and period with a new revision id.
func (r *ProjectionRepo) Save(ctx context.Context, doc *models.ProjectionDocument) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	key, err := docKey(doc)
	if err != nil {
		return err
	}
	stamp(doc)
	data, err := encode(doc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO pac_projections (doc_id, store_id, period, revision_id, document, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (doc_id)
		DO UPDATE SET
			revision_id = EXCLUDED.revision_id,
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query, key, doc.StoreID, doc.Period, doc.ID, data, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save projections: %w", err)
	}
	return nil
}

// Close releases the shared pool.
func (r *ProjectionRepo) Close() error {
	Close()
	return nil
}
