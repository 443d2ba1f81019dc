package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pacpro/pkg/core/period"
	"pacpro/pkg/models"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteRepo keeps projection documents as JSON blobs in one SQLite table.
type SQLiteRepo struct {
	db   *sql.DB
	path string
}

// NewSQLiteRepo opens (creating if needed) the database at path.
func NewSQLiteRepo(path string) (*SQLiteRepo, error) {
	if path == "" {
		path = "pacpro.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; SQLite serializes anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS pac_projections (
		doc_id      TEXT PRIMARY KEY,
		store_id    TEXT NOT NULL,
		period      TEXT NOT NULL,
		revision_id TEXT NOT NULL,
		document    BLOB NOT NULL,
		updated_at  TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create pac_projections table: %w", err)
	}
	return &SQLiteRepo{db: db, path: path}, nil
}

func (r *SQLiteRepo) Name() string { return "sqlite" }

// Load returns the document for (storeID, p), or nil when none exists.
func (r *SQLiteRepo) Load(ctx context.Context, storeID string, p period.Period) (*models.ProjectionDocument, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM pac_projections WHERE doc_id = ?`,
		period.DocumentID(storeID, p),
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select projections: %w", err)
	}
	return decode(data)
}

// Save upserts doc with a new revision id.
func (r *SQLiteRepo) Save(ctx context.Context, doc *models.ProjectionDocument) error {
	key, err := docKey(doc)
	if err != nil {
		return err
	}
	stamp(doc)
	data, err := encode(doc)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pac_projections (doc_id, store_id, period, revision_id, document, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (doc_id) DO UPDATE SET
			revision_id = excluded.revision_id,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		key, doc.StoreID, doc.Period, doc.ID, data, doc.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert projections: %w", err)
	}
	return nil
}

// Close closes the database.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}
