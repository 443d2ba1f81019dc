package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"net/url"
	"path/filepath"
	"sync"

	"pacpro/pkg/core/period"
	"pacpro/pkg/models"
)

// FileRepo keeps one JSON file per store-period in a directory.
type FileRepo struct {
	mu      sync.Mutex
	fileDir string
}

// NewFileRepo creates the repository, defaulting to .cache/pac/projections.
func NewFileRepo(dir string) (*FileRepo, error) {
	if dir == "" {
		dir = filepath.Join(".cache", "pac", "projections")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", dir, err)
	}
	return &FileRepo{fileDir: dir}, nil
}

func (r *FileRepo) Name() string { return "file" }

// Load returns the document for (storeID, p), or nil when no file exists.
func (r *FileRepo) Load(_ context.Context, storeID string, p period.Period) (*models.ProjectionDocument, error) {
	data, err := os.ReadFile(r.docPath(period.DocumentID(storeID, p)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read projections: %w", err)
	}
	return decode(data)
}

// Save writes doc atomically (temp file + rename) with a new revision id.
func (r *FileRepo) Save(_ context.Context, doc *models.ProjectionDocument) error {
	key, err := docKey(doc)
	if err != nil {
		return err
	}
	stamp(doc)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.docPath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to save to file store: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to save to file store: %w", err)
	}
	return nil
}

func (r *FileRepo) Close() error { return nil }

func (r *FileRepo) docPath(key string) string {
	// Store ids come from URLs. Escaping keeps them inside fileDir and keeps
	// distinct ids on distinct files.
	return filepath.Join(r.fileDir, url.PathEscape(key)+".json")
}
