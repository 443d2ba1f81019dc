// Package store persists projection documents. Three backends share one
// layout, a JSON document keyed by "<store>_<YYYYMM>": Postgres (pgx),
// SQLite (modernc) for single-host installs, and a plain directory of JSON
// files for local work.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"pacpro/pkg/core/period"
	"pacpro/pkg/core/projection"
	"pacpro/pkg/models"

	"github.com/google/uuid"
)

// Backend is a projection.Repository that owns resources.
type Backend interface {
	projection.Repository
	Name() string
	Close() error
}

// docKey validates the document's period and returns its storage key.
func docKey(doc *models.ProjectionDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("nil document")
	}
	if doc.StoreID == "" {
		return "", fmt.Errorf("document has no store id")
	}
	p, err := period.Parse(doc.Period)
	if err != nil {
		return "", err
	}
	return period.DocumentID(doc.StoreID, p), nil
}

// stamp assigns a fresh revision id and fills UpdatedAt when the caller left
// it zero.
func stamp(doc *models.ProjectionDocument) {
	doc.ID = uuid.NewString()
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
}

func encode(doc *models.ProjectionDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*models.ProjectionDocument, error) {
	var doc models.ProjectionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, nil
}
