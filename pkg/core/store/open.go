package store

import (
	"context"
	"fmt"

	"pacpro/pkg/core/config"
	"pacpro/pkg/core/metrics"
	"pacpro/pkg/core/period"
	"pacpro/pkg/models"
)

// Open picks the backend from cfg: Postgres when a database URL is set,
// else SQLite when a path is set, else the file directory. The returned
// backend counts failures in metrics.StoreErrors.
func Open(ctx context.Context, cfg config.StoreConfig) (Backend, error) {
	var (
		b   Backend
		err error
	)
	switch {
	case cfg.DatabaseURL != "":
		if err = InitDB(ctx, cfg.DatabaseURL); err != nil {
			return nil, err
		}
		if err = EnsureSchema(ctx); err != nil {
			Close()
			return nil, err
		}
		b = NewProjectionRepo(GetPool())
	case cfg.SQLitePath != "":
		b, err = NewSQLiteRepo(cfg.SQLitePath)
	default:
		b, err = NewFileRepo(cfg.FileDir)
	}
	if err != nil {
		return nil, err
	}
	fmt.Printf("[STORE] Using %s backend\n", b.Name())
	return &instrumented{Backend: b}, nil
}

type instrumented struct {
	Backend
}

func (i *instrumented) Load(ctx context.Context, storeID string, p period.Period) (*models.ProjectionDocument, error) {
	doc, err := i.Backend.Load(ctx, storeID, p)
	if err != nil {
		metrics.StoreErrors.WithLabelValues(i.Name(), "load").Inc()
		fmt.Printf("[STORE] Load %s failed: %v\n", period.DocumentID(storeID, p), err)
	}
	return doc, err
}

func (i *instrumented) Save(ctx context.Context, doc *models.ProjectionDocument) error {
	err := i.Backend.Save(ctx, doc)
	if err != nil {
		metrics.StoreErrors.WithLabelValues(i.Name(), "save").Inc()
		fmt.Printf("[STORE] Save failed: %v\n", err)
	}
	return err
}
