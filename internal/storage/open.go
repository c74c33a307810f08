// Package storage selects a core.Storage backend from configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/rezkam/eisen/internal/config"
	"github.com/rezkam/eisen/internal/core"
	"github.com/rezkam/eisen/internal/storage/fs"
	"github.com/rezkam/eisen/internal/storage/gcs"
	sqlstorage "github.com/rezkam/eisen/internal/storage/sql"
)

// Open returns the backend named by cfg.Type and a function releasing its resources.
// cfg is expected to be finalized.
func Open(ctx context.Context, cfg config.StorageConfig) (core.Storage, func() error, error) {
	switch cfg.Type {
	case config.StorageFS:
		store := fs.NewStore(cfg.Path)
		return store, store.Close, nil

	case config.StorageGCS:
		store, err := gcs.NewStore(ctx, gcs.Config{
			Bucket:   cfg.GCSBucket,
			Object:   cfg.GCSObject,
			Endpoint: cfg.GCSEndpoint,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case config.StorageSQLite:
		store, err := sqlstorage.NewStore(ctx, sqlstorage.DBConfig{
			Dialect: sqlstorage.DialectSQLite,
			DSN:     cfg.Path,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case config.StoragePostgres:
		store, err := sqlstorage.NewStore(ctx, sqlstorage.DBConfig{
			Dialect: sqlstorage.DialectPostgres,
			DSN:     cfg.DSN,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}
