package storage

import (
	"context"
	"fmt"
	"strings"

	"smartsummary/internal/config"
)

// New builds the backend selected by STORAGE_BACKEND. The returned close
// func is never nil.
func New(ctx context.Context, cfg *config.AppConfig) (Storage, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Storage.Backend) {
	case "local":
		st, err := NewLocal(cfg.Storage.LocalDir)
		return st, noop, err
	case "minio":
		st, err := NewMinIO(ctx, cfg.MinIO)
		return st, noop, err
	case "gcs":
		st, closeFn, err := NewGCS(ctx, cfg.GCS)
		if err != nil {
			return nil, noop, err
		}
		return st, closeFn, nil
	default:
		return nil, noop, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
