package repository

import (
	"context"
	"time"

	"smartsummary/internal/model"
)

// ExportRepository defines data access for export records using SQL queries only.
// Lookups return sql.ErrNoRows when nothing matches.
type ExportRepository interface {
	// Create inserts a new export record and returns the stored row.
	Create(ctx context.Context, e *model.Export) (*model.Export, error)

	// FindByID returns an export by its ID.
	FindByID(ctx context.Context, id string) (*model.Export, error)

	// ListBySession returns a session's exports, newest first, with a total count.
	ListBySession(ctx context.Context, sessionID string, pq PageQuery) (*PageResult[model.Export], error)

	// ListCreatedBefore returns up to limit exports older than before, oldest first.
	ListCreatedBefore(ctx context.Context, before time.Time, limit int) ([]model.Export, error)

	// Delete removes an export by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
