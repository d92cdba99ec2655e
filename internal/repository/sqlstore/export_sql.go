package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"smartsummary/internal/model"
	"smartsummary/internal/repository"
)

// ExportSQL implements repository.ExportRepository on database/sql. The
// queries use $n placeholders and RETURNING, which both PostgreSQL and
// SQLite accept.
type ExportSQL struct {
	db *sql.DB
}

// NewExportSQL creates a new ExportSQL repository.
func NewExportSQL(db *sql.DB) *ExportSQL {
	return &ExportSQL{db: db}
}

var _ repository.ExportRepository = (*ExportSQL)(nil)

const exportColumns = `id, session_id, format, filename, storage_path, size, content_type, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanExport(s scanner) (model.Export, error) {
	var (
		e      model.Export
		format string
	)
	err := s.Scan(
		&e.ID,
		&e.SessionID,
		&format,
		&e.Filename,
		&e.StoragePath,
		&e.Size,
		&e.ContentType,
		&e.CreatedAt,
	)
	e.Format = model.Format(format)
	return e, err
}

// Create inserts a new export row and returns the stored record.
func (r *ExportSQL) Create(ctx context.Context, e *model.Export) (*model.Export, error) {
	const q = `
		INSERT INTO exports (id, session_id, format, filename, storage_path, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + exportColumns
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		e.SessionID,
		string(e.Format),
		e.Filename,
		e.StoragePath,
		e.Size,
		e.ContentType,
		e.CreatedAt,
	)
	out, err := scanExport(row)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single export by its ID.
func (r *ExportSQL) FindByID(ctx context.Context, id string) (*model.Export, error) {
	const q = `SELECT ` + exportColumns + ` FROM exports WHERE id = $1`
	e, err := scanExport(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListBySession returns exports of one session using LIMIT/OFFSET pagination and a total count.
func (r *ExportSQL) ListBySession(ctx context.Context, sessionID string, pq repository.PageQuery) (*repository.PageResult[model.Export], error) {
	const qCount = `SELECT COUNT(*) FROM exports WHERE session_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, sessionID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + exportColumns + `
		FROM exports
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	items, err := r.query(ctx, qList, sessionID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Export]{Items: items, Total: total}, nil
}

// ListCreatedBefore returns the oldest exports created before the cutoff.
func (r *ExportSQL) ListCreatedBefore(ctx context.Context, before time.Time, limit int) ([]model.Export, error) {
	const q = `
		SELECT ` + exportColumns + `
		FROM exports
		WHERE created_at < $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2
	`
	return r.query(ctx, q, before.UTC(), limit)
}

func (r *ExportSQL) query(ctx context.Context, q string, args ...any) ([]model.Export, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Export, 0)
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes an export by ID. It does not return an error if the row does not exist.
func (r *ExportSQL) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM exports WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
