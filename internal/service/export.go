package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"smartsummary/internal/export"
	"smartsummary/internal/failure"
	"smartsummary/internal/model"
	"smartsummary/internal/repository"
	"smartsummary/internal/storage"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrSessionRequired = errors.New("session is required")
)

// purgeBatchSize bounds how many expired exports are loaded per query.
const purgeBatchSize = 100

// ExportListResult is the service-level DTO for paginated exports.
type ExportListResult struct {
	Items []model.Export `json:"data"`
	Total int            `json:"total"`
}

// ExportFile is a freshly rendered export together with its bytes.
type ExportFile struct {
	Export  *model.Export
	Content []byte
}

// ExportService defines the use cases for exported summary documents. Every
// lookup is scoped to the caller's session; exports of other sessions are
// reported as not found.
type ExportService interface {
	// Export renders the summary, uploads it under a per-session unique key, saves metadata to DB,
	// and rolls back storage if the DB save fails.
	Export(ctx context.Context, sessionID string, format model.Format, summary string) (*ExportFile, error)

	// List returns the session's exports using limit/offset and a total count.
	List(ctx context.Context, sessionID string, limit, offset int) (*ExportListResult, error)

	// Get returns a single export by its ID.
	Get(ctx context.Context, sessionID, id string) (*model.Export, error)

	// Open streams the stored document.
	Open(ctx context.Context, sessionID, id string) (io.ReadCloser, *model.Export, error)

	// DownloadURL returns a presigned URL, or storage.ErrPresignUnsupported.
	DownloadURL(ctx context.Context, sessionID, id string, expiry time.Duration) (string, *model.Export, error)

	// Delete removes an export from both storage and repository.
	Delete(ctx context.Context, sessionID, id string) error

	// PurgeExpired deletes every export created before the cutoff and returns how many were removed.
	PurgeExpired(ctx context.Context, before time.Time) (int, error)
}

type exportService struct {
	registry *export.Registry
	store    storage.Storage
	repo     repository.ExportRepository
	log      *slog.Logger
}

// NewExportService constructs a new ExportService.
func NewExportService(registry *export.Registry, store storage.Storage, repo repository.ExportRepository, log *slog.Logger) ExportService {
	return &exportService{registry: registry, store: store, repo: repo, log: log}
}

// exportKey builds "exports/<session>/<id>.<ext>".
func exportKey(sessionID, id string, f model.Format) string {
	return path.Join("exports", sessionID, id+"."+string(f))
}

func (s *exportService) Export(ctx context.Context, sessionID string, format model.Format, summary string) (*ExportFile, error) {
	if sessionID == "" {
		return nil, failure.InvalidSettings(ErrSessionRequired)
	}
	exp, err := s.registry.Get(format)
	if err != nil {
		return nil, failure.InvalidSettings(err)
	}

	content, err := exp.Render(summary)
	if err != nil {
		if errors.Is(err, export.ErrEmptySummary) {
			return nil, failure.InvalidSettings(err)
		}
		s.log.ErrorContext(ctx, "render export failed", "format", format, "error", err)
		return nil, failure.Export(fmt.Errorf("render %s: %w", format, err))
	}

	id := uuid.New().String()
	key := exportKey(sessionID, id, format)

	// Upload to object storage
	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(content), storage.PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: exp.ContentType(),
		Metadata: map[string]string{
			"download-filename": exp.Filename(),
		},
	})
	if err != nil {
		s.log.ErrorContext(ctx, "upload export failed", "key", key, "error", err)
		return nil, failure.Export(fmt.Errorf("upload to storage: %w", err))
	}

	// Save metadata to database
	rec := &model.Export{
		ID:          id,
		SessionID:   sessionID,
		Format:      format,
		Filename:    exp.Filename(),
		StoragePath: objInfo.Key,
		Size:        int64(len(content)),
		ContentType: exp.ContentType(),
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.ErrorContext(ctx, "rollback delete failed", "key", key, "error", delErr)
			return nil, failure.Export(fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr))
		}
		return nil, failure.Export(fmt.Errorf("db save failed: %w", err))
	}

	s.log.InfoContext(ctx, "export created", "export_id", stored.ID, "format", format, "size", stored.Size)
	return &ExportFile{Export: stored, Content: content}, nil
}

// List returns paginated exports without exposing repository types.
func (s *exportService) List(ctx context.Context, sessionID string, limit, offset int) (*ExportListResult, error) {
	if sessionID == "" {
		return nil, failure.InvalidSettings(ErrSessionRequired)
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListBySession(ctx, sessionID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ExportListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns an export by ID if it belongs to the session.
func (s *exportService) Get(ctx context.Context, sessionID, id string) (*model.Export, error) {
	if id == "" {
		return nil, failure.InvalidSettings(ErrIDRequired)
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, failure.ErrNotFound
		}
		return nil, err
	}
	if e.SessionID != sessionID {
		return nil, failure.ErrNotFound
	}
	return e, nil
}

func (s *exportService) Open(ctx context.Context, sessionID, id string) (io.ReadCloser, *model.Export, error) {
	e, err := s.Get(ctx, sessionID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, e.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read storage: %w", err)
	}
	return rc, e, nil
}

func (s *exportService) DownloadURL(ctx context.Context, sessionID, id string, expiry time.Duration) (string, *model.Export, error) {
	e, err := s.Get(ctx, sessionID, id)
	if err != nil {
		return "", nil, err
	}
	u, err := s.store.PresignGet(ctx, e.StoragePath, expiry)
	if err != nil {
		return "", e, err
	}
	return u, e, nil
}

// Delete removes an export from storage, then deletes its record.
func (s *exportService) Delete(ctx context.Context, sessionID, id string) error {
	e, err := s.Get(ctx, sessionID, id)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, e.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	// Delete DB row (repository ignores missing row errors as per contract)
	return s.repo.Delete(ctx, id)
}

// PurgeExpired deletes expired exports batch by batch. An export whose object
// cannot be removed keeps its row and is retried on the next run.
func (s *exportService) PurgeExpired(ctx context.Context, before time.Time) (int, error) {
	var (
		purged int
		errs   []error
	)
	for {
		batch, err := s.repo.ListCreatedBefore(ctx, before, purgeBatchSize)
		if err != nil {
			return purged, fmt.Errorf("list expired exports: %w", err)
		}

		removed := 0
		for _, e := range batch {
			if err := s.store.Delete(ctx, e.StoragePath); err != nil {
				errs = append(errs, fmt.Errorf("delete object %s: %w", e.StoragePath, err))
				continue
			}
			if err := s.repo.Delete(ctx, e.ID); err != nil {
				errs = append(errs, fmt.Errorf("delete row %s: %w", e.ID, err))
				continue
			}
			removed++
		}
		purged += removed

		// A short batch is the last one; a batch with no progress would repeat forever.
		if len(batch) < purgeBatchSize || removed == 0 {
			break
		}
	}

	if purged > 0 || len(errs) > 0 {
		s.log.InfoContext(ctx, "expired exports purged", "count", purged, "failed", len(errs), "before", before)
	}
	return purged, errors.Join(errs...)
}
