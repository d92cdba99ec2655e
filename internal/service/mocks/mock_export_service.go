package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"smartsummary/internal/model"
	"smartsummary/internal/service"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, sessionID string, format model.Format, summary string) (*service.ExportFile, error) {
	args := m.Called(ctx, sessionID, format, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) List(ctx context.Context, sessionID string, limit, offset int) (*service.ExportListResult, error) {
	args := m.Called(ctx, sessionID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportListResult), args.Error(1)
}

func (m *MockExportService) Get(ctx context.Context, sessionID, id string) (*model.Export, error) {
	args := m.Called(ctx, sessionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Export), args.Error(1)
}

func (m *MockExportService) Open(ctx context.Context, sessionID, id string) (io.ReadCloser, *model.Export, error) {
	args := m.Called(ctx, sessionID, id)
	var (
		rc io.ReadCloser
		e  *model.Export
	)
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	if v := args.Get(1); v != nil {
		e = v.(*model.Export)
	}
	return rc, e, args.Error(2)
}

func (m *MockExportService) DownloadURL(ctx context.Context, sessionID, id string, expiry time.Duration) (string, *model.Export, error) {
	args := m.Called(ctx, sessionID, id, expiry)
	var e *model.Export
	if v := args.Get(1); v != nil {
		e = v.(*model.Export)
	}
	return args.String(0), e, args.Error(2)
}

func (m *MockExportService) Delete(ctx context.Context, sessionID, id string) error {
	args := m.Called(ctx, sessionID, id)
	return args.Error(0)
}

func (m *MockExportService) PurgeExpired(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}
