package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"smartsummary/internal/model"
	"smartsummary/internal/repository"
)

type MockExportRepository struct {
	mock.Mock
}

func (m *MockExportRepository) Create(ctx context.Context, e *model.Export) (*model.Export, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.Export) *model.Export); ok {
		return f(ctx, e), args.Error(1)
	}
	return args.Get(0).(*model.Export), args.Error(1)
}

func (m *MockExportRepository) FindByID(ctx context.Context, id string) (*model.Export, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Export), args.Error(1)
}

func (m *MockExportRepository) ListBySession(ctx context.Context, sessionID string, pq repository.PageQuery) (*repository.PageResult[model.Export], error) {
	args := m.Called(ctx, sessionID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Export]), args.Error(1)
}

func (m *MockExportRepository) ListCreatedBefore(ctx context.Context, before time.Time, limit int) ([]model.Export, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Export), args.Error(1)
}

func (m *MockExportRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
