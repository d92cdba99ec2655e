package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartsummary/internal/model"
)

type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Summarize(ctx context.Context, req model.SummaryRequest) (*model.Summary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Summary), args.Error(1)
}
