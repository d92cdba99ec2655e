package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartsummary/internal/summarizer"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) Summarize(ctx context.Context, req summarizer.Request) (summarizer.Result, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(summarizer.Result), args.Error(1)
}
