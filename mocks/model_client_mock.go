package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) Query(ctx context.Context, prompt string) (*models.AnalysisResult, error) {
	args := m.Called(ctx, prompt)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AnalysisResult), args.Error(1)
}
