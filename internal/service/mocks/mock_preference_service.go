package mocks

import (
	"context"

	"doccenter/internal/model"
	"doccenter/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockPreferenceService struct {
	mock.Mock
}

var _ service.PreferenceService = (*MockPreferenceService)(nil)

func (m *MockPreferenceService) ViewMode(ctx context.Context) (model.ViewMode, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ViewMode), args.Error(1)
}

func (m *MockPreferenceService) SetViewMode(ctx context.Context, mode model.ViewMode) error {
	args := m.Called(ctx, mode)
	return args.Error(0)
}
