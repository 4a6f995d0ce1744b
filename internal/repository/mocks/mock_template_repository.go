package mocks

import (
	"context"

	"doccenter/internal/model"
	"doccenter/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockTemplateRepository struct {
	mock.Mock
}

var _ repository.TemplateRepository = (*MockTemplateRepository)(nil)

func (m *MockTemplateRepository) Create(ctx context.Context, t *model.SignatureTemplate) (*model.SignatureTemplate, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SignatureTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id string) (*model.SignatureTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SignatureTemplate), args.Error(1)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]model.SignatureTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SignatureTemplate), args.Error(1)
}
