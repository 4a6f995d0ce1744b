package mocks

import (
	"context"

	"doccenter/internal/model"
	"doccenter/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockTemplateService struct {
	mock.Mock
}

var _ service.TemplateService = (*MockTemplateService)(nil)

func (m *MockTemplateService) FirmUsers(ctx context.Context) []model.FirmUser {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.FirmUser)
}

func (m *MockTemplateService) Create(ctx context.Context, actor string, in service.TemplateInput) (*model.SignatureTemplate, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SignatureTemplate), args.Error(1)
}

func (m *MockTemplateService) Get(ctx context.Context, id string) (*model.SignatureTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SignatureTemplate), args.Error(1)
}

func (m *MockTemplateService) List(ctx context.Context) ([]model.SignatureTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SignatureTemplate), args.Error(1)
}
