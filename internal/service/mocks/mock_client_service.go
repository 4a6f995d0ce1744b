package mocks

import (
	"context"

	"doccenter/internal/filter"
	"doccenter/internal/model"
	"doccenter/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockClientService struct {
	mock.Mock
}

var _ service.ClientService = (*MockClientService)(nil)

func (m *MockClientService) List(ctx context.Context, q filter.ClientQuery) ([]model.ClientSummary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClientSummary), args.Error(1)
}

func (m *MockClientService) Get(ctx context.Context, id string) (*model.ClientSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientSummary), args.Error(1)
}

func (m *MockClientService) Create(ctx context.Context, c model.Client) (*model.Client, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Link(ctx context.Context, a, b string) error {
	args := m.Called(ctx, a, b)
	return args.Error(0)
}

func (m *MockClientService) Unlink(ctx context.Context, a, b string) error {
	args := m.Called(ctx, a, b)
	return args.Error(0)
}
