package mocks

import (
	"context"

	"doccenter/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockRequestService struct {
	mock.Mock
}

var _ service.RequestService = (*MockRequestService)(nil)

func (m *MockRequestService) Preview(ctx context.Context, in service.RequestInput) (*service.RequestPreview, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RequestPreview), args.Error(1)
}

func (m *MockRequestService) Send(ctx context.Context, actor string, in service.RequestInput) (*service.RequestResult, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RequestResult), args.Error(1)
}
