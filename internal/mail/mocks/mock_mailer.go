package mocks

import (
	"context"

	"doccenter/internal/mail"

	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

var _ mail.Mailer = (*MockMailer)(nil)

func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
