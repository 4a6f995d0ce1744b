package mocks

import (
	"context"

	"doccenter/internal/filter"
	"doccenter/internal/model"
	"doccenter/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

var _ service.DocumentService = (*MockDocumentService)(nil)

func (m *MockDocumentService) List(ctx context.Context, q filter.DocumentQuery) (*service.DocumentListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockDocumentService) Accounts(ctx context.Context, q filter.DocumentQuery) (*service.AccountsResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccountsResult), args.Error(1)
}

func (m *MockDocumentService) Organize(ctx context.Context, q filter.DocumentQuery) ([]filter.CategoryGroup, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]filter.CategoryGroup), args.Error(1)
}

func (m *MockDocumentService) Stats(ctx context.Context) (*filter.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filter.Stats), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.DocumentView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentView), args.Error(1)
}

func (m *MockDocumentService) Upload(ctx context.Context, actor string, in service.UploadInput) (*model.DocumentView, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentView), args.Error(1)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, actor, id string) (string, error) {
	args := m.Called(ctx, actor, id)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) view(args mock.Arguments) (*model.DocumentView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentView), args.Error(1)
}

func (m *MockDocumentService) bulk(args mock.Arguments) (*service.BulkResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BulkResult), args.Error(1)
}

func (m *MockDocumentService) Approve(ctx context.Context, actor, id string) (*model.DocumentView, error) {
	return m.view(m.Called(ctx, actor, id))
}

func (m *MockDocumentService) BulkApprove(ctx context.Context, actor string, ids []string) (*service.BulkResult, error) {
	return m.bulk(m.Called(ctx, actor, ids))
}

func (m *MockDocumentService) Reject(ctx context.Context, actor, id, reason string) (*model.DocumentView, error) {
	return m.view(m.Called(ctx, actor, id, reason))
}

func (m *MockDocumentService) Move(ctx context.Context, actor, id, targetClientID string) (*model.DocumentView, error) {
	return m.view(m.Called(ctx, actor, id, targetClientID))
}

func (m *MockDocumentService) BulkMove(ctx context.Context, actor string, ids []string, targetClientID string) (*service.BulkResult, error) {
	return m.bulk(m.Called(ctx, actor, ids, targetClientID))
}

func (m *MockDocumentService) ChangeYear(ctx context.Context, actor string, ids []string, year string) (*service.BulkResult, error) {
	return m.bulk(m.Called(ctx, actor, ids, year))
}

func (m *MockDocumentService) Rename(ctx context.Context, actor, id, name string) (*model.DocumentView, error) {
	return m.view(m.Called(ctx, actor, id, name))
}

func (m *MockDocumentService) ChangeType(ctx context.Context, actor, id, documentType string) (*model.DocumentView, error) {
	return m.view(m.Called(ctx, actor, id, documentType))
}

func (m *MockDocumentService) AddNote(ctx context.Context, actor, id, note string) (*model.DocumentView, error) {
	return m.view(m.Called(ctx, actor, id, note))
}

func (m *MockDocumentService) Delete(ctx context.Context, actor string, ids []string) (*service.BulkResult, error) {
	return m.bulk(m.Called(ctx, actor, ids))
}

func (m *MockDocumentService) SendReminder(ctx context.Context, actor, id string) (*model.ReminderHistory, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReminderHistory), args.Error(1)
}

func (m *MockDocumentService) Reminders(ctx context.Context, id string) (*service.ReminderList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReminderList), args.Error(1)
}

func (m *MockDocumentService) MarkReminderViewed(ctx context.Context, id string, index int) error {
	args := m.Called(ctx, id, index)
	return args.Error(0)
}
