package mocks

import (
	"context"
	"io"

	"doccenter/internal/activity"
	"doccenter/internal/model"
	"doccenter/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockActivityService struct {
	mock.Mock
}

var _ service.ActivityService = (*MockActivityService)(nil)

func (m *MockActivityService) List(ctx context.Context, q activity.Query) ([]model.ActivityLogEntry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ActivityLogEntry), args.Error(1)
}

func (m *MockActivityService) Feed(ctx context.Context, q activity.Query) ([]service.FeedEntry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.FeedEntry), args.Error(1)
}

func (m *MockActivityService) Users(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// ExportCSV writes the third return value, when it is a string, to w.
func (m *MockActivityService) ExportCSV(ctx context.Context, w io.Writer, q activity.Query) (string, error) {
	args := m.Called(ctx, w, q)
	if len(args) > 2 {
		if body, ok := args.Get(2).(string); ok {
			if _, err := io.WriteString(w, body); err != nil {
				return "", err
			}
		}
	}
	return args.String(0), args.Error(1)
}

func (m *MockActivityService) ExportPDF(ctx context.Context, w io.Writer, q activity.Query) error {
	args := m.Called(ctx, w, q)
	return args.Error(0)
}
