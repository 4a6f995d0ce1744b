package service

import (
	"context"
	"io"

	"doccenter/internal/activity"
	"doccenter/internal/model"
)

// FeedEntry is a log entry with its relative time label.
type FeedEntry struct {
	model.ActivityLogEntry
	TimeAgo string `json:"time_ago"`
}

// ActivityService reads and exports the audit log.
type ActivityService interface {
	List(ctx context.Context, q activity.Query) ([]model.ActivityLogEntry, error)
	// Feed is List labelled for display against the service clock in the
	// firm's time zone.
	Feed(ctx context.Context, q activity.Query) ([]FeedEntry, error)
	// Users lists everyone who appears in the log, for the user filter.
	Users(ctx context.Context) ([]string, error)
	// ExportCSV writes the entries matching q and returns the attachment filename.
	ExportCSV(ctx context.Context, w io.Writer, q activity.Query) (string, error)
	// ExportPDF always fails with ErrNotImplemented.
	ExportPDF(ctx context.Context, w io.Writer, q activity.Query) error
}

type activityService struct {
	base
}

// NewActivityService constructs a new ActivityService.
func NewActivityService(d Deps) ActivityService {
	return &activityService{base: newBase(d)}
}

func (s *activityService) List(ctx context.Context, q activity.Query) ([]model.ActivityLogEntry, error) {
	ctx, span := startSpan(ctx, "ActivityService.List")
	defer span.End()

	all, err := s.Activity.List(ctx)
	if err != nil {
		return nil, err
	}
	out := activity.Filter(all, q, s.now())
	if out == nil {
		out = []model.ActivityLogEntry{}
	}
	return out, nil
}

func (s *activityService) Feed(ctx context.Context, q activity.Query) ([]FeedEntry, error) {
	entries, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	now := s.localNow()
	out := make([]FeedEntry, len(entries))
	for i, e := range entries {
		out[i] = FeedEntry{ActivityLogEntry: e, TimeAgo: activity.TimeAgo(e.Timestamp, now)}
	}
	return out, nil
}

func (s *activityService) Users(ctx context.Context) ([]string, error) {
	all, err := s.Activity.List(ctx)
	if err != nil {
		return nil, err
	}
	return activity.UniqueUsers(all), nil
}

func (s *activityService) ExportCSV(ctx context.Context, w io.Writer, q activity.Query) (_ string, err error) {
	ctx, span := startSpan(ctx, "ActivityService.ExportCSV")
	defer func() { endSpan(span, err) }()

	entries, err := s.List(ctx, q)
	if err != nil {
		return "", err
	}
	if err := activity.WriteCSV(w, entries, s.Location); err != nil {
		return "", err
	}
	s.Metrics.Export()
	return activity.CSVFilename(s.now()), nil
}

func (s *activityService) ExportPDF(ctx context.Context, w io.Writer, q activity.Query) error {
	return activity.WritePDF(w, nil, s.Location)
}
