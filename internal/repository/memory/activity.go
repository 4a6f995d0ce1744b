package memory

import (
	"context"
	"sync"

	"doccenter/internal/model"
	"doccenter/internal/repository"
)

// ActivityLog is an append-only in-memory audit log.
type ActivityLog struct {
	mu      sync.RWMutex
	entries []model.ActivityLogEntry
}

func NewActivityLog() *ActivityLog {
	return &ActivityLog{}
}

var _ repository.ActivityRepository = (*ActivityLog)(nil)

func (l *ActivityLog) Append(ctx context.Context, entries ...model.ActivityLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entries...)
	return nil
}

func (l *ActivityLog) List(ctx context.Context) ([]model.ActivityLogEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.ActivityLogEntry(nil), l.entries...), nil
}
