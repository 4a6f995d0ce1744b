package memory

import (
	"context"
	"fmt"
	"sync"

	"doccenter/internal/model"
	"doccenter/internal/repository"
)

// DocumentStore is an in-memory implementation of repository.DocumentRepository.
// Documents keep their insertion order. It is safe for concurrent use.
type DocumentStore struct {
	mu   sync.RWMutex
	docs []model.Document
}

// NewDocumentStore returns an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

var _ repository.DocumentRepository = (*DocumentStore)(nil)

func (s *DocumentStore) indexOf(id string) int {
	for i := range s.docs {
		if s.docs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *DocumentStore) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(doc.ID) >= 0 {
		return nil, fmt.Errorf("document %s already exists", doc.ID)
	}
	s.docs = append(s.docs, doc.Clone())
	out := doc.Clone()
	return &out, nil
}

func (s *DocumentStore) CreateMany(ctx context.Context, docs []model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if s.indexOf(d.ID) >= 0 || seen[d.ID] {
			return fmt.Errorf("document %s already exists", d.ID)
		}
		seen[d.ID] = true
	}
	for _, d := range docs {
		s.docs = append(s.docs, d.Clone())
	}
	return nil
}

func (s *DocumentStore) FindByID(ctx context.Context, id string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	out := s.docs[i].Clone()
	return &out, nil
}

func (s *DocumentStore) FindByIDs(ctx context.Context, ids []string) ([]model.Document, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Document, 0, len(ids))
	for _, d := range s.docs {
		if want[d.ID] {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

func (s *DocumentStore) List(ctx context.Context) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Document, len(s.docs))
	for i, d := range s.docs {
		out[i] = d.Clone()
	}
	return out, nil
}

func (s *DocumentStore) Update(ctx context.Context, doc *model.Document) error {
	return s.UpdateMany(ctx, []model.Document{*doc})
}

// UpdateMany applies every update or none of them.
func (s *DocumentStore) UpdateMany(ctx context.Context, docs []model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := make([]int, len(docs))
	for i, d := range docs {
		idx[i] = s.indexOf(d.ID)
		if idx[i] < 0 {
			return repository.ErrNotFound
		}
	}
	for i, d := range docs {
		next := d.Clone()
		// Reminder history is append-only and only changes through AppendReminder.
		next.ReminderHistory = s.docs[idx[i]].ReminderHistory
		s.docs[idx[i]] = next
	}
	return nil
}

func (s *DocumentStore) DeleteMany(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.docs[:0]
	removed := 0
	for _, d := range s.docs {
		if drop[d.ID] {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	s.docs = kept
	return removed, nil
}

func (s *DocumentStore) AppendReminder(ctx context.Context, id string, r model.ReminderHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.docs[i].ReminderHistory = append(s.docs[i].ReminderHistory, r)
	return nil
}

func (s *DocumentStore) MarkReminderViewed(ctx context.Context, id string, index int, r model.ReminderHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 || index < 0 || index >= len(s.docs[i].ReminderHistory) {
		return repository.ErrNotFound
	}
	h := &s.docs[i].ReminderHistory[index]
	h.Viewed = r.Viewed
	h.ViewedDate = r.ViewedDate
	return nil
}
