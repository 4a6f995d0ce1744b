package memory

import (
	"context"
	"sync"

	"doccenter/internal/model"
	"doccenter/internal/repository"
)

// TemplateStore keeps saved signature templates in insertion order.
type TemplateStore struct {
	mu        sync.RWMutex
	templates []model.SignatureTemplate
}

func NewTemplateStore() *TemplateStore {
	return &TemplateStore{}
}

var _ repository.TemplateRepository = (*TemplateStore)(nil)

func (s *TemplateStore) Create(ctx context.Context, t *model.SignatureTemplate) (*model.SignatureTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = append(s.templates, cloneTemplate(*t))
	out := cloneTemplate(*t)
	return &out, nil
}

func (s *TemplateStore) FindByID(ctx context.Context, id string) (*model.SignatureTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			out := cloneTemplate(t)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *TemplateStore) List(ctx context.Context) ([]model.SignatureTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.SignatureTemplate, len(s.templates))
	for i, t := range s.templates {
		out[i] = cloneTemplate(t)
	}
	return out, nil
}

func cloneTemplate(t model.SignatureTemplate) model.SignatureTemplate {
	t.Roles = append([]model.ConfiguredRole(nil), t.Roles...)
	t.Fields = append([]model.TemplateField(nil), t.Fields...)
	return t
}
