package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"doccenter/internal/model"
	"doccenter/internal/repository"
)

// ClientStore keeps clients in insertion order and links as an edge set.
type ClientStore struct {
	mu      sync.RWMutex
	clients []model.Client
	links   map[model.ClientLink]struct{}
}

func NewClientStore() *ClientStore {
	return &ClientStore{links: make(map[model.ClientLink]struct{})}
}

var _ repository.ClientRepository = (*ClientStore)(nil)

func (s *ClientStore) indexOf(id string) int {
	for i := range s.clients {
		if s.clients[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ClientStore) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(c.ID) >= 0 {
		return nil, fmt.Errorf("client %s already exists", c.ID)
	}
	s.clients = append(s.clients, *c)
	out := *c
	return &out, nil
}

func (s *ClientStore) FindByID(ctx context.Context, id string) (*model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	out := s.clients[i]
	return &out, nil
}

func (s *ClientStore) List(ctx context.Context) ([]model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Client(nil), s.clients...), nil
}

func (s *ClientStore) Update(ctx context.Context, c *model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(c.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.clients[i] = *c
	return nil
}

func (s *ClientStore) Link(ctx context.Context, link model.ClientLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(link.A) < 0 || s.indexOf(link.B) < 0 {
		return repository.ErrNotFound
	}
	s.links[model.NewClientLink(link.A, link.B)] = struct{}{}
	return nil
}

func (s *ClientStore) Unlink(ctx context.Context, link model.ClientLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.links, model.NewClientLink(link.A, link.B))
	return nil
}

// Links returns the edges ordered by (A, B).
func (s *ClientStore) Links(ctx context.Context) ([]model.ClientLink, error) {
	s.mu.RLock()
	out := make([]model.ClientLink, 0, len(s.links))
	for l := range s.links {
		out = append(out, l)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out, nil
}
