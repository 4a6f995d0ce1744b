package memory

import (
	"context"
	"sync"

	"doccenter/internal/repository"
)

// Preferences is a map-backed key-value store.
type Preferences struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewPreferences() *Preferences {
	return &Preferences{values: make(map[string]string)}
}

var _ repository.PreferenceRepository = (*Preferences)(nil)

func (p *Preferences) Get(ctx context.Context, key string) (string, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok, nil
}

func (p *Preferences) Set(ctx context.Context, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	return nil
}
