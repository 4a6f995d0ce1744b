package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doccenter/internal/filter"
	"doccenter/internal/model"
	"doccenter/internal/repository"
)

// ClientService manages the client directory and its account links.
type ClientService interface {
	// List returns client summaries matching q with derived counters.
	List(ctx context.Context, q filter.ClientQuery) ([]model.ClientSummary, error)
	Get(ctx context.Context, id string) (*model.ClientSummary, error)
	Create(ctx context.Context, c model.Client) (*model.Client, error)
	// Link joins two accounts, e.g. spouses filing separately. Links are undirected.
	Link(ctx context.Context, a, b string) error
	Unlink(ctx context.Context, a, b string) error
}

type clientService struct {
	base
}

// NewClientService constructs a new ClientService.
func NewClientService(d Deps) ClientService {
	return &clientService{base: newBase(d)}
}

func (s *clientService) summaries(ctx context.Context) ([]model.ClientSummary, error) {
	clients, err := s.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.Documents.List(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.Clients.Links(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Summaries(clients, docs, links), nil
}

func (s *clientService) List(ctx context.Context, q filter.ClientQuery) ([]model.ClientSummary, error) {
	ctx, span := startSpan(ctx, "ClientService.List")
	defer span.End()

	all, err := s.summaries(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Clients(all, q), nil
}

func (s *clientService) Get(ctx context.Context, id string) (*model.ClientSummary, error) {
	if _, err := s.findClient(ctx, id); err != nil {
		return nil, err
	}
	all, err := s.summaries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrClientNotFound
}

func (s *clientService) Create(ctx context.Context, c model.Client) (*model.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, ErrNameRequired
	}
	if c.Type == "" {
		c.Type = model.ClientIndividual
	}
	if !c.Type.Valid() {
		return nil, fmt.Errorf("%w: type %q", ErrInvalidClient, c.Type)
	}
	if c.ID == "" {
		c.ID = s.newID()
	}
	// only the seeded pseudo-account represents the firm
	c.IsFirm = false
	c.CreatedAt = s.now()
	return s.Clients.Create(ctx, &c)
}

func (s *clientService) Link(ctx context.Context, a, b string) error {
	if a == "" || b == "" {
		return ErrIDRequired
	}
	if a == b {
		return fmt.Errorf("%w: cannot link a client to itself", ErrInvalidClient)
	}
	err := s.Clients.Link(ctx, model.NewClientLink(a, b))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

func (s *clientService) Unlink(ctx context.Context, a, b string) error {
	if a == "" || b == "" {
		return ErrIDRequired
	}
	return s.Clients.Unlink(ctx, model.NewClientLink(a, b))
}
