package repository

import (
	"context"
	"errors"

	"doccenter/internal/model"
)

// ErrNotFound is returned by repositories when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// DocumentRepository defines data access for documents.
// No business logic here; strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored document.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// CreateMany inserts all documents atomically.
	CreateMany(ctx context.Context, docs []model.Document) error

	// FindByID returns a document by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByIDs returns the documents that exist among ids, in store order.
	FindByIDs(ctx context.Context, ids []string) ([]model.Document, error)

	// List returns every document in insertion order.
	List(ctx context.Context) ([]model.Document, error)

	// Update replaces the stored fields of a document, reminder history excluded.
	Update(ctx context.Context, doc *model.Document) error

	// UpdateMany replaces several documents atomically.
	UpdateMany(ctx context.Context, docs []model.Document) error

	// DeleteMany removes the given documents and returns how many existed.
	DeleteMany(ctx context.Context, ids []string) (int, error)

	// AppendReminder appends to a document's reminder history.
	AppendReminder(ctx context.Context, id string, r model.ReminderHistory) error

	// MarkReminderViewed sets viewed/viewedDate on the reminder at index.
	MarkReminderViewed(ctx context.Context, id string, index int, r model.ReminderHistory) error
}

// ClientRepository stores clients and the undirected links between them.
type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) (*model.Client, error)
	FindByID(ctx context.Context, id string) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, c *model.Client) error

	// Link adds the undirected edge between a and b. Linking twice is a no-op.
	Link(ctx context.Context, link model.ClientLink) error
	// Unlink removes the edge if present.
	Unlink(ctx context.Context, link model.ClientLink) error
	// Links returns every edge.
	Links(ctx context.Context) ([]model.ClientLink, error)
}

// ActivityRepository is the append-only audit log.
type ActivityRepository interface {
	Append(ctx context.Context, entries ...model.ActivityLogEntry) error
	List(ctx context.Context) ([]model.ActivityLogEntry, error)
}

// PreferenceRepository is a small key-value store for UI preferences.
type PreferenceRepository interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// TemplateRepository stores saved signature templates.
type TemplateRepository interface {
	Create(ctx context.Context, t *model.SignatureTemplate) (*model.SignatureTemplate, error)
	FindByID(ctx context.Context, id string) (*model.SignatureTemplate, error)
	List(ctx context.Context) ([]model.SignatureTemplate, error)
}
