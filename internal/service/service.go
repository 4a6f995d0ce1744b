// Package service holds the Document Center use cases. Services validate
// input, drive the workflow state machines, persist through the repositories
// and append an activity log entry for every mutation.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"doccenter/internal/activity"
	"doccenter/internal/config"
	"doccenter/internal/logging"
	"doccenter/internal/mail"
	"doccenter/internal/metrics"
	"doccenter/internal/model"
	"doccenter/internal/otel"
	"doccenter/internal/repository"
	"doccenter/internal/storage"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrNotFound            = errors.New("document not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrReaderNil           = errors.New("reader is nil")
	ErrReasonRequired      = errors.New("rejection reason is required")
	ErrNameRequired        = errors.New("name is required")
	ErrTypeRequired        = errors.New("document type is required")
	ErrNoteRequired        = errors.New("note is required")
	ErrInvalidYear         = errors.New("year must be four digits")
	ErrInvalidTransition   = errors.New("document status does not allow this action")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidClient       = errors.New("invalid client")
	ErrInvalidViewMode     = errors.New("invalid view mode")
	ErrInvalidField        = errors.New("invalid template field")
	ErrDeliveryFailed      = errors.New("e-mail delivery failed")

	ErrNothingToExport = activity.ErrNothingToExport
	ErrNotImplemented  = activity.ErrNotImplemented
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Documents   repository.DocumentRepository
	Clients     repository.ClientRepository
	Activity    repository.ActivityRepository
	Preferences repository.PreferenceRepository
	Templates   repository.TemplateRepository

	Storage storage.Storage
	Mailer  mail.Mailer
	Metrics *metrics.Metrics
	Logger  *logging.Logger

	Firm      config.FirmConfig
	FirmUsers []model.FirmUser
	// Location renders timestamps in exports.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// base carries Deps plus the helpers shared by the services.
type base struct {
	Deps
	newID func() string
}

func newBase(d Deps) base {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Logger == nil {
		d.Logger = logging.Default(d.Location)
	}
	return base{Deps: d, newID: uuid.NewString}
}

func (b base) now() time.Time { return b.Now().UTC() }

// localNow is now in the firm's time zone, for display labels.
func (b base) localNow() time.Time { return b.now().In(b.Location) }

// startSpan opens a span named after the service method.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err on span and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// record appends activity entries, filling id and timestamp. The mutation they
// describe is already stored, so a failed append is logged, not returned.
func (b base) record(ctx context.Context, entries ...model.ActivityLogEntry) {
	if len(entries) == 0 {
		return
	}
	now := b.now()
	for i := range entries {
		entries[i].ID = b.newID()
		entries[i].Timestamp = now
	}
	if err := b.Activity.Append(ctx, entries...); err != nil {
		b.Logger.Error("activity_append_failed", err, map[string]any{
			"component": "service",
			"entries":   len(entries),
		})
	}
}

// entryFor starts an activity entry about doc.
func entryFor(t model.ActivityType, actor string, doc model.Document, clientName string) model.ActivityLogEntry {
	return model.ActivityLogEntry{
		ActivityType: t,
		PerformedBy:  actor,
		ClientID:     doc.ClientID,
		ClientName:   clientName,
		DocumentID:   doc.ID,
		DocumentName: doc.Name,
		DocumentType: doc.DocumentType,
	}
}

// clientNames maps client id to name for activity entries.
func (b base) clientNames(ctx context.Context) (map[string]string, error) {
	clients, err := b.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(clients))
	for _, c := range clients {
		out[c.ID] = c.Name
	}
	return out, nil
}

func (b base) findClient(ctx context.Context, id string) (*model.Client, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := b.Clients.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	return c, err
}

func (b base) findDocument(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	d, err := b.Documents.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return d, err
}

// BulkResult reports the outcome of a multi-document action.
type BulkResult struct {
	// Updated lists the documents the action was applied to.
	Updated []string `json:"updated"`
	// Skipped lists documents whose status does not allow the action.
	Skipped []string `json:"skipped"`
	// Missing lists ids that matched no document.
	Missing []string `json:"missing"`
}

func newBulkResult() *BulkResult {
	return &BulkResult{Updated: []string{}, Skipped: []string{}, Missing: []string{}}
}

// missingIDs returns ids not present in found, in request order, without duplicates.
func missingIDs(ids []string, found []model.Document) []string {
	have := make(map[string]bool, len(found))
	for _, d := range found {
		have[d.ID] = true
	}
	out := []string{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !have[id] && !seen[id] {
			out = append(out, id)
		}
		seen[id] = true
	}
	return out
}
