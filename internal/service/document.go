package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"doccenter/internal/activity"
	"doccenter/internal/filter"
	"doccenter/internal/mail"
	"doccenter/internal/model"
	"doccenter/internal/repository"
	"doccenter/internal/storage"
	"doccenter/internal/workflow"
)

// DownloadURLExpiry is how long a presigned document URL stays valid.
const DownloadURLExpiry = 15 * time.Minute

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// AllowedUploadTypes are the content types accepted for client documents.
var AllowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/png":          true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// DefaultUploadType is the document type of uploads that do not name one.
const DefaultUploadType = "Other"

// DocumentListResult is the service-level DTO for a filtered document list.
type DocumentListResult struct {
	Items []model.DocumentView `json:"data"`
	Total int                  `json:"total"`
	Stats filter.ClientStats   `json:"stats"`
}

// AccountsResult is the split view grouping of a filtered document list.
type AccountsResult struct {
	Groups    []filter.AccountGroup `json:"groups"`
	SplitView bool                  `json:"split_view"`
}

// ReminderEntry is one sent reminder with the labels the reminder panel shows.
type ReminderEntry struct {
	model.ReminderHistory
	Index       int    `json:"index"`
	SentLabel   string `json:"sent_label"`
	ViewedLabel string `json:"viewed_label,omitempty"`
	Latest      bool   `json:"latest"`
}

// ReminderList is a document's reminder history, oldest first.
type ReminderList struct {
	Items          []ReminderEntry `json:"data"`
	RecentReminder bool            `json:"recent_reminder"`
}

// UploadInput describes an uploaded file.
type UploadInput struct {
	ClientID     string
	DocumentType string
	Year         string
	// DocumentID, when set, names the requested document this upload fulfils.
	DocumentID  string
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// DocumentService defines the use cases for reviewing documents.
type DocumentService interface {
	// List returns the documents matching q with client display fields resolved.
	List(ctx context.Context, q filter.DocumentQuery) (*DocumentListResult, error)
	// Accounts groups the documents matching q by account for the split view.
	Accounts(ctx context.Context, q filter.DocumentQuery) (*AccountsResult, error)
	// Organize groups the documents matching q by tax category.
	Organize(ctx context.Context, q filter.DocumentQuery) ([]filter.CategoryGroup, error)
	// Stats returns the dashboard counters over every document.
	Stats(ctx context.Context) (*filter.Stats, error)
	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.DocumentView, error)

	// Upload stores the file in object storage and saves a pending document,
	// rolling back storage if the save fails.
	Upload(ctx context.Context, actor string, in UploadInput) (*model.DocumentView, error)
	// DownloadURL returns a presigned URL for the stored file and logs the view.
	DownloadURL(ctx context.Context, actor, id string) (string, error)

	Approve(ctx context.Context, actor, id string) (*model.DocumentView, error)
	BulkApprove(ctx context.Context, actor string, ids []string) (*BulkResult, error)
	Reject(ctx context.Context, actor, id, reason string) (*model.DocumentView, error)
	Move(ctx context.Context, actor, id, targetClientID string) (*model.DocumentView, error)
	BulkMove(ctx context.Context, actor string, ids []string, targetClientID string) (*BulkResult, error)
	ChangeYear(ctx context.Context, actor string, ids []string, year string) (*BulkResult, error)
	Rename(ctx context.Context, actor, id, name string) (*model.DocumentView, error)
	ChangeType(ctx context.Context, actor, id, documentType string) (*model.DocumentView, error)
	AddNote(ctx context.Context, actor, id, note string) (*model.DocumentView, error)
	// Delete removes documents and their stored files. It cannot be undone.
	Delete(ctx context.Context, actor string, ids []string) (*BulkResult, error)

	// SendReminder e-mails the client about a requested document and records
	// the attempt. A failed delivery is recorded and returned as ErrDeliveryFailed.
	SendReminder(ctx context.Context, actor, id string) (*model.ReminderHistory, error)
	// Reminders returns the labelled reminder history of a document.
	Reminders(ctx context.Context, id string) (*ReminderList, error)
	// MarkReminderViewed records that the reminder at index was opened.
	MarkReminderViewed(ctx context.Context, id string, index int) error
}

type documentService struct {
	base
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(d Deps) DocumentService {
	return &documentService{base: newBase(d)}
}

func (s *documentService) views(ctx context.Context) ([]model.DocumentView, []model.ClientLink, error) {
	docs, err := s.Documents.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	clients, err := s.Clients.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	links, err := s.Clients.Links(ctx)
	if err != nil {
		return nil, nil, err
	}
	return filter.Views(docs, clients, s.now()), links, nil
}

func (s *documentService) query(ctx context.Context, q filter.DocumentQuery) ([]model.DocumentView, error) {
	views, links, err := s.views(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Documents(views, links, q), nil
}

func (s *documentService) List(ctx context.Context, q filter.DocumentQuery) (*DocumentListResult, error) {
	ctx, span := startSpan(ctx, "DocumentService.List")
	defer span.End()

	items, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: items, Total: len(items), Stats: filter.ComputeClientStats(items)}, nil
}

func (s *documentService) Accounts(ctx context.Context, q filter.DocumentQuery) (*AccountsResult, error) {
	items, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}
	groups := filter.GroupByAccount(items)
	if groups == nil {
		groups = []filter.AccountGroup{}
	}
	return &AccountsResult{Groups: groups, SplitView: filter.SplitViewAvailable(groups)}, nil
}

func (s *documentService) Organize(ctx context.Context, q filter.DocumentQuery) ([]filter.CategoryGroup, error) {
	items, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}
	groups := filter.Organize(items)
	if groups == nil {
		groups = []filter.CategoryGroup{}
	}
	return groups, nil
}

func (s *documentService) Stats(ctx context.Context) (*filter.Stats, error) {
	docs, err := s.Documents.List(ctx)
	if err != nil {
		return nil, err
	}
	st := filter.ComputeStats(docs, s.now())
	return &st, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.DocumentView, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, *doc)
}

// view resolves the client display fields of one document.
func (s *documentService) view(ctx context.Context, doc model.Document) (*model.DocumentView, error) {
	var client model.Client
	c, err := s.Clients.FindByID(ctx, doc.ClientID)
	switch {
	case err == nil:
		client = *c
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	v := filter.View(doc, client, s.now())
	return &v, nil
}

func (s *documentService) Upload(ctx context.Context, actor string, in UploadInput) (_ *model.DocumentView, err error) {
	ctx, span := startSpan(ctx, "DocumentService.Upload", attribute.String("client.id", in.ClientID))
	defer func() { endSpan(span, err) }()

	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if !AllowedUploadTypes[in.ContentType] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, in.ContentType)
	}
	client, err := s.findClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var doc model.Document
	if in.DocumentID != "" {
		existing, err := s.findDocument(ctx, in.DocumentID)
		if err != nil {
			return nil, err
		}
		if existing.Status != model.StatusRequested || existing.ClientID != client.ID {
			return nil, ErrInvalidTransition
		}
		doc = *existing
	} else {
		year := in.Year
		if year == "" {
			year = strconv.Itoa(now.Year())
		}
		if !yearPattern.MatchString(year) {
			return nil, ErrInvalidYear
		}
		doc = model.Document{
			ID:              s.newID(),
			ClientID:        client.ID,
			DocumentType:    orDefault(in.DocumentType, DefaultUploadType),
			Year:            year,
			ReminderHistory: []model.ReminderHistory{},
			CreatedAt:       now,
		}
	}

	key := storage.DocumentKey(client.ID, doc.ID, in.Filename)
	objInfo, err := s.Storage.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc.Name = in.Filename
	doc.Status = model.StatusPending
	doc.Method = model.MethodUploadedFile
	doc.ReceivedDate = &now
	doc.StoragePath = objInfo.Key
	doc.ContentType = objInfo.ContentType
	doc.Size = objInfo.Size

	if in.DocumentID != "" {
		err = s.Documents.Update(ctx, &doc)
	} else {
		_, err = s.Documents.Create(ctx, &doc)
	}
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.Storage.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	e := entryFor(model.ActivityUpload, actor, doc, client.Name)
	e.Details = "Uploaded " + doc.Name
	s.record(ctx, e)
	s.Metrics.DocumentAction("upload", 1)
	v := filter.View(doc, *client, now)
	return &v, nil
}

func (s *documentService) DownloadURL(ctx context.Context, actor, id string) (string, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.StoragePath == "" {
		return "", fmt.Errorf("%w: no stored file", ErrNotFound)
	}
	url, err := s.Storage.PresignGet(ctx, doc.StoragePath, DownloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	names, err := s.clientNames(ctx)
	if err != nil {
		return "", err
	}
	e := entryFor(model.ActivityView, actor, *doc, names[doc.ClientID])
	e.Details = "Viewed " + doc.Name
	s.record(ctx, e)
	return url, nil
}

// mutate loads a document, applies fn, stores it and records the activity entry fn returns.
func (s *documentService) mutate(ctx context.Context, span string, id string, fn func(d *model.Document, clientName string) (model.ActivityLogEntry, error)) (_ *model.DocumentView, err error) {
	ctx, sp := startSpan(ctx, span, attribute.String("document.id", id))
	defer func() { endSpan(sp, err) }()

	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	names, err := s.clientNames(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := fn(doc, names[doc.ClientID])
	if err != nil {
		return nil, err
	}
	if err := s.Documents.Update(ctx, doc); err != nil {
		return nil, s.mapRepoErr(err)
	}
	s.record(ctx, entry)
	return s.view(ctx, *doc)
}

func (s *documentService) Approve(ctx context.Context, actor, id string) (*model.DocumentView, error) {
	v, err := s.mutate(ctx, "DocumentService.Approve", id, func(d *model.Document, clientName string) (model.ActivityLogEntry, error) {
		if d.Status == model.StatusRequested {
			return model.ActivityLogEntry{}, fmt.Errorf("%w: requested document has no file", ErrInvalidTransition)
		}
		s.approve(d, actor)
		e := entryFor(model.ActivityApprove, actor, *d, clientName)
		e.Details = "Approved " + d.Name
		return e, nil
	})
	if err == nil {
		s.Metrics.DocumentAction("approve", 1)
	}
	return v, err
}

func (s *documentService) approve(d *model.Document, actor string) {
	now := s.now()
	d.Status = model.StatusApproved
	d.ReviewedDate = &now
	d.ReviewedBy = actor
	d.RejectionReason = ""
}

func (s *documentService) BulkApprove(ctx context.Context, actor string, ids []string) (_ *BulkResult, err error) {
	ctx, span := startSpan(ctx, "DocumentService.BulkApprove", attribute.Int("documents", len(ids)))
	defer func() { endSpan(span, err) }()

	return s.bulk(ctx, ids, func(d *model.Document, clientName string) (*model.ActivityLogEntry, error) {
		if d.Status == model.StatusRequested {
			return nil, nil
		}
		s.approve(d, actor)
		e := entryFor(model.ActivityApprove, actor, *d, clientName)
		e.Details = "Approved " + d.Name + " (bulk)"
		return &e, nil
	}, "approve")
}

// bulk applies fn to every document among ids and stores the changed ones in
// one atomic update. fn returns a nil entry to skip a document.
func (s *documentService) bulk(ctx context.Context, ids []string, fn func(d *model.Document, clientName string) (*model.ActivityLogEntry, error), action string) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, ErrIDRequired
	}
	docs, err := s.Documents.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names, err := s.clientNames(ctx)
	if err != nil {
		return nil, err
	}

	res := newBulkResult()
	res.Missing = missingIDs(ids, docs)
	var changed []model.Document
	var entries []model.ActivityLogEntry
	for i := range docs {
		d := &docs[i]
		e, err := fn(d, names[d.ClientID])
		if err != nil {
			return nil, err
		}
		if e == nil {
			res.Skipped = append(res.Skipped, d.ID)
			continue
		}
		changed = append(changed, *d)
		entries = append(entries, *e)
		res.Updated = append(res.Updated, d.ID)
	}
	if len(changed) > 0 {
		if err := s.Documents.UpdateMany(ctx, changed); err != nil {
			return nil, s.mapRepoErr(err)
		}
	}
	s.record(ctx, entries...)
	s.Metrics.DocumentAction(action, len(changed))
	return res, nil
}

func (s *documentService) Reject(ctx context.Context, actor, id, reason string) (*model.DocumentView, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	v, err := s.mutate(ctx, "DocumentService.Reject", id, func(d *model.Document, clientName string) (model.ActivityLogEntry, error) {
		if d.Status == model.StatusRequested {
			return model.ActivityLogEntry{}, fmt.Errorf("%w: requested document has no file", ErrInvalidTransition)
		}
		now := s.now()
		d.Status = model.StatusRejected
		d.RejectionReason = reason
		d.ReviewedDate = &now
		d.ReviewedBy = actor
		e := entryFor(model.ActivityReject, actor, *d, clientName)
		e.Details = "Rejected " + d.Name + ": " + reason
		e.Metadata.RejectionReason = reason
		return e, nil
	})
	if err == nil {
		s.Metrics.DocumentAction("reject", 1)
	}
	return v, err
}

func (s *documentService) Move(ctx context.Context, actor, id, targetClientID string) (*model.DocumentView, error) {
	target, err := s.findClient(ctx, targetClientID)
	if err != nil {
		return nil, err
	}
	v, err := s.mutate(ctx, "DocumentService.Move", id, func(d *model.Document, clientName string) (model.ActivityLogEntry, error) {
		e := s.moveEntry(d, actor, clientName, target)
		d.ClientID = target.ID
		return e, nil
	})
	if err == nil {
		s.Metrics.DocumentAction("move", 1)
	}
	return v, err
}

func (s *documentService) moveEntry(d *model.Document, actor, fromName string, target *model.Client) model.ActivityLogEntry {
	e := entryFor(model.ActivityMove, actor, *d, target.Name)
	e.ClientID = target.ID
	e.Details = fmt.Sprintf("Moved %s from %s to %s", d.Name, fromName, target.Name)
	e.Metadata.FromClient = fromName
	e.Metadata.ToClient = target.Name
	return e
}

func (s *documentService) BulkMove(ctx context.Context, actor string, ids []string, targetClientID string) (_ *BulkResult, err error) {
	ctx, span := startSpan(ctx, "DocumentService.BulkMove", attribute.Int("documents", len(ids)))
	defer func() { endSpan(span, err) }()

	target, err := s.findClient(ctx, targetClientID)
	if err != nil {
		return nil, err
	}
	return s.bulk(ctx, ids, func(d *model.Document, clientName string) (*model.ActivityLogEntry, error) {
		e := s.moveEntry(d, actor, clientName, target)
		d.ClientID = target.ID
		return &e, nil
	}, "move")
}

func (s *documentService) ChangeYear(ctx context.Context, actor string, ids []string, year string) (_ *BulkResult, err error) {
	ctx, span := startSpan(ctx, "DocumentService.ChangeYear", attribute.Int("documents", len(ids)))
	defer func() { endSpan(span, err) }()

	if !yearPattern.MatchString(year) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	return s.bulk(ctx, ids, func(d *model.Document, clientName string) (*model.ActivityLogEntry, error) {
		e := entryFor(model.ActivityYearChange, actor, *d, clientName)
		e.Details = fmt.Sprintf("Changed year of %s from %s to %s", d.Name, d.Year, year)
		e.Metadata.FromYear = d.Year
		e.Metadata.ToYear = year
		d.Year = year
		return &e, nil
	}, "year_change")
}

func (s *documentService) Rename(ctx context.Context, actor, id, name string) (*model.DocumentView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.mutate(ctx, "DocumentService.Rename", id, func(d *model.Document, clientName string) (model.ActivityLogEntry, error) {
		e := entryFor(model.ActivityRename, actor, *d, clientName)
		e.Details = fmt.Sprintf("Renamed %s to %s", d.Name, name)
		e.Metadata.OldName = d.Name
		e.Metadata.NewName = name
		d.Name = name
		e.DocumentName = name
		return e, nil
	})
}

func (s *documentService) ChangeType(ctx context.Context, actor, id, documentType string) (*model.DocumentView, error) {
	documentType = strings.TrimSpace(documentType)
	if documentType == "" {
		return nil, ErrTypeRequired
	}
	return s.mutate(ctx, "DocumentService.ChangeType", id, func(d *model.Document, clientName string) (model.ActivityLogEntry, error) {
		e := entryFor(model.ActivityTypeChange, actor, *d, clientName)
		e.Details = fmt.Sprintf("Changed type of %s from %s to %s", d.Name, d.DocumentType, documentType)
		e.Metadata.OldType = d.DocumentType
		e.Metadata.NewType = documentType
		d.DocumentType = documentType
		e.DocumentType = documentType
		return e, nil
	})
}

func (s *documentService) AddNote(ctx context.Context, actor, id, note string) (*model.DocumentView, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, ErrNoteRequired
	}
	return s.mutate(ctx, "DocumentService.AddNote", id, func(d *model.Document, clientName string) (model.ActivityLogEntry, error) {
		d.Note = note
		e := entryFor(model.ActivityNote, actor, *d, clientName)
		e.Details = note
		return e, nil
	})
}

// Delete removes stored files first; if that fails the records are kept so
// no document points at a missing object.
func (s *documentService) Delete(ctx context.Context, actor string, ids []string) (_ *BulkResult, err error) {
	ctx, span := startSpan(ctx, "DocumentService.Delete", attribute.Int("documents", len(ids)))
	defer func() { endSpan(span, err) }()

	if len(ids) == 0 {
		return nil, ErrIDRequired
	}
	docs, err := s.Documents.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names, err := s.clientNames(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.StoragePath == "" {
			continue
		}
		if err := s.Storage.Delete(ctx, d.StoragePath); err != nil {
			return nil, fmt.Errorf("delete storage: %w", err)
		}
	}

	found := make([]string, len(docs))
	entries := make([]model.ActivityLogEntry, len(docs))
	for i, d := range docs {
		found[i] = d.ID
		e := entryFor(model.ActivityDelete, actor, d, names[d.ClientID])
		e.Details = "Deleted " + d.Name
		entries[i] = e
	}
	if len(found) > 0 {
		if _, err := s.Documents.DeleteMany(ctx, found); err != nil {
			return nil, err
		}
	}
	s.record(ctx, entries...)
	s.Metrics.DocumentAction("delete", len(found))

	res := newBulkResult()
	res.Updated = found
	res.Missing = missingIDs(ids, docs)
	return res, nil
}

func (s *documentService) SendReminder(ctx context.Context, actor, id string) (_ *model.ReminderHistory, err error) {
	ctx, span := startSpan(ctx, "DocumentService.SendReminder", attribute.String("document.id", id))
	defer func() { endSpan(span, err) }()

	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != model.StatusRequested {
		return nil, fmt.Errorf("%w: only requested documents can be reminded", ErrInvalidTransition)
	}
	client, err := s.findClient(ctx, doc.ClientID)
	if err != nil {
		return nil, err
	}

	sendErr := s.Mailer.Send(ctx, s.reminderMessage(client, doc))
	h := model.ReminderHistory{SentDate: s.now(), SentBy: actor, Status: model.ReminderSent}
	if sendErr != nil {
		h.Status = model.ReminderFailed
		s.Logger.Error("reminder_send_failed", sendErr, map[string]any{
			"component":   "service",
			"document_id": doc.ID,
		})
	}
	if err := s.Documents.AppendReminder(ctx, doc.ID, h); err != nil {
		return nil, s.mapRepoErr(err)
	}

	e := entryFor(model.ActivityReminder, actor, *doc, client.Name)
	e.Metadata.ReminderSent = sendErr == nil
	if sendErr == nil {
		e.Details = "Sent reminder for " + doc.Name
	} else {
		e.Details = "Reminder for " + doc.Name + " could not be delivered"
	}
	s.record(ctx, e)
	s.Metrics.Reminder(string(h.Status))

	if sendErr != nil {
		return &h, fmt.Errorf("%w: %v", ErrDeliveryFailed, sendErr)
	}
	return &h, nil
}

func (s *documentService) reminderMessage(c *model.Client, d *model.Document) mail.Message {
	subject := "Reminder: Documents Needed"
	if p, ok := workflow.FindPreset("reminder"); ok {
		subject = p.Subject
	}
	body := strings.NewReplacer(
		workflow.PlaceholderClientName, c.Name,
		workflow.PlaceholderDocumentList, workflow.DocumentList([]workflow.DocumentRequest{{DocumentType: d.DocumentType + " (" + d.Year + ")"}}),
		workflow.PlaceholderUploadLink, s.Firm.UploadLinkBase,
		workflow.PlaceholderFirmName, s.Firm.Name,
	).Replace(reminderBody)

	msg := mail.Message{Subject: subject, Body: body}
	if c.Email != "" {
		msg.To = []string{c.Email}
	}
	return msg
}

const reminderBody = `Dear [Client Name],

This is a friendly reminder that we are still waiting for the following documents:

[Document List]

You can upload them securely using the link below:
[Secure Upload Link]

Best regards,
[Your Firm Name]`

func (s *documentService) Reminders(ctx context.Context, id string) (*ReminderList, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.localNow()
	last := len(doc.ReminderHistory) - 1
	out := make([]ReminderEntry, len(doc.ReminderHistory))
	for i, h := range doc.ReminderHistory {
		e := ReminderEntry{
			ReminderHistory: h,
			Index:           i,
			SentLabel:       activity.ReminderDate(h.SentDate, now),
			Latest:          i == last,
		}
		if h.ViewedDate != nil {
			e.ViewedLabel = activity.ReminderDate(*h.ViewedDate, now)
		}
		out[i] = e
	}
	return &ReminderList{Items: out, RecentReminder: doc.HasRecentReminder(now)}, nil
}

func (s *documentService) MarkReminderViewed(ctx context.Context, id string, index int) error {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(doc.ReminderHistory) {
		return fmt.Errorf("%w: reminder %d", ErrNotFound, index)
	}
	h := doc.ReminderHistory[index]
	if h.Viewed {
		return nil
	}
	now := s.now()
	h.Viewed = true
	h.ViewedDate = &now
	return s.mapRepoErr(s.Documents.MarkReminderViewed(ctx, id, index, h))
}

func (s *documentService) mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
