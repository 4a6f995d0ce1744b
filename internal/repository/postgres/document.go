package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"doccenter/internal/model"
	"doccenter/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// Reminder history lives in its own table keyed by (document_id, idx).
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, name, client_id, document_type, year, status, method,
		received_date, requested_date, reviewed_date, reviewed_by, rejection_reason,
		note, storage_path, content_type, size, created_at`

func documentArgs(d *model.Document) []any {
	return []any{
		d.ID,
		d.Name,
		d.ClientID,
		d.DocumentType,
		d.Year,
		d.Status.String(),
		string(d.Method),
		d.ReceivedDate,
		d.RequestedDate,
		d.ReviewedDate,
		d.ReviewedBy,
		d.RejectionReason,
		d.Note,
		d.StoragePath,
		d.ContentType,
		d.Size,
		d.CreatedAt,
	}
}

func scanDocument(s rowScanner) (model.Document, error) {
	var (
		d      model.Document
		status string
		method string
	)
	if err := s.Scan(
		&d.ID,
		&d.Name,
		&d.ClientID,
		&d.DocumentType,
		&d.Year,
		&status,
		&method,
		&d.ReceivedDate,
		&d.RequestedDate,
		&d.ReviewedDate,
		&d.ReviewedBy,
		&d.RejectionReason,
		&d.Note,
		&d.StoragePath,
		&d.ContentType,
		&d.Size,
		&d.CreatedAt,
	); err != nil {
		return d, err
	}
	st, err := model.ParseStatus(status)
	if err != nil {
		return d, err
	}
	d.Status = st
	d.Method = model.Method(method)
	return d, nil
}

const insertDocument = `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	if _, err := r.db.ExecContext(ctx, insertDocument, documentArgs(doc)...); err != nil {
		return nil, err
	}
	out := doc.Clone()
	out.ReminderHistory = nil
	return &out, nil
}

// CreateMany inserts every document in one transaction.
func (r *DocumentPostgres) CreateMany(ctx context.Context, docs []model.Document) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for i := range docs {
			if _, err := tx.ExecContext(ctx, insertDocument, documentArgs(&docs[i])...); err != nil {
				return fmt.Errorf("insert document %s: %w", docs[i].ID, err)
			}
		}
		return nil
	})
}

// FindByID fetches a single document by its ID, reminders included.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, notFound(err)
	}
	history, err := r.reminders(ctx, `WHERE document_id = $1`, id)
	if err != nil {
		return nil, err
	}
	d.ReminderHistory = nonNil(history[id])
	return &d, nil
}

// FindByIDs returns the existing documents among ids in insertion order.
func (r *DocumentPostgres) FindByIDs(ctx context.Context, ids []string) ([]model.Document, error) {
	if len(ids) == 0 {
		return []model.Document{}, nil
	}
	in := placeholders(1, len(ids))
	q := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id IN (` + in + `)
		ORDER BY seq`
	return r.query(ctx, q, `WHERE document_id IN (`+in+`)`, stringArgs(ids)...)
}

// List returns every document in insertion order.
func (r *DocumentPostgres) List(ctx context.Context) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY seq`
	return r.query(ctx, q, "")
}

func (r *DocumentPostgres) query(ctx context.Context, q, reminderWhere string, args ...any) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	history, err := r.reminders(ctx, reminderWhere, args...)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ReminderHistory = nonNil(history[items[i].ID])
	}
	return items, nil
}

// reminders loads reminder history grouped by document id, oldest first.
func (r *DocumentPostgres) reminders(ctx context.Context, where string, args ...any) (map[string][]model.ReminderHistory, error) {
	q := `
		SELECT document_id, sent_date, sent_by, status, viewed, viewed_date
		FROM reminder_history
		` + where + `
		ORDER BY document_id, idx`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]model.ReminderHistory)
	for rows.Next() {
		var (
			docID  string
			status string
			h      model.ReminderHistory
		)
		if err := rows.Scan(&docID, &h.SentDate, &h.SentBy, &status, &h.Viewed, &h.ViewedDate); err != nil {
			return nil, err
		}
		h.Status = model.ReminderStatus(status)
		out[docID] = append(out[docID], h)
	}
	return out, rows.Err()
}

const updateDocument = `
		UPDATE documents SET
			name = $2, client_id = $3, document_type = $4, year = $5, status = $6, method = $7,
			received_date = $8, requested_date = $9, reviewed_date = $10, reviewed_by = $11,
			rejection_reason = $12, note = $13, storage_path = $14, content_type = $15,
			size = $16, created_at = $17
		WHERE id = $1`

// Update rewrites the document row. Reminder history is untouched.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) error {
	res, err := r.db.ExecContext(ctx, updateDocument, documentArgs(doc)...)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// UpdateMany rewrites several rows in one transaction; a missing id rolls back all of them.
func (r *DocumentPostgres) UpdateMany(ctx context.Context, docs []model.Document) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for i := range docs {
			res, err := tx.ExecContext(ctx, updateDocument, documentArgs(&docs[i])...)
			if err != nil {
				return err
			}
			if err := mustAffect(res); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteMany removes documents by id. Reminder rows cascade.
func (r *DocumentPostgres) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := `DELETE FROM documents WHERE id IN (` + placeholders(1, len(ids)) + `)`
	res, err := r.db.ExecContext(ctx, q, stringArgs(ids)...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// AppendReminder adds a reminder at the next index of the document's history.
func (r *DocumentPostgres) AppendReminder(ctx context.Context, id string, h model.ReminderHistory) error {
	const q = `
		INSERT INTO reminder_history (document_id, idx, sent_date, sent_by, status, viewed, viewed_date)
		SELECT $1, (SELECT COUNT(*) FROM reminder_history WHERE document_id = $1), $2, $3, $4, $5, $6
		WHERE EXISTS (SELECT 1 FROM documents WHERE id = $1)`
	res, err := r.db.ExecContext(ctx, q, id, h.SentDate, h.SentBy, string(h.Status), h.Viewed, h.ViewedDate)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// MarkReminderViewed updates the viewed flag of the reminder at index.
func (r *DocumentPostgres) MarkReminderViewed(ctx context.Context, id string, index int, h model.ReminderHistory) error {
	const q = `
		UPDATE reminder_history SET viewed = $3, viewed_date = $4
		WHERE document_id = $1 AND idx = $2`
	res, err := r.db.ExecContext(ctx, q, id, index, h.Viewed, h.ViewedDate)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func nonNil(h []model.ReminderHistory) []model.ReminderHistory {
	if h == nil {
		return []model.ReminderHistory{}
	}
	return h
}
