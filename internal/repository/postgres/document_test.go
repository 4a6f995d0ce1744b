package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"doccenter/internal/model"
	"doccenter/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var docCols = []string{
	"id", "name", "client_id", "document_type", "year", "status", "method",
	"received_date", "requested_date", "reviewed_date", "reviewed_by", "rejection_reason",
	"note", "storage_path", "content_type", "size", "created_at",
}

var reminderCols = []string{"document_id", "sent_date", "sent_by", "status", "viewed", "viewed_date"}

func docRow(id, status string, received *time.Time, created time.Time) []driver.Value {
	var rd driver.Value
	if received != nil {
		rd = *received
	}
	return []driver.Value{
		id, "W2.pdf", "1", "W-2", "2024", status, "Email",
		rd, nil, nil, "", "", "", "", "application/pdf", int64(10), created,
	}
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	now := time.Now().UTC()
	doc := &model.Document{
		ID:           "doc-1",
		Name:         "W2.pdf",
		ClientID:     "1",
		DocumentType: "W-2",
		Year:         "2024",
		Status:       model.StatusPending,
		Method:       model.MethodEmail,
		ReceivedDate: &now,
		CreatedAt:    now,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs("doc-1", "W2.pdf", "1", "W-2", "2024", "pending", "Email",
			now, nil, nil, "", "", "", "", "", int64(0), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	out, err := repo.Create(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found with reminders", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-1").
			WillReturnRows(sqlmock.NewRows(docCols).AddRow(docRow("doc-1", "requested", nil, now)...))
		mock.ExpectQuery("SELECT (.+) FROM reminder_history WHERE document_id = ?").
			WithArgs("doc-1").
			WillReturnRows(sqlmock.NewRows(reminderCols).
				AddRow("doc-1", now, "Jane", "sent", true, now).
				AddRow("doc-1", now, "Jane", "failed", false, nil))

		doc, err := repo.FindByID(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusRequested, doc.Status)
		assert.Nil(t, doc.ReceivedDate)
		require.Len(t, doc.ReminderHistory, 2)
		assert.NotNil(t, doc.ReminderHistory[0].ViewedDate)
		assert.Nil(t, doc.ReminderHistory[1].ViewedDate)
		assert.Equal(t, model.ReminderFailed, doc.ReminderHistory[1].Status)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(docCols))

		doc, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, doc)
	})

	t.Run("bad status", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-2").
			WillReturnRows(sqlmock.NewRows(docCols).AddRow(docRow("doc-2", "bogus", nil, now)...))

		_, err := repo.FindByID(ctx, "doc-2")
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY seq").
		WillReturnRows(sqlmock.NewRows(docCols).
			AddRow(docRow("a", "pending", &now, now)...).
			AddRow(docRow("b", "approved", &now, now)...))
	mock.ExpectQuery("SELECT (.+) FROM reminder_history").
		WillReturnRows(sqlmock.NewRows(reminderCols).AddRow("b", now, "Jane", "sent", false, nil))

	docs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Empty(t, docs[0].ReminderHistory)
	assert.NotNil(t, docs[0].ReminderHistory)
	assert.Len(t, docs[1].ReminderHistory, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	now := time.Now().UTC()

	t.Run("empty ids skip the query", func(t *testing.T) {
		docs, err := repo.FindByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("in clause", func(t *testing.T) {
		mock.ExpectQuery(`WHERE id IN \(\$1, \$2\)`).
			WithArgs("a", "b").
			WillReturnRows(sqlmock.NewRows(docCols).AddRow(docRow("a", "pending", nil, now)...))
		mock.ExpectQuery(`FROM reminder_history\s+WHERE document_id IN \(\$1, \$2\)`).
			WithArgs("a", "b").
			WillReturnRows(sqlmock.NewRows(reminderCols))

		docs, err := repo.FindByIDs(context.Background(), []string{"a", "b"})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_UpdateMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)

	t.Run("commits", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE documents SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE documents SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateMany(context.Background(), []model.Document{{ID: "a"}, {ID: "b"}})
		assert.NoError(t, err)
	})

	t.Run("missing row rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE documents SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE documents SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.UpdateMany(context.Background(), []model.Document{{ID: "a"}, {ID: "missing"}})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("exec error rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE documents SET").WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		err := repo.UpdateMany(context.Background(), []model.Document{{ID: "a"}})
		assert.EqualError(t, err, "boom")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_DeleteMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectExec(`DELETE FROM documents WHERE id IN \(\$1, \$2, \$3\)`).
		WithArgs("a", "b", "c").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteMany(context.Background(), []string{"a", "b", "c"})
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Reminders(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO reminder_history").
		WithArgs("doc-1", now, "Jane", "sent", false, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.AppendReminder(ctx, "doc-1", model.ReminderHistory{SentDate: now, SentBy: "Jane", Status: model.ReminderSent}))

	mock.ExpectExec("INSERT INTO reminder_history").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.AppendReminder(ctx, "missing", model.ReminderHistory{}), repository.ErrNotFound)

	mock.ExpectExec("UPDATE reminder_history SET viewed").
		WithArgs("doc-1", 0, true, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkReminderViewed(ctx, "doc-1", 0, model.ReminderHistory{Viewed: true, ViewedDate: &now}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1", placeholders(1, 1))
	assert.Equal(t, "$3, $4, $5", placeholders(3, 3))
	assert.Equal(t, "", placeholders(1, 0))
}
