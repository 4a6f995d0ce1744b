package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"doccenter/internal/mail"
	"doccenter/internal/model"
	repoMocks "doccenter/internal/repository/mocks"
	"doccenter/internal/workflow"
)

func strPtr(s string) *string { return &s }

func TestRequestService_Preview(t *testing.T) {
	ctx := context.Background()
	svc := NewRequestService(newFixture(t).deps)

	p, err := svc.Preview(ctx, RequestInput{
		ClientIDs: []string{"c1"},
		Documents: []RequestedDocument{
			{DocumentType: "W-2 Form"},
			{DocumentType: "1099-DIV", Description: "Brokerage"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Document Request for Tax Preparation", p.Subject)
	assert.True(t, strings.HasPrefix(p.Body, "Dear Alice Smith,"))
	assert.Contains(t, p.Body, "1. W-2 Form\n2. 1099-DIV - Brokerage")
	assert.Contains(t, p.Body, "https://portal.test/upload")
	require.Len(t, p.Documents, 2)
	assert.Equal(t, "Personal Income", p.Documents[0].Category)

	p, err = svc.Preview(ctx, RequestInput{
		ClientIDs: []string{"c1", "c3"},
		Documents: []RequestedDocument{{DocumentType: "Invoices"}},
		Preset:    "followup",
	})
	require.NoError(t, err)
	assert.Equal(t, "Following Up: Tax Documents", p.Subject)
	assert.True(t, strings.HasPrefix(p.Body, "Dear Valued Client,"))

	p, err = svc.Preview(ctx, RequestInput{
		ClientIDs: []string{"c1"},
		Documents: []RequestedDocument{{DocumentType: "Crypto wallet export", Custom: true, Description: "All exchanges"}},
		Subject:   strPtr("Need one more thing"),
		Body:      strPtr("Hi [Client Name]: [Document List]"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Need one more thing", p.Subject)
	assert.Equal(t, "Hi Alice Smith: 1. Crypto wallet export - All exchanges", p.Body)
	assert.Equal(t, workflow.CustomCategory, p.Documents[0].Category)
}

func TestRequestService_Preview_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      RequestInput
		wantErr error
	}{
		{"no clients", RequestInput{Documents: []RequestedDocument{{DocumentType: "W-2 Form"}}}, workflow.ErrNoClients},
		{"unknown client", RequestInput{ClientIDs: []string{"ghost"}, Documents: []RequestedDocument{{DocumentType: "W-2 Form"}}}, ErrClientNotFound},
		{"no documents", RequestInput{ClientIDs: []string{"c1"}}, workflow.ErrNoDocumentsSelected},
		{"duplicate type", RequestInput{ClientIDs: []string{"c1"}, Documents: []RequestedDocument{{DocumentType: "W-2 Form"}, {DocumentType: "W-2 Form"}}}, workflow.ErrDuplicateDocument},
		{"blank type", RequestInput{ClientIDs: []string{"c1"}, Documents: []RequestedDocument{{DocumentType: " "}}}, workflow.ErrDocumentTypeRequired},
		{"unknown preset", RequestInput{ClientIDs: []string{"c1"}, Documents: []RequestedDocument{{DocumentType: "W-2 Form"}}, Preset: "nope"}, workflow.ErrUnknownPreset},
		{"bad year", RequestInput{ClientIDs: []string{"c1"}, Documents: []RequestedDocument{{DocumentType: "W-2 Form"}}, Year: "last"}, ErrInvalidYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequestService(newFixture(t).deps).Preview(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequestService_Send(t *testing.T) {
	ctx := context.Background()
	in := RequestInput{
		ClientIDs: []string{"c1", "c3"},
		Documents: []RequestedDocument{{DocumentType: "W-2 Form"}, {DocumentType: "Receipts", Description: "2024 only"}},
		Year:      "2024",
		SendEmail: true,
	}

	t.Run("sends one e-mail per client", func(t *testing.T) {
		f := newFixture(t)
		f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(m mail.Message) bool {
			return m.To[0] == "alice@example.com" && strings.HasPrefix(m.Body, "Dear Alice Smith,")
		})).Return(nil).Once()
		f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(m mail.Message) bool {
			return m.To[0] == "ops@acme.test" && strings.HasPrefix(m.Body, "Dear Acme LLC,")
		})).Return(nil).Once()

		res, err := NewRequestService(f.deps).Send(ctx, "Sarah", in)
		require.NoError(t, err)
		assert.Equal(t, workflow.StepSent, res.Step)
		assert.Empty(t, res.Failed)
		require.Len(t, res.Documents, 4)

		d := f.doc(t, res.Documents[1].ID)
		assert.Equal(t, "Receipts - Alice Smith", d.Name)
		assert.Equal(t, model.StatusRequested, d.Status)
		assert.Equal(t, "2024", d.Year)
		assert.Equal(t, "2024 only", d.Note)
		assert.Nil(t, d.ReceivedDate)
		require.NotNil(t, d.RequestedDate)
		assert.Equal(t, testNow, *d.RequestedDate)

		es := f.entries(t)
		require.Len(t, es, 4)
		for _, e := range es {
			assert.Equal(t, model.ActivityRequest, e.ActivityType)
			assert.True(t, e.Metadata.EmailSent)
		}

		expected := `
# HELP doccenter_document_requests_total Requested documents created, by whether an e-mail was sent.
# TYPE doccenter_document_requests_total counter
doccenter_document_requests_total{email="true"} 4
`
		assert.NoError(t, testutil.GatherAndCompare(f.reg, strings.NewReader(expected), "doccenter_document_requests_total"))
		f.mailer.AssertExpectations(t)
	})

	t.Run("failed delivery is reported per client", func(t *testing.T) {
		f := newFixture(t)
		f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(m mail.Message) bool {
			return m.To[0] == "alice@example.com"
		})).Return(errors.New("mailbox full"))
		f.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

		res, err := NewRequestService(f.deps).Send(ctx, "Sarah", in)
		require.NoError(t, err)
		assert.Equal(t, []string{"c1"}, res.Failed)
		for _, e := range f.entries(t) {
			assert.Equal(t, e.ClientID == "c3", e.Metadata.EmailSent, e.ClientID)
		}
		// The requests stay on record for the client whose e-mail failed.
		require.NotEmpty(t, res.Documents)
		for _, d := range res.Documents {
			assert.Equal(t, model.StatusRequested, f.doc(t, d.ID).Status, d.ClientID)
		}
	})

	t.Run("added without e-mail", func(t *testing.T) {
		f := newFixture(t)
		noMail := in
		noMail.SendEmail = false

		res, err := NewRequestService(f.deps).Send(ctx, "Sarah", noMail)
		require.NoError(t, err)
		assert.Equal(t, workflow.StepAddedWithoutEmail, res.Step)
		assert.Len(t, res.Documents, 4)
		f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		assert.False(t, f.entries(t)[0].Metadata.EmailSent)
	})

	t.Run("save failure sends nothing", func(t *testing.T) {
		f := newFixture(t)
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("CreateMany", mock.Anything, mock.Anything).Return(errors.New("db fail"))
		f.deps.Documents = mRepo

		_, err := NewRequestService(f.deps).Send(ctx, "Sarah", in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save requested documents: db fail")
		f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		assert.Empty(t, f.entries(t))
	})
}
