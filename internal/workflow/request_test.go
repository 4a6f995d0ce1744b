package workflow

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doccenter/internal/model"
)

var (
	alice = model.Client{ID: "c1", Name: "Alice Smith", Type: model.ClientIndividual, Email: "alice@example.com"}
	acme  = model.Client{ID: "c2", Name: "Acme LLC", Type: model.ClientBusiness, Email: "ops@acme.test"}
	rc    = RenderContext{FirmName: "Smith & Co", UploadLink: "https://portal.test/upload"}
)

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

func newTestRequest(t *testing.T, clients ...model.Client) *Request {
	t.Helper()
	r, err := NewRequest(clients, "2025")
	require.NoError(t, err)
	r.newID = seqIDs("id-")
	return r
}

func TestNewRequest_RequiresClient(t *testing.T) {
	_, err := NewRequest(nil, "2025")
	assert.ErrorIs(t, err, ErrNoClients)
}

func TestNewRequest_Defaults(t *testing.T) {
	r := newTestRequest(t, alice)
	assert.Equal(t, StepSelectDocuments, r.Step())
	assert.Equal(t, "default", r.Preset())
	assert.Equal(t, "Document Request for Tax Preparation", r.Subject())
	assert.Equal(t, DefaultEmailBody, r.Body())
	assert.Empty(t, r.Requests())
}

func TestRequest_AddDocument(t *testing.T) {
	r := newTestRequest(t, alice)

	req, err := r.AddDocument("W-2 Form", "")
	require.NoError(t, err)
	assert.Equal(t, "Personal Income", req.Category)
	assert.False(t, req.Custom)

	_, err = r.AddDocument("W-2 Form", "again")
	assert.ErrorIs(t, err, ErrDuplicateDocument)

	_, err = r.AddDocument("  ", "")
	assert.ErrorIs(t, err, ErrDocumentTypeRequired)

	custom, err := r.AddCustomDocument("Crypto wallet export", "")
	require.NoError(t, err)
	assert.True(t, custom.Custom)
	assert.Equal(t, CustomCategory, custom.Category)

	assert.Len(t, r.Requests(), 2)
}

func TestRequest_RemoveAndDescribe(t *testing.T) {
	r := newTestRequest(t, alice)
	a, _ := r.AddDocument("W-2 Form", "")
	b, _ := r.AddDocument("1099-INT", "")

	require.NoError(t, r.SetDescription(b.ID, "Chase savings"))
	require.NoError(t, r.RemoveDocument(a.ID))
	assert.ErrorIs(t, r.RemoveDocument(a.ID), ErrRequestNotFound)
	assert.ErrorIs(t, r.SetDescription("nope", "x"), ErrRequestNotFound)

	reqs := r.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Chase savings", reqs[0].Description)
}

func TestRequest_NextRequiresDocuments(t *testing.T) {
	r := newTestRequest(t, alice)
	assert.ErrorIs(t, r.Next(), ErrNoDocumentsSelected)
	assert.Equal(t, StepSelectDocuments, r.Step())

	_, _ = r.AddDocument("W-2 Form", "")
	require.NoError(t, r.Next())
	assert.Equal(t, StepReviewAndSend, r.Step())

	// documents are frozen while reviewing
	_, err := r.AddDocument("1099-R", "")
	assert.ErrorIs(t, err, ErrInvalidStep)
	assert.ErrorIs(t, r.Next(), ErrInvalidStep)

	require.NoError(t, r.Back())
	assert.Equal(t, StepSelectDocuments, r.Step())
	assert.ErrorIs(t, r.Back(), ErrInvalidStep)

	_, err = r.AddDocument("1099-R", "")
	assert.NoError(t, err)
}

func TestRequest_ApplyPreset(t *testing.T) {
	r := newTestRequest(t, alice)
	require.NoError(t, r.ApplyPreset("urgent"))
	assert.Equal(t, "URGENT: Documents Required by [Date]", r.Subject())
	assert.Equal(t, "urgent", r.Preset())

	assert.ErrorIs(t, r.ApplyPreset("missing"), ErrUnknownPreset)
	assert.Equal(t, "urgent", r.Preset())
}

func TestDocumentList(t *testing.T) {
	got := DocumentList([]DocumentRequest{
		{DocumentType: "W-2 Form"},
		{DocumentType: "1099-INT", Description: "Chase savings"},
	})
	assert.Equal(t, "1. W-2 Form\n2. 1099-INT - Chase savings", got)
	assert.Equal(t, "", DocumentList(nil))
}

func TestRequest_Preview(t *testing.T) {
	tests := []struct {
		name    string
		clients []model.Client
		want    string
	}{
		{name: "single client", clients: []model.Client{alice}, want: "Hi Alice Smith"},
		{name: "several clients", clients: []model.Client{alice, acme}, want: "Hi Valued Client"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRequest(t, tt.clients...)
			r.SetBody("Hi [Client Name]")
			assert.Equal(t, tt.want, r.Preview(rc))
		})
	}
}

func TestRequest_PreviewReplacesOnce(t *testing.T) {
	r := newTestRequest(t, model.Client{ID: "x", Name: "[Document List]"})
	_, _ = r.AddDocument("[Your Firm Name]", "")
	r.SetBody("[Client Name]|[Document List]|[Secure Upload Link]|[Your Firm Name]")

	// substituted values are not scanned again
	assert.Equal(t, "[Document List]|1. [Your Firm Name]|https://portal.test/upload|Smith & Co", r.Preview(rc))
}

func TestRequest_Complete(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("without email", func(t *testing.T) {
		r := newTestRequest(t, alice, acme)
		_, _ = r.AddDocument("W-2 Form", "")
		_, _ = r.AddDocument("1099-INT", "Chase")
		require.NoError(t, r.Next())

		out, err := r.Complete(false, rc, now)
		require.NoError(t, err)
		assert.Equal(t, StepAddedWithoutEmail, out.Step)
		assert.Empty(t, out.Emails)
		require.Len(t, out.Documents, 4)

		d := out.Documents[0]
		assert.Equal(t, "W-2 Form - Alice Smith", d.Name)
		assert.Equal(t, "c1", d.ClientID)
		assert.Equal(t, "2025", d.Year)
		assert.Equal(t, model.StatusRequested, d.Status)
		assert.Nil(t, d.ReceivedDate)
		require.NotNil(t, d.RequestedDate)
		assert.True(t, d.RequestedDate.Equal(now))
		assert.Equal(t, "c2", out.Documents[3].ClientID)
		assert.Equal(t, "1099-INT", out.Documents[3].DocumentType)

		assert.True(t, r.Step().Done())
		_, err = r.Complete(true, rc, now)
		assert.ErrorIs(t, err, ErrInvalidStep)
	})

	t.Run("with email", func(t *testing.T) {
		r := newTestRequest(t, alice, acme)
		_, _ = r.AddDocument("W-2 Form", "")
		require.NoError(t, r.ApplyPreset("followup"))
		r.SetBody("Dear [Client Name]: [Document List]")
		require.NoError(t, r.Next())

		out, err := r.Complete(true, rc, now)
		require.NoError(t, err)
		assert.Equal(t, StepSent, out.Step)
		require.Len(t, out.Emails, 2)
		assert.Equal(t, Email{
			ClientID: "c1",
			To:       "alice@example.com",
			Subject:  "Following Up: Tax Documents",
			Body:     "Dear Alice Smith: 1. W-2 Form",
		}, out.Emails[0])
		assert.Equal(t, "Dear Acme LLC: 1. W-2 Form", out.Emails[1].Body)
	})

	t.Run("before review", func(t *testing.T) {
		r := newTestRequest(t, alice)
		_, _ = r.AddDocument("W-2 Form", "")
		_, err := r.Complete(true, rc, now)
		assert.ErrorIs(t, err, ErrInvalidStep)
	})
}
