package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"doccenter/internal/config"
	"doccenter/internal/logging"
	mailMocks "doccenter/internal/mail/mocks"
	"doccenter/internal/metrics"
	"doccenter/internal/model"
	"doccenter/internal/repository/memory"
	storeMocks "doccenter/internal/storage/mocks"
)

var testNow = time.Date(2025, 4, 10, 15, 0, 0, 0, time.UTC)

type fixture struct {
	deps    Deps
	docs    *memory.DocumentStore
	clients *memory.ClientStore
	log     *memory.ActivityLog
	store   *storeMocks.MockStorage
	mailer  *mailMocks.MockMailer
	reg     *prometheus.Registry
}

// newFixture builds services over in-memory repositories holding three
// clients (c1 and c2 linked) and three documents:
//
//	p1 pending   c1 W-2 Form  2024 with a stored file
//	r1 requested c1 1099-INT  2024
//	a1 approved  c3 Invoices  2022
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		docs:    memory.NewDocumentStore(),
		clients: memory.NewClientStore(),
		log:     memory.NewActivityLog(),
		store:   new(storeMocks.MockStorage),
		mailer:  new(mailMocks.MockMailer),
		reg:     prometheus.NewRegistry(),
	}
	m, err := metrics.New(f.reg)
	require.NoError(t, err)

	for _, c := range []model.Client{
		{ID: "c1", Name: "Alice Smith", Type: model.ClientIndividual, Email: "alice@example.com"},
		{ID: "c2", Name: "Bob Smith", Type: model.ClientIndividual},
		{ID: "c3", Name: "Acme LLC", Type: model.ClientBusiness, Email: "ops@acme.test"},
	} {
		c := c
		_, err := f.clients.Create(ctx, &c)
		require.NoError(t, err)
	}
	require.NoError(t, f.clients.Link(ctx, model.NewClientLink("c1", "c2")))

	received := testNow.Add(-48 * time.Hour)
	reviewed := testNow.Add(-24 * time.Hour)
	requested := testNow.Add(-72 * time.Hour)
	require.NoError(t, f.docs.CreateMany(ctx, []model.Document{
		{ID: "p1", Name: "w2.pdf", ClientID: "c1", DocumentType: "W-2 Form", Year: "2024",
			Status: model.StatusPending, Method: model.MethodUploadedFile, ReceivedDate: &received,
			StoragePath: "documents/c1/p1/w2.pdf", CreatedAt: received},
		{ID: "r1", Name: "1099-INT - Alice Smith", ClientID: "c1", DocumentType: "1099-INT", Year: "2024",
			Status: model.StatusRequested, RequestedDate: &requested, CreatedAt: requested},
		{ID: "a1", Name: "invoice.pdf", ClientID: "c3", DocumentType: "Invoices", Year: "2022",
			Status: model.StatusApproved, ReceivedDate: &received, ReviewedDate: &reviewed, ReviewedBy: "Emily", CreatedAt: received},
	}))

	f.deps = Deps{
		Documents:   f.docs,
		Clients:     f.clients,
		Activity:    f.log,
		Preferences: memory.NewPreferences(),
		Templates:   memory.NewTemplateStore(),
		Storage:     f.store,
		Mailer:      f.mailer,
		Metrics:     m,
		Logger:      logging.New(io.Discard, time.UTC),
		Firm:        config.FirmConfig{Name: "Smith & Co", UploadLinkBase: "https://portal.test/upload", DefaultActor: "Current User"},
		FirmUsers:   DefaultFirmUsers,
		Location:    time.UTC,
		Now:         func() time.Time { return testNow },
	}
	return f
}

func (f *fixture) entries(t *testing.T) []model.ActivityLogEntry {
	t.Helper()
	es, err := f.log.List(context.Background())
	require.NoError(t, err)
	return es
}

func (f *fixture) doc(t *testing.T, id string) *model.Document {
	t.Helper()
	d, err := f.docs.FindByID(context.Background(), id)
	require.NoError(t, err)
	return d
}
