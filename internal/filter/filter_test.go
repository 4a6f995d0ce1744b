package filter

import (
	"testing"
	"time"

	"doccenter/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func fixture() ([]model.Client, []model.Document, []model.ClientLink) {
	clients := []model.Client{
		{ID: "1", Name: "John Smith", Type: model.ClientIndividual},
		{ID: "2", Name: "Jane Smith", Type: model.ClientIndividual},
		{ID: "3", Name: "Acme Corp", Type: model.ClientBusiness},
		{ID: model.FirmClientID, Name: "Firm", Type: model.ClientBusiness, IsFirm: true},
	}
	docs := []model.Document{
		{ID: "a", Name: "W2_2024.pdf", ClientID: "1", DocumentType: "W-2", Year: "2024", Status: model.StatusApproved,
			ReceivedDate: ptr(now.Add(-72 * time.Hour)), ReviewedDate: ptr(now.Add(-48 * time.Hour)), ReviewedBy: "Sarah"},
		{ID: "b", Name: "1099-INT.pdf", ClientID: "1", DocumentType: "1099-INT", Year: "2023", Status: model.StatusPending,
			ReceivedDate: ptr(now.Add(-24 * time.Hour))},
		{ID: "c", Name: "Mortgage Statement", ClientID: "2", DocumentType: "Mortgage Interest", Year: "2024", Status: model.StatusRequested,
			RequestedDate: ptr(now.Add(-time.Hour))},
		{ID: "d", Name: "invoice-march.pdf", ClientID: "3", DocumentType: "Invoice", Year: "2022", Status: model.StatusRejected,
			ReceivedDate: ptr(now.Add(-96 * time.Hour)), ReviewedDate: ptr(now.Add(-90 * time.Hour)), ReviewedBy: "Sarah", RejectionReason: "blurry"},
		{ID: "e", Name: "brokerage.pdf", ClientID: "2", DocumentType: "Stock Sales", Year: "2023", Status: model.StatusApproved,
			ReceivedDate: ptr(now.Add(-200 * time.Hour)), ReviewedDate: ptr(now.Add(-150 * time.Hour)), ReviewedBy: "Sarah"},
	}
	links := []model.ClientLink{model.NewClientLink("1", "2")}
	return clients, docs, links
}

func ids(views []model.DocumentView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func TestViews(t *testing.T) {
	clients, docs, _ := fixture()
	views := Views(docs, clients, now)
	require.Len(t, views, len(docs))
	assert.Equal(t, "John Smith", views[0].ClientName)
	assert.Equal(t, model.ClientBusiness, views[3].ClientType)
	assert.True(t, views[1].HasOldYear, "2023 is two years behind 2025")
	assert.False(t, views[0].HasOldYear)

	docs[2].ReminderHistory = []model.ReminderHistory{{SentDate: now.Add(-8 * 24 * time.Hour)}}
	assert.False(t, Views(docs, clients, now)[2].RecentReminder)
	docs[2].ReminderHistory = append(docs[2].ReminderHistory, model.ReminderHistory{SentDate: now.Add(-time.Hour)})
	assert.True(t, Views(docs, clients, now)[2].RecentReminder)
}

func TestDocuments(t *testing.T) {
	clients, docs, links := fixture()
	views := Views(docs, clients, now)

	tests := []struct {
		name string
		q    DocumentQuery
		want []string
	}{
		{"no filters keeps order", DocumentQuery{}, []string{"a", "b", "c", "d", "e"}},
		{"single client", DocumentQuery{ClientIDs: []string{"1"}}, []string{"a", "b"}},
		{"linked accounts", DocumentQuery{ClientIDs: []string{"1"}, IncludeLinked: true}, []string{"a", "b", "c", "e"}},
		{"linked from other side", DocumentQuery{ClientIDs: []string{"2"}, IncludeLinked: true}, []string{"a", "b", "c", "e"}},
		{"search name case-insensitive", DocumentQuery{Search: "W2"}, []string{"a"}},
		{"search client name", DocumentQuery{Search: "acme"}, []string{"d"}},
		{"search document type", DocumentQuery{Search: "stock"}, []string{"e"}},
		{"received", DocumentQuery{Status: StatusReceived}, []string{"a", "e"}},
		{"pending means requested", DocumentQuery{Status: StatusPending}, []string{"c"}},
		{"reviewing means pending", DocumentQuery{Status: StatusReviewing}, []string{"b"}},
		{"year with all keeps unreviewed backlog", DocumentQuery{Status: StatusAll, Year: "2024"}, []string{"a", "b", "c"}},
		{"year with reviewing ignores year", DocumentQuery{Status: StatusReviewing, Year: "2020"}, []string{"b"}},
		{"year with received is exact", DocumentQuery{Status: StatusReceived, Year: "2023"}, []string{"e"}},
		{"year all", DocumentQuery{Year: YearAll}, []string{"a", "b", "c", "d", "e"}},
		{"sort name", DocumentQuery{Sort: SortName}, []string{"b", "e", "d", "c", "a"}},
		{"sort recent", DocumentQuery{Sort: SortRecent}, []string{"c", "b", "a", "d", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Documents(views, links, tt.q)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestDocuments_Idempotent(t *testing.T) {
	clients, docs, links := fixture()
	views := Views(docs, clients, now)

	queries := []DocumentQuery{
		{},
		{ClientIDs: []string{"1"}, IncludeLinked: true, Year: "2024"},
		{Status: StatusReceived, Search: "pdf", Sort: SortRecent},
		{Status: StatusAll, Year: "2023", Sort: SortName},
		{Status: StatusReviewing, Year: "2024"},
	}
	for _, q := range queries {
		once := Documents(views, links, q)
		twice := Documents(once, links, q)
		assert.Equal(t, ids(once), ids(twice))
	}
}

func TestDocuments_DoesNotMutateInput(t *testing.T) {
	clients, docs, links := fixture()
	views := Views(docs, clients, now)
	before := ids(views)
	_ = Documents(views, links, DocumentQuery{Sort: SortName})
	assert.Equal(t, before, ids(views))
}

func TestParseFilters(t *testing.T) {
	s, err := ParseStatusFilter("")
	require.NoError(t, err)
	assert.Equal(t, StatusAll, s)
	_, err = ParseStatusFilter("approved")
	assert.Error(t, err)

	o, err := ParseSortOrder("none")
	require.NoError(t, err)
	assert.Equal(t, SortNone, o)
	_, err = ParseSortOrder("size")
	assert.Error(t, err)
}

func TestSummariesAndClients(t *testing.T) {
	clients, docs, links := fixture()
	sums := Summaries(clients, docs, links)
	require.Len(t, sums, 4)

	john := sums[0]
	assert.Equal(t, 2, john.DocumentCount)
	assert.Equal(t, 1, john.NewDocumentCount)
	assert.Equal(t, []string{"2"}, john.LinkedAccounts)
	assert.Equal(t, now.Add(-24*time.Hour), *john.MostRecentDate)

	jane := sums[1]
	assert.Equal(t, []string{"1"}, jane.LinkedAccounts, "links are symmetric")
	assert.Equal(t, 1, jane.NewDocumentCount)

	firm := sums[3]
	assert.Zero(t, firm.DocumentCount)
	assert.Nil(t, firm.MostRecentDate)

	t.Run("firm pinned first, name sort", func(t *testing.T) {
		got := Clients(sums, ClientQuery{Sort: SortName})
		names := []string{got[0].Name, got[1].Name, got[2].Name, got[3].Name}
		assert.Equal(t, []string{"Firm", "Acme Corp", "Jane Smith", "John Smith"}, names)
	})

	t.Run("recent sort", func(t *testing.T) {
		got := Clients(sums, ClientQuery{Sort: SortRecent})
		assert.Equal(t, []string{model.FirmClientID, "2", "1", "3"},
			[]string{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
	})

	t.Run("new only and type", func(t *testing.T) {
		got := Clients(sums, ClientQuery{NewOnly: true, Type: model.ClientIndividual})
		assert.Len(t, got, 2)
		got = Clients(sums, ClientQuery{Type: model.ClientBusiness, Search: "acme"})
		require.Len(t, got, 1)
		assert.Equal(t, "3", got[0].ID)
	})
}

func TestGroupByAccount(t *testing.T) {
	clients, docs, _ := fixture()
	groups := GroupByAccount(Views(docs, clients, now))
	require.Len(t, groups, 3)
	assert.Equal(t, "1", groups[0].AccountID)
	assert.Len(t, groups[1].Documents, 2)
	assert.True(t, SplitViewAvailable(groups))

	biz := GroupByAccount(Views(docs[3:4], clients, now))
	biz = append(biz, AccountGroup{AccountID: model.FirmClientID, ClientType: model.ClientBusiness})
	assert.False(t, SplitViewAvailable(biz))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		docType string
		client  model.ClientType
		want    string
	}{
		{"W-2", model.ClientIndividual, "income"},
		{"1099-DIV", model.ClientIndividual, "income"},
		{"Mortgage Interest (1098)", model.ClientIndividual, "deductions"},
		{"Property Tax Bill", model.ClientIndividual, "deductions"},
		{"Stock Sales", model.ClientIndividual, "investments"},
		{"Invoice", model.ClientIndividual, "business"},
		{"Receipt", model.ClientBusiness, "business"},
		{"Receipt", model.ClientIndividual, "other"},
		{"Property Deed", model.ClientIndividual, "property"},
		{"Driver License", model.ClientIndividual, "other"},
	}
	for _, tt := range tests {
		t.Run(tt.docType, func(t *testing.T) {
			v := model.DocumentView{Document: model.Document{DocumentType: tt.docType}, ClientType: tt.client}
			assert.Equal(t, tt.want, Categorize(v))
		})
	}
}

func TestOrganize(t *testing.T) {
	clients, docs, _ := fixture()
	groups := Organize(Views(docs, clients, now))
	var cats []string
	for _, g := range groups {
		cats = append(cats, g.Category.ID)
	}
	assert.Equal(t, []string{"income", "deductions", "investments", "business"}, cats)
	assert.Len(t, groups[0].Documents, 2)
}

func TestStats(t *testing.T) {
	clients, docs, _ := fixture()
	s := ComputeStats(docs, now)
	assert.Equal(t, Stats{TotalDocuments: 5, NeedsReview: 1, RequestedPending: 1, OldYearCount: 3}, s)

	cs := ComputeClientStats(Views(docs, clients, now))
	assert.Equal(t, ClientStats{Received: 2, Pending: 1, NeedReview: 1}, cs)
}
