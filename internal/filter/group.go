package filter

import (
	"strings"
	"time"

	"doccenter/internal/model"
)

// AccountGroup is one account's documents in the split view.
type AccountGroup struct {
	AccountID   string               `json:"account_id"`
	AccountName string               `json:"account_name"`
	ClientType  model.ClientType     `json:"client_type"`
	Documents   []model.DocumentView `json:"documents"`
}

// GroupByAccount groups views by client in order of first appearance.
func GroupByAccount(views []model.DocumentView) []AccountGroup {
	idx := make(map[string]int)
	var out []AccountGroup
	for _, v := range views {
		i, ok := idx[v.ClientID]
		if !ok {
			typ := v.ClientType
			if typ == "" {
				typ = model.ClientIndividual
			}
			i = len(out)
			idx[v.ClientID] = i
			out = append(out, AccountGroup{AccountID: v.ClientID, AccountName: v.ClientName, ClientType: typ})
		}
		out[i].Documents = append(out[i].Documents, v)
	}
	return out
}

// SplitViewAvailable reports whether the split view applies: it is meant for
// spouse-linked individual accounts, so several groups without an individual
// account fall back to the table.
func SplitViewAvailable(groups []AccountGroup) bool {
	if len(groups) <= 1 {
		return true
	}
	for _, g := range groups {
		if g.ClientType == model.ClientIndividual {
			return true
		}
	}
	return false
}

// TaxCategory is a bucket of the organize view.
type TaxCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// TaxCategories in display order.
var TaxCategories = []TaxCategory{
	{ID: "income", Name: "Income", Order: 1},
	{ID: "deductions", Name: "Deductions", Order: 2},
	{ID: "credits", Name: "Credits", Order: 3},
	{ID: "investments", Name: "Investments", Order: 4},
	{ID: "business", Name: "Business Expenses", Order: 5},
	{ID: "property", Name: "Property & Assets", Order: 6},
	{ID: "healthcare", Name: "Healthcare", Order: 7},
	{ID: "other", Name: "Other", Order: 8},
}

// Categorize picks the tax category of a document from its type. The first
// matching rule wins.
func Categorize(v model.DocumentView) string {
	t := strings.ToLower(v.DocumentType)
	has := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(t, s) {
				return true
			}
		}
		return false
	}
	switch {
	case has("w2", "w-2", "1099"):
		return "income"
	case has("donation", "mortgage", "property tax"):
		return "deductions"
	case has("investment", "stock"):
		return "investments"
	case has("invoice"), has("receipt") && v.ClientType == model.ClientBusiness:
		return "business"
	case has("property"):
		return "property"
	}
	return "other"
}

// CategoryGroup is one non-empty tax category with its documents.
type CategoryGroup struct {
	Category  TaxCategory          `json:"category"`
	Documents []model.DocumentView `json:"documents"`
}

// Organize buckets views into TaxCategories, dropping empty categories.
func Organize(views []model.DocumentView) []CategoryGroup {
	buckets := make(map[string][]model.DocumentView)
	for _, v := range views {
		c := Categorize(v)
		buckets[c] = append(buckets[c], v)
	}
	var out []CategoryGroup
	for _, c := range TaxCategories {
		if docs := buckets[c.ID]; len(docs) > 0 {
			out = append(out, CategoryGroup{Category: c, Documents: docs})
		}
	}
	return out
}

// Stats are the dashboard counters over every document.
type Stats struct {
	TotalDocuments   int `json:"total_documents"`
	NeedsReview      int `json:"needs_review"`
	RequestedPending int `json:"requested_pending"`
	OldYearCount     int `json:"old_year_count"`
}

func ComputeStats(docs []model.Document, now time.Time) Stats {
	s := Stats{TotalDocuments: len(docs)}
	for _, d := range docs {
		switch d.Status {
		case model.StatusPending:
			s.NeedsReview++
		case model.StatusRequested:
			s.RequestedPending++
		}
		if d.IsOldYear(now) {
			s.OldYearCount++
		}
	}
	return s
}

// ClientStats are the status tiles of the client view.
type ClientStats struct {
	Received   int `json:"received"`
	Pending    int `json:"pending"`
	NeedReview int `json:"need_review"`
}

func ComputeClientStats(views []model.DocumentView) ClientStats {
	var s ClientStats
	for _, v := range views {
		switch v.Status {
		case model.StatusApproved:
			s.Received++
		case model.StatusRequested:
			s.Pending++
		case model.StatusPending:
			s.NeedReview++
		}
	}
	return s
}
