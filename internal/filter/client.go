package filter

import (
	"sort"
	"strings"
	"time"

	"doccenter/internal/model"
)

// Summaries derives per-client counters from docs and resolves linked
// accounts from the edge set. Output follows clients order.
func Summaries(clients []model.Client, docs []model.Document, links []model.ClientLink) []model.ClientSummary {
	type agg struct {
		count, fresh int
		recent       *time.Time
	}
	byClient := make(map[string]*agg, len(clients))
	for _, d := range docs {
		a := byClient[d.ClientID]
		if a == nil {
			a = &agg{}
			byClient[d.ClientID] = a
		}
		a.count++
		if d.Status.Unreviewed() {
			a.fresh++
		}
		t := d.LastActivity()
		if a.recent == nil || t.After(*a.recent) {
			a.recent = &t
		}
	}

	linked := make(map[string][]string)
	for _, l := range links {
		linked[l.A] = append(linked[l.A], l.B)
		linked[l.B] = append(linked[l.B], l.A)
	}

	out := make([]model.ClientSummary, len(clients))
	for i, c := range clients {
		s := model.ClientSummary{Client: c, LinkedAccounts: linked[c.ID]}
		if a := byClient[c.ID]; a != nil {
			s.DocumentCount = a.count
			s.NewDocumentCount = a.fresh
			s.MostRecentDate = a.recent
		}
		sort.Strings(s.LinkedAccounts)
		out[i] = s
	}
	return out
}

// ClientQuery filters the client list.
type ClientQuery struct {
	Search string
	// Type restricts to one client type; empty means all.
	Type model.ClientType
	// NewOnly keeps clients with at least one unreviewed document.
	NewOnly bool
	Sort    SortOrder
}

// Clients filters and sorts summaries. The firm pseudo-account, when it
// passes the filters, is always listed first.
func Clients(summaries []model.ClientSummary, q ClientQuery) []model.ClientSummary {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]model.ClientSummary, 0, len(summaries))
	for _, s := range summaries {
		if q.NewOnly && s.NewDocumentCount == 0 {
			continue
		}
		if q.Type != "" && s.Type != q.Type {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(s.Name), needle) {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsFirm != b.IsFirm {
			return a.IsFirm
		}
		switch q.Sort {
		case SortRecent:
			return recentBefore(a.MostRecentDate, b.MostRecentDate)
		case SortName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		return false
	})
	return out
}

// recentBefore orders newest first; clients without documents go last.
func recentBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	}
	return a.After(*b)
}
