// Package filter derives display lists from documents and clients. Every
// function is pure: inputs are never mutated and outputs keep input order
// unless an explicit sort is requested.
package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"doccenter/internal/model"
)

// StatusFilter is the client-view status selector.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusReceived  StatusFilter = "received"  // approved
	StatusPending   StatusFilter = "pending"   // requested from the client
	StatusReviewing StatusFilter = "reviewing" // waiting on firm review
)

// ParseStatusFilter accepts "" as all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusReceived, StatusPending, StatusReviewing:
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("invalid status filter %q", s)
}

// Matches reports whether a document status passes the filter.
func (f StatusFilter) Matches(s model.Status) bool {
	switch f {
	case StatusReceived:
		return s == model.StatusApproved
	case StatusPending:
		return s == model.StatusRequested
	case StatusReviewing:
		return s == model.StatusPending
	}
	return true
}

// SortOrder selects an explicit ordering.
type SortOrder string

const (
	SortNone   SortOrder = ""
	SortRecent SortOrder = "recent"
	SortName   SortOrder = "name"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortNone, SortRecent, SortName:
		return SortOrder(s), nil
	case "none":
		return SortNone, nil
	}
	return "", fmt.Errorf("invalid sort order %q", s)
}

// YearAll disables the year filter; so does "".
const YearAll = "all"

// DocumentQuery is the full set of document filters.
type DocumentQuery struct {
	// ClientIDs restricts results to these clients. Empty means every client.
	ClientIDs []string
	// IncludeLinked adds documents of clients linked to any selected client.
	IncludeLinked bool
	Search        string
	Status        StatusFilter
	Year          string
	Sort          SortOrder
}

// Views resolves client display fields for docs. Documents whose client is
// unknown keep empty display fields.
func Views(docs []model.Document, clients []model.Client, now time.Time) []model.DocumentView {
	byID := make(map[string]model.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	out := make([]model.DocumentView, len(docs))
	for i, d := range docs {
		out[i] = View(d, byID[d.ClientID], now)
	}
	return out
}

// View builds the read model of one document. A zero client leaves the
// display fields empty.
func View(d model.Document, c model.Client, now time.Time) model.DocumentView {
	return model.DocumentView{
		Document:   d,
		ClientName: c.Name,
		ClientType: c.Type,
		HasOldYear: d.IsOldYear(now),

		RecentReminder: d.HasRecentReminder(now),
	}
}

// Documents applies q to views. Applying the same query to its own result
// returns the same list.
func Documents(views []model.DocumentView, links []model.ClientLink, q DocumentQuery) []model.DocumentView {
	clientSet := selectedClients(q.ClientIDs, links, q.IncludeLinked)
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	year := q.Year
	if year == YearAll {
		year = ""
	}

	out := make([]model.DocumentView, 0, len(views))
	for _, v := range views {
		if clientSet != nil && !clientSet[v.ClientID] {
			continue
		}
		if needle != "" && !matchesSearch(v, needle) {
			continue
		}
		if !q.Status.Matches(v.Status) {
			continue
		}
		if year != "" && !matchesYear(v, year, q.Status) {
			continue
		}
		out = append(out, v)
	}
	sortViews(out, q.Sort)
	return out
}

// selectedClients returns nil when every client is selected.
func selectedClients(ids []string, links []model.ClientLink, includeLinked bool) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	if includeLinked {
		// Only direct links of the selection, not links of linked clients.
		var linked []string
		for _, l := range links {
			if set[l.A] {
				linked = append(linked, l.B)
			}
			if set[l.B] {
				linked = append(linked, l.A)
			}
		}
		for _, id := range linked {
			set[id] = true
		}
	}
	return set
}

func matchesSearch(v model.DocumentView, needle string) bool {
	return strings.Contains(strings.ToLower(v.Name), needle) ||
		strings.Contains(strings.ToLower(v.DocumentType), needle) ||
		strings.Contains(strings.ToLower(v.ClientName), needle)
}

// matchesYear: "reviewing" ignores the year so the whole backlog shows; "all"
// keeps unreviewed documents of any year next to the selected year.
func matchesYear(v model.DocumentView, year string, status StatusFilter) bool {
	switch status {
	case StatusReviewing:
		return true
	case StatusAll, "":
		return v.Year == year || v.ReviewedDate == nil
	}
	return v.Year == year
}

func sortViews(views []model.DocumentView, order SortOrder) {
	switch order {
	case SortRecent:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].LastActivity().After(views[j].LastActivity())
		})
	case SortName:
		sort.SliceStable(views, func(i, j int) bool {
			return strings.ToLower(views[i].Name) < strings.ToLower(views[j].Name)
		})
	}
}
