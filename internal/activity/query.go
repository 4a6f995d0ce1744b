package activity

import (
	"sort"
	"strings"
	"time"

	"doccenter/internal/model"
)

const (
	// AllTime as Days disables the lookback window.
	AllTime = 99999
	// DefaultDays applies when Days is zero or negative.
	DefaultDays = 7
)

// Query selects activity log entries. Zero values match everything except
// Days, which defaults to DefaultDays.
type Query struct {
	ClientIDs []string
	Days      int
	Type      *model.ActivityType
	User      string
	Search    string
}

// Filter returns the entries matching q, newest first. Entries with equal
// timestamps keep their log order.
func Filter(entries []model.ActivityLogEntry, q Query, now time.Time) []model.ActivityLogEntry {
	days := q.Days
	if days <= 0 {
		days = DefaultDays
	}
	var cutoff time.Time
	// Anything at or past AllTime is unbounded. AddDate keeps very large
	// windows from overflowing time.Duration.
	if days < AllTime {
		cutoff = now.AddDate(0, 0, -days)
	}

	var clients map[string]bool
	if len(q.ClientIDs) > 0 {
		clients = make(map[string]bool, len(q.ClientIDs))
		for _, id := range q.ClientIDs {
			clients[id] = true
		}
	}
	user := q.User
	if user == "all" {
		user = ""
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]model.ActivityLogEntry, 0, len(entries))
	for _, e := range entries {
		if clients != nil && !clients[e.ClientID] {
			continue
		}
		if !cutoff.IsZero() && e.Timestamp.Before(cutoff) {
			continue
		}
		if q.Type != nil && e.ActivityType != *q.Type {
			continue
		}
		if user != "" && e.PerformedBy != user {
			continue
		}
		if needle != "" && !matches(e, needle) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func matches(e model.ActivityLogEntry, needle string) bool {
	for _, f := range []string{e.Details, e.ClientName, e.DocumentName, e.DocumentType, e.PerformedBy} {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// UniqueUsers lists every performer in the log, sorted.
func UniqueUsers(entries []model.ActivityLogEntry) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, e := range entries {
		if !seen[e.PerformedBy] {
			seen[e.PerformedBy] = true
			out = append(out, e.PerformedBy)
		}
	}
	sort.Strings(out)
	return out
}
