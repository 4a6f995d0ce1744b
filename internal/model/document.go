package model

import (
	"strconv"
	"time"
)

// Method is the channel a document arrived through. The zero value means the
// document has not been received.
type Method string

const (
	MethodUploadedFile Method = "Uploaded File"
	MethodEmail        Method = "Email"
	MethodTextMessage  Method = "Text Message"
)

// ReminderStatus is the delivery outcome of a reminder e-mail.
type ReminderStatus string

const (
	ReminderSent   ReminderStatus = "sent"
	ReminderFailed ReminderStatus = "failed"
)

// RecentReminderWindow is how far back a reminder counts as recent.
const RecentReminderWindow = 7 * 24 * time.Hour

// ReminderHistory is one reminder send event. ViewedDate is only set once the
// e-mail tracker reports the reminder as opened.
type ReminderHistory struct {
	SentDate   time.Time      `json:"sent_date"`
	SentBy     string         `json:"sent_by"`
	Status     ReminderStatus `json:"status"`
	Viewed     bool           `json:"viewed"`
	ViewedDate *time.Time     `json:"viewed_date,omitempty"`
}

// Document is a client-submitted or requested file.
// Client display fields are not stored here; see DocumentView.
type Document struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	ClientID        string            `json:"client_id"`
	DocumentType    string            `json:"document_type"`
	Year            string            `json:"year"`
	Status          Status            `json:"status"`
	Method          Method            `json:"method,omitempty"`
	ReceivedDate    *time.Time        `json:"received_date"`
	RequestedDate   *time.Time        `json:"requested_date,omitempty"`
	ReviewedDate    *time.Time        `json:"reviewed_date"`
	ReviewedBy      string            `json:"reviewed_by,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	Note            string            `json:"note,omitempty"`
	StoragePath     string            `json:"storage_path,omitempty"`
	ContentType     string            `json:"content_type,omitempty"`
	Size            int64             `json:"size,omitempty"`
	ReminderHistory []ReminderHistory `json:"reminder_history"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (d Document) Clone() Document {
	out := d
	out.ReceivedDate = cloneTime(d.ReceivedDate)
	out.RequestedDate = cloneTime(d.RequestedDate)
	out.ReviewedDate = cloneTime(d.ReviewedDate)
	out.ReminderHistory = make([]ReminderHistory, len(d.ReminderHistory))
	for i, r := range d.ReminderHistory {
		r.ViewedDate = cloneTime(r.ViewedDate)
		out.ReminderHistory[i] = r
	}
	return out
}

// IsOldYear reports whether the document's tax year is two or more years behind now.
func (d Document) IsOldYear(now time.Time) bool { return IsOldYear(d.Year, now) }

// HasRecentReminder reports whether any reminder was sent within RecentReminderWindow.
func (d Document) HasRecentReminder(now time.Time) bool {
	cutoff := now.Add(-RecentReminderWindow)
	for _, r := range d.ReminderHistory {
		if r.SentDate.After(cutoff) {
			return true
		}
	}
	return false
}

// LatestReminder returns the most recently appended reminder, or nil.
func (d Document) LatestReminder() *ReminderHistory {
	if len(d.ReminderHistory) == 0 {
		return nil
	}
	r := d.ReminderHistory[len(d.ReminderHistory)-1]
	return &r
}

// LastActivity is the most recent of the received, requested and created dates.
func (d Document) LastActivity() time.Time {
	t := d.CreatedAt
	for _, p := range []*time.Time{d.ReceivedDate, d.RequestedDate} {
		if p != nil && p.After(t) {
			t = *p
		}
	}
	return t
}

// IsOldYear is true iff now.Year() - year >= 2. Unparsable years are never old.
func IsOldYear(year string, now time.Time) bool {
	y, err := strconv.Atoi(year)
	if err != nil {
		return false
	}
	return now.Year()-y >= 2
}

// DocumentView is a document with its client display fields resolved.
type DocumentView struct {
	Document
	ClientName string     `json:"client_name"`
	ClientType ClientType `json:"client_type"`
	HasOldYear bool       `json:"has_old_year"`
	// RecentReminder is set when a reminder went out within RecentReminderWindow.
	RecentReminder bool `json:"recent_reminder"`
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
