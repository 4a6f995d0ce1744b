package model

import "time"

// ActivityType is the closed set of audit events recorded for documents.
type ActivityType uint8

const (
	ActivityUpload ActivityType = iota
	ActivityApprove
	ActivityReject
	ActivityMove
	ActivityDelete
	ActivityRename
	ActivityRequest
	ActivityReminder
	ActivityView
	ActivityNote
	ActivityTypeChange
	ActivityYearChange
	activityTypeCount
)

// ActivityTypeInfo is the display mapping of an activity type.
type ActivityTypeInfo struct {
	Name  string
	Label string
	Icon  string
	Color string
}

var activityTypeInfos = [...]ActivityTypeInfo{
	ActivityUpload:     {Name: "upload", Label: "Upload", Icon: "upload", Color: "blue"},
	ActivityApprove:    {Name: "approve", Label: "Approved", Icon: "check", Color: "green"},
	ActivityReject:     {Name: "reject", Label: "Rejected", Icon: "x", Color: "red"},
	ActivityMove:       {Name: "move", Label: "Moved", Icon: "move-right", Color: "purple"},
	ActivityDelete:     {Name: "delete", Label: "Deleted", Icon: "trash-2", Color: "red"},
	ActivityRename:     {Name: "rename", Label: "Renamed", Icon: "edit", Color: "gray"},
	ActivityRequest:    {Name: "request", Label: "Request Sent", Icon: "mail", Color: "orange"},
	ActivityReminder:   {Name: "reminder", Label: "Reminder", Icon: "bell", Color: "yellow"},
	ActivityView:       {Name: "view", Label: "Viewed", Icon: "eye", Color: "gray"},
	ActivityNote:       {Name: "note", Label: "Note Added", Icon: "sticky-note", Color: "indigo"},
	ActivityTypeChange: {Name: "type_change", Label: "Type Changed", Icon: "file-edit", Color: "gray"},
	ActivityYearChange: {Name: "year_change", Label: "Year Changed", Icon: "calendar", Color: "gray"},
}

// Fails to compile when an activity type is added without display info.
var _ = [1]struct{}{}[len(activityTypeInfos)-int(activityTypeCount)]

var activityTypeNames = func() []string {
	out := make([]string, len(activityTypeInfos))
	for i, info := range activityTypeInfos {
		out[i] = info.Name
	}
	return out
}()

// ActivityTypes lists every activity type in declaration order.
func ActivityTypes() []ActivityType {
	out := make([]ActivityType, 0, activityTypeCount)
	for t := ActivityType(0); t < activityTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// Info returns the label, icon and color of t.
func (t ActivityType) Info() ActivityTypeInfo {
	if t < activityTypeCount {
		return activityTypeInfos[t]
	}
	return ActivityTypeInfo{Name: t.String(), Label: "Activity", Icon: "file-text", Color: "gray"}
}

func (t ActivityType) String() string { return enumName(activityTypeNames, t) }

// ParseActivityType converts the wire name of an activity type.
func ParseActivityType(v string) (ActivityType, error) {
	return parseEnum[ActivityType]("activity type", activityTypeNames, v)
}

func (t ActivityType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *ActivityType) UnmarshalText(b []byte) error {
	v, err := ParseActivityType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ActivityMetadata carries the kind-specific payload of an entry. Only the
// fields relevant to the entry's ActivityType are set.
type ActivityMetadata struct {
	RejectionReason string `json:"rejection_reason,omitempty"`
	FromClient      string `json:"from_client,omitempty"`
	ToClient        string `json:"to_client,omitempty"`
	FromYear        string `json:"from_year,omitempty"`
	ToYear          string `json:"to_year,omitempty"`
	OldName         string `json:"old_name,omitempty"`
	NewName         string `json:"new_name,omitempty"`
	OldType         string `json:"old_type,omitempty"`
	NewType         string `json:"new_type,omitempty"`
	ReminderSent    bool   `json:"reminder_sent,omitempty"`
	EmailSent       bool   `json:"email_sent,omitempty"`
}

// ActivityLogEntry is an immutable audit record.
type ActivityLogEntry struct {
	ID           string           `json:"id"`
	Timestamp    time.Time        `json:"timestamp"`
	ActivityType ActivityType     `json:"activity_type"`
	PerformedBy  string           `json:"performed_by"`
	ClientID     string           `json:"client_id"`
	ClientName   string           `json:"client_name"`
	DocumentID   string           `json:"document_id,omitempty"`
	DocumentName string           `json:"document_name,omitempty"`
	DocumentType string           `json:"document_type,omitempty"`
	Details      string           `json:"details"`
	Metadata     ActivityMetadata `json:"metadata"`
}
