// Package activity filters, formats and exports the document activity log.
package activity

import (
	"fmt"
	"time"
)

// TimeAgo renders t relative to now for the activity feed. Older than a week
// falls back to "Jan 2", with the year added when it differs from now's.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	mins := int(d / time.Minute)
	hours := int(d / time.Hour)
	days := int(d / (24 * time.Hour))

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return plural(mins, "min") + " ago"
	case hours < 24:
		return plural(hours, "hour") + " ago"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	}
	local := t.In(now.Location())
	if local.Year() != now.Year() {
		return local.Format("Jan 2, 2006")
	}
	return local.Format("Jan 2")
}

// ReminderDate renders a reminder's sent or viewed time. Up to three days it
// is relative; after that it is "01/02/2006 | 3:04 PM" in now's location.
func ReminderDate(t, now time.Time) string {
	d := now.Sub(t)
	mins := int(d / time.Minute)
	hours := int(d / time.Hour)
	days := int(d / (24 * time.Hour))

	switch {
	case mins < 60:
		if mins <= 1 {
			return "Just now"
		}
		return fmt.Sprintf("%d mins ago", mins)
	case hours < 24:
		return plural(hours, "hour") + " ago"
	case days < 3:
		return plural(days, "day") + " ago"
	}
	return t.In(now.Location()).Format("01/02/2006 | 3:04 PM")
}

// CSVTimestamp is the en-US "1/2/2006, 3:04:05 PM" form used in exports.
func CSVTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("1/2/2006, 3:04:05 PM")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
