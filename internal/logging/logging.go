// Package logging writes one JSON object per line, stamped with "ts" in the
// configured location and a "level" field.
package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Logger emits JSON lines. The zero value is not usable; use New or Default.
type Logger struct {
	mu  sync.Mutex
	out *log.Logger
	loc *time.Location
	now func() time.Time
}

// New returns a Logger writing to w with timestamps rendered in loc.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{out: log.New(w, "", 0), loc: loc, now: time.Now}
}

// Default writes to stderr, matching the standard log package.
func Default(loc *time.Location) *Logger {
	return New(os.Stderr, loc)
}

// Location returns the time zone used for "ts".
func (l *Logger) Location() *time.Location { return l.loc }

// Log writes fields as one line. The map is modified in place.
func (l *Logger) Log(fields map[string]any) {
	fields["ts"] = l.now().In(l.loc).Format(time.RFC3339Nano)
	if _, ok := fields["level"]; !ok {
		if fields["status"] == "error" {
			fields["level"] = "error"
		} else {
			fields["level"] = "info"
		}
	}

	b, err := json.Marshal(fields)
	if err != nil {
		log.Printf("failed to marshal log entry: %v", err)
		return
	}
	l.mu.Lock()
	l.out.Println(string(b))
	l.mu.Unlock()
}

// Info logs msg with the given fields at level info.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.event("info", msg, fields)
}

// Error logs msg and err at level error.
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	entry := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	l.event("error", msg, entry)
}

func (l *Logger) event(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = level
	entry["msg"] = msg
	l.Log(entry)
}
