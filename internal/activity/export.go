package activity

import (
	"errors"
	"io"
	"strings"
	"time"

	"doccenter/internal/model"
)

var (
	// ErrNothingToExport is returned when the filtered log is empty.
	ErrNothingToExport = errors.New("no activities to export")
	// ErrNotImplemented is returned by PDF export.
	ErrNotImplemented = errors.New("pdf export is not implemented")
)

// CSVHeader is the fixed column order of the export.
var CSVHeader = []string{"Timestamp", "Activity Type", "Performed By", "Client", "Document", "Document Type", "Details"}

// CSVContentType is the media type of WriteCSV output.
const CSVContentType = "text/csv"

// WriteCSV writes the header and one row per entry. Every cell is quoted,
// rows are joined by "\n" without a trailing newline, and line breaks inside
// cells become spaces so each entry stays on one line.
func WriteCSV(w io.Writer, entries []model.ActivityLogEntry, loc *time.Location) error {
	if len(entries) == 0 {
		return ErrNothingToExport
	}
	var b strings.Builder
	writeRow(&b, CSVHeader)
	for _, e := range entries {
		b.WriteByte('\n')
		writeRow(&b, []string{
			CSVTimestamp(e.Timestamp, loc),
			e.ActivityType.Info().Label,
			e.PerformedBy,
			e.ClientName,
			orDash(e.DocumentName),
			orDash(e.DocumentType),
			e.Details,
		})
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CSVFilename names an export made at now, using the UTC calendar date.
func CSVFilename(now time.Time) string {
	return "activity-log-" + now.UTC().Format("2006-01-02") + ".csv"
}

// WritePDF is not supported.
func WritePDF(io.Writer, []model.ActivityLogEntry, *time.Location) error {
	return ErrNotImplemented
}

var cellReplacer = strings.NewReplacer(`"`, `""`, "\r\n", " ", "\n", " ", "\r", " ")

func writeRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(cellReplacer.Replace(c))
		b.WriteByte('"')
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
