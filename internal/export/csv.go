package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"eventlex/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Event Name",
	"Event Type",
	"Action Type",
	"Purpose",
	"Trigger Condition",
	"Actor",
	"Object",
	"Context Surface",
	"Properties",
	"Context Keys",
	"Lifecycle Status",
	"API Binding",
	"Error Code",
	"Error Message",
	"Notes",
}

// CSVWriter wraps csv.Writer for exporting dictionaries as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDictionary converts every event to a CSV row and writes them.
func (w *CSVWriter) WriteDictionary(dict *domain.Dictionary) error {
	for i := range dict.Events {
		if err := w.csv.Write(eventToRow(&dict.Events[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func eventToRow(ev *domain.DictionaryEvent) []string {
	return []string{
		ev.Name,
		string(ev.EventType),
		string(ev.ActionType),
		ev.Purpose,
		ev.TriggerCondition,
		ev.Actor,
		ev.Object,
		ev.ContextSurface,
		formatProperties(ev.Properties),
		strings.Join(ev.ContextKeys, ", "),
		string(ev.Lifecycle),
		string(ev.APIBinding),
		ev.ErrorCode,
		ev.ErrorMessage,
		ev.Notes,
	}
}

// formatProperties flattens the property list to "name:type!" pairs, with
// "!" marking required properties.
func formatProperties(props []domain.Property) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		part := p.Name + ":" + string(p.Type)
		if p.Required {
			part += "!"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a project name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), time.Now().Format("2006-01-02"), ext)
}

// formatRequired renders the required flag for tabular exports.
func formatRequired(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
