package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"eventlex/internal/domain"
)

const (
	eventsSheet     = "Events"
	propertiesSheet = "Properties"
)

// WriteExcel renders a dictionary as an .xlsx workbook with an Events sheet
// and a flattened Properties sheet.
func WriteExcel(w io.Writer, dict *domain.Dictionary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", eventsSheet)
	if _, err := f.NewSheet(propertiesSheet); err != nil {
		return fmt.Errorf("creating properties sheet: %w", err)
	}

	if err := f.SetSheetRow(eventsSheet, "A1", &columns); err != nil {
		return fmt.Errorf("writing events header: %w", err)
	}
	for i := range dict.Events {
		row := eventToRow(&dict.Events[i])
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(eventsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing event row %d: %w", i, err)
		}
	}

	propHeader := []string{"Event Name", "Property", "Type", "Required", "Example", "Description"}
	if err := f.SetSheetRow(propertiesSheet, "A1", &propHeader); err != nil {
		return fmt.Errorf("writing properties header: %w", err)
	}
	rowIdx := 2
	for i := range dict.Events {
		ev := &dict.Events[i]
		for _, p := range ev.Properties {
			row := []string{ev.Name, p.Name, string(p.Type), formatRequired(p.Required), p.Example, p.Description}
			cell := fmt.Sprintf("A%d", rowIdx)
			if err := f.SetSheetRow(propertiesSheet, cell, &row); err != nil {
				return fmt.Errorf("writing property row %d: %w", rowIdx, err)
			}
			rowIdx++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// ContentType returns the MIME type for an export format, or an empty string
// for unknown formats.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "csv":
		return "text/csv"
	case "markdown", "md":
		return "text/markdown"
	case "xlsx", "excel":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return ""
	}
}
