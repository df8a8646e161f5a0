package sheets_tools

import (
	"fmt"
	"strings"

	"github.com/teemow/gworkspace-mcp/internal/render"
	sheetsclient "github.com/teemow/gworkspace-mcp/internal/sheets"
)

func formatSpreadsheet(s sheetsclient.Spreadsheet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	render.Field(&b, "Spreadsheet ID", s.SpreadsheetID)
	render.Field(&b, "Locale", s.Locale)
	render.Field(&b, "Time Zone", s.TimeZone)
	render.Field(&b, "URL", s.URL)

	fmt.Fprintf(&b, "\n## Sheets (%d)\n\n", len(s.Sheets))
	for _, sh := range s.Sheets {
		fmt.Fprintf(&b, "- **%s** (ID: %d): %d rows x %d columns\n", sh.Title, sh.SheetID, sh.RowCount, sh.ColumnCount)
	}
	return b.String()
}

func formatValues(v sheetsclient.Values) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", render.OrDefault(v.Range, "Values"))
	render.Field(&b, "Spreadsheet ID", v.SpreadsheetID)
	render.Field(&b, "Major Dimension", v.MajorDimension)
	b.WriteString("\n")

	table := render.Table(v.Values)
	if table == "" {
		b.WriteString("*No data in range.*\n")
		return b.String()
	}
	b.WriteString(table)
	return b.String()
}

func formatWrite(headline string, r sheetsclient.WriteResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headline)
	render.Field(&b, "Spreadsheet ID", r.SpreadsheetID)
	if r.ClearedRange != "" {
		render.Field(&b, "Cleared Range", r.ClearedRange)
		return b.String()
	}
	render.Field(&b, "Updated Range", r.UpdatedRange)
	fmt.Fprintf(&b, "**Updated Cells**: %d (%d rows, %d columns)\n", r.UpdatedCells, r.UpdatedRows, r.UpdatedColumns)
	return b.String()
}
