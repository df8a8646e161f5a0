package sheets

import (
	sheets "google.golang.org/api/sheets/v4"

	"github.com/teemow/gworkspace-mcp/internal/render"
)

// Spreadsheet is the normalized metadata of a spreadsheet
type Spreadsheet struct {
	SpreadsheetID string  `json:"spreadsheet_id"`
	Title         string  `json:"title"`
	Locale        string  `json:"locale,omitempty"`
	TimeZone      string  `json:"time_zone,omitempty"`
	URL           string  `json:"url"`
	Sheets        []Sheet `json:"sheets"`
}

// Sheet describes one tab of a spreadsheet
type Sheet struct {
	SheetID     int64  `json:"sheet_id"`
	Title       string `json:"title"`
	Index       int64  `json:"index"`
	RowCount    int64  `json:"row_count"`
	ColumnCount int64  `json:"column_count"`
}

// Values is a value grid read from a range
type Values struct {
	SpreadsheetID  string  `json:"spreadsheet_id"`
	Range          string  `json:"range"`
	MajorDimension string  `json:"major_dimension"`
	Values         [][]any `json:"values"`
}

// WriteResult describes the outcome of an update, append or clear
type WriteResult struct {
	SpreadsheetID  string `json:"spreadsheet_id"`
	UpdatedRange   string `json:"updated_range,omitempty"`
	UpdatedRows    int64  `json:"updated_rows"`
	UpdatedColumns int64  `json:"updated_columns"`
	UpdatedCells   int64  `json:"updated_cells"`
	ClearedRange   string `json:"cleared_range,omitempty"`
}

// BatchUpdateResult describes the outcome of a structural batch update
type BatchUpdateResult struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	RepliesCount  int    `json:"replies_count"`
}

// NewSpreadsheet normalizes spreadsheet metadata
func NewSpreadsheet(s *sheets.Spreadsheet) Spreadsheet {
	result := Spreadsheet{
		SpreadsheetID: s.SpreadsheetId,
		Title:         render.Untitled,
		URL:           s.SpreadsheetUrl,
		Sheets:        []Sheet{},
	}
	if p := s.Properties; p != nil {
		result.Title = render.OrDefault(p.Title, render.Untitled)
		result.Locale = p.Locale
		result.TimeZone = p.TimeZone
	}
	for _, sh := range s.Sheets {
		if sh == nil || sh.Properties == nil {
			continue
		}
		p := sh.Properties
		entry := Sheet{
			SheetID: p.SheetId,
			Title:   render.OrDefault(p.Title, render.Untitled),
			Index:   p.Index,
		}
		if p.GridProperties != nil {
			entry.RowCount = p.GridProperties.RowCount
			entry.ColumnCount = p.GridProperties.ColumnCount
		}
		result.Sheets = append(result.Sheets, entry)
	}
	return result
}

// NewValues normalizes a value range. A missing major dimension means rows.
func NewValues(spreadsheetID string, vr *sheets.ValueRange) Values {
	values := make([][]any, 0, len(vr.Values))
	for _, row := range vr.Values {
		values = append(values, append([]any{}, row...))
	}
	return Values{
		SpreadsheetID:  spreadsheetID,
		Range:          vr.Range,
		MajorDimension: render.OrDefault(vr.MajorDimension, DimensionRows),
		Values:         values,
	}
}

// NewUpdateResult normalizes an update response
func NewUpdateResult(resp *sheets.UpdateValuesResponse) WriteResult {
	return WriteResult{
		SpreadsheetID:  resp.SpreadsheetId,
		UpdatedRange:   resp.UpdatedRange,
		UpdatedRows:    resp.UpdatedRows,
		UpdatedColumns: resp.UpdatedColumns,
		UpdatedCells:   resp.UpdatedCells,
	}
}

// NewAppendResult normalizes an append response
func NewAppendResult(resp *sheets.AppendValuesResponse) WriteResult {
	result := WriteResult{SpreadsheetID: resp.SpreadsheetId}
	if u := resp.Updates; u != nil {
		result.UpdatedRange = u.UpdatedRange
		result.UpdatedRows = u.UpdatedRows
		result.UpdatedColumns = u.UpdatedColumns
		result.UpdatedCells = u.UpdatedCells
	}
	return result
}

// NewClearResult normalizes a clear response
func NewClearResult(resp *sheets.ClearValuesResponse) WriteResult {
	return WriteResult{
		SpreadsheetID: resp.SpreadsheetId,
		ClearedRange:  resp.ClearedRange,
	}
}
