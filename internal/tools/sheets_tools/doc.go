// Package sheets_tools provides MCP tools for Google Sheets.
//
// Spreadsheet metadata, value ranges and structural batch updates are
// exposed. Value grids are rendered as markdown tables with synthesized
// Col N headers since the first row is not assumed to be a header row.
package sheets_tools
