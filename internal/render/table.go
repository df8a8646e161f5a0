package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Table renders a value grid as a markdown table. The first row defines the
// column count; headers are always Col 1, Col 2, ... and every row,
// including the first, is rendered as data. Short rows are padded with empty
// cells and cells beyond the column count are dropped.
func Table(values [][]any) string {
	if len(values) == 0 || len(values[0]) == 0 {
		return ""
	}
	cols := len(values[0])

	var b strings.Builder
	b.WriteString("|")
	for i := 1; i <= cols; i++ {
		fmt.Fprintf(&b, " Col %d |", i)
	}
	b.WriteString("\n|")
	for i := 0; i < cols; i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range values {
		b.WriteString("|")
		for i := 0; i < cols; i++ {
			var cell any
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(" ")
			b.WriteString(tableCell(cell))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

var tableCellReplacer = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>", "\r", "<br>")

// tableCell renders v for use inside a table row. Pipes are escaped and line
// breaks become <br> so a cell never adds columns or rows.
func tableCell(v any) string {
	return tableCellReplacer.Replace(Cell(v))
}

// Cell stringifies a single grid value. nil renders as the empty string.
func Cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
