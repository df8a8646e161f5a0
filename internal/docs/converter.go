package docs

import (
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// TablePlaceholder stands in for a table block in extracted text. Cell
// contents are not extracted.
const TablePlaceholder = "[TABLE]"

// ExtractText flattens a document into plain text: the text runs of every
// paragraph in document order, with each table replaced by TablePlaceholder.
// A document without a body yields the empty string.
func ExtractText(doc *docs.Document) string {
	body := documentBody(doc)
	if body == nil {
		return ""
	}

	var sb strings.Builder
	for _, element := range body.Content {
		switch {
		case element == nil:
		case element.Paragraph != nil:
			for _, pe := range element.Paragraph.Elements {
				if pe != nil && pe.TextRun != nil {
					sb.WriteString(pe.TextRun.Content)
				}
			}
		case element.Table != nil:
			sb.WriteString(TablePlaceholder)
		}
	}
	return sb.String()
}

// documentBody returns the legacy body, or the first tab's body for documents
// fetched with tab content.
func documentBody(doc *docs.Document) *docs.Body {
	if doc == nil {
		return nil
	}
	if doc.Body != nil {
		return doc.Body
	}
	for _, tab := range doc.Tabs {
		if tab != nil && tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
			return tab.DocumentTab.Body
		}
	}
	return nil
}
