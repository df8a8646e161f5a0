package docs_tools

import (
	"fmt"
	"strings"

	docsclient "github.com/teemow/gworkspace-mcp/internal/docs"
	"github.com/teemow/gworkspace-mcp/internal/render"
)

func formatDocument(d docsclient.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	render.Field(&b, "Document ID", d.DocumentID)
	render.Field(&b, "Revision", d.RevisionID)
	render.Field(&b, "URL", d.URL)
	b.WriteString("\n---\n\n")
	if d.Content == "" {
		b.WriteString("*The document is empty.*\n")
	} else {
		b.WriteString(d.Content)
	}
	return b.String()
}

func formatUpdate(headline string, r docsclient.UpdateResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headline)
	render.Field(&b, "Title", r.Title)
	render.Field(&b, "Document ID", r.DocumentID)
	render.Field(&b, "Revision", r.RevisionID)
	render.Field(&b, "URL", r.URL)
	return b.String()
}
