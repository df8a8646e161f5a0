package gmail_tools

import (
	"fmt"
	"strings"

	"github.com/teemow/gworkspace-mcp/internal/gmail"
	"github.com/teemow/gworkspace-mcp/internal/render"
)

func formatMessageList(page render.Page[gmail.MessageSummary]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Messages (%d)\n\n", page.Count)
	if page.Count == 0 {
		b.WriteString("*No messages found.*\n")
	}
	for _, m := range page.Items {
		fmt.Fprintf(&b, "## %s\n\n", m.Subject)
		render.Field(&b, "ID", m.ID)
		render.Field(&b, "Thread ID", m.ThreadID)
		render.Field(&b, "From", m.From)
		render.Field(&b, "Date", m.Date)
		render.Field(&b, "Labels", strings.Join(m.LabelIDs, ", "))
		render.Field(&b, "Snippet", m.Snippet)
		b.WriteString("\n")
	}
	render.Pagination(&b, page.NextPageToken)
	return b.String()
}

func formatMessage(m gmail.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Subject)
	writeMessageBlock(&b, m)
	return b.String()
}

func writeMessageBlock(b *strings.Builder, m gmail.Message) {
	render.Field(b, "ID", m.ID)
	render.Field(b, "Thread ID", m.ThreadID)
	render.Field(b, "From", m.From)
	render.Field(b, "To", m.To)
	render.Field(b, "Cc", m.Cc)
	render.Field(b, "Date", m.Date)
	render.Field(b, "Labels", strings.Join(m.LabelIDs, ", "))

	if len(m.Attachments) > 0 {
		b.WriteString("\n**Attachments**:\n")
		for _, a := range m.Attachments {
			fmt.Fprintf(b, "- %s (%s, %d bytes)\n", a.Filename, a.MimeType, a.Size)
		}
	}

	b.WriteString("\n---\n\n")
	if m.Body == "" {
		b.WriteString("*No text body.*\n")
		return
	}
	b.WriteString(m.Body)
	if !strings.HasSuffix(m.Body, "\n") {
		b.WriteString("\n")
	}
}

func formatThreadList(page render.Page[gmail.ThreadSummary]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Threads (%d)\n\n", page.Count)
	if page.Count == 0 {
		b.WriteString("*No threads found.*\n")
	}
	for _, t := range page.Items {
		fmt.Fprintf(&b, "## %s\n\n", t.Subject)
		render.Field(&b, "ID", t.ID)
		render.Field(&b, "From", t.From)
		render.Field(&b, "Date", t.Date)
		render.Field(&b, "Messages", fmt.Sprint(t.MessageCount))
		render.Field(&b, "Snippet", t.Snippet)
		b.WriteString("\n")
	}
	render.Pagination(&b, page.NextPageToken)
	return b.String()
}

func formatThread(t gmail.Thread) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Subject)
	render.Field(&b, "Thread ID", t.ID)
	render.Field(&b, "Messages", fmt.Sprint(len(t.Messages)))
	for i, m := range t.Messages {
		fmt.Fprintf(&b, "\n## Message %d: %s\n\n", i+1, m.Subject)
		writeMessageBlock(&b, m)
	}
	return b.String()
}

func formatLabelList(page render.Page[gmail.Label]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Labels (%d)\n\n", page.Count)
	for _, l := range page.Items {
		fmt.Fprintf(&b, "- **%s** (`%s`, %s)\n", l.Name, l.ID, l.Type)
	}
	return b.String()
}

func formatLabel(l gmail.Label) string {
	var b strings.Builder
	render.Field(&b, "Name", l.Name)
	render.Field(&b, "ID", l.ID)
	render.Field(&b, "Type", l.Type)
	render.Field(&b, "Label List Visibility", l.LabelListVisibility)
	render.Field(&b, "Message List Visibility", l.MessageListVisibility)
	return b.String()
}

func formatModifyResult(r gmail.ModifyResult) string {
	var b strings.Builder
	b.WriteString("Labels updated\n\n")
	render.Field(&b, "Message ID", r.MessageID)
	render.Field(&b, "Thread ID", r.ThreadID)
	render.Field(&b, "Labels", render.OrDefault(strings.Join(r.LabelIDs, ", "), "(none)"))
	return b.String()
}
