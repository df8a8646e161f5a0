package drive_tools

import (
	"fmt"
	"strings"

	"github.com/teemow/gworkspace-mcp/internal/drive"
	"github.com/teemow/gworkspace-mcp/internal/render"
)

func formatFileList(page render.Page[drive.FileInfo]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Files (%d)\n\n", page.Count)
	if page.Count == 0 {
		b.WriteString("*No files found.*\n")
	}
	for _, f := range page.Items {
		writeFileBlock(&b, f, "##")
		b.WriteString("\n")
	}
	render.Pagination(&b, page.NextPageToken)
	return b.String()
}

func formatFile(f drive.FileInfo) string {
	var b strings.Builder
	writeFileBlock(&b, f, "#")
	return b.String()
}

func writeFileBlock(b *strings.Builder, f drive.FileInfo, heading string) {
	fmt.Fprintf(b, "%s %s\n\n", heading, render.OrDefault(f.Name, render.Untitled))
	render.Field(b, "ID", f.ID)
	kind := f.MimeType
	if f.IsFolder {
		kind = "folder"
	}
	render.Field(b, "Type", kind)
	if f.Size > 0 {
		render.Field(b, "Size", fmt.Sprintf("%d bytes", f.Size))
	}
	render.Field(b, "Created", f.CreatedTime)
	render.Field(b, "Modified", f.ModifiedTime)
	if len(f.Owners) > 0 {
		owners := make([]string, 0, len(f.Owners))
		for _, o := range f.Owners {
			owners = append(owners, render.OrDefault(o.DisplayName, o.EmailAddress))
		}
		render.Field(b, "Owners", strings.Join(owners, ", "))
	}
	render.Field(b, "Shared", render.YesNo(f.Shared))
	if f.Trashed {
		render.Field(b, "Trashed", render.YesNo(f.Trashed))
	}
	render.Field(b, "Link", f.WebViewLink)
}

func formatCommentList(fileID string, page render.Page[drive.Comment]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Comments on %s (%d)\n\n", fileID, page.Count)
	if page.Count == 0 {
		b.WriteString("*No comments.*\n")
	}
	for _, c := range page.Items {
		writeCommentBlock(&b, c, "##")
		b.WriteString("\n")
	}
	render.Pagination(&b, page.NextPageToken)
	return b.String()
}

func formatComment(c drive.Comment) string {
	var b strings.Builder
	writeCommentBlock(&b, c, "#")
	return b.String()
}

func writeCommentBlock(b *strings.Builder, c drive.Comment, heading string) {
	fmt.Fprintf(b, "%s Comment %s\n\n", heading, c.ID)
	render.Field(b, "Author", c.Author)
	render.Field(b, "Created", c.CreatedTime)
	render.Field(b, "Resolved", render.YesNo(c.Resolved))
	if c.Deleted {
		render.Field(b, "Deleted", render.YesNo(c.Deleted))
	}
	render.Field(b, "Quoted Text", c.QuotedText)
	render.Field(b, "Content", c.Content)

	if len(c.Replies) > 0 {
		b.WriteString("\n**Replies**:\n")
		for _, r := range c.Replies {
			writeReplyLine(b, r)
		}
	}
}

func formatReplyList(commentID string, page render.Page[drive.Reply]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Replies to comment %s (%d)\n\n", commentID, page.Count)
	if page.Count == 0 {
		b.WriteString("*No replies.*\n")
	}
	for _, r := range page.Items {
		writeReplyLine(&b, r)
	}
	render.Pagination(&b, page.NextPageToken)
	return b.String()
}

func formatReply(r drive.Reply) string {
	var b strings.Builder
	render.Field(&b, "Reply ID", r.ID)
	render.Field(&b, "Author", r.Author)
	render.Field(&b, "Created", r.CreatedTime)
	render.Field(&b, "Action", r.Action)
	render.Field(&b, "Content", r.Content)
	return b.String()
}

// writeReplyLine renders one reply as a list item: author, timestamp, then
// the text, with a marker when the reply resolved or reopened the comment.
func writeReplyLine(b *strings.Builder, r drive.Reply) {
	fmt.Fprintf(b, "- **%s** (%s)", r.Author, r.CreatedTime)
	if r.Action != "" {
		fmt.Fprintf(b, " [%s]", r.Action)
	}
	if r.Content != "" {
		fmt.Fprintf(b, ": %s", r.Content)
	}
	b.WriteString("\n")
}
