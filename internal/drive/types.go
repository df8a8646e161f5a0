package drive

import "strings"

// FileInfo represents metadata about a file or folder in Google Drive
type FileInfo struct {
	// ID is the unique identifier for the file
	ID string `json:"id"`

	// Name is the name of the file
	Name string `json:"name"`

	// MimeType is the MIME type of the file
	MimeType string `json:"mime_type"`

	// Size is the size of the file in bytes (not populated for folders or Google formats)
	Size int64 `json:"size,omitempty"`

	// CreatedTime and ModifiedTime are RFC 3339 timestamps, or Unknown
	CreatedTime  string `json:"created_time"`
	ModifiedTime string `json:"modified_time"`

	// WebViewLink opens the file in the relevant Google editor or viewer
	WebViewLink string `json:"web_view_link,omitempty"`

	Parents  []string `json:"parents,omitempty"`
	Owners   []User   `json:"owners,omitempty"`
	Shared   bool     `json:"shared"`
	Trashed  bool     `json:"trashed"`
	IsFolder bool     `json:"is_folder"`
}

// User represents a Google Drive user (owner, comment author, etc.)
type User struct {
	DisplayName  string `json:"display_name"`
	EmailAddress string `json:"email_address,omitempty"`
}

// ListOptions contains options for listing files
type ListOptions struct {
	// Query is a Drive search query (e.g. "name contains 'report'")
	Query string

	// PageSize is the maximum number of files to return
	PageSize int64

	// PageToken continues a previous listing
	PageToken string

	// OrderBy specifies the sort order (e.g. "modifiedTime desc")
	OrderBy string

	// IncludeTrashed includes files in the trash
	IncludeTrashed bool
}

func (o ListOptions) query() string {
	var parts []string
	if o.Query != "" {
		parts = append(parts, "("+o.Query+")")
	}
	if !o.IncludeTrashed {
		parts = append(parts, "trashed = false")
	}
	return strings.Join(parts, " and ")
}

// Comment is a comment thread anchored on a file
type Comment struct {
	ID           string  `json:"id"`
	Content      string  `json:"content"`
	Author       string  `json:"author"`
	AuthorEmail  string  `json:"author_email,omitempty"`
	CreatedTime  string  `json:"created_time"`
	ModifiedTime string  `json:"modified_time,omitempty"`
	Resolved     bool    `json:"resolved"`
	Deleted      bool    `json:"deleted,omitempty"`
	QuotedText   string  `json:"quoted_text,omitempty"`
	Replies      []Reply `json:"replies"`
}

// Reply is a reply to a comment. Action is "resolve" or "reopen" when the
// reply changed the comment state.
type Reply struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	CreatedTime string `json:"created_time"`
	Action      string `json:"action,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
}

// DeleteResult confirms a deletion
type DeleteResult struct {
	FileID    string `json:"file_id"`
	CommentID string `json:"comment_id,omitempty"`
	Deleted   bool   `json:"deleted"`
}
