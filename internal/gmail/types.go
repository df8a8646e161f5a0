package gmail

import (
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/gworkspace-mcp/internal/render"
)

const (
	// NoSubject replaces an empty or missing Subject header
	NoSubject = "(no subject)"

	// LabelTypeSystem marks labels Gmail owns (INBOX, SENT, ...)
	LabelTypeSystem = "system"
	// LabelTypeUser marks labels created by the user
	LabelTypeUser = "user"
)

// summaryHeaders are requested for metadata fetches
var summaryHeaders = []string{"Subject", "From", "To", "Date"}

// ListOptions contains options for listing messages and threads
type ListOptions struct {
	// Query uses the Gmail search syntax (e.g. "from:alice is:unread")
	Query string

	// LabelIDs restricts results to items carrying all of these labels
	LabelIDs []string

	MaxResults       int64
	PageToken        string
	IncludeSpamTrash bool
}

// MessageSummary is the metadata view of a message used in listings
type MessageSummary struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"thread_id"`
	Subject  string   `json:"subject"`
	From     string   `json:"from"`
	To       string   `json:"to,omitempty"`
	Date     string   `json:"date"`
	Snippet  string   `json:"snippet"`
	LabelIDs []string `json:"label_ids"`
}

// Message is a fully fetched message with its extracted body
type Message struct {
	MessageSummary
	Cc          string       `json:"cc,omitempty"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment describes a file attached to a message. The content itself is
// not fetched.
type Attachment struct {
	AttachmentID string `json:"attachment_id"`
	Filename     string `json:"filename"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

// ThreadSummary is the metadata view of a thread used in listings
type ThreadSummary struct {
	ID           string `json:"id"`
	Subject      string `json:"subject"`
	From         string `json:"from"`
	Date         string `json:"date"`
	Snippet      string `json:"snippet"`
	MessageCount int    `json:"message_count"`
}

// Thread is a fully fetched thread; messages are in conversation order
type Thread struct {
	ID       string    `json:"id"`
	Subject  string    `json:"subject"`
	Messages []Message `json:"messages"`
}

// Label is a Gmail label. Counts are only populated by single-label fetches
// and creation.
type Label struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Type                  string `json:"type"`
	MessagesTotal         int64  `json:"messages_total,omitempty"`
	MessagesUnread        int64  `json:"messages_unread,omitempty"`
	LabelListVisibility   string `json:"label_list_visibility,omitempty"`
	MessageListVisibility string `json:"message_list_visibility,omitempty"`
}

// IsSystem reports whether the label is owned by Gmail
func (l Label) IsSystem() bool {
	return l.Type == LabelTypeSystem
}

// ModifyResult reports the labels of a message after a modification
type ModifyResult struct {
	MessageID string   `json:"message_id"`
	ThreadID  string   `json:"thread_id"`
	LabelIDs  []string `json:"label_ids"`
}

// HeaderValue returns the first header of the part with the given name,
// compared case-insensitively
func HeaderValue(part *gmail.MessagePart, name string) string {
	if part == nil {
		return ""
	}
	for _, h := range part.Headers {
		if h != nil && strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

func newMessageSummary(m *gmail.Message) MessageSummary {
	labels := m.LabelIds
	if labels == nil {
		labels = []string{}
	}
	return MessageSummary{
		ID:       m.Id,
		ThreadID: m.ThreadId,
		Subject:  render.OrDefault(HeaderValue(m.Payload, "Subject"), NoSubject),
		From:     render.OrDefault(HeaderValue(m.Payload, "From"), render.Unknown),
		To:       HeaderValue(m.Payload, "To"),
		Date:     render.OrDefault(HeaderValue(m.Payload, "Date"), render.Unknown),
		Snippet:  m.Snippet,
		LabelIDs: labels,
	}
}

func newMessage(m *gmail.Message) (Message, error) {
	body, err := ExtractBody(m.Payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to extract body of message %s: %w", m.Id, err)
	}
	return Message{
		MessageSummary: newMessageSummary(m),
		Cc:             HeaderValue(m.Payload, "Cc"),
		Body:           body,
		Attachments:    extractAttachments(m.Payload),
	}, nil
}

func newThreadSummary(t *gmail.Thread) ThreadSummary {
	summary := ThreadSummary{
		ID:           t.Id,
		Subject:      NoSubject,
		From:         render.Unknown,
		Date:         render.Unknown,
		Snippet:      t.Snippet,
		MessageCount: len(t.Messages),
	}
	if len(t.Messages) == 0 {
		return summary
	}

	first := newMessageSummary(t.Messages[0])
	last := newMessageSummary(t.Messages[len(t.Messages)-1])
	summary.Subject = first.Subject
	summary.From = first.From
	summary.Date = last.Date
	if summary.Snippet == "" {
		summary.Snippet = last.Snippet
	}
	return summary
}

func newLabel(l *gmail.Label) Label {
	return Label{
		ID:                    l.Id,
		Name:                  render.OrDefault(l.Name, render.Untitled),
		Type:                  render.OrDefault(l.Type, LabelTypeUser),
		MessagesTotal:         l.MessagesTotal,
		MessagesUnread:        l.MessagesUnread,
		LabelListVisibility:   l.LabelListVisibility,
		MessageListVisibility: l.MessageListVisibility,
	}
}
