package gmail

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

const (
	mimeTextPlain = "text/plain"
	mimeTextHTML  = "text/html"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	base64URLReplacer = strings.NewReplacer("-", "+", "_", "/")
)

// DecodeBase64URL decodes the URL-safe base64 payloads Gmail uses for part
// bodies. Padding is optional.
func DecodeBase64URL(data string) (string, error) {
	std := strings.TrimRight(base64URLReplacer.Replace(data), "=")
	decoded, err := base64.RawStdEncoding.DecodeString(std)
	if err != nil {
		return "", fmt.Errorf("failed to decode message body: %w", err)
	}
	return string(decoded), nil
}

// StripHTML removes every tag, collapses runs of whitespace to a single
// space and trims the result.
func StripHTML(html string) string {
	text := htmlTagPattern.ReplaceAllString(html, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ExtractBody returns the readable text of a message part tree.
//
// A part carrying inline data is decoded directly (HTML is stripped). For a
// multipart node the first text/plain child wins, then the first text/html
// child, then the first child subtree that yields non-empty text.
func ExtractBody(part *gmail.MessagePart) (string, error) {
	if part == nil {
		return "", nil
	}

	if len(part.Parts) == 0 {
		if !hasData(part) {
			return "", nil
		}
		text, err := DecodeBase64URL(part.Body.Data)
		if err != nil {
			return "", err
		}
		// Single-part HTML messages are stripped too, so every tier
		// yields plain text.
		if isMimeType(part, mimeTextHTML) {
			return StripHTML(text), nil
		}
		return text, nil
	}

	for _, child := range part.Parts {
		if isMimeType(child, mimeTextPlain) && hasData(child) {
			return DecodeBase64URL(child.Body.Data)
		}
	}

	for _, child := range part.Parts {
		if isMimeType(child, mimeTextHTML) && hasData(child) {
			html, err := DecodeBase64URL(child.Body.Data)
			if err != nil {
				return "", err
			}
			return StripHTML(html), nil
		}
	}

	for _, child := range part.Parts {
		text, err := ExtractBody(child)
		if err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
	}
	return "", nil
}

// walkParts visits part and all of its descendants depth-first
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}
	fn(part)
	for _, child := range part.Parts {
		walkParts(child, fn)
	}
}

// extractAttachments lists the parts that carry a filename and an
// attachment reference
func extractAttachments(payload *gmail.MessagePart) []Attachment {
	attachments := make([]Attachment, 0)
	walkParts(payload, func(part *gmail.MessagePart) {
		if part.Filename == "" || part.Body == nil || part.Body.AttachmentId == "" {
			return
		}
		attachments = append(attachments, Attachment{
			AttachmentID: part.Body.AttachmentId,
			Filename:     part.Filename,
			MimeType:     part.MimeType,
			Size:         part.Body.Size,
		})
	})
	return attachments
}

func hasData(part *gmail.MessagePart) bool {
	return part != nil && part.Body != nil && part.Body.Data != ""
}

func isMimeType(part *gmail.MessagePart, mimeType string) bool {
	return part != nil && strings.EqualFold(part.MimeType, mimeType)
}
