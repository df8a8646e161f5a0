// Package render turns normalized tool results into the two presentations a
// tool can return: a JSON serialization of the structured object, or a
// markdown rendering capped at CharacterLimit characters.
package render

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
)

// CharacterLimit is the maximum number of characters of a markdown rendering.
const CharacterLimit = 25000

// Truncation markers appended to a markdown rendering that was cut.
const (
	DataTruncatedMarker    = "\n\n[Data truncated...]"
	ContentTruncatedMarker = "\n\n[Content truncated...]"
)

// Format selects the text presentation of a result.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists the accepted values of the response_format argument.
var Formats = []string{string(FormatMarkdown), string(FormatJSON)}

// ParseFormat parses a response_format value. The empty string selects markdown.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported response format %q (supported: markdown, json)", s)
	}
}

// Truncate cuts s to CharacterLimit characters and appends marker. Cuts fall
// on rune boundaries. The second return value reports whether s was cut.
func Truncate(s, marker string) (string, bool) {
	if utf8.RuneCountInString(s) <= CharacterLimit {
		return s, false
	}
	n := 0
	for i := range s {
		if n == CharacterLimit {
			return s[:i] + marker, true
		}
		n++
	}
	return s, false
}

// JSON serializes v the way structured results are presented as text.
func JSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(b), nil
}

// Text produces the single output string for the requested format. The
// markdown function is only called for markdown requests.
func Text(format Format, structured any, markdown func() string, marker string) (string, error) {
	if format == FormatJSON {
		return JSON(structured)
	}
	text, _ := Truncate(markdown(), marker)
	return text, nil
}

// Result builds a successful tool result carrying both the text rendering
// and the structured object.
func Result(format Format, structured any, markdown func() string, marker string) (*mcp.CallToolResult, error) {
	text, err := Text(format, structured, markdown, marker)
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{mcp.NewTextContent(text)},
		StructuredContent: structured,
	}, nil
}
