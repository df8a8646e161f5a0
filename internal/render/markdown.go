package render

import (
	"fmt"
	"strings"
)

// Fallbacks for missing remote fields.
const (
	Untitled = "Untitled"
	Unknown  = "Unknown"
)

// OrDefault returns s, or fallback when s is empty.
func OrDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Field writes a bold-labelled line. Empty values are skipped.
func Field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "**%s**: %s\n", label, value)
}

// YesNo renders a flag the way markdown templates show it.
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// Pagination writes the trailer shared by list renderings.
func Pagination(b *strings.Builder, nextPageToken *string) {
	if nextPageToken == nil {
		return
	}
	fmt.Fprintf(b, "\n*More results available. Use page_token: `%s`*\n", *nextPageToken)
}
