package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// Category is the closed set of failure kinds surfaced to callers.
type Category string

const (
	CategoryAuthentication Category = "authentication"
	CategoryPermission     Category = "permission_denied"
	CategoryNotFound       Category = "not_found"
	CategoryRateLimited    Category = "rate_limited"
	CategoryInvalidRequest Category = "invalid_request"
	CategoryGeneric        Category = "generic"
)

// Fixed messages for the categories that do not echo the original text.
const (
	MessageAuthentication = "Error: Authentication failed. The refresh token may be expired or revoked. Re-authorize the application and update GOOGLE_REFRESH_TOKEN."
	MessagePermission     = "Error: Permission denied. Make sure the authorized account has access to this resource."
	MessageNotFound       = "Error: Resource not found. Check that the ID is correct."
	MessageRateLimited    = "Error: Rate limit exceeded. Please wait before making more requests."
)

const invalidGrant = "invalid_grant"

// substringRules is evaluated top to bottom; the first match wins.
var substringRules = []struct {
	needles  []string
	category Category
}{
	{[]string{"401", invalidGrant}, CategoryAuthentication},
	{[]string{"403"}, CategoryPermission},
	{[]string{"404"}, CategoryNotFound},
	{[]string{"429"}, CategoryRateLimited},
	{[]string{"400"}, CategoryInvalidRequest},
}

// Classify returns the human-readable message for a failure.
func Classify(failure any) string {
	category, text := categorize(failure)
	return Message(category, text)
}

// Categorize returns only the category of a failure.
func Categorize(failure any) Category {
	category, _ := categorize(failure)
	return category
}

// Message renders the message for a category. text is the original failure
// text and is only used by the categories that include it.
func Message(category Category, text string) string {
	switch category {
	case CategoryAuthentication:
		return MessageAuthentication
	case CategoryPermission:
		return MessagePermission
	case CategoryNotFound:
		return MessageNotFound
	case CategoryRateLimited:
		return MessageRateLimited
	case CategoryInvalidRequest:
		return "Error: Invalid request - " + text
	default:
		return "Error: " + text
	}
}

func categorize(failure any) (category Category, text string) {
	defer func() {
		if r := recover(); r != nil {
			category, text = CategoryGeneric, fmt.Sprintf("%v", failure)
		}
	}()

	err, ok := failure.(error)
	if !ok || err == nil {
		return CategoryGeneric, stringify(failure)
	}

	text = err.Error()
	if c, ok := structuredCategory(err); ok {
		return c, text
	}
	return substringCategory(text), text
}

// structuredCategory maps status codes carried by typed errors. Codes outside
// the documented set fall through to substring matching.
func structuredCategory(err error) (Category, bool) {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		if rerr.ErrorCode == invalidGrant {
			return CategoryAuthentication, true
		}
		if rerr.Response != nil && rerr.Response.StatusCode == http.StatusUnauthorized {
			return CategoryAuthentication, true
		}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return CategoryAuthentication, true
		case http.StatusForbidden:
			return CategoryPermission, true
		case http.StatusNotFound:
			return CategoryNotFound, true
		case http.StatusTooManyRequests:
			return CategoryRateLimited, true
		case http.StatusBadRequest:
			return CategoryInvalidRequest, true
		}
	}
	return "", false
}

func substringCategory(text string) Category {
	for _, rule := range substringRules {
		for _, needle := range rule.needles {
			if strings.Contains(text, needle) {
				return rule.category
			}
		}
	}
	return CategoryGeneric
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return "unknown error"
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
