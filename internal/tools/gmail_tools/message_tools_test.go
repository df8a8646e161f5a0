package gmail_tools

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gworkspace-mcp/internal/tools/toolstest"
)

const messagesPath = "/gmail/v1/users/me/messages"

func metadataMessage(id, subject string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"threadId": "t-%s",
		"snippet": "snippet of %s",
		"labelIds": ["INBOX"],
		"payload": {"headers": [
			{"name": "Subject", "value": %q},
			{"name": "From", "value": "Ada <ada@example.com>"},
			{"name": "Date", "value": "Mon, 4 Mar 2024 10:00:00 +0000"}
		]}
	}`, id, id, id, subject)
}

func TestRegisterGmailTools(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.NotFoundHandler())

	s := toolstest.NewMCPServer(t, sc, false, RegisterGmailTools)
	assert.ElementsMatch(t, []string{
		"gmail_list_messages",
		"gmail_get_message",
		"gmail_list_threads",
		"gmail_get_thread",
		"gmail_modify_message_labels",
		"gmail_list_labels",
		"gmail_create_label",
		"gmail_delete_label",
	}, toolstest.ToolNames(s))

	readOnly := toolstest.NewMCPServer(t, sc, true, RegisterGmailTools)
	assert.ElementsMatch(t, []string{
		"gmail_list_messages",
		"gmail_get_message",
		"gmail_list_threads",
		"gmail_get_thread",
		"gmail_list_labels",
	}, toolstest.ToolNames(readOnly))
}

func TestListMessages_PreservesListOrder(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case messagesPath:
			q := r.URL.Query()
			assert.Equal(t, "is:unread", q.Get("q"))
			assert.Equal(t, []string{"INBOX", "IMPORTANT"}, q["labelIds"])
			assert.Equal(t, "3", q.Get("maxResults"))
			_, _ = w.Write([]byte(`{"messages": [{"id": "m1"}, {"id": "m2"}, {"id": "m3"}], "nextPageToken": "next"}`))
		case messagesPath + "/m1":
			// The first detail arrives last.
			time.Sleep(50 * time.Millisecond)
			assert.Equal(t, "metadata", r.URL.Query().Get("format"))
			_, _ = w.Write([]byte(metadataMessage("m1", "First")))
		case messagesPath + "/m2":
			_, _ = w.Write([]byte(metadataMessage("m2", "")))
		case messagesPath + "/m3":
			_, _ = w.Write([]byte(metadataMessage("m3", "Third")))
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterGmailTools)

	result := toolstest.Call(t, s, "gmail_list_messages", map[string]any{
		"query":       "is:unread",
		"label_ids":   []any{"INBOX", "IMPORTANT"},
		"max_results": 3,
	})
	require.False(t, result.IsError, toolstest.Text(t, result))

	text := toolstest.Text(t, result)
	assert.Contains(t, text, "# Messages (3)")
	first := strings.Index(text, "## First")
	second := strings.Index(text, "## (no subject)")
	third := strings.Index(text, "## Third")
	require.True(t, first >= 0 && second >= 0 && third >= 0, text)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Contains(t, text, "**From**: Ada <ada@example.com>")
	assert.Contains(t, text, "Use page_token: `next`")
}

func TestListMessages_DetailFailureFailsListing(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case messagesPath:
			_, _ = w.Write([]byte(`{"messages": [{"id": "m1"}, {"id": "gone"}]}`))
		case messagesPath + "/m1":
			_, _ = w.Write([]byte(metadataMessage("m1", "First")))
		default:
			toolstest.WriteError(w, http.StatusNotFound, "Requested entity was not found.")
		}
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterGmailTools)

	result := toolstest.Call(t, s, "gmail_list_messages", map[string]any{})
	assert.True(t, result.IsError)
	assert.Nil(t, result.StructuredContent)
	assert.Equal(t, "Error: Resource not found. Check that the ID is correct.", toolstest.Text(t, result))
}

func TestListMessages_MaxResultsOutOfRange(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.NotFoundHandler())
	s := toolstest.NewMCPServer(t, sc, false, RegisterGmailTools)

	for _, value := range []any{500, 0, 2.5} {
		result := toolstest.Call(t, s, "gmail_list_messages", map[string]any{"max_results": value})
		assert.True(t, result.IsError, "max_results=%v", value)
		assert.Contains(t, toolstest.Text(t, result), "/max_results")
	}
}

func TestGetMessage(t *testing.T) {
	encode := base64.URLEncoding.EncodeToString
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, messagesPath+"/m1", r.URL.Path)
		assert.Equal(t, "full", r.URL.Query().Get("format"))
		_, _ = fmt.Fprintf(w, `{
			"id": "m1",
			"threadId": "t1",
			"payload": {
				"mimeType": "multipart/mixed",
				"headers": [{"name": "Subject", "value": "Invoice"}, {"name": "Cc", "value": "grace@example.com"}],
				"parts": [
					{"mimeType": "text/html", "body": {"data": %q}},
					{"mimeType": "text/plain", "body": {"data": %q}},
					{"mimeType": "application/pdf", "filename": "invoice.pdf", "body": {"attachmentId": "a1", "size": 1234}}
				]
			}
		}`, encode([]byte("<p>html version</p>")), encode([]byte("Please find attached.")))
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterGmailTools)

	result := toolstest.Call(t, s, "gmail_get_message", map[string]any{"message_id": "m1"})
	require.False(t, result.IsError, toolstest.Text(t, result))

	text := toolstest.Text(t, result)
	assert.Contains(t, text, "# Invoice")
	assert.Contains(t, text, "**From**: Unknown")
	assert.Contains(t, text, "**Date**: Unknown")
	assert.Contains(t, text, "**Cc**: grace@example.com")
	assert.Contains(t, text, "- invoice.pdf (application/pdf, 1234 bytes)")
	assert.Contains(t, text, "Please find attached.")
	assert.NotContains(t, text, "html version")
}

func TestGetThread(t *testing.T) {
	encode := base64.RawURLEncoding.EncodeToString
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gmail/v1/users/me/threads/t1", r.URL.Path)
		_, _ = fmt.Fprintf(w, `{
			"id": "t1",
			"messages": [
				{"id": "m1", "payload": {"mimeType": "text/plain", "headers": [{"name": "Subject", "value": "Lunch?"}], "body": {"data": %q}}},
				{"id": "m2", "payload": {"mimeType": "text/html", "headers": [{"name": "Subject", "value": "Re: Lunch?"}], "body": {"data": %q}}}
			]
		}`, encode([]byte("Noon works?")), encode([]byte("<div>Sure, <b>noon</b></div>")))
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterGmailTools)

	result := toolstest.Call(t, s, "gmail_get_thread", map[string]any{"thread_id": "t1"})
	require.False(t, result.IsError, toolstest.Text(t, result))

	text := toolstest.Text(t, result)
	assert.Contains(t, text, "# Lunch?")
	assert.Contains(t, text, "**Messages**: 2")
	assert.Contains(t, text, "## Message 1: Lunch?")
	assert.Contains(t, text, "## Message 2: Re: Lunch?")
	assert.Contains(t, text, "Noon works?")
	assert.Contains(t, text, "Sure, noon")
	assert.Less(t, strings.Index(text, "Noon works?"), strings.Index(text, "Sure, noon"))
}

func TestListThreads(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gmail/v1/users/me/threads":
			assert.Equal(t, "true", r.URL.Query().Get("includeSpamTrash"))
			_, _ = w.Write([]byte(`{"threads": [{"id": "t1"}]}`))
		case "/gmail/v1/users/me/threads/t1":
			_, _ = w.Write([]byte(`{"id": "t1", "messages": [` + metadataMessage("m1", "Plan") + `,` + metadataMessage("m2", "Re: Plan") + `]}`))
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterGmailTools)

	result := toolstest.Call(t, s, "gmail_list_threads", map[string]any{
		"include_spam_trash": true,
		"response_format":    "json",
	})
	require.False(t, result.IsError, toolstest.Text(t, result))
	assert.JSONEq(t, `{
		"items": [{
			"id": "t1",
			"subject": "Plan",
			"from": "Ada <ada@example.com>",
			"date": "Mon, 4 Mar 2024 10:00:00 +0000",
			"snippet": "snippet of m2",
			"message_count": 2
		}],
		"count": 1,
		"next_page_token": null
	}`, toolstest.Text(t, result))
}

func TestModifyMessageLabels(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, messagesPath+"/m1/modify", r.URL.Path)
		var body map[string]any
		toolstest.DecodeBody(t, r, &body)
		assert.Equal(t, []any{"INBOX"}, body["removeLabelIds"])
		_, _ = w.Write([]byte(`{"id": "m1", "threadId": "t1", "labelIds": ["IMPORTANT"]}`))
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterGmailTools)

	t.Run("archives", func(t *testing.T) {
		result := toolstest.Call(t, s, "gmail_modify_message_labels", map[string]any{
			"message_id":       "m1",
			"remove_label_ids": []any{"INBOX"},
		})
		require.False(t, result.IsError, toolstest.Text(t, result))
		assert.Contains(t, toolstest.Text(t, result), "**Labels**: IMPORTANT")
	})

	t.Run("requires a change", func(t *testing.T) {
		result := toolstest.Call(t, s, "gmail_modify_message_labels", map[string]any{"message_id": "m1"})
		assert.True(t, result.IsError)
		assert.Contains(t, toolstest.Text(t, result), "at least one of add_label_ids or remove_label_ids is required")
	})
}
