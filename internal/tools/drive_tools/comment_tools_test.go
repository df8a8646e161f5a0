package drive_tools

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gworkspace-mcp/internal/tools/toolstest"
)

const commentWithReplies = `{
	"id": "c1",
	"content": "Please check the numbers",
	"author": {"displayName": "Ada"},
	"createdTime": "2024-03-01T10:00:00Z",
	"quotedFileContent": {"value": "Revenue: 42"},
	"replies": [
		{"id": "r1", "content": "Looks right to me", "author": {"displayName": "Grace"}, "createdTime": "2024-03-01T11:00:00Z"},
		{"id": "r2", "content": "Fixed", "createdTime": "2024-03-02T09:30:00Z", "action": "resolve"}
	]
}`

func TestGetComment_RendersReplies(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/f1/comments/c1", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(commentWithReplies))
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterDriveTools)

	result := toolstest.Call(t, s, "drive_get_comment", map[string]any{"file_id": "f1", "comment_id": "c1"})
	require.False(t, result.IsError, toolstest.Text(t, result))

	text := toolstest.Text(t, result)
	assert.Contains(t, text, "**Author**: Ada")
	assert.Contains(t, text, "**Resolved**: No")
	assert.Contains(t, text, "**Quoted Text**: Revenue: 42")
	assert.Contains(t, text, "**Replies**:\n")

	first := "- **Grace** (2024-03-01T11:00:00Z): Looks right to me"
	second := "- **Unknown** (2024-03-02T09:30:00Z) [resolve]: Fixed"
	assert.Contains(t, text, first)
	assert.Contains(t, text, second)
	assert.Less(t, strings.Index(text, first), strings.Index(text, second))
}

func TestListComments(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/f1/comments", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("includeDeleted"))
		assert.Equal(t, "20", r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(`{"comments": [` + commentWithReplies + `, {"id": "c2", "content": "Typo", "resolved": true}]}`))
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterDriveTools)

	result := toolstest.Call(t, s, "drive_list_comments", map[string]any{
		"file_id":         "f1",
		"include_deleted": true,
	})
	require.False(t, result.IsError, toolstest.Text(t, result))

	text := toolstest.Text(t, result)
	assert.Contains(t, text, "# Comments on f1 (2)")
	assert.Less(t, strings.Index(text, "## Comment c1"), strings.Index(text, "## Comment c2"))
	assert.Contains(t, text, "**Resolved**: Yes")
	assert.NotContains(t, text, "More results available")
}

func TestCreateComment(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		toolstest.DecodeBody(t, r, &body)
		assert.Equal(t, "Needs a source", body["content"])
		assert.Equal(t, map[string]any{"value": "Revenue: 42"}, body["quotedFileContent"])
		_, _ = w.Write([]byte(`{"id": "c9", "content": "Needs a source", "author": {"displayName": "Ada"}, "createdTime": "2024-03-03T08:00:00Z"}`))
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterDriveTools)

	result := toolstest.Call(t, s, "drive_create_comment", map[string]any{
		"file_id":     "f1",
		"content":     "Needs a source",
		"quoted_text": "Revenue: 42",
	})
	require.False(t, result.IsError, toolstest.Text(t, result))
	assert.Contains(t, toolstest.Text(t, result), "Comment created")
	assert.Contains(t, toolstest.Text(t, result), "# Comment c9")
}

func TestResolveComment(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/f1/comments/c1/replies", r.URL.Path)
		var body map[string]any
		toolstest.DecodeBody(t, r, &body)
		assert.Equal(t, "resolve", body["action"])
		_, _ = w.Write([]byte(`{"id": "r3", "action": "resolve", "author": {"displayName": "Ada"}, "createdTime": "2024-03-04T12:00:00Z"}`))
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterDriveTools)

	result := toolstest.Call(t, s, "drive_resolve_comment", map[string]any{"file_id": "f1", "comment_id": "c1"})
	require.False(t, result.IsError, toolstest.Text(t, result))

	text := toolstest.Text(t, result)
	assert.Contains(t, text, "Comment `c1` resolved.")
	assert.Contains(t, text, "**Action**: resolve")
}

func TestListReplies(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/f1/comments/c1/replies", r.URL.Path)
		_, _ = w.Write([]byte(`{"nextPageToken": "more", "replies": [{"id": "r1", "content": "First", "author": {"displayName": "Grace"}, "createdTime": "2024-03-01T11:00:00Z"}]}`))
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterDriveTools)

	result := toolstest.Call(t, s, "drive_list_replies", map[string]any{"file_id": "f1", "comment_id": "c1"})
	require.False(t, result.IsError, toolstest.Text(t, result))

	text := toolstest.Text(t, result)
	assert.Contains(t, text, "# Replies to comment c1 (1)")
	assert.Contains(t, text, "- **Grace** (2024-03-01T11:00:00Z): First")
	assert.Contains(t, text, "Use page_token: `more`")
}

func TestCreateReplyAndDeleteComment(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"id": "r4", "content": "Done", "author": {"displayName": "Ada"}, "createdTime": "2024-03-05T12:00:00Z"}`))
		case http.MethodDelete:
			assert.Equal(t, "/files/f1/comments/c1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	s := toolstest.NewMCPServer(t, sc, false, RegisterDriveTools)

	reply := toolstest.Call(t, s, "drive_create_reply", map[string]any{
		"file_id":    "f1",
		"comment_id": "c1",
		"content":    "Done",
	})
	require.False(t, reply.IsError, toolstest.Text(t, reply))
	assert.Contains(t, toolstest.Text(t, reply), "**Reply ID**: r4")

	deleted := toolstest.Call(t, s, "drive_delete_comment", map[string]any{"file_id": "f1", "comment_id": "c1"})
	require.False(t, deleted.IsError, toolstest.Text(t, deleted))
	assert.Equal(t, "Comment `c1` deleted.\n", toolstest.Text(t, deleted))
}

func TestCommentTools_MissingCommentID(t *testing.T) {
	sc := toolstest.NewServerContext(t, http.NotFoundHandler())
	s := toolstest.NewMCPServer(t, sc, false, RegisterDriveTools)

	for _, name := range []string{"drive_get_comment", "drive_resolve_comment", "drive_delete_comment", "drive_list_replies"} {
		t.Run(name, func(t *testing.T) {
			result := toolstest.Call(t, s, name, map[string]any{"file_id": "f1"})
			assert.True(t, result.IsError)
			assert.Contains(t, toolstest.Text(t, result), "Error: Invalid request - invalid arguments for "+name)
		})
	}
}
