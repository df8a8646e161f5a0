// Package toolstest provides helpers for testing tool registrations against a
// fake Google API server.
package toolstest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/teemow/gworkspace-mcp/internal/server"
)

// RegisterFunc matches the Register*Tools functions of the tool packages.
type RegisterFunc func(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error

// NewServerContext builds a server context whose Google clients talk to
// handler.
func NewServerContext(t *testing.T, handler http.Handler) *server.ServerContext {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sc, err := server.NewServerContext(context.Background(), []option.ClientOption{
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL + "/"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

// NewMCPServer registers tools through register and returns the server.
func NewMCPServer(t *testing.T, sc *server.ServerContext, readOnly bool, register RegisterFunc) *mcpserver.MCPServer {
	t.Helper()
	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))
	require.NoError(t, register(s, sc, readOnly))
	return s
}

// Call invokes the registered tool name with args.
func Call(t *testing.T, s *mcpserver.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool, ok := s.ListTools()[name]
	require.True(t, ok, "tool %s is not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// Text returns the single text content of result.
func Text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

// ToolNames lists the registered tool names.
func ToolNames(s *mcpserver.MCPServer) []string {
	names := make([]string, 0, len(s.ListTools()))
	for name := range s.ListTools() {
		names = append(names, name)
	}
	return names
}

// WriteJSON encodes v as the response body.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError answers with a Google API error envelope.
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}

// DecodeBody decodes the JSON request body into v.
func DecodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(v))
}
