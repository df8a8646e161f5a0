package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gworkspace-mcp/internal/render"
	"github.com/teemow/gworkspace-mcp/internal/server"
)

// Common argument names
const (
	ArgResponseFormat = "response_format"
	ArgPageSize       = "page_size"
	ArgPageToken      = "page_token"
)

// Paging limits shared by the list tools.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Handler performs one tool call. Failures are returned as Go errors; the
// wrapper turns them into the classified text result.
type Handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Tool pairs a tool definition with its handler.
type Tool struct {
	Tool    mcp.Tool
	Handler Handler

	// ResourceArg names the argument identifying the remote resource. Its
	// value is attached to spans and audit lines.
	ResourceArg string
}

// AddTools registers tools with s. In read-only mode only tools carrying the
// read-only hint are registered.
func AddTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool, tools ...Tool) error {
	for _, t := range tools {
		if readOnly && !IsReadOnly(t.Tool) {
			continue
		}
		validator, err := NewValidator(t.Tool)
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", t.Tool.Name, err)
		}
		s.AddTool(t.Tool, InstrumentedToolHandler(t, sc, validator))
	}
	return nil
}

// IsReadOnly reports whether the tool carries the read-only hint.
func IsReadOnly(tool mcp.Tool) bool {
	hint := tool.Annotations.ReadOnlyHint
	return hint != nil && *hint
}

// WithHints sets the behavior hints of a tool. Every tool talks to Google,
// so the open-world hint is always set.
func WithHints(readOnly, destructive, idempotent bool) mcp.ToolOption {
	return func(t *mcp.Tool) {
		mcp.WithReadOnlyHintAnnotation(readOnly)(t)
		mcp.WithDestructiveHintAnnotation(destructive)(t)
		mcp.WithIdempotentHintAnnotation(idempotent)(t)
		mcp.WithOpenWorldHintAnnotation(true)(t)
	}
}

// ReadOnlyHints marks a tool that only reads remote state.
func ReadOnlyHints() mcp.ToolOption {
	return WithHints(true, false, true)
}

// WithResponseFormat adds the response_format argument.
func WithResponseFormat() mcp.ToolOption {
	return mcp.WithString(ArgResponseFormat,
		mcp.Enum(render.Formats...),
		mcp.DefaultString(string(render.FormatMarkdown)),
		mcp.Description("Output format: 'markdown' for human-readable text (default) or 'json' for machine-readable data"),
	)
}

// Integer narrows a number argument to whole numbers, so the validator
// rejects values such as 2.5.
func Integer() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = "integer"
	}
}

// WithPaging adds page_size and page_token arguments.
func WithPaging(noun string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber(ArgPageSize,
			Integer(),
			mcp.Min(1),
			mcp.Max(MaxPageSize),
			mcp.DefaultNumber(DefaultPageSize),
			mcp.Description(fmt.Sprintf("Maximum number of %s to return (1-%d, default: %d)", noun, MaxPageSize, DefaultPageSize)),
		),
		mcp.WithString(ArgPageToken,
			mcp.Description("Token from a previous response to fetch the next page"),
		),
	}
}

// NewTool builds a tool from a base set of options plus extras, so option
// groups such as WithPaging can be spliced in.
func NewTool(name string, opts []mcp.ToolOption, extra ...mcp.ToolOption) mcp.Tool {
	all := make([]mcp.ToolOption, 0, len(opts)+len(extra))
	all = append(all, opts...)
	all = append(all, extra...)
	return mcp.NewTool(name, all...)
}

// ResponseFormat reads the response_format argument.
func ResponseFormat(request mcp.CallToolRequest) (render.Format, error) {
	return render.ParseFormat(request.GetString(ArgResponseFormat, ""))
}

// PageSize reads page_size, falling back to DefaultPageSize.
func PageSize(request mcp.CallToolRequest) int64 {
	return int64(request.GetInt(ArgPageSize, DefaultPageSize))
}

// PageToken reads page_token.
func PageToken(request mcp.CallToolRequest) string {
	return request.GetString(ArgPageToken, "")
}

// RequiredString reads a string argument that must be non-empty. The schema
// already enforces presence; this also rejects blank strings.
func RequiredString(request mcp.CallToolRequest, name string) (string, error) {
	value, err := request.RequireString(name)
	if err != nil {
		return "", &ValidationError{Tool: request.Params.Name, Problems: []string{err.Error()}}
	}
	if value == "" {
		return "", &ValidationError{Tool: request.Params.Name, Problems: []string{fmt.Sprintf("/%s: must not be empty", name)}}
	}
	return value, nil
}

// StringSlice reads an array-of-strings argument.
func StringSlice(request mcp.CallToolRequest, name string) []string {
	return request.GetStringSlice(name, nil)
}

// DecodeArgument converts the argument name into dst with a JSON round trip.
// It is used for arguments that carry Google API request objects; unknown
// fields are rejected so a misspelled request kind fails before any call.
func DecodeArgument(request mcp.CallToolRequest, name string, dst any) error {
	raw, ok := request.GetArguments()[name]
	if !ok {
		return &ValidationError{Tool: request.Params.Name, Problems: []string{fmt.Sprintf("/%s: missing", name)}}
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return &ValidationError{Tool: request.Params.Name, Problems: []string{fmt.Sprintf("/%s: %v", name, err)}}
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ValidationError{Tool: request.Params.Name, Problems: []string{fmt.Sprintf("/%s: %v", name, err)}}
	}
	return nil
}
