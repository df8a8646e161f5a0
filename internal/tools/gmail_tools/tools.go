package gmail_tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gworkspace-mcp/internal/gmail"
	"github.com/teemow/gworkspace-mcp/internal/server"
	"github.com/teemow/gworkspace-mcp/internal/tools/common"
)

// RegisterGmailTools registers all Gmail-related tools with the MCP server
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerMessageTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register message tools: %w", err)
	}

	if err := registerLabelTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register label tools: %w", err)
	}

	return nil
}

// listArgs are the search arguments shared by the message and thread
// listings.
func listArgs(noun string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("query",
			mcp.Description("Gmail search query (e.g., 'in:inbox is:unread', 'from:user@example.com newer_than:7d')"),
		),
		mcp.WithArray("label_ids",
			mcp.Items(map[string]any{"type": "string"}),
			mcp.Description(fmt.Sprintf("Only return %s carrying all of these label IDs (e.g., ['INBOX', 'UNREAD'])", noun)),
		),
		mcp.WithNumber("max_results",
			common.Integer(),
			mcp.Min(1),
			mcp.Max(common.MaxPageSize),
			mcp.DefaultNumber(common.DefaultPageSize),
			mcp.Description(fmt.Sprintf("Maximum number of %s to return (1-%d, default: %d)", noun, common.MaxPageSize, common.DefaultPageSize)),
		),
		mcp.WithString(common.ArgPageToken,
			mcp.Description("Token from a previous response to fetch the next page"),
		),
		mcp.WithBoolean("include_spam_trash",
			mcp.DefaultBool(false),
			mcp.Description(fmt.Sprintf("Include %s from SPAM and TRASH", noun)),
		),
		common.WithResponseFormat(),
	}
}

func listOptions(request mcp.CallToolRequest) gmail.ListOptions {
	return gmail.ListOptions{
		Query:            request.GetString("query", ""),
		LabelIDs:         common.StringSlice(request, "label_ids"),
		MaxResults:       int64(request.GetInt("max_results", common.DefaultPageSize)),
		PageToken:        common.PageToken(request),
		IncludeSpamTrash: request.GetBool("include_spam_trash", false),
	}
}
