package drive_tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gworkspace-mcp/internal/server"
)

// RegisterDriveTools registers all Google Drive-related tools with the MCP server
func RegisterDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerFileTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register file tools: %w", err)
	}

	if err := registerCommentTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register comment tools: %w", err)
	}

	return nil
}

func fileIDArg() mcp.ToolOption {
	return mcp.WithString("file_id",
		mcp.Required(),
		mcp.MinLength(1),
		mcp.Description("The ID of the Drive file"),
	)
}

func commentIDArg() mcp.ToolOption {
	return mcp.WithString("comment_id",
		mcp.Required(),
		mcp.MinLength(1),
		mcp.Description("The ID of the comment"),
	)
}
