package cmd

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gworkspace-mcp/internal/server"
	"github.com/teemow/gworkspace-mcp/internal/tools/docs_tools"
	"github.com/teemow/gworkspace-mcp/internal/tools/drive_tools"
	"github.com/teemow/gworkspace-mcp/internal/tools/gmail_tools"
	"github.com/teemow/gworkspace-mcp/internal/tools/sheets_tools"
)

// registerAllTools registers every tool family. It is shared by serve and
// generate-docs so the documentation always matches the served catalogue.
func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registrations := []struct {
		name     string
		register func(*mcpserver.MCPServer, *server.ServerContext, bool) error
	}{
		{name: "Docs", register: docs_tools.RegisterDocsTools},
		{name: "Sheets", register: sheets_tools.RegisterSheetsTools},
		{name: "Drive", register: drive_tools.RegisterDriveTools},
		{name: "Gmail", register: gmail_tools.RegisterGmailTools},
	}

	for _, reg := range registrations {
		if err := reg.register(mcpSrv, sc, readOnly); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", reg.name, err)
		}
	}
	return nil
}
