// Package cmd implements the command-line interface for gworkspace-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Google Docs, Sheets, Drive and Gmail tools
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified,
// so MCP hosts can launch the binary without arguments.
package cmd
