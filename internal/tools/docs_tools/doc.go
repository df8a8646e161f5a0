// Package docs_tools provides MCP tools for Google Docs.
//
// The tools read a document as extracted plain text (tables are replaced by
// a [TABLE] marker), create documents, append text and apply raw Docs API
// batch update requests.
package docs_tools
