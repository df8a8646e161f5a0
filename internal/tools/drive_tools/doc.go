// Package drive_tools provides MCP tools for Google Drive files and comments.
//
// File tools list, inspect and delete files. Comment tools cover the full
// comment lifecycle on a file: listing, creating, replying, resolving and
// deleting. Comments are returned with their replies in API order.
package drive_tools
