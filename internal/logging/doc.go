// Package logging provides structured logging helpers for gworkspace-mcp.
//
// All logging goes through the standard library's slog package. This package
// fixes the attribute names used across the codebase and builds the process
// logger. With the stdio transport stdout carries the protocol, so logs
// always go to stderr.
//
// # Usage Patterns
//
//	logger := logging.WithTool(slog.Default(), "gmail_list_messages")
//	logger.Warn("tool failed",
//	    logging.Category("rate_limited"),
//	    logging.Err(err))
//
// Secrets are never logged; report their presence with SanitizeToken.
package logging
