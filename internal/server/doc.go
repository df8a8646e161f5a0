// Package server provides the MCP server context and the HTTP servers that
// sit around it.
//
// # Key Components
//
// ServerContext holds the Google Docs, Sheets, Drive and Gmail clients. They
// are built once at startup from one authenticated HTTP client and handed to
// every tool registration; tools never build clients of their own. It also
// carries the logger, metrics recorder and audit logger used by the tool
// wrapper.
//
// HTTPServer serves the MCP server over the streamable HTTP transport at
// /mcp, next to the health endpoints:
//   - /healthz: liveness
//   - /readyz: readiness, including whether each Google client was built
//   - /healthz/detailed: version, uptime and per-service status
//
// MetricsServer exposes the Prometheus registry of the instrumentation
// provider on a separate port.
package server
