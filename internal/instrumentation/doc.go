// Package instrumentation provides OpenTelemetry metrics, tracing and audit
// logging for the gworkspace-mcp server.
//
// # Metrics
//
// Server/HTTP Metrics (streamable HTTP transport):
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Google API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of tool execution durations
//   - mcp_tool_errors_total: Counter of failed invocations by tool and error category
//
// Service and operation labels are derived from tool names by ToolLabels so
// that label cardinality stays bounded.
//
// # Tracing
//
// Every tool invocation runs inside a "tool.<name>" server span. Failed
// invocations carry the classified error category as a span attribute.
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: gworkspace-mcp)
//   - AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_RESOURCE_IDS
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordToolInvocation(ctx, "docs_get_document", "success", time.Since(start))
package instrumentation
