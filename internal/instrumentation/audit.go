package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// ToolInvocation captures one MCP tool call for audit logging.
type ToolInvocation struct {
	Tool string

	// Google service and operation derived from the tool name
	ServiceName string
	Operation   string

	// ResourceID is the document, spreadsheet, file, message or thread the
	// call targeted, when it has one
	ResourceID string

	// Execution details
	StartTime     time.Time
	Duration      time.Duration
	Success       bool
	ErrorCategory string
	Error         string

	// Tracing context
	TraceID string
	SpanID  string
}

// NewToolInvocation creates a ToolInvocation with timing started and the
// service and operation labels filled from the tool name.
func NewToolInvocation(tool string) *ToolInvocation {
	service, operation := ToolLabels(tool)
	return &ToolInvocation{
		Tool:        tool,
		ServiceName: service,
		Operation:   operation,
		StartTime:   time.Now(),
	}
}

// WithResource sets the targeted resource identifier.
func (ti *ToolInvocation) WithResource(id string) *ToolInvocation {
	ti.ResourceID = id
	return ti
}

// WithSpanContext extracts trace context from the current span.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if sc.IsValid() {
		ti.TraceID = sc.TraceID().String()
		ti.SpanID = sc.SpanID().String()
	}
	return ti
}

// CompleteSuccess marks the invocation as successful.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = true
	return ti
}

// CompleteWithError marks the invocation as failed with a classified
// category and the underlying error.
func (ti *ToolInvocation) CompleteWithError(category string, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = false
	ti.ErrorCategory = category
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// Status returns "success" or "error" based on the Success field.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for the audit line. Resource identifiers
// are only included when includeResourceID is set.
func (ti *ToolInvocation) LogAttrs(includeResourceID bool) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("service", ti.ServiceName),
		slog.String("operation", ti.Operation),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}

	if includeResourceID && ti.ResourceID != "" {
		attrs = append(attrs, slog.String("resource_id", ti.ResourceID))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID), slog.String("span_id", ti.SpanID))
	}
	if ti.ErrorCategory != "" {
		attrs = append(attrs, slog.String("error_category", ti.ErrorCategory))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}

	return attrs
}

// AuditLogger writes one structured line per tool invocation.
type AuditLogger struct {
	logger *slog.Logger
	config AuditLoggingConfig
}

// NewAuditLogger creates an AuditLogger with the given configuration.
// A nil logger means slog.Default().
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger, config: config}
}

// LogToolInvocation logs the invocation at INFO on success and WARN on
// failure. A nil or disabled logger does nothing.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if al == nil || !al.config.Enabled {
		return
	}

	attrs := ti.LogAttrs(al.config.IncludeResourceIDs)
	if ti.Success {
		al.logger.LogAttrs(context.Background(), slog.LevelInfo, "tool_executed", attrs...)
	} else {
		al.logger.LogAttrs(context.Background(), slog.LevelWarn, "tool_failed", attrs...)
	}
}
