package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the tracer name used for every span of this module.
const TracerName = "github.com/teemow/gworkspace-mcp"

// Span attribute keys.
const (
	SpanAttrTool          = "mcp.tool"
	SpanAttrService       = "google.service"
	SpanAttrOperation     = "google.operation"
	SpanAttrResourceID    = "mcp.resource_id"
	SpanAttrReadOnly      = "mcp.read_only"
	SpanAttrFormat        = "mcp.response_format"
	SpanAttrErrorCategory = "mcp.error_category"
)

// SpanAttributeBuilder helps construct span attributes with consistent
// naming. Empty string values are skipped.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewSpanAttributeBuilder creates a new SpanAttributeBuilder.
func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{attrs: make([]attribute.KeyValue, 0, 6)}
}

func (b *SpanAttributeBuilder) str(key, value string) *SpanAttributeBuilder {
	if value != "" {
		b.attrs = append(b.attrs, attribute.String(key, value))
	}
	return b
}

// WithService adds the Google service and operation attributes.
func (b *SpanAttributeBuilder) WithService(service, operation string) *SpanAttributeBuilder {
	return b.str(SpanAttrService, service).str(SpanAttrOperation, operation)
}

// WithResource adds the targeted resource identifier.
func (b *SpanAttributeBuilder) WithResource(id string) *SpanAttributeBuilder {
	return b.str(SpanAttrResourceID, id)
}

// WithFormat adds the requested response format.
func (b *SpanAttributeBuilder) WithFormat(format string) *SpanAttributeBuilder {
	return b.str(SpanAttrFormat, format)
}

// WithReadOnly adds the read-only indicator attribute.
func (b *SpanAttributeBuilder) WithReadOnly(readOnly bool) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Bool(SpanAttrReadOnly, readOnly))
	return b
}

// Build returns the constructed attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

// StartToolSpan starts a server span named "tool.<name>" for an MCP tool
// invocation. The caller ends the span.
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attribute.String(SpanAttrTool, toolName))
	allAttrs = append(allAttrs, attrs...)

	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, "tool."+toolName,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// SetSpanError records err on the span with its classified category and
// sets the status to error.
func SetSpanError(span trace.Span, category string, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetAttributes(attribute.String(SpanAttrErrorCategory, category))
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}
