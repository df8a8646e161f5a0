package instrumentation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithService(ServiceGmail, OperationList).
		WithResource("msg-1").
		WithFormat("json").
		WithReadOnly(true).
		Build()

	got := make(map[string]any, len(attrs))
	for _, a := range attrs {
		got[string(a.Key)] = a.Value.AsInterface()
	}

	assert.Equal(t, map[string]any{
		SpanAttrService:    ServiceGmail,
		SpanAttrOperation:  OperationList,
		SpanAttrResourceID: "msg-1",
		SpanAttrFormat:     "json",
		SpanAttrReadOnly:   true,
	}, got)
}

func TestSpanAttributeBuilder_EmptyValues(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithService("", "").
		WithResource("").
		WithFormat("").
		Build()

	assert.Empty(t, attrs)
}

func TestStartToolSpan(t *testing.T) {
	recorder := useRecorder(t)

	_, span := StartToolSpan(context.Background(), "docs_get_document",
		NewSpanAttributeBuilder().WithService(ServiceDocs, OperationGet).Build()...)
	SetSpanSuccess(span)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool.docs_get_document", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestSetSpanError(t *testing.T) {
	recorder := useRecorder(t)

	_, span := StartToolSpan(context.Background(), "drive_get_file")
	SetSpanError(span, "not_found", errors.New("googleapi: Error 404: File not found"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	var category string
	for _, a := range spans[0].Attributes() {
		if string(a.Key) == SpanAttrErrorCategory {
			category = a.Value.AsString()
		}
	}
	assert.Equal(t, "not_found", category)
	assert.Len(t, spans[0].Events(), 1)
}

func TestSetSpanError_NilError(t *testing.T) {
	recorder := useRecorder(t)

	_, span := StartToolSpan(context.Background(), "drive_get_file")
	SetSpanError(span, "generic", nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}
