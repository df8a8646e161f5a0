package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gworkspace-mcp/internal/apierrors"
	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
	"github.com/teemow/gworkspace-mcp/internal/logging"
	"github.com/teemow/gworkspace-mcp/internal/render"
	"github.com/teemow/gworkspace-mcp/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with argument validation,
// failure classification, tracing, metrics and audit logging.
//
// Every failure (validation error, remote error, handler panic) comes back
// as a text-only error result, so no failure escapes a single invocation.
//
// Usage:
//
//	s.AddTool(tool.Tool, common.InstrumentedToolHandler(tool, sc, validator))
func InstrumentedToolHandler(t Tool, sc *server.ServerContext, validator *Validator) mcpserver.ToolHandlerFunc {
	toolName := t.Tool.Name
	service, operation := instrumentation.ToolLabels(toolName)
	readOnly := IsReadOnly(t.Tool)

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		resourceID := stringArg(args, t.ResourceArg)
		format := stringArg(args, ArgResponseFormat)
		if format == "" {
			format = string(render.FormatMarkdown)
		}

		attrs := instrumentation.NewSpanAttributeBuilder().
			WithService(service, operation).
			WithResource(resourceID).
			WithFormat(format).
			WithReadOnly(readOnly).
			Build()
		ctx, span := instrumentation.StartToolSpan(ctx, toolName, attrs...)
		defer span.End()

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithResource(resourceID).
			WithSpanContext(ctx)

		result, calledRemote, err := invoke(ctx, request, validator, t.Handler)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		var category apierrors.Category
		switch {
		case err != nil:
			var message string
			category, message = classify(err)
			result = mcp.NewToolResultError(message)
		case result == nil:
			err = errors.New("tool returned no result")
			category = apierrors.CategoryGeneric
			result = mcp.NewToolResultError(apierrors.Message(category, err.Error()))
		case result.IsError:
			err = errors.New(resultText(result))
			category = apierrors.CategoryGeneric
		}

		if err != nil {
			status = instrumentation.StatusError
			instrumentation.SetSpanError(span, string(category), err)
			invocation.CompleteWithError(string(category), err)
		} else {
			instrumentation.SetSpanSuccess(span)
			invocation.CompleteSuccess()
		}

		metrics := sc.Metrics()
		metrics.RecordToolInvocation(ctx, toolName, status, duration)
		if calledRemote {
			metrics.RecordGoogleAPIOperation(ctx, service, operation, status, duration)
		}
		if err != nil {
			metrics.RecordToolError(ctx, toolName, string(category))
		}

		sc.AuditLogger().LogToolInvocation(invocation)

		logAttrs := []slog.Attr{
			logging.Tool(toolName),
			logging.Status(status),
			logging.Duration(duration),
		}
		if err != nil {
			logAttrs = append(logAttrs, logging.Category(string(category)), logging.Err(err))
		}
		sc.Logger().LogAttrs(ctx, slog.LevelDebug, "tool call finished", logAttrs...)

		return result, nil
	}
}

// invoke validates the arguments and runs the handler, converting a panic
// into an error. calledRemote is false when validation rejected the call.
func invoke(ctx context.Context, request mcp.CallToolRequest, validator *Validator, handler Handler) (result *mcp.CallToolResult, calledRemote bool, err error) {
	if validator != nil {
		if verr := validator.Validate(request.GetArguments()); verr != nil {
			return nil, false, verr
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result, calledRemote, err = nil, true, &panicError{value: r}
		}
	}()
	result, err = handler(ctx, request)
	return result, true, err
}

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("%v", e.value)
}

// classify maps a handler failure to its category and caller-facing message.
func classify(err error) (apierrors.Category, string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return apierrors.CategoryInvalidRequest, apierrors.Message(apierrors.CategoryInvalidRequest, verr.Error())
	}
	var perr *panicError
	if errors.As(err, &perr) {
		return apierrors.CategoryGeneric, apierrors.Message(apierrors.CategoryGeneric, perr.Error())
	}
	return apierrors.Categorize(err), apierrors.Classify(err)
}

func stringArg(args map[string]any, name string) string {
	if name == "" {
		return ""
	}
	s, _ := args[name].(string)
	return s
}

func resultText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if text, ok := c.(mcp.TextContent); ok {
			return text.Text
		}
	}
	return "tool reported an error"
}
