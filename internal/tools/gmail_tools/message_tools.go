package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gworkspace-mcp/internal/render"
	"github.com/teemow/gworkspace-mcp/internal/server"
	"github.com/teemow/gworkspace-mcp/internal/tools/common"
)

// registerMessageTools registers message and thread tools
func registerMessageTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	return common.AddTools(s, sc, readOnly,
		common.Tool{
			Tool: common.NewTool("gmail_list_messages", []mcp.ToolOption{
				mcp.WithDescription("List Gmail messages matching a query, with subject, sender, date and snippet of each"),
				common.ReadOnlyHints(),
			}, listArgs("messages")...),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleListMessages(ctx, request, sc)
			},
		},
		common.Tool{
			Tool: mcp.NewTool("gmail_get_message",
				mcp.WithDescription("Get a Gmail message with its plain-text body and attachment list"),
				common.ReadOnlyHints(),
				mcp.WithString("message_id",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("The ID of the message"),
				),
				common.WithResponseFormat(),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetMessage(ctx, request, sc)
			},
			ResourceArg: "message_id",
		},
		common.Tool{
			Tool: common.NewTool("gmail_list_threads", []mcp.ToolOption{
				mcp.WithDescription("List Gmail threads matching a query, with subject, first sender, latest date and message count of each"),
				common.ReadOnlyHints(),
			}, listArgs("threads")...),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleListThreads(ctx, request, sc)
			},
		},
		common.Tool{
			Tool: mcp.NewTool("gmail_get_thread",
				mcp.WithDescription("Get a Gmail thread with the plain-text body of every message in conversation order"),
				common.ReadOnlyHints(),
				mcp.WithString("thread_id",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("The ID of the thread"),
				),
				common.WithResponseFormat(),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetThread(ctx, request, sc)
			},
			ResourceArg: "thread_id",
		},
		common.Tool{
			Tool: mcp.NewTool("gmail_modify_message_labels",
				mcp.WithDescription("Add and remove labels on a message. Remove INBOX to archive, add TRASH to trash, remove UNREAD to mark as read."),
				common.WithHints(false, false, true),
				mcp.WithString("message_id",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("The ID of the message"),
				),
				mcp.WithArray("add_label_ids",
					mcp.Items(map[string]any{"type": "string", "minLength": 1}),
					mcp.Description("Label IDs to add"),
				),
				mcp.WithArray("remove_label_ids",
					mcp.Items(map[string]any{"type": "string", "minLength": 1}),
					mcp.Description("Label IDs to remove"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleModifyMessageLabels(ctx, request, sc)
			},
			ResourceArg: "message_id",
		},
	)
}

func handleListMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	messages, next, err := sc.GmailClient().ListMessages(ctx, listOptions(request))
	if err != nil {
		return nil, err
	}

	page := render.NewPage(messages, next)
	return render.Result(format, page, func() string { return formatMessageList(page) }, render.DataTruncatedMarker)
}

func handleGetMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	messageID, err := common.RequiredString(request, "message_id")
	if err != nil {
		return nil, err
	}
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	msg, err := sc.GmailClient().GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	return render.Result(format, msg, func() string { return formatMessage(msg) }, render.ContentTruncatedMarker)
}

func handleListThreads(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	threads, next, err := sc.GmailClient().ListThreads(ctx, listOptions(request))
	if err != nil {
		return nil, err
	}

	page := render.NewPage(threads, next)
	return render.Result(format, page, func() string { return formatThreadList(page) }, render.DataTruncatedMarker)
}

func handleGetThread(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	threadID, err := common.RequiredString(request, "thread_id")
	if err != nil {
		return nil, err
	}
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	thread, err := sc.GmailClient().GetThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	return render.Result(format, thread, func() string { return formatThread(thread) }, render.ContentTruncatedMarker)
}

func handleModifyMessageLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	messageID, err := common.RequiredString(request, "message_id")
	if err != nil {
		return nil, err
	}
	add := common.StringSlice(request, "add_label_ids")
	remove := common.StringSlice(request, "remove_label_ids")
	if len(add) == 0 && len(remove) == 0 {
		return nil, &common.ValidationError{Tool: request.Params.Name, Problems: []string{"at least one of add_label_ids or remove_label_ids is required"}}
	}

	result, err := sc.GmailClient().ModifyMessageLabels(ctx, messageID, add, remove)
	if err != nil {
		return nil, err
	}

	return render.Result(render.FormatMarkdown, result, func() string { return formatModifyResult(result) }, render.DataTruncatedMarker)
}
