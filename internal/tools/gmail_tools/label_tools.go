package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gworkspace-mcp/internal/gmail"
	"github.com/teemow/gworkspace-mcp/internal/render"
	"github.com/teemow/gworkspace-mcp/internal/server"
	"github.com/teemow/gworkspace-mcp/internal/tools/common"
)

// registerLabelTools registers label management tools
func registerLabelTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	return common.AddTools(s, sc, readOnly,
		common.Tool{
			Tool: mcp.NewTool("gmail_list_labels",
				mcp.WithDescription("List all Gmail labels, system labels first, then user labels by name"),
				common.ReadOnlyHints(),
				common.WithResponseFormat(),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleListLabels(ctx, request, sc)
			},
		},
		common.Tool{
			Tool: mcp.NewTool("gmail_create_label",
				mcp.WithDescription("Create a user label"),
				common.WithHints(false, false, false),
				mcp.WithString("name",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("Display name of the label. Use '/' to nest labels (e.g., 'Projects/Alpha')."),
				),
				mcp.WithString("label_list_visibility",
					mcp.Enum("labelShow", "labelShowIfUnread", "labelHide"),
					mcp.Description("Visibility of the label in the label list"),
				),
				mcp.WithString("message_list_visibility",
					mcp.Enum("show", "hide"),
					mcp.Description("Visibility of messages with this label in the message list"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateLabel(ctx, request, sc)
			},
		},
		common.Tool{
			Tool: mcp.NewTool("gmail_delete_label",
				mcp.WithDescription("Delete a user label and remove it from every message and thread. System labels cannot be deleted."),
				common.WithHints(false, true, true),
				mcp.WithString("label_id",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("The ID of the label"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteLabel(ctx, request, sc)
			},
			ResourceArg: "label_id",
		},
	)
}

// labelDeleteResult confirms a label deletion
type labelDeleteResult struct {
	LabelID string `json:"label_id"`
	Deleted bool   `json:"deleted"`
}

func handleListLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	labels, err := sc.GmailClient().ListLabels(ctx)
	if err != nil {
		return nil, err
	}
	render.SortSystemFirst(labels, gmail.Label.IsSystem, func(l gmail.Label) string { return l.Name })

	page := render.NewPage(labels, "")
	return render.Result(format, page, func() string { return formatLabelList(page) }, render.DataTruncatedMarker)
}

func handleCreateLabel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	name, err := common.RequiredString(request, "name")
	if err != nil {
		return nil, err
	}

	label, err := sc.GmailClient().CreateLabel(ctx, name,
		request.GetString("label_list_visibility", ""),
		request.GetString("message_list_visibility", ""))
	if err != nil {
		return nil, err
	}

	return render.Result(render.FormatMarkdown, label, func() string {
		return "Label created\n\n" + formatLabel(label)
	}, render.DataTruncatedMarker)
}

func handleDeleteLabel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	labelID, err := common.RequiredString(request, "label_id")
	if err != nil {
		return nil, err
	}

	if err := sc.GmailClient().DeleteLabel(ctx, labelID); err != nil {
		return nil, err
	}

	result := labelDeleteResult{LabelID: labelID, Deleted: true}
	return render.Result(render.FormatMarkdown, result, func() string {
		return "Label `" + labelID + "` deleted.\n"
	}, render.DataTruncatedMarker)
}
