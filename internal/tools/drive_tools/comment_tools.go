package drive_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gworkspace-mcp/internal/drive"
	"github.com/teemow/gworkspace-mcp/internal/render"
	"github.com/teemow/gworkspace-mcp/internal/server"
	"github.com/teemow/gworkspace-mcp/internal/tools/common"
)

// registerCommentTools registers comment and reply tools
func registerCommentTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	return common.AddTools(s, sc, readOnly,
		common.Tool{
			Tool: common.NewTool("drive_list_comments", []mcp.ToolOption{
				mcp.WithDescription("List the comments on a Drive file (Docs, Sheets, Slides or any other file), each with its replies"),
				common.ReadOnlyHints(),
				fileIDArg(),
				mcp.WithBoolean("include_deleted",
					mcp.DefaultBool(false),
					mcp.Description("Include deleted comments and replies"),
				),
				common.WithResponseFormat(),
			}, common.WithPaging("comments")...),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleListComments(ctx, request, sc)
			},
			ResourceArg: "file_id",
		},
		common.Tool{
			Tool: mcp.NewTool("drive_get_comment",
				mcp.WithDescription("Get a single comment with its replies"),
				common.ReadOnlyHints(),
				fileIDArg(),
				commentIDArg(),
				common.WithResponseFormat(),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetComment(ctx, request, sc)
			},
			ResourceArg: "file_id",
		},
		common.Tool{
			Tool: mcp.NewTool("drive_create_comment",
				mcp.WithDescription("Add a comment to a Drive file"),
				common.WithHints(false, false, false),
				fileIDArg(),
				mcp.WithString("content",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("Plain text of the comment"),
				),
				mcp.WithString("quoted_text",
					mcp.Description("Text from the file the comment refers to, shown as the quoted content"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateComment(ctx, request, sc)
			},
			ResourceArg: "file_id",
		},
		common.Tool{
			Tool: mcp.NewTool("drive_resolve_comment",
				mcp.WithDescription("Mark a comment as resolved by posting a resolving reply"),
				common.WithHints(false, false, true),
				fileIDArg(),
				commentIDArg(),
				mcp.WithString("content",
					mcp.Description("Optional text of the resolving reply"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleResolveComment(ctx, request, sc)
			},
			ResourceArg: "file_id",
		},
		common.Tool{
			Tool: mcp.NewTool("drive_delete_comment",
				mcp.WithDescription("Delete a comment and its replies"),
				common.WithHints(false, true, true),
				fileIDArg(),
				commentIDArg(),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteComment(ctx, request, sc)
			},
			ResourceArg: "file_id",
		},
		common.Tool{
			Tool: common.NewTool("drive_list_replies", []mcp.ToolOption{
				mcp.WithDescription("List the replies to a comment in the order they were posted"),
				common.ReadOnlyHints(),
				fileIDArg(),
				commentIDArg(),
				common.WithResponseFormat(),
			}, common.WithPaging("replies")...),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleListReplies(ctx, request, sc)
			},
			ResourceArg: "file_id",
		},
		common.Tool{
			Tool: mcp.NewTool("drive_create_reply",
				mcp.WithDescription("Reply to a comment"),
				common.WithHints(false, false, false),
				fileIDArg(),
				commentIDArg(),
				mcp.WithString("content",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("Plain text of the reply"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateReply(ctx, request, sc)
			},
			ResourceArg: "file_id",
		},
	)
}

// commentArgs reads file_id and comment_id.
func commentArgs(request mcp.CallToolRequest) (fileID, commentID string, err error) {
	if fileID, err = common.RequiredString(request, "file_id"); err != nil {
		return "", "", err
	}
	if commentID, err = common.RequiredString(request, "comment_id"); err != nil {
		return "", "", err
	}
	return fileID, commentID, nil
}

func handleListComments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	fileID, err := common.RequiredString(request, "file_id")
	if err != nil {
		return nil, err
	}
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	comments, next, err := sc.DriveClient().ListComments(ctx, fileID, drive.CommentListOptions{
		PageSize:       common.PageSize(request),
		PageToken:      common.PageToken(request),
		IncludeDeleted: request.GetBool("include_deleted", false),
	})
	if err != nil {
		return nil, err
	}

	page := render.NewPage(comments, next)
	return render.Result(format, page, func() string { return formatCommentList(fileID, page) }, render.DataTruncatedMarker)
}

func handleGetComment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	fileID, commentID, err := commentArgs(request)
	if err != nil {
		return nil, err
	}
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	comment, err := sc.DriveClient().GetComment(ctx, fileID, commentID)
	if err != nil {
		return nil, err
	}

	return render.Result(format, comment, func() string { return formatComment(comment) }, render.DataTruncatedMarker)
}

func handleCreateComment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	fileID, err := common.RequiredString(request, "file_id")
	if err != nil {
		return nil, err
	}
	content, err := common.RequiredString(request, "content")
	if err != nil {
		return nil, err
	}

	comment, err := sc.DriveClient().CreateComment(ctx, fileID, content, request.GetString("quoted_text", ""))
	if err != nil {
		return nil, err
	}

	return render.Result(render.FormatMarkdown, comment, func() string {
		return "Comment created\n\n" + formatComment(comment)
	}, render.DataTruncatedMarker)
}

func handleResolveComment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	fileID, commentID, err := commentArgs(request)
	if err != nil {
		return nil, err
	}

	reply, err := sc.DriveClient().ResolveComment(ctx, fileID, commentID, request.GetString("content", ""))
	if err != nil {
		return nil, err
	}

	return render.Result(render.FormatMarkdown, reply, func() string {
		return "Comment `" + commentID + "` resolved.\n\n" + formatReply(reply)
	}, render.DataTruncatedMarker)
}

func handleDeleteComment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	fileID, commentID, err := commentArgs(request)
	if err != nil {
		return nil, err
	}

	if err := sc.DriveClient().DeleteComment(ctx, fileID, commentID); err != nil {
		return nil, err
	}

	result := drive.DeleteResult{FileID: fileID, CommentID: commentID, Deleted: true}
	return render.Result(render.FormatMarkdown, result, func() string {
		return "Comment `" + commentID + "` deleted.\n"
	}, render.DataTruncatedMarker)
}

func handleListReplies(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	fileID, commentID, err := commentArgs(request)
	if err != nil {
		return nil, err
	}
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	replies, next, err := sc.DriveClient().ListReplies(ctx, fileID, commentID, drive.CommentListOptions{
		PageSize:  common.PageSize(request),
		PageToken: common.PageToken(request),
	})
	if err != nil {
		return nil, err
	}

	page := render.NewPage(replies, next)
	return render.Result(format, page, func() string { return formatReplyList(commentID, page) }, render.DataTruncatedMarker)
}

func handleCreateReply(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	fileID, commentID, err := commentArgs(request)
	if err != nil {
		return nil, err
	}
	content, err := common.RequiredString(request, "content")
	if err != nil {
		return nil, err
	}

	reply, err := sc.DriveClient().CreateReply(ctx, fileID, commentID, content)
	if err != nil {
		return nil, err
	}

	return render.Result(render.FormatMarkdown, reply, func() string {
		return "Reply added\n\n" + formatReply(reply)
	}, render.DataTruncatedMarker)
}
