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

// registerFileTools registers file management tools
func registerFileTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	return common.AddTools(s, sc, readOnly,
		common.Tool{
			Tool: common.NewTool("drive_list_files", []mcp.ToolOption{
				mcp.WithDescription("List files in Google Drive with optional filtering. Trashed files are excluded unless include_trashed is set."),
				common.ReadOnlyHints(),
				mcp.WithString("query",
					mcp.Description("Drive search query (e.g., \"name contains 'report'\", \"mimeType='application/pdf'\")"),
				),
				mcp.WithString("order_by",
					mcp.Description("Sort order (e.g., 'folder,modifiedTime desc,name')"),
				),
				mcp.WithBoolean("include_trashed",
					mcp.DefaultBool(false),
					mcp.Description("Include trashed files in results"),
				),
				common.WithResponseFormat(),
			}, common.WithPaging("files")...),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleListFiles(ctx, request, sc)
			},
		},
		common.Tool{
			Tool: mcp.NewTool("drive_get_file",
				mcp.WithDescription("Get metadata of a Drive file or folder"),
				common.ReadOnlyHints(),
				fileIDArg(),
				common.WithResponseFormat(),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetFile(ctx, request, sc)
			},
			ResourceArg: "file_id",
		},
		common.Tool{
			Tool: mcp.NewTool("drive_delete_file",
				mcp.WithDescription("Permanently delete a file, skipping the trash. This cannot be undone."),
				common.WithHints(false, true, true),
				fileIDArg(),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteFile(ctx, request, sc)
			},
			ResourceArg: "file_id",
		},
	)
}

func handleListFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	files, next, err := sc.DriveClient().ListFiles(ctx, drive.ListOptions{
		Query:          request.GetString("query", ""),
		PageSize:       common.PageSize(request),
		PageToken:      common.PageToken(request),
		OrderBy:        request.GetString("order_by", ""),
		IncludeTrashed: request.GetBool("include_trashed", false),
	})
	if err != nil {
		return nil, err
	}

	page := render.NewPage(files, next)
	return render.Result(format, page, func() string { return formatFileList(page) }, render.DataTruncatedMarker)
}

func handleGetFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	fileID, err := common.RequiredString(request, "file_id")
	if err != nil {
		return nil, err
	}
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	file, err := sc.DriveClient().GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	return render.Result(format, file, func() string { return formatFile(file) }, render.DataTruncatedMarker)
}

func handleDeleteFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	fileID, err := common.RequiredString(request, "file_id")
	if err != nil {
		return nil, err
	}

	if err := sc.DriveClient().DeleteFile(ctx, fileID); err != nil {
		return nil, err
	}

	result := drive.DeleteResult{FileID: fileID, Deleted: true}
	return render.Result(render.FormatMarkdown, result, func() string {
		return "File `" + fileID + "` deleted permanently.\n"
	}, render.DataTruncatedMarker)
}
