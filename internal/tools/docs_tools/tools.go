package docs_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	docs "google.golang.org/api/docs/v1"

	docsclient "github.com/teemow/gworkspace-mcp/internal/docs"
	"github.com/teemow/gworkspace-mcp/internal/render"
	"github.com/teemow/gworkspace-mcp/internal/server"
	"github.com/teemow/gworkspace-mcp/internal/tools/common"
)

// RegisterDocsTools registers all Google Docs-related tools with the MCP server
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	return common.AddTools(s, sc, readOnly,
		common.Tool{
			Tool: mcp.NewTool("docs_get_document",
				mcp.WithDescription("Get a Google Doc by ID. Returns the title, revision and the document text; tables are shown as [TABLE]."),
				common.ReadOnlyHints(),
				mcp.WithString("document_id",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("The ID of the Google Doc (the long string in the document URL)"),
				),
				common.WithResponseFormat(),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetDocument(ctx, request, sc)
			},
			ResourceArg: "document_id",
		},
		common.Tool{
			Tool: mcp.NewTool("docs_create_document",
				mcp.WithDescription("Create a new Google Doc, optionally with initial text"),
				common.WithHints(false, false, false),
				mcp.WithString("title",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("Title of the new document"),
				),
				mcp.WithString("content",
					mcp.Description("Initial text inserted at the start of the body"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateDocument(ctx, request, sc)
			},
		},
		common.Tool{
			Tool: mcp.NewTool("docs_append_text",
				mcp.WithDescription("Append text to the end of a Google Doc body"),
				common.WithHints(false, false, false),
				mcp.WithString("document_id",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("The ID of the Google Doc"),
				),
				mcp.WithString("text",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("Text to append. Include a leading newline to start a new paragraph."),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleAppendText(ctx, request, sc)
			},
			ResourceArg: "document_id",
		},
		common.Tool{
			Tool: mcp.NewTool("docs_batch_update",
				mcp.WithDescription("Apply Google Docs API batchUpdate requests (insertText, deleteContentRange, replaceAllText, updateTextStyle, ...) to a document. Requests are applied atomically in order."),
				common.WithHints(false, true, false),
				mcp.WithString("document_id",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("The ID of the Google Doc"),
				),
				mcp.WithArray("requests",
					mcp.Required(),
					mcp.Items(map[string]any{"type": "object"}),
					mcp.Description("Docs API Request objects, e.g. [{\"replaceAllText\": {\"containsText\": {\"text\": \"foo\"}, \"replaceText\": \"bar\"}}]"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleBatchUpdate(ctx, request, sc)
			},
			ResourceArg: "document_id",
		},
	)
}

func handleGetDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	documentID, err := common.RequiredString(request, "document_id")
	if err != nil {
		return nil, err
	}
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	doc, err := sc.DocsClient().GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	result := docsclient.NewDocument(doc)
	return render.Result(format, result, func() string { return formatDocument(result) }, render.ContentTruncatedMarker)
}

func handleCreateDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	title, err := common.RequiredString(request, "title")
	if err != nil {
		return nil, err
	}
	content := request.GetString("content", "")

	client := sc.DocsClient()
	doc, err := client.CreateDocument(ctx, title)
	if err != nil {
		return nil, err
	}

	result := docsclient.UpdateResult{
		DocumentID: doc.DocumentId,
		Title:      render.OrDefault(doc.Title, render.Untitled),
		URL:        docsclient.DocumentURL(doc.DocumentId),
		RevisionID: doc.RevisionId,
	}

	if content != "" {
		resp, err := client.InsertText(ctx, doc.DocumentId, content, 1)
		if err != nil {
			return nil, fmt.Errorf("document %s was created but its content could not be inserted: %w", doc.DocumentId, err)
		}
		result.RepliesCount = len(resp.Replies)
		if resp.WriteControl != nil && resp.WriteControl.RequiredRevisionId != "" {
			result.RevisionID = resp.WriteControl.RequiredRevisionId
		}
	}

	return render.Result(render.FormatMarkdown, result, func() string {
		return formatUpdate("Document created", result)
	}, render.DataTruncatedMarker)
}

func handleAppendText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	documentID, err := common.RequiredString(request, "document_id")
	if err != nil {
		return nil, err
	}
	text, err := common.RequiredString(request, "text")
	if err != nil {
		return nil, err
	}

	resp, err := sc.DocsClient().AppendText(ctx, documentID, text)
	if err != nil {
		return nil, err
	}

	result := docsclient.NewUpdateResult(documentID, resp)
	return render.Result(render.FormatMarkdown, result, func() string {
		return formatUpdate(fmt.Sprintf("Appended %d characters", len([]rune(text))), result)
	}, render.DataTruncatedMarker)
}

func handleBatchUpdate(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	documentID, err := common.RequiredString(request, "document_id")
	if err != nil {
		return nil, err
	}

	var requests []*docs.Request
	if err := common.DecodeArgument(request, "requests", &requests); err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, &common.ValidationError{Tool: request.Params.Name, Problems: []string{"/requests: at least one request is required"}}
	}

	resp, err := sc.DocsClient().BatchUpdate(ctx, documentID, requests)
	if err != nil {
		return nil, err
	}

	result := docsclient.NewUpdateResult(documentID, resp)
	return render.Result(render.FormatMarkdown, result, func() string {
		return formatUpdate(fmt.Sprintf("Applied %d requests", len(requests)), result)
	}, render.DataTruncatedMarker)
}
