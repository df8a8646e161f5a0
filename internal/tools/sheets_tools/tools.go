package sheets_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/teemow/gworkspace-mcp/internal/render"
	"github.com/teemow/gworkspace-mcp/internal/server"
	sheetsclient "github.com/teemow/gworkspace-mcp/internal/sheets"
	"github.com/teemow/gworkspace-mcp/internal/tools/common"
)

func spreadsheetIDArg() mcp.ToolOption {
	return mcp.WithString("spreadsheet_id",
		mcp.Required(),
		mcp.MinLength(1),
		mcp.Description("The ID of the spreadsheet (the long string in the spreadsheet URL)"),
	)
}

func rangeArg(description string) mcp.ToolOption {
	return mcp.WithString("range",
		mcp.Required(),
		mcp.MinLength(1),
		mcp.Description(description),
	)
}

func valuesArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithArray("values",
			mcp.Required(),
			mcp.Items(map[string]any{"type": "array"}),
			mcp.Description("Rows of cell values, e.g. [[\"Name\", \"Score\"], [\"Ada\", 42]]"),
		),
		mcp.WithString("value_input_option",
			mcp.Enum(sheetsclient.InputRaw, sheetsclient.InputUserEntered),
			mcp.DefaultString(sheetsclient.InputUserEntered),
			mcp.Description("RAW stores values as given; USER_ENTERED parses them as if typed into the UI (formulas, dates)"),
		),
	}
}

// RegisterSheetsTools registers all Google Sheets-related tools with the MCP server
func RegisterSheetsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	return common.AddTools(s, sc, readOnly,
		common.Tool{
			Tool: mcp.NewTool("sheets_get_spreadsheet",
				mcp.WithDescription("Get spreadsheet metadata: title, locale, time zone and the list of sheets with their sizes"),
				common.ReadOnlyHints(),
				spreadsheetIDArg(),
				common.WithResponseFormat(),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetSpreadsheet(ctx, request, sc)
			},
			ResourceArg: "spreadsheet_id",
		},
		common.Tool{
			Tool: mcp.NewTool("sheets_create_spreadsheet",
				mcp.WithDescription("Create a new spreadsheet, optionally with named sheets"),
				common.WithHints(false, false, false),
				mcp.WithString("title",
					mcp.Required(),
					mcp.MinLength(1),
					mcp.Description("Title of the new spreadsheet"),
				),
				mcp.WithArray("sheet_titles",
					mcp.Items(map[string]any{"type": "string", "minLength": 1}),
					mcp.Description("Titles of the sheets to create. Defaults to a single Sheet1."),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateSpreadsheet(ctx, request, sc)
			},
		},
		common.Tool{
			Tool: mcp.NewTool("sheets_get_values",
				mcp.WithDescription("Read cell values from a range in A1 notation"),
				common.ReadOnlyHints(),
				spreadsheetIDArg(),
				rangeArg("Range in A1 notation, e.g. 'Sheet1!A1:D10' or 'Sheet1'"),
				mcp.WithString("major_dimension",
					mcp.Enum(sheetsclient.DimensionRows, sheetsclient.DimensionColumns),
					mcp.DefaultString(sheetsclient.DimensionRows),
					mcp.Description("Whether the returned grid is organized by rows or by columns"),
				),
				common.WithResponseFormat(),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetValues(ctx, request, sc)
			},
			ResourceArg: "spreadsheet_id",
		},
		common.Tool{
			Tool: common.NewTool("sheets_update_values", []mcp.ToolOption{
				mcp.WithDescription("Overwrite cell values in a range"),
				common.WithHints(false, false, true),
				spreadsheetIDArg(),
				rangeArg("Top-left anchored range to write, e.g. 'Sheet1!A1'"),
			}, valuesArgs()...),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUpdateValues(ctx, request, sc)
			},
			ResourceArg: "spreadsheet_id",
		},
		common.Tool{
			Tool: common.NewTool("sheets_append_values", []mcp.ToolOption{
				mcp.WithDescription("Append rows after the last row of the table found in a range"),
				common.WithHints(false, false, false),
				spreadsheetIDArg(),
				rangeArg("Range used to find the table to append to, e.g. 'Sheet1!A:D'"),
			}, valuesArgs()...),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleAppendValues(ctx, request, sc)
			},
			ResourceArg: "spreadsheet_id",
		},
		common.Tool{
			Tool: mcp.NewTool("sheets_clear_values",
				mcp.WithDescription("Clear the values of a range. Formatting is kept."),
				common.WithHints(false, true, true),
				spreadsheetIDArg(),
				rangeArg("Range in A1 notation to clear"),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleClearValues(ctx, request, sc)
			},
			ResourceArg: "spreadsheet_id",
		},
		common.Tool{
			Tool: mcp.NewTool("sheets_batch_update",
				mcp.WithDescription("Apply Google Sheets API batchUpdate requests (addSheet, deleteSheet, updateSheetProperties, repeatCell, ...) to a spreadsheet. Requests are applied atomically in order."),
				common.WithHints(false, true, false),
				spreadsheetIDArg(),
				mcp.WithArray("requests",
					mcp.Required(),
					mcp.Items(map[string]any{"type": "object"}),
					mcp.Description("Sheets API Request objects, e.g. [{\"addSheet\": {\"properties\": {\"title\": \"Summary\"}}}]"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleBatchUpdate(ctx, request, sc)
			},
			ResourceArg: "spreadsheet_id",
		},
	)
}

func handleGetSpreadsheet(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	spreadsheetID, err := common.RequiredString(request, "spreadsheet_id")
	if err != nil {
		return nil, err
	}
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}

	spreadsheet, err := sc.SheetsClient().GetSpreadsheet(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}

	result := sheetsclient.NewSpreadsheet(spreadsheet)
	return render.Result(format, result, func() string { return formatSpreadsheet(result) }, render.DataTruncatedMarker)
}

func handleCreateSpreadsheet(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	title, err := common.RequiredString(request, "title")
	if err != nil {
		return nil, err
	}
	sheetTitles := common.StringSlice(request, "sheet_titles")

	spreadsheet, err := sc.SheetsClient().CreateSpreadsheet(ctx, title, sheetTitles)
	if err != nil {
		return nil, err
	}

	result := sheetsclient.NewSpreadsheet(spreadsheet)
	return render.Result(render.FormatMarkdown, result, func() string {
		return "Spreadsheet created\n\n" + formatSpreadsheet(result)
	}, render.DataTruncatedMarker)
}

func handleGetValues(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	spreadsheetID, err := common.RequiredString(request, "spreadsheet_id")
	if err != nil {
		return nil, err
	}
	readRange, err := common.RequiredString(request, "range")
	if err != nil {
		return nil, err
	}
	format, err := common.ResponseFormat(request)
	if err != nil {
		return nil, err
	}
	dimension := request.GetString("major_dimension", sheetsclient.DimensionRows)

	vr, err := sc.SheetsClient().GetValues(ctx, spreadsheetID, readRange, dimension)
	if err != nil {
		return nil, err
	}

	result := sheetsclient.NewValues(spreadsheetID, vr)
	return render.Result(format, result, func() string { return formatValues(result) }, render.DataTruncatedMarker)
}

func handleUpdateValues(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	spreadsheetID, writeRange, values, inputOption, err := writeArgs(request)
	if err != nil {
		return nil, err
	}

	resp, err := sc.SheetsClient().UpdateValues(ctx, spreadsheetID, writeRange, values, inputOption)
	if err != nil {
		return nil, err
	}

	result := sheetsclient.NewUpdateResult(resp)
	return render.Result(render.FormatMarkdown, result, func() string {
		return formatWrite("Values updated", result)
	}, render.DataTruncatedMarker)
}

func handleAppendValues(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	spreadsheetID, appendRange, values, inputOption, err := writeArgs(request)
	if err != nil {
		return nil, err
	}

	resp, err := sc.SheetsClient().AppendValues(ctx, spreadsheetID, appendRange, values, inputOption)
	if err != nil {
		return nil, err
	}

	result := sheetsclient.NewAppendResult(resp)
	return render.Result(render.FormatMarkdown, result, func() string {
		return formatWrite("Values appended", result)
	}, render.DataTruncatedMarker)
}

func handleClearValues(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	spreadsheetID, err := common.RequiredString(request, "spreadsheet_id")
	if err != nil {
		return nil, err
	}
	clearRange, err := common.RequiredString(request, "range")
	if err != nil {
		return nil, err
	}

	resp, err := sc.SheetsClient().ClearValues(ctx, spreadsheetID, clearRange)
	if err != nil {
		return nil, err
	}

	result := sheetsclient.NewClearResult(resp)
	return render.Result(render.FormatMarkdown, result, func() string {
		return formatWrite("Values cleared", result)
	}, render.DataTruncatedMarker)
}

func handleBatchUpdate(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	spreadsheetID, err := common.RequiredString(request, "spreadsheet_id")
	if err != nil {
		return nil, err
	}

	var requests []*sheets.Request
	if err := common.DecodeArgument(request, "requests", &requests); err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, &common.ValidationError{Tool: request.Params.Name, Problems: []string{"/requests: at least one request is required"}}
	}

	resp, err := sc.SheetsClient().BatchUpdate(ctx, spreadsheetID, requests)
	if err != nil {
		return nil, err
	}

	result := sheetsclient.BatchUpdateResult{SpreadsheetID: spreadsheetID, RepliesCount: len(resp.Replies)}
	return render.Result(render.FormatMarkdown, result, func() string {
		return fmt.Sprintf("Applied %d requests to spreadsheet %s\n", len(requests), spreadsheetID)
	}, render.DataTruncatedMarker)
}

// writeArgs reads the arguments shared by update and append.
func writeArgs(request mcp.CallToolRequest) (spreadsheetID, writeRange string, values [][]interface{}, inputOption string, err error) {
	if spreadsheetID, err = common.RequiredString(request, "spreadsheet_id"); err != nil {
		return
	}
	if writeRange, err = common.RequiredString(request, "range"); err != nil {
		return
	}
	if err = common.DecodeArgument(request, "values", &values); err != nil {
		return
	}
	if len(values) == 0 {
		err = &common.ValidationError{Tool: request.Params.Name, Problems: []string{"/values: at least one row is required"}}
		return
	}
	inputOption = request.GetString("value_input_option", sheetsclient.InputUserEntered)
	return
}
