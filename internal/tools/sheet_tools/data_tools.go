package sheet_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/avollmer/gsheets-mcp/internal/server"
	"github.com/avollmer/gsheets-mcp/internal/sheets"
	"github.com/avollmer/gsheets-mcp/internal/tools/common"
)

// registerDataTools registers the cell read and write tools.
func registerDataTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getSheetDataTool := mcp.NewTool("get_sheet_data",
		mcp.WithDescription("Read data from a sheet. Omit the range to read the entire sheet."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet (found in its URL)"),
		),
		mcp.WithString("sheet",
			mcp.Required(),
			mcp.Description("The name of the sheet tab to read from"),
		),
		mcp.WithString("range",
			mcp.Description("Cell range in A1 notation (e.g. 'A1:C10'). Omit to read the whole sheet."),
		),
		mcp.WithBoolean("include_grid_data",
			mcp.Description("Include cell formatting and metadata in addition to values (default: false)"),
		),
	)

	s.AddTool(getSheetDataTool, common.InstrumentedToolHandlerWithService(
		"get_sheet_data", "sheets", "get_values", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			spreadsheetID, err := common.RequireString(args, "spreadsheet_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			sheet, err := common.RequireString(args, "sheet")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			rangeA1, err := common.OptionalString(args, "range", "")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			includeGridData, err := common.OptionalBool(args, "include_grid_data", false)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			fullRange := sheets.QualifyRange(sheet, rangeA1)

			if includeGridData {
				grid, err := sc.Sheets().GridData(ctx, spreadsheetID, fullRange)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to read grid data: %v", err)), nil
				}
				return common.JSONResult(grid)
			}

			values, err := sc.Sheets().Values(ctx, spreadsheetID, fullRange)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to read values: %v", err)), nil
			}
			return common.JSONResult(valueRows(values))
		}))

	updateCellsTool := mcp.NewTool("update_cells",
		mcp.WithDescription("Write a 2D array of values to a range. Values are parsed as if typed by a user, so formulas and dates work."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("sheet",
			mcp.Required(),
			mcp.Description("The name of the sheet tab to write to"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("Cell range in A1 notation (e.g. 'A1:B2')"),
		),
		mcp.WithObject("data",
			mcp.Required(),
			mcp.Description("2D array of cell values, rows first (e.g. [[\"a\", 1], [\"b\", 2]])"),
		),
	)

	s.AddTool(updateCellsTool, common.InstrumentedToolHandlerWithService(
		"update_cells", "sheets", "update_values", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			spreadsheetID, err := common.RequireString(args, "spreadsheet_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			sheet, err := common.RequireString(args, "sheet")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			rangeA1, err := common.RequireString(args, "range")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			values, err := common.ToValues(args["data"])
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			fullRange := sheets.QualifyRange(sheet, rangeA1)

			result, err := sc.Sheets().UpdateValues(ctx, spreadsheetID, fullRange, values)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update cells: %v", err)), nil
			}
			return common.JSONResult(result)
		}))

	batchUpdateCellsTool := mcp.NewTool("batch_update_cells",
		mcp.WithDescription("Write multiple ranges of one sheet in a single API call."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("sheet",
			mcp.Required(),
			mcp.Description("The name of the sheet tab to write to"),
		),
		mcp.WithObject("ranges",
			mcp.Required(),
			mcp.Description("Object mapping A1 ranges to 2D arrays of values (e.g. {\"A1:B2\": [[1, 2], [3, 4]]})"),
		),
	)

	s.AddTool(batchUpdateCellsTool, common.InstrumentedToolHandlerWithService(
		"batch_update_cells", "sheets", "batch_update_values", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			spreadsheetID, err := common.RequireString(args, "spreadsheet_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			sheet, err := common.RequireString(args, "sheet")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			ranges, ok := args["ranges"].(map[string]any)
			if !ok {
				return mcp.NewToolResultError("ranges must be an object mapping A1 ranges to 2D arrays"), nil
			}

			data := make([]*sheetsapi.ValueRange, 0, len(ranges))
			for rangeA1, raw := range ranges {
				values, err := common.ToValues(raw)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("invalid data for range %s: %v", rangeA1, err)), nil
				}
				data = append(data, &sheetsapi.ValueRange{
					Range:  sheets.QualifyRange(sheet, rangeA1),
					Values: values,
				})
			}

			result, err := sc.Sheets().BatchUpdateValues(ctx, spreadsheetID, data)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to batch update cells: %v", err)), nil
			}
			return common.JSONResult(result)
		}))

	return nil
}

// valueRows unwraps a read response to the bare row-major cell values.
// The API omits the values field entirely for an empty range; callers
// get an empty array, never null.
func valueRows(vr *sheetsapi.ValueRange) [][]any {
	if vr == nil || vr.Values == nil {
		return [][]any{}
	}
	return vr.Values
}
