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

// registerStructureTools registers the tools that change sheet structure:
// inserting rows and columns, copying, and renaming.
func registerStructureTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	addRowsTool := mcp.NewTool("add_rows",
		mcp.WithDescription("Insert empty rows into a sheet. Omit start_row to insert at the top."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("sheet",
			mcp.Required(),
			mcp.Description("The name of the sheet tab"),
		),
		mcp.WithNumber("count",
			mcp.Required(),
			mcp.Description("Number of rows to insert"),
		),
		mcp.WithNumber("start_row",
			mcp.Description("0-based row index to insert at (default: 0). Inserted rows inherit formatting from the row above when the index is positive."),
		),
	)

	s.AddTool(addRowsTool, common.InstrumentedToolHandlerWithService(
		"add_rows", "sheets", "insert_dimension", sc,
		insertDimensionHandler(sc, sheets.DimensionRows, "start_row")))

	addColumnsTool := mcp.NewTool("add_columns",
		mcp.WithDescription("Insert empty columns into a sheet. Omit start_column to insert at the left edge."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("sheet",
			mcp.Required(),
			mcp.Description("The name of the sheet tab"),
		),
		mcp.WithNumber("count",
			mcp.Required(),
			mcp.Description("Number of columns to insert"),
		),
		mcp.WithNumber("start_column",
			mcp.Description("0-based column index to insert at (default: 0). Inserted columns inherit formatting from the column to the left when the index is positive."),
		),
	)

	s.AddTool(addColumnsTool, common.InstrumentedToolHandlerWithService(
		"add_columns", "sheets", "insert_dimension", sc,
		insertDimensionHandler(sc, sheets.DimensionColumns, "start_column")))

	listSheetsTool := mcp.NewTool("list_sheets",
		mcp.WithDescription("List all sheet tab names in a spreadsheet, in display order."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
	)

	s.AddTool(listSheetsTool, common.InstrumentedToolHandlerWithService(
		"list_sheets", "sheets", "get_metadata", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			spreadsheetID, err := common.RequireString(args, "spreadsheet_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			titles, err := sc.Sheets().SheetTitles(ctx, spreadsheetID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list sheets: %v", err)), nil
			}
			return common.JSONResult(titles)
		}))

	copySheetTool := mcp.NewTool("copy_sheet",
		mcp.WithDescription("Copy a sheet from one spreadsheet to another, renaming the copy to the requested title."),
		mcp.WithString("src_spreadsheet",
			mcp.Required(),
			mcp.Description("The ID of the source spreadsheet"),
		),
		mcp.WithString("src_sheet",
			mcp.Required(),
			mcp.Description("The name of the sheet to copy"),
		),
		mcp.WithString("dst_spreadsheet",
			mcp.Required(),
			mcp.Description("The ID of the destination spreadsheet"),
		),
		mcp.WithString("dst_sheet",
			mcp.Required(),
			mcp.Description("The title for the copied sheet in the destination spreadsheet"),
		),
	)

	s.AddTool(copySheetTool, common.InstrumentedToolHandlerWithService(
		"copy_sheet", "sheets", "copy_sheet", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			srcSpreadsheet, err := common.RequireString(args, "src_spreadsheet")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			srcSheet, err := common.RequireString(args, "src_sheet")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			dstSpreadsheet, err := common.RequireString(args, "dst_spreadsheet")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			dstSheet, err := common.RequireString(args, "dst_sheet")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			props, err := sc.Sheets().SheetProperties(ctx, srcSpreadsheet, srcSheet)
			if err != nil {
				if sheets.IsNotFound(err) {
					return common.NotFoundResult(err)
				}
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve source sheet: %v", err)), nil
			}

			copied, err := sc.Sheets().CopySheetTo(ctx, srcSpreadsheet, props.SheetId, dstSpreadsheet)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to copy sheet: %v", err)), nil
			}

			// The API names the copy after its source ("Copy of X"); a
			// second call fixes the title only when it differs
			var renamed *sheetsapi.BatchUpdateSpreadsheetResponse
			if copied.Title != dstSheet {
				renamed, err = sc.Sheets().RenameSheet(ctx, dstSpreadsheet, copied.SheetId, dstSheet)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Copied sheet but failed to rename it: %v", err)), nil
				}
			}

			return common.JSONResult(copySheetResult(copied, renamed))
		}))

	renameSheetTool := mcp.NewTool("rename_sheet",
		mcp.WithDescription("Rename a sheet tab within a spreadsheet."),
		mcp.WithString("spreadsheet",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("sheet",
			mcp.Required(),
			mcp.Description("The current name of the sheet"),
		),
		mcp.WithString("new_name",
			mcp.Required(),
			mcp.Description("The new name for the sheet"),
		),
	)

	s.AddTool(renameSheetTool, common.InstrumentedToolHandlerWithService(
		"rename_sheet", "sheets", "rename_sheet", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			spreadsheetID, err := common.RequireString(args, "spreadsheet")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			sheet, err := common.RequireString(args, "sheet")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			newName, err := common.RequireString(args, "new_name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			props, err := sc.Sheets().SheetProperties(ctx, spreadsheetID, sheet)
			if err != nil {
				if sheets.IsNotFound(err) {
					return common.NotFoundResult(err)
				}
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve sheet: %v", err)), nil
			}

			resp, err := sc.Sheets().RenameSheet(ctx, spreadsheetID, props.SheetId, newName)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to rename sheet: %v", err)), nil
			}

			return common.JSONResult(resp)
		}))

	return nil
}

// copySheetResult embeds the raw copy and rename payloads; rename is
// absent when the copy already landed with the requested title.
func copySheetResult(copied *sheetsapi.SheetProperties, renamed *sheetsapi.BatchUpdateSpreadsheetResponse) map[string]any {
	response := map[string]any{"copy": copied}
	if renamed != nil {
		response["rename"] = renamed
	}
	return response
}

// insertDimensionHandler builds the shared handler for add_rows and
// add_columns; the two tools differ only in dimension and argument name.
func insertDimensionHandler(sc *server.ServerContext, dimension, startKey string) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		spreadsheetID, err := common.RequireString(args, "spreadsheet_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sheet, err := common.RequireString(args, "sheet")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		count, err := common.RequireInt(args, "count")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if count < 1 {
			return mcp.NewToolResultError("count must be at least 1"), nil
		}
		start, err := common.OptionalInt(args, startKey, 0)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if start < 0 {
			return mcp.NewToolResultError(fmt.Sprintf("%s must not be negative", startKey)), nil
		}

		props, err := sc.Sheets().SheetProperties(ctx, spreadsheetID, sheet)
		if err != nil {
			if sheets.IsNotFound(err) {
				return common.NotFoundResult(err)
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve sheet: %v", err)), nil
		}

		resp, err := sc.Sheets().InsertDimension(ctx, spreadsheetID, props.SheetId, dimension, start, count)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to insert %s: %v", dimension, err)), nil
		}

		// The remote structural-update summary is the tool contract
		return common.JSONResult(resp)
	}
}
