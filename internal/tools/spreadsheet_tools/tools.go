package spreadsheet_tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/avollmer/gsheets-mcp/internal/logging"
	"github.com/avollmer/gsheets-mcp/internal/server"
	"github.com/avollmer/gsheets-mcp/internal/tools/common"
)

// RegisterSpreadsheetTools registers the tools that operate on whole
// spreadsheets: discovery, metadata, and creation.
func RegisterSpreadsheetTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getInfoTool := mcp.NewTool("get_spreadsheet_info",
		mcp.WithDescription("Get a spreadsheet's title and the metadata of all its sheet tabs."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet (found in its URL)"),
		),
	)

	s.AddTool(getInfoTool, common.InstrumentedToolHandlerWithService(
		"get_spreadsheet_info", "sheets", "get_metadata", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			spreadsheetID, err := common.RequireString(args, "spreadsheet_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			info, err := sc.Sheets().Info(ctx, spreadsheetID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get spreadsheet info: %v", err)), nil
			}
			return common.JSONResult(info)
		}))

	listSpreadsheetsTool := mcp.NewTool("list_spreadsheets",
		mcp.WithDescription("List spreadsheets in the configured Drive folder, most recently modified first. Searches the whole Drive when no folder is configured."),
	)

	s.AddTool(listSpreadsheetsTool, common.InstrumentedToolHandlerWithService(
		"list_spreadsheets", "drive", "list_files", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			refs, err := sc.Drive().ListSpreadsheets(ctx, sc.FolderID())
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list spreadsheets: %v", err)), nil
			}
			return common.JSONResult(refs)
		}))

	createSpreadsheetTool := mcp.NewTool("create_spreadsheet",
		mcp.WithDescription("Create a new spreadsheet. It is moved into the configured Drive folder when one is set."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title of the new spreadsheet"),
		),
	)

	s.AddTool(createSpreadsheetTool, common.InstrumentedToolHandlerWithService(
		"create_spreadsheet", "sheets", "create_spreadsheet", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			title, err := common.RequireString(args, "title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			spreadsheet, err := sc.Sheets().Create(ctx, title)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create spreadsheet: %v", err)), nil
			}

			folder := "root"
			if folderID := sc.FolderID(); folderID != "" {
				// The spreadsheet exists either way; a failed move is
				// reported in logs, not as a tool failure
				if err := sc.Drive().MoveToFolder(ctx, spreadsheet.SpreadsheetId, folderID); err != nil {
					slog.Warn("failed to move spreadsheet to configured folder",
						logging.Spreadsheet(spreadsheet.SpreadsheetId),
						slog.String("folder_id", folderID),
						logging.Err(err),
					)
				} else {
					folder = folderID
				}
			}

			titles := make([]string, 0, len(spreadsheet.Sheets))
			for _, sheet := range spreadsheet.Sheets {
				if sheet.Properties != nil {
					titles = append(titles, sheet.Properties.Title)
				}
			}

			return common.JSONResult(map[string]any{
				"spreadsheetId": spreadsheet.SpreadsheetId,
				"title":         spreadsheet.Properties.Title,
				"sheets":        titles,
				"folder":        folder,
			})
		}))

	createSheetTool := mcp.NewTool("create_sheet",
		mcp.WithDescription("Add a new empty sheet tab to an existing spreadsheet."),
		mcp.WithString("spreadsheet_id",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title of the new sheet tab"),
		),
	)

	s.AddTool(createSheetTool, common.InstrumentedToolHandlerWithService(
		"create_sheet", "sheets", "add_sheet", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			spreadsheetID, err := common.RequireString(args, "spreadsheet_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			title, err := common.RequireString(args, "title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			props, err := sc.Sheets().AddSheet(ctx, spreadsheetID, title)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create sheet: %v", err)), nil
			}

			return common.JSONResult(createSheetResult(spreadsheetID, props))
		}))

	return nil
}

// createSheetResult shapes the add-sheet response, echoing back the
// spreadsheet the new tab was created in.
func createSheetResult(spreadsheetID string, props *sheetsapi.SheetProperties) map[string]any {
	return map[string]any{
		"sheetId":       props.SheetId,
		"title":         props.Title,
		"index":         props.Index,
		"spreadsheetId": spreadsheetID,
	}
}
