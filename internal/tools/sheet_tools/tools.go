package sheet_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/avollmer/gsheets-mcp/internal/server"
)

// RegisterSheetTools registers all tools that operate on individual sheet
// tabs within a spreadsheet.
func RegisterSheetTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := registerDataTools(s, sc); err != nil {
		return fmt.Errorf("failed to register data tools: %w", err)
	}

	if err := registerStructureTools(s, sc); err != nil {
		return fmt.Errorf("failed to register structure tools: %w", err)
	}

	return nil
}
