package spreadsheet_tools

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/avollmer/gsheets-mcp/internal/server"
)

func TestRegisterSpreadsheetTools(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.0",
		mcpserver.WithToolCapabilities(true),
	)
	sc := server.NewServerContext(context.Background(), nil, nil, "")
	t.Cleanup(func() { _ = sc.Shutdown() })

	require.NoError(t, RegisterSpreadsheetTools(s, sc))
}

func TestCreateSheetResultShape(t *testing.T) {
	props := &sheetsapi.SheetProperties{
		SheetId: 42,
		Title:   "Expenses",
		Index:   3,
	}

	result := createSheetResult("spreadsheet-1", props)

	assert.Equal(t, map[string]any{
		"sheetId":       int64(42),
		"title":         "Expenses",
		"index":         int64(3),
		"spreadsheetId": "spreadsheet-1",
	}, result)
}
