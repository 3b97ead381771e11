package sheet_tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/avollmer/gsheets-mcp/internal/server"
	"github.com/avollmer/gsheets-mcp/internal/sheets"
	"github.com/avollmer/gsheets-mcp/internal/tools/common"
)

func newTestServer(t *testing.T) (*mcpserver.MCPServer, *server.ServerContext) {
	t.Helper()
	s := mcpserver.NewMCPServer("test", "0.0.0",
		mcpserver.WithToolCapabilities(true),
	)
	sc := server.NewServerContext(context.Background(), nil, nil, "")
	t.Cleanup(func() { _ = sc.Shutdown() })
	return s, sc
}

func TestRegisterSheetTools(t *testing.T) {
	s, sc := newTestServer(t)
	require.NoError(t, RegisterSheetTools(s, sc))
}

func request(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func errorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.False(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

// Argument validation happens before any client call, so these handlers
// are exercised with a context that has no Google clients at all.
func TestInsertDimensionHandler_ArgumentValidation(t *testing.T) {
	_, sc := newTestServer(t)
	handler := insertDimensionHandler(sc, "ROWS", "start_row")

	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{
			name:    "missing spreadsheet_id",
			args:    map[string]any{"sheet": "Sheet1", "count": float64(1)},
			wantErr: "missing required argument: spreadsheet_id",
		},
		{
			name:    "missing sheet",
			args:    map[string]any{"spreadsheet_id": "abc", "count": float64(1)},
			wantErr: "missing required argument: sheet",
		},
		{
			name:    "missing count",
			args:    map[string]any{"spreadsheet_id": "abc", "sheet": "Sheet1"},
			wantErr: "missing required argument: count",
		},
		{
			name: "zero count",
			args: map[string]any{
				"spreadsheet_id": "abc", "sheet": "Sheet1", "count": float64(0),
			},
			wantErr: "count must be at least 1",
		},
		{
			name: "negative start",
			args: map[string]any{
				"spreadsheet_id": "abc", "sheet": "Sheet1",
				"count": float64(1), "start_row": float64(-2),
			},
			wantErr: "start_row must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler(context.Background(), request(tt.args))
			require.NoError(t, err)
			assert.Contains(t, errorText(t, result), tt.wantErr)
		})
	}
}

func TestNotFoundResultShape(t *testing.T) {
	result, err := common.NotFoundResult(&notFoundStub{})
	require.NoError(t, err)

	// Misses surface as a normal result with a structured error payload
	assert.False(t, result.IsError)

	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	assert.Equal(t, "Sheet 'OldName' not found", payload["error"])
}

type notFoundStub struct{}

func (*notFoundStub) Error() string { return "Sheet 'OldName' not found" }

func TestGetSheetDataReturnsBareRows(t *testing.T) {
	rows := valueRows(&sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Range:          "Sheet1!A1:B2",
		Values:         [][]any{{"a", float64(1)}, {"b", float64(2)}},
	})

	result, err := common.JSONResult(rows)
	require.NoError(t, err)

	// Callers get the 2D value array itself, not the API wrapper
	assert.JSONEq(t, `[["a",1],["b",2]]`, resultText(t, result))
}

func TestGetSheetDataEmptyRangeIsEmptyArray(t *testing.T) {
	// The API omits the values field entirely for an empty range
	result, err := common.JSONResult(valueRows(&sheetsapi.ValueRange{Range: "Sheet1"}))
	require.NoError(t, err)
	assert.Equal(t, "[]", resultText(t, result))
}

func TestCopySheetResultEmbedsRawPayloads(t *testing.T) {
	copied := &sheetsapi.SheetProperties{SheetId: 7, Title: "Copy of Data", Index: 2}
	renamed := &sheetsapi.BatchUpdateSpreadsheetResponse{SpreadsheetId: "dst"}

	response := copySheetResult(copied, renamed)
	assert.Same(t, copied, response["copy"])
	assert.Same(t, renamed, response["rename"])
}

func TestCopySheetResultOmitsRenameWhenTitleMatched(t *testing.T) {
	copied := &sheetsapi.SheetProperties{SheetId: 7, Title: "Data"}

	response := copySheetResult(copied, nil)
	assert.NotContains(t, response, "rename")
}

// fakeSheetsAPI serves canned metadata and batch-update responses so
// handlers can run against a real Sheets client without a network.
type fakeSheetsAPI struct {
	metadata    string
	batchUpdate string
}

func (f *fakeSheetsAPI) RoundTrip(req *http.Request) (*http.Response, error) {
	body := f.metadata
	if strings.Contains(req.URL.Path, ":batchUpdate") {
		body = f.batchUpdate
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

func TestInsertDimensionReturnsRemoteSummary(t *testing.T) {
	api := &fakeSheetsAPI{
		metadata:    `{"sheets":[{"properties":{"sheetId":7,"title":"Sheet1"}}]}`,
		batchUpdate: `{"spreadsheetId":"abc","replies":[{}]}`,
	}
	client, err := sheets.NewClient(context.Background(), &http.Client{Transport: api})
	require.NoError(t, err)

	sc := server.NewServerContext(context.Background(), client, nil, "")
	t.Cleanup(func() { _ = sc.Shutdown() })

	handler := insertDimensionHandler(sc, "ROWS", "start_row")
	result, err := handler(context.Background(), request(map[string]any{
		"spreadsheet_id": "abc",
		"sheet":          "Sheet1",
		"count":          float64(2),
	}))
	require.NoError(t, err)

	// The remote summary passes through untouched
	assert.JSONEq(t, `{"spreadsheetId":"abc","replies":[{}]}`, resultText(t, result))
}
