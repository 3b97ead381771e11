package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/avollmer/gsheets-mcp/internal/server"
)

// RegisterSpreadsheetResources registers the spreadsheet metadata resource.
// It exposes the same projection as the get_spreadsheet_info tool, so
// clients can subscribe to spreadsheet structure without a tool call.
func RegisterSpreadsheetResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	infoTemplate := mcp.NewResourceTemplate(
		"spreadsheet://{spreadsheet_id}/info",
		"Spreadsheet Info",
		mcp.WithTemplateDescription("Title and sheet metadata for a spreadsheet"),
		mcp.WithTemplateMIMEType("application/json"),
	)

	s.AddResourceTemplate(infoTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleSpreadsheetInfo(ctx, request, sc)
	})

	return nil
}

// parseSpreadsheetURI extracts the spreadsheet ID from a
// spreadsheet://<id>/info URI.
func parseSpreadsheetURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, "spreadsheet://")
	if !ok {
		return "", fmt.Errorf("unsupported resource URI: %s", uri)
	}

	id, suffix, ok := strings.Cut(rest, "/")
	if !ok || suffix != "info" {
		return "", fmt.Errorf("unsupported spreadsheet resource path: %s", uri)
	}
	if id == "" {
		return "", fmt.Errorf("spreadsheet ID missing from URI: %s", uri)
	}
	return id, nil
}

func handleSpreadsheetInfo(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	spreadsheetID, err := parseSpreadsheetURI(request.Params.URI)
	if err != nil {
		return nil, err
	}

	info, err := sc.Sheets().Info(ctx, spreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet info: %w", err)
	}

	jsonData, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spreadsheet info: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
