package resources

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avollmer/gsheets-mcp/internal/server"
)

func TestParseSpreadsheetURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{name: "valid", uri: "spreadsheet://abc123/info", want: "abc123"},
		{name: "id with dashes", uri: "spreadsheet://1a-2b_3c/info", want: "1a-2b_3c"},
		{name: "wrong scheme", uri: "user://abc123/info", wantErr: true},
		{name: "missing path", uri: "spreadsheet://abc123", wantErr: true},
		{name: "wrong path", uri: "spreadsheet://abc123/data", wantErr: true},
		{name: "empty id", uri: "spreadsheet:///info", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseSpreadsheetURI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestRegisterSpreadsheetResources(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.0",
		mcpserver.WithResourceCapabilities(false, false),
	)
	sc := server.NewServerContext(context.Background(), nil, nil, "")
	t.Cleanup(func() { _ = sc.Shutdown() })

	require.NoError(t, RegisterSpreadsheetResources(s, sc))
}
