package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpreadsheetQuery(t *testing.T) {
	tests := []struct {
		name     string
		folderID string
		want     string
	}{
		{
			name:     "whole drive",
			folderID: "",
			want:     "mimeType='application/vnd.google-apps.spreadsheet'",
		},
		{
			name:     "scoped to folder",
			folderID: "folder-abc",
			want:     "mimeType='application/vnd.google-apps.spreadsheet' and 'folder-abc' in parents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spreadsheetQuery(tt.folderID))
		})
	}
}
