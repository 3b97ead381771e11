package logging

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrWithError(t *testing.T) {
	attr := Err(errors.New("something failed"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "something failed", attr.Value.String())
}

func TestErrWithNil(t *testing.T) {
	attr := Err(nil)
	// Empty groups are elided by slog handlers
	assert.Equal(t, "", attr.Key)
	assert.Equal(t, slog.KindGroup, attr.Value.Kind())
	assert.Empty(t, attr.Value.Group())
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "empty token", token: "", want: "<empty>"},
		{name: "short token", token: "abc", want: "[token:3 chars]"},
		{name: "long token", token: "ya29.a0AfH6SMBxxxxxxxxxxxxxxxxxxx", want: "[token:33 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeToken(tt.token))
		})
	}
}

func TestAttributeKeys(t *testing.T) {
	assert.Equal(t, KeyOperation, Operation("values_get").Key)
	assert.Equal(t, "values_get", Operation("values_get").Value.String())
	assert.Equal(t, KeySpreadsheet, Spreadsheet("abc123").Key)
	assert.Equal(t, KeySheet, Sheet("Sheet1").Key)
	assert.Equal(t, KeyStrategy, Strategy("service_account").Key)
	assert.Equal(t, KeyStatus, Status(StatusSuccess).Key)
	assert.Equal(t, KeyTool, Tool("get_sheet_data").Key)
	assert.Equal(t, KeyService, Service("sheets").Key)
}
