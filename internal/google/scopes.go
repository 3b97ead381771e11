package google

import (
	drive "google.golang.org/api/drive/v3"
	sheets "google.golang.org/api/sheets/v4"
)

// Scopes returns the OAuth scopes the server requires.
// Both services are always requested so a single credential covers every tool.
func Scopes() []string {
	return []string{
		sheets.SpreadsheetsScope,
		drive.DriveScope,
	}
}
