package sheets

import (
	"errors"
	"fmt"

	sheets "google.golang.org/api/sheets/v4"
)

// SheetNotFoundError reports a sheet title that does not exist in the
// target spreadsheet. Its message is surfaced verbatim to tool callers,
// so the phrasing is part of the tool contract.
type SheetNotFoundError struct {
	Title string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("Sheet '%s' not found", e.Title)
}

// IsNotFound reports whether err is a sheet lookup miss.
func IsNotFound(err error) bool {
	var notFound *SheetNotFoundError
	return errors.As(err, &notFound)
}

// SheetInfo is the per-sheet slice of spreadsheet metadata exposed by
// the info tool and resource.
type SheetInfo struct {
	Title          string                 `json:"title"`
	SheetID        int64                  `json:"sheetId"`
	GridProperties *sheets.GridProperties `json:"gridProperties"`
}

// SpreadsheetInfo is the metadata projection for a whole spreadsheet.
type SpreadsheetInfo struct {
	Title  string      `json:"title"`
	Sheets []SheetInfo `json:"sheets"`
}
