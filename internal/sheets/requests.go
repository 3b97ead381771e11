package sheets

import (
	"fmt"

	sheets "google.golang.org/api/sheets/v4"
)

const valueInputUserEntered = "USER_ENTERED"

// Dimension names accepted by InsertDimension.
const (
	DimensionRows    = "ROWS"
	DimensionColumns = "COLUMNS"
)

// QualifyRange builds an A1 range qualified with the sheet name.
// An empty range addresses the whole sheet.
func QualifyRange(sheet, rangeA1 string) string {
	if rangeA1 == "" {
		return sheet
	}
	return fmt.Sprintf("%s!%s", sheet, rangeA1)
}

// findSheet scans for a sheet by title. Matching is exact and
// case sensitive; "sheet1" does not match "Sheet1".
func findSheet(all []*sheets.Sheet, title string) (*sheets.SheetProperties, bool) {
	for _, sheet := range all {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet.Properties, true
		}
	}
	return nil, false
}

// insertDimensionRequest builds an insert for count rows or columns at
// start. Inheriting formatting from the preceding row or column only makes
// sense when one exists, so inheritance is off for insertions at index 0.
func insertDimensionRequest(sheetID int64, dimension string, start, count int64) *sheets.Request {
	return &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  dimension,
				StartIndex: start,
				EndIndex:   start + count,
			},
			InheritFromBefore: start > 0,
		},
	}
}

// renameSheetRequest updates only the title field of a sheet.
func renameSheetRequest(sheetID int64, newTitle string) *sheets.Request {
	return &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: sheetID,
				Title:   newTitle,
			},
			Fields: "title",
		},
	}
}

// addSheetRequest creates a new sheet tab with default grid dimensions.
func addSheetRequest(title string) *sheets.Request {
	return &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: title,
			},
		},
	}
}
