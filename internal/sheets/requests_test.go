package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sheets "google.golang.org/api/sheets/v4"
)

func sheetWithTitle(title string, id int64) *sheets.Sheet {
	return &sheets.Sheet{
		Properties: &sheets.SheetProperties{Title: title, SheetId: id},
	}
}

func TestQualifyRange(t *testing.T) {
	tests := []struct {
		name    string
		sheet   string
		rangeA1 string
		want    string
	}{
		{name: "sheet and range", sheet: "Sheet1", rangeA1: "A1:C10", want: "Sheet1!A1:C10"},
		{name: "empty range addresses whole sheet", sheet: "Sheet1", rangeA1: "", want: "Sheet1"},
		{name: "single cell", sheet: "Data", rangeA1: "B2", want: "Data!B2"},
		{name: "sheet with spaces", sheet: "Q3 Report", rangeA1: "A1:B2", want: "Q3 Report!A1:B2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualifyRange(tt.sheet, tt.rangeA1))
		})
	}
}

func TestFindSheet(t *testing.T) {
	all := []*sheets.Sheet{
		sheetWithTitle("Sheet1", 0),
		sheetWithTitle("Data", 42),
		sheetWithTitle("data", 43),
	}

	t.Run("exact match", func(t *testing.T) {
		props, ok := findSheet(all, "Data")
		require.True(t, ok)
		assert.Equal(t, int64(42), props.SheetId)
	})

	t.Run("case sensitive", func(t *testing.T) {
		props, ok := findSheet(all, "data")
		require.True(t, ok)
		assert.Equal(t, int64(43), props.SheetId)

		_, ok = findSheet(all, "DATA")
		assert.False(t, ok)
	})

	t.Run("substring does not match", func(t *testing.T) {
		_, ok := findSheet(all, "Dat")
		assert.False(t, ok)
		_, ok = findSheet(all, "Sheet")
		assert.False(t, ok)
	})

	t.Run("missing title", func(t *testing.T) {
		_, ok := findSheet(all, "Archive")
		assert.False(t, ok)
	})

	t.Run("nil properties skipped", func(t *testing.T) {
		_, ok := findSheet([]*sheets.Sheet{{}}, "Sheet1")
		assert.False(t, ok)
	})
}

func TestInsertDimensionRequest(t *testing.T) {
	t.Run("insertion at zero disables inheritance", func(t *testing.T) {
		req := insertDimensionRequest(7, DimensionRows, 0, 3)
		require.NotNil(t, req.InsertDimension)

		assert.False(t, req.InsertDimension.InheritFromBefore)
		assert.Equal(t, int64(0), req.InsertDimension.Range.StartIndex)
		assert.Equal(t, int64(3), req.InsertDimension.Range.EndIndex)
		assert.Equal(t, DimensionRows, req.InsertDimension.Range.Dimension)
		assert.Equal(t, int64(7), req.InsertDimension.Range.SheetId)
	})

	t.Run("positive start inherits from before", func(t *testing.T) {
		req := insertDimensionRequest(7, DimensionColumns, 2, 5)
		require.NotNil(t, req.InsertDimension)

		assert.True(t, req.InsertDimension.InheritFromBefore)
		assert.Equal(t, int64(2), req.InsertDimension.Range.StartIndex)
		assert.Equal(t, int64(7), req.InsertDimension.Range.EndIndex)
		assert.Equal(t, DimensionColumns, req.InsertDimension.Range.Dimension)
	})
}

func TestRenameSheetRequest(t *testing.T) {
	req := renameSheetRequest(99, "Renamed")
	require.NotNil(t, req.UpdateSheetProperties)

	assert.Equal(t, int64(99), req.UpdateSheetProperties.Properties.SheetId)
	assert.Equal(t, "Renamed", req.UpdateSheetProperties.Properties.Title)
	// Only the title may change; a wider field mask would clobber other properties
	assert.Equal(t, "title", req.UpdateSheetProperties.Fields)
}

func TestAddSheetRequest(t *testing.T) {
	req := addSheetRequest("New Tab")
	require.NotNil(t, req.AddSheet)
	assert.Equal(t, "New Tab", req.AddSheet.Properties.Title)
}

func TestSheetNotFoundError(t *testing.T) {
	err := &SheetNotFoundError{Title: "OldName"}
	assert.Equal(t, "Sheet 'OldName' not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(assert.AnError))
	assert.False(t, IsNotFound(nil))
}
