package sheets

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Client wraps the Google Sheets API service
type Client struct {
	service *sheets.Service
}

// NewClient creates a new Google Sheets client using an authenticated
// HTTP client from the credential resolver.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return &Client{service: service}, nil
}

// Values reads cell values for a range. The range must already be
// qualified with a sheet name (see QualifyRange).
func (c *Client) Values(ctx context.Context, spreadsheetID, fullRange string) (*sheets.ValueRange, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	result, err := c.service.Spreadsheets.Values.Get(spreadsheetID, fullRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values for %s: %w", fullRange, err)
	}
	return result, nil
}

// GridData reads a range including cell formatting and metadata.
func (c *Client) GridData(ctx context.Context, spreadsheetID, fullRange string) (*sheets.Spreadsheet, error) {
	result, err := c.service.Spreadsheets.Get(spreadsheetID).
		Context(ctx).
		Ranges(fullRange).
		IncludeGridData(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get grid data for %s: %w", fullRange, err)
	}
	return result, nil
}

// UpdateValues writes a block of values to a single range.
// Values are interpreted as if typed by a user, so strings that look like
// numbers, dates, or formulas are converted accordingly.
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, fullRange string, values [][]any) (*sheets.UpdateValuesResponse, error) {
	body := &sheets.ValueRange{Values: values}

	result, err := c.service.Spreadsheets.Values.Update(spreadsheetID, fullRange, body).
		Context(ctx).
		ValueInputOption(valueInputUserEntered).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update values for %s: %w", fullRange, err)
	}
	return result, nil
}

// BatchUpdateValues writes several ranges in one API call.
func (c *Client) BatchUpdateValues(ctx context.Context, spreadsheetID string, data []*sheets.ValueRange) (*sheets.BatchUpdateValuesResponse, error) {
	body := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputUserEntered,
		Data:             data,
	}

	result, err := c.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, body).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to batch update values: %w", err)
	}
	return result, nil
}

// InsertDimension inserts count empty rows or columns starting at start.
func (c *Client) InsertDimension(ctx context.Context, spreadsheetID string, sheetID int64, dimension string, start, count int64) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	return c.batchUpdate(ctx, spreadsheetID, insertDimensionRequest(sheetID, dimension, start, count))
}

// AddSheet creates a new sheet tab and returns its properties.
func (c *Client) AddSheet(ctx context.Context, spreadsheetID, title string) (*sheets.SheetProperties, error) {
	result, err := c.batchUpdate(ctx, spreadsheetID, addSheetRequest(title))
	if err != nil {
		return nil, err
	}

	if len(result.Replies) == 0 || result.Replies[0].AddSheet == nil {
		return nil, fmt.Errorf("add sheet reply missing from response")
	}
	return result.Replies[0].AddSheet.Properties, nil
}

// RenameSheet changes a sheet's title, leaving all other properties intact.
func (c *Client) RenameSheet(ctx context.Context, spreadsheetID string, sheetID int64, newTitle string) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	return c.batchUpdate(ctx, spreadsheetID, renameSheetRequest(sheetID, newTitle))
}

// CopySheetTo copies a sheet into another spreadsheet and returns the
// copy's properties. The copy keeps its source-derived title; renaming is
// the caller's concern.
func (c *Client) CopySheetTo(ctx context.Context, srcSpreadsheetID string, sheetID int64, dstSpreadsheetID string) (*sheets.SheetProperties, error) {
	body := &sheets.CopySheetToAnotherSpreadsheetRequest{
		DestinationSpreadsheetId: dstSpreadsheetID,
	}

	result, err := c.service.Spreadsheets.Sheets.CopyTo(srcSpreadsheetID, sheetID, body).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to copy sheet: %w", err)
	}
	return result, nil
}

// Create creates a new spreadsheet with the given title.
func (c *Client) Create(ctx context.Context, title string) (*sheets.Spreadsheet, error) {
	if title == "" {
		return nil, fmt.Errorf("spreadsheet title is required")
	}

	body := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}

	result, err := c.service.Spreadsheets.Create(body).
		Context(ctx).
		Fields("spreadsheetId,properties,sheets").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
	}
	return result, nil
}

// Info returns the title and per-sheet metadata for a spreadsheet.
func (c *Client) Info(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error) {
	spreadsheet, err := c.metadata(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}

	info := &SpreadsheetInfo{
		Title: spreadsheet.Properties.Title,
	}
	for _, sheet := range spreadsheet.Sheets {
		info.Sheets = append(info.Sheets, SheetInfo{
			Title:          sheet.Properties.Title,
			SheetID:        sheet.Properties.SheetId,
			GridProperties: sheet.Properties.GridProperties,
		})
	}
	return info, nil
}

// SheetTitles returns all sheet titles in spreadsheet order.
func (c *Client) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	spreadsheet, err := c.metadata(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		titles = append(titles, sheet.Properties.Title)
	}
	return titles, nil
}

// SheetProperties resolves a sheet title to its properties.
// Metadata is fetched fresh on every call: sheet IDs are not stable across
// external renames and deletions, so nothing is cached.
// A miss returns a *SheetNotFoundError.
func (c *Client) SheetProperties(ctx context.Context, spreadsheetID, title string) (*sheets.SheetProperties, error) {
	spreadsheet, err := c.metadata(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}

	props, ok := findSheet(spreadsheet.Sheets, title)
	if !ok {
		return nil, &SheetNotFoundError{Title: title}
	}
	return props, nil
}

func (c *Client) metadata(ctx context.Context, spreadsheetID string) (*sheets.Spreadsheet, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}
	return spreadsheet, nil
}

func (c *Client) batchUpdate(ctx context.Context, spreadsheetID string, requests ...*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	body := &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}

	result, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, body).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update spreadsheet %s: %w", spreadsheetID, err)
	}
	return result, nil
}
