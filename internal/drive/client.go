package drive

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	// SpreadsheetMimeType identifies Google Sheets files in Drive.
	SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
)

// Client wraps the Google Drive API service
type Client struct {
	service *drive.Service
}

// NewClient creates a new Google Drive client using an authenticated
// HTTP client from the credential resolver.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	service, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return &Client{service: service}, nil
}

// FileRef is a minimal reference to a Drive file.
type FileRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// spreadsheetQuery builds the Drive search query for spreadsheets,
// optionally scoped to a parent folder.
func spreadsheetQuery(folderID string) string {
	query := fmt.Sprintf("mimeType='%s'", SpreadsheetMimeType)
	if folderID != "" {
		query = fmt.Sprintf("%s and '%s' in parents", query, folderID)
	}
	return query
}

// ListSpreadsheets returns spreadsheets visible to the credential, most
// recently modified first. An empty folderID searches the whole Drive.
func (c *Client) ListSpreadsheets(ctx context.Context, folderID string) ([]FileRef, error) {
	result, err := c.service.Files.List().
		Context(ctx).
		Q(spreadsheetQuery(folderID)).
		Spaces("drive").
		IncludeItemsFromAllDrives(true).
		SupportsAllDrives(true).
		Fields("files(id, name)").
		OrderBy("modifiedTime desc").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list spreadsheets: %w", err)
	}

	refs := make([]FileRef, 0, len(result.Files))
	for _, file := range result.Files {
		refs = append(refs, FileRef{ID: file.Id, Title: file.Name})
	}
	return refs, nil
}

// MoveToFolder reparents a file into folderID, detaching it from its
// current parents first so the file does not end up in two places.
func (c *Client) MoveToFolder(ctx context.Context, fileID, folderID string) error {
	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields("parents").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return fmt.Errorf("failed to get parents of %s: %w", fileID, err)
	}

	call := c.service.Files.Update(fileID, nil).
		Context(ctx).
		AddParents(folderID).
		SupportsAllDrives(true).
		Fields("id, parents")
	if len(file.Parents) > 0 {
		call = call.RemoveParents(strings.Join(file.Parents, ","))
	}

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("failed to move %s to folder %s: %w", fileID, folderID, err)
	}
	return nil
}
