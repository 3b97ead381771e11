// Package spreadsheet_tools registers the MCP tools that operate on
// whole spreadsheets: listing them via Drive, reading metadata, creating
// spreadsheets, and adding sheet tabs.
package spreadsheet_tools
