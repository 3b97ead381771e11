// Package resources registers MCP resources exposing spreadsheet
// metadata under the spreadsheet:// URI scheme.
package resources
