// Package cmd implements the command-line interface for gsheets-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Google Sheets and Drive tools
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
