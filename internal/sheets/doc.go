// Package sheets wraps the Google Sheets API for the MCP tool handlers.
//
// The client exposes one method per spreadsheet operation and keeps the
// request construction in pure functions so the write semantics (value
// input mode, dimension insertion, title updates) are testable without
// network access. Sheet titles resolve to IDs with a fresh metadata fetch
// on every call; there is deliberately no lookup cache.
package sheets
