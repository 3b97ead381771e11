// Package sheet_tools registers the MCP tools that operate on individual
// sheet tabs: reading and writing cell data, inserting rows and columns,
// listing, copying, and renaming sheets.
//
// Sheet titles are resolved to sheet IDs with a fresh metadata fetch on
// every call. Lookups are exact and case sensitive; a miss is reported
// in-band as {"error": "Sheet '<name>' not found"} rather than as a
// protocol error, so the client sees which title failed.
package sheet_tools
