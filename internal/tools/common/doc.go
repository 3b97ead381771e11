// Package common provides shared helpers for MCP tool handlers: argument
// extraction, result shaping, and instrumentation wrappers that record
// metrics and audit logs around every tool invocation.
package common
