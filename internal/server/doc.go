// Package server holds the shared server context for MCP tool handlers
// plus the sidecar HTTP servers: Prometheus metrics and Kubernetes
// health probes. The context carries the authenticated Sheets and Drive
// clients, which are constructed once at startup and treated as
// immutable for the lifetime of the process.
package server
