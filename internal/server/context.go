package server

import (
	"context"
	"sync"

	"github.com/avollmer/gsheets-mcp/internal/drive"
	"github.com/avollmer/gsheets-mcp/internal/instrumentation"
	"github.com/avollmer/gsheets-mcp/internal/sheets"
)

// ServerContext holds the shared state for the MCP server. The Google
// clients and folder ID are set once during startup and never change,
// so tool handlers may read them concurrently without coordination.
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	sheets      *sheets.Client
	drive       *drive.Client
	folderID    string
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a new server context wrapping the
// authenticated Google clients.
func NewServerContext(ctx context.Context, sheetsClient *sheets.Client, driveClient *drive.Client, folderID string) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		sheets:   sheetsClient,
		drive:    driveClient,
		folderID: folderID,
	}
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Sheets returns the Google Sheets client.
func (sc *ServerContext) Sheets() *sheets.Client {
	return sc.sheets
}

// Drive returns the Google Drive client.
func (sc *ServerContext) Drive() *drive.Client {
	return sc.drive
}

// FolderID returns the Drive folder new spreadsheets are placed in.
// Empty means the Drive root.
func (sc *ServerContext) FolderID() string {
	return sc.folderID
}

// SetMetrics sets the metrics recorder. Call before serving; handlers
// read it without locking.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil if instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// SetAuditLogger sets the audit logger. Call before serving.
func (sc *ServerContext) SetAuditLogger(l *instrumentation.AuditLogger) {
	sc.auditLogger = l
}

// AuditLogger returns the audit logger, or nil if audit logging is disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
