package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/api/option"

	"github.com/teemow/gworkspace-mcp/internal/docs"
	"github.com/teemow/gworkspace-mcp/internal/drive"
	"github.com/teemow/gworkspace-mcp/internal/gmail"
	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
	"github.com/teemow/gworkspace-mcp/internal/sheets"
)

// ServerContext holds the context for the MCP server. The Google clients are
// built once from the same client options and are shared by every tool.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	docsClient   *docs.Client
	sheetsClient *sheets.Client
	driveClient  *drive.Client
	gmailClient  *gmail.Client

	logger      *slog.Logger
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithLogger sets the logger used by tool handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) {
		sc.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(sc *ServerContext) {
		sc.metrics = metrics
	}
}

// WithAuditLogger sets the audit logger.
func WithAuditLogger(auditLogger *instrumentation.AuditLogger) Option {
	return func(sc *ServerContext) {
		sc.auditLogger = auditLogger
	}
}

// NewServerContext creates the Docs, Sheets, Drive and Gmail clients with
// clientOpts. In production clientOpts carries the authenticated HTTP client;
// tests pass an endpoint pointing at an httptest server.
func NewServerContext(ctx context.Context, clientOpts []option.ClientOption, opts ...Option) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(sc)
	}

	var err error
	if sc.docsClient, err = docs.NewClient(shutdownCtx, clientOpts...); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create Docs client: %w", err)
	}
	if sc.sheetsClient, err = sheets.NewClient(shutdownCtx, clientOpts...); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create Sheets client: %w", err)
	}
	if sc.driveClient, err = drive.NewClient(shutdownCtx, clientOpts...); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}
	if sc.gmailClient, err = gmail.NewClient(shutdownCtx, clientOpts...); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create Gmail client: %w", err)
	}

	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// DocsClient returns the Google Docs client
func (sc *ServerContext) DocsClient() *docs.Client {
	return sc.docsClient
}

// SheetsClient returns the Google Sheets client
func (sc *ServerContext) SheetsClient() *sheets.Client {
	return sc.sheetsClient
}

// DriveClient returns the Google Drive client
func (sc *ServerContext) DriveClient() *drive.Client {
	return sc.driveClient
}

// GmailClient returns the Gmail client
func (sc *ServerContext) GmailClient() *gmail.Client {
	return sc.gmailClient
}

// Logger returns the logger used by tool handlers
func (sc *ServerContext) Logger() *slog.Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Metrics returns the metrics recorder, or nil when instrumentation is disabled
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// AuditLogger returns the audit logger, or nil when audit logging is disabled
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger
func (sc *ServerContext) SetAuditLogger(auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = auditLogger
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
