package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
)

// MCPEndpointPath is where the streamable HTTP transport is mounted.
const MCPEndpointPath = "/mcp"

// HTTPServerConfig holds configuration for the streamable HTTP transport.
type HTTPServerConfig struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string

	// Version is reported by /healthz/detailed.
	Version string

	// DisableStreaming makes the transport answer with plain JSON instead of
	// an SSE stream, for clients that cannot consume one.
	DisableStreaming bool

	// Logger receives lifecycle messages. Defaults to the server context logger.
	Logger *slog.Logger
}

// HTTPServer serves the MCP server over streamable HTTP together with the
// health endpoints.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	serverContext *ServerContext
	health        *HealthChecker
	config        HTTPServerConfig
	logger        *slog.Logger

	mu         sync.Mutex
	httpServer *http.Server
	addr       string
}

// NewHTTPServer creates the HTTP transport for mcpServer.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext, config HTTPServerConfig) *HTTPServer {
	logger := config.Logger
	if logger == nil {
		logger = sc.Logger()
	}
	return &HTTPServer{
		mcpServer:     mcpServer,
		serverContext: sc,
		health:        NewHealthChecker(sc, config.Version),
		config:        config,
		logger:        logger,
		addr:          config.Addr,
	}
}

// Health returns the health checker, e.g. to mark the server not ready
// during shutdown.
func (s *HTTPServer) Health() *HealthChecker {
	return s.health
}

// Handler builds the routing for the MCP and health endpoints. Requests are
// traced and counted in http_requests_total.
func (s *HTTPServer) Handler() http.Handler {
	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath(MCPEndpointPath),
	}
	if s.config.DisableStreaming {
		opts = append(opts, mcpserver.WithDisableStreaming(true))
	}
	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer, opts...)

	mux := http.NewServeMux()
	mux.Handle(MCPEndpointPath, streamable)
	s.health.RegisterHealthEndpoints(mux)

	return otelhttp.NewHandler(s.instrument(mux), "mcp.http")
}

// Start listens on the configured address and serves until Shutdown.
func (s *HTTPServer) Start() error {
	return s.StartWithReadySignal(nil)
}

// StartWithReadySignal closes ready once the listener is bound.
func (s *HTTPServer) StartWithReadySignal(ready chan<- struct{}) error {
	s.mu.Lock()
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.addr = listener.Addr().String()
	// No WriteTimeout: streamed tool responses may outlive it.
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	s.logger.Info("starting MCP HTTP server",
		slog.String("addr", listener.Addr().String()),
		slog.String("endpoint", MCPEndpointPath))
	if ready != nil {
		close(ready)
	}
	return httpServer.Serve(listener)
}

// Shutdown marks the server not ready and drains open connections.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)

	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer != nil {
		s.logger.Info("shutting down MCP HTTP server")
		return httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the listen address, resolved once the server has started.
func (s *HTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// instrument records http_requests_total for every request.
func (s *HTTPServer) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics := s.serverContext.Metrics()
		if metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, routeLabel(r.URL.Path), rec.status, time.Since(start))
	})
}

// routeLabel keeps the path label bounded to the registered routes.
func routeLabel(path string) string {
	switch path {
	case MCPEndpointPath, "/healthz", "/readyz", "/healthz/detailed":
		return path
	default:
		return instrumentation.OperationOther
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
