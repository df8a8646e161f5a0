package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/teemow/gworkspace-mcp/internal/google"
	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
	"github.com/teemow/gworkspace-mcp/internal/logging"
	"github.com/teemow/gworkspace-mcp/internal/server"
)

// Supported transports
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
)

const (
	defaultEnvFile     = ".env"
	defaultHTTPAddr    = ":8080"
	defaultMetricsAddr = ":9090"

	shutdownTimeout = 30 * time.Second
)

// serveConfig holds the resolved serve settings.
type serveConfig struct {
	Transport        string
	HTTPAddr         string
	ReadOnly         bool
	Debug            bool
	DisableStreaming bool
	MetricsEnabled   bool
	MetricsAddr      string
}

func newServeCmd() *cobra.Command {
	var (
		envFile string
		config  serveConfig
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server exposing Google Docs, Sheets, Drive and Gmail tools.

Supported transports:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport at /mcp with health endpoints

The Google credentials are read from GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET
and GOOGLE_REFRESH_TOKEN. A .env file in the working directory is loaded
first; variables already set in the environment take precedence.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(envFile, cmd.Flags().Changed("env-file")); err != nil {
				return err
			}
			if err := applyEnvOverrides(cmd, &config); err != nil {
				return err
			}

			creds := google.CredentialsFromEnv()
			if err := creds.Validate(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, config, creds)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", defaultEnvFile, "Path of a dotenv file to load before reading the environment")
	cmd.Flags().StringVar(&config.Transport, "transport", TransportStdio, "Transport type: stdio or streamable-http. Can also use MCP_TRANSPORT env var.")
	cmd.Flags().StringVar(&config.HTTPAddr, "http-addr", defaultHTTPAddr, "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&config.ReadOnly, "read-only", false, "Register only tools that do not modify remote state. Can also use READ_ONLY env var.")
	cmd.Flags().BoolVar(&config.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&config.DisableStreaming, "disable-streaming", false, "Disable streaming for HTTP transport (for compatibility with certain clients)")
	cmd.Flags().BoolVar(&config.MetricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port (streamable-http only). Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&config.MetricsAddr, "metrics-addr", defaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing default file is not an error.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides fills settings from the environment. Environment
// variables only override flag values when the flag was not explicitly set.
func applyEnvOverrides(cmd *cobra.Command, config *serveConfig) error {
	flags := cmd.Flags()

	if !flags.Changed("transport") {
		if transport := os.Getenv("MCP_TRANSPORT"); transport != "" {
			config.Transport = transport
		}
	}
	if !flags.Changed("metrics-addr") {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			config.MetricsAddr = addr
		}
	}

	boolEnv := []struct {
		flag string
		env  string
		dst  *bool
	}{
		{flag: "read-only", env: "READ_ONLY", dst: &config.ReadOnly},
		{flag: "metrics-enabled", env: "METRICS_ENABLED", dst: &config.MetricsEnabled},
	}
	for _, b := range boolEnv {
		if flags.Changed(b.flag) {
			continue
		}
		raw := strings.TrimSpace(os.Getenv(b.env))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", raw, b.env, err)
		}
		*b.dst = value
	}

	switch config.Transport {
	case TransportStdio, TransportStreamableHTTP:
		return nil
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s)", config.Transport, TransportStdio, TransportStreamableHTTP)
	}
}

func runServe(ctx context.Context, config serveConfig, creds google.Credentials) error {
	// stdout carries the protocol on stdio, so logs go to stderr as JSON.
	logger := logging.New(os.Stderr, logging.Options{
		Debug: config.Debug,
		JSON:  config.Transport == TransportStdio,
	})
	slog.SetDefault(logger)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	httpClient, err := google.NewHTTPClient(ctx, creds)
	if err != nil {
		return fmt.Errorf("failed to create Google HTTP client: %w", err)
	}

	serverContext, err := server.NewServerContext(ctx,
		[]option.ClientOption{option.WithHTTPClient(httpClient)},
		server.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Warn("error during server context shutdown", logging.Err(err))
		}
	}()

	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLogger(logger, instrConfig.AuditLogging))
	}

	mcpSrv := mcpserver.NewMCPServer("gworkspace-mcp", version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := registerAllTools(mcpSrv, serverContext, config.ReadOnly); err != nil {
		return err
	}

	logger.Info("starting gworkspace-mcp",
		logging.Transport(config.Transport),
		slog.String("version", version),
		slog.Bool("read_only", config.ReadOnly),
		slog.Int("tools", len(mcpSrv.ListTools())))

	switch config.Transport {
	case TransportStreamableHTTP:
		return runStreamableHTTPServer(ctx, mcpSrv, serverContext, provider, config, logger)
	default:
		return runStdioServer(mcpSrv, logger)
	}
}

// runStdioServer serves until stdin closes. ServeStdio handles SIGINT and
// SIGTERM on its own.
func runStdioServer(mcpSrv *mcpserver.MCPServer, logger *slog.Logger) error {
	errorLogger := slog.NewLogLogger(logger.Handler(), slog.LevelError)
	if err := mcpserver.ServeStdio(mcpSrv, mcpserver.WithErrorLogger(errorLogger)); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, provider *instrumentation.Provider, config serveConfig, logger *slog.Logger) error {
	var metricsServer *server.MetricsServer
	if config.MetricsEnabled && provider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    config.MetricsAddr,
			InstrumentationProvider: provider,
			Logger:                  logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		if err := startWithReadySignal(metricsServer.StartWithReadySignal); err != nil {
			return fmt.Errorf("metrics server failed to start: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("error during metrics server shutdown", logging.Err(err))
			}
		}()
	}

	httpServer := server.NewHTTPServer(mcpSrv, serverContext, server.HTTPServerConfig{
		Addr:             config.HTTPAddr,
		Version:          version,
		DisableStreaming: config.DisableStreaming,
		Logger:           logger,
	})

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	logger.Info("HTTP server gracefully stopped")
	return nil
}

// startWithReadySignal runs start in the background and waits until it has
// bound its listener, failed, or timed out.
func startWithReadySignal(start func(chan<- struct{}) error) error {
	ready := make(chan struct{})
	failed := make(chan error, 1)
	go func() {
		if err := start(ready); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case <-ready:
		return nil
	case err := <-failed:
		if err == nil {
			return errors.New("server exited before becoming ready")
		}
		return err
	case <-time.After(5 * time.Second):
		return errors.New("startup timed out")
	}
}
