// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

// Package server serves the graph tools over the Model Context Protocol.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/database"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/metrics"
	"github.com/neo4j/graphsemantics/internal/tools"
)

const (
	serverName            = "graphsemantics"
	mcpPath               = "/mcp"
	metricsPath           = "/metrics"
	httpReadHeaderTimeout = 10 * time.Second
)

// GraphSemanticsServer represents the MCP server instance
type GraphSemanticsServer struct {
	MCPServer *server.MCPServer
	config    *config.Config
	dbService database.Service
	deps      *tools.ToolDependencies
	version   string
	log       *logger.Service

	mu              sync.Mutex
	httpServer      *http.Server
	httpServerReady chan struct{}
}

// NewGraphSemanticsServer creates a new MCP server instance.
// The config parameter is expected to be already validated.
func NewGraphSemanticsServer(version string, cfg *config.Config, dbService database.Service, deps *tools.ToolDependencies, log *logger.Service) *GraphSemanticsServer {
	if log == nil {
		log = logger.Discard()
	}
	if deps == nil {
		deps = &tools.ToolDependencies{}
	}
	if deps.Config == nil {
		deps.Config = cfg
	}
	if deps.Log == nil {
		deps.Log = log
	}

	s := &GraphSemanticsServer{
		config:          cfg,
		dbService:       dbService,
		deps:            deps,
		version:         version,
		log:             log,
		httpServerReady: make(chan struct{}),
	}

	hooks := &server.Hooks{}
	hooks.AddAfterSetLevel(s.onAfterSetLevelHook)

	s.MCPServer = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithHooks(hooks),
		server.WithInstructions("This server answers questions about a Neo4j movie graph. "+
			"Use the Information tool with a movie title or a person name to get a summary of the movie's people "+
			"or the person's filmography."),
	)
	return s
}

// Start verifies the database connection, registers the tools and serves the configured transport.
// It blocks until the transport stops.
func (s *GraphSemanticsServer) Start(ctx context.Context) error {
	s.log.Info("Starting graphsemantics MCP server", "version", s.version, "transport", s.config.TransportMode)

	if s.dbService == nil {
		return fmt.Errorf("database service is not initialized")
	}
	if err := s.dbService.VerifyConnectivity(ctx); err != nil {
		return err
	}

	if err := s.RegisterTools(); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	switch s.config.TransportMode {
	case config.TransportModeHTTP:
		return s.startHTTP()
	case config.TransportModeStdio, "":
		s.log.Info("Started graphsemantics MCP server. Now listening for input...")
		return server.ServeStdio(s.MCPServer)
	default:
		return fmt.Errorf("unsupported transport mode: %s", s.config.TransportMode)
	}
}

// Handler returns the HTTP handler serving the MCP endpoint and metrics.
func (s *GraphSemanticsServer) Handler() http.Handler {
	streamable := server.NewStreamableHTTPServer(
		s.MCPServer,
		server.WithEndpointPath(mcpPath),
		server.WithStateLess(true),
	)

	mux := http.NewServeMux()
	mux.Handle(mcpPath, streamable)
	mux.Handle(metricsPath, metrics.Handler())

	return chainMiddleware(s.config.AllowedOrigins(), s.log, mux)
}

func (s *GraphSemanticsServer) startHTTP() error {
	addr := net.JoinHostPort(s.config.HTTPHost, s.config.HTTPPort)

	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: httpReadHeaderTimeout,
	}
	httpServer := s.httpServer
	s.mu.Unlock()
	close(s.httpServerReady)

	s.log.Info("Started graphsemantics MCP HTTP server", "addr", addr, "path", mcpPath, "metrics", metricsPath)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// HTTPServerReady is closed once the HTTP server is configured, just before it starts listening.
func (s *GraphSemanticsServer) HTTPServerReady() <-chan struct{} {
	return s.httpServerReady
}

// Stop gracefully stops the HTTP server. The database service is closed by its owner.
func (s *GraphSemanticsServer) Stop(ctx context.Context) error {
	s.log.Info("Stopping graphsemantics MCP server...")

	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
