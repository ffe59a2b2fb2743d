package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName identifies the calculator to MCP clients.
const ServerName = "poolcalc"

// Version is reported to clients unless WithVersion overrides it.
const Version = "0.1.0"

// instructions tell a client how the tools relate to each other.
const instructions = `Pooling volume calculator for sequencing libraries.
Use calculate_molarity for a single ng/µl to nM conversion and
recommend_strategy to choose a workflow. compute_pool pools every library
directly; compute_hierarchical pools libraries into sub-pools first;
compute_prepools pools user-defined groups before the final pool.
Parameters a call omits come from the poolcalc://settings resource.`

// Server exposes the pooling calculator over MCP.
type Server struct {
	ports   *Ports
	version string
	server  *mcp.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithVersion sets the version reported to clients.
func WithVersion(v string) ServerOption {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// NewServer registers the calculator tools and settings resources.
// The pooling port is required; settings fall back to built-in defaults.
func NewServer(ports *Ports, opts ...ServerOption) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports, version: Version}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(
		&mcp.Implementation{Name: ServerName, Version: s.version},
		&mcp.ServerOptions{Instructions: instructions},
	)
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled. A clean shutdown returns nil.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
