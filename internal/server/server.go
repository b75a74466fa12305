// Package server is the Loki MCP tool server. The tool surface in
// tools_gen.go is generated from the endpoint inventory; this file and its
// siblings hold the hand-written runtime it relies on.
package server

//go:generate go run ../.. generate --inventory ../../inventory/endpoint-inventory.json --output tools_gen.go

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"goa.design/clue/log"
	"golang.org/x/time/rate"

	"github.com/abl030/loki-mcp/internal/auth"
	"github.com/abl030/loki-mcp/internal/config"
	"github.com/abl030/loki-mcp/internal/lokiclient"
	"github.com/abl030/loki-mcp/internal/toolfilter"
)

// Name is the MCP server name.
const Name = "loki-mcp"

// Options configures New.
type Options struct {
	Version string

	// IncludeTools and ExcludeTools narrow the registered tools by name.
	IncludeTools []string
	ExcludeTools []string

	// LogContext carries the clue logger handed to every tool invocation.
	LogContext context.Context

	// Registry receives the server metrics. A private registry is created
	// when nil.
	Registry *prometheus.Registry

	// Transport overrides the HTTP transport of the Loki client (tests).
	Transport http.RoundTripper
}

// Server is a configured Loki MCP server.
type Server struct {
	cfg     *config.Config
	opts    Options
	gate    *Gate
	auth    auth.AuthProvider
	limiter *rate.Limiter
	metrics *Metrics
	mcp     *server.MCPServer
	tools   []toolDef // Registered tools, in generation order
}

// toolDef is one entry of the generated registration table.
type toolDef struct {
	Name     string
	Module   string // Empty for global tools
	Mutation bool
	Danger   bool
	Tool     mcp.Tool
	Handler  server.ToolHandlerFunc
}

// New builds the server from cfg and registers every tool the configuration
// allows. Tools of disabled modules, and mutating tools in read-only mode,
// are not registered.
func New(cfg *config.Config, opts Options) (*Server, error) {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.LogContext == nil {
		opts.LogContext = log.Context(context.Background())
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	provider, err := auth.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		opts:    opts,
		auth:    provider,
		metrics: NewMetrics(opts.Registry),
	}
	s.gate = NewGate(cfg, s.metrics)
	if cfg.RateLimit > 0 {
		burst := int(math.Max(1, math.Ceil(cfg.RateLimit)))
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	s.mcp = server.NewMCPServer(Name, opts.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	if err := s.register(); err != nil {
		return nil, err
	}
	return s, nil
}

const instructions = "Tools for a Grafana Loki instance. Start with loki_get_overview, " +
	"use loki_search_tools to find a tool by keyword. Mutating tools only return a dry run " +
	"unless called with confirm=true."

func (s *Server) register() error {
	var candidates []toolfilter.Tool
	byName := make(map[string]toolDef)
	for _, def := range s.generatedTools() {
		if !s.gate.Registered(def.Module, def.Mutation) {
			continue
		}
		candidates = append(candidates, toolfilter.Tool{Name: def.Name, Description: allTools[def.Name]})
		byName[def.Name] = def
	}

	selected, err := toolfilter.FilterTools(candidates, s.opts.IncludeTools, s.opts.ExcludeTools)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	for _, t := range selected {
		def := byName[t.Name]
		s.tools = append(s.tools, def)
		s.mcp.AddTool(def.Tool, s.instrument(def))
	}
	return nil
}

// instrument wraps a tool handler with the logger, a request id, metrics and
// call logging.
func (s *Server) instrument(def toolDef) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = log.WithContext(ctx, s.opts.LogContext)
		ctx = log.With(ctx, log.KV{K: "tool", V: def.Name}, log.KV{K: "request_id", V: uuid.NewString()})

		start := time.Now()
		res, err := def.Handler(ctx, req)
		outcome := outcomeOf(res, err)
		s.metrics.toolCall(def.Name, outcome)

		kvs := []log.Fielder{
			log.KV{K: "module", V: def.Module},
			log.KV{K: "outcome", V: outcome},
			log.KV{K: "duration", V: time.Since(start).String()},
		}
		if outcome == outcomeError {
			log.Error(ctx, fmt.Errorf("%s failed: %s", def.Name, resultText(res, err)), kvs...)
		} else {
			log.Debug(ctx, kvs...)
		}
		return res, err
	}
}

// Tools returns the names of the registered tools.
func (s *Server) Tools() []string {
	names := make([]string, len(s.tools))
	for i, def := range s.tools {
		names[i] = def.Name
	}
	return names
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// MetricsHandler serves the server metrics in the Prometheus text format.
func (s *Server) MetricsHandler() http.Handler {
	return s.metrics.Handler()
}

// ServeStdio serves MCP over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// HTTPHandler serves MCP over streamable HTTP on any path.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}

// ServeHTTP serves MCP over streamable HTTP on addr until ctx is done.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpServer := server.NewStreamableHTTPServer(s.mcp)
	errc := make(chan error, 1)
	go func() { errc <- httpServer.Start(addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// client creates the Loki client of one tool invocation.
func (s *Server) client() *lokiclient.Client {
	return lokiclient.New(lokiclient.Options{
		BaseURL:   s.cfg.URL,
		TenantID:  s.cfg.TenantID,
		Timeout:   s.cfg.Timeout,
		VerifySSL: s.cfg.VerifySSL,
		UserAgent: Name + "/" + s.opts.Version,
		Auth:      s.auth,
		Limiter:   s.limiter,
		Transport: s.opts.Transport,
	})
}

// do sends one Loki request under the configured timeout and records its
// latency.
func (s *Server) do(ctx context.Context, tool string, req lokiclient.Request) (*lokiclient.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client().Do(ctx, req)
	s.metrics.backendRequest(tool, time.Since(start))
	if err != nil {
		log.Debug(ctx, log.KV{K: "backend_error", V: err.Error()}, log.KV{K: "path", V: req.Path})
		return nil, err
	}
	return resp, nil
}

// call sends req and shapes the answer into tool output.
func (s *Server) call(ctx context.Context, tool string, req lokiclient.Request) (string, error) {
	resp, err := s.do(ctx, tool, req)
	if err != nil {
		return "", err
	}
	return lokiclient.Format(req, resp)
}

func resultText(res *mcp.CallToolResult, err error) string {
	if err != nil {
		return err.Error()
	}
	if res == nil {
		return ""
	}
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
