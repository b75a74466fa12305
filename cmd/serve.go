package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"goa.design/clue/log"

	"github.com/abl030/loki-mcp/internal/clierr"
	"github.com/abl030/loki-mcp/internal/config"
	"github.com/abl030/loki-mcp/internal/server"
	"github.com/abl030/loki-mcp/internal/toolfilter"
)

var (
	flagConfig       string
	flagSet          []string
	flagDebug        bool
	flagHTTP         string
	flagMetricsAddr  string
	flagIncludeTools string
	flagExcludeTools string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Loki tools to MCP clients",
	Long: `Serve the generated Loki tools to MCP clients over stdio (default) or
streamable HTTP.

Configuration is resolved once at startup from the optional --config file,
then LOKI_* environment variables, then --set overrides.

Examples:
  # Stdio, as launched by an MCP client
  LOKI_URL=http://loki:3100 loki-mcp serve

  # Read-only over HTTP with Prometheus metrics
  loki-mcp serve --http :8080 --metrics-addr :9090 --set read_only=true

  # Only the query and index modules
  loki-mcp serve --set modules=query,index`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "YAML configuration file")
	f.StringArrayVar(&flagSet, "set", nil, "configuration override KEY=VALUE (repeatable)")
	f.BoolVar(&flagDebug, "debug", false, "log every tool call")
	f.StringVar(&flagHTTP, "http", "", "serve streamable HTTP on this address instead of stdio")
	f.StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	f.StringVar(&flagIncludeTools, "include-tools", "", "only register these tools (comma-separated)")
	f.StringVar(&flagExcludeTools, "exclude-tools", "", "do not register these tools (comma-separated)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if flagIncludeTools != "" && flagExcludeTools != "" {
		return clierr.Input("--include-tools and --exclude-tools cannot be used together", "", nil)
	}

	cfg, err := config.Load(flagConfig, os.LookupEnv, flagSet)
	if err != nil {
		return clierr.Config("cannot resolve configuration", "check --config, the LOKI_* variables and --set entries", err)
	}

	// Logs go to stderr; in stdio mode stdout carries the protocol.
	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	logCtx := log.Context(context.Background(), log.WithFormat(format), log.WithOutput(os.Stderr))
	if flagDebug {
		logCtx = log.Context(logCtx, log.WithDebug())
		log.Debugf(logCtx, "debug logs enabled")
	}

	srv, err := server.New(cfg, server.Options{
		Version:      appVersion,
		IncludeTools: toolfilter.ParseToolList(flagIncludeTools),
		ExcludeTools: toolfilter.ParseToolList(flagExcludeTools),
		LogContext:   logCtx,
	})
	if err != nil {
		return clierr.Config("cannot start the tool server", "", err)
	}

	log.Debug(logCtx, log.KV{K: "config", V: cfg.Redacted()})
	log.Info(logCtx,
		log.KV{K: "msg", V: "loki-mcp starting"},
		log.KV{K: "version", V: appVersion},
		log.KV{K: "loki_url", V: cfg.URL},
		log.KV{K: "auth", V: cfg.AuthMethod()},
		log.KV{K: "read_only", V: cfg.ReadOnly},
		log.KV{K: "modules", V: cfg.EnabledModules()},
		log.KV{K: "tools", V: len(srv.Tools())},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagMetricsAddr != "" {
		go serveMetrics(ctx, logCtx, flagMetricsAddr, srv.MetricsHandler())
	}

	if flagHTTP == "" {
		return srv.ServeStdio()
	}
	log.Info(logCtx, log.KV{K: "msg", V: "serving streamable HTTP"}, log.KV{K: "addr", V: flagHTTP})
	if err := srv.ServeHTTP(ctx, flagHTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// serveMetrics serves /metrics on addr until ctx is done.
func serveMetrics(ctx, logCtx context.Context, addr string, h http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(logCtx, log.KV{K: "msg", V: "serving metrics"}, log.KV{K: "addr", V: addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(logCtx, err, log.KV{K: "msg", V: "metrics server stopped"})
	}
}
