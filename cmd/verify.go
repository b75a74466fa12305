package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abl030/loki-mcp/internal/clierr"
	"github.com/abl030/loki-mcp/internal/codegen"
	"github.com/abl030/loki-mcp/internal/inventory"
	"github.com/abl030/loki-mcp/internal/mcp"
	"github.com/abl030/loki-mcp/internal/schema"
)

var (
	flagURL             string
	flagStdio           string
	flagAuthToken       string
	flagTimeout         int
	flagEnv             []string
	flagVerifyInventory string
	flagCall            string
	flagArgs            string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a running tool server against the endpoint inventory",
	Long: `Connect to a loki-mcp server, list its tools and compare every tool's
description, behavior hints and input schema with the endpoint inventory.

Without --url or --stdio, this binary is spawned as "serve" over stdio with
the current environment.

Examples:
  # Check the tools of this build
  loki-mcp verify

  # Check a deployed server
  loki-mcp verify --url https://loki-mcp.internal/mcp --auth-token $TOKEN

  # Spawn a server read-only and call one tool
  loki-mcp verify --stdio "loki-mcp serve" --env LOKI_READ_ONLY=true \
    --call loki_query_instant --args '{"query":"{job=\"varlogs\"}"}'`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runVerify,
}

func init() {
	f := verifyCmd.Flags()
	f.StringVar(&flagURL, "url", "", "streamable HTTP URL of a running server")
	f.StringVar(&flagStdio, "stdio", "", "shell command that spawns a server on stdin/stdout")
	f.StringVar(&flagAuthToken, "auth-token", "", "bearer token for the HTTP server")
	f.IntVar(&flagTimeout, "timeout", 30000, "timeout in milliseconds for the whole check")
	f.StringSliceVar(&flagEnv, "env", nil, "environment variables for a spawned server (KEY=VALUE, repeatable)")
	f.StringVar(&flagVerifyInventory, "inventory", "inventory/endpoint-inventory.json", "endpoint inventory to compare with")
	f.StringVar(&flagCall, "call", "", "call this tool after the check")
	f.StringVar(&flagArgs, "args", "{}", "JSON object of arguments for --call")
}

func runVerify(cmd *cobra.Command, args []string) error {
	if flagURL != "" && flagStdio != "" {
		return clierr.Input("--url and --stdio cannot be used together", "", nil)
	}
	var callArgs map[string]any
	if flagCall != "" {
		if err := json.Unmarshal([]byte(flagArgs), &callArgs); err != nil {
			return clierr.Input("--args is not a JSON object", `pass e.g. --args '{"query":"{job=\"x\"}"}'`, err)
		}
	}

	inv, err := inventory.Load(flagVerifyInventory)
	if err != nil {
		return clierr.Input("cannot load the endpoint inventory", "", err)
	}
	want, err := codegen.Build(inv)
	if err != nil {
		return clierr.Input("cannot build the tool context", "", err)
	}

	transport, target, err := createTransport(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	client := mcp.NewClient(transport)
	defer client.Close()

	timeout := time.Duration(flagTimeout) * time.Millisecond
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	hello, err := client.Initialize(ctx, "loki-mcp-verify", appVersion)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("MCP server did not respond within %dms", flagTimeout)
		}
		return fmt.Errorf("MCP server at %s did not complete initialization handshake: %w", target, err)
	}
	fmt.Fprintf(out, "Connected to %s %s\n", hello.ServerInfo.Name, hello.ServerInfo.Version)

	tools, err := client.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("listing tools of %s: %w", target, err)
	}

	report := schema.Compare(want, tools)
	printReport(out, report, len(tools), want.ToolCount)

	if flagCall != "" {
		res, err := client.CallTool(ctx, flagCall, callArgs)
		if err != nil {
			return fmt.Errorf("calling %s: %w", flagCall, err)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, res.Text())
		if res.IsError {
			return fmt.Errorf("%s returned an error result", flagCall)
		}
	}

	if !report.OK() {
		return &clierr.UserError{
			Message:  fmt.Sprintf("%s does not match the inventory", target),
			Fix:      "regenerate with 'loki-mcp generate' and rebuild the server",
			ExitCode: clierr.ExitGeneration,
		}
	}
	return nil
}

// createTransport creates the MCP transport selected by the flags.
func createTransport(stderr io.Writer) (mcp.Transport, string, error) {
	if flagURL != "" {
		return mcp.NewHTTPTransport(flagURL, flagAuthToken), flagURL, nil
	}

	var transport *mcp.StdioTransport
	target := flagStdio
	if flagStdio != "" {
		var err error
		transport, err = mcp.NewCommandTransport(flagStdio, flagEnv, stderr)
		if err != nil {
			return nil, "", clierr.Input("invalid --stdio command", "", err)
		}
	} else {
		self, err := os.Executable()
		if err != nil {
			return nil, "", fmt.Errorf("locating this executable: %w", err)
		}
		transport = mcp.NewStdioTransport(self, []string{"serve"}, flagEnv, stderr)
		target = self + " serve"
	}
	if err := transport.Start(); err != nil {
		return nil, "", fmt.Errorf("failed to start MCP server %s: %w", target, err)
	}
	return transport, target, nil
}

func printReport(out io.Writer, r *schema.Report, listed, total int) {
	fmt.Fprintf(out, "Listed %d of %d inventory tools\n", listed, total)
	for _, name := range r.Unexpected {
		fmt.Fprintf(out, "  %s %s: not in the inventory\n", markDanger.Sprint("✗"), name)
	}
	for _, name := range sortedProblemTools(r) {
		fmt.Fprintf(out, "  %s %s\n", markDanger.Sprint("✗"), name)
		for _, p := range r.Problems[name] {
			fmt.Fprintf(out, "      %s\n", p)
		}
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(out, "  %s not registered (disabled by configuration?): %s\n",
			markWarn.Sprint("!"), strings.Join(r.Missing, ", "))
	}
	if r.OK() {
		fmt.Fprintf(out, "%s %d tools match the inventory\n", markOK.Sprint("✓"), r.Checked)
	}
}

func sortedProblemTools(r *schema.Report) []string {
	names := make([]string, 0, len(r.Problems))
	for name := range r.Problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
