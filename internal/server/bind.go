package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// dryRunPrefix starts every dry-run answer.
const dryRunPrefix = "DRY RUN"

// bind adapts a typed tool callable to an MCP handler. The call arguments
// are decoded over a fresh decode of defaults on every call, so absent
// arguments keep their declared default and calls never share slices or
// maps with each other. Missing required arguments and callable errors
// become tool error results.
func bind[A any](fn func(context.Context, A) (string, error), defaults A, required ...string) server.ToolHandlerFunc {
	base, baseErr := json.Marshal(defaults)
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := req.GetArguments()

		var missing []string
		for _, name := range required {
			if v, ok := raw[name]; !ok || v == nil || v == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return mcp.NewToolResultError("Missing required argument(s): " + strings.Join(missing, ", ")), nil
		}

		var args A
		err := baseErr
		if err == nil {
			err = json.Unmarshal(base, &args)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid defaults: %v", err)), nil
		}
		if len(raw) > 0 {
			data, err := json.Marshal(raw)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
			}
			if err := json.Unmarshal(data, &args); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
			}
		}

		out, err := fn(ctx, args)
		if err != nil {
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// dryRun describes the call a mutating tool would make without making it.
func dryRun(warning, action string, args any) string {
	var b strings.Builder
	b.WriteString(dryRunPrefix + ": no request was sent.\n")
	if warning != "" {
		b.WriteString(warning + "\n")
	}
	b.WriteString("Would call: " + action + "\n")
	if data, err := json.MarshalIndent(args, "", "  "); err == nil {
		b.WriteString("Arguments:\n" + string(data) + "\n")
	}
	b.WriteString("Call again with confirm=true to execute.")
	return b.String()
}
