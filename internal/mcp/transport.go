// Package mcp is a small MCP client used to probe a running loki-mcp server
// over stdio or streamable HTTP.
package mcp

import "context"

// Transport carries JSON-RPC messages to an MCP server.
type Transport interface {
	// Send sends a request and waits for the response with the same ID.
	Send(ctx context.Context, req *JSONRPCRequest) (*JSONRPCResponse, error)
	// Notify sends a notification; no response is expected.
	Notify(ctx context.Context, req *JSONRPCRequest) error
	Close() error
}
