package mcp

import (
	"context"
	"encoding/json"
	"fmt"
)

// Client speaks the MCP client side over a Transport. It is not safe for
// concurrent use.
type Client struct {
	transport Transport
	nextID    int
}

// NewClient creates a client using transport.
func NewClient(transport Transport) *Client {
	return &Client{transport: transport, nextID: 1}
}

func (c *Client) allocID() int {
	id := c.nextID
	c.nextID++
	return id
}

// call sends method with params and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, params, out any) error {
	resp, err := c.transport.Send(ctx, &JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      c.allocID(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if resp.Error != nil {
		return fmt.Errorf("%s: server error %d: %s", method, resp.Error.Code, resp.Error.Message)
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("%s: unmarshal result: %w", method, err)
	}
	return nil
}

// Initialize performs the initialize handshake and sends the
// notifications/initialized notification.
func (c *Client) Initialize(ctx context.Context, clientName, clientVersion string) (*InitializeResult, error) {
	params := InitializeParams{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    map[string]any{},
		ClientInfo:      Implementation{Name: clientName, Version: clientVersion},
	}
	var result InitializeResult
	if err := c.call(ctx, "initialize", params, &result); err != nil {
		return nil, err
	}

	notif := &JSONRPCRequest{JSONRPC: "2.0", Method: "notifications/initialized"}
	if err := c.transport.Notify(ctx, notif); err != nil {
		return nil, fmt.Errorf("notifications/initialized: %w", err)
	}
	return &result, nil
}

// ListTools returns every tool of the server, following pagination cursors.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	var tools []Tool
	var cursor string
	for {
		var page ToolsListResult
		if err := c.call(ctx, "tools/list", listToolsParams{Cursor: cursor}, &page); err != nil {
			return nil, err
		}
		tools = append(tools, page.Tools...)
		if page.NextCursor == "" || page.NextCursor == cursor {
			return tools, nil
		}
		cursor = page.NextCursor
	}
}

// CallTool invokes the tool name. A tool-level failure is reported through
// CallToolResult.IsError, not as an error.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*CallToolResult, error) {
	var result CallToolResult
	if err := c.call(ctx, "tools/call", callToolParams{Name: name, Arguments: args}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Close closes the transport.
func (c *Client) Close() error {
	return c.transport.Close()
}
