package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
)

// mockTransport records requests and returns canned responses.
type mockTransport struct {
	requests      []*JSONRPCRequest
	notifications []*JSONRPCRequest
	responses     []*JSONRPCResponse
	errors        []error
	callIndex     int
	closed        bool
}

func (m *mockTransport) Send(_ context.Context, req *JSONRPCRequest) (*JSONRPCResponse, error) {
	m.requests = append(m.requests, req)
	idx := m.callIndex
	m.callIndex++
	if idx < len(m.errors) && m.errors[idx] != nil {
		return nil, m.errors[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return nil, fmt.Errorf("no response configured for call %d", idx)
}

func (m *mockTransport) Notify(_ context.Context, req *JSONRPCRequest) error {
	m.notifications = append(m.notifications, req)
	return nil
}

func (m *mockTransport) Close() error {
	m.closed = true
	return nil
}

func result(t *testing.T, id int, v any) *JSONRPCResponse {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	return &JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: data}
}

func TestInitialize(t *testing.T) {
	mock := &mockTransport{
		responses: []*JSONRPCResponse{result(t, 1, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			ServerInfo:      Implementation{Name: "loki-mcp", Version: "1.0.0"},
			Instructions:    "Start with loki_get_overview",
		})},
	}

	client := NewClient(mock)
	res, err := client.Initialize(context.Background(), "loki-mcp-verify", "0.1.0")
	if err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	if res.ServerInfo.Name != "loki-mcp" || res.ServerInfo.Version != "1.0.0" {
		t.Errorf("ServerInfo = %+v", res.ServerInfo)
	}
	if res.Instructions != "Start with loki_get_overview" {
		t.Errorf("Instructions = %q", res.Instructions)
	}

	if len(mock.requests) != 1 || mock.requests[0].Method != "initialize" {
		t.Fatalf("requests = %+v, want a single initialize", mock.requests)
	}
	params, ok := mock.requests[0].Params.(InitializeParams)
	if !ok {
		t.Fatalf("params type = %T", mock.requests[0].Params)
	}
	if params.ClientInfo.Name != "loki-mcp-verify" || params.ProtocolVersion != ProtocolVersion {
		t.Errorf("params = %+v", params)
	}

	if len(mock.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(mock.notifications))
	}
	notif := mock.notifications[0]
	if notif.Method != "notifications/initialized" || notif.ID != 0 {
		t.Errorf("notification = %+v", notif)
	}
	data, _ := json.Marshal(notif)
	if string(data) != `{"jsonrpc":"2.0","method":"notifications/initialized"}` {
		t.Errorf("notification JSON = %s", data)
	}
}

func TestListToolsPagination(t *testing.T) {
	mock := &mockTransport{
		responses: []*JSONRPCResponse{
			result(t, 1, ToolsListResult{Tools: []Tool{{Name: "loki_ready"}}, NextCursor: "p2"}),
			result(t, 2, ToolsListResult{Tools: []Tool{{Name: "loki_push"}, {Name: "loki_flush"}}}),
		},
	}

	tools, err := NewClient(mock).ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools() error: %v", err)
	}
	if len(tools) != 3 || tools[0].Name != "loki_ready" || tools[2].Name != "loki_flush" {
		t.Errorf("tools = %+v", tools)
	}
	if got := mock.requests[1].Params.(listToolsParams).Cursor; got != "p2" {
		t.Errorf("second cursor = %q, want p2", got)
	}
}

func TestCallTool(t *testing.T) {
	mock := &mockTransport{
		responses: []*JSONRPCResponse{result(t, 1, map[string]any{
			"content": []any{
				map[string]any{"type": "text", "text": "DRY RUN: no request was sent."},
				map[string]any{"type": "image", "data": "xx"},
				map[string]any{"type": "text", "text": "second"},
			},
			"isError": true,
		})},
	}

	res, err := NewClient(mock).CallTool(context.Background(), "loki_flush", map[string]any{"confirm": false})
	if err != nil {
		t.Fatalf("CallTool() error: %v", err)
	}
	if !res.IsError {
		t.Error("IsError = false, want true")
	}
	if got, want := res.Text(), "DRY RUN: no request was sent.\nsecond"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	params := mock.requests[0].Params.(callToolParams)
	if params.Name != "loki_flush" || params.Arguments["confirm"] != false {
		t.Errorf("params = %+v", params)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name string
		mock *mockTransport
		call func(*Client) error
		want string
	}{
		{
			name: "initialize server error",
			mock: &mockTransport{responses: []*JSONRPCResponse{{JSONRPC: "2.0", ID: 1, Error: &JSONRPCError{Code: -32600, Message: "invalid request"}}}},
			call: func(c *Client) error { _, err := c.Initialize(context.Background(), "x", "1"); return err },
			want: "initialize: server error -32600: invalid request",
		},
		{
			name: "list transport error",
			mock: &mockTransport{errors: []error{fmt.Errorf("timeout")}},
			call: func(c *Client) error { _, err := c.ListTools(context.Background()); return err },
			want: "tools/list: timeout",
		},
		{
			name: "call unknown tool",
			mock: &mockTransport{responses: []*JSONRPCResponse{{JSONRPC: "2.0", ID: 1, Error: &JSONRPCError{Code: -32602, Message: "tool 'nope' not found"}}}},
			call: func(c *Client) error { _, err := c.CallTool(context.Background(), "nope", nil); return err },
			want: "tools/call: server error -32602: tool 'nope' not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(NewClient(tt.mock))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestClientIDIncrement(t *testing.T) {
	empty := ToolsListResult{Tools: []Tool{}}
	mock := &mockTransport{
		responses: []*JSONRPCResponse{result(t, 1, empty), result(t, 2, empty), result(t, 3, empty)},
	}

	client := NewClient(mock)
	for i := 0; i < 3; i++ {
		_, _ = client.ListTools(context.Background())
	}
	for i, req := range mock.requests {
		if req.ID != i+1 {
			t.Errorf("request[%d].ID = %d, want %d", i, req.ID, i+1)
		}
	}

	if err := client.Close(); err != nil || !mock.closed {
		t.Errorf("Close() = %v, closed = %v", err, mock.closed)
	}
}

func TestMergeEnv(t *testing.T) {
	got := mergeEnv(
		[]string{"PATH=/bin", "LOKI_URL=http://a", "broken"},
		[]string{"LOKI_URL=http://b", "LOKI_READ_ONLY=true"},
	)
	want := []string{"PATH=/bin", "LOKI_URL=http://b", "LOKI_READ_ONLY=true"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("mergeEnv = %v, want %v", got, want)
	}
}
