package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPTransport talks to a streamable HTTP MCP endpoint. Responses may come
// back as application/json or as a text/event-stream.
type HTTPTransport struct {
	URL       string
	AuthToken string // Sent as a bearer token when set

	httpClient *http.Client
	sessionID  string
}

// NewHTTPTransport creates a transport posting to url.
func NewHTTPTransport(url, authToken string) *HTTPTransport {
	return &HTTPTransport{URL: url, AuthToken: authToken, httpClient: &http.Client{}}
}

func (t *HTTPTransport) post(ctx context.Context, req *JSONRPCRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json, text/event-stream")
	if t.AuthToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+t.AuthToken)
	}
	if t.sessionID != "" {
		httpReq.Header.Set("Mcp-Session-Id", t.sessionID)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	if sid := resp.Header.Get("Mcp-Session-Id"); sid != "" {
		t.sessionID = sid
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return resp, nil
}

// Send posts req and returns the response carrying its ID.
func (t *HTTPTransport) Send(ctx context.Context, req *JSONRPCRequest) (*JSONRPCResponse, error) {
	resp, err := t.post(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		return parseSSE(resp.Body, req.ID)
	}
	var rpcResp JSONRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &rpcResp, nil
}

// Notify posts a notification and discards the answer.
func (t *HTTPTransport) Notify(ctx context.Context, req *JSONRPCRequest) error {
	resp, err := t.post(ctx, req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// parseSSE reads data lines until the response with requestID arrives.
func parseSSE(r io.Reader, requestID int) (*JSONRPCResponse, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data:")
		if !ok {
			continue
		}
		var rpcResp JSONRPCResponse
		if err := json.Unmarshal([]byte(strings.TrimSpace(data)), &rpcResp); err != nil {
			continue
		}
		if rpcResp.ID == requestID {
			return &rpcResp, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read sse stream: %w", err)
	}
	return nil, fmt.Errorf("no response found for request id %d in sse stream", requestID)
}

// Close is a no-op; every request is independent.
func (t *HTTPTransport) Close() error {
	return nil
}
