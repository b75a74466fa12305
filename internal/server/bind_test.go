package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
	Start string `json:"start"`
}

func invoke(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestBindDefaults(t *testing.T) {
	var got echoArgs
	h := bind(func(_ context.Context, a echoArgs) (string, error) {
		got = a
		return "ok", nil
	}, echoArgs{Limit: 100, Start: "1h"}, "query")

	res := invoke(t, h, map[string]any{"query": "{a=\"b\"}", "start": "5m"})
	assert.False(t, res.IsError)
	assert.Equal(t, "ok", resultText(res, nil))
	assert.Equal(t, echoArgs{Query: "{a=\"b\"}", Limit: 100, Start: "5m"}, got)

	// Numbers arrive as float64 from JSON clients.
	invoke(t, h, map[string]any{"query": "x", "limit": float64(7)})
	assert.Equal(t, 7, got.Limit)
	assert.Equal(t, "1h", got.Start)
}

func TestBindDefaultsNotShared(t *testing.T) {
	type listArgs struct {
		Items []any          `json:"items"`
		Tags  map[string]any `json:"tags"`
	}
	var got listArgs
	h := bind(func(_ context.Context, a listArgs) (string, error) {
		got = a
		return "ok", nil
	}, listArgs{Items: []any{"a", "b"}, Tags: map[string]any{"env": "prod"}})

	invoke(t, h, map[string]any{"items": []any{"x"}, "tags": map[string]any{"team": "obs"}})
	assert.Equal(t, []any{"x"}, got.Items)
	assert.Equal(t, map[string]any{"env": "prod", "team": "obs"}, got.Tags)

	invoke(t, h, nil)
	assert.Equal(t, []any{"a", "b"}, got.Items)
	assert.Equal(t, map[string]any{"env": "prod"}, got.Tags)
}

func TestBindConcurrentCalls(t *testing.T) {
	type listArgs struct {
		Items []any `json:"items"`
	}
	h := bind(func(_ context.Context, a listArgs) (string, error) {
		return fmt.Sprint(a.Items...), nil
	}, listArgs{Items: []any{"a", "b"}})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			want := "ab"
			var args map[string]any
			if i%2 == 0 {
				want = fmt.Sprint(i)
				args = map[string]any{"items": []any{want}}
			}
			var req mcp.CallToolRequest
			req.Params.Arguments = args
			res, err := h(context.Background(), req)
			assert.NoError(t, err)
			assert.Equal(t, want, resultText(res, nil))
		}(i)
	}
	wg.Wait()
}

func TestBindRequired(t *testing.T) {
	called := false
	h := bind(func(_ context.Context, _ echoArgs) (string, error) {
		called = true
		return "", nil
	}, echoArgs{}, "query", "start")

	for _, args := range []map[string]any{nil, {"query": ""}, {"query": nil, "start": "1h"}} {
		res := invoke(t, h, args)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res, nil), "Missing required argument(s): query")
	}
	assert.False(t, called)
}

func TestBindErrors(t *testing.T) {
	h := bind(func(_ context.Context, _ echoArgs) (string, error) {
		return "", errors.New("boom")
	}, echoArgs{})

	res := invoke(t, h, nil)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: boom", resultText(res, nil))

	res = invoke(t, h, map[string]any{"limit": "many"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res, nil), "Invalid arguments")
}

func TestDryRun(t *testing.T) {
	out := dryRun("DANGEROUS OPERATION: Shut the ingester down.", "POST /ingester/shutdown", struct {
		Flush bool `json:"flush"`
	}{true})
	assert.Equal(t, "DRY RUN: no request was sent.\n"+
		"DANGEROUS OPERATION: Shut the ingester down.\n"+
		"Would call: POST /ingester/shutdown\n"+
		"Arguments:\n{\n  \"flush\": true\n}\n"+
		"Call again with confirm=true to execute.", out)

	assert.NotContains(t, dryRun("", "POST /flush", struct{}{}), "DANGEROUS")
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, outcomeOK, outcomeOf(mcp.NewToolResultText("fine"), nil))
	assert.Equal(t, outcomeError, outcomeOf(mcp.NewToolResultError("bad"), nil))
	assert.Equal(t, outcomeError, outcomeOf(nil, errors.New("bad")))
	assert.Equal(t, outcomeDryRun, outcomeOf(mcp.NewToolResultText(dryRun("", "POST /flush", nil)), nil))
}
