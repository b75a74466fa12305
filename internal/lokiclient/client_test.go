package lokiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/abl030/loki-mcp/internal/auth"
)

func newTestClient(srv *httptest.Server, opts Options) *Client {
	opts.BaseURL = srv.URL + "/"
	opts.Timeout = 5 * time.Second
	opts.Now = func() time.Time { return fixedNow }
	return New(opts)
}

func TestClientHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loki/api/v1/labels", r.URL.Path)
		assert.Equal(t, "team-a", r.Header.Get(TenantHeader))
		assert.Equal(t, "loki-mcp/test", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success","data":["host","job"]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, Options{
		TenantID:  "team-a",
		UserAgent: "loki-mcp/test",
		Auth:      &auth.BearerTokenProvider{Token: "tok"},
		Limiter:   rate.NewLimiter(rate.Inf, 1),
	})
	out, err := c.Call(context.Background(), Request{Method: "GET", Path: "/loki/api/v1/labels"})
	require.NoError(t, err)
	assert.JSONEq(t, `["host","job"]`, out)
}

func TestClientBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "log_level=warn", string(body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out, err := newTestClient(srv, Options{}).Call(context.Background(), Request{
		Method:   "POST",
		Path:     "/log_level",
		Body:     BodyForm,
		Response: ResponseNoContent,
		Params:   Params{{Name: "log_level", Value: "warn"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Success: POST /log_level (HTTP 204)", out)
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "parse error at line 1, col 7: syntax error", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, Options{}).Call(context.Background(), Request{
		Method: "GET",
		Path:   "/loki/api/v1/query",
		Params: Params{{Name: "query", Value: "{bad"}},
	})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "loki: GET /loki/api/v1/query: HTTP 400: parse error at line 1, col 7: syntax error", err.Error())
}

// refreshingAuth hands out "old" until OnUnauthorized is called.
type refreshingAuth struct {
	refreshed atomic.Bool
	retry     bool
}

func (a *refreshingAuth) GetHeaders(context.Context) (map[string]string, error) {
	if a.refreshed.Load() {
		return map[string]string{"Authorization": "Bearer new"}, nil
	}
	return map[string]string{"Authorization": "Bearer old"}, nil
}

func (a *refreshingAuth) OnUnauthorized(context.Context, *http.Response) (bool, error) {
	a.refreshed.Store(true)
	return a.retry, nil
}

func TestClientRetriesOnceAfterUnauthorized(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"streams":[]}`, string(body))
		if r.Header.Get("Authorization") != "Bearer new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	req := Request{
		Method:   "POST",
		Path:     "/loki/api/v1/push",
		Body:     BodyJSON,
		Response: ResponseNoContent,
		Params:   Params{{Name: "streams", Value: []any{}}},
	}

	out, err := newTestClient(srv, Options{Auth: &refreshingAuth{retry: true}}).Call(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Success: POST /loki/api/v1/push (HTTP 204)", out)
	assert.Equal(t, int32(2), calls.Load())

	calls.Store(0)
	_, err = newTestClient(srv, Options{Auth: &refreshingAuth{retry: false}}).Call(context.Background(), req)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := newTestClient(srv, Options{}).Call(ctx, Request{Method: "GET", Path: "/ready", Response: ResponseText})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), err.Error())
}

func TestClientEncodingErrorSendsNothing(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, Options{}).Call(context.Background(), Request{
		Method: "GET",
		Path:   "/loki/api/v1/label/{name}/values",
		Params: Params{{Name: "name", Value: "", InPath: true}},
	})
	require.Error(t, err)
	assert.Zero(t, calls.Load())
}
