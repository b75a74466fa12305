package lokiclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/abl030/loki-mcp/internal/auth"
)

// TenantHeader carries the tenant of multi-tenant Loki deployments.
const TenantHeader = "X-Scope-OrgID"

// maxErrorBody bounds the response text quoted in an APIError.
const maxErrorBody = 2048

// Options configures a Client.
type Options struct {
	BaseURL   string
	TenantID  string
	Timeout   time.Duration
	VerifySSL bool
	UserAgent string
	Auth      auth.AuthProvider // nil sends no credentials
	Limiter   *rate.Limiter     // nil disables rate limiting

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
	// Now overrides the clock used for relative times (tests).
	Now func() time.Time
}

// Client talks to one Loki instance. A Client holds no connection state
// beyond its http.Client and is cheap to create per call.
type Client struct {
	opts Options
	http *http.Client
}

// Response is a raw Loki answer.
type Response struct {
	Method     string
	Path       string // Resolved request path
	StatusCode int
	Body       []byte
}

// APIError is returned when Loki answers with a status of 400 or above.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("loki: %s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.Auth == nil {
		opts.Auth = &auth.NoAuthProvider{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	transport := opts.Transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		if !opts.VerifySSL {
			t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		transport = t
	}
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout, Transport: transport},
	}
}

// Do sends req. A 401 answer gives the auth provider one chance to refresh
// its credentials before the request is retried.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	enc, err := encode(req, c.opts.Now())
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, req.Method, enc)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		retry, authErr := c.opts.Auth.OnUnauthorized(ctx, resp)
		resp.Body.Close()
		if authErr != nil {
			return nil, fmt.Errorf("lokiclient: re-authenticate: %w", authErr)
		}
		if !retry {
			return nil, &APIError{Method: req.Method, Path: enc.path, StatusCode: http.StatusUnauthorized}
		}
		if resp, err = c.send(ctx, req.Method, enc); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lokiclient: read %s %s: %w", req.Method, enc.path, err)
	}
	if resp.StatusCode >= 400 {
		text := strings.TrimSpace(string(body))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody] + "..."
		}
		return nil, &APIError{Method: req.Method, Path: enc.path, StatusCode: resp.StatusCode, Body: text}
	}
	return &Response{Method: req.Method, Path: enc.path, StatusCode: resp.StatusCode, Body: body}, nil
}

func (c *Client) send(ctx context.Context, method string, enc *encoded) (*http.Response, error) {
	if c.opts.Limiter != nil {
		if err := c.opts.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("lokiclient: rate limit: %w", err)
		}
	}

	u := c.opts.BaseURL + enc.path
	if len(enc.query) > 0 {
		u += "?" + enc.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u, enc.reader())
	if err != nil {
		return nil, fmt.Errorf("lokiclient: build request: %w", err)
	}
	if enc.contentType != "" {
		httpReq.Header.Set("Content-Type", enc.contentType)
	}
	if c.opts.TenantID != "" {
		httpReq.Header.Set(TenantHeader, c.opts.TenantID)
	}
	if c.opts.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.opts.UserAgent)
	}
	if err := auth.Apply(ctx, c.opts.Auth, httpReq); err != nil {
		return nil, fmt.Errorf("lokiclient: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("lokiclient: %s %s: %w", method, enc.path, err)
	}
	return resp, nil
}

// Call sends req and shapes the answer into tool output.
func (c *Client) Call(ctx context.Context, req Request) (string, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return "", err
	}
	return Format(req, resp)
}
