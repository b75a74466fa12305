package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/abl030/loki-mcp/internal/config"
)

// AuthProvider produces the credentials sent with every Loki request.
type AuthProvider interface {
	// GetHeaders returns the HTTP headers to include in Loki requests.
	GetHeaders(ctx context.Context) (map[string]string, error)
	// OnUnauthorized is called when Loki (or the proxy in front of it)
	// returns 401. It can refresh credentials and return retry=true to
	// retry the request once.
	OnUnauthorized(ctx context.Context, resp *http.Response) (retry bool, err error)
}

// NoAuthProvider provides no authentication headers.
type NoAuthProvider struct{}

func (p *NoAuthProvider) GetHeaders(_ context.Context) (map[string]string, error) {
	return nil, nil
}

func (p *NoAuthProvider) OnUnauthorized(_ context.Context, _ *http.Response) (bool, error) {
	return false, nil
}

// BearerTokenProvider provides a static Bearer token.
type BearerTokenProvider struct {
	Token string
}

func (p *BearerTokenProvider) GetHeaders(_ context.Context) (map[string]string, error) {
	if p.Token == "" {
		return nil, nil
	}
	return map[string]string{"Authorization": "Bearer " + p.Token}, nil
}

func (p *BearerTokenProvider) OnUnauthorized(_ context.Context, _ *http.Response) (bool, error) {
	return false, nil
}

// BasicAuthProvider provides HTTP Basic authentication, the usual setup for
// Loki behind a reverse proxy or Grafana Cloud.
type BasicAuthProvider struct {
	Username string
	Password string
}

func (p *BasicAuthProvider) GetHeaders(_ context.Context) (map[string]string, error) {
	if p.Username == "" && p.Password == "" {
		return nil, nil
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(p.Username + ":" + p.Password))
	return map[string]string{"Authorization": "Basic " + encoded}, nil
}

func (p *BasicAuthProvider) OnUnauthorized(_ context.Context, _ *http.Response) (bool, error) {
	return false, nil
}

// NewProvider creates the AuthProvider selected by cfg.
func NewProvider(cfg *config.Config) (AuthProvider, error) {
	switch m := cfg.AuthMethod(); m {
	case config.AuthNone:
		return &NoAuthProvider{}, nil
	case config.AuthBearer:
		return &BearerTokenProvider{Token: cfg.Token}, nil
	case config.AuthBasic:
		return &BasicAuthProvider{Username: cfg.Username, Password: cfg.Password}, nil
	case config.AuthOAuth2:
		return &ClientCredentialsProvider{
			TokenURL:     cfg.OAuthTokenURL,
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			Scopes:       cfg.OAuthScopes,
		}, nil
	case config.AuthGoogle:
		return &GoogleSAProvider{KeyFile: cfg.GoogleCredentials, Scopes: cfg.OAuthScopes}, nil
	default:
		return nil, fmt.Errorf("unknown auth method: %q", m)
	}
}

// Apply sets the headers of p on req.
func Apply(ctx context.Context, p AuthProvider, req *http.Request) error {
	headers, err := p.GetHeaders(ctx)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return nil
}
