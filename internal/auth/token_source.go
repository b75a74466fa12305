package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// cachedSource holds a lazily created oauth2.TokenSource that can be dropped
// to force a fresh token.
type cachedSource struct {
	mu  sync.Mutex
	src oauth2.TokenSource
}

func (c *cachedSource) get(ctx context.Context, create func(context.Context) (oauth2.TokenSource, error)) (oauth2.TokenSource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.src != nil {
		return c.src, nil
	}
	src, err := create(ctx)
	if err != nil {
		return nil, err
	}
	c.src = oauth2.ReuseTokenSource(nil, src)
	return c.src, nil
}

func (c *cachedSource) reset() {
	c.mu.Lock()
	c.src = nil
	c.mu.Unlock()
}

func bearerHeaders(src oauth2.TokenSource, what string) (map[string]string, error) {
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("%s token: %w", what, err)
	}
	return map[string]string{"Authorization": "Bearer " + token.AccessToken}, nil
}

// ClientCredentialsProvider authenticates with the OAuth2 client_credentials
// grant (RFC 6749 Section 4.4), for Loki behind an OAuth2 proxy.
type ClientCredentialsProvider struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string

	// HTTPClient is used for token requests when set.
	HTTPClient *http.Client

	cache cachedSource
}

func (p *ClientCredentialsProvider) source(ctx context.Context) (oauth2.TokenSource, error) {
	return p.cache.get(ctx, func(ctx context.Context) (oauth2.TokenSource, error) {
		if p.HTTPClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, p.HTTPClient)
		}
		// The token source outlives the request that created it.
		ctx = context.WithoutCancel(ctx)
		cc := clientcredentials.Config{
			ClientID:     p.ClientID,
			ClientSecret: p.ClientSecret,
			TokenURL:     p.TokenURL,
			Scopes:       p.Scopes,
		}
		return cc.TokenSource(ctx), nil
	})
}

func (p *ClientCredentialsProvider) GetHeaders(ctx context.Context) (map[string]string, error) {
	src, err := p.source(ctx)
	if err != nil {
		return nil, err
	}
	return bearerHeaders(src, "client credentials")
}

func (p *ClientCredentialsProvider) OnUnauthorized(ctx context.Context, _ *http.Response) (bool, error) {
	p.cache.reset()
	if _, err := p.GetHeaders(ctx); err != nil {
		return false, err
	}
	return true, nil
}
