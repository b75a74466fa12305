package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// defaultGoogleScope is requested when no scopes are configured.
const defaultGoogleScope = "https://www.googleapis.com/auth/cloud-platform"

// GoogleSAProvider authenticates with a Google service account key, for Loki
// exposed through Google Cloud (IAP or a GKE ingress with OAuth).
type GoogleSAProvider struct {
	// KeyFile is the path to the service account JSON key file.
	KeyFile string
	// Scopes are the OAuth2 scopes to request.
	Scopes []string

	cache cachedSource
}

func (p *GoogleSAProvider) source(ctx context.Context) (oauth2.TokenSource, error) {
	return p.cache.get(ctx, func(ctx context.Context) (oauth2.TokenSource, error) {
		keyData, err := os.ReadFile(p.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read service account key file %s: %w", p.KeyFile, err)
		}

		scopes := p.Scopes
		if len(scopes) == 0 {
			scopes = []string{defaultGoogleScope}
		}

		creds, err := google.CredentialsFromJSON(context.WithoutCancel(ctx), keyData, scopes...)
		if err != nil {
			return nil, fmt.Errorf("parse service account key: %w", err)
		}
		return creds.TokenSource, nil
	})
}

func (p *GoogleSAProvider) GetHeaders(ctx context.Context) (map[string]string, error) {
	src, err := p.source(ctx)
	if err != nil {
		return nil, err
	}
	return bearerHeaders(src, "Google SA")
}

func (p *GoogleSAProvider) OnUnauthorized(ctx context.Context, _ *http.Response) (bool, error) {
	p.cache.reset()
	if _, err := p.GetHeaders(ctx); err != nil {
		return false, err
	}
	return true, nil
}
