package auth

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGoogleSAProvider_ImplementsInterface(t *testing.T) {
	var _ AuthProvider = &GoogleSAProvider{}
	var _ AuthProvider = &ClientCredentialsProvider{}
}

func TestGoogleSAProvider_GetHeaders_MissingKeyFile(t *testing.T) {
	p := &GoogleSAProvider{
		KeyFile: filepath.Join(t.TempDir(), "nonexistent.json"),
	}
	_, err := p.GetHeaders(context.Background())
	if err == nil {
		t.Fatal("expected error for missing key file")
	}
	if !strings.Contains(err.Error(), "read service account key file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGoogleSAProvider_GetHeaders_InvalidKeyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad-key.json")
	if err := os.WriteFile(path, []byte("{not valid sa key}"), 0600); err != nil {
		t.Fatal(err)
	}

	p := &GoogleSAProvider{KeyFile: path}
	_, err := p.GetHeaders(context.Background())
	if err == nil {
		t.Fatal("expected error for invalid key file")
	}
}

func TestGoogleSAProvider_OnUnauthorized_InvalidKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad-key.json")
	if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	p := &GoogleSAProvider{KeyFile: path}
	retry, err := p.OnUnauthorized(context.Background(), nil)
	if retry {
		t.Error("expected no retry for invalid key file")
	}
	if err == nil {
		t.Error("expected error for invalid key file on re-auth")
	}
}
