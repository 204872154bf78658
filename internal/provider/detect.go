package provider

import (
	"context"
	"os"
	"strings"
)

// EnvProviderURL is the environment variable a host uses to inject a provider.
const EnvProviderURL = "WALLET_PROVIDER_URL"

// Source describes where a provider endpoint may come from. Precedence is
// Flag, then the EnvProviderURL environment variable, then Config.
type Source struct {
	Flag   string
	Config string

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// URL resolves the endpoint, or "" when none is configured anywhere.
func (s Source) URL() string {
	if v := strings.TrimSpace(s.Flag); v != "" {
		return v
	}
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvProviderURL)); v != "" {
		return v
	}
	return strings.TrimSpace(s.Config)
}

// Detect reads the host environment once and dials the injected provider.
// It returns ErrNoProvider when no endpoint is configured.
func Detect(ctx context.Context, src Source, opts ...Option) (*RPCProvider, error) {
	url := src.URL()
	if url == "" {
		return nil, ErrNoProvider
	}
	return Dial(ctx, url, opts...)
}
