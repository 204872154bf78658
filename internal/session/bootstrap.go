package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/w3connect/internal/provider"
)

// Detector locates the injected provider. It is called exactly once.
type Detector func(ctx context.Context) (provider.Provider, error)

// Bootstrap detects the provider and returns a connector bound to it. When
// detection fails the store is moved to the error state with a message
// starting with "no provider", and the connector has no provider, so later
// Connect calls fail too. There is no retry.
func Bootstrap(ctx context.Context, store *Store, detect Detector, opts ...Option) *Connector {
	p, err := detect(ctx)
	if err != nil || p == nil {
		switch {
		case err == nil:
			err = provider.ErrNoProvider
		case !errors.Is(err, provider.ErrNoProvider):
			err = fmt.Errorf("%w: %v", provider.ErrNoProvider, err)
		}
		c := NewConnector(store, nil, opts...)
		c.log.Warn().Err(err).Msg("provider detection failed")
		store.Begin(Failed(errorMessage(err)))
		return c
	}
	return NewConnector(store, p, opts...)
}

// ProviderMissing reports whether s is the terminal no-provider state.
func ProviderMissing(s State) bool {
	return s.Status == StatusError && strings.HasPrefix(s.Error, provider.ErrNoProvider.Error())
}
