package cmd

import (
	"context"

	"github.com/Mohsinsiddi/w3connect/internal/config"
	"github.com/Mohsinsiddi/w3connect/internal/provider"
	"github.com/Mohsinsiddi/w3connect/internal/session"
	"github.com/rs/zerolog"
)

// detector resolves the provider from --provider, the environment and the
// config file, in that order.
func detector(log zerolog.Logger) session.Detector {
	src := provider.Source{Flag: providerURL, Config: cfg.ProviderURL}
	return func(ctx context.Context) (provider.Provider, error) {
		ctx, cancel := context.WithTimeout(ctx, config.DialTimeout)
		defer cancel()

		p, err := provider.Detect(ctx, src,
			provider.WithPollInterval(cfg.Poll()),
			provider.WithLogger(log),
		)
		if err != nil {
			return nil, err
		}
		log.Info().Str("provider", p.URL()).Msg("provider detected")
		return p, nil
	}
}

// openSession detects the provider once and returns the store and the
// connector bound to it.
func openSession(ctx context.Context, log zerolog.Logger) (*session.Store, *session.Connector) {
	store := session.NewStore()
	conn := session.Bootstrap(ctx, store, detector(log), session.WithLogger(log))
	return store, conn
}

func closeSession(conn *session.Connector) {
	if p := conn.Provider(); p != nil {
		p.Close()
	}
}
