package session

import (
	"context"
	"sync"

	"github.com/Mohsinsiddi/w3connect/internal/chain"
	"github.com/rs/zerolog"
)

// Bridge turns provider notifications into session operations.
//
//   - accountsChanged with an empty list disconnects.
//   - accountsChanged with accounts reconnects.
//   - chainChanged reconnects.
//
// Reconnects run on their own goroutines and are not debounced; the store's
// sequence numbers decide which one wins.
type Bridge struct {
	conn *Connector
	log  zerolog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
	wg      sync.WaitGroup
}

// NewBridge creates a bridge for conn. It does nothing until Start.
func NewBridge(conn *Connector) *Bridge {
	return &Bridge{conn: conn, log: conn.log.With().Str("component", "bridge").Logger()}
}

// Start subscribes to the provider's notifications. It fails with
// ErrProviderNotInitialized when the connector has no provider and is a
// no-op when already started.
func (b *Bridge) Start(ctx context.Context) error {
	p := b.conn.Provider()
	if p == nil {
		return ErrProviderNotInitialized
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	accountsCh := make(chan []string, 8)
	chainCh := make(chan string, 8)
	accountsSub := p.SubscribeAccountsChanged(accountsCh)
	chainSub := p.SubscribeChainChanged(chainCh)

	b.cancel = cancel
	b.stopped = make(chan struct{})
	stopped := b.stopped

	go func() {
		defer close(stopped)
		defer accountsSub.Unsubscribe()
		defer chainSub.Unsubscribe()

		for {
			select {
			case accounts := <-accountsCh:
				if len(accounts) == 0 {
					b.log.Info().Msg("accounts cleared")
					b.conn.Disconnect()
					continue
				}
				b.log.Debug().Strs("accounts", accounts).Msg("accounts changed")
				b.reconnect(ctx)

			case hexID := <-chainCh:
				ev := b.log.Debug().Str("chain", hexID)
				if id, err := chain.ParseChainID(hexID); err == nil {
					ev = ev.Int64("chain_id", id)
				}
				ev.Msg("chain changed")
				b.reconnect(ctx)

			case err := <-accountsSub.Err():
				b.log.Debug().Err(err).Msg("accounts subscription ended")
				return
			case err := <-chainSub.Err():
				b.log.Debug().Err(err).Msg("chain subscription ended")
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop unsubscribes from both notifications and waits for the listener and
// any reconnect it started to finish. The bridge can be started again.
func (b *Bridge) Stop() {
	b.mu.Lock()
	cancel, stopped := b.cancel, b.stopped
	b.cancel, b.stopped = nil, nil
	b.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
	b.wg.Wait()
}

func (b *Bridge) reconnect(ctx context.Context) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := b.conn.Connect(ctx); err != nil {
			b.log.Debug().Err(err).Msg("reconnect")
		}
	}()
}
