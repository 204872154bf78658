package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
)

// DefaultPollInterval is how often RPCProvider checks for account and chain changes.
const DefaultPollInterval = 3 * time.Second

// RPCProvider is a Provider backed by a JSON-RPC endpoint (HTTP, WebSocket or
// IPC). Plain endpoints do not push wallet notifications, so accountsChanged
// and chainChanged are synthesized by polling eth_accounts and eth_chainId.
type RPCProvider struct {
	url          string
	client       *rpc.Client
	pollInterval time.Duration
	log          zerolog.Logger

	accountsFeed event.Feed
	chainFeed    event.Feed
	scope        event.SubscriptionScope

	startOnce sync.Once
	closeOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// Option configures an RPCProvider.
type Option func(*RPCProvider)

// WithPollInterval sets how often notifications are checked. Non-positive
// values keep the default.
func WithPollInterval(d time.Duration) Option {
	return func(p *RPCProvider) {
		if d > 0 {
			p.pollInterval = d
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *RPCProvider) { p.log = l }
}

// Dial connects to the JSON-RPC endpoint at url.
func Dial(ctx context.Context, url string, opts ...Option) (*RPCProvider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dialing provider %s: %w", redact(url), err)
	}
	return NewRPCProvider(client, url, opts...), nil
}

// NewRPCProvider wraps an already connected rpc.Client.
func NewRPCProvider(client *rpc.Client, url string, opts ...Option) *RPCProvider {
	ctx, cancel := context.WithCancel(context.Background())
	p := &RPCProvider{
		url:          url,
		client:       client,
		pollInterval: DefaultPollInterval,
		log:          zerolog.Nop(),
		ctx:          ctx,
		cancel:       cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// URL returns the endpoint with any credentials in the path or userinfo masked.
func (p *RPCProvider) URL() string { return redact(p.url) }

// Request implements Provider.
func (p *RPCProvider) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if p.ctx.Err() != nil {
		return nil, ErrClosed
	}
	var raw json.RawMessage
	if err := p.client.CallContext(ctx, &raw, method, params...); err != nil {
		return nil, err
	}
	p.log.Debug().Str("method", method).Int("bytes", len(raw)).Msg("rpc request")
	return raw, nil
}

// SubscribeAccountsChanged implements Provider.
func (p *RPCProvider) SubscribeAccountsChanged(ch chan<- []string) event.Subscription {
	sub := p.scope.Track(p.accountsFeed.Subscribe(ch))
	p.startWatcher()
	return sub
}

// SubscribeChainChanged implements Provider.
func (p *RPCProvider) SubscribeChainChanged(ch chan<- string) event.Subscription {
	sub := p.scope.Track(p.chainFeed.Subscribe(ch))
	p.startWatcher()
	return sub
}

// Close stops the watcher, ends all subscriptions and closes the connection.
func (p *RPCProvider) Close() {
	p.closeOnce.Do(func() {
		p.cancel()
		// Ending subscriptions first unblocks a watcher stuck in Feed.Send.
		p.scope.Close()
		p.wg.Wait()
		p.client.Close()
	})
}

func (p *RPCProvider) startWatcher() {
	p.startOnce.Do(func() {
		if p.ctx.Err() != nil {
			return
		}
		p.wg.Add(1)
		go p.watch()
	})
}

// watch polls for account and chain changes until Close. The first
// successful poll only records a baseline.
func (p *RPCProvider) watch() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	var (
		accounts     []string
		chainID      string
		haveAccounts bool
		haveChainID  bool
	)

	for {
		if next, err := p.pollAccounts(); err != nil {
			p.log.Debug().Err(err).Msg("polling eth_accounts")
		} else {
			if haveAccounts && !slices.Equal(next, accounts) {
				p.log.Info().Int("accounts", len(next)).Msg(EventAccountsChanged)
				p.accountsFeed.Send(next)
			}
			accounts, haveAccounts = next, true
		}

		if next, err := p.pollChainID(); err != nil {
			p.log.Debug().Err(err).Msg("polling eth_chainId")
		} else {
			if haveChainID && next != chainID {
				p.log.Info().Str("chain_id", next).Msg(EventChainChanged)
				p.chainFeed.Send(next)
			}
			chainID, haveChainID = next, true
		}

		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *RPCProvider) pollAccounts() ([]string, error) {
	var accounts []string
	if err := p.client.CallContext(p.ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	for i, a := range accounts {
		accounts[i] = strings.ToLower(a)
	}
	return accounts, nil
}

func (p *RPCProvider) pollChainID() (string, error) {
	var id string
	if err := p.client.CallContext(p.ctx, &id, "eth_chainId"); err != nil {
		return "", err
	}
	return strings.ToLower(id), nil
}

// redact hides API keys that providers commonly embed in the URL path
// (e.g. https://mainnet.infura.io/v3/<key>) and any userinfo.
func redact(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	host, path, hasPath := strings.Cut(rest, "/")
	if !hasPath || path == "" {
		return scheme + "://" + host
	}
	segs := strings.Split(path, "/")
	last := segs[len(segs)-1]
	if len(last) >= 16 {
		segs[len(segs)-1] = last[:4] + "…"
	}
	return scheme + "://" + host + "/" + strings.Join(segs, "/")
}
