package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Mohsinsiddi/w3connect/internal/chain"
	"github.com/Mohsinsiddi/w3connect/internal/contract"
	"github.com/Mohsinsiddi/w3connect/internal/provider"
	"github.com/rs/zerolog"
)

// Fixed configuration of the wallet view.
const (
	// ExpectedChainID is the network the view expects; any other chain gets
	// a wrong-network warning.
	ExpectedChainID int64 = 1

	// TokenAddress is the ERC-20 contract read after connecting (USDC on
	// Ethereum mainnet).
	TokenAddress = "0xA0b86991c6218b36c1d19d4a2E9Eb0cE3606eB48"
)

// fallbackErrorMessage is shown when a failure carries no text of its own.
const fallbackErrorMessage = "failed to connect wallet"

// Errors.
var (
	ErrProviderNotInitialized = errors.New("provider not initialized")
	ErrNoAccounts             = errors.New("no accounts available")

	// ErrSuperseded is returned by Connect when a newer attempt or a reset
	// started before this one finished; its result was discarded.
	ErrSuperseded = errors.New("connect attempt superseded")
)

// Connector runs the connect operation against a provider and writes the
// outcome to a Store.
type Connector struct {
	store    *Store
	provider provider.Provider
	client   *chain.Client
	token    string
	log      zerolog.Logger

	mu        sync.Mutex
	signer    *chain.Signer
	signerSeq uint64
}

// Option configures a Connector.
type Option func(*Connector)

// WithTokenAddress overrides the ERC-20 contract that is read after
// connecting. An empty address skips the token read.
func WithTokenAddress(addr string) Option {
	return func(c *Connector) { c.token = addr }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Connector) { c.log = l }
}

// NewConnector creates a connector. p may be nil, in which case every
// Connect fails with ErrProviderNotInitialized.
func NewConnector(store *Store, p provider.Provider, opts ...Option) *Connector {
	c := &Connector{
		store:    store,
		provider: p,
		token:    TokenAddress,
		log:      zerolog.Nop(),
	}
	if p != nil {
		c.client = chain.NewClient(p)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the state container the connector writes to.
func (c *Connector) Store() *Store { return c.store }

// Provider returns the provider handle, or nil when none was detected.
func (c *Connector) Provider() provider.Provider { return c.provider }

// Signer returns the handle of the connected account, or nil.
func (c *Connector) Signer() *chain.Signer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signer
}

// Connect requests account access and reads the account's chain, native
// balance and, when configured, token balance. The store ends up either
// connected with the full result or in error with the failure message.
// A failed token read still records the account, chain and native balance;
// any other failure leaves previous data fields as they were.
//
// Connect may be called concurrently. Only the most recently started
// attempt can commit; older ones return ErrSuperseded.
func (c *Connector) Connect(ctx context.Context) error {
	if c.provider == nil {
		c.store.Begin(Failed(ErrProviderNotInitialized.Error()))
		c.log.Error().Err(ErrProviderNotInitialized).Msg("connect")
		return ErrProviderNotInitialized
	}

	seq := c.store.Begin(Connecting)
	log := c.log.With().Uint64("attempt", seq).Logger()
	log.Debug().Msg("connecting wallet")

	res, signer, err := c.read(ctx)
	if err != nil {
		if provider.IsUserRejected(err) {
			log.Info().Err(err).Msg("connection request rejected in wallet")
		} else {
			log.Error().Err(err).Msg("wallet connect failed")
		}
		fail := Failed(errorMessage(err))
		if res != nil {
			fail = TokenFailed(*res, errorMessage(err))
		}
		if !c.store.Commit(seq, fail) {
			log.Debug().Msg("discarding stale failure")
			return ErrSuperseded
		}
		return err
	}

	if !c.store.Commit(seq, Connected(*res)) {
		log.Debug().Msg("discarding stale result")
		return ErrSuperseded
	}
	c.setSigner(seq, signer)
	log.Info().
		Str("address", res.Address).
		Int64("chain_id", res.ChainID).
		Str("balance", res.NativeBalance).
		Msg("wallet connected")
	return nil
}

// Disconnect returns the session to its initial state, drops the signer
// handle and invalidates any attempt still in flight.
func (c *Connector) Disconnect() {
	c.setSigner(c.store.Reset(), nil)
	c.log.Info().Msg("wallet disconnected")
}

// setSigner stores signer unless a newer sequence number already set one.
// Store subscribers run before it, outside c.mu.
func (c *Connector) setSigner(seq uint64, signer *chain.Signer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq > c.signerSeq {
		c.signer = signer
		c.signerSeq = seq
	}
}

// read returns a non-nil Result alongside an error only when the token read
// failed after the native reads succeeded.
func (c *Connector) read(ctx context.Context) (*Result, *chain.Signer, error) {
	accounts, err := c.client.RequestAccounts(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(accounts) == 0 {
		return nil, nil, ErrNoAccounts
	}
	account := accounts[0]

	signer, err := c.client.GetSigner(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	network, err := c.client.GetNetwork(ctx)
	if err != nil {
		return nil, nil, err
	}
	wei, err := c.client.GetBalance(ctx, account)
	if err != nil {
		return nil, nil, err
	}

	res := &Result{
		Address:       account.Hex(),
		ChainID:       network.ChainID,
		NativeBalance: chain.FormatEther(wei),
	}

	if c.token != "" {
		info, err := contract.NewToken(c.client, c.token).Read(ctx, res.Address)
		if err != nil {
			return res, nil, err
		}
		res.TokenSymbol = info.Symbol
		res.TokenBalance = info.Formatted
	}

	return res, signer, nil
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return fallbackErrorMessage
	}
	return err.Error()
}
