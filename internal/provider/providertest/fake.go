// Package providertest provides an in-memory provider for tests.
package providertest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/Mohsinsiddi/w3connect/internal/provider"
	"github.com/ethereum/go-ethereum/event"
)

// Handler answers one JSON-RPC method.
type Handler func(ctx context.Context, params []any) (any, error)

// Fake is a scriptable provider.Provider. Unhandled methods fail with
// method-not-found, like a node that does not implement them.
type Fake struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []string
	closed   bool

	accountsFeed event.Feed
	chainFeed    event.Feed
}

var _ provider.Provider = (*Fake)(nil)

// New returns a fake with no methods handled.
func New() *Fake {
	return &Fake{handlers: make(map[string]Handler)}
}

// Handle installs h for method, replacing any previous handler.
func (f *Fake) Handle(method string, h Handler) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method] = h
	return f
}

// Respond makes method always return result.
func (f *Fake) Respond(method string, result any) *Fake {
	return f.Handle(method, func(context.Context, []any) (any, error) { return result, nil })
}

// Fail makes method always return a JSON-RPC error.
func (f *Fake) Fail(method string, code int, msg string) *Fake {
	return f.Handle(method, func(context.Context, []any) (any, error) {
		return nil, &provider.RPCError{Code: code, Message: msg}
	})
}

// Request implements provider.Provider.
func (f *Fake) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, provider.ErrClosed
	}
	f.calls = append(f.calls, method)
	h, ok := f.handlers[method]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, &provider.RPCError{Code: provider.CodeMethodNotFound, Message: "method not found"}
	}
	result, err := h(ctx, params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

// SubscribeAccountsChanged implements provider.Provider.
func (f *Fake) SubscribeAccountsChanged(ch chan<- []string) event.Subscription {
	return f.accountsFeed.Subscribe(ch)
}

// SubscribeChainChanged implements provider.Provider.
func (f *Fake) SubscribeChainChanged(ch chan<- string) event.Subscription {
	return f.chainFeed.Subscribe(ch)
}

// Close implements provider.Provider.
func (f *Fake) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// EmitAccountsChanged notifies subscribers and returns how many received it.
func (f *Fake) EmitAccountsChanged(accounts ...string) int {
	if accounts == nil {
		accounts = []string{}
	}
	return f.accountsFeed.Send(accounts)
}

// EmitChainChanged notifies subscribers and returns how many received it.
func (f *Fake) EmitChainChanged(hexID string) int {
	return f.chainFeed.Send(hexID)
}

// Calls returns the methods requested so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times method was requested.
func (f *Fake) CallCount(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

// Wallet scripts a fake that behaves like a connected wallet holding a
// single account.
func Wallet(account string, chainID int64, balance *big.Int) *Fake {
	return New().
		Respond("eth_requestAccounts", []string{account}).
		Respond("eth_accounts", []string{account}).
		Respond("eth_chainId", fmt.Sprintf("0x%x", chainID)).
		Respond("eth_getBalance", "0x"+balance.Text(16))
}

// WithToken answers eth_call for the ERC-20 read functions of token.
func (f *Fake) WithToken(token, symbol string, decimals uint8, balance *big.Int) *Fake {
	return f.Handle("eth_call", func(_ context.Context, params []any) (any, error) {
		to, data := callTarget(params)
		if !strings.EqualFold(to, token) {
			return "0x", nil
		}
		switch {
		case strings.HasPrefix(data, SelectorSymbol):
			return EncodeString(symbol), nil
		case strings.HasPrefix(data, SelectorDecimals):
			return EncodeUint(new(big.Int).SetUint64(uint64(decimals))), nil
		case strings.HasPrefix(data, SelectorBalanceOf):
			return EncodeUint(balance), nil
		}
		return nil, &provider.RPCError{Code: 3, Message: "execution reverted"}
	})
}

// ERC-20 selectors as they appear in eth_call data.
const (
	SelectorSymbol    = "0x95d89b41"
	SelectorDecimals  = "0x313ce567"
	SelectorBalanceOf = "0x70a08231"
)

// EncodeUint ABI-encodes n as a single 32-byte word.
func EncodeUint(n *big.Int) string {
	return fmt.Sprintf("0x%064x", n)
}

// EncodeString ABI-encodes s as a single dynamic string return value.
func EncodeString(s string) string {
	data := fmt.Sprintf("%x", s)
	if rem := len(data) % 64; rem != 0 || data == "" {
		data += strings.Repeat("0", 64-rem)
	}
	return fmt.Sprintf("0x%064x%064x%s", 32, len(s), data)
}

func callTarget(params []any) (to, data string) {
	if len(params) == 0 {
		return "", ""
	}
	switch m := params[0].(type) {
	case map[string]string:
		return m["to"], m["data"]
	case map[string]any:
		to, _ = m["to"].(string)
		data, _ = m["data"].(string)
		return to, data
	}
	return "", ""
}
