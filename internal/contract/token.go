package contract

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/Mohsinsiddi/w3connect/internal/chain"
	"golang.org/x/sync/errgroup"
)

// Token is a read-only handle to an ERC-20 contract.
type Token struct {
	address string
	caller  *Caller
}

// TokenInfo is the result of a full token read for one holder.
type TokenInfo struct {
	Symbol    string
	Decimals  int
	Balance   *big.Int
	Formatted string
}

// NewToken returns a read-only handle to the ERC-20 contract at address.
func NewToken(backend Backend, address string) *Token {
	return &Token{address: address, caller: NewCaller(backend, ERC20ReadABI)}
}

// Address returns the token contract address.
func (t *Token) Address() string { return t.address }

// Symbol calls symbol().
func (t *Token) Symbol(ctx context.Context) (string, error) {
	out, err := t.caller.Call(ctx, t.address, "symbol")
	if err != nil {
		return "", err
	}
	return out[0], nil
}

// Decimals calls decimals().
func (t *Token) Decimals(ctx context.Context) (int, error) {
	out, err := t.caller.Call(ctx, t.address, "decimals")
	if err != nil {
		return 0, err
	}
	d, err := strconv.Atoi(out[0])
	if err != nil || d > 255 {
		return 0, fmt.Errorf("invalid decimals %q", out[0])
	}
	return d, nil
}

// BalanceOf calls balanceOf(holder) and returns base units.
func (t *Token) BalanceOf(ctx context.Context, holder string) (*big.Int, error) {
	out, err := t.caller.Call(ctx, t.address, "balanceOf", holder)
	if err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(out[0], 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance %q", out[0])
	}
	return n, nil
}

// Read fetches symbol and decimals concurrently, then the holder's balance,
// formatted with the token's own decimals.
func (t *Token) Read(ctx context.Context, holder string) (*TokenInfo, error) {
	var info TokenInfo

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := t.Symbol(gctx)
		info.Symbol = s
		return err
	})
	g.Go(func() error {
		d, err := t.Decimals(gctx)
		info.Decimals = d
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bal, err := t.BalanceOf(ctx, holder)
	if err != nil {
		return nil, err
	}
	info.Balance = bal
	info.Formatted = chain.FormatUnits(bal, info.Decimals)
	return &info, nil
}
