package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/Mohsinsiddi/w3connect/internal/provider"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrAccountUnavailable is returned by GetSigner when the provider does not
// expose the requested account.
var ErrAccountUnavailable = errors.New("account not available")

// Client is a read-only wallet client layered on a Provider.
type Client struct {
	p provider.Provider
}

// Network describes the chain a provider is connected to.
type Network struct {
	ChainID int64
	Name    string
}

// Signer is a handle for one account exposed by the provider. It is never
// used to sign anything; it records which account the session is bound to.
type Signer struct {
	address common.Address
	p       provider.Provider
}

// Address returns the signer's account.
func (s *Signer) Address() common.Address { return s.address }

// Provider returns the provider the account belongs to.
func (s *Signer) Provider() provider.Provider { return s.p }

// NewClient creates a client backed by p.
func NewClient(p provider.Provider) *Client {
	return &Client{p: p}
}

// RequestAccounts asks the provider for account access. Nodes that do not
// implement eth_requestAccounts are asked for eth_accounts instead.
func (c *Client) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	raw, err := c.p.Request(ctx, "eth_requestAccounts")
	if provider.IsMethodNotFound(err) {
		raw, err = c.p.Request(ctx, "eth_accounts")
	}
	if err != nil {
		return nil, err
	}
	return parseAccounts(raw)
}

// Accounts returns the accounts the provider currently exposes, without
// prompting.
func (c *Client) Accounts(ctx context.Context) ([]common.Address, error) {
	raw, err := c.p.Request(ctx, "eth_accounts")
	if err != nil {
		return nil, err
	}
	return parseAccounts(raw)
}

// GetNetwork returns the connected network.
func (c *Client) GetNetwork(ctx context.Context) (*Network, error) {
	raw, err := c.p.Request(ctx, "eth_chainId")
	if err != nil {
		return nil, err
	}
	id, err := decodeQuantity(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse chain id: %w", err)
	}
	if !id.IsInt64() {
		return nil, fmt.Errorf("chain id out of range: %s", id)
	}
	return &Network{ChainID: id.Int64(), Name: NetworkName(id.Int64())}, nil
}

// GetBalance returns the native balance of address in base units (wei).
func (c *Client) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	raw, err := c.p.Request(ctx, "eth_getBalance", address.Hex(), "latest")
	if err != nil {
		return nil, err
	}
	wei, err := decodeQuantity(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse balance: %w", err)
	}
	return wei, nil
}

// GetSigner returns a handle for address. When the provider lists its
// accounts, address must be among them.
func (c *Client) GetSigner(ctx context.Context, address common.Address) (*Signer, error) {
	accounts, err := c.Accounts(ctx)
	if err != nil && !provider.IsMethodNotFound(err) {
		return nil, err
	}
	if len(accounts) > 0 && !containsAddress(accounts, address) {
		return nil, fmt.Errorf("%w: %s", ErrAccountUnavailable, address.Hex())
	}
	return &Signer{address: address, p: c.p}, nil
}

// CallContract performs a read-only eth_call against the latest block and
// returns the raw hex result.
func (c *Client) CallContract(ctx context.Context, to, calldata string) (string, error) {
	raw, err := c.p.Request(ctx, "eth_call", map[string]string{
		"to":   to,
		"data": calldata,
	}, "latest")
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("unexpected eth_call result: %s", raw)
	}
	return s, nil
}

// ParseChainID parses a chainChanged payload such as "0x89".
func ParseChainID(hexID string) (int64, error) {
	n, err := hexutil.DecodeBig(strings.ToLower(strings.TrimSpace(hexID)))
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q: %w", hexID, err)
	}
	if !n.IsInt64() {
		return 0, fmt.Errorf("chain id out of range: %s", hexID)
	}
	return n.Int64(), nil
}

// --- helpers ---

func parseAccounts(raw json.RawMessage) ([]common.Address, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("unexpected accounts result: %s", raw)
	}
	out := make([]common.Address, 0, len(list))
	for _, a := range list {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("invalid account address %q", a)
		}
		out = append(out, common.HexToAddress(a))
	}
	return out, nil
}

func decodeQuantity(raw json.RawMessage) (*big.Int, error) {
	var q hexutil.Big
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, err
	}
	return q.ToInt(), nil
}

func containsAddress(list []common.Address, a common.Address) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
