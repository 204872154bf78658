package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
)

// EIP-1193 / JSON-RPC error codes the wallet layer cares about.
const (
	CodeUserRejected   = 4001
	CodeMethodNotFound = -32601
)

// Notification names emitted by a provider.
const (
	EventAccountsChanged = "accountsChanged"
	EventChainChanged    = "chainChanged"
)

// Errors.
var (
	ErrNoProvider = errors.New("no provider")
	ErrClosed     = errors.New("provider closed")
)

// Provider is the request/notification surface of an Ethereum wallet
// provider (EIP-1193). Unsubscribing a returned subscription is the
// equivalent of removeListener.
type Provider interface {
	// Request performs a single JSON-RPC call and returns the raw result.
	Request(ctx context.Context, method string, params ...any) (json.RawMessage, error)

	// SubscribeAccountsChanged delivers the full account list each time it changes.
	SubscribeAccountsChanged(ch chan<- []string) event.Subscription

	// SubscribeChainChanged delivers the new chain id as a 0x-prefixed hex string.
	SubscribeChainChanged(ch chan<- string) event.Subscription

	Close()
}

// RPCError is a JSON-RPC error returned by a provider. It satisfies
// go-ethereum's rpc.Error so both real and fake providers report codes the
// same way.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("RPC error %d", e.Code)
	}
	return e.Message
}

// ErrorCode implements rpc.Error.
func (e *RPCError) ErrorCode() int { return e.Code }

var _ rpc.Error = (*RPCError)(nil)

// ErrorCode extracts the JSON-RPC error code from err, if it carries one.
func ErrorCode(err error) (int, bool) {
	var re rpc.Error
	if errors.As(err, &re) {
		return re.ErrorCode(), true
	}
	return 0, false
}

// IsUserRejected reports whether the user declined the request in their wallet.
func IsUserRejected(err error) bool {
	code, ok := ErrorCode(err)
	return ok && code == CodeUserRejected
}

// IsMethodNotFound reports whether the provider does not implement the method.
func IsMethodNotFound(err error) bool {
	code, ok := ErrorCode(err)
	return ok && code == CodeMethodNotFound
}
