package contract

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Backend performs raw read-only contract calls. *chain.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, to, calldata string) (string, error)
}

// Caller calls read-only (view/pure) contract functions.
type Caller struct {
	backend Backend
	abi     abi.ABI
}

// NewCaller creates a Caller for the given ABI.
func NewCaller(backend Backend, parsed abi.ABI) *Caller {
	return &Caller{backend: backend, abi: parsed}
}

// Call calls a read function on a contract and returns decoded results as strings.
func (c *Caller) Call(ctx context.Context, contractAddr, funcName string, args ...string) ([]string, error) {
	method, ok := c.abi.Methods[funcName]
	if !ok {
		return nil, fmt.Errorf("function %q not found in ABI", funcName)
	}

	if !method.IsConstant() {
		return nil, fmt.Errorf("function %q is not a read function (stateMutability: %s)", funcName, method.StateMutability)
	}

	calldata, err := c.encodeCall(method, args)
	if err != nil {
		return nil, fmt.Errorf("encoding call: %w", err)
	}

	result, err := c.backend.CallContract(ctx, contractAddr, calldata)
	if err != nil {
		return nil, fmt.Errorf("contract call failed: %w", err)
	}

	decoded, err := c.decodeResult(method, result)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", method.Name, err)
	}

	return decoded, nil
}

// encodeCall builds calldata: 4-byte selector + packed args.
func (c *Caller) encodeCall(method abi.Method, args []string) (string, error) {
	if len(args) != len(method.Inputs) {
		return "", fmt.Errorf("%s expects %d argument(s), got %d", method.Sig, len(method.Inputs), len(args))
	}

	values := make([]interface{}, len(args))
	for i, in := range method.Inputs {
		v, err := parseArg(in.Type, args[i])
		if err != nil {
			return "", fmt.Errorf("encoding param %s: %w", in.Name, err)
		}
		values[i] = v
	}

	data, err := c.abi.Pack(method.Name, values...)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(data), nil
}

// parseArg converts a command-line style argument to the Go value the ABI
// packer expects for typ.
func parseArg(typ abi.Type, val string) (interface{}, error) {
	switch typ.T {
	case abi.AddressTy:
		if !common.IsHexAddress(val) {
			return nil, fmt.Errorf("invalid address: %s", val)
		}
		return common.HexToAddress(val), nil

	case abi.UintTy:
		n := new(big.Int)
		if _, ok := n.SetString(val, 0); !ok || n.Sign() < 0 {
			return nil, fmt.Errorf("invalid unsigned integer: %s", val)
		}
		if n.BitLen() > typ.Size {
			return nil, fmt.Errorf("integer overflows %d bits: %s", typ.Size, val)
		}
		switch typ.Size {
		case 8:
			return uint8(n.Uint64()), nil
		case 16:
			return uint16(n.Uint64()), nil
		case 32:
			return uint32(n.Uint64()), nil
		case 64:
			return n.Uint64(), nil
		}
		return n, nil

	case abi.BoolTy:
		return val == "true" || val == "1", nil

	default:
		return nil, fmt.Errorf("unsupported argument type %s", typ.String())
	}
}

// decodeResult unpacks the raw hex result into string values.
func (c *Caller) decodeResult(method abi.Method, hexData string) ([]string, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(hexData, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding hex result: %w", err)
	}

	if len(method.Outputs) == 0 {
		return nil, nil
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty result (no contract at address?)")
	}

	values, err := c.abi.Unpack(method.Name, data)
	if err != nil {
		return nil, err
	}

	results := make([]string, len(values))
	for i, v := range values {
		results[i] = formatValue(v)
	}
	return results, nil
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case common.Address:
		return x.Hex()
	case *big.Int:
		return x.String()
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return hexutil.Encode(x)
	default:
		return fmt.Sprint(v)
	}
}
