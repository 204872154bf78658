package contract

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// parseABI decodes a JSON ABI array.
func parseABI(data string) (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(data))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("invalid ABI JSON: %w", err)
	}
	return parsed, nil
}

func mustParseABI(data string) abi.ABI {
	parsed, err := parseABI(data)
	if err != nil {
		panic(err)
	}
	return parsed
}
