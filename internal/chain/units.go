package chain

import (
	"math/big"
	"strings"
)

// NativeDecimals is the base-unit exponent of the native currency (wei → ETH).
const NativeDecimals = 18

// FormatEther converts a wei amount to a human-readable ETH string.
func FormatEther(wei *big.Int) string { return FormatUnits(wei, NativeDecimals) }

// FormatUnits renders raw base units as a decimal string with decimals
// fractional digits, trimming trailing zeros but keeping at least one
// fractional digit: 1500000000000000000 @18 → "1.5", 0 → "0.0".
// The conversion works on the decimal digits, so no precision is lost.
func FormatUnits(raw *big.Int, decimals int) string {
	if raw == nil {
		raw = new(big.Int)
	}
	if decimals < 0 {
		decimals = 0
	}

	digits := new(big.Int).Abs(raw).String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-decimals]
	frac := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if frac == "" {
		frac = "0"
	}

	s := whole + "." + frac
	if raw.Sign() < 0 {
		s = "-" + s
	}
	return s
}
