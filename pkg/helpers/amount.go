package helpers

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatUnits formats an amount in base units as a decimal string.
// For example, FormatUnits(1500000, 6) returns "1.5".
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(amount, divisor, frac)

	if frac.Sign() == 0 {
		return whole.String()
	}

	fracStr := fmt.Sprintf("%0*s", int(decimals), frac.String())
	fracStr = strings.TrimRight(fracStr, "0")

	return whole.String() + "." + fracStr
}

// ParseUnits parses a non-negative decimal integer string into base units.
// Token amounts arrive unscaled, so only whole numbers are accepted.
func ParseUnits(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty amount string")
	}
	val, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", s)
	}
	if val.Sign() < 0 {
		return nil, fmt.Errorf("negative amount: %s", s)
	}
	return val, nil
}
