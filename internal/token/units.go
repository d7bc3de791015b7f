// Package token implements the fixed-point minor-unit codec for ERC-20
// amounts. USDC uses 6 decimals (not 18 like most tokens), so "1.5" is
// 1_500_000 minor units.
package token

import (
	"errors"
	"math/big"
	"strings"
)

// ErrInvalidAmount is returned when a string is not a valid non-negative
// decimal amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseUnits converts a human decimal string to minor units. The fractional
// part is right-padded or truncated to exactly decimals digits, so extra
// precision is dropped rather than rejected.
func ParseUnits(s string, decimals int) (*big.Int, error) {
	if s == "" {
		return nil, ErrInvalidAmount
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return nil, ErrInvalidAmount
		}
	}
	if intPart == "" && fracPart == "" {
		return nil, ErrInvalidAmount
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return nil, ErrInvalidAmount
	}

	if len(fracPart) > decimals {
		fracPart = fracPart[:decimals]
	}
	fracPart += strings.Repeat("0", decimals-len(fracPart))

	combined := intPart + fracPart
	if combined == "" {
		combined = "0"
	}
	v, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, ErrInvalidAmount
	}
	return v, nil
}

// FormatUnits converts minor units to a decimal string with trailing zeros
// trimmed. Zero formats as "0"; values below one unit keep a leading zero,
// e.g. 123456 with 6 decimals is "0.123456".
func FormatUnits(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}
	if decimals <= 0 {
		return v.String()
	}

	div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	intPart, fracPart := new(big.Int).QuoRem(v, div, new(big.Int))

	frac := fracPart.String()
	frac = strings.Repeat("0", decimals-len(frac)) + frac
	frac = strings.TrimRight(frac, "0")

	if frac == "" {
		return intPart.String()
	}
	return intPart.String() + "." + frac
}

// FormatFixed renders minor units with exactly places fractional digits,
// e.g. FormatFixed(500000, 6, 6) == "0.500000". Used for quick-fill
// amounts and balance display, which always show six places.
func FormatFixed(v *big.Int, decimals, places int) string {
	if v == nil {
		v = big.NewInt(0)
	}
	div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	intPart, fracPart := new(big.Int).QuoRem(v, div, new(big.Int))

	frac := fracPart.String()
	frac = strings.Repeat("0", decimals-len(frac)) + frac
	if places <= len(frac) {
		frac = frac[:places]
	} else {
		frac += strings.Repeat("0", places-len(frac))
	}

	if places == 0 {
		return intPart.String()
	}
	return intPart.String() + "." + frac
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
