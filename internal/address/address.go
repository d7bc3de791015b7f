package address

import (
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

// hexAddrRe matches a full 20-byte hex address with 0x prefix.
var hexAddrRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsValid reports whether s has the shape of an address: "0x" prefix and
// 42 characters total. It deliberately does not check hex content or
// checksum — callers that need the strict form use IsHex.
func IsValid(s string) bool {
	return strings.HasPrefix(s, "0x") && len(s) == 42
}

// IsHex reports whether s is a well-formed 0x-prefixed 40-digit hex address.
func IsHex(s string) bool {
	return hexAddrRe.MatchString(s)
}

// Truncate shortens an address for display: first 4 chars + "..." + last 4.
// "0x1234...7890" for a full address. Inputs shorter than 8 chars are
// returned unchanged.
func Truncate(addr string) string {
	if len(addr) < 8 {
		return addr
	}
	return addr[:4] + "..." + addr[len(addr)-4:]
}

// Equal compares two addresses case-insensitively.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Checksum converts an address to its EIP-55 mixed-case form.
// The input may be any casing, with or without the 0x prefix.
// Returns "" for inputs that are not 40 hex digits.
func Checksum(addr string) string {
	clean := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X"))
	if len(clean) != 40 {
		return ""
	}
	if _, err := hex.DecodeString(clean); err != nil {
		return ""
	}

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(clean))
	hash := hex.EncodeToString(h.Sum(nil))

	var result strings.Builder
	result.WriteString("0x")
	for i, c := range clean {
		if c >= '0' && c <= '9' {
			result.WriteByte(byte(c))
		} else if hash[i] >= '8' {
			result.WriteByte(byte(c - 32)) // to uppercase
		} else {
			result.WriteByte(byte(c))
		}
	}
	return result.String()
}

// ChecksumStatus classifies an address against EIP-55.
type ChecksumStatus int

const (
	ChecksumInvalid      ChecksumStatus = iota // not a hex address at all
	ChecksumMissing                            // valid address, all one case
	ChecksumMismatch                           // mixed case but wrong
	ChecksumValid                              // correctly checksummed
)

// VerifyChecksum reports how addr relates to its EIP-55 form.
func VerifyChecksum(addr string) ChecksumStatus {
	checksummed := Checksum(addr)
	if checksummed == "" {
		return ChecksumInvalid
	}
	norm := addr
	if !strings.HasPrefix(norm, "0x") {
		norm = "0x" + norm
	}
	if norm == checksummed {
		return ChecksumValid
	}
	if norm == strings.ToLower(norm) || norm[2:] == strings.ToUpper(norm[2:]) {
		return ChecksumMissing
	}
	return ChecksumMismatch
}
