package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const vitalik = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"

// ---------------------------------------------------------------------------
// IsValid / IsHex
// ---------------------------------------------------------------------------

func TestIsValidFullAddress(t *testing.T) {
	assert.True(t, IsValid(vitalik))
}

func TestIsValidRejectsMissingPrefix(t *testing.T) {
	assert.False(t, IsValid(strings.TrimPrefix(vitalik, "0x")))
}

func TestIsValidRejectsWrongLength(t *testing.T) {
	assert.False(t, IsValid("0x1234"))
	assert.False(t, IsValid(vitalik+"00"))
	assert.False(t, IsValid(""))
}

func TestIsValidAcceptsNonHexOfRightShape(t *testing.T) {
	// Shape-only check: 42 chars starting with 0x passes even when the
	// body is not hex. IsHex is the strict variant.
	junk := "0x" + strings.Repeat("z", 40)
	assert.True(t, IsValid(junk))
	assert.False(t, IsHex(junk))
}

func TestIsHex(t *testing.T) {
	assert.True(t, IsHex(vitalik))
	assert.True(t, IsHex("0x"+strings.ToUpper(vitalik[2:])))
	assert.False(t, IsHex(vitalik[:40]))
	assert.False(t, IsHex("d8da6bf26964af9d7eed9e03e53415d37aa96045"))
}

// ---------------------------------------------------------------------------
// Truncate
// ---------------------------------------------------------------------------

func TestTruncate(t *testing.T) {
	assert.Equal(t, "0x12...7890", Truncate("0x1234567890123456789012345678901234567890"))
}

func TestTruncateShortInputUnchanged(t *testing.T) {
	assert.Equal(t, "0x12", Truncate("0x12"))
}

// ---------------------------------------------------------------------------
// Equal
// ---------------------------------------------------------------------------

func TestEqualIgnoresCase(t *testing.T) {
	assert.True(t, Equal(vitalik, "0x"+strings.ToUpper(vitalik[2:])))
	assert.False(t, Equal(vitalik, "0x1234567890123456789012345678901234567890"))
}

// ---------------------------------------------------------------------------
// Checksum (EIP-55 test vectors)
// ---------------------------------------------------------------------------

func TestChecksumKnownVectors(t *testing.T) {
	cases := map[string]string{
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359": "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb": "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xd1220a0cf47c7b9be7a2e6ba89f429762e7b9adb": "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	}
	for in, want := range cases {
		assert.Equal(t, want, Checksum(in))
	}
}

func TestChecksumInvalidInput(t *testing.T) {
	assert.Equal(t, "", Checksum("0x1234"))
	assert.Equal(t, "", Checksum("0x"+strings.Repeat("z", 40)))
}

func TestVerifyChecksum(t *testing.T) {
	assert.Equal(t, ChecksumValid, VerifyChecksum("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.Equal(t, ChecksumMissing, VerifyChecksum("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.Equal(t, ChecksumMissing, VerifyChecksum("0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"))
	assert.Equal(t, ChecksumMismatch, VerifyChecksum("0x5Aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.Equal(t, ChecksumInvalid, VerifyChecksum("not-an-address"))
}
