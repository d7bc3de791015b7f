package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// ParseUnits
// ---------------------------------------------------------------------------

func TestParseUnitsWholeNumber(t *testing.T) {
	v, err := ParseUnits("100", 6)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100_000_000), v)
}

func TestParseUnitsOneDecimal(t *testing.T) {
	v, err := ParseUnits("1.0", 6)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000), v)
}

func TestParseUnitsFullPrecision(t *testing.T) {
	v, err := ParseUnits("0.123456", 6)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(123_456), v)
}

func TestParseUnitsBareFraction(t *testing.T) {
	v, err := ParseUnits(".5", 6)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(500_000), v)
}

func TestParseUnitsTrailingDot(t *testing.T) {
	v, err := ParseUnits("2.", 6)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2_000_000), v)
}

func TestParseUnitsExcessPrecisionTruncated(t *testing.T) {
	v, err := ParseUnits("0.1234567899", 6)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(123_456), v)
}

func TestParseUnitsZero(t *testing.T) {
	v, err := ParseUnits("0", 6)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Int64())
}

func TestParseUnitsInvalid(t *testing.T) {
	for _, s := range []string{"", ".", "1.2.3", "abc", "-1", "+1", "1e6", "1,5", " 1"} {
		_, err := ParseUnits(s, 6)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", s)
	}
}

// ---------------------------------------------------------------------------
// FormatUnits
// ---------------------------------------------------------------------------

func TestFormatUnitsZero(t *testing.T) {
	assert.Equal(t, "0", FormatUnits(big.NewInt(0), 6))
}

func TestFormatUnitsSubUnit(t *testing.T) {
	assert.Equal(t, "0.123456", FormatUnits(big.NewInt(123_456), 6))
}

func TestFormatUnitsTrimsTrailingZeros(t *testing.T) {
	assert.Equal(t, "1", FormatUnits(big.NewInt(1_000_000), 6))
	assert.Equal(t, "1.5", FormatUnits(big.NewInt(1_500_000), 6))
}

func TestFormatUnitsLargeValue(t *testing.T) {
	v, _ := new(big.Int).SetString("123456789012345", 10)
	assert.Equal(t, "123456789.012345", FormatUnits(v, 6))
}

func TestFormatUnitsNil(t *testing.T) {
	assert.Equal(t, "0", FormatUnits(nil, 6))
}

// ---------------------------------------------------------------------------
// Round-trip law
// ---------------------------------------------------------------------------

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"0.123456", "1.5", "100", "0.000001", "42.000042", "7"} {
		v, err := ParseUnits(s, 6)
		require.NoError(t, err)
		back, err := ParseUnits(FormatUnits(v, 6), 6)
		require.NoError(t, err)
		assert.Equal(t, v, back, "round-trip of %q", s)
	}
}

// ---------------------------------------------------------------------------
// FormatFixed
// ---------------------------------------------------------------------------

func TestFormatFixedSixPlaces(t *testing.T) {
	assert.Equal(t, "0.500000", FormatFixed(big.NewInt(500_000), 6, 6))
	assert.Equal(t, "1.000000", FormatFixed(big.NewInt(1_000_000), 6, 6))
}

func TestFormatFixedZeroPlaces(t *testing.T) {
	assert.Equal(t, "1", FormatFixed(big.NewInt(1_500_000), 6, 0))
}

func TestFormatFixedNilIsZero(t *testing.T) {
	assert.Equal(t, "0.000000", FormatFixed(nil, 6, 6))
}
