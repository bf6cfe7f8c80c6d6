package ibmfloat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeZero(t *testing.T) {
	data, err := Encode(0, 8)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 8), data)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := []float64{1, -1, 2, -2, 0.5, 100, -100, 1.23e-78, 1.23e74, MinMagnitude, MaxMagnitude, -MinMagnitude, -MaxMagnitude}
	for _, v := range values {
		data, err := Encode(v, 8)
		require.NoError(t, err, "encode %v", v)
		got, mv, isMissing, err := Decode(data)
		require.NoError(t, err, "decode %v", v)
		require.False(t, isMissing)
		require.Equal(t, MissingValue(0), mv)
		// The 56-bit IBM mantissa is wider than binary64's 53-bit
		// significand, so Encode keeps every significand bit and these
		// round trips are exact; InEpsilon is a looser check than that.
		require.InEpsilonf(t, v, got, 1e-12, "round trip of %v produced %v", v, got)
	}
}

func TestEncodeOne(t *testing.T) {
	data, err := Encode(1, 8)
	require.NoError(t, err)
	// 1.0 is the textbook IBM hex-float value: sign=0, biased exponent
	// 65 (0x41), mantissa 0x10 followed by six zero bytes.
	require.Equal(t, []byte{0x41, 0x10, 0, 0, 0, 0, 0, 0}, data)
}

func TestEncodeMinusOne(t *testing.T) {
	data, err := Encode(-1, 8)
	require.NoError(t, err)
	require.Equal(t, []byte{0xC1, 0x10, 0, 0, 0, 0, 0, 0}, data)
}

func TestEncodeRangeRejection(t *testing.T) {
	_, err := Encode(MinMagnitude/2, 8)
	require.Error(t, err)
	require.Contains(t, err.Error(), "smaller than pow(2, -260)")

	_, err = Encode(MaxMagnitude*2, 8)
	require.Error(t, err)
	require.Contains(t, err.Error(), "larger than pow(2, 248)")
}

func TestTruncatedLengthRoundTrip(t *testing.T) {
	for length := 2; length <= 8; length++ {
		data, err := Encode(5, length)
		require.NoError(t, err)
		require.Len(t, data, length)

		got, _, isMissing, err := Decode(data)
		require.NoError(t, err)
		require.False(t, isMissing)
		require.InDelta(t, 5.0, got, 0.01)
	}
}

func TestMissingValueRoundTrip(t *testing.T) {
	for _, mv := range All28() {
		data := EncodeMissing(mv, 8)
		value, decoded, isMissing, err := Decode(data)
		require.NoError(t, err)
		require.True(t, isMissing)
		require.Equal(t, mv, decoded)
		require.Zero(t, value)
	}
}

func TestMissingValueStrings(t *testing.T) {
	require.Equal(t, ".", Standard.String())
	require.Equal(t, "._", Underscore.String())
	require.Equal(t, ".A", Lettered('A').String())
	require.Equal(t, ".Z", Lettered('Z').String())
}

func TestDecodeMalformedMantissaZero(t *testing.T) {
	data := []byte{0x41, 0, 0, 0, 0, 0, 0, 0}
	_, _, _, err := Decode(data)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mantissa is zero but value is not 0 or a MissingValue")
}

func TestDecodeZeroExtendsShortFields(t *testing.T) {
	data, err := Encode(42, 2)
	require.NoError(t, err)
	require.Len(t, data, 2)
	got, _, isMissing, err := Decode(data)
	require.NoError(t, err)
	require.False(t, isMissing)
	require.InDelta(t, 42.0, got, 1.0)
}

func TestLetteredPanicsOutOfRange(t *testing.T) {
	require.Panics(t, func() { Lettered('0') })
}

func TestEncodeNegativeZero(t *testing.T) {
	data, err := Encode(math.Copysign(0, -1), 8)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 8), data)
}
