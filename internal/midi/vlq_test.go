package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeVLQ is the standard MIDI delta-time decoder.
func decodeVLQ(b []byte) int64 {
	var n int64
	for _, x := range b {
		n = n<<7 | int64(x&0x7F)
	}
	return n
}

func TestVariableLengthQuantity(t *testing.T) {
	tests := []struct {
		n    int64
		want []byte
	}{
		{0x00, []byte{0x00}},
		{0x40, []byte{0x40}},
		{0x7F, []byte{0x7F}},
		{0x80, []byte{0x81, 0x00}},
		{0x2000, []byte{0xC0, 0x00}},
		{0x3FFF, []byte{0xFF, 0x7F}},
		{0x4000, []byte{0x81, 0x80, 0x00}},
		{0x100000, []byte{0xC0, 0x80, 0x00}},
		{0x1FFFFF, []byte{0xFF, 0xFF, 0x7F}},
		{0x200000, []byte{0x81, 0x80, 0x80, 0x00}},
		{0x8000000, []byte{0xC0, 0x80, 0x80, 0x00}},
		{0xFFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
		{Division, []byte{0xB4, 0x40}},
	}
	for _, tt := range tests {
		got, err := VariableLengthQuantity(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "n=%#x", tt.n)
		assert.Equal(t, tt.n, decodeVLQ(got), "n=%#x", tt.n)
	}
}

func TestVariableLengthQuantityWidths(t *testing.T) {
	one, err := VariableLengthQuantity(127)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	two, err := VariableLengthQuantity(128)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestVariableLengthQuantityOutOfRange(t *testing.T) {
	for _, n := range []int64{-1, 0x10000000} {
		_, err := VariableLengthQuantity(n)
		assert.True(t, IsEncodingError(err, ErrCodeDeltaOutOfRange), "n=%#x", n)
	}
}

func TestFourteenBit(t *testing.T) {
	tests := []struct {
		n    uint16
		want [2]byte
	}{
		{0, [2]byte{0x00, 0x00}},
		{1, [2]byte{0x01, 0x00}},
		{128, [2]byte{0x00, 0x01}},
		{8192, [2]byte{0x00, 0x40}},
		{7631, [2]byte{0x4F, 0x3B}},
		{16383, [2]byte{0x7F, 0x7F}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FourteenBit(tt.n), "n=%d", tt.n)
	}
}
