package midi

import "slices"

// maxDelta is the largest value the four-byte variable-length encoding
// can carry.
const maxDelta = 0x0FFFFFFF

// VariableLengthQuantity encodes n as a MIDI delta time: the bits of n
// grouped into sevens, most significant group first, each group in a
// byte whose top bit is set on every byte except the last. Zero encodes
// as a single zero byte.
func VariableLengthQuantity(n int64) ([]byte, error) {
	if n < 0 || n > maxDelta {
		return nil, encodingErrorf(ErrCodeDeltaOutOfRange,
			"delta time %d outside 0..%d", n, maxDelta)
	}
	out := []byte{byte(n & 0x7F)}
	for n >>= 7; n > 0; n >>= 7 {
		out = append(out, byte(n&0x7F)|0x80)
	}
	slices.Reverse(out)
	return out, nil
}

// FourteenBit splits a 14-bit value into its low and high seven bits,
// one byte each with the top bit clear, low byte first. Pitch wheel
// events carry their bend size this way.
func FourteenBit(n uint16) [2]byte {
	return [2]byte{byte(n & 0x7F), byte(n >> 7 & 0x7F)}
}
