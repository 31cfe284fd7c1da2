package huffman

import (
	"fmt"
	mathbits "math/bits"
	"strconv"
	"strings"
)

// MaxCodeSize is the longest code, in bits, that a Code can hold.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The least significant bit
	// of Bits is the first bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// MakeReversedCode constructs a Code from a sequence of bits that's in the
// wrong order, i.e. the least significant bit is the *last* bit in the
// sequence, instead of the first.
func MakeReversedCode(size byte, bits uint64) Code {
	return MakeCode(size, reverseBits(size, bits))
}

// ParseCode parses a string of '0' and '1' characters, first bit first.
func ParseCode(str string) (Code, error) {
	if len(str) == 0 || len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("invalid code %q: length %d not in [1, %d]", str, len(str), MaxCodeSize)
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
		case '1':
			hc.Bits |= uint64(1) << uint(i)
		default:
			return Code{}, fmt.Errorf("invalid code %q: unexpected character %q", str, str[i])
		}
		hc.Size++
	}
	return hc, nil
}

// Reversed returns the corresponding Code with the bits in reverse order.
func (hc Code) Reversed() Code {
	return MakeReversedCode(hc.Size, hc.Bits)
}

// Append returns the Code extended by one bit.
func (hc Code) Append(bit uint) Code {
	hc.Bits |= uint64(bit&1) << hc.Size
	hc.Size++
	return hc
}

// HasPrefix reports whether prefix is a prefix of hc.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	if prefix.Size == MaxCodeSize {
		return hc.Bits == prefix.Bits
	}
	mask := (uint64(1) << prefix.Size) - 1
	return hc.Bits&mask == prefix.Bits
}

// Digits returns the bits as '0' and '1' characters, first bit first.
func (hc Code) Digits() string {
	var buf strings.Builder
	buf.Grow(int(hc.Size))
	for i := byte(0); i < hc.Size; i++ {
		buf.WriteByte('0' + byte(hc.Bits>>i&1))
	}
	return buf.String()
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.Digits())
}

var _ fmt.Stringer = Code{}

func reverseBits(size byte, bits uint64) uint64 {
	if size == 0 {
		return 0
	}
	return mathbits.Reverse64(bits) >> (64 - size)
}
