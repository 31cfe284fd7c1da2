// Package bitseq implements growable bit sequences and the fixed-capacity
// blocks that encoded bit streams are cut into.
package bitseq

import (
	"math/big"
	mathbits "math/bits"
	"strings"

	"github.com/chronos-tachyon/assert"
)

const wordSize = 64

// Sequence is an ordered sequence of bits.  The zero value is an empty
// Sequence ready to use.
//
// Bits are stored most significant bit first, so a Sequence read as a binary
// number has its first bit as the most significant digit.
//
type Sequence struct {
	words []uint64
	size  int
}

// Len returns the number of bits in the Sequence.
func (s *Sequence) Len() int {
	return s.size
}

// Reset empties the Sequence, keeping its storage.
func (s *Sequence) Reset() {
	s.words = s.words[:0]
	s.size = 0
}

// AppendBit appends a single bit.  Only the least significant bit of bit is
// used.
func (s *Sequence) AppendBit(bit uint) {
	s.AppendBits(uint64(bit&1), 1)
}

// AppendBits appends the low n bits of bits, most significant of those bits
// first.  The bits may straddle a word boundary.
func (s *Sequence) AppendBits(bits uint64, n int) {
	assert.Assertf(n >= 0 && n <= wordSize, "n %d out of range [0, %d]", n, wordSize)
	if n == 0 {
		return
	}
	if n < wordSize {
		bits &= (uint64(1) << uint(n)) - 1
	}

	used := s.size % wordSize
	if used == 0 {
		s.words = append(s.words, bits<<uint(wordSize-n))
		s.size += n
		return
	}

	free := wordSize - used
	last := len(s.words) - 1
	if n <= free {
		s.words[last] |= bits << uint(free-n)
	} else {
		spill := n - free
		s.words[last] |= bits >> uint(spill)
		s.words = append(s.words, bits<<uint(wordSize-spill))
	}
	s.size += n
}

// At returns the i'th bit, counting from 0.
func (s *Sequence) At(i int) uint {
	assert.Assertf(i >= 0 && i < s.size, "index %d out of range [0, %d)", i, s.size)
	word := s.words[i/wordSize]
	return uint(word>>uint(wordSize-1-i%wordSize)) & 1
}

// LeadingZeros returns the length of the run of 0 bits at the start of the
// Sequence.  An all-zero Sequence returns Len().
func (s *Sequence) LeadingZeros() int {
	for index, word := range s.words {
		if word != 0 {
			n := index*wordSize + mathbits.LeadingZeros64(word)
			if n > s.size {
				n = s.size
			}
			return n
		}
	}
	return s.size
}

// Block converts the Sequence into a Block holding the same bits.
func (s *Sequence) Block() Block {
	buf := make([]byte, 0, len(s.words)*8)
	for _, word := range s.words {
		for shift := wordSize - 8; shift >= 0; shift -= 8 {
			buf = append(buf, byte(word>>uint(shift)))
		}
	}
	value := new(big.Int).SetBytes(buf)
	value.Rsh(value, uint(len(s.words)*wordSize-s.size))
	return Block{
		LeadingZeros: s.size - value.BitLen(),
		Value:        value,
	}
}

// String returns the bits as a string of '0' and '1' characters.
func (s *Sequence) String() string {
	var buf strings.Builder
	buf.Grow(s.size)
	for i := 0; i < s.size; i++ {
		buf.WriteByte('0' + byte(s.At(i)))
	}
	return buf.String()
}

// FromBlock rebuilds the bit Sequence stored in b, restoring its leading zero
// bits.  The Block must pass Validate.
func FromBlock(b Block) *Sequence {
	assert.Assertf(b.Validate() == nil, "invalid block %v", b)
	s := &Sequence{}
	s.words = make([]uint64, 0, (b.Len()+wordSize-1)/wordSize)
	for n := b.LeadingZeros; n > 0; {
		chunk := n
		if chunk > wordSize {
			chunk = wordSize
		}
		s.AppendBits(0, chunk)
		n -= chunk
	}
	if b.Value != nil {
		for i := b.Value.BitLen() - 1; i >= 0; i-- {
			s.AppendBit(b.Value.Bit(i))
		}
	}
	return s
}
