package bitseq

import (
	"fmt"
	"math/big"

	"github.com/chronos-tachyon/squeeze"
)

// DefaultBlockSize is the default capacity of a Block, in bits.
const DefaultBlockSize = 1024

// Block is a bounded run of bits stored as a number.  Storing bits as a
// number drops any leading 0 bits, so their count is kept alongside.
//
// The bits of a Block are LeadingZeros 0 bits followed by the binary digits of
// Value, most significant first.  A zero or nil Value contributes no bits.
//
type Block struct {
	LeadingZeros int
	Value        *big.Int
}

// Len returns the number of bits in the Block.
func (b Block) Len() int {
	if b.Value == nil {
		return b.LeadingZeros
	}
	return b.LeadingZeros + b.Value.BitLen()
}

// Validate reports squeeze.ErrCorruptStream if the Block cannot hold bits: a
// negative LeadingZeros count or a negative Value.
func (b Block) Validate() error {
	if b.LeadingZeros < 0 {
		return fmt.Errorf("block leading zero count %d: %w", b.LeadingZeros, squeeze.ErrCorruptStream)
	}
	if b.Value != nil && b.Value.Sign() < 0 {
		return fmt.Errorf("block value %v is negative: %w", b.Value, squeeze.ErrCorruptStream)
	}
	return nil
}

// Equal reports whether two Blocks hold the same bits.
func (b Block) Equal(other Block) bool {
	if b.LeadingZeros != other.LeadingZeros {
		return false
	}
	return value(b).Cmp(value(other)) == 0
}

// String returns a programmer-readable form of the Block.
func (b Block) String() string {
	return fmt.Sprintf("(%d, %#x)", b.LeadingZeros, value(b))
}

var _ fmt.Stringer = Block{}

func value(b Block) *big.Int {
	if b.Value == nil {
		return new(big.Int)
	}
	return b.Value
}

// Packer cuts a stream of variable-length codes into Blocks of at most
// Capacity bits.  A code is never split across two Blocks: a code that does
// not fit in the current Block starts the next one.
type Packer struct {
	capacity int
	current  Sequence
	blocks   []Block
}

// NewPacker returns a Packer producing Blocks of at most capacity bits.
func NewPacker(capacity int) (*Packer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("block capacity %d: %w", capacity, squeeze.ErrConfiguration)
	}
	return &Packer{capacity: capacity}, nil
}

// Capacity returns the maximum number of bits per Block.
func (p *Packer) Capacity() int {
	return p.capacity
}

// Append appends one code, given as the low n bits of bits with the first bit
// most significant.
func (p *Packer) Append(bits uint64, n int) error {
	if n > p.capacity {
		return fmt.Errorf("code of %d bits exceeds block capacity %d: %w", n, p.capacity, squeeze.ErrConfiguration)
	}
	if p.current.Len()+n > p.capacity {
		p.flush()
	}
	p.current.AppendBits(bits, n)
	return nil
}

// Blocks flushes any partial Block and returns every Block produced so far,
// in stream order.
func (p *Packer) Blocks() []Block {
	if p.current.Len() != 0 {
		p.flush()
	}
	return p.blocks
}

func (p *Packer) flush() {
	p.blocks = append(p.blocks, p.current.Block())
	p.current.Reset()
}
