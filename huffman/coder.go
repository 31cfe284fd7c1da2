package huffman

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chronos-tachyon/squeeze"
	"github.com/chronos-tachyon/squeeze/bitseq"
)

// Encoded is the output of Coder.Encode: the packed bit blocks, in stream
// order, and the CodeTable needed to decode them.
type Encoded[S comparable] struct {
	Blocks []bitseq.Block
	Table  *CodeTable[S]
}

// Bits returns the total number of payload bits across all blocks.
func (enc Encoded[S]) Bits() int {
	var n int
	for _, b := range enc.Blocks {
		n += b.Len()
	}
	return n
}

// Coder is a Huffman codec.  It holds configuration only: each call to
// Encode builds a fresh CodeTable, so a Coder may be reused freely.
type Coder[S comparable] struct {
	blockSize int
	workers   int
}

// NewCoder returns a Coder that packs codes into blocks of at most blockSize
// bits and decodes with at most workers blocks in flight.  If workers <= 0,
// runtime.GOMAXPROCS(0) is used.
func NewCoder[S comparable](blockSize int, workers int) (*Coder[S], error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("huffman: block size %d: %w", blockSize, squeeze.ErrConfiguration)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Coder[S]{blockSize: blockSize, workers: workers}, nil
}

// BlockSize returns the maximum number of bits per block.
func (c *Coder[S]) BlockSize() int {
	return c.blockSize
}

// Encode builds a CodeTable for the symbols and packs their codes, in order,
// into blocks.  Empty input yields no blocks and an empty table.
func (c *Coder[S]) Encode(symbols []S) (Encoded[S], error) {
	table := Build(symbols)
	if len(symbols) == 0 {
		return Encoded[S]{Table: table}, nil
	}

	packer, err := bitseq.NewPacker(c.blockSize)
	if err != nil {
		return Encoded[S]{}, err
	}
	for _, symbol := range symbols {
		hc, _ := table.Code(symbol)
		if err := packer.Append(hc.Reversed().Bits, int(hc.Size)); err != nil {
			return Encoded[S]{}, fmt.Errorf("huffman: %w", err)
		}
	}
	return Encoded[S]{Blocks: packer.Blocks(), Table: table}, nil
}

// Decode unpacks every block against the table and returns the symbols in
// their original order.
//
// Blocks are independent of each other, so they are decoded concurrently by
// a bounded pool of goroutines; the per-block results are joined in block
// order afterward.
//
func (c *Coder[S]) Decode(enc Encoded[S]) ([]S, error) {
	if len(enc.Blocks) == 0 {
		return nil, nil
	}
	if enc.Table.Len() == 0 {
		return nil, fmt.Errorf("huffman: %d blocks but empty code table: %w", len(enc.Blocks), squeeze.ErrCorruptStream)
	}

	for index, b := range enc.Blocks {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("huffman: block %d: %w", index, err)
		}
	}

	d, err := NewDecoder(enc.Table)
	if err != nil {
		return nil, err
	}

	results := make([][]S, len(enc.Blocks))
	var g errgroup.Group
	g.SetLimit(c.workers)
	for index, b := range enc.Blocks {
		index, b := index, b
		g.Go(func() error {
			symbols, err := d.DecodeBits(bitseq.FromBlock(b))
			if err != nil {
				return fmt.Errorf("block %d: %w", index, err)
			}
			results[index] = symbols
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, symbols := range results {
		total += len(symbols)
	}
	out := make([]S, 0, total)
	for _, symbols := range results {
		out = append(out, symbols...)
	}
	return out, nil
}

var _ squeeze.Codec[byte, Encoded[byte]] = (*Coder[byte])(nil)
