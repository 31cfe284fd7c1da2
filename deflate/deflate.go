// Package deflate chains the lz77 and huffman codecs: the LZ77 Token stream
// is Huffman-coded, with each distinct Token treated as one symbol of the
// Huffman alphabet.
//
// The format is private to this module; it is not compatible with RFC 1951.
package deflate

import (
	"fmt"

	"github.com/chronos-tachyon/squeeze"
	"github.com/chronos-tachyon/squeeze/bitseq"
	"github.com/chronos-tachyon/squeeze/huffman"
	"github.com/chronos-tachyon/squeeze/lz77"
)

// Coder is the composite codec.
type Coder[S comparable] struct {
	lz *lz77.Coder[S]
	hf *huffman.Coder[lz77.Token[S]]
}

// NewCoder returns a Coder with the given LZ77 window and minimum match, and
// the given Huffman block size and decode parallelism.
func NewCoder[S comparable](windowSize, minMatch, blockSize, workers int) (*Coder[S], error) {
	lz, err := lz77.NewCoder[S](windowSize, minMatch)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	hf, err := huffman.NewCoder[lz77.Token[S]](blockSize, workers)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return &Coder[S]{lz: lz, hf: hf}, nil
}

// New returns a Coder with default settings.
func New[S comparable]() *Coder[S] {
	c, err := NewCoder[S](lz77.DefaultWindowSize, lz77.DefaultMinMatch, bitseq.DefaultBlockSize, 0)
	if err != nil {
		panic(err)
	}
	return c
}

// Encode runs the symbols through LZ77 and Huffman-codes the Tokens.  The
// returned Table is the only side channel needed to decode the Blocks; the
// Coder keeps no reference to it.
func (c *Coder[S]) Encode(symbols []S) (huffman.Encoded[lz77.Token[S]], error) {
	tokens, err := c.lz.Encode(symbols)
	if err != nil {
		return huffman.Encoded[lz77.Token[S]]{}, fmt.Errorf("deflate: %w", err)
	}
	enc, err := c.hf.Encode(tokens)
	if err != nil {
		return huffman.Encoded[lz77.Token[S]]{}, fmt.Errorf("deflate: %w", err)
	}
	return enc, nil
}

// Decode recovers the Tokens with Huffman and replays them with LZ77.
func (c *Coder[S]) Decode(enc huffman.Encoded[lz77.Token[S]]) ([]S, error) {
	tokens, err := c.hf.Decode(enc)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	symbols, err := c.lz.Decode(tokens)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return symbols, nil
}

// EncodedSize returns the payload size of enc in bytes: the total number of
// block bits, rounded up to a whole byte.  The code table is not counted.
func EncodedSize[S comparable](enc huffman.Encoded[lz77.Token[S]]) int {
	return (enc.Bits() + 7) / 8
}

var _ squeeze.Codec[byte, huffman.Encoded[lz77.Token[byte]]] = (*Coder[byte])(nil)
