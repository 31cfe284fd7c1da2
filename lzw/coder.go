package lzw

import (
	"fmt"

	"github.com/chronos-tachyon/squeeze"
)

// ByteAlphabet returns the 256 byte values in order, so that byte b has
// code b.
func ByteAlphabet() []byte {
	out := make([]byte, 256)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

// AlphabetOf returns the distinct symbols of the input in order of first
// appearance.  The decoder must be given the same alphabet.
func AlphabetOf[S comparable](symbols []S) []S {
	seen := make(map[S]struct{})
	var out []S
	for _, symbol := range symbols {
		if _, found := seen[symbol]; !found {
			seen[symbol] = struct{}{}
			out = append(out, symbol)
		}
	}
	return out
}

// Coder is an LZW codec.  It keeps its own copy of the base alphabet and
// builds a new Dictionary from it on every call, so no entries carry over
// between calls.
type Coder[S comparable] struct {
	alphabet []S
}

// NewCoder returns a Coder whose dictionaries start from the given alphabet.
func NewCoder[S comparable](alphabet []S) (*Coder[S], error) {
	if _, err := NewDictionary(alphabet); err != nil {
		return nil, err
	}
	c := &Coder[S]{alphabet: make([]S, len(alphabet))}
	copy(c.alphabet, alphabet)
	return c, nil
}

// NewByteCoder returns a Coder over ByteAlphabet.
func NewByteCoder() *Coder[byte] {
	return &Coder[byte]{alphabet: ByteAlphabet()}
}

// Alphabet returns a copy of the base alphabet.
func (c *Coder[S]) Alphabet() []S {
	out := make([]S, len(c.alphabet))
	copy(out, c.alphabet)
	return out
}

func (c *Coder[S]) newDictionary() *Dictionary[S] {
	d, err := NewDictionary(c.alphabet)
	if err != nil {
		panic(err)
	}
	return d
}

// Encode converts symbols into codes.  It fails with squeeze.ErrUnknownSymbol
// if a symbol is not in the base alphabet.
func (c *Coder[S]) Encode(symbols []S) ([]int, error) {
	return c.encode(symbols, nil)
}

func (c *Coder[S]) encode(symbols []S, observe func(d *Dictionary[S])) ([]int, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	d := c.newDictionary()
	var codes []int
	elem := noPrefix
	for index, symbol := range symbols {
		single, found := d.Lookup(noPrefix, symbol)
		if !found {
			return nil, fmt.Errorf("lzw: symbol %v at index %d: %w", symbol, index, squeeze.ErrUnknownSymbol)
		}
		if elem == noPrefix {
			elem = single
			continue
		}
		if code, found := d.Lookup(elem, symbol); found {
			elem = code
			continue
		}
		codes = append(codes, elem)
		d.add(elem, symbol)
		elem = single
		if observe != nil {
			observe(d)
		}
	}
	codes = append(codes, elem)
	return codes, nil
}

// Decode converts codes back into symbols, growing its Dictionary by the same
// rule as Encode.  It fails with squeeze.ErrInvalidCode if a code is neither
// in the Dictionary nor the one code that the previous step is about to
// define.
func (c *Coder[S]) Decode(codes []int) ([]S, error) {
	return c.decode(codes, nil)
}

func (c *Coder[S]) decode(codes []int, observe func(d *Dictionary[S])) ([]S, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	d := c.newDictionary()
	out := make([]S, 0, len(codes))
	prev := noPrefix
	for index, code := range codes {
		switch {
		case d.Has(code):
			out = d.Expand(out, code)
			if prev != noPrefix {
				d.add(prev, d.First(code))
			}

		case code == d.Len() && prev != noPrefix:
			// The code refers to the entry this very step defines,
			// which must be the previous string extended by its own
			// first symbol.
			out = d.Expand(out, d.add(prev, d.First(prev)))

		default:
			return nil, fmt.Errorf("lzw: code %d at index %d with %d dictionary entries: %w", code, index, d.Len(), squeeze.ErrInvalidCode)
		}
		prev = code
		if observe != nil {
			observe(d)
		}
	}
	return out, nil
}

var _ squeeze.Codec[byte, []int] = (*Coder[byte])(nil)
