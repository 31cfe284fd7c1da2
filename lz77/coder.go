package lz77

import (
	"fmt"

	"github.com/chronos-tachyon/squeeze"
)

// DefaultWindowSize is the default number of symbols searched for matches.
const DefaultWindowSize = 128

// DefaultMinMatch is the default shortest match worth a back-reference.  A
// back-reference to fewer symbols is not reliably smaller than the literals
// it replaces.
const DefaultMinMatch = 3

// Coder is an LZ77 codec.  It holds configuration only: the sliding window
// is created afresh by each call to Encode.
type Coder[S comparable] struct {
	windowSize int
	minMatch   int
}

// NewCoder returns a Coder that searches the last windowSize symbols for
// matches of at least minMatch symbols.
func NewCoder[S comparable](windowSize, minMatch int) (*Coder[S], error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("lz77: window size %d: %w", windowSize, squeeze.ErrConfiguration)
	}
	if minMatch <= 0 {
		return nil, fmt.Errorf("lz77: minimum match length %d: %w", minMatch, squeeze.ErrConfiguration)
	}
	return &Coder[S]{windowSize: windowSize, minMatch: minMatch}, nil
}

// WindowSize returns the window capacity, in symbols.
func (c *Coder[S]) WindowSize() int {
	return c.windowSize
}

// MinMatch returns the shortest match that is emitted as a back-reference.
func (c *Coder[S]) MinMatch() int {
	return c.minMatch
}

// Encode converts symbols into a Token stream.  At each position the longest
// match in the window wins; if it is shorter than MinMatch, a literal is
// emitted instead.
func (c *Coder[S]) Encode(symbols []S) ([]Token[S], error) {
	return c.encode(symbols, nil), nil
}

func (c *Coder[S]) encode(symbols []S, observe func(w *window[S])) []Token[S] {
	if len(symbols) == 0 {
		return nil
	}

	w := newWindow[S](c.windowSize)
	tokens := make([]Token[S], 0, len(symbols)/c.minMatch+1)
	for pos := 0; pos < len(symbols); {
		step := 1
		if distance, length := w.longestMatch(symbols[pos:], c.minMatch); length > 0 {
			tokens = append(tokens, ReferenceToken[S](distance, length))
			step = length
		} else {
			tokens = append(tokens, LiteralToken(symbols[pos]))
		}
		w.push(symbols[pos : pos+step])
		pos += step
		if observe != nil {
			observe(w)
		}
	}
	return tokens
}

// Decode replays a Token stream.  Back-references may overlap the symbols
// they produce (Distance < Length); such copies proceed one symbol at a time.
func (c *Coder[S]) Decode(tokens []Token[S]) ([]S, error) {
	return Decode(tokens)
}

// Decode replays a Token stream.  It needs no configuration, so it is also
// available without a Coder.
func Decode[S comparable](tokens []Token[S]) ([]S, error) {
	var out []S
	for index, tok := range tokens {
		if !tok.IsReference() {
			out = append(out, tok.Literal)
			continue
		}
		if tok.Distance < 1 || tok.Length < 1 || tok.Distance > len(out) {
			return nil, fmt.Errorf("lz77: token %d %s with %d symbols decoded: %w", index, tok, len(out), squeeze.ErrInvalidReference)
		}
		from := len(out) - tok.Distance
		for i := 0; i < tok.Length; i++ {
			out = append(out, out[from+i])
		}
	}
	return out, nil
}

var _ squeeze.Codec[byte, []Token[byte]] = (*Coder[byte])(nil)
