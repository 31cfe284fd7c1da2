// Package lz77 implements LZ77 sliding-window compression over arbitrary
// comparable symbols.
//
// Encoding produces a stream of Tokens: literals, and back-references that
// copy earlier output.
//
package lz77

import (
	"fmt"
	"strings"
)

// A Token is the basic unit of LZ77 compression: either a literal symbol or a
// back-reference.
//
// A back-reference (Length > 0) means "copy Length symbols, starting Distance
// symbols before the end of the output so far".  A literal (Length and
// Distance both 0) means "append Literal".  Any other Token is a malformed
// back-reference.
//
type Token[S comparable] struct {
	Distance int `json:"d,omitempty"`
	Length   int `json:"l,omitempty"`
	Literal  S   `json:"s"`
}

// LiteralToken returns a literal Token.
func LiteralToken[S comparable](symbol S) Token[S] {
	return Token[S]{Literal: symbol}
}

// ReferenceToken returns a back-reference Token.
func ReferenceToken[S comparable](distance, length int) Token[S] {
	return Token[S]{Distance: distance, Length: length}
}

// IsReference reports whether the Token is a back-reference, well-formed or
// not: any Token with a non-zero Length or Distance.
func (tok Token[S]) IsReference() bool {
	return tok.Length != 0 || tok.Distance != 0
}

// String renders a back-reference as <Length,Distance> and a literal as
// itself.
func (tok Token[S]) String() string {
	if tok.IsReference() {
		return fmt.Sprintf("<%d,%d>", tok.Length, tok.Distance)
	}
	return fmt.Sprintf("%v", tok.Literal)
}

var _ fmt.Stringer = Token[byte]{}

// Format renders a whole Token stream, concatenating each Token's String.
// For byte and rune streams the result reads like the input with repeats
// replaced by <Length,Distance> markers.
func Format[S comparable](tokens []Token[S]) string {
	var buf strings.Builder
	for _, tok := range tokens {
		if !tok.IsReference() {
			switch x := any(tok.Literal).(type) {
			case byte:
				buf.WriteByte(x)
				continue
			case rune:
				buf.WriteRune(x)
				continue
			}
		}
		buf.WriteString(tok.String())
	}
	return buf.String()
}
