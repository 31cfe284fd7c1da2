// Package lzw implements Lempel-Ziv-Welch compression over arbitrary
// comparable symbols.
//
// The encoder and the decoder each grow a Dictionary by the same rule, one
// entry per step, starting from the same base alphabet, so code N names the
// same symbol string on both sides without the Dictionary being transmitted.
//
package lzw

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/squeeze"
)

// noPrefix is the prefix code of a single-symbol string.
const noPrefix = -1

// Dictionary maps symbol strings to integer codes and back.
//
// Every string in the Dictionary is either a single symbol of the base
// alphabet or an earlier entry extended by one symbol, so each entry is stored
// as a (prefix code, last symbol) pair rather than as the whole string.
//
type Dictionary[S comparable] struct {
	index   map[link[S]]int
	entries []entry[S]
	base    int
}

type link[S comparable] struct {
	prefix int
	symbol S
}

type entry[S comparable] struct {
	link[S]
	first  S
	length int
}

// NewDictionary returns a Dictionary seeded with the given alphabet: the i'th
// symbol receives code i.  It fails with squeeze.ErrConfiguration if the
// alphabet is empty or lists a symbol twice.
func NewDictionary[S comparable](alphabet []S) (*Dictionary[S], error) {
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("lzw: empty alphabet: %w", squeeze.ErrConfiguration)
	}
	d := &Dictionary[S]{
		index:   make(map[link[S]]int, 2*len(alphabet)),
		entries: make([]entry[S], 0, 2*len(alphabet)),
		base:    len(alphabet),
	}
	for _, symbol := range alphabet {
		if _, dupe := d.Lookup(noPrefix, symbol); dupe {
			return nil, fmt.Errorf("lzw: symbol %v listed more than once in alphabet: %w", symbol, squeeze.ErrConfiguration)
		}
		d.add(noPrefix, symbol)
	}
	return d, nil
}

// Len returns the number of entries, which is the alphabet size plus the
// number of entries added since.
func (d *Dictionary[S]) Len() int {
	return len(d.entries)
}

// Base returns the size of the base alphabet.
func (d *Dictionary[S]) Base() int {
	return d.base
}

// Lookup returns the code for the string formed by the entry prefix extended
// by symbol.  A prefix of -1 looks up the single-symbol string.
func (d *Dictionary[S]) Lookup(prefix int, symbol S) (int, bool) {
	code, found := d.index[link[S]{prefix, symbol}]
	return code, found
}

// Has reports whether code names an entry.
func (d *Dictionary[S]) Has(code int) bool {
	return code >= 0 && code < len(d.entries)
}

// First returns the first symbol of the entry's string.
func (d *Dictionary[S]) First(code int) S {
	return d.entries[code].first
}

// Expand appends the entry's string to dst and returns the result.
func (d *Dictionary[S]) Expand(dst []S, code int) []S {
	n := d.entries[code].length
	start := len(dst)
	for i := 0; i < n; i++ {
		var zero S
		dst = append(dst, zero)
	}
	for i := start + n - 1; i >= start; i-- {
		e := d.entries[code]
		dst[i] = e.symbol
		code = e.prefix
	}
	return dst
}

// add appends a new entry and returns its code.
func (d *Dictionary[S]) add(prefix int, symbol S) int {
	e := entry[S]{link: link[S]{prefix, symbol}, first: symbol, length: 1}
	if prefix != noPrefix {
		p := d.entries[prefix]
		e.first = p.first
		e.length = p.length + 1
	}
	code := len(d.entries)
	d.entries = append(d.entries, e)
	d.index[e.link] = code
	return code
}

// Dump writes a programmer-readable debugging dump of the entries added
// beyond the base alphabet to the given writer.
func (d *Dictionary[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Dictionary{\n")
	fmt.Fprintf(&buf, "\tBase() = %d\n", d.base)
	fmt.Fprintf(&buf, "\tLen() = %d\n", d.Len())
	var scratch []S
	for code := d.base; code < len(d.entries); code++ {
		scratch = d.Expand(scratch[:0], code)
		fmt.Fprintf(&buf, "\t%d = %v\n", code, scratch)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
