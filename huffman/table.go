package huffman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/squeeze"
)

// CodeTable is a prefix-free mapping between symbols and Codes.  It is the
// only state that must travel alongside the encoded blocks.
//
// A CodeTable is immutable once constructed and may be shared between
// goroutines.
//
type CodeTable[S comparable] struct {
	codes   map[S]Code
	symbols []S
	minSize byte
	maxSize byte
}

// NewCodeTable constructs a CodeTable from the given assignment of Codes to
// symbols.  It fails with squeeze.ErrCorruptStream if any Code is empty or
// if the Codes are not prefix-free.
func NewCodeTable[S comparable](codes map[S]Code) (*CodeTable[S], error) {
	t := &CodeTable[S]{
		codes:   make(map[S]Code, len(codes)),
		symbols: make([]S, 0, len(codes)),
	}
	for symbol, hc := range codes {
		t.codes[symbol] = hc
		t.symbols = append(t.symbols, symbol)
	}
	t.sortSymbols()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Len returns the number of symbols in the table.
func (t *CodeTable[S]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.symbols)
}

// Code returns the Code assigned to symbol.
func (t *CodeTable[S]) Code(symbol S) (Code, bool) {
	if t == nil {
		return Code{}, false
	}
	hc, found := t.codes[symbol]
	return hc, found
}

// Symbols returns the table's symbols ordered by (code size, code bits).
func (t *CodeTable[S]) Symbols() []S {
	if t == nil {
		return nil
	}
	out := make([]S, len(t.symbols))
	copy(out, t.symbols)
	return out
}

// MinSize is the bit length of the shortest code.
func (t *CodeTable[S]) MinSize() byte {
	if t == nil {
		return 0
	}
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *CodeTable[S]) MaxSize() byte {
	if t == nil {
		return 0
	}
	return t.maxSize
}

// SizeBySymbol returns the bit length of each symbol's code, in the order
// returned by Symbols.
func (t *CodeTable[S]) SizeBySymbol() []byte {
	if t == nil {
		return nil
	}
	out := make([]byte, len(t.symbols))
	for index, symbol := range t.symbols {
		out[index] = t.codes[symbol].Size
	}
	return out
}

// Validate checks that no code is empty, too long, or a prefix of another.
func (t *CodeTable[S]) Validate() error {
	if t == nil {
		return nil
	}
	sorted := make(byDigits, 0, len(t.symbols))
	for _, symbol := range t.symbols {
		hc := t.codes[symbol]
		if hc.Size == 0 || hc.Size > MaxCodeSize {
			return fmt.Errorf("huffman: symbol %v has code of invalid size %d: %w", symbol, hc.Size, squeeze.ErrCorruptStream)
		}
		sorted = append(sorted, hc.Digits())
	}
	sorted.Sort()

	// In lexicographic order, a code that is a prefix of any other code is
	// also a prefix of its immediate successor.
	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if len(a) <= len(b) && b[:len(a)] == a {
			return fmt.Errorf("huffman: code %q is a prefix of code %q: %w", a, b, squeeze.ErrCorruptStream)
		}
	}
	return nil
}

// MarshalJSON encodes the table as a JSON object mapping each code, written
// as a string of '0' and '1' characters, to its symbol.
func (t *CodeTable[S]) MarshalJSON() ([]byte, error) {
	raw := make(map[string]S, t.Len())
	if t != nil {
		for symbol, hc := range t.codes {
			raw[hc.Digits()] = symbol
		}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes a table written by MarshalJSON.
func (t *CodeTable[S]) UnmarshalJSON(data []byte) error {
	var raw map[string]S
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	codes := make(map[S]Code, len(raw))
	for str, symbol := range raw {
		hc, err := ParseCode(str)
		if err != nil {
			return fmt.Errorf("huffman: %v: %w", err, squeeze.ErrCorruptStream)
		}
		if _, dupe := codes[symbol]; dupe {
			return fmt.Errorf("huffman: symbol %v has more than one code: %w", symbol, squeeze.ErrCorruptStream)
		}
		codes[symbol] = hc
	}
	parsed, err := NewCodeTable(codes)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (t *CodeTable[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.MaxSize())
	if t != nil {
		for _, symbol := range t.symbols {
			fmt.Fprintf(&buf, "\tCode(%v) = %s\n", symbol, t.codes[symbol])
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns a brief description of the table.
func (t *CodeTable[S]) String() string {
	return fmt.Sprintf("(Huffman code table with %d symbols, with coded lengths of %d .. %d bits)", t.Len(), t.MinSize(), t.MaxSize())
}

var _ fmt.Stringer = (*CodeTable[byte])(nil)
var _ json.Marshaler = (*CodeTable[byte])(nil)
var _ json.Unmarshaler = (*CodeTable[byte])(nil)

func (t *CodeTable[S]) sortSymbols() {
	list := bySize[S]{symbols: t.symbols, codes: t.codes}
	list.Sort()

	t.minSize, t.maxSize = 0, 0
	if len(t.symbols) != 0 {
		t.minSize = t.codes[t.symbols[0]].Size
		t.maxSize = t.codes[t.symbols[len(t.symbols)-1]].Size
	}
}

// type bySize {{{

type bySize[S comparable] struct {
	symbols []S
	codes   map[S]Code
}

func (list bySize[S]) Len() int {
	return len(list.symbols)
}

func (list bySize[S]) Swap(i, j int) {
	list.symbols[i], list.symbols[j] = list.symbols[j], list.symbols[i]
}

func (list bySize[S]) Less(i, j int) bool {
	a, b := list.codes[list.symbols[i]], list.codes[list.symbols[j]]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Digits() < b.Digits()
}

func (list bySize[S]) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = bySize[byte]{}

// }}}

// type byDigits {{{

type byDigits []string

func (list byDigits) Len() int {
	return len(list)
}

func (list byDigits) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byDigits) Less(i, j int) bool {
	return list[i] < list[j]
}

func (list byDigits) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = byDigits(nil)

// }}}
