package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/squeeze"
	"github.com/chronos-tachyon/squeeze/bitseq"
)

// Decoder implements a decoder for a CodeTable.
//
// A Decoder is immutable once constructed and may be used by several
// goroutines at once.
//
type Decoder[S comparable] struct {
	table   map[Code]decoderData
	symbols []S
	minSize byte
	maxSize byte
}

// NewDecoder constructs a Decoder for the given CodeTable.  A nil or empty
// table yields a Decoder that rejects every non-empty input.
func NewDecoder[S comparable](t *CodeTable[S]) (*Decoder[S], error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	symbols := t.Symbols()
	numSymbols := uint32(len(symbols))

	// len(table) is approximately n×log2(n) when filled.
	numTableSlots := numSymbols * log2uint32(numSymbols)

	d := &Decoder[S]{
		table:   make(map[Code]decoderData, numTableSlots),
		symbols: symbols,
		minSize: t.MinSize(),
		maxSize: t.MaxSize(),
	}
	for index, symbol := range symbols {
		hc, _ := t.Code(symbol)
		fillTable(d.table, int32(index), hc)
	}
	return d, nil
}

// Decode attempts to decode a Huffman code into a symbol.
//
// If the Decode is completely successful, ok is true and minSize == maxSize.
//
// If the Decode fails due to insufficient bits, ok is false and at least
// (minSize - hc.Size) additional bits are required to decode this symbol.  No
// more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, ok is false and
// minSize == maxSize == 0.
//
func (d *Decoder[S]) Decode(hc Code) (symbol S, ok bool, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found || dd.index < 0 {
		return symbol, false, dd.minSize, dd.maxSize
	}
	return d.symbols[dd.index], true, dd.minSize, dd.maxSize
}

// DecodeBits decodes every code in the bit sequence.  Each bit is examined
// once; the sequence must end on a code boundary.
func (d *Decoder[S]) DecodeBits(seq *bitseq.Sequence) ([]S, error) {
	size := seq.Len()
	var out []S
	if d.minSize != 0 {
		out = make([]S, 0, size/int(d.minSize))
	}

	var hc Code
	for i := 0; i < size; i++ {
		hc = hc.Append(seq.At(i))
		dd, found := d.table[hc]
		if !found {
			return nil, fmt.Errorf("huffman: no code matches %s at bit %d: %w", hc, i, squeeze.ErrCorruptStream)
		}
		if dd.index >= 0 {
			out = append(out, d.symbols[dd.index])
			hc = Code{}
		}
	}
	if hc.Size != 0 {
		return nil, fmt.Errorf("huffman: bits end inside code %s: %w", hc, squeeze.ErrCorruptStream)
	}
	return out, nil
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder[S]) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder[S]) MaxSize() byte {
	return d.maxSize
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		if dd.index < 0 {
			fmt.Fprintf(&buf, "\tDecode(%s) = {-, %d, %d}\n", hc, dd.minSize, dd.maxSize)
		} else {
			fmt.Fprintf(&buf, "\tDecode(%s) = {%v, %d, %d}\n", hc, d.symbols[dd.index], dd.minSize, dd.maxSize)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// decoderData describes one code prefix.  index is the position of the
// decoded symbol in Decoder.symbols, or -1 if the prefix is not a full code.
type decoderData struct {
	index   int32
	minSize byte
	maxSize byte
}

func fillTable(table map[Code]decoderData, index int32, hc Code) {
	dd := decoderData{index, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "...xxxa", compute "...xxxA" where A = NOT a.

		bit := uint64(1) << (hc.Size - 1)
		hc.Bits ^= bit

		// Merge the dd's from "...xxxa" (dd) and "...xxxA" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{-1, dd.minSize, dd.maxSize}
		if ddSibling, found := table[hc]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "...xxxA" to "...xxx".

		hc.Size--
		hc.Bits &^= bit

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Digits() < b.Digits()
}

var _ sort.Interface = byCode(nil)

// }}}
