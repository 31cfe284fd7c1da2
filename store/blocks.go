package store

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/chronos-tachyon/squeeze/bitseq"
)

const (
	// prefixWidth is the size of a block record's leading-zero count.
	prefixWidth = 2

	// ValueWidth is the size of a block record's value, in bytes.  Blocks
	// of up to 8×ValueWidth bits can be stored, which covers
	// bitseq.DefaultBlockSize.
	ValueWidth = 128

	recordWidth = prefixWidth + ValueWidth
)

// EncodeBlocks writes each Block as a record: the leading-zero count as a
// 2-byte little-endian integer, then the value as a 128-byte little-endian
// integer.
func EncodeBlocks(w io.Writer, blocks []bitseq.Block) error {
	record := make([]byte, recordWidth)
	for index, b := range blocks {
		if b.LeadingZeros < 0 || b.LeadingZeros > math.MaxUint16 {
			return fmt.Errorf("store: block %d: leading zero count %d: %w", index, b.LeadingZeros, ErrOverflow)
		}
		binary.LittleEndian.PutUint16(record[:prefixWidth], uint16(b.LeadingZeros))
		if err := putLittleEndian(record[prefixWidth:], b.Value); err != nil {
			return fmt.Errorf("store: block %d: %w", index, err)
		}
		if _, err := w.Write(record); err != nil {
			return fmt.Errorf("store: %w", err)
		}
	}
	return nil
}

// DecodeBlocks reads Block records until EOF.
func DecodeBlocks(r io.Reader) ([]bitseq.Block, error) {
	var out []bitseq.Block
	record := make([]byte, recordWidth)
	for {
		_, err := io.ReadFull(r, record)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("store: block %d: %w", len(out), err)
		}
		out = append(out, bitseq.Block{
			LeadingZeros: int(binary.LittleEndian.Uint16(record[:prefixWidth])),
			Value:        getLittleEndian(record[prefixWidth:]),
		})
	}
}

// WriteBlocks writes the Blocks to the named file, replacing it.
func WriteBlocks(path string, blocks []bitseq.Block) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeBlocks(w, blocks)
	})
}

// ReadBlocks reads the Blocks stored in the named file.
func ReadBlocks(path string) ([]bitseq.Block, error) {
	var out []bitseq.Block
	err := readFile(path, func(r io.Reader) error {
		var err error
		out, err = DecodeBlocks(r)
		return err
	})
	return out, err
}
