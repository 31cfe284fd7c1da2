package store

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pierrec/xxHash/xxHash32"

	"github.com/chronos-tachyon/squeeze/huffman"
)

// ErrChecksum is returned when a table blob's contents do not match its
// checksum.
var ErrChecksum = errors.New("table checksum mismatch")

// ErrFormat is returned when a table blob has no valid header.
var ErrFormat = errors.New("not a table blob")

// Framing selects how a table blob's payload is compressed.
type Framing byte

const (
	// Raw stores the JSON uncompressed.
	Raw Framing = iota

	// Snappy compresses the JSON as a snappy block.
	Snappy

	// Zstd compresses the JSON as a single zstd frame.
	Zstd

	// LZ4 compresses the JSON as an LZ4 frame.
	LZ4

	// Brotli compresses the JSON as a brotli stream.
	Brotli
)

// DefaultFraming is the Framing used by WriteCodeTable.
const DefaultFraming = Zstd

var framingNames = [...]string{"raw", "snappy", "zstd", "lz4", "brotli"}

// String returns the name of the Framing.
func (f Framing) String() string {
	if int(f) < len(framingNames) {
		return framingNames[f]
	}
	return fmt.Sprintf("Framing(%d)", byte(f))
}

var _ fmt.Stringer = Framing(0)

func (f Framing) compress(src []byte) ([]byte, error) {
	switch f {
	case Raw:
		return src, nil

	case Snappy:
		return snappy.Encode(nil, src), nil

	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(src, nil), nil

	case LZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(src); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case Brotli:
		var buf bytes.Buffer
		bw := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
		if _, err := bw.Write(src); err != nil {
			return nil, err
		}
		if err := bw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown framing %v", f)
}

func (f Framing) decompress(src []byte) ([]byte, error) {
	switch f {
	case Raw:
		return src, nil

	case Snappy:
		return snappy.Decode(nil, src)

	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(src, nil)

	case LZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(src)))

	case Brotli:
		return io.ReadAll(brotli.NewReader(bytes.NewReader(src)))
	}
	return nil, fmt.Errorf("%w: unknown framing %v", ErrFormat, f)
}

// A table blob is:
//
//   magic    [4]byte  "SQZT"
//   framing  byte
//   checksum uint32   xxHash32 of the JSON, little-endian
//   payload  []byte   the JSON, compressed per framing
//
var tableMagic = [4]byte{'S', 'Q', 'Z', 'T'}

const tableHeaderWidth = 4 + 1 + 4

// EncodeTable writes table, which must support encoding/json, as a table
// blob.
func EncodeTable(w io.Writer, table any, framing Framing) error {
	raw, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	payload, err := framing.compress(raw)
	if err != nil {
		return fmt.Errorf("store: %v: %w", framing, err)
	}

	var header [tableHeaderWidth]byte
	copy(header[:4], tableMagic[:])
	header[4] = byte(framing)
	binary.LittleEndian.PutUint32(header[5:], checksum(raw))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// DecodeTable reads a table blob into table, which must be a pointer
// supporting encoding/json.
func DecodeTable(r io.Reader, table any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if len(data) < tableHeaderWidth || !bytes.Equal(data[:4], tableMagic[:]) {
		return fmt.Errorf("store: %w", ErrFormat)
	}
	framing := Framing(data[4])
	sum := binary.LittleEndian.Uint32(data[5:tableHeaderWidth])

	raw, err := framing.decompress(data[tableHeaderWidth:])
	if err != nil {
		return fmt.Errorf("store: %v: %w", framing, err)
	}
	if actual := checksum(raw); actual != sum {
		return fmt.Errorf("store: expected checksum %#08x, got %#08x: %w", sum, actual, ErrChecksum)
	}
	if err := json.Unmarshal(raw, table); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

func checksum(raw []byte) uint32 {
	h := xxHash32.New(0)
	h.Write(raw)
	return h.Sum32()
}

// WriteTable writes table to the named file as a table blob, replacing it.
func WriteTable(path string, table any, framing Framing) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeTable(w, table, framing)
	})
}

// ReadTable reads the table blob in the named file into table.
func ReadTable(path string, table any) error {
	return readFile(path, func(r io.Reader) error {
		return DecodeTable(r, table)
	})
}

// WriteCodeTable writes a Huffman CodeTable with DefaultFraming.
func WriteCodeTable[S comparable](path string, table *huffman.CodeTable[S]) error {
	return WriteTable(path, table, DefaultFraming)
}

// ReadCodeTable reads a Huffman CodeTable written by WriteCodeTable.
func ReadCodeTable[S comparable](path string) (*huffman.CodeTable[S], error) {
	table := new(huffman.CodeTable[S])
	if err := ReadTable(path, table); err != nil {
		return nil, err
	}
	return table, nil
}
