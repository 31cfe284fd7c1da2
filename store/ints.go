// Package store persists encoded data: fixed-width integer streams, packed
// bit block records, and code table blobs.
//
// Writers finish before readers start; nothing here coordinates concurrent
// access to the same file.  I/O errors are returned unchanged apart from
// added context.
//
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
)

// ErrOverflow is returned when a value does not fit its fixed-width record.
var ErrOverflow = errors.New("value does not fit record")

// EncodeFixedWidthInts writes each value as a little-endian record of width
// bytes, with no delimiters.
func EncodeFixedWidthInts(w io.Writer, values []*big.Int, width int) error {
	if width <= 0 {
		return fmt.Errorf("store: record width %d must be positive", width)
	}
	record := make([]byte, width)
	for index, value := range values {
		if err := putLittleEndian(record, value); err != nil {
			return fmt.Errorf("store: value %d: %w", index, err)
		}
		if _, err := w.Write(record); err != nil {
			return fmt.Errorf("store: %w", err)
		}
	}
	return nil
}

// DecodeFixedWidthInts reads little-endian records of width bytes until EOF.
// A trailing partial record yields io.ErrUnexpectedEOF.
func DecodeFixedWidthInts(r io.Reader, width int) ([]*big.Int, error) {
	if width <= 0 {
		return nil, fmt.Errorf("store: record width %d must be positive", width)
	}
	var out []*big.Int
	record := make([]byte, width)
	for {
		_, err := io.ReadFull(r, record)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("store: record %d: %w", len(out), err)
		}
		out = append(out, getLittleEndian(record))
	}
}

// WriteFixedWidthInts writes the values to the named file, replacing it.
func WriteFixedWidthInts(path string, values []*big.Int, width int) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeFixedWidthInts(w, values, width)
	})
}

// ReadFixedWidthInts reads the values stored in the named file.
func ReadFixedWidthInts(path string, width int) ([]*big.Int, error) {
	var out []*big.Int
	err := readFile(path, func(r io.Reader) error {
		var err error
		out, err = DecodeFixedWidthInts(r, width)
		return err
	})
	return out, err
}

// FromInts converts non-negative ints, such as LZW codes, for
// EncodeFixedWidthInts.
func FromInts(values []int) []*big.Int {
	out := make([]*big.Int, len(values))
	for index, value := range values {
		out[index] = big.NewInt(int64(value))
	}
	return out
}

// ToInts converts the result of DecodeFixedWidthInts back to ints.
func ToInts(values []*big.Int) ([]int, error) {
	out := make([]int, len(values))
	for index, value := range values {
		if !value.IsInt64() || int64(int(value.Int64())) != value.Int64() {
			return nil, fmt.Errorf("store: value %d (%v): %w", index, value, ErrOverflow)
		}
		out[index] = int(value.Int64())
	}
	return out, nil
}

func putLittleEndian(record []byte, value *big.Int) error {
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() < 0 {
		return fmt.Errorf("negative value %v: %w", value, ErrOverflow)
	}
	if value.BitLen() > 8*len(record) {
		return fmt.Errorf("%d-bit value in %d-byte record: %w", value.BitLen(), len(record), ErrOverflow)
	}
	value.FillBytes(record)
	reverse(record)
	return nil
}

func getLittleEndian(record []byte) *big.Int {
	buf := make([]byte, len(record))
	copy(buf, record)
	reverse(buf)
	return new(big.Int).SetBytes(buf)
}

func reverse(buf []byte) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	err = fn(bw)
	if err == nil {
		err = bw.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

func readFile(path string, fn func(r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(bufio.NewReader(f))
}
