package huffman

import (
	"encoding/json"
	"errors"
	"math/big"
	"slices"
	"strings"
	"testing"

	"github.com/chronos-tachyon/squeeze"
	"github.com/chronos-tachyon/squeeze/bitseq"
)

func newTestCoder[S comparable](t *testing.T, blockSize int) *Coder[S] {
	t.Helper()
	c, err := NewCoder[S](blockSize, 4)
	if err != nil {
		t.Fatalf("NewCoder failed: %v", err)
	}
	return c
}

func TestCoder_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"A",
		"AAAA",
		"AB",
		"AAAABCAABAABCD",
		"abracadabra",
		strings.Repeat("the quick brown fox jumps over the lazy dog. ", 50),
		"\x00\x00\x00\x01\x00",
	}
	for _, blockSize := range []int{16, 64, bitseq.DefaultBlockSize} {
		c := newTestCoder[byte](t, blockSize)
		for _, input := range inputs {
			enc, err := c.Encode([]byte(input))
			if err != nil {
				t.Errorf("blockSize %d: Encode(%q) failed: %v", blockSize, input, err)
				continue
			}
			for index, b := range enc.Blocks {
				if b.Len() > blockSize {
					t.Errorf("blockSize %d: block %d holds %d bits", blockSize, index, b.Len())
				}
			}
			actual, err := c.Decode(enc)
			if err != nil {
				t.Errorf("blockSize %d: Decode(%q) failed: %v", blockSize, input, err)
				continue
			}
			if !slices.Equal([]byte(input), actual) {
				t.Errorf("blockSize %d: wrong output:\n\texpect: %q\n\tactual: %q", blockSize, input, actual)
			}
		}
	}
}

func TestCoder_RoundTripRunes(t *testing.T) {
	c := newTestCoder[rune](t, bitseq.DefaultBlockSize)
	input := []rune("Съешь же ещё этих мягких французских булок, да выпей чаю")
	enc, err := c.Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	actual, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !slices.Equal(input, actual) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", string(input), string(actual))
	}
}

func TestCoder_SingleSymbol(t *testing.T) {
	c := newTestCoder[byte](t, bitseq.DefaultBlockSize)
	enc, err := c.Encode([]byte("AAAA"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if enc.Bits() != 4 {
		t.Errorf("expected %d bits, got %d", 4, enc.Bits())
	}
	if len(enc.Blocks) != 1 || enc.Blocks[0].LeadingZeros != 4 {
		t.Errorf("expected one all-zero block of 4 bits, got %v", enc.Blocks)
	}
	actual, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(actual) != "AAAA" {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", "AAAA", actual)
	}
}

func TestCoder_DecodeIdempotent(t *testing.T) {
	c := newTestCoder[byte](t, 16)
	enc, err := c.Encode([]byte("AAAABCAABAABCD"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	first, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	second, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Errorf("decodes differ:\n\tfirst:  %q\n\tsecond: %q", first, second)
	}
}

func TestCoder_TableTransmitted(t *testing.T) {
	c := newTestCoder[byte](t, 32)
	enc, err := c.Encode([]byte("mississippi river"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	raw, err := json.Marshal(enc.Table)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var table CodeTable[byte]
	if err := json.Unmarshal(raw, &table); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	actual, err := c.Decode(Encoded[byte]{Blocks: enc.Blocks, Table: &table})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(actual) != "mississippi river" {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", "mississippi river", actual)
	}
}

func TestCoder_Errors(t *testing.T) {
	if _, err := NewCoder[byte](0, 1); !errors.Is(err, squeeze.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}

	c := newTestCoder[byte](t, 64)
	enc, err := c.Encode([]byte("abcabcabd"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, err = c.Decode(Encoded[byte]{Blocks: enc.Blocks})
	if !errors.Is(err, squeeze.ErrCorruptStream) {
		t.Errorf("missing table: expected ErrCorruptStream, got %v", err)
	}

	// Dropping 'd' from the table leaves its bits unmatched.
	partial := make(map[byte]Code)
	for _, symbol := range enc.Table.Symbols() {
		if symbol != 'd' {
			partial[symbol], _ = enc.Table.Code(symbol)
		}
	}
	table, err := NewCodeTable(partial)
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}
	_, err = c.Decode(Encoded[byte]{Blocks: enc.Blocks, Table: table})
	if !errors.Is(err, squeeze.ErrCorruptStream) {
		t.Errorf("truncated table: expected ErrCorruptStream, got %v", err)
	}

	garbage := Encoded[byte]{
		Blocks: []bitseq.Block{{LeadingZeros: 0, Value: big.NewInt(0x7ff)}},
		Table:  enc.Table,
	}
	if _, err := c.Decode(garbage); !errors.Is(err, squeeze.ErrCorruptStream) {
		t.Errorf("garbage block: expected ErrCorruptStream, got %v", err)
	}

	malformed := []bitseq.Block{
		{LeadingZeros: -200, Value: big.NewInt(0)},
		{LeadingZeros: 0, Value: big.NewInt(-5)},
	}
	for _, b := range malformed {
		bad := Encoded[byte]{
			Blocks: append(slices.Clone(enc.Blocks), b),
			Table:  enc.Table,
		}
		if _, err := c.Decode(bad); !errors.Is(err, squeeze.ErrCorruptStream) {
			t.Errorf("block %v: expected ErrCorruptStream, got %v", b, err)
		}
	}
}
