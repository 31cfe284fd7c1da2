package bitseq

import (
	"errors"
	"math/big"
	"testing"

	"github.com/chronos-tachyon/squeeze"
)

func TestSequence_AppendBits(t *testing.T) {
	var s Sequence
	s.AppendBits(0x5, 3)
	s.AppendBit(0)
	s.AppendBits(0xffffffffffffffff, 64)
	s.AppendBits(0x2, 2)

	if s.Len() != 70 {
		t.Errorf("wrong length:\n\texpect: %d\n\tactual: %d", 70, s.Len())
	}

	expect := "1010" + "1111111111111111111111111111111111111111111111111111111111111111" + "10"
	actual := s.String()
	if expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}

func TestSequence_AppendBits_WordBoundary(t *testing.T) {
	var s Sequence
	var expect []byte
	for i := 0; i < 40; i++ {
		// 7-bit codes never align with the 64-bit words.
		s.AppendBits(uint64(i)|0x40, 7)
		for bit := 6; bit >= 0; bit-- {
			expect = append(expect, '0'+byte((i|0x40)>>uint(bit)&1))
		}
	}
	if actual := s.String(); actual != string(expect) {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}

func TestSequence_LeadingZeros(t *testing.T) {
	type testRow struct {
		name   string
		bits   []uint
		expect int
	}

	testData := [...]testRow{
		{name: "empty", bits: nil, expect: 0},
		{name: "one", bits: []uint{1}, expect: 0},
		{name: "zero", bits: []uint{0}, expect: 1},
		{name: "zeros", bits: []uint{0, 0, 0, 0}, expect: 4},
		{name: "mixed", bits: []uint{0, 0, 1, 0}, expect: 2},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var s Sequence
			for _, bit := range row.bits {
				s.AppendBit(bit)
			}
			if actual := s.LeadingZeros(); actual != row.expect {
				t.Errorf("expected %d leading zeros, got %d", row.expect, actual)
			}
		})
	}

	var long Sequence
	long.AppendBits(0, 64)
	long.AppendBits(0, 64)
	long.AppendBits(1, 3)
	if actual := long.LeadingZeros(); actual != 130 {
		t.Errorf("expected %d leading zeros, got %d", 130, actual)
	}
}

func TestSequence_Block(t *testing.T) {
	type testRow struct {
		bits   string
		zeros  int
		value  int64
		length int
	}

	testData := [...]testRow{
		{bits: "", zeros: 0, value: 0, length: 0},
		{bits: "0", zeros: 1, value: 0, length: 1},
		{bits: "000", zeros: 3, value: 0, length: 3},
		{bits: "1", zeros: 0, value: 1, length: 1},
		{bits: "00100", zeros: 2, value: 4, length: 5},
		{bits: "0011010", zeros: 2, value: 26, length: 7},
	}
	for _, row := range testData {
		t.Run(row.bits, func(t *testing.T) {
			var s Sequence
			for _, ch := range row.bits {
				s.AppendBit(uint(ch - '0'))
			}
			b := s.Block()
			if b.LeadingZeros != row.zeros {
				t.Errorf("expected %d leading zeros, got %d", row.zeros, b.LeadingZeros)
			}
			if b.Value.Cmp(big.NewInt(row.value)) != 0 {
				t.Errorf("expected value %d, got %v", row.value, b.Value)
			}
			if b.Len() != row.length {
				t.Errorf("expected length %d, got %d", row.length, b.Len())
			}
			if actual := FromBlock(b).String(); actual != row.bits {
				t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", row.bits, actual)
			}
		})
	}
}

func TestFromBlock_Long(t *testing.T) {
	var s Sequence
	s.AppendBits(0, 64)
	s.AppendBits(0, 6)
	for i := 0; i < 20; i++ {
		s.AppendBits(0xdeadbeef, 32)
	}
	b := s.Block()
	if b.LeadingZeros != 70 {
		t.Errorf("expected %d leading zeros, got %d", 70, b.LeadingZeros)
	}
	if expect, actual := s.String(), FromBlock(b).String(); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}

func TestPacker(t *testing.T) {
	p, err := NewPacker(8)
	if err != nil {
		t.Fatalf("NewPacker failed: %v", err)
	}

	// 3 + 3 fit, the next 3 would overflow 8 bits and starts a new block.
	for _, code := range []uint64{0x1, 0x2, 0x7, 0x0} {
		if err := p.Append(code, 3); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	blocks := p.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("expected %d blocks, got %d", 2, len(blocks))
	}

	expect := []string{"001010", "111000"}
	for i, b := range blocks {
		if b.Len() > p.Capacity() {
			t.Errorf("block %d: %d bits exceeds capacity %d", i, b.Len(), p.Capacity())
		}
		if actual := FromBlock(b).String(); actual != expect[i] {
			t.Errorf("block %d: wrong output:\n\texpect: %s\n\tactual: %s", i, expect[i], actual)
		}
	}
}

func TestPacker_Errors(t *testing.T) {
	if _, err := NewPacker(0); !errors.Is(err, squeeze.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}

	p, err := NewPacker(4)
	if err != nil {
		t.Fatalf("NewPacker failed: %v", err)
	}
	if err := p.Append(0, 5); !errors.Is(err, squeeze.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
	if blocks := p.Blocks(); len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}

func TestBlock_Equal(t *testing.T) {
	a := Block{LeadingZeros: 2, Value: big.NewInt(5)}
	b := Block{LeadingZeros: 2, Value: big.NewInt(5)}
	c := Block{LeadingZeros: 3, Value: big.NewInt(5)}
	z := Block{LeadingZeros: 3}
	if !a.Equal(b) {
		t.Errorf("expected %v == %v", a, b)
	}
	if a.Equal(c) {
		t.Errorf("expected %v != %v", a, c)
	}
	if !z.Equal(Block{LeadingZeros: 3, Value: new(big.Int)}) {
		t.Errorf("expected nil Value to equal zero Value")
	}
	if expect, actual := "(2, 0x5)", a.String(); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}

func TestBlock_Validate(t *testing.T) {
	type testRow struct {
		block Block
		ok    bool
	}
	testData := [...]testRow{
		{Block{LeadingZeros: 0, Value: nil}, true},
		{Block{LeadingZeros: 3, Value: big.NewInt(5)}, true},
		{Block{LeadingZeros: -1, Value: big.NewInt(5)}, false},
		{Block{LeadingZeros: -200, Value: big.NewInt(0)}, false},
		{Block{LeadingZeros: 0, Value: big.NewInt(-5)}, false},
	}
	for _, row := range testData {
		err := row.block.Validate()
		if row.ok && err != nil {
			t.Errorf("%v: unexpected error: %v", row.block, err)
		}
		if !row.ok && !errors.Is(err, squeeze.ErrCorruptStream) {
			t.Errorf("%v: expected ErrCorruptStream, got %v", row.block, err)
		}
	}
}
