package squeeze_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/chronos-tachyon/squeeze"
	"github.com/chronos-tachyon/squeeze/lz77"
	"github.com/chronos-tachyon/squeeze/lzw"
)

func TestCompressor_LZW(t *testing.T) {
	comp := squeeze.NewCompressor[byte, []int](lzw.NewByteCoder())

	if data, err := comp.Data(); err != nil || data != nil {
		t.Errorf("empty Compressor: expected (nil, nil), got (%q, %v)", data, err)
	}
	if _, full := comp.Encoded(); full {
		t.Errorf("empty Compressor reports stored data")
	}

	input := []byte("AAAABCAABAABCD")
	if err := comp.SetData(input); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	codes, full := comp.Encoded()
	if !full {
		t.Fatalf("Encoded reports nothing stored")
	}
	expectCodes := []int{65, 256, 65, 66, 67, 256, 66, 261, 67, 68}
	if !slices.Equal(expectCodes, codes) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", expectCodes, codes)
	}

	for i := 0; i < 2; i++ {
		data, err := comp.Data()
		if err != nil {
			t.Fatalf("Data failed: %v", err)
		}
		if !slices.Equal(input, data) {
			t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, data)
		}
	}

	comp.Reset()
	if data, err := comp.Data(); err != nil || data != nil {
		t.Errorf("after Reset: expected (nil, nil), got (%q, %v)", data, err)
	}
}

func TestCompressor_LZ77(t *testing.T) {
	c, err := lz77.NewCoder[rune](8, 3)
	if err != nil {
		t.Fatalf("NewCoder failed: %v", err)
	}
	comp := squeeze.NewCompressor[rune, []lz77.Token[rune]](c)

	input := []rune("ababab über ababab")
	if err := comp.SetData(input); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	data, err := comp.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if !slices.Equal(input, data) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", string(input), string(data))
	}
}

func TestCompressor_EncodeError(t *testing.T) {
	c, err := lzw.NewCoder([]byte("ab"))
	if err != nil {
		t.Fatalf("NewCoder failed: %v", err)
	}
	comp := squeeze.NewCompressor[byte, []int](c)

	if err := comp.SetData([]byte("abba")); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	if err := comp.SetData([]byte("abc")); !errors.Is(err, squeeze.ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
	if _, full := comp.Encoded(); full {
		t.Errorf("failed SetData kept the previous encoded form")
	}
}

func TestCompressor_EmptyInput(t *testing.T) {
	c, err := lz77.NewCoder[byte](8, 3)
	if err != nil {
		t.Fatalf("NewCoder failed: %v", err)
	}
	comp := squeeze.NewCompressor[byte, []lz77.Token[byte]](c)

	err = comp.SetData(nil)
	if errors.Is(err, squeeze.ErrEmptyInput) {
		t.Fatalf("SetData(nil) rejected empty input: %v", err)
	}
	if err != nil {
		t.Fatalf("SetData(nil) failed: %v", err)
	}
	if _, full := comp.Encoded(); !full {
		t.Errorf("empty input was not stored")
	}
	data, err := comp.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", "", data)
	}
}
