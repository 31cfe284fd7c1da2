package squeeze

import (
	"errors"
)

// ErrCorruptStream is returned when encoded bits cannot be fully resolved
// against a code table.
var ErrCorruptStream = errors.New("corrupt stream")

// ErrInvalidReference is returned when an LZ77 back-reference points outside
// the output decoded so far.
var ErrInvalidReference = errors.New("invalid back-reference")

// ErrInvalidCode is returned when an LZW code has no dictionary entry and
// cannot be reconstructed from the previous entry.
var ErrInvalidCode = errors.New("invalid code")

// ErrUnknownSymbol is returned when an input symbol is not part of a coder's
// base alphabet.
var ErrUnknownSymbol = errors.New("symbol not in alphabet")

// ErrEmptyInput is reserved for callers that treat an empty sequence as an
// error.  No coder in this module returns it: empty input encodes to an empty
// form, which decodes back to an empty sequence.
var ErrEmptyInput = errors.New("empty input")

// ErrConfiguration is returned by constructors given a window size, block
// size or alphabet that cannot work.
var ErrConfiguration = errors.New("invalid configuration")
