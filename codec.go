package squeeze

// Codec is the capability shared by every coder in this module: a sequence of
// symbols S maps to an encoded form E and back, exactly.
//
// Encode must be a pure function of its input and the coder's construction
// parameters.  Decode(Encode(s)) must equal s for every finite s over the
// coder's symbol domain.
//
type Codec[S any, E any] interface {
	Encode(symbols []S) (E, error)
	Decode(encoded E) ([]S, error)
}

// Compressor holds data in encoded form.  SetData encodes and stores, Data
// decodes whatever is currently stored.
//
// A Compressor is not safe for concurrent use.
//
type Compressor[S any, E any] struct {
	codec   Codec[S, E]
	encoded E
	full    bool
}

// NewCompressor returns a Compressor backed by the given Codec.
func NewCompressor[S any, E any](codec Codec[S, E]) *Compressor[S, E] {
	return &Compressor[S, E]{codec: codec}
}

// SetData encodes data and replaces the stored encoded form.  On error the
// previously stored form is discarded as well.
func (c *Compressor[S, E]) SetData(data []S) error {
	c.Reset()
	encoded, err := c.codec.Encode(data)
	if err != nil {
		return err
	}
	c.encoded = encoded
	c.full = true
	return nil
}

// Data decodes and returns the stored data.  An empty Compressor returns nil.
func (c *Compressor[S, E]) Data() ([]S, error) {
	if !c.full {
		return nil, nil
	}
	return c.codec.Decode(c.encoded)
}

// Encoded returns the stored encoded form, and false if nothing is stored.
func (c *Compressor[S, E]) Encoded() (E, bool) {
	return c.encoded, c.full
}

// Reset discards the stored encoded form.
func (c *Compressor[S, E]) Reset() {
	var zero E
	c.encoded = zero
	c.full = false
}
