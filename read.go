package hl7

import (
	"github.com/jcomellas/ex-hl7/internal/reader"
	"github.com/jcomellas/ex-hl7/message"
)

// Reader decodes a message from wire bytes fed incrementally. Create one
// with NewReader, call Read with successive chunks, then Finish once the
// input source delimits the message (for example an MLLP frame end).
type Reader struct {
	r *reader.Reader
}

// NewReader returns an incremental reader.
func NewReader(opts ...Option) *Reader {
	cfg := buildOptions(opts)
	return &Reader{
		r: reader.New(cfg.seps, cfg.inputFormat.Terminator(), cfg.trim,
			cfg.registry, componentLogger(cfg.logger, "reader")),
	}
}

// Read feeds more bytes. It returns a *ReadError on invalid input and nil
// otherwise. Feeding a message split at any byte offset produces the same
// result as feeding it whole.
func (r *Reader) Read(p []byte) error {
	return r.r.Read(p)
}

// Finish returns the accumulated message, or ErrMoreInput when the input
// stopped mid-segment.
func (r *Reader) Finish() (*Message, error) {
	return r.r.Finish()
}

// Separators returns the delimiter set in effect, reflecting a parsed MSH
// header.
func (r *Reader) Separators() message.Separators {
	return r.r.Separators()
}

// Read decodes a complete message from data. It returns ErrMoreInput when
// data stops mid-segment; use NewReader when input arrives in chunks.
func Read(data []byte, opts ...Option) (*Message, error) {
	r := NewReader(opts...)
	if err := r.Read(data); err != nil {
		return nil, err
	}
	return r.Finish()
}
