// Package writer emits the wire form of a message: segment IDs, encoded
// fields, the MSH header special case, and the trailing-empties trim.
package writer

import (
	"bytes"
	"log/slog"

	"github.com/jcomellas/ex-hl7/internal/codec"
	"github.com/jcomellas/ex-hl7/internal/types"
	"github.com/jcomellas/ex-hl7/message"
)

// Writer accumulates the wire bytes of one message. Segments are written in
// order with StartSegment/PutField/EndSegment; EndMessage drains the result.
type Writer struct {
	buf        bytes.Buffer
	seps       message.Separators
	terminator byte
	trim       bool

	// mshLiterals counts header fields still to be written verbatim after
	// StartSegment("MSH"): the field separator and the encoding characters.
	mshLiterals int
	// trimFloor is the buffer length below which EndSegment never trims,
	// protecting the segment ID and the MSH header literals.
	trimFloor int
	types.Logger
}

// New returns a Writer. The terminator byte selects the dialect: 0x0D for
// wire, 0x0A for text.
func New(seps message.Separators, terminator byte, trim bool, logger *slog.Logger) *Writer {
	return &Writer{
		seps:       seps,
		terminator: terminator,
		trim:       trim,
		Logger:     types.Logger{L: logger},
	}
}

// StartMessage resets the accumulator.
func (w *Writer) StartMessage() {
	w.buf.Reset()
	w.mshLiterals = 0
}

// StartSegment writes the three-byte segment ID. For MSH the next two fields
// are written verbatim rather than encoded, since they hold the delimiters
// themselves.
func (w *Writer) StartSegment(id string) {
	w.buf.WriteString(id)
	if id == "MSH" {
		w.mshLiterals = 2
	}
	w.trimFloor = w.buf.Len()
	if w.TraceEnabled() {
		w.Trace("segment start", slog.String("id", id))
	}
}

// PutField appends one field: a field separator followed by the encoded
// content. During the MSH header the content is written verbatim with no
// separator of its own.
func (w *Writer) PutField(f message.Field) error {
	if w.mshLiterals > 0 {
		w.mshLiterals--
		if s, ok := f.(message.String); ok {
			w.buf.WriteString(string(s))
		}
		w.trimFloor = w.buf.Len()
		return nil
	}
	enc, err := codec.EncodeField(f, w.seps, w.trim)
	if err != nil {
		return err
	}
	w.buf.WriteByte(w.seps.Field)
	w.buf.Write(enc)
	return nil
}

// EndSegment optionally strips the trailing run of field separators, then
// writes the segment terminator.
func (w *Writer) EndSegment() {
	if w.trim {
		b := w.buf.Bytes()
		end := len(b)
		for end > w.trimFloor && b[end-1] == w.seps.Field {
			end--
		}
		w.buf.Truncate(end)
	}
	w.buf.WriteByte(w.terminator)
	w.mshLiterals = 0
}

// EndMessage returns the accumulated wire bytes and resets the writer.
func (w *Writer) EndMessage() []byte {
	out := append([]byte(nil), w.buf.Bytes()...)
	w.StartMessage()
	return out
}

// Bytes returns the accumulated wire bytes without resetting.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}
