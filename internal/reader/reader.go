// Package reader assembles lexer tokens into messages: it tracks the current
// segment and field sequence, runs field bytes through the codec, and maps
// decoded fields onto schema attributes.
package reader

import (
	"errors"
	"log/slog"

	"github.com/jcomellas/ex-hl7/internal/codec"
	"github.com/jcomellas/ex-hl7/internal/lexer"
	"github.com/jcomellas/ex-hl7/internal/types"
	"github.com/jcomellas/ex-hl7/message"
	"github.com/jcomellas/ex-hl7/schema"
)

// Reader consumes wire bytes incrementally and produces a message. Read
// accepts chunks split at any byte offset; Finish succeeds once the input
// rests at a segment boundary with nothing pending, the graceful end of a
// message.
type Reader struct {
	lex      *lexer.Lexer
	trim     bool
	registry *schema.Registry

	pending  []byte
	segments []*message.Segment
	cur      *message.Segment
	curSpec  *schema.SegmentSpec
	seq      int
	types.Logger
}

// New returns a Reader. The separators apply until a lexed MSH header
// overrides them; terminator selects the dialect byte.
func New(seps message.Separators, terminator byte, trim bool, registry *schema.Registry, logger *slog.Logger) *Reader {
	var lexLogger *slog.Logger
	if logger != nil {
		lexLogger = logger.With(slog.String("component", "lexer"))
	}
	return &Reader{
		lex:      lexer.New(seps, terminator, lexLogger),
		trim:     trim,
		registry: registry,
		Logger:   types.Logger{L: logger},
	}
}

// Read feeds more bytes, consuming every token they complete. It returns
// nil when the chunk is exhausted and a *message.ReadError on invalid input.
// Feeding a message split at any byte offset is identical to feeding the
// whole concatenation.
func (r *Reader) Read(p []byte) error {
	r.pending = append(r.pending, p...)

	for {
		tok, rest, err := r.lex.Next(r.pending)
		if errors.Is(err, message.ErrMoreInput) {
			r.pending = rest
			return nil
		}
		if err != nil {
			return r.annotate(err)
		}
		r.pending = rest
		if err := r.apply(tok); err != nil {
			return r.annotate(err)
		}
	}
}

// Finish returns the accumulated message. It fails with
// message.ErrMoreInput when the input stopped mid-segment, i.e. the message
// is truncated.
func (r *Reader) Finish() (*message.Message, error) {
	if !r.lex.AtSegmentBoundary() || len(r.pending) != 0 || r.cur != nil {
		return nil, message.ErrMoreInput
	}
	r.Log(slog.LevelDebug, "message complete",
		slog.Int("segments", len(r.segments)))
	return message.New(r.segments...), nil
}

func (r *Reader) annotate(err error) error {
	var re *message.ReadError
	if errors.As(err, &re) && re.SegmentID == "" && r.cur != nil {
		return re.At(r.cur.ID(), r.seq)
	}
	return err
}

func (r *Reader) apply(tok lexer.Token) error {
	switch tok.Kind {
	case lexer.TokLiteral:
		if r.cur == nil {
			return r.startSegment(string(tok.Bytes))
		}
		return r.applyLiteral(tok.Bytes)
	case lexer.TokValue:
		return r.applyValue(tok.Bytes)
	default:
		switch tok.Sep {
		case message.DelimiterField:
			r.seq++
		case message.DelimiterSegment:
			r.endSegment()
		}
		return nil
	}
}

func (r *Reader) startSegment(id string) error {
	spec := r.registry.Segment(id)
	if spec == nil {
		return &message.ReadError{
			Kind:      message.ErrKindUnknownSegmentID,
			SegmentID: id,
			Message:   "no schema registered for segment",
		}
	}
	r.cur = message.NewSegment(id)
	r.curSpec = spec
	r.seq = 0
	if r.TraceEnabled() {
		r.Trace("segment start", slog.String("id", id))
	}
	return nil
}

// applyLiteral stores MSH.1 and MSH.2 verbatim: the header fields carry the
// delimiters themselves and never pass through the codec.
func (r *Reader) applyLiteral(b []byte) error {
	if r.seq == 0 {
		r.seq = 1
	}
	for _, fs := range r.curSpec.FieldsAt(r.seq) {
		if fs.Coord == (schema.Coordinate{Rep: 1}) {
			r.cur.SetField(fs.Name, message.String(b))
		}
	}
	return nil
}

func (r *Reader) applyValue(b []byte) error {
	if r.TraceEnabled() {
		r.Trace("field",
			slog.String("segment", r.cur.ID()),
			slog.Int("sequence", r.seq),
			slog.Int("len", len(b)))
	}
	specs := r.curSpec.FieldsAt(r.seq)
	if len(specs) == 0 {
		return nil
	}
	field := codec.DecodeField(b, r.lex.Separators(), r.trim)
	return r.curSpec.ParseField(r.seq, field, r.cur)
}

func (r *Reader) endSegment() {
	r.segments = append(r.segments, r.cur)
	if r.TraceEnabled() {
		r.Trace("segment end",
			slog.String("id", r.cur.ID()),
			slog.Int("fields", r.cur.Len()))
	}
	r.cur = nil
	r.curSpec = nil
	r.seq = 0
}

// Separators returns the separator set in effect, reflecting a lexed MSH
// header.
func (r *Reader) Separators() message.Separators {
	return r.lex.Separators()
}
