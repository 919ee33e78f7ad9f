package hl7

import (
	"github.com/jcomellas/ex-hl7/internal/writer"
	"github.com/jcomellas/ex-hl7/message"
)

// Write encodes a message to its wire form. Every segment must have a spec
// in the registry. A message whose MSH segment carries the header fields is
// written with those delimiters; otherwise the configured separators apply.
func Write(msg *Message, opts ...Option) ([]byte, error) {
	cfg := buildOptions(opts)
	logger := componentLogger(cfg.logger, "writer")

	seps := cfg.seps
	if msh := msg.Segment("MSH", 0); msh != nil {
		seps = headerSeparators(msh, seps)
	}

	w := writer.New(seps, cfg.outputFormat.Terminator(), cfg.trim, logger)
	w.StartMessage()
	for seg := range msg.Segments() {
		spec := cfg.registry.Segment(seg.ID())
		if spec == nil {
			return nil, &message.ReadError{
				Kind:      message.ErrKindUnknownSegmentID,
				SegmentID: seg.ID(),
				Message:   "no schema registered for segment",
			}
		}

		w.StartSegment(seg.ID())
		firstSeq := 1
		if seg.ID() == "MSH" {
			writeHeaderFields(w, seg, seps)
			firstSeq = 3
		}
		for seq := firstSeq; seq <= spec.MaxSequence(); seq++ {
			field, ok, err := spec.BuildField(seq, seg)
			if err != nil {
				return nil, err
			}
			if !ok {
				field = message.String("")
			}
			if err := w.PutField(field); err != nil {
				return nil, err
			}
		}
		w.EndSegment()
	}

	return w.EndMessage(), nil
}

// writeHeaderFields emits MSH.1 and MSH.2 verbatim, falling back to the
// active separator set when the segment does not carry them.
func writeHeaderFields(w *writer.Writer, msh *message.Segment, seps message.Separators) {
	sep, ok := msh.GetString("field_separator")
	if !ok || len(sep) != 1 {
		sep = string([]byte{seps.Field})
	}
	enc, ok := msh.GetString("encoding_characters")
	if !ok || len(enc) != 4 {
		enc = string(seps.Encoding())
	}
	_ = w.PutField(message.String(sep))
	_ = w.PutField(message.String(enc))
}

// headerSeparators derives the delimiter set from the MSH header fields when
// both are present and well-formed.
func headerSeparators(msh *message.Segment, fallback message.Separators) message.Separators {
	sep, ok := msh.GetString("field_separator")
	if !ok || len(sep) != 1 {
		return fallback
	}
	enc, ok := msh.GetString("encoding_characters")
	if !ok || len(enc) != 4 {
		return fallback
	}
	return message.Separators{
		Field:        sep[0],
		Component:    enc[0],
		Repetition:   enc[1],
		Escape:       enc[2],
		Subcomponent: enc[3],
	}
}
