package message

import (
	"errors"
	"fmt"
)

// ErrMoreInput is returned by incremental reads when the input ends mid
// message. It is a request for more bytes, not a failure; feeding the reader
// the rest of the message continues from the same point.
var ErrMoreInput = errors.New("more input required")

// ErrorKind classifies a read failure.
type ErrorKind int

const (
	// ErrKindBadSegmentID means three bytes did not match the segment ID
	// grammar (MSH, or an uppercase letter followed by two uppercase
	// alphanumerics).
	ErrKindBadSegmentID ErrorKind = iota
	// ErrKindBadDelimiters means the five MSH header bytes were not valid
	// delimiter candidates.
	ErrKindBadDelimiters
	// ErrKindBadSeparator means the byte after a field was neither a field
	// separator nor the segment terminator.
	ErrKindBadSeparator
	// ErrKindBadField means a field payload contained a non-printable byte.
	ErrKindBadField
	// ErrKindBadValue means a value could not be decoded into its declared
	// primitive kind.
	ErrKindBadValue
	// ErrKindUnknownSegmentID means no schema is registered for a segment ID
	// encountered on input.
	ErrKindUnknownSegmentID
)

// String returns the error kind code.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindBadSegmentID:
		return "bad-segment-id"
	case ErrKindBadDelimiters:
		return "bad-delimiters"
	case ErrKindBadSeparator:
		return "bad-separator"
	case ErrKindBadField:
		return "bad-field"
	case ErrKindBadValue:
		return "bad-value"
	case ErrKindUnknownSegmentID:
		return "unknown-segment-id"
	default:
		return "unknown"
	}
}

// ReadError is a failure while decoding a message. SegmentID and Sequence
// locate the failure when known; Value holds the offending bytes.
type ReadError struct {
	Kind      ErrorKind
	SegmentID string
	Sequence  int
	Value     []byte
	Message   string
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	loc := ""
	if e.SegmentID != "" {
		loc = " in " + e.SegmentID
		if e.Sequence > 0 {
			loc = fmt.Sprintf("%s.%d", loc, e.Sequence)
		}
	}
	if len(e.Value) > 0 {
		return fmt.Sprintf("hl7: %s%s: %s (%q)", e.Kind, loc, e.Message, e.Value)
	}
	return fmt.Sprintf("hl7: %s%s: %s", e.Kind, loc, e.Message)
}

// NewReadError creates a ReadError with the given kind and message.
func NewReadError(kind ErrorKind, format string, args ...any) *ReadError {
	return &ReadError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At returns a copy of the error annotated with segment context.
func (e *ReadError) At(segmentID string, sequence int) *ReadError {
	dup := *e
	dup.SegmentID = segmentID
	dup.Sequence = sequence
	return &dup
}

// WithValue returns a copy of the error carrying the offending bytes.
func (e *ReadError) WithValue(value []byte) *ReadError {
	dup := *e
	dup.Value = append([]byte(nil), value...)
	return &dup
}
