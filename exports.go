package hl7

import "github.com/jcomellas/ex-hl7/message"

// Type aliases for the public API - model types come from the message
// subpackage.

// Message is an ordered sequence of segment instances.
type Message = message.Message

// Segment is one segment instance with named, typed fields.
type Segment = message.Segment

// Separators holds the delimiter bytes and the escape byte.
type Separators = message.Separators

// DelimiterKind classifies a delimiter byte.
type DelimiterKind = message.DelimiterKind

// Field is the decoded form of one field.
type Field = message.Field

// Component is one component of a repetition.
type Component = message.Component

// Components is a positional tuple of components.
type Components = message.Components

// Repetitions is a list of field repetitions.
type Repetitions = message.Repetitions

// Subcomponents is a positional tuple of subcomponent values.
type Subcomponents = message.Subcomponents

// Value is one primitive HL7 item.
type Value = message.Value

// String is a free-text value.
type String = message.String

// Integer is a decimal integer value.
type Integer = message.Integer

// Float is a decimal number value.
type Float = message.Float

// Date is a calendar date value.
type Date = message.Date

// DateTime is a date with time of day.
type DateTime = message.DateTime

// Null is the explicit HL7 null.
type Null = message.Null

// ValueKind identifies a primitive kind.
type ValueKind = message.ValueKind

// ReadError is a failure while decoding a message.
type ReadError = message.ReadError

// ErrorKind classifies a read failure.
type ErrorKind = message.ErrorKind

// ErrMoreInput signals that the input ended mid-message.
var ErrMoreInput = message.ErrMoreInput

// DefaultSeparators returns the conventional HL7 delimiter set.
func DefaultSeparators() Separators {
	return message.DefaultSeparators()
}

// Primitive value kinds.
const (
	KindString   = message.KindString
	KindInteger  = message.KindInteger
	KindFloat    = message.KindFloat
	KindDate     = message.KindDate
	KindDateTime = message.KindDateTime
)

// Read failure kinds.
const (
	ErrKindBadSegmentID     = message.ErrKindBadSegmentID
	ErrKindBadDelimiters    = message.ErrKindBadDelimiters
	ErrKindBadSeparator     = message.ErrKindBadSeparator
	ErrKindBadField         = message.ErrKindBadField
	ErrKindBadValue         = message.ErrKindBadValue
	ErrKindUnknownSegmentID = message.ErrKindUnknownSegmentID
)

// NewMessage creates a message from segments in order.
func NewMessage(segments ...*Segment) *Message {
	return message.New(segments...)
}

// NewSegment creates an empty segment with the given ID.
func NewSegment(id string) *Segment {
	return message.NewSegment(id)
}
