package message

// DelimiterKind identifies one of the four HL7 delimiter levels, or the
// segment terminator.
type DelimiterKind int

const (
	// DelimiterNone means the byte is not an active delimiter.
	DelimiterNone DelimiterKind = iota
	// DelimiterField separates fields within a segment.
	DelimiterField
	// DelimiterComponent separates components within a repetition.
	DelimiterComponent
	// DelimiterSubcomponent separates subcomponents within a component.
	DelimiterSubcomponent
	// DelimiterRepetition separates repetitions within a field.
	DelimiterRepetition
	// DelimiterSegment terminates a segment.
	DelimiterSegment
)

// String returns the delimiter kind name.
func (k DelimiterKind) String() string {
	switch k {
	case DelimiterField:
		return "field"
	case DelimiterComponent:
		return "component"
	case DelimiterSubcomponent:
		return "subcomponent"
	case DelimiterRepetition:
		return "repetition"
	case DelimiterSegment:
		return "segment"
	default:
		return "none"
	}
}

// Separators holds the four delimiter bytes and the escape byte active for a
// message. They are discovered from the five bytes following "MSH" on input;
// the defaults apply only when synthesizing new messages.
type Separators struct {
	Field        byte
	Component    byte
	Subcomponent byte
	Repetition   byte
	Escape       byte
}

// DefaultSeparators returns the conventional HL7 delimiter set: | ^ & ~ \.
func DefaultSeparators() Separators {
	return Separators{
		Field:        '|',
		Component:    '^',
		Subcomponent: '&',
		Repetition:   '~',
		Escape:       '\\',
	}
}

// KindOf classifies a byte against the active delimiters. The escape byte is
// not a delimiter and classifies as DelimiterNone.
func (s Separators) KindOf(b byte) DelimiterKind {
	switch b {
	case s.Field:
		return DelimiterField
	case s.Component:
		return DelimiterComponent
	case s.Subcomponent:
		return DelimiterSubcomponent
	case s.Repetition:
		return DelimiterRepetition
	default:
		return DelimiterNone
	}
}

// ByteOf returns the byte for a delimiter kind. Returns 0 for kinds that have
// no single active byte (DelimiterNone, DelimiterSegment).
func (s Separators) ByteOf(k DelimiterKind) byte {
	switch k {
	case DelimiterField:
		return s.Field
	case DelimiterComponent:
		return s.Component
	case DelimiterSubcomponent:
		return s.Subcomponent
	case DelimiterRepetition:
		return s.Repetition
	default:
		return 0
	}
}

// Encoding returns the four-byte MSH.2 "encoding characters" literal:
// component, repetition, escape, subcomponent, in that fixed order.
func (s Separators) Encoding() []byte {
	return []byte{s.Component, s.Repetition, s.Escape, s.Subcomponent}
}

// ValidDelimiter reports whether b can serve as a delimiter or escape byte:
// printable ASCII that is not a letter or digit.
func ValidDelimiter(b byte) bool {
	if b < 0x20 || b > 0x7e {
		return false
	}
	if b >= '0' && b <= '9' {
		return false
	}
	if b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' {
		return false
	}
	return true
}
