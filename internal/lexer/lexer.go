package lexer

import (
	"bytes"
	"log/slog"

	"github.com/jcomellas/ex-hl7/internal/types"
	"github.com/jcomellas/ex-hl7/message"
)

// State identifies the lexer position within a segment.
type State int

const (
	// StateSegmentID expects the three-byte segment ID.
	StateSegmentID State = iota
	// StateDelimiters expects the five delimiter bytes after "MSH".
	StateDelimiters
	// StateSeparator expects a field separator or segment terminator.
	StateSeparator
	// StateCharacters scans field content up to the next field separator or
	// segment terminator.
	StateCharacters
)

// Lexer tokenizes HL7 wire bytes incrementally. Next consumes from the
// caller's buffer and returns the unconsumed suffix; when more bytes are
// required mid-state it returns message.ErrMoreInput and resuming with the
// suffix plus new bytes is identical to lexing the full concatenation.
//
// A small token queue lets the MSH header yield its three observable tokens
// (the literal field separator, a synthetic field separator, the literal
// encoding characters) from a single five-byte read.
type Lexer struct {
	state      State
	seps       message.Separators
	terminator byte
	queue      []Token
	types.Logger
}

// New returns a Lexer using the given separators until an MSH header
// overrides them. The terminator byte selects the dialect: 0x0D for wire,
// 0x0A for text.
func New(seps message.Separators, terminator byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		state:      StateSegmentID,
		seps:       seps,
		terminator: terminator,
		Logger:     types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized",
		slog.Int("terminator", int(terminator)))
	return l
}

// Separators returns the active separator set, reflecting any MSH header
// already lexed.
func (l *Lexer) Separators() message.Separators {
	return l.seps
}

// AtSegmentBoundary reports whether the lexer sits between segments with no
// buffered tokens, i.e. a point where running out of input is a graceful
// message end.
func (l *Lexer) AtSegmentBoundary() bool {
	return l.state == StateSegmentID && len(l.queue) == 0
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.String("sep", tok.Sep.String()),
			slog.Int("len", len(tok.Bytes)))
	}
}

func (l *Lexer) emit(tok Token) Token {
	l.traceToken(tok)
	return tok
}

// Next returns the next token and the unconsumed remainder of buf. It
// returns message.ErrMoreInput when buf ends mid-state; the caller should
// retry with the returned remainder plus additional bytes. Lexical failures
// return a *message.ReadError.
func (l *Lexer) Next(buf []byte) (Token, []byte, error) {
	if len(l.queue) > 0 {
		tok := l.queue[0]
		l.queue = l.queue[1:]
		return l.emit(tok), buf, nil
	}

	switch l.state {
	case StateSegmentID:
		return l.readSegmentID(buf)
	case StateDelimiters:
		return l.readDelimiters(buf)
	case StateSeparator:
		return l.readSeparator(buf)
	default:
		return l.readCharacters(buf)
	}
}

func (l *Lexer) readSegmentID(buf []byte) (Token, []byte, error) {
	if len(buf) < 3 {
		return Token{}, buf, message.ErrMoreInput
	}
	id := buf[:3]
	switch {
	case bytes.Equal(id, []byte("MSH")):
		l.state = StateDelimiters
	case validSegmentID(id):
		l.state = StateSeparator
	default:
		return Token{}, buf, message.NewReadError(message.ErrKindBadSegmentID,
			"invalid segment ID").WithValue(id)
	}
	return l.emit(NewLiteral(id)), buf[3:], nil
}

func (l *Lexer) readDelimiters(buf []byte) (Token, []byte, error) {
	if len(buf) < 5 {
		return Token{}, buf, message.ErrMoreInput
	}
	for _, b := range buf[:5] {
		if !message.ValidDelimiter(b) {
			return Token{}, buf, message.NewReadError(message.ErrKindBadDelimiters,
				"invalid delimiter byte 0x%02x", b).WithValue(buf[:5])
		}
	}
	l.seps = message.Separators{
		Field:        buf[0],
		Component:    buf[1],
		Repetition:   buf[2],
		Escape:       buf[3],
		Subcomponent: buf[4],
	}
	l.Log(slog.LevelDebug, "delimiters adopted", slog.String("msh2", string(buf[1:5])))

	// MSH.1 is returned now; the synthetic separator and MSH.2 follow from
	// the queue so callers observe all three.
	l.queue = append(l.queue,
		NewSeparator(message.DelimiterField),
		NewLiteral(buf[1:5]))
	l.state = StateSeparator
	return l.emit(NewLiteral(buf[0:1])), buf[5:], nil
}

func (l *Lexer) readSeparator(buf []byte) (Token, []byte, error) {
	if len(buf) < 1 {
		return Token{}, buf, message.ErrMoreInput
	}
	switch buf[0] {
	case l.seps.Field:
		l.state = StateCharacters
		return l.emit(NewSeparator(message.DelimiterField)), buf[1:], nil
	case l.terminator:
		l.state = StateSegmentID
		return l.emit(NewSeparator(message.DelimiterSegment)), buf[1:], nil
	}
	return Token{}, buf, message.NewReadError(message.ErrKindBadSeparator,
		"expected field separator or segment terminator, got 0x%02x", buf[0])
}

func (l *Lexer) readCharacters(buf []byte) (Token, []byte, error) {
	end := -1
	for i, b := range buf {
		if b == l.seps.Field || b == l.terminator {
			end = i
			break
		}
		if !printable(b) {
			return Token{}, buf, message.NewReadError(message.ErrKindBadField,
				"non-printable byte 0x%02x in field", b).WithValue(buf[:i+1])
		}
	}
	if end < 0 {
		return Token{}, buf, message.ErrMoreInput
	}

	if buf[end] == l.terminator {
		l.queue = append(l.queue, NewSeparator(message.DelimiterSegment))
		l.state = StateSegmentID
	} else {
		l.queue = append(l.queue, NewSeparator(message.DelimiterField))
		l.state = StateCharacters
	}
	return l.emit(NewValue(buf[:end])), buf[end+1:], nil
}

// validSegmentID accepts an uppercase letter followed by two uppercase
// letters or digits. "MSH" is handled separately.
func validSegmentID(id []byte) bool {
	if !isUpperAlpha(id[0]) {
		return false
	}
	return isUpperAlphanumeric(id[1]) && isUpperAlphanumeric(id[2])
}

// printable accepts ASCII 0x20-0x7E and Latin-1 0xA0-0xFF.
func printable(b byte) bool {
	return (b >= 0x20 && b <= 0x7e) || b >= 0xa0
}

func isUpperAlpha(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isUpperAlphanumeric(b byte) bool {
	return isUpperAlpha(b) || (b >= '0' && b <= '9')
}
