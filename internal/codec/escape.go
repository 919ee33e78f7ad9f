package codec

import "github.com/jcomellas/ex-hl7/message"

// Escape sequence letters, each wrapped in the escape byte on the wire:
// \F\ field, \S\ component, \T\ subcomponent, \R\ repetition, \E\ escape.

// Escape replaces active delimiter bytes and the escape byte itself inside a
// primitive string with their escape sequences.
func Escape(b []byte, seps message.Separators) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		var letter byte
		switch c {
		case seps.Escape:
			letter = 'E'
		case seps.Field:
			letter = 'F'
		case seps.Component:
			letter = 'S'
		case seps.Subcomponent:
			letter = 'T'
		case seps.Repetition:
			letter = 'R'
		default:
			out = append(out, c)
			continue
		}
		out = append(out, seps.Escape, letter, seps.Escape)
	}
	return out
}

// Unescape replaces recognized escape sequences with their delimiter bytes.
// Unrecognized sequences and a dangling escape byte pass through unchanged.
func Unescape(b []byte, seps message.Separators) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != seps.Escape || i+2 >= len(b) || b[i+2] != seps.Escape {
			out = append(out, c)
			continue
		}
		var repl byte
		switch b[i+1] {
		case 'E':
			repl = seps.Escape
		case 'F':
			repl = seps.Field
		case 'S':
			repl = seps.Component
		case 'T':
			repl = seps.Subcomponent
		case 'R':
			repl = seps.Repetition
		default:
			// Unknown sequence: keep the three bytes as they are.
			out = append(out, b[i], b[i+1], b[i+2])
			i += 2
			continue
		}
		out = append(out, repl)
		i += 2
	}
	return out
}
