// Package codec decodes and encodes the nested structure of a single HL7
// field: repetitions, components and subcomponents, the explicit null
// marker, escape sequences, and the primitive value formats.
package codec

import (
	"bytes"

	"github.com/jcomellas/ex-hl7/message"
)

// nullMarker is the two-byte literal meaning explicit null at any item
// position.
var nullMarker = []byte{'"', '"'}

// DecodeField decodes the raw bytes of one field into its nested
// representation. Leaf items become String values (unescaped) or Null; typed
// decoding happens later against the schema. With trim set, trailing empty
// positions are dropped at every level.
func DecodeField(b []byte, seps message.Separators, trim bool) message.Field {
	parts := split(b, seps.Repetition, trim)
	switch len(parts) {
	case 0:
		return message.String("")
	case 1:
		return DecodeComponents(parts[0], seps, trim)
	}
	reps := make(message.Repetitions, len(parts))
	for i, part := range parts {
		reps[i] = DecodeComponents(part, seps, trim)
	}
	return reps
}

// DecodeComponents decodes a single repetition. A repetition with one
// component collapses to the component itself, except that a component made
// of subcomponents keeps a one-element Components wrapper so the component
// level survives the round trip.
func DecodeComponents(b []byte, seps message.Separators, trim bool) message.Field {
	parts := split(b, seps.Component, trim)
	switch len(parts) {
	case 0:
		return message.String("")
	case 1:
		comp := DecodeSubcomponents(parts[0], seps, trim)
		if sub, ok := comp.(message.Subcomponents); ok {
			return message.Components{sub}
		}
		return comp.(message.Value)
	}
	comps := make(message.Components, len(parts))
	for i, part := range parts {
		comps[i] = DecodeSubcomponents(part, seps, trim)
	}
	return comps
}

// DecodeSubcomponents decodes one component. A component with a single
// subcomponent collapses to the bare value.
func DecodeSubcomponents(b []byte, seps message.Separators, trim bool) message.Component {
	parts := split(b, seps.Subcomponent, trim)
	switch len(parts) {
	case 0:
		return message.String("")
	case 1:
		return decodeLeaf(parts[0], seps)
	}
	subs := make(message.Subcomponents, len(parts))
	for i, part := range parts {
		subs[i] = decodeLeaf(part, seps)
	}
	return subs
}

func decodeLeaf(b []byte, seps message.Separators) message.Value {
	if bytes.Equal(b, nullMarker) {
		return message.Null{}
	}
	return message.String(Unescape(b, seps))
}

// split divides b on the separator byte. With trim set, trailing empty parts
// are dropped; an all-empty split collapses to nothing.
func split(b []byte, sep byte, trim bool) [][]byte {
	parts := bytes.Split(b, []byte{sep})
	if trim {
		for len(parts) > 0 && len(parts[len(parts)-1]) == 0 {
			parts = parts[:len(parts)-1]
		}
	}
	return parts
}

// EncodeField encodes a decoded field back to wire bytes. With trim set,
// trailing empty positions are dropped at every level before joining.
func EncodeField(f message.Field, seps message.Separators, trim bool) ([]byte, error) {
	switch v := f.(type) {
	case message.Repetitions:
		parts := make([][]byte, len(v))
		for i, rep := range v {
			enc, err := EncodeField(rep, seps, trim)
			if err != nil {
				return nil, err
			}
			parts[i] = enc
		}
		return join(parts, seps.Repetition, trim), nil
	case message.Components:
		parts := make([][]byte, len(v))
		for i, comp := range v {
			enc, err := EncodeComponent(comp, seps, trim)
			if err != nil {
				return nil, err
			}
			parts[i] = enc
		}
		return join(parts, seps.Component, trim), nil
	case message.Value:
		return encodeLeaf(v, seps)
	}
	return nil, message.NewReadError(message.ErrKindBadValue, "unsupported field representation %T", f)
}

// EncodeComponent encodes one component to wire bytes.
func EncodeComponent(c message.Component, seps message.Separators, trim bool) ([]byte, error) {
	switch v := c.(type) {
	case message.Subcomponents:
		parts := make([][]byte, len(v))
		for i, sub := range v {
			enc, err := encodeLeaf(sub, seps)
			if err != nil {
				return nil, err
			}
			parts[i] = enc
		}
		return join(parts, seps.Subcomponent, trim), nil
	case message.Value:
		return encodeLeaf(v, seps)
	}
	return nil, message.NewReadError(message.ErrKindBadValue, "unsupported component representation %T", c)
}

func encodeLeaf(v message.Value, seps message.Separators) ([]byte, error) {
	if s, ok := v.(message.String); ok {
		return Escape([]byte(s), seps), nil
	}
	return formatValue(v)
}

func join(parts [][]byte, sep byte, trim bool) []byte {
	if trim {
		for len(parts) > 0 && len(parts[len(parts)-1]) == 0 {
			parts = parts[:len(parts)-1]
		}
	}
	return bytes.Join(parts, []byte{sep})
}
