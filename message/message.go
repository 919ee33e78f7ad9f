// Package message provides the in-memory model for HL7 v2.x messages:
// segments with named typed fields, the decoded field representation, the
// delimiter table, and the positional and group operations over segments.
package message

import (
	"iter"
	"slices"
)

// Message is an ordered sequence of segment instances. The sequence itself is
// immutable: edit operations return a new Message sharing the untouched
// segments.
type Message struct {
	segments []*Segment
}

// New creates a message from segments in order.
func New(segments ...*Segment) *Message {
	return &Message{segments: slices.Clone(segments)}
}

// Len returns the number of segments.
func (m *Message) Len() int {
	return len(m.segments)
}

// At returns the i-th segment, or nil when out of range.
func (m *Message) At(i int) *Segment {
	if i < 0 || i >= len(m.segments) {
		return nil
	}
	return m.segments[i]
}

// Segments iterates the segments in message order.
func (m *Message) Segments() iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		for _, seg := range m.segments {
			if !yield(seg) {
				return
			}
		}
	}
}

// SegmentIDs returns the segment IDs in message order.
func (m *Message) SegmentIDs() []string {
	ids := make([]string, len(m.segments))
	for i, seg := range m.segments {
		ids[i] = seg.id
	}
	return ids
}

// Segment returns the (rep+1)-th segment whose ID equals id, or nil.
func (m *Message) Segment(id string, rep int) *Segment {
	i := m.index(id, rep)
	if i < 0 {
		return nil
	}
	return m.segments[i]
}

// SegmentCount returns the number of segments with the given ID.
func (m *Message) SegmentCount(id string) int {
	n := 0
	for _, seg := range m.segments {
		if seg.id == id {
			n++
		}
	}
	return n
}

// index returns the position of the (rep+1)-th segment with the given ID,
// or -1 when it does not exist.
func (m *Message) index(id string, rep int) int {
	if rep < 0 {
		return -1
	}
	seen := 0
	for i, seg := range m.segments {
		if seg.id != id {
			continue
		}
		if seen == rep {
			return i
		}
		seen++
	}
	return -1
}

// InsertBefore inserts segments immediately before the (rep+1)-th segment
// with the given ID. When the target does not exist the original message is
// returned unchanged.
func (m *Message) InsertBefore(id string, rep int, segments ...*Segment) *Message {
	i := m.index(id, rep)
	if i < 0 || len(segments) == 0 {
		return m
	}
	return &Message{segments: slices.Concat(m.segments[:i], segments, m.segments[i:])}
}

// InsertAfter inserts segments immediately after the (rep+1)-th segment with
// the given ID. When the target does not exist the original message is
// returned unchanged.
func (m *Message) InsertAfter(id string, rep int, segments ...*Segment) *Message {
	i := m.index(id, rep)
	if i < 0 || len(segments) == 0 {
		return m
	}
	return &Message{segments: slices.Concat(m.segments[:i+1], segments, m.segments[i+1:])}
}

// Replace substitutes the (rep+1)-th segment with the given ID by one or more
// segments. When the target does not exist the original message is returned
// unchanged.
func (m *Message) Replace(id string, rep int, segments ...*Segment) *Message {
	i := m.index(id, rep)
	if i < 0 || len(segments) == 0 {
		return m
	}
	return &Message{segments: slices.Concat(m.segments[:i], segments, m.segments[i+1:])}
}

// Delete removes the (rep+1)-th segment with the given ID. When the target
// does not exist the original message is returned unchanged.
func (m *Message) Delete(id string, rep int) *Message {
	i := m.index(id, rep)
	if i < 0 {
		return m
	}
	return &Message{segments: slices.Concat(m.segments[:i], m.segments[i+1:])}
}
