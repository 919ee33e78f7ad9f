package message

import "iter"

// PairedSegments collects the group of segments anchored at the (rep+1)-th
// occurrence of ids[0]. From the anchor it walks forward, matching the
// remaining IDs in order; an expected ID that does not match the next segment
// is skipped, so every ID after the anchor is effectively optional. Segments
// are returned in message order. The result is empty when the anchor does not
// exist.
func (m *Message) PairedSegments(ids []string, rep int) []*Segment {
	if len(ids) == 0 {
		return nil
	}
	start := m.index(ids[0], rep)
	if start < 0 {
		return nil
	}

	group := []*Segment{m.segments[start]}
	expected := ids[1:]
	for i := start + 1; i < len(m.segments) && len(expected) > 0; i++ {
		seg := m.segments[i]
		// Skip expected IDs until the segment matches or none remain.
		for len(expected) > 0 && seg.id != expected[0] {
			expected = expected[1:]
		}
		if len(expected) == 0 {
			break
		}
		group = append(group, seg)
		expected = expected[1:]
	}
	return group
}

// PairedGroups iterates successive paired-segment groups, anchored at
// consecutive repetitions of ids[0] starting from startRep. The iteration
// index counts groups from zero.
func (m *Message) PairedGroups(ids []string, startRep int) iter.Seq2[int, []*Segment] {
	return func(yield func(int, []*Segment) bool) {
		for i := 0; ; i++ {
			group := m.PairedSegments(ids, startRep+i)
			if len(group) == 0 {
				return
			}
			if !yield(i, group) {
				return
			}
		}
	}
}

// ReducePairedSegments folds fn over successive paired-segment groups
// starting at startRep, threading the accumulator, until no group anchored at
// ids[0] remains.
func (m *Message) ReducePairedSegments(ids []string, startRep int, acc any, fn func(group []*Segment, index int, acc any) any) any {
	for i, group := range m.PairedGroups(ids, startRep) {
		acc = fn(group, i, acc)
	}
	return acc
}
