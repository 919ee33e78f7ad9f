package schema

import (
	"github.com/jcomellas/ex-hl7/internal/codec"
	"github.com/jcomellas/ex-hl7/message"
)

// BuildField assembles the decoded representation of the field at seq from a
// segment's named values. Values populate their coordinates; positions
// between populated indices fill with empty strings so coordinates stay
// stable. A field with a single repetition is the repetition itself, not a
// one-element list. The second result is false when no spec at seq has a
// value.
func (s *SegmentSpec) BuildField(seq int, seg *message.Segment) (message.Field, bool, error) {
	cells := make(map[Coordinate]message.Value)
	maxRep := 0
	for _, fs := range s.FieldsAt(seq) {
		v, ok := seg.Field(fs.Name)
		if !ok {
			continue
		}
		if !message.IsNull(v) && !message.IsEmpty(v) && message.Kind(v) != fs.Kind {
			return nil, false, message.NewReadError(message.ErrKindBadValue,
				"field %q holds %s, declared %s", fs.Name, message.Kind(v), fs.Kind).
				At(s.id, seq)
		}
		cells[fs.Coord] = v
		maxRep = max(maxRep, fs.Coord.Rep)
	}
	if len(cells) == 0 {
		return nil, false, nil
	}

	reps := make([]message.Field, maxRep)
	for r := 1; r <= maxRep; r++ {
		if v, ok := cells[Coordinate{Rep: r}]; ok {
			reps[r-1] = v
			continue
		}
		maxComp := 0
		for coord := range cells {
			if coord.Rep == r {
				maxComp = max(maxComp, coord.Comp)
			}
		}
		if maxComp == 0 {
			reps[r-1] = message.String("")
			continue
		}
		comps := make(message.Components, maxComp)
		for c := 1; c <= maxComp; c++ {
			comps[c-1] = buildComponent(cells, r, c)
		}
		if maxComp == 1 {
			if sub, ok := comps[0].(message.Subcomponents); ok {
				// Keep the component level visible for a lone
				// subcomponent-structured component.
				reps[r-1] = message.Components{sub}
			} else {
				reps[r-1] = comps[0].(message.Value)
			}
			continue
		}
		reps[r-1] = comps
	}
	if maxRep == 1 {
		return reps[0], true, nil
	}
	return message.Repetitions(reps), true, nil
}

func buildComponent(cells map[Coordinate]message.Value, r, c int) message.Component {
	if v, ok := cells[Coordinate{Rep: r, Comp: c}]; ok {
		return v
	}
	maxSub := 0
	for coord := range cells {
		if coord.Rep == r && coord.Comp == c {
			maxSub = max(maxSub, coord.Sub)
		}
	}
	if maxSub == 0 {
		return message.String("")
	}
	subs := make(message.Subcomponents, maxSub)
	for sIdx := 1; sIdx <= maxSub; sIdx++ {
		if v, ok := cells[Coordinate{Rep: r, Comp: c, Sub: sIdx}]; ok {
			subs[sIdx-1] = v
		} else {
			subs[sIdx-1] = message.String("")
		}
	}
	if maxSub == 1 {
		return subs[0]
	}
	return subs
}

// ParseField reads the decoded field at seq into the segment's named values.
// Each spec navigates the representation by its coordinate; paths that are
// not present leave the field absent. Explicit nulls are stored as Null, and
// empty items stay absent so typed fields never hold placeholder zeros.
func (s *SegmentSpec) ParseField(seq int, f message.Field, seg *message.Segment) error {
	for _, fs := range s.FieldsAt(seq) {
		raw, ok := itemAt(f, fs.Coord)
		if !ok {
			continue
		}
		if message.IsNull(raw) {
			seg.SetField(fs.Name, message.Null{})
			continue
		}
		str, isStr := raw.(message.String)
		if !isStr {
			// Already typed: accept values matching the declared kind.
			if message.Kind(raw) != fs.Kind {
				return message.NewReadError(message.ErrKindBadValue,
					"field %q holds %s, declared %s", fs.Name, message.Kind(raw), fs.Kind).
					At(s.id, seq)
			}
			seg.SetField(fs.Name, raw)
			continue
		}
		text := string(str)
		if text == "" {
			continue
		}
		v, err := codec.DecodeValue([]byte(text), fs.Kind)
		if err != nil {
			if re, isRead := err.(*message.ReadError); isRead {
				return re.At(s.id, seq)
			}
			return err
		}
		seg.SetField(fs.Name, v)
	}
	return nil
}

// itemAt navigates a decoded field by 1-based coordinate indices. When the
// representation lacks a level, index 1 addresses the value itself and
// higher indices address nothing.
func itemAt(f message.Field, coord Coordinate) (message.Value, bool) {
	var rep message.Field
	if reps, ok := f.(message.Repetitions); ok {
		if coord.Rep > len(reps) {
			return nil, false
		}
		rep = reps[coord.Rep-1]
	} else {
		if coord.Rep != 1 {
			return nil, false
		}
		rep = f
	}
	if coord.Arity() == 1 {
		return firstValue(rep)
	}

	var comp message.Component
	if comps, ok := rep.(message.Components); ok {
		if coord.Comp > len(comps) {
			return nil, false
		}
		comp = comps[coord.Comp-1]
	} else {
		v, ok := rep.(message.Value)
		if !ok || coord.Comp != 1 {
			return nil, false
		}
		comp = v
	}
	if coord.Arity() == 2 {
		return firstComponentValue(comp)
	}

	if subs, ok := comp.(message.Subcomponents); ok {
		if coord.Sub > len(subs) {
			return nil, false
		}
		return subs[coord.Sub-1], true
	}
	v, ok := comp.(message.Value)
	if !ok || coord.Sub != 1 {
		return nil, false
	}
	return v, true
}

// firstValue descends a repetition through index 1 until it reaches a value.
func firstValue(rep message.Field) (message.Value, bool) {
	switch v := rep.(type) {
	case message.Value:
		return v, true
	case message.Components:
		if len(v) == 0 {
			return nil, false
		}
		return firstComponentValue(v[0])
	}
	return nil, false
}

func firstComponentValue(comp message.Component) (message.Value, bool) {
	switch v := comp.(type) {
	case message.Value:
		return v, true
	case message.Subcomponents:
		if len(v) == 0 {
			return nil, false
		}
		return v[0], true
	}
	return nil, false
}
