// Package schema describes segment and composite layouts: named, typed
// fields mapped onto delimiter coordinates inside a field, and the bridge
// between those named fields and the codec representation.
package schema

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jcomellas/ex-hl7/message"
)

// Coordinate addresses one item inside a field with 1-based indices:
// repetition, then component, then subcomponent. Comp and Sub may be zero,
// giving a 1-, 2- or 3-index coordinate.
type Coordinate struct {
	Rep  int
	Comp int
	Sub  int
}

// Arity returns how many indices the coordinate uses (1, 2 or 3).
func (c Coordinate) Arity() int {
	switch {
	case c.Sub > 0:
		return 3
	case c.Comp > 0:
		return 2
	default:
		return 1
	}
}

// String renders the coordinate as dotted indices, e.g. "1.2.3".
func (c Coordinate) String() string {
	switch c.Arity() {
	case 3:
		return fmt.Sprintf("%d.%d.%d", c.Rep, c.Comp, c.Sub)
	case 2:
		return fmt.Sprintf("%d.%d", c.Rep, c.Comp)
	default:
		return fmt.Sprintf("%d", c.Rep)
	}
}

func (c Coordinate) valid() bool {
	if c.Rep < 1 {
		return false
	}
	if c.Sub > 0 && c.Comp < 1 {
		return false
	}
	return c.Comp >= 0 && c.Sub >= 0
}

func compareCoordinates(a, b Coordinate) int {
	if n := cmp.Compare(a.Rep, b.Rep); n != 0 {
		return n
	}
	if n := cmp.Compare(a.Comp, b.Comp); n != 0 {
		return n
	}
	return cmp.Compare(a.Sub, b.Sub)
}

// FieldSpec maps one named segment attribute to a coordinate inside the
// field at Sequence. MaxLength is advisory metadata; it does not gate
// encoding.
type FieldSpec struct {
	Name      string
	Sequence  int
	Coord     Coordinate
	Kind      message.ValueKind
	MaxLength int
}

// SegmentSpec describes the named fields of one segment ID. Several field
// specs may share a sequence number, addressing different coordinates within
// the same field. Per-sequence lists are kept in descending coordinate order;
// FieldsAt reverses them for the ascending encode walk.
type SegmentSpec struct {
	id     string
	seqs   map[int][]FieldSpec
	byName map[string]FieldSpec
	maxSeq int
}

// NewSegmentSpec builds a segment spec, enforcing the construction
// invariants: a valid segment ID, unique field names, unique
// (sequence, coordinate) pairs, and no whole-repetition spec sharing a
// repetition with component-level specs.
func NewSegmentSpec(id string, fields []FieldSpec) (*SegmentSpec, error) {
	if !ValidSegmentID(id) {
		return nil, fmt.Errorf("schema: invalid segment ID %q", id)
	}
	s := &SegmentSpec{
		id:     id,
		seqs:   make(map[int][]FieldSpec),
		byName: make(map[string]FieldSpec),
	}
	type seqCoord struct {
		seq   int
		coord Coordinate
	}
	coords := make(map[seqCoord]string)
	for _, fs := range fields {
		if fs.Name == "" {
			return nil, fmt.Errorf("schema: %s: field spec with empty name", id)
		}
		if fs.Sequence < 1 {
			return nil, fmt.Errorf("schema: %s.%s: invalid sequence %d", id, fs.Name, fs.Sequence)
		}
		if !fs.Coord.valid() {
			return nil, fmt.Errorf("schema: %s.%s: invalid coordinate %s", id, fs.Name, fs.Coord)
		}
		if _, dup := s.byName[fs.Name]; dup {
			return nil, fmt.Errorf("schema: %s: duplicate field name %q", id, fs.Name)
		}
		key := seqCoord{fs.Sequence, fs.Coord}
		if other, dup := coords[key]; dup {
			return nil, fmt.Errorf("schema: %s: fields %q and %q share coordinate %d/%s",
				id, other, fs.Name, fs.Sequence, fs.Coord)
		}
		coords[key] = fs.Name
		s.byName[fs.Name] = fs
		s.seqs[fs.Sequence] = append(s.seqs[fs.Sequence], fs)
		s.maxSeq = max(s.maxSeq, fs.Sequence)
	}

	for seq, list := range s.seqs {
		slices.SortFunc(list, func(a, b FieldSpec) int {
			return compareCoordinates(b.Coord, a.Coord)
		})
		for _, fs := range list {
			if fs.Coord.Arity() > 1 {
				continue
			}
			for _, other := range list {
				if other.Coord.Arity() > 1 && other.Coord.Rep == fs.Coord.Rep {
					return nil, fmt.Errorf(
						"schema: %s: field %q addresses a whole repetition that %q splits into components (sequence %d)",
						id, fs.Name, other.Name, seq)
				}
			}
		}
	}
	return s, nil
}

// MustSegmentSpec is NewSegmentSpec panicking on error, for static tables.
func MustSegmentSpec(id string, fields []FieldSpec) *SegmentSpec {
	s, err := NewSegmentSpec(id, fields)
	if err != nil {
		panic(err)
	}
	return s
}

// ID returns the segment ID this spec describes.
func (s *SegmentSpec) ID() string {
	return s.id
}

// MaxSequence returns the highest sequence number with a field spec.
func (s *SegmentSpec) MaxSequence() int {
	return s.maxSeq
}

// FieldsAt returns the field specs for one sequence in ascending coordinate
// order, the order the encode walk consumes them.
func (s *SegmentSpec) FieldsAt(seq int) []FieldSpec {
	stored := s.seqs[seq]
	if len(stored) == 0 {
		return nil
	}
	asc := make([]FieldSpec, len(stored))
	for i, fs := range stored {
		asc[len(stored)-1-i] = fs
	}
	return asc
}

// FieldByName returns the spec for a named attribute.
func (s *SegmentSpec) FieldByName(name string) (FieldSpec, bool) {
	fs, ok := s.byName[name]
	return fs, ok
}

// FieldNames returns all attribute names, sorted by sequence then
// coordinate.
func (s *SegmentSpec) FieldNames() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		fa, fb := s.byName[a], s.byName[b]
		if n := cmp.Compare(fa.Sequence, fb.Sequence); n != 0 {
			return n
		}
		return compareCoordinates(fa.Coord, fb.Coord)
	})
	return names
}

// ValidSegmentID reports whether id is "MSH" or an uppercase letter followed
// by two uppercase letters or digits.
func ValidSegmentID(id string) bool {
	if len(id) != 3 {
		return false
	}
	if id == "MSH" {
		return true
	}
	if id[0] < 'A' || id[0] > 'Z' {
		return false
	}
	for i := 1; i < 3; i++ {
		b := id[i]
		if (b < 'A' || b > 'Z') && (b < '0' || b > '9') {
			return false
		}
	}
	return true
}
