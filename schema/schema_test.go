package schema

import (
	"testing"

	"github.com/jcomellas/ex-hl7/internal/testutil"
	"github.com/jcomellas/ex-hl7/message"
)

func TestCoordinateArity(t *testing.T) {
	testutil.Equal(t, 1, Coordinate{Rep: 1}.Arity(), "repetition only")
	testutil.Equal(t, 2, Coordinate{Rep: 1, Comp: 2}.Arity(), "component")
	testutil.Equal(t, 3, Coordinate{Rep: 1, Comp: 2, Sub: 3}.Arity(), "subcomponent")
	testutil.Equal(t, "1.2.3", Coordinate{Rep: 1, Comp: 2, Sub: 3}.String(), "render")
}

func TestNewSegmentSpec(t *testing.T) {
	spec, err := NewSegmentSpec("PR1", []FieldSpec{
		{Name: "set_id", Sequence: 1, Coord: Coordinate{Rep: 1}, Kind: message.KindInteger},
		{Name: "procedure_id", Sequence: 3, Coord: Coordinate{Rep: 1, Comp: 1}, Kind: message.KindString},
		{Name: "procedure_name", Sequence: 3, Coord: Coordinate{Rep: 1, Comp: 2}, Kind: message.KindString},
	})
	testutil.NoError(t, err, "valid spec")
	testutil.Equal(t, "PR1", spec.ID(), "id")
	testutil.Equal(t, 3, spec.MaxSequence(), "max sequence")

	fs, ok := spec.FieldByName("procedure_name")
	testutil.True(t, ok, "lookup by name")
	testutil.Equal(t, 3, fs.Sequence, "sequence")
}

func TestFieldsAtAscendingOrder(t *testing.T) {
	// Construction order is deliberately scrambled; FieldsAt walks the
	// stored descending list backwards.
	spec := MustSegmentSpec("ERR", []FieldSpec{
		{Name: "c", Sequence: 1, Coord: Coordinate{Rep: 1, Comp: 3}, Kind: message.KindString},
		{Name: "a", Sequence: 1, Coord: Coordinate{Rep: 1, Comp: 1}, Kind: message.KindString},
		{Name: "b", Sequence: 1, Coord: Coordinate{Rep: 1, Comp: 2}, Kind: message.KindString},
	})
	var names []string
	for _, fs := range spec.FieldsAt(1) {
		names = append(names, fs.Name)
	}
	testutil.SliceEqual(t, []string{"a", "b", "c"}, names, "ascending coordinates")
	testutil.Len(t, spec.FieldsAt(2), 0, "no specs at sequence 2")
}

func TestSegmentSpecInvariants(t *testing.T) {
	_, err := NewSegmentSpec("xxx", nil)
	testutil.Error(t, err, "lowercase ID")

	_, err = NewSegmentSpec("PID", []FieldSpec{
		{Name: "a", Sequence: 1, Coord: Coordinate{Rep: 1}, Kind: message.KindString},
		{Name: "b", Sequence: 1, Coord: Coordinate{Rep: 1}, Kind: message.KindString},
	})
	testutil.Error(t, err, "duplicate coordinate")

	_, err = NewSegmentSpec("PID", []FieldSpec{
		{Name: "a", Sequence: 1, Coord: Coordinate{Rep: 1}, Kind: message.KindString},
		{Name: "a", Sequence: 2, Coord: Coordinate{Rep: 1}, Kind: message.KindString},
	})
	testutil.Error(t, err, "duplicate name")

	_, err = NewSegmentSpec("PID", []FieldSpec{
		{Name: "whole", Sequence: 1, Coord: Coordinate{Rep: 1}, Kind: message.KindString},
		{Name: "part", Sequence: 1, Coord: Coordinate{Rep: 1, Comp: 2}, Kind: message.KindString},
	})
	testutil.Error(t, err, "whole repetition conflicts with components")

	_, err = NewSegmentSpec("PID", []FieldSpec{
		{Name: "a", Sequence: 0, Coord: Coordinate{Rep: 1}, Kind: message.KindString},
	})
	testutil.Error(t, err, "sequence zero")

	_, err = NewSegmentSpec("PID", []FieldSpec{
		{Name: "a", Sequence: 1, Coord: Coordinate{Rep: 1, Sub: 2}, Kind: message.KindString},
	})
	testutil.Error(t, err, "subcomponent without component")
}

func TestSameSequenceDifferentRepetitions(t *testing.T) {
	spec := MustSegmentSpec("PID", []FieldSpec{
		{Name: "id", Sequence: 3, Coord: Coordinate{Rep: 1, Comp: 1}, Kind: message.KindString},
		{Name: "alt_id", Sequence: 3, Coord: Coordinate{Rep: 2, Comp: 1}, Kind: message.KindString},
	})
	testutil.Len(t, spec.FieldsAt(3), 2, "both repetitions addressable")
}

func TestValidSegmentID(t *testing.T) {
	testutil.True(t, ValidSegmentID("MSH"), "MSH")
	testutil.True(t, ValidSegmentID("PID"), "PID")
	testutil.True(t, ValidSegmentID("PR1"), "digit in position 2")
	testutil.True(t, ValidSegmentID("Z99"), "Z segment")
	testutil.False(t, ValidSegmentID("1AB"), "leading digit")
	testutil.False(t, ValidSegmentID("pid"), "lowercase")
	testutil.False(t, ValidSegmentID("PIDX"), "too long")
	testutil.False(t, ValidSegmentID("PI"), "too short")
}
