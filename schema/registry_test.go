package schema

import (
	"testing"

	"github.com/jcomellas/ex-hl7/internal/testutil"
	"github.com/jcomellas/ex-hl7/message"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	testutil.True(t, r.SegmentCount() > 10, "tables loaded")

	msh := r.Segment("MSH")
	testutil.True(t, msh != nil, "MSH registered")
	fs, ok := msh.FieldByName("message_control_id")
	testutil.True(t, ok, "MSH field")
	testutil.Equal(t, 10, fs.Sequence, "MSH.10")

	aut := r.Segment("AUT")
	testutil.True(t, aut != nil, "AUT registered")
	start, ok := aut.FieldByName("start_date")
	testutil.True(t, ok, "AUT field")
	testutil.Equal(t, message.KindDate, start.Kind, "date kind")

	testutil.True(t, r.Segment("XXX") == nil, "unknown segment")

	cx := r.Composite("CX")
	testutil.True(t, cx != nil, "CX composite")
	i, j, _, ok := cx.SubIndex("assigning_authority", "universal_id")
	testutil.True(t, ok, "nested composite path")
	testutil.Equal(t, 4, i, "CX.4")
	testutil.Equal(t, 2, j, "HD.2")
}

func TestRegistryRegister(t *testing.T) {
	r := Default().Clone()
	z01 := MustSegmentSpec("Z01", []FieldSpec{
		{Name: "custom_id", Sequence: 1, Coord: Coordinate{Rep: 1}, Kind: message.KindString},
	})
	testutil.NoError(t, r.Register(z01), "register Z segment")
	testutil.True(t, r.Segment("Z01") != nil, "Z segment visible")
	testutil.Error(t, r.Register(z01), "duplicate registration")

	// The shared default registry is unaffected.
	testutil.True(t, Default().Segment("Z01") == nil, "clone isolation")
}

func TestParseRegistryRejectsBadTables(t *testing.T) {
	_, err := ParseRegistry([]byte("segments:\n  - id: bad\n"))
	testutil.Error(t, err, "bad segment ID")

	_, err = ParseRegistry([]byte(`
segments:
  - id: ZZZ
    fields:
      - {name: a, seq: 1, kind: decimal}
`))
	testutil.Error(t, err, "unknown kind")

	_, err = ParseRegistry([]byte(`
composites:
  - name: XX
    components:
      - {name: a, composite: MISSING}
`))
	testutil.Error(t, err, "unknown composite reference")

	_, err = ParseRegistry([]byte("{"))
	testutil.Error(t, err, "malformed YAML")
}
