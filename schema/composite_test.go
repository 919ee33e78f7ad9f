package schema

import (
	"testing"

	"github.com/jcomellas/ex-hl7/internal/testutil"
	"github.com/jcomellas/ex-hl7/message"
)

func ceSpec(t *testing.T) *CompositeSpec {
	t.Helper()
	return MustCompositeSpec("CE", []ComponentSpec{
		{Name: "id", Kind: message.KindString},
		{Name: "text", Kind: message.KindString},
		{Name: "coding_system", Kind: message.KindString},
	})
}

func TestCompositeIndex(t *testing.T) {
	ce := ceSpec(t)
	i, comp, ok := ce.Index("text")
	testutil.True(t, ok, "found")
	testutil.Equal(t, 2, i, "1-based index")
	testutil.Equal(t, "text", comp.Name, "component")

	_, _, ok = ce.Index("missing")
	testutil.False(t, ok, "unknown key")
}

func TestCompositeSubIndex(t *testing.T) {
	cq := MustCompositeSpec("CQ", []ComponentSpec{
		{Name: "quantity", Kind: message.KindInteger},
		{Name: "units", Composite: ceSpec(t)},
	})

	i, j, sub, ok := cq.SubIndex("units", "coding_system")
	testutil.True(t, ok, "found")
	testutil.Equal(t, 2, i, "component index")
	testutil.Equal(t, 3, j, "subcomponent index")
	testutil.Equal(t, "coding_system", sub.Name, "subcomponent spec")

	_, _, _, ok = cq.SubIndex("quantity", "id")
	testutil.False(t, ok, "primitive has no subcomponents")
}

func TestCompositeInvariants(t *testing.T) {
	_, err := NewCompositeSpec("CE", []ComponentSpec{
		{Name: "id", Kind: message.KindString},
		{Name: "id", Kind: message.KindString},
	})
	testutil.Error(t, err, "duplicate component name")

	inner := MustCompositeSpec("HD", []ComponentSpec{
		{Name: "namespace_id", Kind: message.KindString},
	})
	mid := MustCompositeSpec("CX", []ComponentSpec{
		{Name: "authority", Composite: inner},
	})
	_, err = NewCompositeSpec("XX", []ComponentSpec{
		{Name: "too_deep", Composite: mid},
	})
	testutil.Error(t, err, "three levels of nesting")
}
