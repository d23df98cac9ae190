package reconstruct

import (
	"errors"
	"strings"
	"testing"

	"github.com/Cindy-xdZhang/OpenUsdLoader/crate"
	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

// noReadSource panics if ever read from: every ValueRep in these fixtures
// is inlined, so DecodeValue must never touch the Source.
type noReadSource struct{}

func (noReadSource) ReadAt(p []byte, off int64) (int, error) {
	panic("unexpected read from inlined-only fixture")
}
func (noReadSource) Size() int64 { return 0 }

// fixture builds a minimal decoded crate tree:
//
//	/Xform1            (def Xform)
//	  .size  = int 42
//	  /Xform1/Child     (def Sphere)
//	/Over1              (over, skipped with a warning)
func fixture(t *testing.T) *crate.Decoded {
	t.Helper()
	tokens := []string{"typeName", "specifier", "default", "Xform", "Sphere", "int"}

	mk := func(isInlined bool, id value.TypeID, payload uint64) crate.ValueRep {
		return crate.MakeValueRep(false, isInlined, false, id, payload)
	}

	fields := []crate.Field{
		{TokenIndex: 0, Rep: mk(true, value.Token, 3)},      // typeName = Xform
		{TokenIndex: 1, Rep: mk(true, value.Specifier, 0)},  // specifier = def
		{TokenIndex: 0, Rep: mk(true, value.Token, 5)},      // typeName = int
		{TokenIndex: 2, Rep: mk(true, value.Int, 42)},       // default = 42
		{TokenIndex: 0, Rep: mk(true, value.Token, 4)},      // typeName = Sphere
		{TokenIndex: 1, Rep: mk(true, value.Specifier, 0)},  // specifier = def
		{TokenIndex: 1, Rep: mk(true, value.Specifier, 1)},  // specifier = over
	}

	const sentinel = ^uint32(0)
	fieldSetIndices := []uint32{
		sentinel,          // 0: pseudo-root, empty
		0, 1, sentinel,    // 1: Xform1
		2, 3, sentinel,    // 4: size
		4, 5, sentinel,    // 7: Child
		6, sentinel,       // 10: Over1
	}

	root := sdfpath.Root()
	xform1, err := root.AppendElement("Xform1")
	if err != nil {
		t.Fatalf("AppendElement Xform1: %v", err)
	}
	size, err := xform1.AppendProperty("size")
	if err != nil {
		t.Fatalf("AppendProperty size: %v", err)
	}
	child, err := xform1.AppendElement("Child")
	if err != nil {
		t.Fatalf("AppendElement Child: %v", err)
	}
	over1, err := root.AppendElement("Over1")
	if err != nil {
		t.Fatalf("AppendElement Over1: %v", err)
	}
	paths := []sdfpath.Path{root, xform1, size, child, over1}

	specs := []crate.Spec{
		{PathIndex: 0, FieldSetIndex: 0, Type: crate.SpecTypePseudoRoot},
		{PathIndex: 1, FieldSetIndex: 1, Type: crate.SpecTypePrim},
		{PathIndex: 2, FieldSetIndex: 4, Type: crate.SpecTypeAttribute},
		{PathIndex: 3, FieldSetIndex: 7, Type: crate.SpecTypePrim},
		{PathIndex: 4, FieldSetIndex: 10, Type: crate.SpecTypePrim},
	}

	return &crate.Decoded{
		Tokens:          tokens,
		Fields:          fields,
		FieldSetIndices: fieldSetIndices,
		Paths:           paths,
		Specs:           specs,
		Source:          noReadSource{},
		Config:          crate.DefaultConfig(),
	}
}

func TestReconstructBasic(t *testing.T) {
	stage, warnings, err := Reconstruct(fixture(t))
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(stage.RootPrims) != 1 {
		t.Fatalf("want 1 root prim, got %d", len(stage.RootPrims))
	}
	xform1 := stage.RootPrims[0]
	if xform1.Name() != "Xform1" || xform1.TypeName != "Xform" {
		t.Fatalf("unexpected root prim: name=%s type=%s", xform1.Name(), xform1.TypeName)
	}
	prop, ok := xform1.Properties.Get("size")
	if !ok {
		t.Fatalf("missing property size")
	}
	if prop.Attribute == nil || prop.Attribute.TypeName != "int" {
		t.Fatalf("size attribute has wrong typeName: %+v", prop.Attribute)
	}
	v, ok := prop.Attribute.GetValue()
	if !ok {
		t.Fatalf("size attribute has no value")
	}
	n, ok := value.As[int32](v)
	if !ok || n != 42 {
		t.Fatalf("size value = %v, want int32(42)", v)
	}

	if len(xform1.Children) != 1 || xform1.Children[0].Name() != "Child" {
		t.Fatalf("unexpected children: %+v", xform1.Children)
	}
	if xform1.Children[0].TypeName != "Sphere" {
		t.Fatalf("Child typeName = %s, want Sphere", xform1.Children[0].TypeName)
	}

	foundOverWarning := false
	for _, w := range warnings {
		if strings.Contains(w, "Over1") {
			foundOverWarning = true
		}
	}
	if !foundOverWarning {
		t.Fatalf("expected a warning mentioning Over1, got %v", warnings)
	}
}

func TestReconstructDuplicatePathIndex(t *testing.T) {
	d := fixture(t)
	// Force two specs to claim the same path index.
	d.Specs[3].PathIndex = d.Specs[1].PathIndex
	_, _, err := Reconstruct(d)
	if err == nil {
		t.Fatalf("expected an error for a duplicate path index")
	}
	if !errors.Is(err, crate.ErrSemantic) {
		t.Fatalf("err = %v, want wrapping crate.ErrSemantic", err)
	}
}

func TestReconstructMissingPseudoRoot(t *testing.T) {
	d := fixture(t)
	d.Specs[0].Type = crate.SpecTypePrim
	_, _, err := Reconstruct(d)
	if err == nil {
		t.Fatalf("expected an error when no PseudoRoot spec is present")
	}
	if !errors.Is(err, crate.ErrStructural) {
		t.Fatalf("err = %v, want wrapping crate.ErrStructural", err)
	}
}
