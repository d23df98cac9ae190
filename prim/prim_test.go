package prim

import (
	"testing"

	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
)

func TestPrimNameMatchesElementPath(t *testing.T) {
	p := NewPrim(sdfpath.New("/World/Cube", ""))
	if p.Name() != "Cube" {
		t.Fatalf("Name() = %q, want Cube", p.Name())
	}
	if p.Name() != p.ElementPath.Element() {
		t.Fatalf("invariant violated: Name() != ElementPath.Element()")
	}
}

func TestStageFindPrim(t *testing.T) {
	root := NewPrim(sdfpath.New("/World", ""))
	child := NewPrim(sdfpath.New("/World/Cube", ""))
	root.Children = append(root.Children, child)

	s := NewStage()
	s.RootPrims = append(s.RootPrims, root)

	found := s.FindPrim(sdfpath.New("/World/Cube", ""))
	if found == nil || found.Name() != "Cube" {
		t.Fatalf("FindPrim() did not locate /World/Cube")
	}
	if s.FindPrim(sdfpath.New("/Nope", "")) != nil {
		t.Fatalf("FindPrim() should return nil for a missing path")
	}
}

func TestAPISchemasEmptyReportsAbsent(t *testing.T) {
	var m PrimMeta
	if _, ok := m.APISchemas(); ok {
		t.Fatalf("APISchemas() on an unauthored meta should report absent, not an empty list")
	}
}
