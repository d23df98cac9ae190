package sdfpath

import "testing"

func TestAppendElement(t *testing.T) {
	root := Root()
	a, err := root.AppendElement("A")
	if err != nil {
		t.Fatalf("AppendElement: %v", err)
	}
	if a.String() != "/A" {
		t.Fatalf("String() = %q, want /A", a.String())
	}
	b, err := a.AppendElement("B")
	if err != nil {
		t.Fatalf("AppendElement: %v", err)
	}
	if b.String() != "/A/B" {
		t.Fatalf("String() = %q, want /A/B", b.String())
	}
	if b.Element() != "B" {
		t.Fatalf("Element() = %q, want B", b.Element())
	}
}

func TestAppendPropertyRejectsPropertyPath(t *testing.T) {
	p := New("/A", "")
	prop, err := p.AppendProperty("size")
	if err != nil {
		t.Fatalf("AppendProperty: %v", err)
	}
	if !prop.IsProperty() {
		t.Fatalf("IsProperty() = false, want true")
	}
	if _, err := prop.AppendProperty("nested"); err == nil {
		t.Fatalf("AppendProperty on a property path should fail")
	}
}

func TestSplitAtRoot(t *testing.T) {
	cases := []struct {
		in        string
		wantPar   string
		wantChild string
	}{
		{"/A/B", "/A", "B"},
		{"/A", "/A", ""},
		{"A", "", "A"},
	}
	for _, c := range cases {
		p := New(c.in, "")
		par, child := p.SplitAtRoot()
		if par.String() != c.wantPar || child != c.wantChild {
			t.Errorf("SplitAtRoot(%q) = (%q, %q), want (%q, %q)", c.in, par.String(), child, c.wantPar, c.wantChild)
		}
	}
}

func TestParentPrim(t *testing.T) {
	p := New("/A/B", "")
	parent := p.ParentPrim()
	if parent.String() != "/A" {
		t.Fatalf("ParentPrim() = %q, want /A", parent.String())
	}
	root := Root()
	if root.ParentPrim().IsValid() {
		t.Fatalf("ParentPrim() of root should be invalid")
	}
	single := New("/A", "")
	if single.ParentPrim().String() != "/" {
		t.Fatalf("ParentPrim() of /A = %q, want /", single.ParentPrim().String())
	}
}

func TestEquality(t *testing.T) {
	a := New("/A/B", "")
	b := New("/A/B", "")
	if !a.Equal(b) {
		t.Fatalf("structurally equal paths should compare equal")
	}
	c := New("/A/B", "size")
	if a.Equal(c) {
		t.Fatalf("a prim path and a property path on it should not compare equal")
	}
}

func TestParseRejectsUnsupported(t *testing.T) {
	for _, s := range []string{"/A.rel[/B.attr]", "/A{var=sel}", "/A/../B"} {
		if _, err := Parse(s); err != ErrUnsupported {
			t.Errorf("Parse(%q) error = %v, want ErrUnsupported", s, err)
		}
	}
}
