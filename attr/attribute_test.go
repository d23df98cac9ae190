package attr

import (
	"testing"

	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

func TestScalarAttributeGetValue(t *testing.T) {
	a := NewAttribute("size", "float")
	a.SetValue(value.Make(value.Float, float32(2.0)))

	v, ok := a.GetValue()
	if !ok {
		t.Fatalf("GetValue(): absent")
	}
	got, _ := value.As[float32](v)
	if got != 2.0 {
		t.Fatalf("GetValue() = %v, want 2.0", got)
	}

	v2, ok := a.GetValueAt(0, Held)
	if !ok {
		t.Fatalf("GetValueAt(0, Held): absent")
	}
	got2, _ := value.As[float32](v2)
	if got2 != 2.0 {
		t.Fatalf("GetValueAt(0, Held) = %v, want 2.0", got2)
	}
}

func TestBlockedAttributeAuthoredButAbsent(t *testing.T) {
	a := NewAttribute("radius", "float")
	a.SetBlockedSample(0)

	if _, ok := a.GetValue(); ok {
		t.Fatalf("GetValue() on a blocked attribute should be absent")
	}
	if !a.Authored() {
		t.Fatalf("Authored() should be true for a blocked attribute")
	}
}

func TestConnectionDefersToCaller(t *testing.T) {
	a := NewAttribute("surface", "token")
	target := sdfpath.New("/Mat/Shader", "out")
	a.SetConnection(target)

	if _, ok := a.GetValue(); ok {
		t.Fatalf("GetValue() on a connection attribute should be absent (core does not traverse connections)")
	}
	if !a.IsConnection() {
		t.Fatalf("IsConnection() should be true")
	}
	if !a.Authored() {
		t.Fatalf("Authored() should be true for a connection attribute")
	}
}

func TestTypedAttributeWithFallback(t *testing.T) {
	prop := NewEmptyAttribute("visibility", "token", false)
	typed := WrapTypedAttributeWithFallback[string](prop, "inherited")
	if got := typed.GetValue(); got != "inherited" {
		t.Fatalf("GetValue() = %q, want fallback %q", got, "inherited")
	}

	prop.Attribute.SetValue(value.Make(value.Token, "invisible"))
	if got := typed.GetValue(); got != "invisible" {
		t.Fatalf("GetValue() = %q, want authored %q", got, "invisible")
	}
}
