package value

import "testing"

func TestMakeAs(t *testing.T) {
	v := Make(Float, float32(2.0))
	if v.TypeID() != Float {
		t.Fatalf("TypeID() = %v, want Float", v.TypeID())
	}
	got, ok := As[float32](v)
	if !ok || got != 2.0 {
		t.Fatalf("As[float32]() = (%v, %v), want (2.0, true)", got, ok)
	}
	if _, ok := As[string](v); ok {
		t.Fatalf("As[string]() on a Float value should fail")
	}
}

func TestMakeArray(t *testing.T) {
	v := MakeArray(Token, []string{"a", "b", "c"})
	if !v.IsArray() {
		t.Fatalf("IsArray() = false, want true")
	}
	if v.TypeName() != "token[]" {
		t.Fatalf("TypeName() = %q, want %q", v.TypeName(), "token[]")
	}
	got, ok := As[[]string](v)
	if !ok || len(got) != 3 {
		t.Fatalf("As[[]string]() = (%v, %v)", got, ok)
	}
}

func TestZeroValueInvalid(t *testing.T) {
	var v Value
	if v.IsValid() {
		t.Fatalf("zero Value should be invalid")
	}
	if v.TypeID() != Invalid {
		t.Fatalf("zero Value TypeID() = %v, want Invalid", v.TypeID())
	}
}

func TestSchemaTypeIDFallback(t *testing.T) {
	if got := SchemaTypeID("Xform"); got != PrimXform {
		t.Fatalf("SchemaTypeID(Xform) = %v, want PrimXform", got)
	}
	if got := SchemaTypeID("SomeFutureSchema"); got != PrimGeneric {
		t.Fatalf("SchemaTypeID(unknown) = %v, want PrimGeneric", got)
	}
}
