package value

import "testing"

func TestUpcastHalf3ToColor3f(t *testing.T) {
	h := Half3{HalfFromFloat32(1), HalfFromFloat32(2), HalfFromFloat32(3)}
	v := Make(Half3ID, h)

	if ok := UpcastNumeric("color3f", &v); !ok {
		t.Fatalf("UpcastNumeric(color3f) = false, want true")
	}
	if v.TypeID() != Float3ID {
		t.Fatalf("after upcast TypeID() = %v, want Float3", v.TypeID())
	}
	got, ok := As[Float3](v)
	if !ok {
		t.Fatalf("As[Float3]() failed after upcast")
	}
	want := Float3{1, 2, 3}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUpcastIdempotent(t *testing.T) {
	v := Make(HalfID, HalfFromFloat32(1.5))
	UpcastNumeric("float", &v)
	first := v
	ok := UpcastNumeric("float", &v)
	if !ok {
		t.Fatalf("second UpcastNumeric call should still report success")
	}
	if v != first {
		t.Fatalf("UpcastNumeric is not idempotent: got %v, want %v", v, first)
	}
}

func TestUpcastUnrelatedPairFails(t *testing.T) {
	v := Make(Token, "hello")
	if ok := UpcastNumeric("float", &v); ok {
		t.Fatalf("UpcastNumeric(float) on a token value should fail")
	}
	if v.TypeID() != Token {
		t.Fatalf("failed upcast must not mutate v, got TypeID() = %v", v.TypeID())
	}
}

func TestTryGetUnderlyingTypeID(t *testing.T) {
	id, ok := TryGetUnderlyingTypeID("point3f")
	if !ok || id != Float3ID {
		t.Fatalf("TryGetUnderlyingTypeID(point3f) = (%v, %v), want (Float3, true)", id, ok)
	}
	id, ok = TryGetUnderlyingTypeID("float3")
	if !ok || id != Float3ID {
		t.Fatalf("TryGetUnderlyingTypeID(float3) = (%v, %v), want (Float3, true)", id, ok)
	}
	if _, ok := TryGetUnderlyingTypeID("nonsense"); ok {
		t.Fatalf("TryGetUnderlyingTypeID(nonsense) should fail")
	}
}
