package attr

import (
	"testing"

	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

func radiusSamples() *TimeSamples {
	ts := NewTimeSamples()
	ts.AddSample(0, value.Make(value.Double, 1.0))
	ts.AddSample(10, value.Make(value.Double, 3.0))
	return ts
}

func TestHeldVsLinear(t *testing.T) {
	ts := radiusSamples()

	mustHeld := func(tm, want float64) {
		v, ok := ts.GetValueAt(tm, Held)
		if !ok {
			t.Fatalf("Held@%v: absent, want %v", tm, want)
		}
		got, _ := value.As[float64](v)
		if got != want {
			t.Fatalf("Held@%v = %v, want %v", tm, got, want)
		}
	}
	mustLinear := func(tm, want float64) {
		v, ok := ts.GetValueAt(tm, Linear)
		if !ok {
			t.Fatalf("Linear@%v: absent, want %v", tm, want)
		}
		got, _ := value.As[float64](v)
		if got != want {
			t.Fatalf("Linear@%v = %v, want %v", tm, got, want)
		}
	}

	mustHeld(5, 1.0)
	mustHeld(10, 3.0)
	mustLinear(5, 2.0)
	mustLinear(10, 3.0)
	mustLinear(-1, 1.0)
	mustLinear(11, 3.0)
}

func TestBlockedSamplePropagatesAbsent(t *testing.T) {
	ts := NewTimeSamples()
	ts.AddSample(0, value.Make(value.Double, 1.0))
	ts.AddBlockedSample(5)
	ts.AddSample(10, value.Make(value.Double, 3.0))

	if v, ok := ts.GetValueAt(4, Held); !ok {
		t.Fatalf("Held@4: absent, want 1.0")
	} else if got, _ := value.As[float64](v); got != 1.0 {
		t.Fatalf("Held@4 = %v, want 1.0", got)
	}
	if _, ok := ts.GetValueAt(5, Held); ok {
		t.Fatalf("Held@5 should be absent (blocked)")
	}
	if _, ok := ts.GetValueAt(6, Held); ok {
		t.Fatalf("Held@6 should be absent (still inside block span)")
	}
	if v, ok := ts.GetValueAt(10, Held); !ok {
		t.Fatalf("Held@10: absent, want 3.0")
	} else if got, _ := value.As[float64](v); got != 3.0 {
		t.Fatalf("Held@10 = %v, want 3.0", got)
	}
}

func TestEmptyTimeSamplesAbsent(t *testing.T) {
	ts := NewTimeSamples()
	if _, ok := ts.GetValueAt(0, Held); ok {
		t.Fatalf("empty TimeSamples should be absent regardless of t")
	}
	if _, ok := ts.GetValueAt(0, Linear); ok {
		t.Fatalf("empty TimeSamples should be absent regardless of t")
	}
}

func TestSortIdempotent(t *testing.T) {
	ts := NewTimeSamples()
	ts.AddSample(10, value.Make(value.Double, 3.0))
	ts.AddSample(0, value.Make(value.Double, 1.0))
	ts.AddSample(5, value.Make(value.Double, 2.0))

	first := ts.Times()
	ts.sortIfDirty() // already sorted, should be a no-op
	second := ts.Times()
	if len(first) != len(second) {
		t.Fatalf("Times() length changed across idempotent sort")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Times()[%d] changed: %v vs %v", i, first[i], second[i])
		}
	}
	want := []float64{0, 5, 10}
	for i, w := range want {
		if first[i] != w {
			t.Fatalf("Times()[%d] = %v, want %v", i, first[i], w)
		}
	}
}

func TestLinearVector(t *testing.T) {
	ts := NewTimeSamples()
	ts.AddSample(0, value.Make(value.Float3ID, value.Float3{0, 0, 0}))
	ts.AddSample(10, value.Make(value.Float3ID, value.Float3{10, 20, 30}))

	v, ok := ts.GetValueAt(5, Linear)
	if !ok {
		t.Fatalf("Linear@5: absent")
	}
	got, _ := value.As[value.Float3](v)
	want := value.Float3{5, 10, 15}
	if got != want {
		t.Fatalf("Linear@5 = %v, want %v", got, want)
	}
}

func TestGetDefaultReturnsFirstSample(t *testing.T) {
	ts := radiusSamples()
	v, ok := ts.GetDefault()
	if !ok {
		t.Fatalf("GetDefault(): absent")
	}
	got, _ := value.As[float64](v)
	if got != 1.0 {
		t.Fatalf("GetDefault() = %v, want 1.0", got)
	}
}
