package listop

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplyToExplicit(t *testing.T) {
	op := ListOp[string]{IsExplicit: true, Explicit: []string{"a", "b"}}
	got := ApplyTo([]string{"x", "y"}, op)
	want := []string{"a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ApplyTo() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyToPrependedAppendedDeletedOrdered(t *testing.T) {
	op := ListOp[string]{
		Prepended: []string{"p"},
		Appended:  []string{"ap"},
		Deleted:   []string{"base1"},
		Ordered:   []string{"ap", "p"},
	}
	got := ApplyTo([]string{"base1", "base2"}, op)
	want := []string{"ap", "p", "base2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ApplyTo() mismatch (-want +got):\n%s", diff)
	}
}

func TestSingleQualifierMixedBucketsRejected(t *testing.T) {
	op := ListOp[string]{Added: []string{"a"}, Appended: []string{"b"}}
	if _, _, err := op.SingleQualifier(); err != ErrMixedBuckets {
		t.Fatalf("SingleQualifier() error = %v, want ErrMixedBuckets", err)
	}
}

func TestSingleQualifierExplicit(t *testing.T) {
	op := ListOp[string]{IsExplicit: true, Explicit: []string{"skel:BlendShapes"}}
	name, vals, err := op.SingleQualifier()
	if err != nil {
		t.Fatalf("SingleQualifier(): %v", err)
	}
	if name != "explicit" || len(vals) != 1 {
		t.Fatalf("SingleQualifier() = (%q, %v), want (explicit, [...])", name, vals)
	}
}

func TestHeaderDecode(t *testing.T) {
	h := Header(HeaderHasAdded | HeaderHasDeleted)
	isExplicit, hasExplicit, hasAdded, hasDeleted, hasOrdered, hasPrepended, hasAppended := h.Decode()
	if isExplicit || hasExplicit || !hasAdded || !hasDeleted || hasOrdered || hasPrepended || hasAppended {
		t.Fatalf("Decode() = %v %v %v %v %v %v %v", isExplicit, hasExplicit, hasAdded, hasDeleted, hasOrdered, hasPrepended, hasAppended)
	}
}
