// Package listop implements ListOp<T>, the six-bucket list-edit
// structure of spec §3/§4/§6 used for composition arcs (references,
// payload, inherits, specializes) and apiSchemas.
package listop

import "errors"

// ListOp is the six-bucket list-edit description. When IsExplicit is
// true only Explicit is meaningful; the other five buckets are empty by
// construction (§3 invariant).
type ListOp[T any] struct {
	IsExplicit bool
	Explicit   []T
	Added      []T
	Prepended  []T
	Appended   []T
	Deleted    []T
	Ordered    []T
}

// ErrMixedBuckets is returned when more than one non-explicit bucket is
// populated and the caller requires a single qualifier (§4.6 step 5,
// §8 S6: apiSchemas must use exactly one bucket).
var ErrMixedBuckets = errors.New("listop: more than one list-edit bucket is populated")

// IsEmpty reports whether op carries no edits at all.
func (op ListOp[T]) IsEmpty() bool {
	return !op.IsExplicit && len(op.Explicit) == 0 && len(op.Added) == 0 &&
		len(op.Prepended) == 0 && len(op.Appended) == 0 &&
		len(op.Deleted) == 0 && len(op.Ordered) == 0
}

// populatedBuckets returns the count of the five non-explicit buckets
// that hold at least one entry.
func (op ListOp[T]) populatedBuckets() int {
	n := 0
	if len(op.Added) > 0 {
		n++
	}
	if len(op.Prepended) > 0 {
		n++
	}
	if len(op.Appended) > 0 {
		n++
	}
	if len(op.Deleted) > 0 {
		n++
	}
	if len(op.Ordered) > 0 {
		n++
	}
	return n
}

// SingleQualifier returns the one populated bucket's contents and name
// ("explicit", "added", "prepended", "appended", "deleted", "ordered")
// when op uses exactly one qualifier. It returns ErrMixedBuckets when
// more than one non-explicit bucket is populated (apiSchemas' §4.6 step
// 5 rule), and ("", nil) for an empty op.
func (op ListOp[T]) SingleQualifier() (string, []T, error) {
	if op.IsExplicit {
		return "explicit", op.Explicit, nil
	}
	if op.populatedBuckets() > 1 {
		return "", nil, ErrMixedBuckets
	}
	switch {
	case len(op.Added) > 0:
		return "added", op.Added, nil
	case len(op.Prepended) > 0:
		return "prepended", op.Prepended, nil
	case len(op.Appended) > 0:
		return "appended", op.Appended, nil
	case len(op.Deleted) > 0:
		return "deleted", op.Deleted, nil
	case len(op.Ordered) > 0:
		return "ordered", op.Ordered, nil
	default:
		return "", nil, nil
	}
}

// ApplyTo merges op onto base following the documented precedence
// (§3): explicit clears and replaces everything; otherwise prepended
// comes first, then the original base, then appended and added, then
// deleted entries are removed, then ordered reorders the remainder to
// match its sequence (entries not named in ordered keep their relative
// position, appended after the named ones).
func ApplyTo[T comparable](base []T, op ListOp[T]) []T {
	var out []T
	if op.IsExplicit {
		out = append(out, op.Explicit...)
	} else {
		out = append(out, op.Prepended...)
		out = append(out, base...)
		out = append(out, op.Appended...)
		out = append(out, op.Added...)
	}
	if len(op.Deleted) > 0 {
		del := make(map[T]bool, len(op.Deleted))
		for _, d := range op.Deleted {
			del[d] = true
		}
		filtered := out[:0:0]
		for _, v := range out {
			if !del[v] {
				filtered = append(filtered, v)
			}
		}
		out = filtered
	}
	if len(op.Ordered) > 0 {
		out = reorder(out, op.Ordered)
	}
	return out
}

func reorder[T comparable](items, ordered []T) []T {
	present := make(map[T]bool, len(items))
	for _, v := range items {
		present[v] = true
	}
	var out []T
	seen := make(map[T]bool, len(ordered))
	for _, v := range ordered {
		if present[v] && !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	for _, v := range items {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	return out
}

// Header is the ListOpHeader bitfield of §6: one bit per populated
// bucket, stored on disk but never retained on the in-memory ListOp
// (§9 "regenerated on any future writer, not stored").
type Header byte

const (
	HeaderIsExplicit Header = 1 << 0
	HeaderHasExplicit Header = 1 << 1
	HeaderHasAdded    Header = 1 << 2
	HeaderHasDeleted  Header = 1 << 3
	HeaderHasOrdered  Header = 1 << 4
	HeaderHasPrepended Header = 1 << 5
	HeaderHasAppended  Header = 1 << 6
)

// Decode reports which buckets h claims are populated.
func (h Header) Decode() (isExplicit, hasExplicit, hasAdded, hasDeleted, hasOrdered, hasPrepended, hasAppended bool) {
	return h&HeaderIsExplicit != 0,
		h&HeaderHasExplicit != 0,
		h&HeaderHasAdded != 0,
		h&HeaderHasDeleted != 0,
		h&HeaderHasOrdered != 0,
		h&HeaderHasPrepended != 0,
		h&HeaderHasAppended != 0
}
