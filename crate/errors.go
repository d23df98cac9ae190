// Package crate implements the Crate (USDC) binary decoder of spec §4.5:
// bootstrap/TOC/section reading, the token/string/path/field/fieldset/spec
// tables, and LZ4/integer-coded array decoding.
package crate

import "errors"

// Sentinel errors, one per §7 taxonomy bucket. Call sites wrap these
// with fmt.Errorf("...: %w", errX) so errors.Is classification survives
// across the decode->reconstruct boundary (SPEC_FULL.md AMBIENT STACK).
var (
	// ErrStructural covers bad magic, truncated sections, and impossible
	// table indices.
	ErrStructural = errors.New("crate: structural error")
	// ErrBounds covers a count or size exceeding a configured cap.
	ErrBounds = errors.New("crate: bounds exceeded")
	// ErrType covers an apiSchemas field whose payload is not a token
	// ListOp. A stored value whose type differs from its declared
	// typeName with no applicable upcast does not raise ErrType; it is
	// kept as stored.
	ErrType = errors.New("crate: type mismatch")
	// ErrSemantic covers apiSchemas bucket mixing, a Prim missing its
	// specifier, and duplicate path indices.
	ErrSemantic = errors.New("crate: semantic error")
	// ErrUnsupported covers Class/Over subtrees, relational-attribute
	// paths, and not-yet-implemented variant machinery. Callers should
	// turn this into a warning and skip the offending subtree rather
	// than abort the read (§7).
	ErrUnsupported = errors.New("crate: unsupported construct")
)
