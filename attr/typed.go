package attr

import (
	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

// TypedAttribute is the caller-facing view of a Property that may carry
// an optional value or an optional connection but no fallback (§4.3).
type TypedAttribute[T any] struct {
	prop *Property
}

// WrapTypedAttribute adapts a decoded Property to a TypedAttribute[T].
// A nil prop yields an always-absent wrapper.
func WrapTypedAttribute[T any](prop *Property) TypedAttribute[T] {
	return TypedAttribute[T]{prop: prop}
}

func (t TypedAttribute[T]) attribute() *Attribute {
	if t.prop == nil {
		return nil
	}
	return t.prop.Attribute
}

// GetValue returns the authored value at the Default time probe.
func (t TypedAttribute[T]) GetValue() (T, bool) {
	a := t.attribute()
	if a == nil {
		var zero T
		return zero, false
	}
	v, ok := a.GetValue()
	if !ok {
		var zero T
		return zero, false
	}
	return value.As[T](v)
}

// GetValueAt returns the authored value at t under interp.
func (t TypedAttribute[T]) GetValueAt(tm float64, interp Interp) (T, bool) {
	a := t.attribute()
	if a == nil {
		var zero T
		return zero, false
	}
	v, ok := a.GetValueAt(tm, interp)
	if !ok {
		var zero T
		return zero, false
	}
	return value.As[T](v)
}

// GetConnection returns the connection target paths, if any.
func (t TypedAttribute[T]) GetConnection() ([]sdfpath.Path, bool) {
	a := t.attribute()
	if a == nil || !a.IsConnection() {
		return nil, false
	}
	return a.ConnectionTargets, true
}

// IsAuthored reports whether the underlying attribute carries any
// opinion at all.
func (t TypedAttribute[T]) IsAuthored() bool {
	a := t.attribute()
	return a != nil && a.Authored()
}

// TypedTerminalAttribute declares presence only (e.g. shader outputs):
// no value, no connection (§4.3).
type TypedTerminalAttribute[T any] struct {
	declared bool
}

// WrapTypedTerminalAttribute reports a terminal attribute as declared
// when prop is non-nil.
func WrapTypedTerminalAttribute[T any](prop *Property) TypedTerminalAttribute[T] {
	return TypedTerminalAttribute[T]{declared: prop != nil}
}

// IsDeclared reports whether the terminal attribute was authored at all.
func (t TypedTerminalAttribute[T]) IsDeclared() bool {
	return t.declared
}

// TypedAttributeWithFallback is a TypedAttribute that substitutes a
// schema-defined fallback when unauthored (§4.3).
type TypedAttributeWithFallback[T any] struct {
	inner    TypedAttribute[T]
	fallback T
}

// WrapTypedAttributeWithFallback adapts prop, using fallback when prop
// carries no effective value.
func WrapTypedAttributeWithFallback[T any](prop *Property, fallback T) TypedAttributeWithFallback[T] {
	return TypedAttributeWithFallback[T]{inner: WrapTypedAttribute[T](prop), fallback: fallback}
}

// GetValue returns the authored value, or the fallback if unauthored.
func (t TypedAttributeWithFallback[T]) GetValue() T {
	if v, ok := t.inner.GetValue(); ok {
		return v
	}
	return t.fallback
}

// GetValueAt returns the authored value at (tm, interp), or the
// fallback if unauthored.
func (t TypedAttributeWithFallback[T]) GetValueAt(tm float64, interp Interp) T {
	if v, ok := t.inner.GetValueAt(tm, interp); ok {
		return v
	}
	return t.fallback
}
