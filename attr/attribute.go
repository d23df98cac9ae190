package attr

import (
	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

// Variability classifies how an attribute's value may legally change
// (§3).
type Variability int

const (
	Varying Variability = iota
	Uniform
	Config
)

func (v Variability) String() string {
	switch v {
	case Uniform:
		return "uniform"
	case Config:
		return "config"
	default:
		return "varying"
	}
}

// AttrMeta holds the optional metadata fields §3 documents for
// attributes: the generic PrimMeta-shaped bag plus interpolation and
// elementSize.
type AttrMeta struct {
	Interpolation string
	ElementSize   uint32
	CustomData    map[string]value.Value
	Doc           string
	Comment       string
	Generic       map[string]value.Value
}

type primVarKind int

const (
	primVarEmpty primVarKind = iota
	primVarScalar
	primVarTimeSamples
)

// PrimVar is the underlying value container of an Attribute: empty, a
// scalar Value, or a TimeSamples sequence (§3 Attribute invariant).
type PrimVar struct {
	kind        primVarKind
	scalar      value.Value
	timeSamples *TimeSamples
}

// EmptyPrimVar returns an unauthored container.
func EmptyPrimVar() PrimVar { return PrimVar{kind: primVarEmpty} }

// ScalarPrimVar wraps a plain authored value.
func ScalarPrimVar(v value.Value) PrimVar { return PrimVar{kind: primVarScalar, scalar: v} }

// TimeSamplesPrimVar wraps an animated value.
func TimeSamplesPrimVar(ts *TimeSamples) PrimVar { return PrimVar{kind: primVarTimeSamples, timeSamples: ts} }

func (p PrimVar) IsEmpty() bool       { return p.kind == primVarEmpty }
func (p PrimVar) IsScalar() bool      { return p.kind == primVarScalar }
func (p PrimVar) IsTimeSamples() bool { return p.kind == primVarTimeSamples }

// Scalar returns the plain value if p holds one.
func (p PrimVar) Scalar() (value.Value, bool) {
	if p.kind != primVarScalar {
		return value.Value{}, false
	}
	return p.scalar, true
}

// TimeSamples returns the animated sequence if p holds one.
func (p PrimVar) TimeSamples() (*TimeSamples, bool) {
	if p.kind != primVarTimeSamples {
		return nil, false
	}
	return p.timeSamples, true
}

// Attribute is a named value slot on a Prim: a declared type, a
// PrimVar, optional connections, blocking, and metadata (§3).
type Attribute struct {
	Name              string
	TypeName          string
	Variability       Variability
	Blocked           bool
	ConnectionTargets []sdfpath.Path
	Meta              AttrMeta
	Var               PrimVar
}

// NewAttribute returns an unauthored attribute of the given name/type.
func NewAttribute(name, typeName string) *Attribute {
	return &Attribute{Name: name, TypeName: typeName, Var: EmptyPrimVar()}
}

// SetValue authors a plain scalar value, clearing any blocked flag.
func (a *Attribute) SetValue(v value.Value) {
	a.Var = ScalarPrimVar(v)
	a.Blocked = false
}

// SetTimeSample authors one animated sample at time t, converting the
// PrimVar to TimeSamples on first use.
func (a *Attribute) SetTimeSample(t float64, v value.Value) {
	ts := a.ensureTimeSamples()
	ts.AddSample(t, v)
	a.Blocked = false
}

// SetBlockedSample authors a blocking ("None") sample at time t.
func (a *Attribute) SetBlockedSample(t float64) {
	ts := a.ensureTimeSamples()
	ts.AddBlockedSample(t)
}

func (a *Attribute) ensureTimeSamples() *TimeSamples {
	if ts, ok := a.Var.TimeSamples(); ok {
		return ts
	}
	ts := NewTimeSamples()
	a.Var = TimeSamplesPrimVar(ts)
	return ts
}

// SetConnection replaces the connection target list.
func (a *Attribute) SetConnection(paths ...sdfpath.Path) {
	a.ConnectionTargets = paths
}

// IsConnection reports whether a has one or more connection targets
// (§3 Attribute invariant).
func (a *Attribute) IsConnection() bool {
	return len(a.ConnectionTargets) > 0
}

// Authored reports whether a carries any authored opinion at all: a
// value or time samples, a connection, or a block. There is no separate
// "set empty" marker: an attribute whose PrimVar is empty and that has
// no connection and no block is not authored.
func (a *Attribute) Authored() bool {
	if a.IsConnection() || a.Blocked {
		return true
	}
	return !a.Var.IsEmpty()
}

// GetValue returns the attribute's effective value with no connection
// resolution, using the precedence of §4.3: blocked absent; connection
// deferred to the caller (returns absent here); time-samples use the
// Default probe (first sample); otherwise the scalar value.
func (a *Attribute) GetValue() (value.Value, bool) {
	if a.Blocked || a.IsConnection() {
		return value.Value{}, false
	}
	switch {
	case a.Var.IsTimeSamples():
		ts, _ := a.Var.TimeSamples()
		return ts.GetDefault()
	case a.Var.IsScalar():
		return a.Var.Scalar()
	default:
		return value.Value{}, false
	}
}

// GetValueAt is GetValue evaluated at an explicit time with an explicit
// interpolation policy for time-sampled attributes (§4.3).
func (a *Attribute) GetValueAt(t float64, interp Interp) (value.Value, bool) {
	if a.Blocked || a.IsConnection() {
		return value.Value{}, false
	}
	switch {
	case a.Var.IsTimeSamples():
		ts, _ := a.Var.TimeSamples()
		return ts.GetValueAt(t, interp)
	case a.Var.IsScalar():
		return a.Var.Scalar()
	default:
		return value.Value{}, false
	}
}
