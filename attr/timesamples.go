// Package attr implements the attribute/property machinery of spec
// §3/§4.3/§4.4: scalar-or-timesamples values, blocking, connections,
// metadata, and Held/Linear time-sample lookup.
package attr

import (
	"math"
	"sort"

	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

// Interp selects the time-sample lookup policy (§3).
type Interp int

const (
	Held Interp = iota
	Linear
)

// BlockPolicy names how Held/Linear lookup behaves across a Blocked
// sample. The reference behavior is an open question (§9); this reader
// uses BlockPropagate per §8 S4 and records the decision in DESIGN.md.
// A TimeSamples' policy field is unexported, has no setter, and is not
// read by GetValueAt, so lookup always propagates the block and
// BlockExtendLast has no effect.
type BlockPolicy int

const (
	BlockPropagate BlockPolicy = iota
	BlockExtendLast
)

// Sample is one (time, value) entry; Blocked marks a "None" override
// that interrupts interpolation (§3 TimeSamples<T>).
type Sample struct {
	Time    float64
	Value   value.Value
	Blocked bool
}

// TimeSamples is a sequence of samples kept sorted by Time on read.
// Mutations mark the sequence dirty rather than sorting eagerly (§4.4).
type TimeSamples struct {
	samples []Sample
	dirty   bool
	policy  BlockPolicy
}

// NewTimeSamples returns an empty TimeSamples using the default block
// policy (BlockPropagate).
func NewTimeSamples() *TimeSamples {
	return &TimeSamples{}
}

// AddSample appends a value sample. The sequence is marked dirty; the
// next read sorts it.
func (ts *TimeSamples) AddSample(t float64, v value.Value) {
	ts.samples = append(ts.samples, Sample{Time: t, Value: v})
	ts.dirty = true
}

// AddBlockedSample appends a blocking ("None") sample at t.
func (ts *TimeSamples) AddBlockedSample(t float64) {
	ts.samples = append(ts.samples, Sample{Time: t, Blocked: true})
	ts.dirty = true
}

// Len returns the number of samples.
func (ts *TimeSamples) Len() int {
	return len(ts.samples)
}

// Times returns the (sorted) sample times.
func (ts *TimeSamples) Times() []float64 {
	ts.sortIfDirty()
	out := make([]float64, len(ts.samples))
	for i, s := range ts.samples {
		out[i] = s.Time
	}
	return out
}

func (ts *TimeSamples) sortIfDirty() {
	if !ts.dirty {
		return
	}
	sort.Slice(ts.samples, func(i, j int) bool { return ts.samples[i].Time < ts.samples[j].Time })
	ts.dirty = false
}

// epsilon guards the Linear interpolation denominator (§4.4).
const epsilon = 1e-9

// GetValueAt looks up the effective value at time t using interp. ok is
// false for an empty sequence or when the lookup resolves to a Blocked
// sample (the block-propagation policy of §9/§8 S4: Held/Linear never
// interpolate across, or land on, a Blocked sample).
func (ts *TimeSamples) GetValueAt(t float64, interp Interp) (value.Value, bool) {
	ts.sortIfDirty()
	n := len(ts.samples)
	if n == 0 {
		return value.Value{}, false
	}
	if n == 1 || t <= ts.samples[0].Time {
		return sampleValue(ts.samples[0])
	}
	if t >= ts.samples[n-1].Time {
		return sampleValue(ts.samples[n-1])
	}

	// Binary search for the bracket i such that samples[i].Time <= t <
	// samples[i+1].Time.
	i := sort.Search(n, func(i int) bool { return ts.samples[i].Time > t }) - 1
	lo, hi := ts.samples[i], ts.samples[i+1]

	if interp == Held {
		return sampleValue(lo)
	}
	if lo.Blocked || hi.Blocked {
		return value.Value{}, false
	}
	dt := (t - lo.Time) / (hi.Time - lo.Time)
	if hi.Time-lo.Time < epsilon {
		dt = 0
	}
	dt = clamp01(dt)
	out, ok := interpolate(lo.Value, hi.Value, dt)
	if !ok {
		// Non-interpolable type: degrade to Held (§3 TimeSamples<T>).
		return sampleValue(lo)
	}
	return out, true
}

// GetDefault returns the first sample's value, the conventional
// UsdTimeCode::Default() probe (§4.4 "t == Default returns the first
// sample").
func (ts *TimeSamples) GetDefault() (value.Value, bool) {
	ts.sortIfDirty()
	if len(ts.samples) == 0 {
		return value.Value{}, false
	}
	return sampleValue(ts.samples[0])
}

func sampleValue(s Sample) (value.Value, bool) {
	if s.Blocked {
		return value.Value{}, false
	}
	return s.Value, true
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func lerp(a, b, dt float64) float64 { return a + (b-a)*dt }

// interpolate linearly blends a and b (which must share a TypeID).
// ok is false for types outside the documented Linear set (§4.4), in
// which case the caller degrades to Held.
func interpolate(a, b value.Value, dt float64) (value.Value, bool) {
	if a.TypeID() != b.TypeID() || a.IsArray() != b.IsArray() {
		return value.Value{}, false
	}
	if a.IsArray() {
		return interpolateArray(a, b, dt)
	}
	switch a.TypeID() {
	case value.HalfID:
		av, _ := value.As[value.Half](a)
		bv, _ := value.As[value.Half](b)
		return value.Make(value.HalfID, value.HalfFromFloat32(float32(lerp(float64(av.Float32()), float64(bv.Float32()), dt)))), true
	case value.Float:
		av, _ := value.As[float32](a)
		bv, _ := value.As[float32](b)
		return value.Make(value.Float, float32(lerp(float64(av), float64(bv), dt))), true
	case value.Double:
		av, _ := value.As[float64](a)
		bv, _ := value.As[float64](b)
		return value.Make(value.Double, lerp(av, bv, dt)), true
	case value.Float2ID:
		av, _ := value.As[value.Float2](a)
		bv, _ := value.As[value.Float2](b)
		return value.Make(value.Float2ID, value.Float2{
			float32(lerp(float64(av[0]), float64(bv[0]), dt)),
			float32(lerp(float64(av[1]), float64(bv[1]), dt)),
		}), true
	case value.Float3ID:
		av, _ := value.As[value.Float3](a)
		bv, _ := value.As[value.Float3](b)
		return value.Make(value.Float3ID, lerpFloat3(av, bv, dt)), true
	case value.Float4ID:
		av, _ := value.As[value.Float4](a)
		bv, _ := value.As[value.Float4](b)
		return value.Make(value.Float4ID, lerpFloat4(av, bv, dt)), true
	case value.Double2ID:
		av, _ := value.As[value.Double2](a)
		bv, _ := value.As[value.Double2](b)
		return value.Make(value.Double2ID, value.Double2{lerp(av[0], bv[0], dt), lerp(av[1], bv[1], dt)}), true
	case value.Double3ID:
		av, _ := value.As[value.Double3](a)
		bv, _ := value.As[value.Double3](b)
		return value.Make(value.Double3ID, lerpDouble3(av, bv, dt)), true
	case value.Double4ID:
		av, _ := value.As[value.Double4](a)
		bv, _ := value.As[value.Double4](b)
		return value.Make(value.Double4ID, lerpDouble4(av, bv, dt)), true
	case value.Matrix2dID:
		av, _ := value.As[value.Matrix2d](a)
		bv, _ := value.As[value.Matrix2d](b)
		return value.Make(value.Matrix2dID, lerpMatrix2d(av, bv, dt)), true
	case value.Matrix3dID:
		av, _ := value.As[value.Matrix3d](a)
		bv, _ := value.As[value.Matrix3d](b)
		return value.Make(value.Matrix3dID, lerpMatrix3d(av, bv, dt)), true
	case value.Matrix4dID:
		av, _ := value.As[value.Matrix4d](a)
		bv, _ := value.As[value.Matrix4d](b)
		return value.Make(value.Matrix4dID, lerpMatrix4d(av, bv, dt)), true
	case value.QuathID:
		av, _ := value.As[value.Quath](a)
		bv, _ := value.As[value.Quath](b)
		return value.Make(value.QuathID, slerpQuath(av, bv, dt)), true
	case value.QuatfID:
		av, _ := value.As[value.Quatf](a)
		bv, _ := value.As[value.Quatf](b)
		return value.Make(value.QuatfID, slerpQuatf(av, bv, dt)), true
	case value.QuatdID:
		av, _ := value.As[value.Quatd](a)
		bv, _ := value.As[value.Quatd](b)
		return value.Make(value.QuatdID, slerpQuatd(av, bv, dt)), true
	default:
		return value.Value{}, false
	}
}

func interpolateArray(a, b value.Value, dt float64) (value.Value, bool) {
	// Arrays of float, double and float3 interpolate element-wise; arrays
	// of any other element type, and arrays of mismatched lengths,
	// degrade to Held.
	switch a.TypeID() {
	case value.Float:
		av, _ := value.As[[]float32](a)
		bv, _ := value.As[[]float32](b)
		if len(av) != len(bv) {
			return value.Value{}, false
		}
		out := make([]float32, len(av))
		for i := range av {
			out[i] = float32(lerp(float64(av[i]), float64(bv[i]), dt))
		}
		return value.MakeArray(value.Float, out), true
	case value.Double:
		av, _ := value.As[[]float64](a)
		bv, _ := value.As[[]float64](b)
		if len(av) != len(bv) {
			return value.Value{}, false
		}
		out := make([]float64, len(av))
		for i := range av {
			out[i] = lerp(av[i], bv[i], dt)
		}
		return value.MakeArray(value.Double, out), true
	case value.Float3ID:
		av, _ := value.As[[]value.Float3](a)
		bv, _ := value.As[[]value.Float3](b)
		if len(av) != len(bv) {
			return value.Value{}, false
		}
		out := make([]value.Float3, len(av))
		for i := range av {
			out[i] = lerpFloat3(av[i], bv[i], dt)
		}
		return value.MakeArray(value.Float3ID, out), true
	default:
		return value.Value{}, false
	}
}

func lerpFloat3(a, b value.Float3, dt float64) value.Float3 {
	return value.Float3{
		float32(lerp(float64(a[0]), float64(b[0]), dt)),
		float32(lerp(float64(a[1]), float64(b[1]), dt)),
		float32(lerp(float64(a[2]), float64(b[2]), dt)),
	}
}

func lerpFloat4(a, b value.Float4, dt float64) value.Float4 {
	return value.Float4{
		float32(lerp(float64(a[0]), float64(b[0]), dt)),
		float32(lerp(float64(a[1]), float64(b[1]), dt)),
		float32(lerp(float64(a[2]), float64(b[2]), dt)),
		float32(lerp(float64(a[3]), float64(b[3]), dt)),
	}
}

func lerpDouble3(a, b value.Double3, dt float64) value.Double3 {
	return value.Double3{lerp(a[0], b[0], dt), lerp(a[1], b[1], dt), lerp(a[2], b[2], dt)}
}

func lerpDouble4(a, b value.Double4, dt float64) value.Double4 {
	return value.Double4{lerp(a[0], b[0], dt), lerp(a[1], b[1], dt), lerp(a[2], b[2], dt), lerp(a[3], b[3], dt)}
}

func lerpMatrix2d(a, b value.Matrix2d, dt float64) value.Matrix2d {
	var out value.Matrix2d
	for i := range a {
		out[i] = lerp(a[i], b[i], dt)
	}
	return out
}

func lerpMatrix3d(a, b value.Matrix3d, dt float64) value.Matrix3d {
	var out value.Matrix3d
	for i := range a {
		out[i] = lerp(a[i], b[i], dt)
	}
	return out
}

func lerpMatrix4d(a, b value.Matrix4d, dt float64) value.Matrix4d {
	var out value.Matrix4d
	for i := range a {
		out[i] = lerp(a[i], b[i], dt)
	}
	return out
}

// slerpQuatd spherically interpolates the (real, i, j, k) 4-tuple.
func slerpQuatd(a, b value.Quatd, dt float64) value.Quatd {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
	if dot < 0 {
		b = value.Quatd{-b[0], -b[1], -b[2], -b[3]}
		dot = -dot
	}
	const threshold = 0.9995
	if dot > threshold {
		var out value.Quatd
		for i := range a {
			out[i] = lerp(a[i], b[i], dt)
		}
		return normalizeQuatd(out)
	}
	theta0 := math.Acos(clamp01minus1to1(dot))
	theta := theta0 * dt
	sinTheta0 := math.Sin(theta0)
	s0 := math.Cos(theta) - dot*math.Sin(theta)/sinTheta0
	s1 := math.Sin(theta) / sinTheta0
	var out value.Quatd
	for i := range a {
		out[i] = s0*a[i] + s1*b[i]
	}
	return out
}

func clamp01minus1to1(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

func normalizeQuatd(q value.Quatd) value.Quatd {
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n < epsilon {
		return q
	}
	return value.Quatd{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

func slerpQuatf(a, b value.Quatf, dt float64) value.Quatf {
	ad := value.Quatd{float64(a[0]), float64(a[1]), float64(a[2]), float64(a[3])}
	bd := value.Quatd{float64(b[0]), float64(b[1]), float64(b[2]), float64(b[3])}
	r := slerpQuatd(ad, bd, dt)
	return value.Quatf{float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3])}
}

func slerpQuath(a, b value.Quath, dt float64) value.Quath {
	r := slerpQuatf(a.ToQuatf(), b.ToQuatf(), dt)
	return value.Quath{
		value.HalfFromFloat32(r[0]), value.HalfFromFloat32(r[1]),
		value.HalfFromFloat32(r[2]), value.HalfFromFloat32(r[3]),
	}
}
