package value

// widenFunc converts a stored payload (scalar or, when isArray, a slice)
// from a narrower numeric representation to a wider one.
type widenFunc func(data any, isArray bool) (any, bool)

func widenScalar[F, T any](data any, conv func(F) T) (any, bool) {
	f, ok := data.(F)
	if !ok {
		return nil, false
	}
	return conv(f), true
}

func widenArray[F, T any](data any, conv func(F) T) (any, bool) {
	f, ok := data.([]F)
	if !ok {
		return nil, false
	}
	out := make([]T, len(f))
	for i, x := range f {
		out[i] = conv(x)
	}
	return out, true
}

func makeWiden[F, T any](conv func(F) T) widenFunc {
	return func(data any, isArray bool) (any, bool) {
		if isArray {
			return widenArray[F, T](data, conv)
		}
		return widenScalar[F, T](data, conv)
	}
}

// widenTable enumerates the documented narrow-to-wide pairs (§4.1, §9
// "narrow-to-wide on decode"). It is total over every pair the crate
// format is documented to store narrower than declared.
var widenTable = map[[2]TypeID]widenFunc{
	{HalfID, Float}:  makeWiden(func(h Half) float32 { return h.Float32() }),
	{HalfID, Double}: makeWiden(func(h Half) float64 { return h.Float64() }),
	{Float, Double}:  makeWiden(func(f float32) float64 { return float64(f) }),

	{Half2ID, Float2ID}:  makeWiden(Half2.ToFloat2),
	{Half2ID, Double2ID}: makeWiden(Half2.ToDouble2),
	{Half3ID, Float3ID}:  makeWiden(Half3.ToFloat3),
	{Half3ID, Double3ID}: makeWiden(Half3.ToDouble3),
	{Half4ID, Float4ID}:  makeWiden(Half4.ToFloat4),
	{Half4ID, Double4ID}: makeWiden(Half4.ToDouble4),

	{Float2ID, Double2ID}: makeWiden(Float2.ToDouble2),
	{Float3ID, Double3ID}: makeWiden(Float3.ToDouble3),
	{Float4ID, Double4ID}: makeWiden(Float4.ToDouble4),

	{QuathID, QuatfID}: makeWiden(Quath.ToQuatf),
	{QuathID, QuatdID}: makeWiden(Quath.ToQuatd),
	{QuatfID, QuatdID}: makeWiden(Quatf.ToQuatd),

	{Matrix4fID, Matrix4dID}: makeWiden(Matrix4f.ToMatrix4d),
}

// UpcastNumeric widens v in place to the type underlying declaredTypeName
// (a role type's underlying id, or the type itself) when the crate has
// stored a narrower payload than declared (§4.1, §4.6 step 4, §9). It is
// a total function over the documented widening pairs: returns false
// (v unchanged) if declaredTypeName is unrecognized or the stored type
// is not a documented narrowing of it. Already-widened values are a
// no-op, so repeated calls are idempotent (§8).
func UpcastNumeric(declaredTypeName string, v *Value) bool {
	target, ok := TryGetUnderlyingTypeID(declaredTypeName)
	if !ok {
		return false
	}
	if v.id == target {
		return true
	}
	fn, ok := widenTable[[2]TypeID{v.id, target}]
	if !ok {
		return false
	}
	newData, ok := fn(v.data, v.array)
	if !ok {
		return false
	}
	v.id = target
	v.data = newData
	return true
}
