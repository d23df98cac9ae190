package value

import "github.com/x448/float16"

// Half is an IEEE-754 binary16 value stored as its raw 16-bit pattern.
// Conversion to/from float32 goes through x448/float16 rather than a
// hand-rolled bit-twiddling routine (§4.1 "half<->float conversions").
type Half uint16

// HalfFromFloat32 rounds f to the nearest representable half.
func HalfFromFloat32(f float32) Half {
	return Half(float16.Fromfloat32(f))
}

// Float32 widens h to float32.
func (h Half) Float32() float32 {
	return float16.Frombits(uint16(h)).Float32()
}

// Float64 widens h to float64.
func (h Half) Float64() float64 {
	return float64(h.Float32())
}

type Half2 [2]Half
type Half3 [3]Half
type Half4 [4]Half

func (v Half2) ToFloat2() Float2 { return Float2{v[0].Float32(), v[1].Float32()} }
func (v Half3) ToFloat3() Float3 { return Float3{v[0].Float32(), v[1].Float32(), v[2].Float32()} }
func (v Half4) ToFloat4() Float4 {
	return Float4{v[0].Float32(), v[1].Float32(), v[2].Float32(), v[3].Float32()}
}

func (v Half2) ToDouble2() Double2 { return Double2{v[0].Float64(), v[1].Float64()} }
func (v Half3) ToDouble3() Double3 {
	return Double3{v[0].Float64(), v[1].Float64(), v[2].Float64()}
}
func (v Half4) ToDouble4() Double4 {
	return Double4{v[0].Float64(), v[1].Float64(), v[2].Float64(), v[3].Float64()}
}

type Float2 [2]float32
type Float3 [3]float32
type Float4 [4]float32

func (v Float2) ToDouble2() Double2 { return Double2{float64(v[0]), float64(v[1])} }
func (v Float3) ToDouble3() Double3 {
	return Double3{float64(v[0]), float64(v[1]), float64(v[2])}
}
func (v Float4) ToDouble4() Double4 {
	return Double4{float64(v[0]), float64(v[1]), float64(v[2]), float64(v[3])}
}

type Double2 [2]float64
type Double3 [3]float64
type Double4 [4]float64

// Quath/Quatf/Quatd store (real, i, j, k) components.
type Quath [4]Half
type Quatf [4]float32
type Quatd [4]float64

func (q Quath) ToQuatf() Quatf {
	return Quatf{q[0].Float32(), q[1].Float32(), q[2].Float32(), q[3].Float32()}
}
func (q Quath) ToQuatd() Quatd {
	return Quatd{q[0].Float64(), q[1].Float64(), q[2].Float64(), q[3].Float64()}
}
func (q Quatf) ToQuatd() Quatd {
	return Quatd{float64(q[0]), float64(q[1]), float64(q[2]), float64(q[3])}
}

type Matrix2d [4]float64
type Matrix3d [9]float64
type Matrix4d [16]float64
type Matrix4f [16]float32

func (m Matrix4f) ToMatrix4d() Matrix4d {
	var out Matrix4d
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}
