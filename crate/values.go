package crate

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Cindy-xdZhang/OpenUsdLoader/listop"
	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

// noIndex marks an absent optional index (a Reference/Payload with no
// internal prim path, or no asset path) in the 32-bit index slots this
// package uses throughout (§4.5).
const noIndex = uint32(0xFFFFFFFF)

// seqReader is a forward-only cursor over a Source, used to decode the
// variable-length blobs a ValueRep's offset points at (Dictionary,
// ListOp, Reference, Payload, ...) without threading an absolute
// offset through every helper by hand.
type seqReader struct {
	src Source
	pos int64
	err error
}

func (r *seqReader) bytes(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	buf := make([]byte, n)
	if _, err := r.src.ReadAt(buf, r.pos); err != nil {
		r.err = fmt.Errorf("crate: %w", ErrStructural)
		return buf
	}
	r.pos += int64(n)
	return buf
}

func (r *seqReader) u8() byte         { return r.bytes(1)[0] }
func (r *seqReader) u32() uint32      { return binary.LittleEndian.Uint32(r.bytes(4)) }
func (r *seqReader) u64() uint64      { return binary.LittleEndian.Uint64(r.bytes(8)) }
func (r *seqReader) i32() int32       { return int32(r.u32()) }
func (r *seqReader) i64() int64       { return int64(r.u64()) }
func (r *seqReader) f64() float64     { return math.Float64frombits(r.u64()) }

// DecodeValue resolves a ValueRep into a concrete value.Value, following
// its offset for non-inlined scalars and array payloads (§4.5, §6).
func DecodeValue(src Source, rep ValueRep, tokens []string, paths []sdfpath.Path, cfg *Config) (value.Value, error) {
	id := rep.TypeID()
	if rep.IsArray() {
		return decodeArrayValue(src, rep, id, tokens, cfg)
	}
	return decodeScalarValue(src, rep, id, tokens, paths, cfg)
}

func resolveToken(tokens []string, idx uint32) (string, error) {
	if int(idx) >= len(tokens) {
		return "", fmt.Errorf("crate: token index %d out of range: %w", idx, ErrStructural)
	}
	return tokens[idx], nil
}

func resolvePath(paths []sdfpath.Path, idx uint32) (sdfpath.Path, error) {
	if idx == noIndex {
		return sdfpath.Path{}, nil
	}
	if int(idx) >= len(paths) {
		return sdfpath.Path{}, fmt.Errorf("crate: path index %d out of range: %w", idx, ErrStructural)
	}
	return paths[idx], nil
}

func decodeScalarValue(src Source, rep ValueRep, id value.TypeID, tokens []string, paths []sdfpath.Path, cfg *Config) (value.Value, error) {
	payload := rep.Payload()
	inlined := rep.IsInlined()

	switch id {
	case value.Bool:
		if inlined {
			return value.Make(id, payload&1 != 0), nil
		}
		b := make([]byte, 1)
		if _, err := src.ReadAt(b, rep.Offset()); err != nil {
			return value.Value{}, fmt.Errorf("crate: read bool: %w", ErrStructural)
		}
		return value.Make(id, b[0] != 0), nil
	case value.UChar:
		if inlined {
			return value.Make(id, byte(payload)), nil
		}
		b := make([]byte, 1)
		if _, err := src.ReadAt(b, rep.Offset()); err != nil {
			return value.Value{}, fmt.Errorf("crate: read uchar: %w", ErrStructural)
		}
		return value.Make(id, b[0]), nil
	case value.Int:
		if inlined {
			return value.Make(id, int32(payload)), nil
		}
		r := &seqReader{src: src, pos: rep.Offset()}
		v := r.i32()
		return value.Make(id, v), r.err
	case value.UInt:
		if inlined {
			return value.Make(id, uint32(payload)), nil
		}
		r := &seqReader{src: src, pos: rep.Offset()}
		v := r.u32()
		return value.Make(id, v), r.err
	case value.Int64:
		r := &seqReader{src: src, pos: rep.Offset()}
		v := r.i64()
		return value.Make(id, v), r.err
	case value.UInt64:
		r := &seqReader{src: src, pos: rep.Offset()}
		v := r.u64()
		return value.Make(id, v), r.err
	case value.HalfID:
		if inlined {
			return value.Make(id, value.Half(uint16(payload))), nil
		}
		r := &seqReader{src: src, pos: rep.Offset()}
		raw := decodeFloatLikeElements(id, r.bytes(2), 1)
		return value.Make(id, raw.([]value.Half)[0]), r.err
	case value.Float:
		if inlined {
			return value.Make(id, math.Float32frombits(uint32(payload))), nil
		}
		r := &seqReader{src: src, pos: rep.Offset()}
		raw := decodeFloatLikeElements(id, r.bytes(4), 1)
		return value.Make(id, raw.([]float32)[0]), r.err
	case value.Double:
		r := &seqReader{src: src, pos: rep.Offset()}
		v := math.Float64frombits(r.u64())
		return value.Make(id, v), r.err
	case value.Half2ID, value.Float2ID, value.Double2ID,
		value.Half3ID, value.Float3ID, value.Double3ID,
		value.Half4ID, value.Float4ID, value.Double4ID,
		value.QuathID, value.QuatfID, value.QuatdID,
		value.Matrix2dID, value.Matrix3dID, value.Matrix4dID, value.Matrix4fID:
		return decodeFixedScalar(src, rep, id, id)
	case value.Point3h, value.Normal3h, value.Vector3h, value.Color3h:
		return decodeFixedScalar(src, rep, id, value.Half3ID)
	case value.Point3f, value.Normal3f, value.Vector3f, value.Color3f:
		return decodeFixedScalar(src, rep, id, value.Float3ID)
	case value.Point3d, value.Normal3d, value.Vector3d, value.Color3d:
		return decodeFixedScalar(src, rep, id, value.Double3ID)
	case value.Color4h:
		return decodeFixedScalar(src, rep, id, value.Half4ID)
	case value.Color4f:
		return decodeFixedScalar(src, rep, id, value.Float4ID)
	case value.Color4d:
		return decodeFixedScalar(src, rep, id, value.Double4ID)
	case value.TexCoord2h:
		return decodeFixedScalar(src, rep, id, value.Half2ID)
	case value.TexCoord2f:
		return decodeFixedScalar(src, rep, id, value.Float2ID)
	case value.TexCoord2d:
		return decodeFixedScalar(src, rep, id, value.Double2ID)
	case value.Frame4d:
		return decodeFixedScalar(src, rep, id, value.Matrix4dID)
	case value.Token, value.String, value.AssetPath:
		idx := uint32(payload)
		if !inlined {
			r := &seqReader{src: src, pos: rep.Offset()}
			idx = r.u32()
			if r.err != nil {
				return value.Value{}, r.err
			}
		}
		s, err := resolveToken(tokens, idx)
		if err != nil {
			return value.Value{}, err
		}
		return value.Make(id, s), nil
	case value.Specifier, value.Permission, value.Variability, value.Kind:
		return value.Make(id, uint32(payload)), nil
	case value.ValueBlock:
		return value.Make(id, struct{}{}), nil
	case value.Dictionary:
		r := &seqReader{src: src, pos: rep.Offset()}
		d, err := decodeDictionary(r, tokens, paths, cfg)
		return value.Make(id, d), err
	case value.PathVector, value.Relationship:
		r := &seqReader{src: src, pos: rep.Offset()}
		ps, err := decodePathIndexArray(r, paths)
		return value.Make(id, ps), err
	case value.LayerOffsetID:
		r := &seqReader{src: src, pos: rep.Offset()}
		lo := value.LayerOffset{Offset: r.f64(), Scale: r.f64()}
		return value.Make(id, lo), r.err
	case value.ReferenceID:
		r := &seqReader{src: src, pos: rep.Offset()}
		ref, err := readReference(r, tokens, paths, cfg)
		return value.Make(id, ref), err
	case value.PayloadID:
		r := &seqReader{src: src, pos: rep.Offset()}
		p, err := readPayload(r, tokens, paths)
		return value.Make(id, p), err
	case value.ListOpToken:
		return decodeListOpValue(src, rep, id, func(r *seqReader) (string, error) {
			return resolveToken(tokens, r.u32())
		})
	case value.ListOpString:
		return decodeListOpValue(src, rep, id, func(r *seqReader) (string, error) {
			return resolveToken(tokens, r.u32())
		})
	case value.ListOpPath:
		return decodeListOpValue(src, rep, id, func(r *seqReader) (sdfpath.Path, error) {
			return resolvePath(paths, r.u32())
		})
	case value.ListOpInt:
		return decodeListOpValue(src, rep, id, func(r *seqReader) (int32, error) {
			return r.i32(), r.err
		})
	case value.ListOpUInt:
		return decodeListOpValue(src, rep, id, func(r *seqReader) (uint32, error) {
			return r.u32(), r.err
		})
	case value.ListOpInt64:
		return decodeListOpValue(src, rep, id, func(r *seqReader) (int64, error) {
			return r.i64(), r.err
		})
	case value.ListOpUInt64:
		return decodeListOpValue(src, rep, id, func(r *seqReader) (uint64, error) {
			return r.u64(), r.err
		})
	case value.ListOpReference:
		return decodeListOpValue(src, rep, id, func(r *seqReader) (value.Reference, error) {
			return readReference(r, tokens, paths, cfg)
		})
	case value.ListOpPayload:
		return decodeListOpValue(src, rep, id, func(r *seqReader) (value.Payload, error) {
			return readPayload(r, tokens, paths)
		})
	default:
		return value.Value{}, fmt.Errorf("crate: no scalar decoder for type %s: %w", id.Name(), ErrUnsupported)
	}
}

func decodeFixedScalar(src Source, rep ValueRep, id, underlying value.TypeID) (value.Value, error) {
	elemSize := underlying.ElementSize()
	r := &seqReader{src: src, pos: rep.Offset()}
	raw := decodeFloatLikeElements(underlying, r.bytes(elemSize), 1)
	if r.err != nil {
		return value.Value{}, r.err
	}
	return wrapScalar(id, raw), nil
}

// wrapScalar and wrapArray tag an underlying-shaped Go value (e.g. a
// Float3) with a role type's TypeID (e.g. Point3f); value.Make/MakeArray
// only need the concrete Go type, not a separate "underlying" concept,
// so this is just a type switch back to a concrete type.
func wrapScalar(id value.TypeID, typed any) value.Value {
	switch s := typed.(type) {
	case []value.Half:
		return value.Make(id, s[0])
	case []float32:
		return value.Make(id, s[0])
	case []float64:
		return value.Make(id, s[0])
	case []value.Half2:
		return value.Make(id, s[0])
	case []value.Half3:
		return value.Make(id, s[0])
	case []value.Half4:
		return value.Make(id, s[0])
	case []value.Float2:
		return value.Make(id, s[0])
	case []value.Float3:
		return value.Make(id, s[0])
	case []value.Float4:
		return value.Make(id, s[0])
	case []value.Double2:
		return value.Make(id, s[0])
	case []value.Double3:
		return value.Make(id, s[0])
	case []value.Double4:
		return value.Make(id, s[0])
	case []value.Quath:
		return value.Make(id, s[0])
	case []value.Quatf:
		return value.Make(id, s[0])
	case []value.Quatd:
		return value.Make(id, s[0])
	case []value.Matrix2d:
		return value.Make(id, s[0])
	case []value.Matrix3d:
		return value.Make(id, s[0])
	case []value.Matrix4d:
		return value.Make(id, s[0])
	case []value.Matrix4f:
		return value.Make(id, s[0])
	default:
		return value.Value{}
	}
}

func wrapArray(id value.TypeID, typed any) value.Value {
	switch s := typed.(type) {
	case []value.Half:
		return value.MakeArray(id, s)
	case []float32:
		return value.MakeArray(id, s)
	case []float64:
		return value.MakeArray(id, s)
	case []value.Half2:
		return value.MakeArray(id, s)
	case []value.Half3:
		return value.MakeArray(id, s)
	case []value.Half4:
		return value.MakeArray(id, s)
	case []value.Float2:
		return value.MakeArray(id, s)
	case []value.Float3:
		return value.MakeArray(id, s)
	case []value.Float4:
		return value.MakeArray(id, s)
	case []value.Double2:
		return value.MakeArray(id, s)
	case []value.Double3:
		return value.MakeArray(id, s)
	case []value.Double4:
		return value.MakeArray(id, s)
	case []value.Quath:
		return value.MakeArray(id, s)
	case []value.Quatf:
		return value.MakeArray(id, s)
	case []value.Quatd:
		return value.MakeArray(id, s)
	case []value.Matrix2d:
		return value.MakeArray(id, s)
	case []value.Matrix3d:
		return value.MakeArray(id, s)
	case []value.Matrix4d:
		return value.MakeArray(id, s)
	case []value.Matrix4f:
		return value.MakeArray(id, s)
	default:
		return value.Value{}
	}
}

// decodeFloatLikeElements reads count little-endian elements of id's
// storage shape from raw, returning the concrete typed slice.
func decodeFloatLikeElements(id value.TypeID, raw []byte, count uint64) any {
	readHalf := func(b []byte) value.Half { return value.Half(binary.LittleEndian.Uint16(b)) }
	readFloat := func(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
	readDouble := func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }

	switch id {
	case value.HalfID:
		out := make([]value.Half, count)
		for i := range out {
			out[i] = readHalf(raw[i*2:])
		}
		return out
	case value.Float:
		out := make([]float32, count)
		for i := range out {
			out[i] = readFloat(raw[i*4:])
		}
		return out
	case value.Double:
		out := make([]float64, count)
		for i := range out {
			out[i] = readDouble(raw[i*8:])
		}
		return out
	case value.Half2ID:
		out := make([]value.Half2, count)
		for i := range out {
			b := raw[i*4:]
			out[i] = value.Half2{readHalf(b[0:]), readHalf(b[2:])}
		}
		return out
	case value.Half3ID:
		out := make([]value.Half3, count)
		for i := range out {
			b := raw[i*6:]
			out[i] = value.Half3{readHalf(b[0:]), readHalf(b[2:]), readHalf(b[4:])}
		}
		return out
	case value.Half4ID:
		out := make([]value.Half4, count)
		for i := range out {
			b := raw[i*8:]
			out[i] = value.Half4{readHalf(b[0:]), readHalf(b[2:]), readHalf(b[4:]), readHalf(b[6:])}
		}
		return out
	case value.Float2ID:
		out := make([]value.Float2, count)
		for i := range out {
			b := raw[i*8:]
			out[i] = value.Float2{readFloat(b[0:]), readFloat(b[4:])}
		}
		return out
	case value.Float3ID:
		out := make([]value.Float3, count)
		for i := range out {
			b := raw[i*12:]
			out[i] = value.Float3{readFloat(b[0:]), readFloat(b[4:]), readFloat(b[8:])}
		}
		return out
	case value.Float4ID:
		out := make([]value.Float4, count)
		for i := range out {
			b := raw[i*16:]
			out[i] = value.Float4{readFloat(b[0:]), readFloat(b[4:]), readFloat(b[8:]), readFloat(b[12:])}
		}
		return out
	case value.Double2ID:
		out := make([]value.Double2, count)
		for i := range out {
			b := raw[i*16:]
			out[i] = value.Double2{readDouble(b[0:]), readDouble(b[8:])}
		}
		return out
	case value.Double3ID:
		out := make([]value.Double3, count)
		for i := range out {
			b := raw[i*24:]
			out[i] = value.Double3{readDouble(b[0:]), readDouble(b[8:]), readDouble(b[16:])}
		}
		return out
	case value.Double4ID:
		out := make([]value.Double4, count)
		for i := range out {
			b := raw[i*32:]
			out[i] = value.Double4{readDouble(b[0:]), readDouble(b[8:]), readDouble(b[16:]), readDouble(b[24:])}
		}
		return out
	case value.QuathID:
		out := make([]value.Quath, count)
		for i := range out {
			b := raw[i*8:]
			out[i] = value.Quath{readHalf(b[0:]), readHalf(b[2:]), readHalf(b[4:]), readHalf(b[6:])}
		}
		return out
	case value.QuatfID:
		out := make([]value.Quatf, count)
		for i := range out {
			b := raw[i*16:]
			out[i] = value.Quatf{readFloat(b[0:]), readFloat(b[4:]), readFloat(b[8:]), readFloat(b[12:])}
		}
		return out
	case value.QuatdID:
		out := make([]value.Quatd, count)
		for i := range out {
			b := raw[i*32:]
			out[i] = value.Quatd{readDouble(b[0:]), readDouble(b[8:]), readDouble(b[16:]), readDouble(b[24:])}
		}
		return out
	case value.Matrix2dID:
		out := make([]value.Matrix2d, count)
		for i := range out {
			b := raw[i*32:]
			for j := 0; j < 4; j++ {
				out[i][j] = readDouble(b[j*8:])
			}
		}
		return out
	case value.Matrix3dID:
		out := make([]value.Matrix3d, count)
		for i := range out {
			b := raw[i*72:]
			for j := 0; j < 9; j++ {
				out[i][j] = readDouble(b[j*8:])
			}
		}
		return out
	case value.Matrix4dID:
		out := make([]value.Matrix4d, count)
		for i := range out {
			b := raw[i*128:]
			for j := 0; j < 16; j++ {
				out[i][j] = readDouble(b[j*8:])
			}
		}
		return out
	case value.Matrix4fID:
		out := make([]value.Matrix4f, count)
		for i := range out {
			b := raw[i*64:]
			for j := 0; j < 16; j++ {
				out[i][j] = readFloat(b[j*4:])
			}
		}
		return out
	default:
		return nil
	}
}

func decodeDictionary(r *seqReader, tokens []string, paths []sdfpath.Path, cfg *Config) (map[string]value.Value, error) {
	n := r.u64()
	if n > uint64(cfg.MaxFieldValuePairsPerSpec) {
		return nil, fmt.Errorf("crate: dictionary entry count %d exceeds MaxFieldValuePairsPerSpec: %w", n, ErrBounds)
	}
	out := make(map[string]value.Value, n)
	for i := uint64(0); i < n; i++ {
		keyIdx := r.u32()
		rep := ValueRep(r.u64())
		if r.err != nil {
			return nil, r.err
		}
		key, err := resolveToken(tokens, keyIdx)
		if err != nil {
			return nil, err
		}
		v, err := DecodeValue(r.src, rep, tokens, paths, cfg)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func decodePathIndexArray(r *seqReader, paths []sdfpath.Path) ([]sdfpath.Path, error) {
	n := r.u64()
	out := make([]sdfpath.Path, n)
	for i := range out {
		idx := r.u32()
		if r.err != nil {
			return nil, r.err
		}
		p, err := resolvePath(paths, idx)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func readReference(r *seqReader, tokens []string, paths []sdfpath.Path, cfg *Config) (value.Reference, error) {
	assetIdx := r.u32()
	pathIdx := r.u32()
	offset := r.f64()
	scale := r.f64()
	if r.err != nil {
		return value.Reference{}, r.err
	}
	asset, err := resolveToken(tokens, assetIdx)
	if err != nil && assetIdx != noIndex {
		return value.Reference{}, err
	}
	if assetIdx == noIndex {
		asset = ""
	}
	primPath, err := resolvePath(paths, pathIdx)
	if err != nil {
		return value.Reference{}, err
	}
	custom, err := decodeDictionary(r, tokens, paths, cfg)
	if err != nil {
		return value.Reference{}, err
	}
	return value.Reference{
		AssetPath:   asset,
		PrimPath:    primPath,
		LayerOffset: value.LayerOffset{Offset: offset, Scale: scale},
		CustomData:  custom,
	}, nil
}

func readPayload(r *seqReader, tokens []string, paths []sdfpath.Path) (value.Payload, error) {
	assetIdx := r.u32()
	pathIdx := r.u32()
	offset := r.f64()
	scale := r.f64()
	if r.err != nil {
		return value.Payload{}, r.err
	}
	asset := ""
	var err error
	if assetIdx != noIndex {
		asset, err = resolveToken(tokens, assetIdx)
		if err != nil {
			return value.Payload{}, err
		}
	}
	primPath, err := resolvePath(paths, pathIdx)
	if err != nil {
		return value.Payload{}, err
	}
	return value.Payload{AssetPath: asset, PrimPath: primPath, LayerOffset: value.LayerOffset{Offset: offset, Scale: scale}}, nil
}

func decodeListOp[T any](r *seqReader, header listop.Header, readElem func(*seqReader) (T, error)) (listop.ListOp[T], error) {
	isExplicit, hasExplicit, hasAdded, hasDeleted, hasOrdered, hasPrepended, hasAppended := header.Decode()
	readBucket := func(present bool) ([]T, error) {
		if !present {
			return nil, nil
		}
		n := r.u64()
		if r.err != nil {
			return nil, r.err
		}
		out := make([]T, n)
		for i := range out {
			v, err := readElem(r)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	var op listop.ListOp[T]
	op.IsExplicit = isExplicit
	var err error
	if op.Explicit, err = readBucket(hasExplicit || isExplicit); err != nil {
		return op, err
	}
	if op.Added, err = readBucket(hasAdded); err != nil {
		return op, err
	}
	if op.Prepended, err = readBucket(hasPrepended); err != nil {
		return op, err
	}
	if op.Appended, err = readBucket(hasAppended); err != nil {
		return op, err
	}
	if op.Deleted, err = readBucket(hasDeleted); err != nil {
		return op, err
	}
	if op.Ordered, err = readBucket(hasOrdered); err != nil {
		return op, err
	}
	if op.IsExplicit && len(op.Added)+len(op.Prepended)+len(op.Appended)+len(op.Deleted)+len(op.Ordered) > 0 {
		return op, fmt.Errorf("crate: explicit ListOp also populates a list-edit bucket: %w", ErrStructural)
	}
	return op, nil
}

func decodeListOpValue[T any](src Source, rep ValueRep, id value.TypeID, readElem func(*seqReader) (T, error)) (value.Value, error) {
	r := &seqReader{src: src, pos: rep.Offset()}
	header := listop.Header(r.u8())
	op, err := decodeListOp(r, header, readElem)
	if err != nil {
		return value.Value{}, err
	}
	return value.Make(id, op), nil
}

var signedIntegerTypes = map[value.TypeID]bool{
	value.Int: true, value.Int64: true,
}

func decodeArrayValue(src Source, rep ValueRep, id value.TypeID, tokens []string, cfg *Config) (value.Value, error) {
	switch id {
	case value.Bool, value.UChar, value.Int, value.UInt, value.Int64, value.UInt64:
		return decodeIntegerArray(src, rep, id, cfg)
	case value.Token, value.String, value.AssetPath:
		return decodeTokenIndexArray(src, rep, id, tokens, cfg)
	default:
		underlying := id
		if id.IsRoleType() {
			underlying = id.UnderlyingTypeID()
		}
		elemSize := underlying.ElementSize()
		if elemSize == 0 {
			return value.Value{}, fmt.Errorf("crate: array of type %s is not supported: %w", id.Name(), ErrUnsupported)
		}
		return decodeFixedArray(src, rep, id, underlying, elemSize, cfg)
	}
}

func decodeIntegerArray(src Source, rep ValueRep, id value.TypeID, cfg *Config) (value.Value, error) {
	elemSize := id.ElementSize()
	r := &seqReader{src: src, pos: rep.Offset()}
	count := r.u64()
	if r.err != nil {
		return value.Value{}, r.err
	}
	var raw []byte
	var err error
	if rep.IsCompressed() {
		blobSize := r.u64()
		if r.err != nil {
			return value.Value{}, r.err
		}
		blob := r.bytes(int(blobSize))
		if r.err != nil {
			return value.Value{}, r.err
		}
		raw, err = decodeIntegerCodedArrayBytes(blob, elemSize, count, signedIntegerTypes[id])
	} else {
		raw, err = decodeRawArrayBytes(src, r.pos, count, elemSize, false, cfg)
	}
	if err != nil {
		return value.Value{}, err
	}
	return bytesToIntArrayValue(id, raw, count), nil
}

func bytesToIntArrayValue(id value.TypeID, raw []byte, count uint64) value.Value {
	switch id {
	case value.Bool:
		out := make([]bool, count)
		for i := range out {
			out[i] = raw[i] != 0
		}
		return value.MakeArray(id, out)
	case value.UChar:
		out := make([]byte, count)
		copy(out, raw[:count])
		return value.MakeArray(id, out)
	case value.Int:
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		return value.MakeArray(id, out)
	case value.UInt:
		out := make([]uint32, count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(raw[i*4:])
		}
		return value.MakeArray(id, out)
	case value.Int64:
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
		}
		return value.MakeArray(id, out)
	case value.UInt64:
		out := make([]uint64, count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint64(raw[i*8:])
		}
		return value.MakeArray(id, out)
	default:
		return value.Value{}
	}
}

func decodeTokenIndexArray(src Source, rep ValueRep, id value.TypeID, tokens []string, cfg *Config) (value.Value, error) {
	r := &seqReader{src: src, pos: rep.Offset()}
	count := r.u64()
	if r.err != nil {
		return value.Value{}, r.err
	}
	var raw []byte
	var err error
	if rep.IsCompressed() {
		blobSize := r.u64()
		blob := r.bytes(int(blobSize))
		if r.err != nil {
			return value.Value{}, r.err
		}
		raw, err = decodeIntegerCodedArrayBytes(blob, 4, count, false)
	} else {
		raw, err = decodeRawArrayBytes(src, r.pos, count, 4, false, cfg)
	}
	if err != nil {
		return value.Value{}, err
	}
	out := make([]string, count)
	for i := uint64(0); i < count; i++ {
		idx := binary.LittleEndian.Uint32(raw[i*4:])
		s, err := resolveToken(tokens, idx)
		if err != nil {
			return value.Value{}, err
		}
		out[i] = s
	}
	return value.MakeArray(id, out), nil
}

func decodeFixedArray(src Source, rep ValueRep, id, underlying value.TypeID, elemSize int, cfg *Config) (value.Value, error) {
	r := &seqReader{src: src, pos: rep.Offset()}
	count := r.u64()
	if r.err != nil {
		return value.Value{}, r.err
	}
	raw, err := decodeRawArrayBytes(src, r.pos, count, elemSize, rep.IsCompressed(), cfg)
	if err != nil {
		return value.Value{}, err
	}
	typed := decodeFloatLikeElements(underlying, raw, count)
	return wrapArray(id, typed), nil
}

// RawTimeSample is one (time, ValueRep) entry from a TimeSamples field
// blob, left undecoded until the caller knows which interpolation
// policy and block handling to apply (§4.4, §4.5).
type RawTimeSample struct {
	Time float64
	Rep  ValueRep
}

// DecodeTimeSamples reads a TimeSamplesTag field's blob: a count
// followed by parallel times and ValueRep arrays (§4.5).
func DecodeTimeSamples(src Source, rep ValueRep, cfg *Config) ([]RawTimeSample, error) {
	r := &seqReader{src: src, pos: rep.Offset()}
	count := r.u64()
	if r.err != nil {
		return nil, r.err
	}
	if count > cfg.MaxArrayElements {
		return nil, fmt.Errorf("crate: TimeSamples count %d exceeds MaxArrayElements: %w", count, ErrBounds)
	}
	out := make([]RawTimeSample, count)
	for i := range out {
		out[i].Time = r.f64()
	}
	for i := range out {
		out[i].Rep = ValueRep(r.u64())
	}
	if r.err != nil {
		return nil, r.err
	}
	return out, nil
}
