package crate

import "github.com/Cindy-xdZhang/OpenUsdLoader/value"

// ValueRep is the 64-bit packed word describing how to read one field
// value (§4.5, §6 bit-exact commitments):
//
//	bit   63      is_array
//	bit   62      is_inlined
//	bit   61      is_compressed
//	bits  60-56   reserved
//	bits  55-48   type_id  (value.TypeID, truncated to 8 bits)
//	bits  47-0    payload  (inlined bits, or a file offset)
type ValueRep uint64

const (
	vrArrayBit      = 1 << 63
	vrInlinedBit    = 1 << 62
	vrCompressedBit = 1 << 61
	vrTypeIDShift   = 48
	vrTypeIDMask    = 0xFF
	vrPayloadMask   = (uint64(1) << 48) - 1
)

// MakeValueRep packs a ValueRep from its fields. Used by the decoder's
// own tests to build fixtures; production code only ever decodes.
func MakeValueRep(isArray, isInlined, isCompressed bool, typeID value.TypeID, payload uint64) ValueRep {
	var v uint64
	if isArray {
		v |= vrArrayBit
	}
	if isInlined {
		v |= vrInlinedBit
	}
	if isCompressed {
		v |= vrCompressedBit
	}
	v |= (uint64(typeID) & vrTypeIDMask) << vrTypeIDShift
	v |= payload & vrPayloadMask
	return ValueRep(v)
}

func (r ValueRep) IsArray() bool      { return uint64(r)&vrArrayBit != 0 }
func (r ValueRep) IsInlined() bool    { return uint64(r)&vrInlinedBit != 0 }
func (r ValueRep) IsCompressed() bool { return uint64(r)&vrCompressedBit != 0 }

func (r ValueRep) TypeID() value.TypeID {
	return value.TypeID((uint64(r) >> vrTypeIDShift) & vrTypeIDMask)
}

// Payload returns the raw 48-bit payload: either the inlined bit
// pattern or a file offset.
func (r ValueRep) Payload() uint64 {
	return uint64(r) & vrPayloadMask
}

// Offset is Payload reinterpreted as a file offset (non-inlined values).
func (r ValueRep) Offset() int64 {
	return int64(r.Payload())
}
