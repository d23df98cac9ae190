package crate

import (
	"encoding/binary"
	"fmt"
)

// SpecType classifies a Spec record (§4.5, GLOSSARY).
type SpecType uint32

const (
	SpecTypeUnknown SpecType = iota
	SpecTypePseudoRoot
	SpecTypePrim
	SpecTypeAttribute
	SpecTypeRelationship
	SpecTypeConnection
	SpecTypeVariant
	SpecTypeVariantSet
)

func (t SpecType) String() string {
	switch t {
	case SpecTypePseudoRoot:
		return "PseudoRoot"
	case SpecTypePrim:
		return "Prim"
	case SpecTypeAttribute:
		return "Attribute"
	case SpecTypeRelationship:
		return "Relationship"
	case SpecTypeConnection:
		return "Connection"
	case SpecTypeVariant:
		return "Variant"
	case SpecTypeVariantSet:
		return "VariantSet"
	default:
		return "Unknown"
	}
}

// Spec is one (path_index, fieldset_index, spec_type) record (§4.5).
type Spec struct {
	PathIndex      uint32
	FieldSetIndex  uint32
	Type           SpecType
}

const specRecordSize = 4 + 4 + 4

func decodeSpecs(src Source, sec Section, numPaths int, cfg *Config) ([]Spec, error) {
	if sec.Size < 8 {
		return nil, fmt.Errorf("crate: SPECS section too small: %w", ErrStructural)
	}
	var countBuf [8]byte
	if _, err := src.ReadAt(countBuf[:], int64(sec.Start)); err != nil {
		return nil, fmt.Errorf("crate: read SPECS count: %w", ErrStructural)
	}
	count := binary.LittleEndian.Uint64(countBuf[:])
	if count > cfg.MaxArrayElements {
		return nil, fmt.Errorf("crate: SPECS count %d exceeds MaxArrayElements: %w", count, ErrBounds)
	}
	if 8+count*specRecordSize > sec.Size {
		return nil, fmt.Errorf("crate: SPECS count %d overruns its section: %w", count, ErrStructural)
	}
	buf := make([]byte, count*specRecordSize)
	if _, err := src.ReadAt(buf, int64(sec.Start)+8); err != nil {
		return nil, fmt.Errorf("crate: read SPECS records: %w", ErrStructural)
	}
	out := make([]Spec, count)
	for i := range out {
		off := uint64(i) * specRecordSize
		pathIdx := binary.LittleEndian.Uint32(buf[off:])
		fsIdx := binary.LittleEndian.Uint32(buf[off+4:])
		specType := binary.LittleEndian.Uint32(buf[off+8:])
		if int(pathIdx) >= numPaths {
			return nil, fmt.Errorf("crate: SPECS[%d] path index %d out of range: %w", i, pathIdx, ErrStructural)
		}
		out[i] = Spec{PathIndex: pathIdx, FieldSetIndex: fsIdx, Type: SpecType(specType)}
	}
	return out, nil
}
