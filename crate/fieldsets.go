package crate

import (
	"encoding/binary"
	"fmt"
	"math"
)

// fieldSetSentinel terminates one fieldset's run of field indices (§4.5).
const fieldSetSentinel = uint32(math.MaxUint32)

// decodeFieldSets reads the FIELDSETS section: a flat array of field
// indices with runs separated by fieldSetSentinel.
func decodeFieldSets(src Source, sec Section, numFields int, cfg *Config) ([]uint32, error) {
	if sec.Size < 8 {
		return nil, fmt.Errorf("crate: FIELDSETS section too small: %w", ErrStructural)
	}
	var countBuf [8]byte
	if _, err := src.ReadAt(countBuf[:], int64(sec.Start)); err != nil {
		return nil, fmt.Errorf("crate: read FIELDSETS count: %w", ErrStructural)
	}
	count := binary.LittleEndian.Uint64(countBuf[:])
	if count > cfg.MaxArrayElements {
		return nil, fmt.Errorf("crate: FIELDSETS count %d exceeds MaxArrayElements: %w", count, ErrBounds)
	}
	if 8+count*4 > sec.Size {
		return nil, fmt.Errorf("crate: FIELDSETS count %d overruns its section: %w", count, ErrStructural)
	}
	buf := make([]byte, count*4)
	if _, err := src.ReadAt(buf, int64(sec.Start)+8); err != nil {
		return nil, fmt.Errorf("crate: read FIELDSETS indices: %w", ErrStructural)
	}
	out := make([]uint32, count)
	for i := range out {
		idx := binary.LittleEndian.Uint32(buf[i*4:])
		if idx != fieldSetSentinel && int(idx) >= numFields {
			return nil, fmt.Errorf("crate: FIELDSETS[%d] field index %d out of range: %w", i, idx, ErrStructural)
		}
		out[i] = idx
	}
	return out, nil
}

// fieldSetRange returns the field indices for the run starting at
// fieldSetIndex (up to, not including, the terminating sentinel).
func fieldSetRange(fieldSetIndices []uint32, fieldSetIndex uint32) ([]uint32, error) {
	if int(fieldSetIndex) > len(fieldSetIndices) {
		return nil, fmt.Errorf("crate: fieldset index %d out of range: %w", fieldSetIndex, ErrStructural)
	}
	i := int(fieldSetIndex)
	start := i
	for i < len(fieldSetIndices) && fieldSetIndices[i] != fieldSetSentinel {
		i++
	}
	if i == len(fieldSetIndices) {
		return nil, fmt.Errorf("crate: fieldset starting at %d has no terminating sentinel: %w", fieldSetIndex, ErrStructural)
	}
	return fieldSetIndices[start:i], nil
}
