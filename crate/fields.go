package crate

import (
	"encoding/binary"
	"fmt"
)

// Field is one (name, ValueRep) entry from the FIELDS section (§4.5).
type Field struct {
	TokenIndex uint32
	Rep        ValueRep
}

const fieldRecordSize = 4 + 8

func decodeFields(src Source, sec Section, numTokens int, cfg *Config) ([]Field, error) {
	if sec.Size < 8 {
		return nil, fmt.Errorf("crate: FIELDS section too small: %w", ErrStructural)
	}
	var countBuf [8]byte
	if _, err := src.ReadAt(countBuf[:], int64(sec.Start)); err != nil {
		return nil, fmt.Errorf("crate: read FIELDS count: %w", ErrStructural)
	}
	count := binary.LittleEndian.Uint64(countBuf[:])
	if count > cfg.MaxArrayElements {
		return nil, fmt.Errorf("crate: FIELDS count %d exceeds MaxArrayElements: %w", count, ErrBounds)
	}
	if 8+count*fieldRecordSize > sec.Size {
		return nil, fmt.Errorf("crate: FIELDS count %d overruns its section: %w", count, ErrStructural)
	}
	buf := make([]byte, count*fieldRecordSize)
	if _, err := src.ReadAt(buf, int64(sec.Start)+8); err != nil {
		return nil, fmt.Errorf("crate: read FIELDS records: %w", ErrStructural)
	}
	out := make([]Field, count)
	for i := range out {
		off := uint64(i) * fieldRecordSize
		tokIdx := binary.LittleEndian.Uint32(buf[off:])
		if int(tokIdx) >= numTokens {
			return nil, fmt.Errorf("crate: FIELDS[%d] token index %d out of range: %w", i, tokIdx, ErrStructural)
		}
		rep := ValueRep(binary.LittleEndian.Uint64(buf[off+4:]))
		out[i] = Field{TokenIndex: tokIdx, Rep: rep}
	}
	return out, nil
}
