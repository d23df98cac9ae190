package crate

import (
	"encoding/binary"
	"fmt"
)

// decodeStrings reads the STRINGS section: a count followed by that
// many token-table indices (strings are interned as tokens, §4.5).
func decodeStrings(src Source, sec Section, numTokens int) ([]uint32, error) {
	if sec.Size < 8 {
		return nil, fmt.Errorf("crate: STRINGS section too small: %w", ErrStructural)
	}
	var countBuf [8]byte
	if _, err := src.ReadAt(countBuf[:], int64(sec.Start)); err != nil {
		return nil, fmt.Errorf("crate: read STRINGS count: %w", ErrStructural)
	}
	count := binary.LittleEndian.Uint64(countBuf[:])
	if 8+count*4 > sec.Size {
		return nil, fmt.Errorf("crate: STRINGS count %d overruns its section: %w", count, ErrStructural)
	}
	buf := make([]byte, count*4)
	if _, err := src.ReadAt(buf, int64(sec.Start)+8); err != nil {
		return nil, fmt.Errorf("crate: read STRINGS indices: %w", ErrStructural)
	}
	out := make([]uint32, count)
	for i := range out {
		idx := binary.LittleEndian.Uint32(buf[i*4:])
		if int(idx) >= numTokens {
			return nil, fmt.Errorf("crate: STRINGS[%d] token index %d out of range: %w", i, idx, ErrStructural)
		}
		out[i] = idx
	}
	return out, nil
}
