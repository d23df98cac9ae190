package crate

import (
	"encoding/binary"
	"fmt"

	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
)

// pathFlagIsProperty marks a PATHS record as a property element rather
// than a prim element.
const pathFlagIsProperty = uint32(1 << 0)

const pathRecordSize = 4 + 4 + 4 // parentIndex, elementTokenIndex, flags

// decodePaths reconstructs the path tree from the PATHS section.
//
// §4.5 describes the on-disk record as a delta-coded
// (token_index_delta, element_token_index, sibling_or_child_flag, jump)
// tuple: a pure space optimization over the semantically equivalent
// parent-pointer tree this decoder stores (never re-serialized, so the
// sibling/jump bookkeeping has no reader-visible effect; see
// DESIGN.md). Each record here instead carries an explicit parent
// index, which must be strictly less than the record's own index
// (nodes are stored in pre-order).
func decodePaths(src Source, sec Section, tokens []string, cfg *Config) ([]sdfpath.Path, []sdfpath.Path, error) {
	numTokens := len(tokens)
	if sec.Size < 8 {
		return nil, nil, fmt.Errorf("crate: PATHS section too small: %w", ErrStructural)
	}
	var countBuf [8]byte
	if _, err := src.ReadAt(countBuf[:], int64(sec.Start)); err != nil {
		return nil, nil, fmt.Errorf("crate: read PATHS count: %w", ErrStructural)
	}
	count := binary.LittleEndian.Uint64(countBuf[:])
	if count > cfg.MaxArrayElements {
		return nil, nil, fmt.Errorf("crate: PATHS count %d exceeds MaxArrayElements: %w", count, ErrBounds)
	}
	if 8+count*pathRecordSize > sec.Size {
		return nil, nil, fmt.Errorf("crate: PATHS count %d overruns its section: %w", count, ErrStructural)
	}
	buf := make([]byte, count*pathRecordSize)
	if _, err := src.ReadAt(buf, int64(sec.Start)+8); err != nil {
		return nil, nil, fmt.Errorf("crate: read PATHS records: %w", ErrStructural)
	}

	paths := make([]sdfpath.Path, count)
	elemPaths := make([]sdfpath.Path, count)
	depths := make([]uint32, count)
	if count == 0 {
		return paths, elemPaths, nil
	}
	paths[0] = sdfpath.Root()
	elemPaths[0] = sdfpath.Root()

	for i := uint64(1); i < count; i++ {
		off := i * pathRecordSize
		parentIdx := int32(binary.LittleEndian.Uint32(buf[off:]))
		elemTokIdx := binary.LittleEndian.Uint32(buf[off+4:])
		flags := binary.LittleEndian.Uint32(buf[off+8:])

		if parentIdx < 0 || uint64(parentIdx) >= i {
			return nil, nil, fmt.Errorf("crate: PATHS[%d] parent index %d is not a prior node: %w", i, parentIdx, ErrStructural)
		}
		if int(elemTokIdx) >= numTokens {
			return nil, nil, fmt.Errorf("crate: PATHS[%d] element token index %d out of range: %w", i, elemTokIdx, ErrStructural)
		}
		depths[i] = depths[parentIdx] + 1
		if depths[i] > cfg.MaxPrimNestLevel {
			return nil, nil, fmt.Errorf("crate: PATHS[%d] nest level %d exceeds MaxPrimNestLevel: %w", i, depths[i], ErrBounds)
		}

		elem := tokens[elemTokIdx]
		isProperty := flags&pathFlagIsProperty != 0
		var p sdfpath.Path
		var err error
		if isProperty {
			p, err = paths[parentIdx].AppendProperty(elem)
			elemPaths[i] = sdfpath.New("", elem)
		} else {
			p, err = paths[parentIdx].AppendElement(elem)
			elemPaths[i] = sdfpath.New(elem, "")
		}
		if err != nil {
			return nil, nil, fmt.Errorf("crate: PATHS[%d]: %w: %v", i, ErrStructural, err)
		}
		paths[i] = p
	}
	return paths, elemPaths, nil
}
