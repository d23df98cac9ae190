package crate

import (
	"encoding/binary"
	"fmt"
)

// magic is the 8-byte bootstrap signature (§6).
var magic = [8]byte{'P', 'X', 'R', '-', 'U', 'S', 'D', 'C'}

const bootstrapSize = 8 + 3 + 8 // magic + version triple + TOC offset

// Bootstrap is the fixed-size file header (§6).
type Bootstrap struct {
	VersionMajor, VersionMinor, VersionPatch uint8
	TOCOffset                                uint64
}

func readBootstrap(src Source) (Bootstrap, error) {
	var buf [bootstrapSize]byte
	if _, err := src.ReadAt(buf[:], 0); err != nil {
		return Bootstrap{}, fmt.Errorf("crate: read bootstrap: %w", ErrStructural)
	}
	if string(buf[0:8]) != string(magic[:]) {
		return Bootstrap{}, fmt.Errorf("crate: bad magic %q: %w", buf[0:8], ErrStructural)
	}
	b := Bootstrap{
		VersionMajor: buf[8],
		VersionMinor: buf[9],
		VersionPatch: buf[10],
		TOCOffset:    binary.LittleEndian.Uint64(buf[11:19]),
	}
	if int64(b.TOCOffset) <= 0 || int64(b.TOCOffset) >= src.Size() {
		return Bootstrap{}, fmt.Errorf("crate: TOC offset %d out of file bounds: %w", b.TOCOffset, ErrStructural)
	}
	return b, nil
}
