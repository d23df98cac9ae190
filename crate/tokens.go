package crate

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// decodeTokens reads the TOKENS section: a length-prefixed blob, either
// raw UTF-8 or LZ4-compressed, split on NUL into a token table (§4.5).
func decodeTokens(src Source, sec Section) ([]string, error) {
	if sec.Size < 9 {
		return nil, fmt.Errorf("crate: TOKENS section too small: %w", ErrStructural)
	}
	var head [9]byte
	if _, err := src.ReadAt(head[:], int64(sec.Start)); err != nil {
		return nil, fmt.Errorf("crate: read TOKENS header: %w", ErrStructural)
	}
	uncompressedSize := binary.LittleEndian.Uint64(head[0:8])
	compressed := head[8] != 0

	blob, err := readRawOrCompressed(src, sec, 9, uncompressedSize, compressed)
	if err != nil {
		return nil, err
	}
	parts := bytes.Split(blob, []byte{0})
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) == 0 && len(tokens) == len(parts)-1 {
			// Trailing NUL produces one empty trailing part; drop it.
			continue
		}
		tokens = append(tokens, string(p))
	}
	return tokens, nil
}

// readRawOrCompressed reads uncompressedSize bytes starting at
// sec.Start+headerLen, either directly or via an LZ4 frame preceded by
// an 8-byte compressed-size prefix.
func readRawOrCompressed(src Source, sec Section, headerLen int, uncompressedSize uint64, compressed bool) ([]byte, error) {
	if uncompressedSize > uint64(1)<<32 {
		return nil, fmt.Errorf("crate: section payload size %d exceeds sanity bound: %w", uncompressedSize, ErrBounds)
	}
	bodyOffset := int64(sec.Start) + int64(headerLen)
	if !compressed {
		if uint64(headerLen)+uncompressedSize > sec.Size {
			return nil, fmt.Errorf("crate: section payload overruns its section: %w", ErrStructural)
		}
		buf := make([]byte, uncompressedSize)
		if _, err := src.ReadAt(buf, bodyOffset); err != nil {
			return nil, fmt.Errorf("crate: read section payload: %w", ErrStructural)
		}
		return buf, nil
	}
	var szBuf [8]byte
	if _, err := src.ReadAt(szBuf[:], bodyOffset); err != nil {
		return nil, fmt.Errorf("crate: read compressed size: %w", ErrStructural)
	}
	compressedSize := binary.LittleEndian.Uint64(szBuf[:])
	if uint64(headerLen)+8+compressedSize > sec.Size {
		return nil, fmt.Errorf("crate: compressed payload overruns its section: %w", ErrStructural)
	}
	compBuf := make([]byte, compressedSize)
	if _, err := src.ReadAt(compBuf, bodyOffset+8); err != nil {
		return nil, fmt.Errorf("crate: read compressed payload: %w", ErrStructural)
	}
	out := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(compBuf, out)
	if err != nil {
		return nil, fmt.Errorf("crate: lz4 decompress: %w: %v", ErrStructural, err)
	}
	return out[:n], nil
}
