package crate

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/pierrec/lz4/v4"
)

// decodeRawArrayBytes returns the raw little-endian element bytes for a
// fixed-width numeric/vector/matrix array, handling the plain and
// LZ4-framed cases (§4.5 "LZ4 blocks carry (compressed_size,
// original_size)...").
func decodeRawArrayBytes(src Source, offset int64, count uint64, elemSize int, compressed bool, cfg *Config) ([]byte, error) {
	if count > cfg.MaxArrayElements {
		return nil, fmt.Errorf("crate: array element count %d exceeds MaxArrayElements: %w", count, ErrBounds)
	}
	wantSize := count * uint64(elemSize)
	if !compressed {
		buf := make([]byte, wantSize)
		if _, err := src.ReadAt(buf, offset); err != nil {
			return nil, fmt.Errorf("crate: read array payload: %w", ErrStructural)
		}
		return buf, nil
	}
	var hdr [16]byte
	if _, err := src.ReadAt(hdr[:], offset); err != nil {
		return nil, fmt.Errorf("crate: read array lz4 header: %w", ErrStructural)
	}
	compressedSize := binary.LittleEndian.Uint64(hdr[0:8])
	originalSize := binary.LittleEndian.Uint64(hdr[8:16])
	if originalSize != wantSize {
		return nil, fmt.Errorf("crate: array lz4 original size %d != count*elemSize %d: %w", originalSize, wantSize, ErrStructural)
	}
	comp := make([]byte, compressedSize)
	if _, err := src.ReadAt(comp, offset+16); err != nil {
		return nil, fmt.Errorf("crate: read array lz4 payload: %w", ErrStructural)
	}
	out := make([]byte, originalSize)
	n, err := lz4.UncompressBlock(comp, out)
	if err != nil {
		return nil, fmt.Errorf("crate: array lz4 decompress: %w: %v", ErrStructural, err)
	}
	return out[:n], nil
}

// decodeIntegerCodedArrayBytes decodes the "integerCoding" scheme of
// §4.5/§6: a small header (element width, common-table size), a
// common-value table of frequent deltas, a bit-packed stream of
// per-element codes (0 = literal follows, 1..N = commonTable[code-1]),
// and a literal block for code-0 entries. Returns elemSize-wide
// little-endian bytes for count absolute values (first value stored
// literally, the rest reconstructed by running delta sum).
func decodeIntegerCodedArrayBytes(raw []byte, elemSize int, count uint64, signed bool) ([]byte, error) {
	r := &byteCursor{buf: raw}
	elementWidth := int(r.u8())
	numCommon := int(r.u16())
	if elementWidth == 0 || elementWidth > 8 {
		return nil, fmt.Errorf("crate: integer coding element width %d invalid: %w", elementWidth, ErrStructural)
	}
	commonTable := make([]int64, numCommon)
	for i := range commonTable {
		commonTable[i] = r.intLE(elementWidth, signed)
	}
	if r.err != nil {
		return nil, fmt.Errorf("crate: integer coding common table: %w", ErrStructural)
	}
	if count == 0 {
		return []byte{}, nil
	}
	first := r.intLE(elementWidth, signed)
	if r.err != nil {
		return nil, fmt.Errorf("crate: integer coding first value: %w", ErrStructural)
	}
	numDeltas := count - 1
	codeWidth := bits.Len(uint(numCommon))
	codes := make([]int, numDeltas)
	if codeWidth > 0 {
		br := &bitReader{buf: r.buf[r.pos:]}
		for i := range codes {
			codes[i] = br.read(codeWidth)
		}
		r.pos += br.bytesConsumed()
	}
	out := make([]byte, count*uint64(elemSize))
	putIntLE(out[0:elemSize], first, elemSize)
	prev := first
	for i, code := range codes {
		var delta int64
		if code == 0 {
			delta = r.intLE(elementWidth, signed)
			if r.err != nil {
				return nil, fmt.Errorf("crate: integer coding literal %d: %w", i, ErrStructural)
			}
		} else if code-1 < len(commonTable) {
			delta = commonTable[code-1]
		} else {
			return nil, fmt.Errorf("crate: integer coding code %d out of common-table range: %w", code, ErrStructural)
		}
		prev += delta
		putIntLE(out[(i+1)*elemSize:(i+2)*elemSize], prev, elemSize)
	}
	return out, nil
}

// encodeIntegerCodedArrayBytes is the inverse of
// decodeIntegerCodedArrayBytes, used only to build test fixtures
// (§AMBIENT STACK testing: "golden byte slices built inline").
func encodeIntegerCodedArrayBytes(values []int64, elementWidth int, commonTable []int64, signed bool) []byte {
	var out []byte
	out = append(out, byte(elementWidth))
	out = appendU16(out, uint16(len(commonTable)))
	for _, c := range commonTable {
		out = appendIntLE(out, c, elementWidth)
	}
	if len(values) == 0 {
		return out
	}
	out = appendIntLE(out, values[0], elementWidth)
	codeWidth := bits.Len(uint(len(commonTable)))
	var codes []int
	var literals []int64
	prev := values[0]
	commonIndex := make(map[int64]int, len(commonTable))
	for i, v := range commonTable {
		commonIndex[v] = i + 1
	}
	for _, v := range values[1:] {
		delta := v - prev
		prev = v
		if code, ok := commonIndex[delta]; ok {
			codes = append(codes, code)
		} else {
			codes = append(codes, 0)
			literals = append(literals, delta)
		}
	}
	bw := &bitWriter{}
	for _, c := range codes {
		bw.write(c, codeWidth)
	}
	out = append(out, bw.bytes()...)
	for _, lit := range literals {
		out = appendIntLE(out, lit, elementWidth)
	}
	return out
}

// byteCursor is a minimal forward-only byte reader used while decoding
// the integer-coded array header and literal blocks.
type byteCursor struct {
	buf []byte
	pos int
	err error
}

func (c *byteCursor) u8() byte {
	if c.pos+1 > len(c.buf) {
		c.err = fmt.Errorf("byteCursor: out of bounds")
		return 0
	}
	v := c.buf[c.pos]
	c.pos++
	return v
}

func (c *byteCursor) u16() uint16 {
	if c.pos+2 > len(c.buf) {
		c.err = fmt.Errorf("byteCursor: out of bounds")
		return 0
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v
}

func (c *byteCursor) intLE(width int, signed bool) int64 {
	if c.pos+width > len(c.buf) {
		c.err = fmt.Errorf("byteCursor: out of bounds")
		return 0
	}
	var u uint64
	for i := 0; i < width; i++ {
		u |= uint64(c.buf[c.pos+i]) << (8 * i)
	}
	c.pos += width
	if !signed || width == 8 {
		return int64(u)
	}
	shift := 64 - width*8
	return (int64(u) << shift) >> shift
}

func putIntLE(dst []byte, v int64, width int) {
	u := uint64(v)
	for i := 0; i < width; i++ {
		dst[i] = byte(u >> (8 * i))
	}
}

func appendIntLE(dst []byte, v int64, width int) []byte {
	b := make([]byte, width)
	putIntLE(b, v, width)
	return append(dst, b...)
}

func appendU16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

// bitReader reads LSB-first bit fields from a byte slice.
type bitReader struct {
	buf      []byte
	bitIndex int
}

func (r *bitReader) read(width int) int {
	var v int
	for i := 0; i < width; i++ {
		byteIdx := r.bitIndex / 8
		bitOff := r.bitIndex % 8
		if byteIdx < len(r.buf) && r.buf[byteIdx]&(1<<bitOff) != 0 {
			v |= 1 << i
		}
		r.bitIndex++
	}
	return v
}

func (r *bitReader) bytesConsumed() int {
	return (r.bitIndex + 7) / 8
}

// bitWriter writes LSB-first bit fields, used only by the test-fixture
// encoder above.
type bitWriter struct {
	buf      []byte
	bitIndex int
}

func (w *bitWriter) write(v, width int) {
	for i := 0; i < width; i++ {
		byteIdx := w.bitIndex / 8
		bitOff := w.bitIndex % 8
		for byteIdx >= len(w.buf) {
			w.buf = append(w.buf, 0)
		}
		if v&(1<<i) != 0 {
			w.buf[byteIdx] |= 1 << bitOff
		}
		w.bitIndex++
	}
}

func (w *bitWriter) bytes() []byte {
	return w.buf
}
