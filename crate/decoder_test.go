package crate

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

// memSource is a Source backed by an in-memory byte slice, used to build
// golden fixtures inline rather than touching a real file.
type memSource struct{ buf []byte }

func (m *memSource) ReadAt(p []byte, off int64) (int, error) {
	return copy(p, m.buf[off:]), nil
}
func (m *memSource) Size() int64 { return int64(len(m.buf)) }

func putU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

// buildMinimalCrateFile assembles a bootstrap header, a TOC with one
// TOKENS section (uncompressed, NUL-joined), and nothing else — enough to
// exercise Decode's missing-PATHS error path and the TOKENS decoder
// directly.
func buildMinimalCrateFile(tb testing.TB, tokens []string) []byte {
	tb.Helper()
	var tokenBlob bytes.Buffer
	for _, t := range tokens {
		tokenBlob.WriteString(t)
		tokenBlob.WriteByte(0)
	}

	var tokensSection bytes.Buffer
	putU64(&tokensSection, uint64(tokenBlob.Len()))
	tokensSection.WriteByte(0) // uncompressed
	tokensSection.Write(tokenBlob.Bytes())

	var file bytes.Buffer
	file.WriteString("PXR-USDC")
	file.Write([]byte{0, 8, 0}) // version 0.8.0
	tocOffsetPos := file.Len()
	putU64(&file, 0) // placeholder, patched below

	sectionStart := uint64(file.Len())
	file.Write(tokensSection.Bytes())

	tocOffset := uint64(file.Len())
	putU64(&file, 1) // one TOC entry
	var name [16]byte
	copy(name[:], SectionTokens)
	file.Write(name[:])
	putU64(&file, sectionStart)
	putU64(&file, uint64(tokensSection.Len()))

	out := file.Bytes()
	binary.LittleEndian.PutUint64(out[tocOffsetPos:], tocOffset)
	return out
}

func TestDecodeMissingPaths(t *testing.T) {
	raw := buildMinimalCrateFile(t, []string{"foo", "bar"})
	_, err := Decode(&memSource{buf: raw}, DefaultConfig())
	if err == nil {
		t.Fatalf("expected an error for a file with no PATHS section")
	}
}

func TestReadBootstrapBadMagic(t *testing.T) {
	raw := buildMinimalCrateFile(t, nil)
	raw[0] = 'X'
	_, err := readBootstrap(&memSource{buf: raw})
	if err == nil {
		t.Fatalf("expected an error for bad magic")
	}
}

func TestDecodeTokensSection(t *testing.T) {
	raw := buildMinimalCrateFile(t, []string{"typeName", "specifier", "default"})
	src := &memSource{buf: raw}
	boot, err := readBootstrap(src)
	if err != nil {
		t.Fatalf("readBootstrap: %v", err)
	}
	sections, _, err := readTOC(src, boot.TOCOffset)
	if err != nil {
		t.Fatalf("readTOC: %v", err)
	}
	sec, ok := findSection(sections, SectionTokens)
	if !ok {
		t.Fatalf("TOKENS section not found")
	}
	tokens, err := decodeTokens(src, sec)
	if err != nil {
		t.Fatalf("decodeTokens: %v", err)
	}
	want := []string{"typeName", "specifier", "default"}
	if len(tokens) != len(want) {
		t.Fatalf("tokens = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("tokens[%d] = %q, want %q", i, tokens[i], want[i])
		}
	}
}

func TestValueRepRoundTrip(t *testing.T) {
	cases := []struct {
		name                                   string
		isArray, isInlined, isCompressed       bool
		typeID                                 value.TypeID
		payload                                uint64
	}{
		{"scalar-inlined-int", false, true, false, value.Int, 42},
		{"array-compressed-float", true, false, true, value.Float, 0x1234},
		{"offset-double", false, false, false, value.Double, 0xABCDEF},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rep := MakeValueRep(c.isArray, c.isInlined, c.isCompressed, c.typeID, c.payload)
			if rep.IsArray() != c.isArray {
				t.Errorf("IsArray() = %v, want %v", rep.IsArray(), c.isArray)
			}
			if rep.IsInlined() != c.isInlined {
				t.Errorf("IsInlined() = %v, want %v", rep.IsInlined(), c.isInlined)
			}
			if rep.IsCompressed() != c.isCompressed {
				t.Errorf("IsCompressed() = %v, want %v", rep.IsCompressed(), c.isCompressed)
			}
			if rep.TypeID() != c.typeID {
				t.Errorf("TypeID() = %v, want %v", rep.TypeID(), c.typeID)
			}
			if rep.Payload() != c.payload {
				t.Errorf("Payload() = %#x, want %#x", rep.Payload(), c.payload)
			}
		})
	}
}

func TestIntegerCodedArrayRoundTrip(t *testing.T) {
	values := []int64{100, 105, 110, 115, 1000, 120, 105}
	commonTable := []int64{5, 10}
	encoded := encodeIntegerCodedArrayBytes(values, 4, commonTable, true)

	decoded, err := decodeIntegerCodedArrayBytes(encoded, 4, uint64(len(values)), true)
	if err != nil {
		t.Fatalf("decodeIntegerCodedArrayBytes: %v", err)
	}
	for i, want := range values {
		got := int64(int32(binary.LittleEndian.Uint32(decoded[i*4:])))
		if got != want {
			t.Errorf("decoded[%d] = %d, want %d", i, got, want)
		}
	}
}
