package crate

import (
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/Cindy-xdZhang/OpenUsdLoader/debug"
	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

// Decoded is the decoded table content of one crate file that §4.6
// reconstruction works from (§6 EXTERNAL INTERFACES). Field values are
// not decoded up front: DecodeFieldValue reads each one from Source on
// demand.
type Decoded struct {
	Tokens          []string
	Strings         []uint32
	Fields          []Field
	FieldSetIndices []uint32
	Paths           []sdfpath.Path
	ElementPaths    []sdfpath.Path
	Specs           []Spec

	Source Source
	Config *Config

	// MemoryUsed estimates the decoder's own allocations, monotonically
	// non-decreasing across the section decodes (§8 universal invariant).
	MemoryUsed uint64
}

// Decode runs the full bootstrap->TOC->section pipeline (§4.5, §6).
// TOKENS decodes first; STRINGS and FIELDS then decode concurrently on
// a worker pool sized by cfg.NumThreads (§5); FIELDSETS, PATHS and
// SPECS run after the pool drains.
func Decode(src Source, cfg *Config) (*Decoded, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	boot, err := readBootstrap(src)
	if err != nil {
		return nil, err
	}
	sections, unknown, err := readTOC(src, boot.TOCOffset)
	if err != nil {
		return nil, err
	}
	for _, name := range unknown {
		debug.Logf(debug.Crate(), "crate: skipping unknown section %q", name)
	}

	tokensSec, ok := findSection(sections, SectionTokens)
	if !ok {
		return nil, fmt.Errorf("crate: missing %s section: %w", SectionTokens, ErrStructural)
	}

	tokens, err := decodeTokens(src, tokensSec)
	if err != nil {
		return nil, err
	}
	debug.Logf(debug.Crate(), "crate: decoded %d tokens", len(tokens))

	var strs []uint32
	var fields []Field
	var fieldSets []uint32
	var fieldsErr, fieldSetsErr, stringsErr error

	p := pool.New().WithMaxGoroutines(cfg.resolveThreads(runtime.GOMAXPROCS(0)))
	if sec, ok := findSection(sections, SectionStrings); ok {
		p.Go(func() {
			strs, stringsErr = decodeStrings(src, sec, len(tokens))
		})
	}
	if sec, ok := findSection(sections, SectionFields); ok {
		p.Go(func() {
			fields, fieldsErr = decodeFields(src, sec, len(tokens), cfg)
		})
	}
	p.Wait()
	if stringsErr != nil {
		return nil, stringsErr
	}
	if fieldsErr != nil {
		return nil, fieldsErr
	}

	if sec, ok := findSection(sections, SectionFieldSets); ok {
		fieldSets, fieldSetsErr = decodeFieldSets(src, sec, len(fields), cfg)
		if fieldSetsErr != nil {
			return nil, fieldSetsErr
		}
	}
	debug.Logf(debug.Crate(), "crate: decoded %d fields, %d fieldset entries", len(fields), len(fieldSets))

	pathsSec, ok := findSection(sections, SectionPaths)
	if !ok {
		return nil, fmt.Errorf("crate: missing %s section: %w", SectionPaths, ErrStructural)
	}
	paths, elemPaths, err := decodePaths(src, pathsSec, tokens, cfg)
	if err != nil {
		return nil, err
	}
	debug.Logf(debug.Crate(), "crate: decoded %d paths", len(paths))

	specsSec, ok := findSection(sections, SectionSpecs)
	if !ok {
		return nil, fmt.Errorf("crate: missing %s section: %w", SectionSpecs, ErrStructural)
	}
	specs, err := decodeSpecs(src, specsSec, len(paths), cfg)
	if err != nil {
		return nil, err
	}
	debug.Logf(debug.Crate(), "crate: decoded %d specs", len(specs))

	mem := uint64(len(tokens))*32 +
		uint64(len(strs))*4 +
		uint64(len(fields))*fieldRecordSize +
		uint64(len(fieldSets))*4 +
		uint64(len(paths))*64 +
		uint64(len(specs))*specRecordSize

	return &Decoded{
		Tokens:          tokens,
		Strings:         strs,
		Fields:          fields,
		FieldSetIndices: fieldSets,
		Paths:           paths,
		ElementPaths:    elemPaths,
		Specs:           specs,
		Source:          src,
		Config:          cfg,
		MemoryUsed:      mem,
	}, nil
}

// FieldsFor returns the Field records belonging to spec's fieldset.
func (d *Decoded) FieldsFor(spec Spec) ([]Field, error) {
	idxs, err := fieldSetRange(d.FieldSetIndices, spec.FieldSetIndex)
	if err != nil {
		return nil, err
	}
	if uint32(len(idxs)) > d.Config.MaxFieldValuePairsPerSpec {
		return nil, fmt.Errorf("crate: spec has %d fields, exceeds MaxFieldValuePairsPerSpec: %w", len(idxs), ErrBounds)
	}
	out := make([]Field, len(idxs))
	for i, idx := range idxs {
		if int(idx) >= len(d.Fields) {
			return nil, fmt.Errorf("crate: fieldset field index %d out of range: %w", idx, ErrStructural)
		}
		out[i] = d.Fields[idx]
	}
	return out, nil
}

// FieldName resolves a field's token to its string name without decoding
// its value, used by callers that need to branch on the name before
// deciding how to decode the value (e.g. timeSamples blobs).
func (d *Decoded) FieldName(f Field) (string, error) {
	return resolveToken(d.Tokens, f.TokenIndex)
}

// DecodeFieldValue resolves one field to its name and decoded value.
func (d *Decoded) DecodeFieldValue(f Field) (string, value.Value, error) {
	name, err := resolveToken(d.Tokens, f.TokenIndex)
	if err != nil {
		return "", value.Value{}, err
	}
	v, err := DecodeValue(d.Source, f.Rep, d.Tokens, d.Paths, d.Config)
	if err != nil {
		return name, value.Value{}, err
	}
	return name, v, nil
}
