// Package sdfpath implements the SdfPath-like immutable path type of
// spec §3/§4.2: a (prim_part, prop_part, element) triple with structural
// equality, used to address Prims, Properties, and composition targets.
package sdfpath

import (
	"errors"
	"strings"
)

// PathType classifies the shape of a Path beyond its three string parts.
type PathType int

const (
	RootPath PathType = iota
	PrimPath
	PrimPropertyPath
	RelationalAttributePath
	MapperArgPath
	TargetPath
	MapperPath
	PrimVariantSelectionPath
	ExpressionPath
)

func (t PathType) String() string {
	switch t {
	case RootPath:
		return "Root"
	case PrimPath:
		return "Prim"
	case PrimPropertyPath:
		return "PrimProperty"
	case RelationalAttributePath:
		return "RelationalAttribute"
	case MapperArgPath:
		return "MapperArg"
	case TargetPath:
		return "Target"
	case MapperPath:
		return "Mapper"
	case PrimVariantSelectionPath:
		return "PrimVariantSelection"
	case ExpressionPath:
		return "Expression"
	default:
		return "Unknown"
	}
}

// ErrUnsupported is returned for path syntax the reader deliberately does
// not parse: relational-attribute brackets, variant selectors, and "../"
// (§4.2 "Non-supported").
var ErrUnsupported = errors.New("sdfpath: unsupported path syntax")

// Path is the immutable (prim_part, prop_part, element) triple of §3.
// The zero Path is invalid (not the root path); use Root() for "/".
type Path struct {
	primPart string
	propPart string
	element  string
	kind     PathType
	valid    bool
}

// Root returns the canonical absolute root path "/".
func Root() Path {
	return Path{primPart: "/", kind: RootPath, valid: true}
}

// New builds a Path directly from its prim and prop parts. Either may be
// empty. element is inferred as the last component of whichever part is
// non-empty.
func New(primPart, propPart string) Path {
	p := Path{primPart: normalizePrimPart(primPart), propPart: propPart, valid: true}
	p.element = lastElement(p)
	p.kind = classify(p)
	return p
}

func normalizePrimPart(s string) string {
	if s == "/" || s == "" {
		return s
	}
	return strings.TrimSuffix(s, "/")
}

func lastElement(p Path) string {
	if p.propPart != "" {
		return p.propPart
	}
	if p.primPart == "" || p.primPart == "/" {
		return ""
	}
	i := strings.LastIndexByte(p.primPart, '/')
	return p.primPart[i+1:]
}

func classify(p Path) PathType {
	switch {
	case p.primPart == "/" && p.propPart == "":
		return RootPath
	case p.propPart != "":
		return PrimPropertyPath
	default:
		return PrimPath
	}
}

// IsValid reports whether p denotes a real path (vs. the zero Path).
func (p Path) IsValid() bool {
	return p.valid
}

// IsAbsolute reports whether p's prim part is rooted at "/".
func (p Path) IsAbsolute() bool {
	return strings.HasPrefix(p.primPart, "/")
}

// IsProperty reports whether p denotes a property (prop_part non-empty,
// per the §3 invariant).
func (p Path) IsProperty() bool {
	return p.propPart != ""
}

// PrimPart returns the prim-path portion of p.
func (p Path) PrimPart() string { return p.primPart }

// PropPart returns the property-path portion of p.
func (p Path) PropPart() string { return p.propPart }

// Element returns the leaf element name of p.
func (p Path) Element() string { return p.element }

// Type returns p's classification.
func (p Path) Type() PathType { return p.kind }

// String renders p in SdfPath textual form.
func (p Path) String() string {
	if !p.valid {
		return ""
	}
	if p.propPart == "" {
		return p.primPart
	}
	return p.primPart + "." + p.propPart
}

// AppendElement returns a new prim path with elem appended as a child.
// It requires p's prop_part to be empty (§4.2).
func (p Path) AppendElement(elem string) (Path, error) {
	if p.propPart != "" {
		return Path{}, errors.New("sdfpath: cannot append element to a property path")
	}
	prim := p.primPart
	switch {
	case prim == "":
		prim = elem
	case prim == "/":
		prim = "/" + elem
	default:
		prim = prim + "/" + elem
	}
	np := Path{primPart: prim, valid: true}
	np.element = elem
	np.kind = classify(np)
	return np, nil
}

// AppendProperty returns a new property path naming elem on p. It
// requires p's prop_part to be empty (§4.2).
func (p Path) AppendProperty(elem string) (Path, error) {
	if p.propPart != "" {
		return Path{}, errors.New("sdfpath: cannot append property to a property path")
	}
	np := Path{primPart: p.primPart, propPart: elem, valid: true}
	np.element = elem
	np.kind = classify(np)
	return np, nil
}

// SplitAtRoot peels the first element off p's prim part:
//
//	/A/B -> (/A, B)
//	/A   -> (/A, "")
//	A    -> ("", A)
//	.x   -> ("", .x)
func (p Path) SplitAtRoot() (Path, string) {
	if p.propPart != "" && p.primPart == "" {
		return Path{}, p.propPart
	}
	prim := p.primPart
	if prim == "" {
		return Path{}, ""
	}
	rest := prim
	abs := strings.HasPrefix(rest, "/")
	if abs {
		rest = rest[1:]
	}
	if rest == "" {
		return Path{}, ""
	}
	i := strings.IndexByte(rest, '/')
	if i < 0 {
		if abs {
			return New("/"+rest, ""), ""
		}
		return Path{}, rest
	}
	first := rest[:i]
	remainder := rest[i+1:]
	if abs {
		return New("/"+first, ""), remainder
	}
	return New(first, ""), remainder
}

// ParentPrim returns p's parent prim path (§4.2). The parent of a
// single-element absolute path such as /A is the root; the root itself
// and a single-element relative path have no parent and yield the
// invalid Path.
func (p Path) ParentPrim() Path {
	prim := p.primPart
	if prim == "" || prim == "/" {
		return Path{}
	}
	i := strings.LastIndexByte(prim, '/')
	if i <= 0 {
		if i == 0 {
			return Root()
		}
		return Path{}
	}
	return New(prim[:i], "")
}

// MakeRelative returns p expressed relative to anchor by stripping
// anchor's prim-part prefix. If p is not inside anchor's subtree, p is
// returned unchanged.
func (p Path) MakeRelative(anchor Path) Path {
	if !strings.HasPrefix(p.primPart, anchor.primPart) {
		return p
	}
	rest := strings.TrimPrefix(p.primPart, anchor.primPart)
	if rest != "" && anchor.primPart != "/" && !strings.HasPrefix(rest, "/") {
		return p
	}
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		rest = "."
	}
	return New(rest, p.propPart)
}

// Equal reports structural equality. Path is comparable (all fields are
// plain strings/ints/bools) so == works directly; Equal exists for
// readability at call sites.
func (p Path) Equal(other Path) bool {
	return p == other
}

// Parse parses SdfPath textual syntax into a Path. It rejects the syntax
// this reader deliberately does not support: relational-attribute
// brackets "[...]", variant selectors "{...}", and "../" (§4.2).
func Parse(s string) (Path, error) {
	if strings.Contains(s, "[") || strings.Contains(s, "]") ||
		strings.Contains(s, "{") || strings.Contains(s, "}") ||
		strings.Contains(s, "../") {
		return Path{}, ErrUnsupported
	}
	if s == "" {
		return Path{}, nil
	}
	primAndProp := s
	propPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 && strings.HasPrefix(s, "/") {
		primAndProp = s[:i]
		propPart = s[i+1:]
	} else if i >= 0 && !strings.HasPrefix(s, "/") {
		primAndProp = s[:i]
		propPart = s[i+1:]
	}
	return New(primAndProp, propPart), nil
}
