package prim

import (
	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

// Specifier is the Prim's def/over/class role (§3 GLOSSARY).
type Specifier int

const (
	SpecifierDef Specifier = iota
	SpecifierOver
	SpecifierClass
)

func (s Specifier) String() string {
	switch s {
	case SpecifierOver:
		return "over"
	case SpecifierClass:
		return "class"
	default:
		return "def"
	}
}

// Prim is a node in the Stage's tree: an element path, a typed body, a
// metadata bag, an ordered property map, and an ordered list of child
// Prims that it exclusively owns (§3 "Ownership").
type Prim struct {
	ElementPath sdfpath.Path
	Path        sdfpath.Path
	Specifier   Specifier
	TypeName    string
	Body        value.Value
	Meta        PrimMeta
	Properties  *PropertyMap
	Children    []*Prim

	// VariantProperties/VariantChildren stay nil: variant selection is
	// parsed into Meta but never applied (spec.md §9 open question,
	// DESIGN.md decision 2).
	VariantProperties map[string]*PropertyMap
	VariantChildren   map[string][]*Prim
}

// NewPrim returns an empty Prim at path with properties ready to fill.
func NewPrim(path sdfpath.Path) *Prim {
	return &Prim{
		Path:        path,
		ElementPath: sdfpath.New(path.Element(), ""),
		Properties:  NewPropertyMap(),
	}
}

// Name returns the Prim's leaf element name. The invariant
// "p.element_path.element_name == p.name" (§8) holds by construction:
// ElementPath is always built from the same element string as Path.
func (p *Prim) Name() string {
	return p.ElementPath.Element()
}
