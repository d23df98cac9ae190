// Package prim implements the scene-graph data model of spec §3/§4:
// PrimMeta/StageMetas, the Prim tree, and the Stage that owns it.
package prim

import (
	"github.com/Cindy-xdZhang/OpenUsdLoader/listop"
	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

// Kind is the authored Prim classification (§3 GLOSSARY).
type Kind int

const (
	UnknownKind Kind = iota
	ModelKind
	GroupKind
	AssemblyKind
	ComponentKind
	SubcomponentKind
	SceneLibraryKind
)

func (k Kind) String() string {
	switch k {
	case ModelKind:
		return "model"
	case GroupKind:
		return "group"
	case AssemblyKind:
		return "assembly"
	case ComponentKind:
		return "component"
	case SubcomponentKind:
		return "subcomponent"
	case SceneLibraryKind:
		return "sceneLibrary"
	default:
		return ""
	}
}

// KindFromString resolves an authored kind token, defaulting to
// UnknownKind for unrecognized values.
func KindFromString(s string) Kind {
	switch s {
	case "model":
		return ModelKind
	case "group":
		return GroupKind
	case "assembly":
		return AssemblyKind
	case "component":
		return ComponentKind
	case "subcomponent":
		return SubcomponentKind
	case "sceneLibrary":
		return SceneLibraryKind
	default:
		return UnknownKind
	}
}

// CompositionArcs groups the composition metadata §3 attaches to a Prim.
// The reader records these arcs but never flattens them (spec.md §1
// Non-goals).
type CompositionArcs struct {
	References  listop.ListOp[value.Reference]
	Payload     listop.ListOp[value.Payload]
	Inherits    listop.ListOp[sdfpath.Path]
	Specializes listop.ListOp[sdfpath.Path]
	VariantSets listop.ListOp[string]
}

// PrimMeta is the optional metadata bag attached to a Prim (§3).
type PrimMeta struct {
	ActiveAuthored bool
	Active         bool
	HiddenAuthored bool
	Hidden         bool

	KindAuthored bool
	Kind         Kind

	AssetInfo  map[string]value.Value
	CustomData map[string]value.Value

	Doc     string
	Comment string

	apiSchemas listop.ListOp[string]

	Arcs CompositionArcs

	// Variants maps a variant set name to the selected variant name.
	Variants map[string]string

	SceneName   string
	DisplayName string

	Generic     map[string]value.Value
	FreeStrings []string
}

// SetAPISchemas installs the decoded apiSchemas ListOp. Callers must
// have already validated the single-qualifier invariant (§4.6 step 5)
// before calling this.
func (m *PrimMeta) SetAPISchemas(op listop.ListOp[string]) {
	m.apiSchemas = op
}

// APISchemas returns the resolved apiSchemas set. ok is false when no
// bucket was populated at all (§8 boundary: "not an empty list").
func (m *PrimMeta) APISchemas() ([]string, bool) {
	if m.apiSchemas.IsEmpty() {
		return nil, false
	}
	_, vals, err := m.apiSchemas.SingleQualifier()
	if err != nil {
		return nil, false
	}
	return vals, true
}

// UpAxis is the stage's up-axis convention (§3 StageMetas).
type UpAxis int

const (
	UpAxisY UpAxis = iota
	UpAxisX
	UpAxisZ
)

func (a UpAxis) String() string {
	switch a {
	case UpAxisX:
		return "X"
	case UpAxisZ:
		return "Z"
	default:
		return "Y"
	}
}

func UpAxisFromString(s string) UpAxis {
	switch s {
	case "X":
		return UpAxisX
	case "Z":
		return UpAxisZ
	default:
		return UpAxisY
	}
}

// StageMetas is the layer-level metadata of §3.
type StageMetas struct {
	UpAxis             UpAxis
	MetersPerUnit      float64
	TimeCodesPerSecond float64
	StartTimeCode      *float64
	EndTimeCode        *float64
	DefaultPrim        string
	CustomLayerData    map[string]value.Value
	Doc                string
	Comment            string
}

// DefaultStageMetas matches the reference implementation's conventional
// defaults for an authored-nothing layer.
func DefaultStageMetas() StageMetas {
	return StageMetas{
		UpAxis:             UpAxisY,
		MetersPerUnit:      0.01,
		TimeCodesPerSecond: 24.0,
	}
}
