package attr

import "github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"

// Kind discriminates the five Property shapes of §3.
type Kind int

const (
	EmptyAttributeKind Kind = iota
	AttributeKind
	RelationshipKind
	NoTargetsRelationshipKind
	ConnectionKind
)

func (k Kind) String() string {
	switch k {
	case AttributeKind:
		return "Attribute"
	case RelationshipKind:
		return "Relationship"
	case NoTargetsRelationshipKind:
		return "NoTargetsRelationship"
	case ConnectionKind:
		return "Connection"
	default:
		return "EmptyAttribute"
	}
}

// Relationship is a typeless property carrying target paths and a
// list-edit qualifier (§3, GLOSSARY).
type Relationship struct {
	TargetPaths []sdfpath.Path
	// Qualifier names which ListOp bucket produced TargetPaths:
	// "explicit", "added", "prepended", "appended", "deleted", "ordered",
	// or "" when untouched.
	Qualifier string
}

// Property is a named slot on a Prim: an attribute, a relationship, or
// a connection, plus the custom flag and (for Relationship/Connection)
// a list-edit qualifier (§3).
type Property struct {
	Name         string
	Kind         Kind
	Custom       bool
	Qualifier    string
	Attribute    *Attribute
	Relationship *Relationship
}

// NewEmptyAttribute returns a Property declaring a typed attribute with
// no authored value (typeName known, nothing else).
func NewEmptyAttribute(name, typeName string, custom bool) *Property {
	return &Property{Name: name, Kind: EmptyAttributeKind, Custom: custom, Attribute: NewAttribute(name, typeName)}
}

// NewAttributeProperty wraps an already-built Attribute.
func NewAttributeProperty(a *Attribute, custom bool) *Property {
	return &Property{Name: a.Name, Kind: AttributeKind, Custom: custom, Attribute: a}
}

// NewConnectionProperty wraps an Attribute whose ConnectionTargets are
// populated, tagging the Property as a Connection (§3 GLOSSARY).
func NewConnectionProperty(a *Attribute, custom bool, qualifier string) *Property {
	return &Property{Name: a.Name, Kind: ConnectionKind, Custom: custom, Qualifier: qualifier, Attribute: a}
}

// NewRelationshipProperty wraps a Relationship, tagging it
// NoTargetsRelationshipKind when it has no target paths.
func NewRelationshipProperty(name string, rel *Relationship, custom bool) *Property {
	kind := RelationshipKind
	if len(rel.TargetPaths) == 0 {
		kind = NoTargetsRelationshipKind
	}
	return &Property{Name: name, Kind: kind, Custom: custom, Qualifier: rel.Qualifier, Relationship: rel}
}
