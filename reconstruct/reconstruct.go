// Package reconstruct implements §4.6: walking a decoded Crate file's
// Spec/Path/Field tables into a prim.Stage tree of typed Prims and
// Properties.
package reconstruct

import (
	"errors"
	"fmt"

	"github.com/Cindy-xdZhang/OpenUsdLoader/attr"
	"github.com/Cindy-xdZhang/OpenUsdLoader/crate"
	"github.com/Cindy-xdZhang/OpenUsdLoader/listop"
	"github.com/Cindy-xdZhang/OpenUsdLoader/prim"
	"github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"
	"github.com/Cindy-xdZhang/OpenUsdLoader/value"
)

// ownerPrimPath strips p's prop_part, returning the path of the Prim
// that owns the property p names (distinct from ParentPrim, which
// climbs one level further).
func ownerPrimPath(p sdfpath.Path) sdfpath.Path {
	return sdfpath.New(p.PrimPart(), "")
}

// Reconstruct walks d's Spec table into a Stage (§4.6). warnings
// collects every subtree skipped for an ErrUnsupported reason (Class
// and Over prims, variant machinery, relational-attribute specs);
// these are not fatal. A returned error is ErrStructural, ErrBounds,
// ErrType, or ErrSemantic (§7): the read is aborted. An ErrUnsupported
// raised while decoding a Prim's or the PseudoRoot's own field values
// is also returned as an error.
func Reconstruct(d *crate.Decoded) (*prim.Stage, []string, error) {
	seen := make(map[uint32]bool, len(d.Specs))
	primChildren := make(map[string][]int)
	propChildren := make(map[string][]int)
	pseudoRootIdx := -1

	for i, spec := range d.Specs {
		if seen[spec.PathIndex] {
			return nil, nil, fmt.Errorf("crate: duplicate path index %d across SPECS: %w", spec.PathIndex, crate.ErrSemantic)
		}
		seen[spec.PathIndex] = true
		if int(spec.PathIndex) >= len(d.Paths) {
			return nil, nil, fmt.Errorf("crate: spec %d path index %d out of range: %w", i, spec.PathIndex, crate.ErrStructural)
		}
		path := d.Paths[spec.PathIndex]
		switch spec.Type {
		case crate.SpecTypePseudoRoot:
			pseudoRootIdx = i
		case crate.SpecTypePrim:
			parent := path.ParentPrim().String()
			primChildren[parent] = append(primChildren[parent], i)
		case crate.SpecTypeAttribute, crate.SpecTypeRelationship:
			owner := ownerPrimPath(path).String()
			propChildren[owner] = append(propChildren[owner], i)
		case crate.SpecTypeConnection:
			owner := ownerPrimPath(path).String()
			primChildren[owner] = append(primChildren[owner], i)
		default:
			parent := path.ParentPrim().String()
			primChildren[parent] = append(primChildren[parent], i)
		}
	}
	if pseudoRootIdx < 0 {
		return nil, nil, fmt.Errorf("crate: no PseudoRoot spec: %w", crate.ErrStructural)
	}

	stage := prim.NewStage()
	metas, err := parseStageMetas(d, d.Specs[pseudoRootIdx])
	if err != nil {
		return nil, nil, err
	}
	stage.Metas = metas

	w := &walker{d: d, primChildren: primChildren, propChildren: propChildren}
	rootPath := d.Paths[d.Specs[pseudoRootIdx].PathIndex].String()
	for _, specIdx := range primChildren[rootPath] {
		if d.Specs[specIdx].Type != crate.SpecTypePrim {
			w.warnf("skipping %s spec at %s: not a prim", d.Specs[specIdx].Type, d.Paths[d.Specs[specIdx].PathIndex].String())
			continue
		}
		child, err := w.buildPrim(specIdx, 1)
		if err != nil {
			return nil, nil, err
		}
		if child != nil {
			stage.RootPrims = append(stage.RootPrims, child)
		}
	}
	return stage, w.warnings, nil
}

type walker struct {
	d            *crate.Decoded
	primChildren map[string][]int
	propChildren map[string][]int
	warnings     []string
}

func (w *walker) warnf(format string, args ...any) {
	w.warnings = append(w.warnings, fmt.Sprintf(format, args...))
}

// buildPrim recurses over one Prim spec's subtree. A nil, nil return
// means the subtree was deliberately skipped (Class/Over) and should
// not be linked into its parent.
func (w *walker) buildPrim(specIdx int, depth uint32) (*prim.Prim, error) {
	if depth > w.d.Config.MaxPrimNestLevel {
		return nil, fmt.Errorf("crate: prim nest level %d exceeds MaxPrimNestLevel: %w", depth, crate.ErrBounds)
	}
	spec := w.d.Specs[specIdx]
	path := w.d.Paths[spec.PathIndex]

	typeName, specifier, meta, err := parsePrimFields(w, spec, path)
	if err != nil {
		return nil, err
	}
	if specifier == prim.SpecifierOver || specifier == prim.SpecifierClass {
		w.warnf("skipping %s prim at %s: composition flattening is out of scope", specifier, path.String())
		return nil, nil
	}

	p := prim.NewPrim(path)
	p.Specifier = specifier
	p.TypeName = typeName
	p.Meta = meta
	p.Body = value.Make(value.SchemaTypeID(typeName), typeName)

	for _, propIdx := range w.propChildren[path.String()] {
		propSpec := w.d.Specs[propIdx]
		propPath := w.d.Paths[propSpec.PathIndex]
		prop, err := parsePropertySpec(w.d, propSpec, propPath.Element())
		if err != nil {
			if !errors.Is(err, crate.ErrUnsupported) {
				return nil, err
			}
			w.warnf("skipping property %s: %v", propPath.String(), err)
			continue
		}
		p.Properties.Set(propPath.Element(), prop)
	}

	for _, childIdx := range w.primChildren[path.String()] {
		childSpec := w.d.Specs[childIdx]
		switch childSpec.Type {
		case crate.SpecTypePrim:
			child, err := w.buildPrim(childIdx, depth+1)
			if err != nil {
				return nil, err
			}
			if child != nil {
				p.Children = append(p.Children, child)
			}
		case crate.SpecTypeVariantSet, crate.SpecTypeVariant:
			childPath := w.d.Paths[childSpec.PathIndex]
			w.warnf("skipping variant construct at %s: variant selection is recorded but never applied", childPath.String())
		case crate.SpecTypeConnection:
			childPath := w.d.Paths[childSpec.PathIndex]
			w.warnf("skipping relational-attribute spec at %s: unsupported path syntax", childPath.String())
		default:
			childPath := w.d.Paths[childSpec.PathIndex]
			w.warnf("skipping spec of unrecognized type %s at %s", childSpec.Type, childPath.String())
		}
	}
	return p, nil
}

// parsePrimFields decodes a Prim spec's fieldset into its typeName,
// Specifier, and PrimMeta (§4.6 steps 3-5).
func parsePrimFields(w *walker, spec crate.Spec, path sdfpath.Path) (string, prim.Specifier, prim.PrimMeta, error) {
	d := w.d
	fields, err := d.FieldsFor(spec)
	if err != nil {
		return "", prim.SpecifierDef, prim.PrimMeta{}, err
	}

	var typeName string
	specifier := prim.SpecifierDef
	hasSpecifier := false
	meta := prim.PrimMeta{}

	for _, f := range fields {
		name, val, err := d.DecodeFieldValue(f)
		if err != nil {
			return "", prim.SpecifierDef, prim.PrimMeta{}, err
		}
		switch name {
		case "typeName":
			typeName, _ = value.As[string](val)
		case "specifier":
			s, _ := value.As[uint32](val)
			specifier = prim.Specifier(s)
			hasSpecifier = true
		case "active":
			meta.Active, _ = value.As[bool](val)
			meta.ActiveAuthored = true
		case "hidden":
			meta.Hidden, _ = value.As[bool](val)
			meta.HiddenAuthored = true
		case "kind":
			k, _ := value.As[string](val)
			meta.Kind = prim.KindFromString(k)
			meta.KindAuthored = true
		case "assetInfo":
			meta.AssetInfo, _ = value.As[map[string]value.Value](val)
		case "customData":
			meta.CustomData, _ = value.As[map[string]value.Value](val)
		case "documentation", "doc":
			meta.Doc, _ = value.As[string](val)
		case "comment":
			meta.Comment, _ = value.As[string](val)
		case "displayName":
			meta.DisplayName, _ = value.As[string](val)
		case "sceneName":
			meta.SceneName, _ = value.As[string](val)
		case "apiSchemas":
			op, ok := value.As[listop.ListOp[string]](val)
			if !ok {
				return "", prim.SpecifierDef, prim.PrimMeta{}, fmt.Errorf("crate: apiSchemas field has wrong payload type: %w", crate.ErrType)
			}
			qualifier, _, err := op.SingleQualifier()
			if err != nil {
				return "", prim.SpecifierDef, prim.PrimMeta{}, fmt.Errorf("crate: apiSchemas at %s: %w: %v", path.String(), crate.ErrSemantic, err)
			}
			if qualifier == "ordered" {
				return "", prim.SpecifierDef, prim.PrimMeta{}, fmt.Errorf("crate: apiSchemas at %s: Ordered listOp bucket is not implemented: %w", path.String(), crate.ErrSemantic)
			}
			meta.SetAPISchemas(op)
		case "references":
			meta.Arcs.References, _ = value.As[listop.ListOp[value.Reference]](val)
		case "payload":
			meta.Arcs.Payload, _ = value.As[listop.ListOp[value.Payload]](val)
		case "inheritPaths":
			meta.Arcs.Inherits, _ = value.As[listop.ListOp[sdfpath.Path]](val)
		case "specializes":
			meta.Arcs.Specializes, _ = value.As[listop.ListOp[sdfpath.Path]](val)
		case "variantSetNames":
			meta.Arcs.VariantSets, _ = value.As[listop.ListOp[string]](val)
		case "variantSelection":
			dict, _ := value.As[map[string]value.Value](val)
			if len(dict) > 0 {
				if meta.Variants == nil {
					meta.Variants = make(map[string]string, len(dict))
				}
				for k, v := range dict {
					s, _ := value.As[string](v)
					meta.Variants[k] = s
				}
			}
		default:
			if meta.Generic == nil {
				meta.Generic = make(map[string]value.Value)
			}
			meta.Generic[name] = val
		}
	}
	if !hasSpecifier {
		return "", prim.SpecifierDef, prim.PrimMeta{}, fmt.Errorf("crate: prim at %s has no specifier: %w", path.String(), crate.ErrSemantic)
	}
	return typeName, specifier, meta, nil
}

// parseStageMetas decodes the PseudoRoot spec's fieldset into
// StageMetas (§4.6 step 2, §3 StageMetas).
func parseStageMetas(d *crate.Decoded, root crate.Spec) (prim.StageMetas, error) {
	fields, err := d.FieldsFor(root)
	if err != nil {
		return prim.StageMetas{}, err
	}
	m := prim.DefaultStageMetas()
	for _, f := range fields {
		name, val, err := d.DecodeFieldValue(f)
		if err != nil {
			return prim.StageMetas{}, err
		}
		switch name {
		case "upAxis":
			s, _ := value.As[string](val)
			m.UpAxis = prim.UpAxisFromString(s)
		case "metersPerUnit":
			m.MetersPerUnit, _ = value.As[float64](val)
		case "timeCodesPerSecond":
			m.TimeCodesPerSecond, _ = value.As[float64](val)
		case "startTimeCode":
			v, _ := value.As[float64](val)
			m.StartTimeCode = &v
		case "endTimeCode":
			v, _ := value.As[float64](val)
			m.EndTimeCode = &v
		case "defaultPrim":
			m.DefaultPrim, _ = value.As[string](val)
		case "customLayerData":
			m.CustomLayerData, _ = value.As[map[string]value.Value](val)
		case "documentation", "doc":
			m.Doc, _ = value.As[string](val)
		case "comment":
			m.Comment, _ = value.As[string](val)
		}
	}
	return m, nil
}

// parsePropertySpec decodes one Attribute or Relationship spec into a
// Property (§4.6 step 6, classification rules of §3): connectionPaths
// takes precedence over a scalar default, timeSamples over a scalar
// default, and a Relationship spec is always classified by its target
// count regardless of its fields.
func parsePropertySpec(d *crate.Decoded, spec crate.Spec, name string) (*attr.Property, error) {
	fields, err := d.FieldsFor(spec)
	if err != nil {
		return nil, err
	}

	var typeName string
	custom := false
	variability := attr.Varying
	var meta attr.AttrMeta
	var defaultVal value.Value
	hasDefault := false
	var connectionPaths []sdfpath.Path
	hasConnection := false
	var targetPaths []sdfpath.Path
	targetsQualifier := ""
	var timeSamplesField *crate.Field

	for i := range fields {
		f := fields[i]
		fname, err := d.FieldName(f)
		if err != nil {
			return nil, err
		}
		if fname == "timeSamples" {
			timeSamplesField = &fields[i]
			continue
		}
		_, val, err := d.DecodeFieldValue(f)
		if err != nil {
			return nil, err
		}
		switch fname {
		case "typeName":
			typeName, _ = value.As[string](val)
		case "custom":
			custom, _ = value.As[bool](val)
		case "variability":
			v, _ := value.As[uint32](val)
			variability = attr.Variability(v)
		case "default":
			defaultVal = val
			hasDefault = true
		case "connectionPaths":
			connectionPaths, _ = value.As[[]sdfpath.Path](val)
			hasConnection = len(connectionPaths) > 0
		case "targetPaths":
			targetPaths, _ = value.As[[]sdfpath.Path](val)
			targetsQualifier = "explicit"
		case "interpolation":
			meta.Interpolation, _ = value.As[string](val)
		case "elementSize":
			es, _ := value.As[uint32](val)
			if es > d.Config.MaxElementSize {
				return nil, fmt.Errorf("crate: property %s elementSize %d exceeds MaxElementSize: %w", name, es, crate.ErrBounds)
			}
			meta.ElementSize = es
		case "customData":
			meta.CustomData, _ = value.As[map[string]value.Value](val)
		case "documentation", "doc":
			meta.Doc, _ = value.As[string](val)
		case "comment":
			meta.Comment, _ = value.As[string](val)
		default:
			if meta.Generic == nil {
				meta.Generic = make(map[string]value.Value)
			}
			meta.Generic[fname] = val
		}
	}

	if spec.Type == crate.SpecTypeRelationship {
		rel := &attr.Relationship{TargetPaths: targetPaths, Qualifier: targetsQualifier}
		return attr.NewRelationshipProperty(name, rel, custom), nil
	}

	a := attr.NewAttribute(name, typeName)
	a.Variability = variability
	a.Meta = meta

	switch {
	case hasConnection:
		a.SetConnection(connectionPaths...)
		return attr.NewConnectionProperty(a, custom, "explicit"), nil
	case timeSamplesField != nil:
		raws, err := crate.DecodeTimeSamples(d.Source, timeSamplesField.Rep, d.Config)
		if err != nil {
			return nil, err
		}
		for _, raw := range raws {
			if raw.Rep.TypeID() == value.ValueBlock {
				a.SetBlockedSample(raw.Time)
				continue
			}
			v, err := crate.DecodeValue(d.Source, raw.Rep, d.Tokens, d.Paths, d.Config)
			if err != nil {
				return nil, err
			}
			if typeName != "" {
				value.UpcastNumeric(typeName, &v)
			}
			a.SetTimeSample(raw.Time, v)
		}
		return attr.NewAttributeProperty(a, custom), nil
	case hasDefault:
		if typeName != "" {
			value.UpcastNumeric(typeName, &defaultVal)
		}
		a.SetValue(defaultVal)
		return attr.NewAttributeProperty(a, custom), nil
	default:
		return &attr.Property{Name: name, Kind: attr.EmptyAttributeKind, Custom: custom, Attribute: a}, nil
	}
}
