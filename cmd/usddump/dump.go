package main

import (
	"fmt"
	"os"

	usdc "github.com/Cindy-xdZhang/OpenUsdLoader"
	"github.com/Cindy-xdZhang/OpenUsdLoader/attr"
	"github.com/Cindy-xdZhang/OpenUsdLoader/crate"
	"github.com/Cindy-xdZhang/OpenUsdLoader/prim"
)

func dumpFile(file, baseDir string, threads int, warn bool) error {
	cfg := crate.DefaultConfig()
	cfg.NumThreads = threads

	result, err := usdc.Open(file, baseDir, cfg)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", file, err)
	}

	if warn {
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}

	printStage(os.Stdout, result.Stage)
	return nil
}

func printStage(w *os.File, s *prim.Stage) {
	fmt.Fprintf(w, "#usda 1.0\n(\n")
	fmt.Fprintf(w, "    upAxis = %q\n", s.Metas.UpAxis.String())
	fmt.Fprintf(w, "    metersPerUnit = %v\n", s.Metas.MetersPerUnit)
	if s.Metas.DefaultPrim != "" {
		fmt.Fprintf(w, "    defaultPrim = %q\n", s.Metas.DefaultPrim)
	}
	fmt.Fprintf(w, ")\n\n")
	for _, root := range s.RootPrims {
		printPrim(w, root, 0)
	}
}

func printPrim(w *os.File, p *prim.Prim, depth int) {
	indent := indentOf(depth)
	fmt.Fprintf(w, "%s%s %s %q\n", indent, p.Specifier, typeNameOrGeneric(p), p.Name())
	fmt.Fprintf(w, "%s{\n", indent)
	for _, name := range p.Properties.Names() {
		prop, _ := p.Properties.Get(name)
		printProperty(w, prop, depth+1)
	}
	for _, c := range p.Children {
		printPrim(w, c, depth+1)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

func typeNameOrGeneric(p *prim.Prim) string {
	if p.TypeName == "" {
		return "def"
	}
	return p.TypeName
}

func printProperty(w *os.File, p *attr.Property, depth int) {
	indent := indentOf(depth)
	switch p.Kind {
	case attr.RelationshipKind, attr.NoTargetsRelationshipKind:
		fmt.Fprintf(w, "%srel %s = %v\n", indent, p.Name, p.Relationship.TargetPaths)
	case attr.ConnectionKind:
		fmt.Fprintf(w, "%s%s %s.connect = %v\n", indent, p.Attribute.TypeName, p.Name, p.Attribute.ConnectionTargets)
	default:
		printAttribute(w, p, depth)
	}
}

func printAttribute(w *os.File, p *attr.Property, depth int) {
	indent := indentOf(depth)
	a := p.Attribute
	if a == nil {
		fmt.Fprintf(w, "%s%s\n", indent, p.Name)
		return
	}
	if a.Blocked {
		fmt.Fprintf(w, "%s%s %s = None\n", indent, a.TypeName, a.Name)
		return
	}
	if v, ok := a.GetValue(); ok {
		fmt.Fprintf(w, "%s%s %s = %v\n", indent, a.TypeName, a.Name, v.TypeName())
		return
	}
	fmt.Fprintf(w, "%s%s %s\n", indent, a.TypeName, a.Name)
}

func indentOf(depth int) string {
	out := make([]byte, depth*4)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
