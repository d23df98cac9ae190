package prim

import "github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"

// Stage owns the parsed scene graph's root Prim sequence and
// layer-level metadata (§3). A Stage never shares ownership with
// another Stage: each root Prim's subtree belongs exclusively to it.
type Stage struct {
	Metas     StageMetas
	RootPrims []*Prim

	// BaseDir is the directory asset paths in layer metadata resolve
	// against; the core never opens those assets itself (§6 "Input").
	BaseDir string
}

// NewStage returns an empty Stage with default StageMetas.
func NewStage() *Stage {
	return &Stage{Metas: DefaultStageMetas()}
}

// FindPrim walks RootPrims depth-first looking for a Prim whose Path
// equals path. It returns nil if none matches.
func (s *Stage) FindPrim(path sdfpath.Path) *Prim {
	target := path.String()
	var found *Prim
	var walk func(p *Prim)
	walk = func(p *Prim) {
		if found != nil {
			return
		}
		if p.Path.String() == target {
			found = p
			return
		}
		for _, c := range p.Children {
			walk(c)
			if found != nil {
				return
			}
		}
	}
	for _, root := range s.RootPrims {
		walk(root)
		if found != nil {
			break
		}
	}
	return found
}
