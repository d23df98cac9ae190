package value

import "github.com/Cindy-xdZhang/OpenUsdLoader/sdfpath"

// LayerOffset is the (offset, scale) pair attached to a composition arc
// (§3).
type LayerOffset struct {
	Offset float64
	Scale  float64
}

// Reference is a typed composition arc target: an external asset path
// and/or an internal prim path, with an optional layer offset (§3).
type Reference struct {
	AssetPath   string
	PrimPath    sdfpath.Path
	LayerOffset LayerOffset
	CustomData  map[string]Value
}

// Payload is structurally identical to Reference but composed lazily by
// a full composition engine (out of scope here; §1, §3).
type Payload struct {
	AssetPath   string
	PrimPath    sdfpath.Path
	LayerOffset LayerOffset
}
