package crate

// Config holds the caller-tunable knobs of §6/§4.5. Resource caps are
// enforced before any allocation sized by file data.
type Config struct {
	// NumThreads bounds the decoder's worker pool for independent table
	// decoding (tokens, strings, value blobs). -1 means auto (runtime
	// GOMAXPROCS), clamped to [1, 1024]; constrained targets may force 1.
	NumThreads int

	MaxFieldValuePairsPerSpec uint32
	MaxElementSize            uint32
	MaxPrimNestLevel          uint32
	MaxArrayElements          uint64
}

// DefaultConfig matches the defaults documented in §6.
func DefaultConfig() *Config {
	return &Config{
		NumThreads:                -1,
		MaxFieldValuePairsPerSpec: 65536,
		MaxElementSize:            65536,
		MaxPrimNestLevel:          1024,
		MaxArrayElements:          1 << 32,
	}
}

// resolveThreads clamps NumThreads into [1, 1024], resolving -1 to n.
func (c *Config) resolveThreads(auto int) int {
	n := c.NumThreads
	if n < 0 {
		n = auto
	}
	if n < 1 {
		n = 1
	}
	if n > 1024 {
		n = 1024
	}
	return n
}
