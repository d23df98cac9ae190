// Package debug provides environment-gated diagnostic printing for the
// crate decoder and reconstruction pipeline, mirroring the teacher's
// boolean-env-var debug switches rather than a structured logger.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Crate        bool
	Reconstruct  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Crate = boolEnv("USDLOADER_DEBUG_CRATE")
	d.Reconstruct = boolEnv("USDLOADER_DEBUG_RECONSTRUCT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Crate reports whether USDLOADER_DEBUG_CRATE is set.
func Crate() bool {
	return d.Crate
}

// Reconstruct reports whether USDLOADER_DEBUG_RECONSTRUCT is set.
func Reconstruct() bool {
	return d.Reconstruct
}

// Logf writes a gated diagnostic line to stderr.
func Logf(on bool, format string, args ...any) {
	if !on {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
