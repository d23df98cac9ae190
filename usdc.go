// Package usdc is the library's single public entry point: Open and Read
// run the full bootstrap->TOC->section decode (package crate) followed by
// tree reconstruction (package reconstruct), returning a *prim.Stage and
// the warnings accumulated along the way (§6 EXTERNAL INTERFACES).
package usdc

import (
	"fmt"

	"github.com/Cindy-xdZhang/OpenUsdLoader/crate"
	"github.com/Cindy-xdZhang/OpenUsdLoader/prim"
	"github.com/Cindy-xdZhang/OpenUsdLoader/reconstruct"
)

// Result is the Output of §6: a Stage plus the warnings accumulated for
// every subtree skipped as Unsupported rather than treated as fatal.
type Result struct {
	Stage    *prim.Stage
	Warnings []string
}

// Open reads a crate file at path using crate.OpenFile, decodes it, and
// reconstructs its Stage. baseDir is recorded for later asset-path
// resolution; the core itself never opens those assets (§6 "Input").
func Open(path, baseDir string, cfg *crate.Config) (result Result, err error) {
	src, err := crate.OpenFile(path)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()
	return Read(src, baseDir, cfg)
}

// Read decodes src (any random-access byte stream) and reconstructs its
// Stage. A panic surfacing from anywhere in the crate/reconstruct
// pipeline is caught here and turned into an error: no panic propagates
// across the library boundary (§7).
func Read(src crate.Source, baseDir string, cfg *crate.Config) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("usdc: internal error: %v", r)
			result = Result{}
		}
	}()

	if cfg == nil {
		cfg = crate.DefaultConfig()
	}
	decoded, err := crate.Decode(src, cfg)
	if err != nil {
		return Result{}, err
	}

	stage, warnings, err := reconstruct.Reconstruct(decoded)
	if err != nil {
		return Result{}, err
	}
	stage.BaseDir = baseDir
	return Result{Stage: stage, Warnings: warnings}, nil
}
