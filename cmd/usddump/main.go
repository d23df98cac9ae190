package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file.usdc [file.usdc ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	baseDir := flag.String("basedir", ".", "base directory for asset path resolution")
	threads := flag.Int("threads", -1, "decoder worker pool size (-1 = auto)")
	warn := flag.Bool("warn", true, "print warnings to stderr")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var failed bool
	for i, file := range args {
		if err := dumpFile(file, *baseDir, *threads, *warn); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			failed = true
			continue
		}
		if i < len(args)-1 {
			fmt.Println("---")
		}
	}
	if failed {
		os.Exit(1)
	}
}
