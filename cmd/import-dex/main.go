// Package main imports reference CSV tables into the dex YAML files.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cory-johannsen/monbattle/internal/importer"
	"github.com/cory-johannsen/monbattle/internal/importer/veekun"
)

func main() {
	format := flag.String("format", "veekun", "source format: veekun")
	sourceDir := flag.String("source", "", "path to the source CSV directory")
	outputDir := flag.String("output", "data", "directory to write the dex YAML files to")
	overlayDir := flag.String("overlay", "", "optional dex directory whose move effects are carried over")
	flag.Parse()

	if *sourceDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-dex -source <dir> [-format veekun] [-output <dir>] [-overlay <dir>]")
		os.Exit(1)
	}

	var src importer.Source
	switch *format {
	case "veekun":
		src = veekun.NewSource()
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (supported: veekun)\n", *format)
		os.Exit(1)
	}

	start := time.Now()
	imp := importer.New(src)
	if err := imp.Run(*sourceDir, *outputDir, *overlayDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("import complete in %s\n", time.Since(start).Round(time.Millisecond))
}
