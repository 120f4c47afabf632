package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Liz4rd04/wifi-sort-tool/internal/kismet"
)

func runMerge(args []string) {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	output := fs.String("output", "merged.kismet", "output capture file")
	verbose := fs.Bool("v", false, "show per-file detail")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	inputs := existingInputs(fs.Args(), os.Stderr)
	if len(inputs) < 1 {
		fmt.Fprintln(os.Stderr, "error: need at least 1 input capture file")
		fs.Usage()
		os.Exit(1)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	stats, err := kismet.Merge(context.Background(), inputs, *output, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Merged %d files: %d entries -> %d unique devices\n",
		stats.FilesRead, stats.TotalEntries, stats.UniqueDevices)
	fmt.Printf("Created %s\n", *output)
}

// existingInputs filters the input list to files that exist, warning on each
// skip so one bad path does not abort a long multi-file merge.
func existingInputs(args []string, warnings io.Writer) []string {
	var inputs []string
	for _, arg := range args {
		if _, err := os.Stat(arg); err != nil {
			fmt.Fprintf(warnings, "Warning: %q not found, skipping\n", arg)
			continue
		}
		inputs = append(inputs, arg)
	}
	return inputs
}
