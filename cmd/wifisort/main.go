// wifisort extracts WiFi device records from Kismet capture databases and
// sorts them into a categorized spreadsheet report.
package main

import (
	"fmt"
	"os"

	"github.com/Liz4rd04/wifi-sort-tool/internal/version"
)

func usage() {
	fmt.Fprintf(os.Stderr, `wifisort - sort Kismet captures into categorized spreadsheet reports

Usage:
  wifisort sort <input.kismet> --client patterns.txt [flags]
  wifisort merge <in1.kismet> [in2.kismet ...] -output merged.kismet
  wifisort version

Run "wifisort <command> -h" for command flags.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "sort":
		runSort(os.Args[2:])
	case "merge":
		runMerge(os.Args[2:])
	case "version", "--version", "-version":
		fmt.Println(version.Info())
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}
