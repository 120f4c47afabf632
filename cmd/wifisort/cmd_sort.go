package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Liz4rd04/wifi-sort-tool/internal/classify"
	"github.com/Liz4rd04/wifi-sort-tool/internal/config"
	"github.com/Liz4rd04/wifi-sort-tool/internal/kismet"
	"github.com/Liz4rd04/wifi-sort-tool/internal/pattern"
	"github.com/Liz4rd04/wifi-sort-tool/internal/report"
	"github.com/Liz4rd04/wifi-sort-tool/pkg/models"
)

func runSort(args []string) {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	output := fs.String("output", "", "output spreadsheet path (default: "+config.DefaultOutput+")")
	client := fs.String("client", "", "pattern file for client SSIDs (required)")
	exclude := fs.String("exclude", "", "pattern file for SSIDs to drop from the non-client sheet")
	verbose := fs.Bool("v", false, "show per-SSID detail")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "error: exactly one input capture file is required")
		fs.Usage()
		os.Exit(1)
	}
	input := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Set("output", *output)
	}
	if *client != "" {
		cfg.Set("patterns.client", *client)
	}
	if *exclude != "" {
		cfg.Set("patterns.exclude", *exclude)
	}
	if *verbose {
		cfg.Set("verbose", true)
	}

	logger := newLogger(cfg.Verbose())
	defer logger.Sync()

	if err := sortCapture(context.Background(), input, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// sortCapture runs the full pipeline: pattern loading, extraction,
// classification, and report rendering.
func sortCapture(ctx context.Context, input string, cfg *config.Config, logger *zap.Logger) error {
	if cfg.ClientPatterns() == "" {
		return fmt.Errorf("a client pattern file is required (--client)")
	}

	clientSet, err := pattern.LoadSet(cfg.ClientPatterns())
	if err != nil {
		return err
	}
	if clientSet.Len() == 0 {
		return fmt.Errorf("client pattern file %q contains no patterns", cfg.ClientPatterns())
	}

	var excludeSet *pattern.Set
	if cfg.ExcludePatterns() != "" {
		excludeSet, err = pattern.LoadSet(cfg.ExcludePatterns())
		if err != nil {
			return err
		}
	}
	logger.Debug("patterns loaded",
		zap.Int("client", clientSet.Len()),
		zap.Int("exclude", excludeSet.Len()))

	reader, err := kismet.Open(input, logger)
	if err != nil {
		return err
	}
	defer reader.Close()

	records, err := reader.Devices(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no WiFi devices found in %q", input)
	}

	result := classify.Partition(records, clientSet, excludeSet)

	if err := report.Write(cfg.Output(), result); err != nil {
		return err
	}

	fmt.Printf("Created %s:\n", cfg.Output())
	fmt.Printf("  Client-Named:     %d devices\n", len(result.Client))
	fmt.Printf("  Non-Client-Named: %d devices\n", len(result.NonClient))
	fmt.Printf("  Unknown Devices:  %d devices\n", len(result.Unknown))

	if cfg.Verbose() {
		printSSIDCounts("Client-Named SSIDs", result.Client)
		printSSIDCounts("Non-Client-Named SSIDs", result.NonClient)
		if len(result.Excluded) > 0 {
			printSSIDCounts("Excluded SSIDs (not in output)", result.Excluded)
		}
	}
	return nil
}

// printSSIDCounts prints per-SSID device counts for one category, sorted by
// SSID for stable output.
func printSSIDCounts(title string, records []models.DeviceRecord) {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.SSID]++
	}

	ssids := make([]string, 0, len(counts))
	for ssid := range counts {
		ssids = append(ssids, ssid)
	}
	sort.Strings(ssids)

	fmt.Printf("\n%s:\n", title)
	for _, ssid := range ssids {
		fmt.Printf("    %s (%d)\n", ssid, counts[ssid])
	}
}

// newLogger builds the CLI logger: warnings only by default, debug detail
// in verbose mode, always to stderr so the summary on stdout stays clean.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
