// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"specmap/internal/adapters"
	"specmap/internal/batch"
	"specmap/internal/config"
	"specmap/internal/engine"
	"specmap/internal/formatters"
	"specmap/internal/observability"
	"specmap/internal/overrides"
	"specmap/internal/rules"
	"specmap/internal/synonyms"
	"specmap/internal/taxonomy"
	"specmap/internal/version"

	"github.com/fatih/color"
	"golang.org/x/term"

	_ "specmap/internal/formatters/csv"
	_ "specmap/internal/formatters/json"
	_ "specmap/internal/formatters/text"
)

func main() {
	inputFile := flag.String("in", "", "Path to the survey input file (CSV or PDF)")
	sourceName := flag.String("source", "", "Survey source: Gallagher, SullivanCotter, MGMA, ...")
	outputFile := flag.String("out", "", "Path to the output file")
	preset := flag.String("config", "conservative", "Configuration preset: conservative, aggressive, pediatric, adult")
	configFile := flag.String("config-file", "", "Path to a mapping configuration file (YAML, overrides --config)")
	threshold := flag.Float64("threshold", 0.68, "Minimum decision threshold (default: the preset's threshold)")
	outputFormat := flag.String("format", "csv", "Output format: csv, json, text")
	taxonomyFile := flag.String("taxonomy", "", "Path to taxonomy file (YAML, default: built-in)")
	synonymsFile := flag.String("synonyms", "", "Path to synonyms file (YAML, default: built-in)")
	rulesFiles := flag.String("rules", "", "Comma-separated rule config files, merged in order (default: built-in)")
	overridesFile := flag.String("overrides", "", "Path to the approved-overrides file (YAML)")
	workers := flag.Int("workers", 0, "Batch worker count (default: one per CPU)")
	verbose := flag.Bool("verbose", false, "Display candidates and the confusion report")
	debug := flag.Bool("debug", false, "Emit JSON operation timing to stderr")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if *inputFile == "" || *sourceName == "" || *outputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --in, --source and --out are required\n")
		flag.Usage()
		os.Exit(1)
	}

	if _, err := os.Stat(*inputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: input file %s does not exist\n", *inputFile)
		os.Exit(1)
	}

	adapter, ok := adapters.Get(*sourceName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unrecognized source %q (known sources: %s)\n",
			*sourceName, strings.Join(adapters.List(), ", "))
		os.Exit(1)
	}

	cfg, err := resolveConfig(*preset, *configFile, *threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stores, err := loadStores(*taxonomyFile, *synonymsFile, *rulesFiles, *overridesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	eng, err := engine.New(stores, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	inputs, err := adapters.ParseFile(adapter, *inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	obsLevel := observability.Off
	if *debug {
		obsLevel = observability.Debug
	}
	observer := observability.NewObserver(obsLevel, os.Stderr)

	processor := batch.NewProcessor(eng, *workers, observer)
	result := processor.Process(inputs)

	useColor := !*noColor && isTerminal(os.Stdout)
	if !useColor {
		color.NoColor = true
	}

	output, err := formatters.Export(*outputFormat, result, formatters.Options{
		Verbose: *verbose,
		NoColor: !useColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(*outputFile, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printSummary(result, *inputFile, *outputFile, *verbose)
}

// resolveConfig resolves the effective configuration: preset first, then a
// config file, then an explicitly passed --threshold. flag.Visit
// distinguishes "user passed --threshold" from the flag default.
func resolveConfig(preset, configFile string, threshold float64) (*config.MappingConfig, error) {
	var cfg *config.MappingConfig
	var err error

	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.Preset(preset)
	}
	if err != nil {
		return nil, err
	}

	thresholdSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "threshold" {
			thresholdSet = true
		}
	})
	if thresholdSet {
		cfg.MinDecisionThreshold = threshold
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadStores builds the four immutable data stores before the engine is
// constructed. Any load failure is fatal: no decisions are produced from
// partially loaded data.
func loadStores(taxonomyFile, synonymsFile, rulesFiles, overridesFile string) (engine.Stores, error) {
	taxStore, err := taxonomy.LoadStore(taxonomyFile)
	if err != nil {
		return engine.Stores{}, err
	}

	synCfg, err := synonyms.Load(synonymsFile)
	if err != nil {
		return engine.Stores{}, err
	}

	var rulePaths []string
	if rulesFiles != "" {
		for _, p := range strings.Split(rulesFiles, ",") {
			if p = strings.TrimSpace(p); p != "" {
				rulePaths = append(rulePaths, p)
			}
		}
	}
	ruleSet, err := rules.Load(rulePaths...)
	if err != nil {
		return engine.Stores{}, err
	}

	overrideStore, err := overrides.Load(overridesFile)
	if err != nil {
		return engine.Stores{}, err
	}

	return engine.Stores{
		Taxonomy:  taxStore,
		Synonyms:  synCfg,
		Rules:     ruleSet,
		Overrides: overrideStore,
	}, nil
}

func writeOutput(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// printSummary writes the batch statistics to stdout.
func printSummary(result batch.Result, inputFile, outputFile string, verbose bool) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	fmt.Printf("Processed %d specialty labels from %s\n", result.Stats.TotalProcessed, inputFile)
	green.Printf("  autoDecideRate:    %.1f%% (%d decided)\n", result.Stats.AutoDecideRate, result.Stats.AutoDecided)
	if result.Stats.Undecided > 0 {
		yellow.Printf("  undecided:         %d (queued for manual review)\n", result.Stats.Undecided)
	}
	fmt.Printf("  averageConfidence: %.3f\n", result.Stats.AverageConfidence)
	fmt.Printf("Results written to %s\n", outputFile)

	if verbose {
		fmt.Println("\nSource breakdown:")
		for source, count := range result.Stats.SourceBreakdown {
			fmt.Printf("  %-20s %d\n", source, count)
		}
	}
}

// isTerminal checks whether the writer is an interactive terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
