// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"sort"
	"strings"

	"specmap/internal/batch"
	"specmap/internal/engine"
	"specmap/internal/formatters"

	"github.com/fatih/color"
)

// Formatter implements human-readable text output
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(result batch.Result, options formatters.Options) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder

	b.WriteString(f.colors["white"].Sprint("Specialty Mapping Results"))
	b.WriteString("\n\n")

	for i := range result.Decisions {
		d := &result.Decisions[i]
		b.WriteString(f.formatDecision(d, options))
	}

	b.WriteString("\n")
	b.WriteString(f.formatStats(result.Stats, options))

	return b.String(), nil
}

func (f *Formatter) formatDecision(d *engine.MappingDecision, options formatters.Options) string {
	var b strings.Builder

	status := f.colors["green"].Sprint("DECIDED")
	target := d.CanonicalID
	if !d.Decided() {
		status = f.colors["yellow"].Sprint("UNDECIDED")
		target = "-"
	}

	fmt.Fprintf(&b, "%s  %-40q -> %-24s (%.3f) [%s]\n",
		status, d.Input.RawName, target, d.Confidence, d.Input.Source)

	if d.Notes != "" {
		fmt.Fprintf(&b, "          note: %s\n", d.Notes)
	}
	if options.Verbose {
		if len(d.AppliedRuleIDs) > 0 {
			fmt.Fprintf(&b, "          rules: %s\n", strings.Join(d.AppliedRuleIDs, "; "))
		}
		for _, c := range d.Candidates {
			fmt.Fprintf(&b, "          candidate %-24s %.3f  %s\n",
				c.CanonicalID, c.Score, strings.Join(c.Reasons, ", "))
		}
	}

	return b.String()
}

func (f *Formatter) formatStats(stats batch.Stats, options formatters.Options) string {
	var b strings.Builder

	b.WriteString(f.colors["white"].Sprint("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Total processed:    %d\n", stats.TotalProcessed)
	fmt.Fprintf(&b, "  Auto-decided:       %d\n", stats.AutoDecided)
	fmt.Fprintf(&b, "  Undecided:          %d\n", stats.Undecided)
	fmt.Fprintf(&b, "  Auto-decide rate:   %.1f%%\n", stats.AutoDecideRate)
	fmt.Fprintf(&b, "  Average confidence: %.3f\n", stats.AverageConfidence)

	if options.Verbose {
		b.WriteString(f.colors["cyan"].Sprint("\nBy source\n"))
		for _, source := range sortedKeys(stats.SourceBreakdown) {
			fmt.Fprintf(&b, "  %-20s %d\n", source, stats.SourceBreakdown[source])
		}

		b.WriteString(f.colors["cyan"].Sprint("\nConfusion report (parent, domain)\n"))
		keys := make([]string, 0, len(stats.Confusion))
		for k := range stats.Confusion {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cell := stats.Confusion[k]
			line := fmt.Sprintf("  %-28s %-10s total=%-4d decided=%-4d undecided=%d\n",
				cell.Parent, cell.Domain, cell.Total, cell.Decided, cell.Undecided)
			if cell.Undecided > cell.Decided {
				line = f.colors["red"].Sprint(line)
			}
			b.WriteString(line)
		}
	}

	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
