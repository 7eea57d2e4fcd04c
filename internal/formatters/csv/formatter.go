// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"specmap/internal/batch"
	"specmap/internal/formatters"
)

// Formatter implements CSV output formatting for mapping decisions. The
// column layout is consumed by the downstream review spreadsheet tooling.
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import and the review queue"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(result batch.Result, options formatters.Options) (string, error) {
	headers := []string{"Source", "Raw Name", "Canonical ID", "Confidence", "Status", "Top Candidate", "Applied Rules", "Notes"}

	csvRows := []string{strings.Join(headers, ",")}

	for i := range result.Decisions {
		d := &result.Decisions[i]
		row := []string{
			f.escapeCSVField(d.Input.Source),
			f.escapeCSVField(d.Input.RawName),
			f.escapeCSVField(d.CanonicalID),
			fmt.Sprintf("%.4f", d.Confidence),
			string(d.Status),
			f.escapeCSVField(d.TopCandidate()),
			f.escapeCSVField(strings.Join(d.AppliedRuleIDs, ";")),
			f.escapeCSVField(d.Notes),
		}
		csvRows = append(csvRows, strings.Join(row, ","))
	}

	return strings.Join(csvRows, "\n"), nil
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	// If field contains comma, quote, or newline, wrap in quotes and escape internal quotes
	if strings.Contains(field, ",") || strings.Contains(field, "\"") || strings.Contains(field, "\n") || strings.Contains(field, "\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection prevents CSV injection attacks by sanitizing formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	// Fields starting with formula characters are dangerous in spreadsheets
	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		// Prefix with single quote to prevent formula execution
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
