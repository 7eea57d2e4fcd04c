// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"specmap/internal/engine"
)

// csvAdapter is the shared CSV parsing core. Each survey source supplies
// its own specialty-column candidates and optional hint columns; the
// column layouts differ across Gallagher, SullivanCotter and MGMA exports.
type csvAdapter struct {
	name        string
	description string

	// specialtyHeaders are candidate header names for the specialty
	// column, checked case-insensitively in order.
	specialtyHeaders []string

	// pediatricHeaders are candidate header names for an explicit
	// pediatric flag or population column.
	pediatricHeaders []string

	// regionHeaders are candidate header names for a region column.
	regionHeaders []string
}

func (a *csvAdapter) Name() string        { return a.name }
func (a *csvAdapter) Description() string { return a.description }

// Parse extracts one RawInput per data row. A file without any
// specialty-like column is a hard failure: the adapter must never guess
// which column holds specialty names.
func (a *csvAdapter) Parse(r io.Reader) ([]engine.RawInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading %s header row: %w", a.name, err)
	}

	specialtyCol := findColumn(header, a.specialtyHeaders)
	if specialtyCol < 0 {
		return nil, fmt.Errorf("no specialty-like column found in %s headers %v (expected one of %v)",
			a.name, header, a.specialtyHeaders)
	}
	pediatricCol := findColumn(header, a.pediatricHeaders)
	regionCol := findColumn(header, a.regionHeaders)

	var inputs []engine.RawInput
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading %s row: %w", a.name, err)
		}
		if specialtyCol >= len(record) {
			continue
		}
		rawName := strings.TrimSpace(record[specialtyCol])
		if rawName == "" {
			continue
		}

		input := engine.RawInput{Source: a.name, RawName: rawName}

		var meta engine.Meta
		hasMeta := false
		if pediatricCol >= 0 && pediatricCol < len(record) {
			if flag, ok := parsePopulation(record[pediatricCol]); ok {
				meta.Pediatric = &flag
				hasMeta = true
			}
		}
		if regionCol >= 0 && regionCol < len(record) {
			if region := strings.TrimSpace(record[regionCol]); region != "" {
				meta.Region = region
				hasMeta = true
			}
		}
		if hasMeta {
			input.Meta = &meta
		}

		inputs = append(inputs, input)
	}

	return inputs, nil
}

// findColumn returns the index of the first header matching any candidate
// name, case-insensitively, or -1.
func findColumn(header []string, candidates []string) int {
	for _, want := range candidates {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return i
			}
		}
	}
	return -1
}

// parsePopulation interprets a pediatric flag or population column value.
// Unrecognized values produce no flag at all rather than a wrong one.
func parsePopulation(value string) (pediatric bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "y", "yes", "true", "1", "peds", "pediatric", "pediatrics", "children":
		return true, true
	case "n", "no", "false", "0", "adult", "adults":
		return false, true
	}
	return false, false
}

func init() {
	Register(&csvAdapter{
		name:             "Gallagher",
		description:      "Gallagher survey export (Physician Specialty column, optional Pediatric flag)",
		specialtyHeaders: []string{"Physician Specialty", "Specialty Name", "Specialty"},
		pediatricHeaders: []string{"Pediatric", "Peds Flag"},
		regionHeaders:    []string{"Region"},
	})
	Register(&csvAdapter{
		name:             "SullivanCotter",
		description:      "SullivanCotter survey export (Specialty column, Population column)",
		specialtyHeaders: []string{"Specialty", "Benchmark Specialty"},
		pediatricHeaders: []string{"Population", "Pediatric Flag"},
		regionHeaders:    []string{"Region", "Geographic Region"},
	})
	Register(&csvAdapter{
		name:             "MGMA",
		description:      "MGMA survey export (Provider Specialty column, optional Region)",
		specialtyHeaders: []string{"Provider Specialty", "Specialty"},
		pediatricHeaders: []string{"Pediatric"},
		regionHeaders:    []string{"Region"},
	})
}
