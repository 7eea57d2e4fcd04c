// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"specmap/internal/batch"
	"specmap/internal/engine"
	"specmap/internal/formatters"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Machine-readable JSON with full candidate rankings and batch statistics"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// output is the serialized document shape.
type output struct {
	Decisions []engine.MappingDecision `json:"decisions"`
	Stats     batch.Stats              `json:"stats"`
}

func (f *Formatter) Format(result batch.Result, options formatters.Options) (string, error) {
	doc := output{Decisions: result.Decisions, Stats: result.Stats}

	if !options.Verbose {
		// Candidate rankings are large; keep them for verbose exports only.
		trimmed := make([]engine.MappingDecision, len(doc.Decisions))
		copy(trimmed, doc.Decisions)
		for i := range trimmed {
			trimmed[i].Candidates = nil
		}
		doc.Decisions = trimmed
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error serializing decisions: %w", err)
	}
	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
