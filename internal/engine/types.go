// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"specmap/internal/taxonomy"
)

// Meta carries optional source-specific hints attached by a source
// adapter. Pediatric, when set, overrides the keyword-based domain scan.
type Meta struct {
	Pediatric *bool  `json:"pediatric,omitempty"`
	Region    string `json:"region,omitempty"`
}

// RawInput is one free-text specialty label harvested from a survey row.
// It is created once by a source adapter and consumed exactly once.
type RawInput struct {
	Source  string `json:"source"`
	RawName string `json:"raw_name"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// MatchCandidate is one ranked canonical candidate with machine-readable
// reasons for every contributing score factor. Candidates are transient:
// they are produced while scoring a single input and never persisted.
type MatchCandidate struct {
	CanonicalID string   `json:"canonical_id"`
	Score       float64  `json:"score"`
	Reasons     []string `json:"reasons"`
}

// Status reports whether an input was resolved automatically.
type Status string

const (
	StatusDecided   Status = "DECIDED"
	StatusUndecided Status = "UNDECIDED"
)

// MappingDecision is the engine's sole output. CanonicalID is empty when
// the input could not be decided; Confidence still carries the unclamped
// top score so reviewers can see near-misses. Parent and Domain record the
// resolved bucket for the confusion report.
type MappingDecision struct {
	Input          RawInput         `json:"input"`
	CanonicalID    string           `json:"canonical_id,omitempty"`
	Status         Status           `json:"status"`
	Confidence     float64          `json:"confidence"`
	AppliedRuleIDs []string         `json:"applied_rule_ids,omitempty"`
	Candidates     []MatchCandidate `json:"candidates,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	Parent         string           `json:"parent,omitempty"`
	Domain         taxonomy.Domain  `json:"domain"`
}

// Decided reports whether the decision resolved to a canonical id.
func (d *MappingDecision) Decided() bool {
	return d.Status == StatusDecided
}

// TopCandidate returns the highest-ranked candidate id, or "" when no
// candidate was scored.
func (d *MappingDecision) TopCandidate() string {
	if len(d.Candidates) == 0 {
		return ""
	}
	return d.Candidates[0].CanonicalID
}
