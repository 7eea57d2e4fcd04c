// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// HardMapRule maps an exact or near-exact pattern straight to a canonical
// id, bypassing fuzzy scoring. Confidence, when nil, falls back to the
// configured hard-map confidence.
type HardMapRule struct {
	ID          string   `yaml:"id"`
	Pattern     string   `yaml:"pattern"`
	CanonicalID string   `yaml:"canonical_id"`
	Confidence  *float64 `yaml:"confidence,omitempty"`
}

// BlockCondition describes when a block rule vetoes a candidate. Every
// populated field must hold for the veto to fire.
type BlockCondition struct {
	Source      string `yaml:"source,omitempty"`
	Pattern     string `yaml:"pattern,omitempty"`
	Parent      string `yaml:"parent,omitempty"`
	CanonicalID string `yaml:"canonical_id,omitempty"`
}

// BlockRule vetoes a candidate regardless of how it would have scored.
type BlockRule struct {
	ID        string         `yaml:"id"`
	Condition BlockCondition `yaml:"condition"`
	Reason    string         `yaml:"reason"`
}

// BucketingHintRule maps a pattern to a parent group, used to seed parent
// bucketing when no hard map applies.
type BucketingHintRule struct {
	ID         string   `yaml:"id"`
	Pattern    string   `yaml:"pattern"`
	Parent     string   `yaml:"parent"`
	Confidence *float64 `yaml:"confidence,omitempty"`
}

// Config is one version of the rules repository.
type Config struct {
	Version        string              `yaml:"version"`
	HardMaps       []HardMapRule       `yaml:"hard_maps"`
	Blocks         []BlockRule         `yaml:"blocks"`
	BucketingHints []BucketingHintRule `yaml:"bucketing_hints"`
}

// Set is the merged, compiled rules repository. Versions are merged in
// supplied order and the first match wins per stage. Every pattern is
// compiled exactly once at load time; a malformed pattern fails the load,
// never a mid-batch decision.
type Set struct {
	hardMaps       []HardMapRule
	blocks         []BlockRule
	bucketingHints []BucketingHintRule
	compiled       map[string]*regexp.Regexp
}

// Merge builds a Set from one or more rule config versions.
func Merge(configs ...Config) (*Set, error) {
	s := &Set{compiled: make(map[string]*regexp.Regexp)}

	for _, cfg := range configs {
		for _, r := range cfg.HardMaps {
			if err := s.compile(r.ID, r.Pattern, cfg.Version); err != nil {
				return nil, err
			}
			s.hardMaps = append(s.hardMaps, r)
		}
		for _, r := range cfg.Blocks {
			if r.Condition.Pattern != "" {
				if err := s.compile(r.ID, r.Condition.Pattern, cfg.Version); err != nil {
					return nil, err
				}
			}
			s.blocks = append(s.blocks, r)
		}
		for _, r := range cfg.BucketingHints {
			if err := s.compile(r.ID, r.Pattern, cfg.Version); err != nil {
				return nil, err
			}
			s.bucketingHints = append(s.bucketingHints, r)
		}
	}

	return s, nil
}

// Load reads rule config files and merges them in argument order. With no
// paths it returns the built-in default rule set.
func Load(paths ...string) (*Set, error) {
	if len(paths) == 0 {
		return Merge(Default())
	}

	var configs []Config
	for _, path := range paths {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("error reading rules file: %w", err)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing rules file %s: %w", path, err)
		}
		configs = append(configs, cfg)
	}

	return Merge(configs...)
}

func (s *Set) compile(id, pattern, version string) error {
	if id == "" {
		return fmt.Errorf("rules version %q contains a rule with no id", version)
	}
	if _, dup := s.compiled[id]; dup {
		return fmt.Errorf("duplicate rule id %q", id)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("rule %q has a malformed pattern: %w", id, err)
	}
	s.compiled[id] = re
	return nil
}

// Regexp returns the compiled pattern for a rule id. The cache is
// populated at construction and read-only afterwards, so it is safe to
// share across concurrent workers.
func (s *Set) Regexp(id string) *regexp.Regexp {
	return s.compiled[id]
}

// HardMaps returns the merged hard-map rules in order.
func (s *Set) HardMaps() []HardMapRule { return s.hardMaps }

// Blocks returns the merged block rules in order.
func (s *Set) Blocks() []BlockRule { return s.blocks }

// BucketingHints returns the merged bucketing-hint rules in order.
func (s *Set) BucketingHints() []BucketingHintRule { return s.bucketingHints }

// Default returns the built-in rule set covering the default taxonomy.
func Default() Config {
	return Config{
		Version: "1.0",
		HardMaps: []HardMapRule{
			{ID: "EXACT_CARD_GENERAL", Pattern: "^cardiology$", CanonicalID: "CARD-GENERAL"},
			{ID: "EXACT_CARD_INTERVENTIONAL", Pattern: "^interventional cardiology$", CanonicalID: "CARD-INTERVENTIONAL"},
			{ID: "EXACT_PEDS_CARD_GENERAL", Pattern: "^pediatric cardiology$", CanonicalID: "PEDS-CARD-GENERAL"},
			{ID: "EXACT_FM_GENERAL", Pattern: "^family medicine$", CanonicalID: "FM-GENERAL"},
			{ID: "EXACT_IM_GENERAL", Pattern: "^internal medicine$", CanonicalID: "IM-GENERAL"},
			{ID: "EXACT_HOSPITALIST", Pattern: "^(hospitalist|hospital medicine)$", CanonicalID: "HOSP-GENERAL"},
			{ID: "EXACT_PEDS_GENERAL", Pattern: "^(pediatrics|general pediatrics)$", CanonicalID: "PEDS-GENERAL"},
		},
		Blocks: []BlockRule{
			{
				ID:        "BLOCK_SURGICAL_CARDIOLOGY",
				Condition: BlockCondition{Pattern: "surg", Parent: "Cardiology"},
				Reason:    "surgical labels must never resolve to medical cardiology",
			},
		},
		BucketingHints: []BucketingHintRule{
			{ID: "HINT_CTSURG", Pattern: "cardiac surg|cardiothoracic|thoracic surg|heart surg", Parent: "Cardiothoracic Surgery"},
			{ID: "HINT_CARD", Pattern: "cardi", Parent: "Cardiology"},
			{ID: "HINT_ORTHO", Pattern: "ortho|spine", Parent: "Orthopedic Surgery"},
			{ID: "HINT_GI", Pattern: "gastro|endoscopy", Parent: "Gastroenterology"},
			{ID: "HINT_HOSP", Pattern: "hospitalist|nocturnist", Parent: "Hospital Medicine"},
			{ID: "HINT_APP", Pattern: "nurse practitioner|physician assistant|advanced practice|crna", Parent: "Advanced Practice"},
		},
	}
}
