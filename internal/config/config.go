// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"specmap/internal/taxonomy"

	"gopkg.in/yaml.v3"
)

// Weights are the scoring weights for the candidate score components.
// The four positive weights must sum to 1.0 (tolerance 0.1); Negative must
// be zero or below.
type Weights struct {
	Token      float64 `yaml:"token"`
	Synonym    float64 `yaml:"synonym"`
	CharSim    float64 `yaml:"char_sim"`
	Negative   float64 `yaml:"negative"`
	SourceHint float64 `yaml:"source_hint"`
}

// FeatureFlags select the character-similarity strategy. Exactly one must
// be active.
type FeatureFlags struct {
	UseJaroWinkler   bool `yaml:"use_jaro_winkler"`
	UseTokenSetRatio bool `yaml:"use_token_set_ratio"`
}

// MappingConfig is the engine configuration. It is validated once at
// engine construction and immutable afterwards.
type MappingConfig struct {
	MinDecisionThreshold float64         `yaml:"min_decision_threshold"`
	HardMapConfidence    float64         `yaml:"hard_map_confidence"`
	DefaultDomain        taxonomy.Domain `yaml:"default_domain"`
	Weights              Weights         `yaml:"weights"`
	FeatureFlags         FeatureFlags    `yaml:"feature_flags"`
}

// weightSumTolerance is how far the positive weights may drift from 1.0.
const weightSumTolerance = 0.1

// Validate enforces the configuration invariants. It is called once, at
// engine construction, not per decision.
func Validate(cfg *MappingConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if cfg.MinDecisionThreshold < 0 || cfg.MinDecisionThreshold > 1 {
		return fmt.Errorf("min_decision_threshold %.3f outside [0,1]", cfg.MinDecisionThreshold)
	}
	if cfg.HardMapConfidence < 0 || cfg.HardMapConfidence > 1 {
		return fmt.Errorf("hard_map_confidence %.3f outside [0,1]", cfg.HardMapConfidence)
	}
	if !cfg.DefaultDomain.Valid() {
		return fmt.Errorf("default_domain %q is not a known domain", cfg.DefaultDomain)
	}

	w := cfg.Weights
	for name, v := range map[string]float64{
		"token":       w.Token,
		"synonym":     w.Synonym,
		"char_sim":    w.CharSim,
		"source_hint": w.SourceHint,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("weight %s %.3f outside [0,1]", name, v)
		}
	}
	if w.Negative > 0 {
		return fmt.Errorf("weight negative %.3f must be <= 0", w.Negative)
	}
	sum := w.Token + w.Synonym + w.CharSim + w.SourceHint
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("positive weights sum to %.3f, expected 1.0 within %.1f", sum, weightSumTolerance)
	}

	ff := cfg.FeatureFlags
	if ff.UseJaroWinkler == ff.UseTokenSetRatio {
		return fmt.Errorf("exactly one similarity feature flag must be enabled")
	}

	return nil
}

// Preset returns a named built-in configuration. Presets vary the decision
// threshold and weight distribution; all of them pass Validate.
func Preset(name string) (*MappingConfig, error) {
	presets := builtinPresets()
	cfg, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q, available: %v", name, PresetNames())
	}
	return &cfg, nil
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	presets := builtinPresets()
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func builtinPresets() map[string]MappingConfig {
	base := Weights{Token: 0.35, Synonym: 0.25, CharSim: 0.25, SourceHint: 0.15, Negative: -0.6}

	return map[string]MappingConfig{
		"conservative": {
			MinDecisionThreshold: 0.68,
			HardMapConfidence:    0.95,
			DefaultDomain:        taxonomy.DomainAdult,
			Weights:              base,
			FeatureFlags:         FeatureFlags{UseJaroWinkler: true},
		},
		"aggressive": {
			MinDecisionThreshold: 0.55,
			HardMapConfidence:    0.95,
			DefaultDomain:        taxonomy.DomainAdult,
			Weights:              Weights{Token: 0.40, Synonym: 0.25, CharSim: 0.20, SourceHint: 0.15, Negative: -0.5},
			FeatureFlags:         FeatureFlags{UseTokenSetRatio: true},
		},
		"pediatric": {
			MinDecisionThreshold: 0.62,
			HardMapConfidence:    0.95,
			DefaultDomain:        taxonomy.DomainPediatric,
			Weights:              Weights{Token: 0.30, Synonym: 0.25, CharSim: 0.20, SourceHint: 0.25, Negative: -0.6},
			FeatureFlags:         FeatureFlags{UseJaroWinkler: true},
		},
		"adult": {
			MinDecisionThreshold: 0.62,
			HardMapConfidence:    0.95,
			DefaultDomain:        taxonomy.DomainAdult,
			Weights:              base,
			FeatureFlags:         FeatureFlags{UseJaroWinkler: true},
		},
	}
}

// Load reads a MappingConfig from a YAML file, starting from the
// conservative preset so unset fields keep sane defaults. An empty path
// returns the conservative preset itself.
func Load(path string) (*MappingConfig, error) {
	cfg, _ := Preset("conservative")
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
