// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package synonyms

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DomainHints are keywords that pull an input toward a domain during
// classification. An explicit source flag always wins over these.
type DomainHints struct {
	Pediatric []string `yaml:"pediatric"`
	Adult     []string `yaml:"adult"`
	AppOther  []string `yaml:"app_other"`
}

// Config is the synonym dictionary consulted during bucketing and scoring.
// All maps are keyed by parent group name.
type Config struct {
	DomainHints        DomainHints                    `yaml:"domain_hints"`
	ParentSynonyms     map[string][]string            `yaml:"parent_synonyms"`
	SubspecialtyTokens map[string]map[string][]string `yaml:"subspecialty_tokens"`
	NegativeTokens     map[string][]string            `yaml:"negative_tokens"`
}

// Load reads a synonyms YAML file. An empty path returns the built-in
// default dictionary.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading synonyms file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing synonyms file: %w", err)
	}
	if cfg.ParentSynonyms == nil {
		cfg.ParentSynonyms = make(map[string][]string)
	}
	if cfg.SubspecialtyTokens == nil {
		cfg.SubspecialtyTokens = make(map[string]map[string][]string)
	}
	if cfg.NegativeTokens == nil {
		cfg.NegativeTokens = make(map[string][]string)
	}

	return &cfg, nil
}

// Default returns the built-in synonym dictionary covering the default
// taxonomy.
func Default() *Config {
	return &Config{
		DomainHints: DomainHints{
			Pediatric: []string{"pediatric", "pediatrics", "peds", "paediatric", "children", "childrens", "neonatal", "adolescent"},
			Adult:     []string{"adult", "geriatric"},
			AppOther:  []string{"nurse practitioner", "physician assistant", "advanced practice", "crna", "midlevel"},
		},
		ParentSynonyms: map[string][]string{
			"Cardiology":             {"cardiology", "cardiac", "cardiovascular", "heart"},
			"Cardiothoracic Surgery": {"cardiothoracic", "cardiac surgery", "thoracic", "heart surgery"},
			"Orthopedic Surgery":     {"orthopedic", "orthopedics", "orthopaedic", "ortho"},
			"Primary Care":           {"family medicine", "internal medicine", "general practice", "primary care", "pediatrics", "general pediatrics"},
			"Hospital Medicine":      {"hospitalist", "hospital medicine", "nocturnist"},
			"Gastroenterology":       {"gastroenterology", "gi", "digestive"},
			"Advanced Practice":      {"nurse practitioner", "physician assistant", "advanced practice", "crna", "nurse anesthetist"},
		},
		SubspecialtyTokens: map[string]map[string][]string{
			"Cardiology": {
				"interventional":    {"CARD-INTERVENTIONAL", "PEDS-CARD-INTERVENTIONAL"},
				"electrophysiology": {"CARD-EP"},
				"ep":                {"CARD-EP"},
			},
			"Orthopedic Surgery": {
				"spine": {"ORTHO-SPINE"},
			},
			"Gastroenterology": {
				"endoscopy": {"GI-ADVANCED"},
				"advanced":  {"GI-ADVANCED"},
			},
		},
		NegativeTokens: map[string][]string{
			"Cardiology":       {"surgery", "surgical", "surgeon"},
			"Primary Care":     {"surgery", "surgical"},
			"Gastroenterology": {"surgery", "surgical"},
		},
	}
}
