// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package synonyms

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.ParentSynonyms["Cardiology"]) == 0 {
		t.Error("default dictionary should carry Cardiology synonyms")
	}
	if len(cfg.DomainHints.Pediatric) == 0 {
		t.Error("default dictionary should carry pediatric domain hints")
	}
}

func TestLoad_FillsNilMaps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "synonyms.yaml")
	content := `domain_hints:
  pediatric: [peds]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write synonyms file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ParentSynonyms == nil || cfg.SubspecialtyTokens == nil || cfg.NegativeTokens == nil {
		t.Error("omitted sections must load as empty maps, not nil")
	}
}

func TestDefault_SubspecialtyTokensTargetKnownIDs(t *testing.T) {
	cfg := Default()

	targets := cfg.SubspecialtyTokens["Cardiology"]["interventional"]
	if len(targets) == 0 {
		t.Fatal("interventional token should target canonical ids")
	}
	found := false
	for _, id := range targets {
		if id == "CARD-INTERVENTIONAL" {
			found = true
		}
	}
	if !found {
		t.Error("interventional token should target CARD-INTERVENTIONAL")
	}
}
