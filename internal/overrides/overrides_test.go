// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package overrides

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsEmptyStore(t *testing.T) {
	store, err := Load("/nonexistent/overrides.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(store.List()) != 0 {
		t.Error("missing file should yield an empty store")
	}
}

func TestAddAndMatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yaml")

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	m, err := store.Add("^heart doctor$", "CARD-GENERAL", "", "reviewer", "local survey quirk")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if m.ID == "" {
		t.Error("added mapping should get a generated id")
	}

	got, ok := store.Match("Gallagher", "heart doctor")
	if !ok {
		t.Fatal("expected override to match")
	}
	if got.CanonicalID != "CARD-GENERAL" {
		t.Errorf("expected CARD-GENERAL, got %q", got.CanonicalID)
	}
}

func TestAdd_PersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yaml")

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := store.Add("^cards$", "CARD-GENERAL", "MGMA", "reviewer", ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.List()) != 1 {
		t.Fatalf("expected 1 mapping after reload, got %d", len(reloaded.List()))
	}
	if reloaded.List()[0].Source != "MGMA" {
		t.Errorf("expected source MGMA, got %q", reloaded.List()[0].Source)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("override store should be saved with 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestMatch_SourceScoping(t *testing.T) {
	store, err := NewStore([]Mapping{
		{ID: "o1", Pattern: "^cards$", CanonicalID: "CARD-GENERAL", Source: "MGMA"},
	})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, ok := store.Match("Gallagher", "cards"); ok {
		t.Error("source-scoped override should not match other sources")
	}
	if _, ok := store.Match("MGMA", "cards"); !ok {
		t.Error("source-scoped override should match its own source")
	}
}

func TestAdd_RejectsMalformedPattern(t *testing.T) {
	dir := t.TempDir()
	store, err := Load(filepath.Join(dir, "overrides.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := store.Add("[unclosed", "CARD-GENERAL", "", "reviewer", ""); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
	if len(store.List()) != 0 {
		t.Error("rejected pattern must not be stored")
	}
}

func TestAdd_FailedSaveRollsBack(t *testing.T) {
	// A store built without a backing file cannot be saved; the append
	// must be rolled back so the in-memory view matches what is on disk.
	store, err := NewStore(nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, err := store.Add("^cards$", "CARD-GENERAL", "", "reviewer", ""); err == nil {
		t.Fatal("expected error saving a store with no backing file")
	}
	if len(store.List()) != 0 {
		t.Error("failed save must not leave the store mutated")
	}
	if _, ok := store.Match("", "cards"); ok {
		t.Error("rolled-back mapping must not match")
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := Load(filepath.Join(dir, "overrides.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	m, err := store.Add("^cards$", "CARD-GENERAL", "", "reviewer", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Remove(m.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok := store.Match("", "cards"); ok {
		t.Error("removed override should no longer match")
	}
	if err := store.Remove("no-such-id"); err == nil {
		t.Error("expected error removing unknown id")
	}
}
