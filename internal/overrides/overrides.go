// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package overrides

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Mapping is a human-approved pattern to canonical-id mapping. When Source
// is set the mapping only applies to inputs from that survey source.
// Overrides always take precedence over hard maps and bucketing hints.
type Mapping struct {
	ID          string    `yaml:"id"`
	Pattern     string    `yaml:"pattern"`
	CanonicalID string    `yaml:"canonical_id"`
	Source      string    `yaml:"source,omitempty"`
	AddedBy     string    `yaml:"added_by"`
	AddedAt     time.Time `yaml:"added_at"`
	Reason      string    `yaml:"reason,omitempty"`
}

// storeFile is the on-disk shape of the override store.
type storeFile struct {
	Version  string    `yaml:"version"`
	Mappings []Mapping `yaml:"mappings"`
}

// Store holds the approved overrides with their patterns compiled once at
// load. The engine treats a store as read-only; editing happens through
// the override CLI, which saves the file and rebuilds the store.
type Store struct {
	path     string
	mappings []Mapping
	compiled []*regexp.Regexp
}

// NewStore compiles the supplied mappings into a store. A malformed
// pattern fails construction.
func NewStore(mappings []Mapping) (*Store, error) {
	s := &Store{
		mappings: make([]Mapping, len(mappings)),
		compiled: make([]*regexp.Regexp, len(mappings)),
	}
	copy(s.mappings, mappings)

	for i, m := range s.mappings {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, fmt.Errorf("override %q has a malformed pattern: %w", m.ID, err)
		}
		s.compiled[i] = re
	}

	return s, nil
}

// Load reads the override store from a YAML file. An empty path or a
// missing file yields an empty store; overrides are optional.
func Load(path string) (*Store, error) {
	if path == "" {
		return &Store{}, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{path: path}, nil
		}
		return nil, fmt.Errorf("error reading overrides file: %w", err)
	}

	var file storeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing overrides file: %w", err)
	}

	s, err := NewStore(file.Mappings)
	if err != nil {
		return nil, err
	}
	s.path = path
	return s, nil
}

// Match returns the first override whose pattern matches the normalized
// raw name and whose source scope is empty or equals the input source.
func (s *Store) Match(source, normalized string) (Mapping, bool) {
	for i, m := range s.mappings {
		if m.Source != "" && m.Source != source {
			continue
		}
		if s.compiled[i].MatchString(normalized) {
			return m, true
		}
	}
	return Mapping{}, false
}

// List returns all mappings in file order.
func (s *Store) List() []Mapping {
	return s.mappings
}

// Add appends a new approved mapping and persists the store. The pattern
// is compiled up front so a bad pattern is rejected before it is saved.
// A failed save rolls the append back: the in-memory store always mirrors
// the file.
func (s *Store) Add(pattern, canonicalID, source, addedBy, reason string) (Mapping, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Mapping{}, fmt.Errorf("malformed override pattern: %w", err)
	}

	m := Mapping{
		ID:          uuid.NewString(),
		Pattern:     pattern,
		CanonicalID: canonicalID,
		Source:      source,
		AddedBy:     addedBy,
		AddedAt:     time.Now().UTC(),
		Reason:      reason,
	}

	s.mappings = append(s.mappings, m)
	s.compiled = append(s.compiled, re)
	if err := s.save(); err != nil {
		s.mappings = s.mappings[:len(s.mappings)-1]
		s.compiled = s.compiled[:len(s.compiled)-1]
		return Mapping{}, err
	}
	return m, nil
}

// Remove deletes a mapping by id and persists the store.
func (s *Store) Remove(id string) error {
	for i, m := range s.mappings {
		if m.ID == id {
			s.mappings = append(s.mappings[:i], s.mappings[i+1:]...)
			s.compiled = append(s.compiled[:i], s.compiled[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("override with id %s not found", id)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// save writes the store back to its YAML file with restrictive
// permissions.
func (s *Store) save() error {
	if s.path == "" {
		return fmt.Errorf("override store has no backing file")
	}

	data, err := yaml.Marshal(storeFile{Version: "1.0", Mappings: s.mappings})
	if err != nil {
		return fmt.Errorf("failed to marshal override store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write override store: %w", err)
	}
	return nil
}
