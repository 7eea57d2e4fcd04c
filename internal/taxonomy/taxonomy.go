// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Domain identifies the care population a canonical specialty serves.
// Adult and pediatric specialties are never cross-matched.
type Domain string

const (
	DomainAdult     Domain = "ADULT"
	DomainPediatric Domain = "PEDIATRIC"
	DomainAPPOther  Domain = "APP_OTHER"
)

// Valid reports whether d is one of the known domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainAdult, DomainPediatric, DomainAPPOther:
		return true
	}
	return false
}

// CanonicalSpecialty is a single authoritative taxonomy entry.
type CanonicalSpecialty struct {
	ID     string   `yaml:"id"`
	Parent string   `yaml:"parent"`
	Name   string   `yaml:"name"`
	Domain Domain   `yaml:"domain"`
	Tags   []string `yaml:"tags"`
}

// taxonomyFile is the on-disk shape of a taxonomy document.
type taxonomyFile struct {
	Version     string               `yaml:"version"`
	Specialties []CanonicalSpecialty `yaml:"specialties"`
}

// Store is an immutable list of canonical specialties with index lookups.
// Declaration order is preserved and used as the deterministic tie-breaker
// during candidate ranking.
type Store struct {
	specialties []CanonicalSpecialty
	byID        map[string]int
}

// NewStore validates the supplied specialties and builds a store.
// IDs must be globally unique, domains known, and parents non-empty.
func NewStore(specialties []CanonicalSpecialty) (*Store, error) {
	s := &Store{
		specialties: make([]CanonicalSpecialty, len(specialties)),
		byID:        make(map[string]int, len(specialties)),
	}
	copy(s.specialties, specialties)

	for i, sp := range s.specialties {
		if sp.ID == "" {
			return nil, fmt.Errorf("taxonomy entry %d has an empty id", i)
		}
		if _, dup := s.byID[sp.ID]; dup {
			return nil, fmt.Errorf("duplicate canonical id %q", sp.ID)
		}
		if !sp.Domain.Valid() {
			return nil, fmt.Errorf("canonical id %q has unknown domain %q", sp.ID, sp.Domain)
		}
		if sp.Parent == "" {
			return nil, fmt.Errorf("canonical id %q has no parent group", sp.ID)
		}
		s.byID[sp.ID] = i
	}

	return s, nil
}

// LoadStore reads a taxonomy YAML file and builds a store. An empty path
// returns the built-in default taxonomy.
func LoadStore(path string) (*Store, error) {
	if path == "" {
		return NewStore(defaultSpecialties())
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading taxonomy file: %w", err)
	}

	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing taxonomy file: %w", err)
	}
	if len(file.Specialties) == 0 {
		return nil, fmt.Errorf("taxonomy file %s contains no specialties", path)
	}

	return NewStore(file.Specialties)
}

// All returns every specialty in declaration order.
func (s *Store) All() []CanonicalSpecialty {
	return s.specialties
}

// Get returns the specialty with the given canonical id.
func (s *Store) Get(id string) (CanonicalSpecialty, bool) {
	i, ok := s.byID[id]
	if !ok {
		return CanonicalSpecialty{}, false
	}
	return s.specialties[i], true
}

// Index returns the declaration position of a canonical id. Unknown ids
// sort last.
func (s *Store) Index(id string) int {
	if i, ok := s.byID[id]; ok {
		return i
	}
	return len(s.specialties)
}

// Candidates returns, in declaration order, every specialty whose parent
// is in parents and whose domain matches. The domain filter is the hard
// barrier: entries in another domain are never returned.
func (s *Store) Candidates(parents map[string]bool, domain Domain) []CanonicalSpecialty {
	var out []CanonicalSpecialty
	for _, sp := range s.specialties {
		if sp.Domain != domain {
			continue
		}
		if parents[sp.Parent] {
			out = append(out, sp)
		}
	}
	return out
}

// Parents returns the distinct parent groups in declaration order.
func (s *Store) Parents() []string {
	seen := make(map[string]bool)
	var out []string
	for _, sp := range s.specialties {
		if !seen[sp.Parent] {
			seen[sp.Parent] = true
			out = append(out, sp.Parent)
		}
	}
	return out
}
