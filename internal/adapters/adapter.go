// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package adapters turns survey files from the supported compensation
// sources into RawInput records for the mapping engine. Adapters own all
// file I/O; the engine itself never touches the filesystem.
package adapters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"specmap/internal/engine"
)

// Adapter parses one survey source's row format into raw inputs.
type Adapter interface {
	// Name is the source identifier recorded on every RawInput.
	Name() string

	// Description explains which survey format the adapter expects.
	Description() string

	// Parse reads CSV content and extracts one RawInput per data row.
	Parse(r io.Reader) ([]engine.RawInput, error)
}

// Registry holds the registered source adapters.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter to the registry.
func (r *Registry) Register(a Adapter) {
	r.adapters[strings.ToLower(a.Name())] = a
}

// Get retrieves an adapter by source name, case-insensitively.
func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[strings.ToLower(name)]
	return a, ok
}

// List returns the registered source names, sorted.
func (r *Registry) List() []string {
	var names []string
	for _, a := range r.adapters {
		names = append(names, a.Name())
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global adapter registry.
var DefaultRegistry = NewRegistry()

// Register adds an adapter to the default registry.
func Register(a Adapter) {
	DefaultRegistry.Register(a)
}

// Get retrieves an adapter from the default registry.
func Get(name string) (Adapter, bool) {
	return DefaultRegistry.Get(name)
}

// List returns the source names known to the default registry.
func List() []string {
	return DefaultRegistry.List()
}

// ParseFile reads a survey file with the given adapter. PDF uploads go
// through the shared plain-text extraction; everything else is treated as
// CSV.
func ParseFile(a Adapter, path string) ([]engine.RawInput, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		lines, err := extractPDFLines(path)
		if err != nil {
			return nil, err
		}
		inputs := make([]engine.RawInput, 0, len(lines))
		for _, line := range lines {
			inputs = append(inputs, engine.RawInput{Source: a.Name(), RawName: line})
		}
		return inputs, nil
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer f.Close()

	return a.Parse(f)
}
