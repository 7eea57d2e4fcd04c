// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"

	"specmap/internal/overrides"
)

func main() {
	var (
		overridesFile = flag.String("overrides", ".specmap-overrides.yaml", "Path to the approved-overrides file")
		action        = flag.String("action", "", "Action to perform: list, add, remove")
		pattern       = flag.String("pattern", "", "Regex matched against the normalized raw name (for add action)")
		canonicalID   = flag.String("canonical-id", "", "Target canonical specialty id (for add action)")
		source        = flag.String("source", "", "Limit the override to one survey source (for add action)")
		addedBy       = flag.String("added-by", "", "Reviewer recording the override (for add action)")
		reason        = flag.String("reason", "", "Why the override was approved (for add action)")
		id            = flag.String("id", "", "Override mapping ID (for remove action)")
	)
	flag.Parse()

	if *action == "" {
		fmt.Println("Error: --action is required")
		fmt.Println("Usage: specmap-override --action <list|add|remove> [options]")
		os.Exit(1)
	}

	store, err := overrides.Load(*overridesFile)
	if err != nil {
		fmt.Printf("Error loading overrides: %v\n", err)
		os.Exit(1)
	}

	switch *action {
	case "list":
		listOverrides(store)
	case "add":
		if *pattern == "" || *canonicalID == "" {
			fmt.Println("Error: --pattern and --canonical-id are required for add action")
			os.Exit(1)
		}
		addOverride(store, *pattern, *canonicalID, *source, *addedBy, *reason)
	case "remove":
		if *id == "" {
			fmt.Println("Error: --id is required for remove action")
			os.Exit(1)
		}
		removeOverride(store, *id)
	default:
		fmt.Printf("Error: Unknown action '%s'\n", *action)
		fmt.Println("Valid actions: list, add, remove")
		os.Exit(1)
	}
}

func listOverrides(store *overrides.Store) {
	mappings := store.List()
	if len(mappings) == 0 {
		fmt.Println("No override mappings found.")
		return
	}

	fmt.Printf("Found %d override mappings:\n\n", len(mappings))
	for _, m := range mappings {
		fmt.Printf("ID: %s\n", m.ID)
		fmt.Printf("Pattern: %s\n", m.Pattern)
		fmt.Printf("Canonical ID: %s\n", m.CanonicalID)
		if m.Source != "" {
			fmt.Printf("Source: %s\n", m.Source)
		}
		if m.AddedBy != "" {
			fmt.Printf("Added By: %s\n", m.AddedBy)
		}
		fmt.Printf("Added At: %s\n", m.AddedAt.Format("2006-01-02 15:04:05"))
		if m.Reason != "" {
			fmt.Printf("Reason: %s\n", m.Reason)
		}
		fmt.Println("---")
	}
}

func addOverride(store *overrides.Store, pattern, canonicalID, source, addedBy, reason string) {
	m, err := store.Add(pattern, canonicalID, source, addedBy, reason)
	if err != nil {
		fmt.Printf("Error adding override: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully added override mapping: %s\n", m.ID)
}

func removeOverride(store *overrides.Store, id string) {
	err := store.Remove(id)
	if err != nil {
		fmt.Printf("Error removing override: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully removed override mapping: %s\n", id)
}
