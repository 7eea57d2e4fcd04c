// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package engine resolves free-text specialty labels from compensation
// survey sources to entries in the canonical specialty taxonomy. The
// pipeline is deterministic: exact-pattern rules, dictionary lookups and
// weighted lexical similarity, with no randomness and no hidden state.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"specmap/internal/config"
	"specmap/internal/overrides"
	"specmap/internal/rules"
	"specmap/internal/synonyms"
	"specmap/internal/taxonomy"
)

// Stores are the immutable data stores the engine consults. All of them
// are fully loaded before engine construction; the engine performs no I/O.
type Stores struct {
	Taxonomy  *taxonomy.Store
	Synonyms  *synonyms.Config
	Rules     *rules.Set
	Overrides *overrides.Store
}

// Engine maps one RawInput to one MappingDecision. It holds no mutable
// state across calls and is safe for concurrent use.
type Engine struct {
	taxonomy   *taxonomy.Store
	synonyms   *synonyms.Config
	rules      *rules.Set
	overrides  *overrides.Store
	cfg        *config.MappingConfig
	similarity SimilarityStrategy
}

// New validates the configuration and cross-checks the rule and override
// targets against the taxonomy, then builds an engine. All failures
// surface here, before any decision is produced.
func New(stores Stores, cfg *config.MappingConfig) (*Engine, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if stores.Taxonomy == nil || stores.Synonyms == nil || stores.Rules == nil || stores.Overrides == nil {
		return nil, fmt.Errorf("all four data stores must be supplied")
	}

	for _, r := range stores.Rules.HardMaps() {
		if _, ok := stores.Taxonomy.Get(r.CanonicalID); !ok {
			return nil, fmt.Errorf("hard map %q targets unknown canonical id %q", r.ID, r.CanonicalID)
		}
	}
	for _, m := range stores.Overrides.List() {
		if _, ok := stores.Taxonomy.Get(m.CanonicalID); !ok {
			return nil, fmt.Errorf("override %q targets unknown canonical id %q", m.ID, m.CanonicalID)
		}
	}

	var strategy SimilarityStrategy
	switch {
	case cfg.FeatureFlags.UseJaroWinkler:
		strategy = jaroWinkler{}
	case cfg.FeatureFlags.UseTokenSetRatio:
		strategy = tokenSetRatio{}
	}

	return &Engine{
		taxonomy:   stores.Taxonomy,
		synonyms:   stores.Synonyms,
		rules:      stores.Rules,
		overrides:  stores.Overrides,
		cfg:        cfg,
		similarity: strategy,
	}, nil
}

// Config returns the engine's validated configuration.
func (e *Engine) Config() *config.MappingConfig {
	return e.cfg
}

// SimilarityName reports which character-similarity strategy is active.
func (e *Engine) SimilarityName() string {
	return e.similarity.Name()
}

// Map resolves a single raw input to a mapping decision.
func (e *Engine) Map(input RawInput) MappingDecision {
	normalized := normalize(input.RawName)

	domain, domainNote := e.classifyDomain(input, normalized)
	var notes []string
	if domainNote != "" {
		notes = append(notes, domainNote)
	}

	// Stage 1: human-approved overrides decide immediately at maximum
	// confidence. The decision's domain follows the approved target.
	if m, ok := e.overrides.Match(input.Source, normalized); ok {
		sp, _ := e.taxonomy.Get(m.CanonicalID)
		return MappingDecision{
			Input:          input,
			CanonicalID:    m.CanonicalID,
			Status:         StatusDecided,
			Confidence:     1.0,
			AppliedRuleIDs: []string{m.ID},
			Candidates: []MatchCandidate{{
				CanonicalID: m.CanonicalID,
				Score:       1.0,
				Reasons:     []string{"override:" + m.ID},
			}},
			Notes:  joinNotes(notes),
			Parent: sp.Parent,
			Domain: sp.Domain,
		}
	}

	// Stage 2: hard maps, first match wins. The domain barrier still
	// holds: a rule whose target sits in another domain is skipped.
	for _, rule := range e.rules.HardMaps() {
		if !e.rules.Regexp(rule.ID).MatchString(normalized) {
			continue
		}
		sp, _ := e.taxonomy.Get(rule.CanonicalID)
		if sp.Domain != domain {
			continue
		}
		confidence := e.cfg.HardMapConfidence
		if rule.Confidence != nil {
			confidence = *rule.Confidence
		}
		return MappingDecision{
			Input:          input,
			CanonicalID:    rule.CanonicalID,
			Status:         StatusDecided,
			Confidence:     confidence,
			AppliedRuleIDs: []string{rule.ID},
			Candidates: []MatchCandidate{{
				CanonicalID: rule.CanonicalID,
				Score:       confidence,
				Reasons:     []string{"hardmap:" + rule.ID},
			}},
			Notes:  joinNotes(notes),
			Parent: sp.Parent,
			Domain: domain,
		}
	}

	// Stage 3: parent bucketing. With zero positive evidence the engine
	// never guesses.
	parents, hintIDs := e.bucketParents(normalized)
	if len(parents) == 0 {
		notes = append(notes, "no parent bucket determined")
		return MappingDecision{
			Input:      input,
			Status:     StatusUndecided,
			Confidence: 0,
			Notes:      joinNotes(notes),
			Domain:     domain,
		}
	}

	// Stage 4: block rules veto candidates, then every survivor within
	// the bucketed parents and classified domain is scored.
	type scored struct {
		cand   MatchCandidate
		parent string
	}
	var ranked []scored
	var appliedBlocks []string
	for _, sp := range e.taxonomy.Candidates(parents, domain) {
		if blockID, veto := e.blocked(sp, input, normalized); veto {
			appliedBlocks = appendUnique(appliedBlocks, blockID)
			continue
		}
		ranked = append(ranked, scored{cand: e.scoreCandidate(sp, input, normalized), parent: sp.Parent})
	}

	if len(ranked) == 0 {
		notes = append(notes, "no scorable candidates after domain filter and block rules")
		return MappingDecision{
			Input:          input,
			Status:         StatusUndecided,
			Confidence:     0,
			AppliedRuleIDs: appliedBlocks,
			Notes:          joinNotes(notes),
			Domain:         domain,
		}
	}

	// Stage 5: rank and decide. The pre-sort order is taxonomy
	// declaration order, so the stable sort breaks ties deterministically.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].cand.Score > ranked[j].cand.Score
	})

	candidates := make([]MatchCandidate, len(ranked))
	for i, r := range ranked {
		candidates[i] = r.cand
	}
	top := ranked[0]

	appliedRules := append(appliedBlocks, hintIDs[top.parent]...)

	if top.cand.Score >= e.cfg.MinDecisionThreshold {
		return MappingDecision{
			Input:          input,
			CanonicalID:    top.cand.CanonicalID,
			Status:         StatusDecided,
			Confidence:     top.cand.Score,
			AppliedRuleIDs: appliedRules,
			Candidates:     candidates,
			Notes:          joinNotes(notes),
			Parent:         top.parent,
			Domain:         domain,
		}
	}

	notes = append(notes, fmt.Sprintf("top score %.3f below threshold %.3f; queued for manual review",
		top.cand.Score, e.cfg.MinDecisionThreshold))
	return MappingDecision{
		Input:          input,
		Status:         StatusUndecided,
		Confidence:     top.cand.Score,
		AppliedRuleIDs: appliedRules,
		Candidates:     candidates,
		Notes:          joinNotes(notes),
		Parent:         top.parent,
		Domain:         domain,
	}
}

func joinNotes(notes []string) string {
	return strings.Join(notes, "; ")
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
