// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"sort"
	"strings"

	"specmap/internal/taxonomy"
)

// subspecialtyBoost is added after the weighted sum whenever the raw name
// contains a subspecialty token mapped to the candidate. It is what keeps
// "Interventional Cardiology" from collapsing into general cardiology.
const subspecialtyBoost = 0.15

// bucketParents identifies candidate parent groups: bucketing-hint regex
// matches plus token overlap with each parent's synonyms. The returned
// hint map records which hint rule ids contributed to each parent. Zero
// parents means the engine refuses to guess.
func (e *Engine) bucketParents(normalized string) (map[string]bool, map[string][]string) {
	parents := make(map[string]bool)
	hints := make(map[string][]string)

	for _, rule := range e.rules.BucketingHints() {
		if e.rules.Regexp(rule.ID).MatchString(normalized) {
			parents[rule.Parent] = true
			hints[rule.Parent] = append(hints[rule.Parent], rule.ID)
		}
	}

	for parent, syns := range e.synonyms.ParentSynonyms {
		if parents[parent] {
			continue
		}
		if synonymCoverage(normalized, syns) > 0 {
			parents[parent] = true
		}
	}

	return parents, hints
}

// synonymCoverage scores how well any synonym phrase is covered by the
// normalized name: 1.0 for a full phrase hit, otherwise the best fraction
// of phrase tokens present.
func synonymCoverage(normalized string, syns []string) float64 {
	best := 0.0
	for _, syn := range syns {
		if containsPhrase(normalized, syn) {
			return 1.0
		}
		toks := strings.Fields(syn)
		if len(toks) == 0 {
			continue
		}
		hit := 0
		for _, t := range toks {
			if containsPhrase(normalized, t) {
				hit++
			}
		}
		if frac := float64(hit) / float64(len(toks)); frac > best {
			best = frac
		}
	}
	return best
}

// matchedSynonym returns the first synonym phrase fully contained in the
// normalized name, for the reason string.
func matchedSynonym(normalized string, syns []string) string {
	for _, syn := range syns {
		if containsPhrase(normalized, syn) {
			return syn
		}
	}
	return ""
}

// blocked reports whether a block rule vetoes this candidate, and which
// rule did. Every populated condition field must hold.
func (e *Engine) blocked(sp taxonomy.CanonicalSpecialty, input RawInput, normalized string) (string, bool) {
	for _, rule := range e.rules.Blocks() {
		cond := rule.Condition
		if cond.Source != "" && cond.Source != input.Source {
			continue
		}
		if cond.Parent != "" && cond.Parent != sp.Parent {
			continue
		}
		if cond.CanonicalID != "" && cond.CanonicalID != sp.ID {
			continue
		}
		if cond.Pattern != "" && !e.rules.Regexp(rule.ID).MatchString(normalized) {
			continue
		}
		return rule.ID, true
	}
	return "", false
}

// diceOverlap is the Sørensen–Dice coefficient between the raw-name token
// set and the candidate tags. It prefers the general entry for bare parent
// labels because extra unmatched tags dilute the score.
func diceOverlap(tokens []string, tags []string) (float64, []string) {
	if len(tokens) == 0 || len(tags) == 0 {
		return 0, nil
	}
	inTokens := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		inTokens[t] = true
	}

	var matched []string
	for _, tag := range tags {
		if inTokens[tag] {
			matched = append(matched, tag)
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}
	return 2 * float64(len(matched)) / float64(len(tokens)+len(tags)), matched
}

// scoreCandidate computes the weighted score for one canonical specialty
// within an already-chosen parent and domain, appending a reason for every
// contributing factor.
func (e *Engine) scoreCandidate(sp taxonomy.CanonicalSpecialty, input RawInput, normalized string) MatchCandidate {
	w := e.cfg.Weights
	tokens := strings.Fields(normalized)

	var reasons []string
	score := 0.0

	tokenScore, matchedTags := diceOverlap(tokens, sp.Tags)
	if tokenScore > 0 {
		score += w.Token * tokenScore
		for _, tag := range matchedTags {
			reasons = append(reasons, "token:"+tag)
		}
	}

	if syns := e.synonyms.ParentSynonyms[sp.Parent]; len(syns) > 0 {
		synScore := synonymCoverage(normalized, syns)
		if synScore > 0 {
			score += w.Synonym * synScore
			if phrase := matchedSynonym(normalized, syns); phrase != "" {
				reasons = append(reasons, "synonym:"+phrase)
			} else {
				reasons = append(reasons, fmt.Sprintf("synonym:partial:%.2f", synScore))
			}
		}
	}

	charSim := e.similarity.Similarity(normalized, normalize(sp.Name))
	for _, tag := range sp.Tags {
		if s := e.similarity.Similarity(normalized, tag); s > charSim {
			charSim = s
		}
	}
	if charSim > 0 {
		score += w.CharSim * charSim
		reasons = append(reasons, fmt.Sprintf("charsim:%.2f", charSim))
	}

	if input.Meta != nil && input.Meta.Pediatric != nil {
		flagged := *input.Meta.Pediatric
		if flagged && sp.Domain == taxonomy.DomainPediatric {
			score += w.SourceHint
			reasons = append(reasons, "source:pediatric-flag")
		}
		if !flagged && sp.Domain == taxonomy.DomainAdult {
			score += w.SourceHint
			reasons = append(reasons, "source:adult-flag")
		}
	}

	for _, neg := range e.synonyms.NegativeTokens[sp.Parent] {
		if containsPhrase(normalized, neg) {
			score += w.Negative
			reasons = append(reasons, "negative:"+neg)
			break
		}
	}

	// Sorted iteration keeps reason order byte-identical across runs.
	if subTokens := e.synonyms.SubspecialtyTokens[sp.Parent]; len(subTokens) > 0 {
		tokenKeys := make([]string, 0, len(subTokens))
		for token := range subTokens {
			tokenKeys = append(tokenKeys, token)
		}
		sort.Strings(tokenKeys)
		for _, token := range tokenKeys {
			if !containsPhrase(normalized, token) {
				continue
			}
			for _, id := range subTokens[token] {
				if id == sp.ID {
					score += subspecialtyBoost
					reasons = append(reasons, "subspecialty:"+token)
					break
				}
			}
		}
	}

	if score > 1 {
		score = 1
	}

	return MatchCandidate{CanonicalID: sp.ID, Score: score, Reasons: reasons}
}
