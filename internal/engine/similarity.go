// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"sort"
	"strings"
)

// SimilarityStrategy computes character-level similarity in [0,1] between
// two normalized strings. The strategy is chosen once at engine
// construction via the feature flags, never branched per call.
type SimilarityStrategy interface {
	Name() string
	Similarity(a, b string) float64
}

// jaroWinkler implements the Jaro-Winkler similarity with the standard
// constants: scaling factor 0.1 and a common-prefix cap of 4.
type jaroWinkler struct{}

func (jaroWinkler) Name() string { return "jaro-winkler" }

func (jaroWinkler) Similarity(a, b string) float64 {
	jaro := jaroSimilarity(a, b)
	if jaro == 0 {
		return 0
	}

	prefix := 0
	for i := 0; i < len(a) && i < len(b) && i < 4; i++ {
		if a[i] != b[i] {
			break
		}
		prefix++
	}

	return jaro + float64(prefix)*0.1*(1-jaro)
}

func jaroSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}

	window := la
	if lb > window {
		window = lb
	}
	window = window/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, la)
	matchedB := make([]bool, lb)

	matches := 0
	for i := 0; i < la; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > lb {
			hi = lb
		}
		for j := lo; j < hi; j++ {
			if matchedB[j] || a[i] != b[j] {
				continue
			}
			matchedA[i] = true
			matchedB[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if !matchedA[i] {
			continue
		}
		for !matchedB[j] {
			j++
		}
		if a[i] != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(la) + m/float64(lb) + (m-t)/m) / 3
}

// tokenSetRatio implements the token-set ratio: both strings are reduced
// to sorted unique token sets, and the best normalized Levenshtein ratio
// among the intersection/remainder recombinations wins. Word order and
// duplicated tokens therefore do not hurt the score.
type tokenSetRatio struct{}

func (tokenSetRatio) Name() string { return "token-set-ratio" }

func (tokenSetRatio) Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var inter, restA, restB []string
	inB := make(map[string]bool, len(setB))
	for _, t := range setB {
		inB[t] = true
	}
	inInter := make(map[string]bool)
	for _, t := range setA {
		if inB[t] {
			inter = append(inter, t)
			inInter[t] = true
		} else {
			restA = append(restA, t)
		}
	}
	for _, t := range setB {
		if !inInter[t] {
			restB = append(restB, t)
		}
	}

	s0 := strings.Join(inter, " ")
	s1 := strings.TrimSpace(s0 + " " + strings.Join(restA, " "))
	s2 := strings.TrimSpace(s0 + " " + strings.Join(restB, " "))

	best := levenshteinRatio(s0, s1)
	if r := levenshteinRatio(s0, s2); r > best {
		best = r
	}
	if r := levenshteinRatio(s1, s2); r > best {
		best = r
	}
	return best
}

func tokenSet(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range strings.Fields(s) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// levenshteinRatio is 1 - distance/maxLen, the normalized edit similarity.
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}

	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}

	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	return 1 - float64(prev[lb])/float64(maxLen)
}
