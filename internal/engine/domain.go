// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"strings"

	"specmap/internal/taxonomy"
)

// normalize lowercases, strips punctuation to spaces and collapses
// whitespace. All patterns, hints and synonyms match against this form.
func normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsPhrase reports whether a normalized phrase occurs in the
// normalized name on word boundaries.
func containsPhrase(normalized, phrase string) bool {
	return strings.Contains(" "+normalized+" ", " "+phrase+" ")
}

// classifyDomain resolves the input's domain. An explicit pediatric flag
// from the source adapter wins over the keyword scan; with no signal at
// all the configured default domain applies and the decision is flagged
// with an explanatory note.
func (e *Engine) classifyDomain(input RawInput, normalized string) (taxonomy.Domain, string) {
	if input.Meta != nil && input.Meta.Pediatric != nil {
		if *input.Meta.Pediatric {
			return taxonomy.DomainPediatric, ""
		}
		return taxonomy.DomainAdult, ""
	}

	hints := e.synonyms.DomainHints
	for _, h := range hints.Pediatric {
		if containsPhrase(normalized, h) {
			return taxonomy.DomainPediatric, ""
		}
	}
	for _, h := range hints.AppOther {
		if containsPhrase(normalized, h) {
			return taxonomy.DomainAPPOther, ""
		}
	}
	for _, h := range hints.Adult {
		if containsPhrase(normalized, h) {
			return taxonomy.DomainAdult, ""
		}
	}

	return e.cfg.DefaultDomain, fmt.Sprintf("no domain signal; defaulted to %s", e.cfg.DefaultDomain)
}
