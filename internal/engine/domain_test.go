// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"specmap/internal/taxonomy"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Cardiology", "cardiology"},
		{"Cardiology - Interventional", "cardiology interventional"},
		{"  Family   Medicine ", "family medicine"},
		{"Ortho. Surg (Spine)", "ortho surg spine"},
		{"OB/GYN", "ob gyn"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize(tt.raw), "normalize(%q)", tt.raw)
	}
}

func TestContainsPhrase(t *testing.T) {
	assert.True(t, containsPhrase("pediatric cardiology", "pediatric"))
	assert.True(t, containsPhrase("pediatric cardiology", "pediatric cardiology"))
	assert.True(t, containsPhrase("gi advanced endoscopy", "gi"))
	// Word boundaries: no substring matches inside tokens.
	assert.False(t, containsPhrase("surgical oncology", "gi"))
	assert.False(t, containsPhrase("cardiology", "cardio"))
}

func TestClassifyDomain_SourceFlagWins(t *testing.T) {
	e := newTestEngine(t, nil)

	ped := true
	domain, note := e.classifyDomain(RawInput{
		RawName: "Cardiology", // no pediatric keyword at all
		Meta:    &Meta{Pediatric: &ped},
	}, "cardiology")
	assert.Equal(t, taxonomy.DomainPediatric, domain)
	assert.Empty(t, note)

	adult := false
	domain, _ = e.classifyDomain(RawInput{
		RawName: "Pediatric Cardiology", // flag contradicts the keyword
		Meta:    &Meta{Pediatric: &adult},
	}, "pediatric cardiology")
	assert.Equal(t, taxonomy.DomainAdult, domain)
}

func TestClassifyDomain_KeywordHints(t *testing.T) {
	e := newTestEngine(t, nil)

	domain, note := e.classifyDomain(RawInput{RawName: "Pediatric Cardiology"}, "pediatric cardiology")
	assert.Equal(t, taxonomy.DomainPediatric, domain)
	assert.Empty(t, note)

	domain, _ = e.classifyDomain(RawInput{RawName: "Nurse Practitioner"}, "nurse practitioner")
	assert.Equal(t, taxonomy.DomainAPPOther, domain)
}

func TestClassifyDomain_DefaultIsNoted(t *testing.T) {
	e := newTestEngine(t, nil)

	domain, note := e.classifyDomain(RawInput{RawName: "Cardiology"}, "cardiology")
	assert.Equal(t, taxonomy.DomainAdult, domain)
	assert.Contains(t, note, "no domain signal")
}
