// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"encoding/json"
	"testing"

	"specmap/internal/config"
	"specmap/internal/overrides"
	"specmap/internal/rules"
	"specmap/internal/synonyms"
	"specmap/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEngine builds an engine over the built-in taxonomy, synonyms and
// rules. A nil config selects the conservative preset.
func newTestEngine(t *testing.T, cfg *config.MappingConfig) *Engine {
	t.Helper()

	if cfg == nil {
		var err error
		cfg, err = config.Preset("conservative")
		require.NoError(t, err)
	}

	taxStore, err := taxonomy.LoadStore("")
	require.NoError(t, err)
	ruleSet, err := rules.Load()
	require.NoError(t, err)
	overrideStore, err := overrides.NewStore(nil)
	require.NoError(t, err)

	eng, err := New(Stores{
		Taxonomy:  taxStore,
		Synonyms:  synonyms.Default(),
		Rules:     ruleSet,
		Overrides: overrideStore,
	}, cfg)
	require.NoError(t, err)
	return eng
}

func TestMap_ExactHardMap(t *testing.T) {
	e := newTestEngine(t, nil)

	d := e.Map(RawInput{Source: "Gallagher", RawName: "Cardiology"})

	assert.Equal(t, StatusDecided, d.Status)
	assert.Equal(t, "CARD-GENERAL", d.CanonicalID)
	assert.Equal(t, 0.95, d.Confidence)
	assert.Equal(t, []string{"EXACT_CARD_GENERAL"}, d.AppliedRuleIDs)
	assert.Equal(t, taxonomy.DomainAdult, d.Domain)
}

func TestMap_HardMapNormalizesPunctuation(t *testing.T) {
	e := newTestEngine(t, nil)

	// Different raw spellings normalize to the same pattern input.
	for _, raw := range []string{"cardiology", "CARDIOLOGY", " Cardiology. "} {
		d := e.Map(RawInput{Source: "MGMA", RawName: raw})
		assert.Equal(t, "CARD-GENERAL", d.CanonicalID, "raw %q", raw)
		assert.Equal(t, 0.95, d.Confidence, "raw %q", raw)
	}
}

func TestMap_DomainBarrierSkipsHardMap(t *testing.T) {
	e := newTestEngine(t, nil)

	// The label alone would hard-map to adult cardiology, but the source
	// says this is a pediatric row. The adult target must be skipped and
	// the pediatric entry found through scoring instead.
	ped := true
	d := e.Map(RawInput{
		Source:  "SullivanCotter",
		RawName: "Cardiology",
		Meta:    &Meta{Pediatric: &ped},
	})

	assert.Equal(t, StatusDecided, d.Status)
	assert.Equal(t, "PEDS-CARD-GENERAL", d.CanonicalID)
	assert.Equal(t, taxonomy.DomainPediatric, d.Domain)
	assert.NotContains(t, d.AppliedRuleIDs, "EXACT_CARD_GENERAL")
	for _, c := range d.Candidates {
		sp, ok := e.taxonomy.Get(c.CanonicalID)
		require.True(t, ok)
		assert.Equal(t, taxonomy.DomainPediatric, sp.Domain,
			"candidate %s crossed the domain barrier", c.CanonicalID)
	}
}

func TestMap_SubspecialtyPreserved(t *testing.T) {
	e := newTestEngine(t, nil)

	d := e.Map(RawInput{Source: "Gallagher", RawName: "Cardiology - Interventional"})

	assert.Equal(t, StatusDecided, d.Status)
	assert.Equal(t, "CARD-INTERVENTIONAL", d.CanonicalID)

	require.NotEmpty(t, d.Candidates)
	assert.Equal(t, "CARD-INTERVENTIONAL", d.Candidates[0].CanonicalID)
	assert.Contains(t, d.Candidates[0].Reasons, "subspecialty:interventional")

	// The general entry must still be ranked, just lower.
	ids := make([]string, 0, len(d.Candidates))
	for _, c := range d.Candidates {
		ids = append(ids, c.CanonicalID)
	}
	assert.Contains(t, ids, "CARD-GENERAL")
}

func TestMap_BlockRuleVetoesSurgicalCardiology(t *testing.T) {
	e := newTestEngine(t, nil)

	d := e.Map(RawInput{Source: "MGMA", RawName: "Cardiac Surgery"})

	assert.Equal(t, StatusDecided, d.Status)
	assert.Equal(t, "CTSURG-GENERAL", d.CanonicalID)
	assert.Contains(t, d.AppliedRuleIDs, "BLOCK_SURGICAL_CARDIOLOGY")
	for _, c := range d.Candidates {
		sp, _ := e.taxonomy.Get(c.CanonicalID)
		assert.NotEqual(t, "Cardiology", sp.Parent,
			"blocked parent leaked into candidates: %s", c.CanonicalID)
	}
}

func TestMap_NoEvidenceMeansUndecided(t *testing.T) {
	e := newTestEngine(t, nil)

	d := e.Map(RawInput{Source: "Gallagher", RawName: "Transplant Hepatology"})

	assert.Equal(t, StatusUndecided, d.Status)
	assert.Empty(t, d.CanonicalID)
	assert.Equal(t, 0.0, d.Confidence)
	assert.Contains(t, d.Notes, "no parent bucket determined")
}

func TestMap_BelowThresholdKeepsUnclampedConfidence(t *testing.T) {
	e := newTestEngine(t, nil)

	// "GI" buckets to Gastroenterology through a synonym but carries too
	// little lexical signal to clear the conservative threshold.
	d := e.Map(RawInput{Source: "MGMA", RawName: "GI"})

	assert.Equal(t, StatusUndecided, d.Status)
	assert.Empty(t, d.CanonicalID)
	assert.Greater(t, d.Confidence, 0.0)
	assert.Less(t, d.Confidence, e.Config().MinDecisionThreshold)
	assert.NotEmpty(t, d.Candidates)
	assert.Contains(t, d.Notes, "below threshold")
}

func TestMap_OverrideShortCircuits(t *testing.T) {
	cfg, err := config.Preset("conservative")
	require.NoError(t, err)

	taxStore, err := taxonomy.LoadStore("")
	require.NoError(t, err)
	ruleSet, err := rules.Load()
	require.NoError(t, err)
	overrideStore, err := overrides.NewStore([]overrides.Mapping{
		{ID: "o1", Pattern: "^heart doctor$", CanonicalID: "CARD-GENERAL"},
	})
	require.NoError(t, err)

	eng, err := New(Stores{
		Taxonomy:  taxStore,
		Synonyms:  synonyms.Default(),
		Rules:     ruleSet,
		Overrides: overrideStore,
	}, cfg)
	require.NoError(t, err)

	d := eng.Map(RawInput{Source: "Gallagher", RawName: "Heart Doctor"})

	assert.Equal(t, StatusDecided, d.Status)
	assert.Equal(t, "CARD-GENERAL", d.CanonicalID)
	assert.Equal(t, 1.0, d.Confidence)
	assert.Equal(t, []string{"o1"}, d.AppliedRuleIDs)
	require.Len(t, d.Candidates, 1)
	assert.Contains(t, d.Candidates[0].Reasons, "override:o1")
}

func TestMap_AdvancedPracticeDomain(t *testing.T) {
	e := newTestEngine(t, nil)

	d := e.Map(RawInput{Source: "SullivanCotter", RawName: "Nurse Practitioner"})

	assert.Equal(t, StatusDecided, d.Status)
	assert.Equal(t, "APP-NP", d.CanonicalID)
	assert.Equal(t, taxonomy.DomainAPPOther, d.Domain)
}

func TestMap_Deterministic(t *testing.T) {
	e := newTestEngine(t, nil)

	inputs := []RawInput{
		{Source: "Gallagher", RawName: "Cardiology"},
		{Source: "Gallagher", RawName: "Cardiology - Interventional"},
		{Source: "MGMA", RawName: "Cardiac Surgery"},
		{Source: "MGMA", RawName: "Ortho Spine Surgery"},
		{Source: "SullivanCotter", RawName: "Transplant Hepatology"},
	}

	first := make([]MappingDecision, len(inputs))
	second := make([]MappingDecision, len(inputs))
	for i, in := range inputs {
		first[i] = e.Map(in)
	}
	for i, in := range inputs {
		second[i] = e.Map(in)
	}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b), "repeated runs must be byte-identical")
}

func TestNew_RejectsUnknownHardMapTarget(t *testing.T) {
	taxStore, err := taxonomy.LoadStore("")
	require.NoError(t, err)
	ruleSet, err := rules.Merge(rules.Config{
		Version:  "1.0",
		HardMaps: []rules.HardMapRule{{ID: "R1", Pattern: "^x$", CanonicalID: "NO-SUCH-ID"}},
	})
	require.NoError(t, err)
	overrideStore, err := overrides.NewStore(nil)
	require.NoError(t, err)
	cfg, err := config.Preset("conservative")
	require.NoError(t, err)

	_, err = New(Stores{
		Taxonomy:  taxStore,
		Synonyms:  synonyms.Default(),
		Rules:     ruleSet,
		Overrides: overrideStore,
	}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO-SUCH-ID")
}

func TestNew_RejectsUnknownOverrideTarget(t *testing.T) {
	taxStore, err := taxonomy.LoadStore("")
	require.NoError(t, err)
	ruleSet, err := rules.Load()
	require.NoError(t, err)
	overrideStore, err := overrides.NewStore([]overrides.Mapping{
		{ID: "o1", Pattern: "^x$", CanonicalID: "NO-SUCH-ID"},
	})
	require.NoError(t, err)
	cfg, err := config.Preset("conservative")
	require.NoError(t, err)

	_, err = New(Stores{
		Taxonomy:  taxStore,
		Synonyms:  synonyms.Default(),
		Rules:     ruleSet,
		Overrides: overrideStore,
	}, cfg)
	require.Error(t, err)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg, err := config.Preset("conservative")
	require.NoError(t, err)
	cfg.FeatureFlags.UseTokenSetRatio = true // both flags on

	taxStore, err := taxonomy.LoadStore("")
	require.NoError(t, err)
	ruleSet, err := rules.Load()
	require.NoError(t, err)
	overrideStore, err := overrides.NewStore(nil)
	require.NoError(t, err)

	_, err = New(Stores{
		Taxonomy:  taxStore,
		Synonyms:  synonyms.Default(),
		Rules:     ruleSet,
		Overrides: overrideStore,
	}, cfg)
	require.Error(t, err)
}

func TestMap_PresetsAgreeOnHardMaps(t *testing.T) {
	for _, name := range config.PresetNames() {
		cfg, err := config.Preset(name)
		require.NoError(t, err)
		e := newTestEngine(t, cfg)

		d := e.Map(RawInput{Source: "Gallagher", RawName: "Pediatric Cardiology"})
		assert.Equal(t, "PEDS-CARD-GENERAL", d.CanonicalID, "preset %s", name)
		assert.Equal(t, StatusDecided, d.Status, "preset %s", name)
	}
}
