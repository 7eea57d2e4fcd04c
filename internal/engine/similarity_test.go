// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaroWinkler(t *testing.T) {
	jw := jaroWinkler{}

	assert.Equal(t, 1.0, jw.Similarity("cardiology", "cardiology"))
	assert.Equal(t, 0.0, jw.Similarity("", "cardiology"))
	assert.Equal(t, 0.0, jw.Similarity("cardiology", ""))

	// Classic reference pair.
	assert.InDelta(t, 0.961, jw.Similarity("martha", "marhta"), 0.001)

	// The common-prefix bonus rewards shared beginnings.
	withPrefix := jw.Similarity("cardiology", "cardiologist")
	noPrefix := jw.Similarity("cardiology", "radiology")
	assert.Greater(t, withPrefix, noPrefix)
}

func TestTokenSetRatio_WordOrderInvariant(t *testing.T) {
	tsr := tokenSetRatio{}

	assert.Equal(t, 1.0, tsr.Similarity("cardiology interventional", "interventional cardiology"))
	assert.Equal(t, 1.0, tsr.Similarity("cardiology cardiology", "cardiology"))
	assert.Equal(t, 0.0, tsr.Similarity("", "cardiology"))
}

func TestTokenSetRatio_SubsetScoresFull(t *testing.T) {
	tsr := tokenSetRatio{}

	// One side fully contained in the other still scores 1.0, matching the
	// token-set recombination semantics.
	assert.Equal(t, 1.0, tsr.Similarity("cardiology", "interventional cardiology"))
}

func TestLevenshteinRatio(t *testing.T) {
	assert.Equal(t, 1.0, levenshteinRatio("abc", "abc"))
	assert.Equal(t, 0.0, levenshteinRatio("", "abc"))
	assert.InDelta(t, 1.0-3.0/7.0, levenshteinRatio("kitten", "sitting"), 0.0001)
}
