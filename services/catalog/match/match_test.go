// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/model"
)

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("zone", "zone"))
	assert.Equal(t, 1, levenshteinDistance("zone", "zne"))
	assert.Equal(t, 4, levenshteinDistance("", "zone"))
}

func TestJaccardOverlap(t *testing.T) {
	assert.Equal(t, 1.0, jaccardOverlap(nil, nil))
	assert.Equal(t, 1.0, jaccardOverlap([]string{"a", "b"}, []string{"a", "b"}))
	assert.InDelta(t, 0.5, jaccardOverlap([]string{"a", "b"}, []string{"a"}), 0.0001)
	assert.Equal(t, 0.0, jaccardOverlap([]string{"a"}, []string{"b"}))
}

// Signature match — an exact signature pairing should produce the highest
// quality tier.
func TestMatch_ExactSignature(t *testing.T) {
	m := New(config.DefaultMatchConfig())
	sig := model.PointSignature{
		NormalizedPattern: "zone temperature",
		Keywords:          []string{"zone", "temperature"},
		PointFunction:     model.FunctionSetpoint,
		ObjectType:        model.ObjectTypeAV,
		Units:             "degF",
		Confidence:        0.9,
	}

	results := m.Match(sig, "AV-1", []Candidate{
		{TemplateID: "t1", TemplatePointID: "zone-temp-sp", Signature: sig, Required: true},
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Quality.Exact)
	assert.True(t, results[0].Quality.Context)
	assert.GreaterOrEqual(t, results[0].Confidence, config.DefaultMatchConfig().ExactQualityThreshold)
}

// Template match — a clearly different candidate scores low enough to be
// dropped by ConfidenceThreshold.
func TestMatch_DissimilarCandidateDropped(t *testing.T) {
	m := New(config.DefaultMatchConfig())
	observed := model.PointSignature{
		NormalizedPattern: "zone temperature",
		Keywords:          []string{"zone", "temperature"},
		PointFunction:     model.FunctionSensor,
		ObjectType:        model.ObjectTypeAI,
	}
	candidate := model.PointSignature{
		NormalizedPattern: "supply fan speed",
		Keywords:          []string{"supply", "fan", "speed"},
		PointFunction:     model.FunctionCommand,
		ObjectType:        model.ObjectTypeAO,
	}

	results := m.Match(observed, "AI-1", []Candidate{
		{TemplateID: "t1", TemplatePointID: "sf-speed", Signature: candidate},
	})
	assert.Empty(t, results)
}

func TestMatch_RespectsMaxResults(t *testing.T) {
	cfg := config.DefaultMatchConfig()
	cfg.MaxResults = 1
	cfg.ConfidenceThreshold = 0
	m := New(cfg)

	sig := model.PointSignature{Keywords: []string{"zone"}, NormalizedPattern: "zone"}
	results := m.Match(sig, "AI-1", []Candidate{
		{TemplateID: "t1", TemplatePointID: "a", Signature: sig},
		{TemplateID: "t1", TemplatePointID: "b", Signature: sig},
	})
	assert.Len(t, results, 1)
}

func TestMatch_RequiredPointBelowThresholdWarns(t *testing.T) {
	cfg := config.DefaultMatchConfig()
	cfg.ConfidenceThreshold = 0
	m := New(cfg)

	observed := model.PointSignature{Keywords: []string{"zone", "temperature"}, NormalizedPattern: "zone temperature"}
	candidate := model.PointSignature{Keywords: []string{"supply", "fan"}, NormalizedPattern: "supply fan"}

	results := m.Match(observed, "AI-1", []Candidate{
		{TemplateID: "t1", TemplatePointID: "sf", Signature: candidate, Required: true},
	})
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Warnings)
}

func TestMatch_NeverPanics(t *testing.T) {
	m := New(config.DefaultMatchConfig())
	require.NotPanics(t, func() {
		m.Match(model.PointSignature{}, "", nil)
	})
}

func TestMatch_DisagreementRecommendations(t *testing.T) {
	cfg := config.DefaultMatchConfig()
	cfg.ConfidenceThreshold = 0
	m := New(cfg)

	observed := model.PointSignature{
		Keywords:          []string{"zone", "temperature"},
		NormalizedPattern: "ZONETEMPERATURE",
		PointFunction:     model.FunctionSetpoint,
		Units:             "degF",
	}
	candidate := model.PointSignature{
		Keywords:          []string{"zone", "temperature"},
		NormalizedPattern: "ZONETEMPERATURE",
		PointFunction:     model.FunctionSensor,
		Units:             "degC",
	}

	results := m.Match(observed, "AV-1", []Candidate{
		{TemplateID: "t1", TemplatePointID: "znt", Signature: candidate},
	})
	require.Len(t, results, 1)
	require.Len(t, results[0].Recommendations, 2)
	assert.Contains(t, results[0].Recommendations[0], "function disagrees")
	assert.Contains(t, results[0].Recommendations[1], "units disagree")
}
