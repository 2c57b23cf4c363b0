// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package automap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/model"
)

// S6 — an exact name match with a type-equivalent target lands in Exact
// with confidence 1.00 and MatchType escalated to type-assisted.
func TestAutoMap_ExactNameTypeAssisted(t *testing.T) {
	m := New(config.DefaultAutoMapConfig())
	sources := []model.BACnetEquipment{{ID: "b1", Name: "VAV-101", Type: "VAV_CONTROLLER"}}
	targets := []model.CxAlloyEquipment{{ID: "c1", Name: "VAV-101", Type: "VAV Terminal"}}

	result := m.AutoMap(context.Background(), sources, targets)

	require.Len(t, result.Exact, 1)
	assert.Empty(t, result.Suggested)
	assert.Equal(t, 1.00, result.Exact[0].Confidence)
	assert.Equal(t, model.MatchTypeTypeAssisted, result.Exact[0].MatchType)
	assert.Empty(t, result.UnmatchedSource)
	assert.Empty(t, result.UnmatchedTarget)
}

// A source name contained in a longer catalog name, with equivalent
// types, lands in Suggested with confidence strictly between the two
// thresholds.
func TestAutoMap_ContainedNameSuggested(t *testing.T) {
	m := New(config.DefaultAutoMapConfig())
	sources := []model.BACnetEquipment{{ID: "b1", Name: "VAV_1", Type: "VAV_CONTROLLER"}}
	targets := []model.CxAlloyEquipment{{ID: "c1", Name: "VAV-1 Terminal", Type: "VAV Terminal"}}

	result := m.AutoMap(context.Background(), sources, targets)

	require.Len(t, result.Suggested, 1)
	assert.Empty(t, result.Exact)
	assert.Empty(t, result.UnmatchedSource)
	assert.Greater(t, result.Suggested[0].Confidence, config.DefaultAutoMapConfig().SuggestedThreshold)
	assert.Less(t, result.Suggested[0].Confidence, config.DefaultAutoMapConfig().ExactThreshold)
}

// A near-miss name (single-digit typo, falling through to the Levenshtein
// fallback tier) lands in Suggested rather than Exact or unmatched.
func TestAutoMap_FallbackTierSuggested(t *testing.T) {
	m := New(config.DefaultAutoMapConfig())
	sources := []model.BACnetEquipment{{ID: "b1", Name: "AHU-101"}}
	targets := []model.CxAlloyEquipment{{ID: "c1", Name: "AHU-102"}}

	result := m.AutoMap(context.Background(), sources, targets)

	require.Len(t, result.Suggested, 1)
	assert.Empty(t, result.Exact)
	assert.GreaterOrEqual(t, result.Suggested[0].Confidence, config.DefaultAutoMapConfig().SuggestedThreshold)
	assert.Less(t, result.Suggested[0].Confidence, config.DefaultAutoMapConfig().ExactThreshold)
}

func TestAutoMap_NoCandidateUnmatched(t *testing.T) {
	m := New(config.DefaultAutoMapConfig())
	sources := []model.BACnetEquipment{{ID: "b1", Name: "Totally Different Device"}}
	targets := []model.CxAlloyEquipment{{ID: "c1", Name: "Unrelated Equipment Record"}}

	result := m.AutoMap(context.Background(), sources, targets)

	assert.Empty(t, result.Exact)
	assert.Empty(t, result.Suggested)
	require.Len(t, result.UnmatchedSource, 1)
	require.Len(t, result.UnmatchedTarget, 1)
}

// Assignment uniqueness (§8 property 4): two sources competing for one
// target only one of them claims it; the loser falls through to the next
// best (or unmatched).
func TestAutoMap_TargetClaimedOnce(t *testing.T) {
	m := New(config.DefaultAutoMapConfig())
	sources := []model.BACnetEquipment{
		{ID: "b1", Name: "AHU-1"},
		{ID: "b2", Name: "AHU-1"},
	}
	targets := []model.CxAlloyEquipment{
		{ID: "c1", Name: "AHU-1"},
	}

	result := m.AutoMap(context.Background(), sources, targets)

	require.Len(t, result.Exact, 1)
	require.Len(t, result.UnmatchedSource, 1)
	assert.Equal(t, "c1", result.Exact[0].CxAlloyEquipmentID)
}

// Threshold coherence (§8 property 5).
func TestAutoMap_ThresholdCoherence(t *testing.T) {
	m := New(config.DefaultAutoMapConfig())
	sources := []model.BACnetEquipment{
		{ID: "b1", Name: "RTU-1"},
		{ID: "b2", Name: "RTU_1"},
	}
	targets := []model.CxAlloyEquipment{
		{ID: "c1", Name: "RTU-1"},
		{ID: "c2", Name: "RTU 1 Unit"},
	}

	result := m.AutoMap(context.Background(), sources, targets)

	cfg := config.DefaultAutoMapConfig()
	for _, match := range result.Exact {
		assert.GreaterOrEqual(t, match.Confidence, cfg.ExactThreshold)
	}
	for _, match := range result.Suggested {
		assert.GreaterOrEqual(t, match.Confidence, cfg.SuggestedThreshold)
		assert.Less(t, match.Confidence, cfg.ExactThreshold)
	}
}

func TestAutoMap_NeverPanics(t *testing.T) {
	m := New(config.DefaultAutoMapConfig())
	require.NotPanics(t, func() {
		m.AutoMap(context.Background(), nil, nil)
	})
}

func TestAutoMap_RespectsCancellation(t *testing.T) {
	m := New(config.DefaultAutoMapConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := []model.BACnetEquipment{{ID: "b1", Name: "AHU-1"}}
	targets := []model.CxAlloyEquipment{{ID: "c1", Name: "AHU-1"}}

	result := m.AutoMap(ctx, sources, targets)
	assert.Empty(t, result.Exact)
	require.Len(t, result.UnmatchedSource, 1)
}
