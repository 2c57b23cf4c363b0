// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package effectiveness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/model"
)

func TestReport_NoApplications(t *testing.T) {
	a := New(config.DefaultEffectivenessConfig())
	report := a.Report(model.EquipmentTemplate{}, nil)

	assert.Equal(t, 0, report.UsageFrequency)
	assert.Equal(t, 0.0, report.OverallEffectiveness)
	require.Len(t, report.Recommendations, 1)
}

func TestReport_HighPerformingTemplate(t *testing.T) {
	a := New(config.DefaultEffectivenessConfig())
	apps := []model.TemplateApplication{
		{IsSuccessful: true, MatchingResults: model.MatchingResults{MatchedPoints: 4, UnmatchedPoints: 0, AverageConfidence: 0.90}},
		{IsSuccessful: true, MatchingResults: model.MatchingResults{MatchedPoints: 4, UnmatchedPoints: 0, AverageConfidence: 0.95}},
	}

	report := a.Report(model.EquipmentTemplate{}, apps)

	assert.Equal(t, 2, report.UsageFrequency)
	assert.Equal(t, 1.0, report.PointMatchRate)
	assert.InDelta(t, 0.925, report.ConfidenceScore, 0.001)
	assert.Greater(t, report.OverallEffectiveness, 0.80)
	assert.Empty(t, report.Recommendations)
}

func TestReport_LowPerformingTemplateRecommends(t *testing.T) {
	a := New(config.DefaultEffectivenessConfig())
	apps := []model.TemplateApplication{
		{IsSuccessful: false, MatchingResults: model.MatchingResults{MatchedPoints: 1, UnmatchedPoints: 3, AverageConfidence: 0.40}},
	}

	report := a.Report(model.EquipmentTemplate{}, apps)

	assert.Less(t, report.OverallEffectiveness, config.DefaultEffectivenessConfig().OverallLowThreshold)
	assert.NotEmpty(t, report.Recommendations)
}

func TestReport_NeverPanics(t *testing.T) {
	a := New(config.DefaultEffectivenessConfig())
	assert.NotPanics(t, func() {
		a.Report(model.EquipmentTemplate{}, []model.TemplateApplication{{}})
	})
}
