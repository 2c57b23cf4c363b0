// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package applicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxalloy/bascat/services/catalog/model"
)

func fixedApplicator() *Applicator {
	return &Applicator{
		Clock:  func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
		IDFunc: func() string { return "app-fixed" },
	}
}

func sampleTemplate() model.EquipmentTemplate {
	return model.EquipmentTemplate{
		ID: "tmpl-1",
		Points: []model.PointTemplate{
			{TemplatePointID: "zn-t", BACnetDis: "ZN-T", Required: true, NavName: "Zone Temp", Units: "°F"},
			{TemplatePointID: "zn-sp", BACnetDis: "ZN-T SP", Required: false},
		},
	}
}

func TestApply_ExactFacetMatch(t *testing.T) {
	a := fixedApplicator()
	observed := []model.ObservedPoint{
		{ObjectName: "AV0", BACnetDis: "ZN-T", NavName: "ZoneTemp", Units: "F", Score: 0.9},
	}

	app := a.Apply(sampleTemplate(), "eq-1", observed, model.DefaultMatchingOptions(), "tester")

	require.Len(t, app.AppliedPoints, 2)
	assert.True(t, app.AppliedPoints[0].Matched)
	assert.Equal(t, "AV0", app.AppliedPoints[0].PointObjectName)
	assert.False(t, app.AppliedPoints[1].Matched)
	assert.Equal(t, 1, app.MatchingResults.MatchedPoints)
	assert.Equal(t, 1, app.MatchingResults.RequiredPointsMatched)
}

func TestApply_CopyNavNameAndUnits(t *testing.T) {
	a := fixedApplicator()
	observed := []model.ObservedPoint{
		{ObjectName: "AV0", BACnetDis: "ZN-T", NavName: "ZoneTemp", Units: "F", Score: 0.9},
	}
	opts := model.DefaultMatchingOptions()
	opts.CopyNavName = true
	opts.CopyUnits = true

	app := a.Apply(sampleTemplate(), "eq-1", observed, opts, "tester")

	assert.Equal(t, "Zone Temp", app.AppliedPoints[0].NavName)
	assert.Equal(t, "°F", app.AppliedPoints[0].Units)
}

func TestApply_PartialMatchRequiresOption(t *testing.T) {
	a := fixedApplicator()
	observed := []model.ObservedPoint{
		{ObjectName: "AV0", BACnetDis: "ZONE TEMPERATURE ZN-T SENSOR", Score: 0.8},
	}

	optsStrict := model.DefaultMatchingOptions()
	appStrict := a.Apply(sampleTemplate(), "eq-1", observed, optsStrict, "tester")
	assert.False(t, appStrict.AppliedPoints[0].Matched)

	optsPartial := model.DefaultMatchingOptions()
	optsPartial.AllowPartialMatches = true
	appPartial := a.Apply(sampleTemplate(), "eq-1", observed, optsPartial, "tester")
	assert.True(t, appPartial.AppliedPoints[0].Matched)
}

func TestApply_DefaultConfidenceWhenScoreMissing(t *testing.T) {
	a := fixedApplicator()
	observed := []model.ObservedPoint{{ObjectName: "AV0", BACnetDis: "ZN-T"}}

	app := a.Apply(sampleTemplate(), "eq-1", observed, model.DefaultMatchingOptions(), "tester")
	assert.Equal(t, 0.70, app.AppliedPoints[0].Confidence)
}

// Idempotence (§8 property 6): identical inputs produce identical
// AppliedPoints across calls.
func TestApply_Idempotent(t *testing.T) {
	a := fixedApplicator()
	observed := []model.ObservedPoint{
		{ObjectName: "AV0", BACnetDis: "ZN-T", Score: 0.9},
	}

	app1 := a.Apply(sampleTemplate(), "eq-1", observed, model.DefaultMatchingOptions(), "tester")
	app2 := a.Apply(sampleTemplate(), "eq-1", observed, model.DefaultMatchingOptions(), "tester")
	assert.Equal(t, app1.AppliedPoints, app2.AppliedPoints)
	assert.Equal(t, app1.AppliedAt, app2.AppliedAt)
}

func TestApply_RequiredUnmatchedStillEmitted(t *testing.T) {
	a := fixedApplicator()
	app := a.Apply(sampleTemplate(), "eq-1", nil, model.DefaultMatchingOptions(), "tester")

	require.Len(t, app.AppliedPoints, 2)
	assert.False(t, app.AppliedPoints[0].Matched)
	assert.False(t, app.IsSuccessful)
}

func TestApply_NeverPanics(t *testing.T) {
	a := fixedApplicator()
	assert.NotPanics(t, func() {
		a.Apply(model.EquipmentTemplate{}, "", nil, model.MatchingOptions{}, "")
	})
}
