// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"context"
	"testing"
	"time"

	dgbadger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxalloy/bascat/services/catalog/catalogcache"
	"github.com/cxalloy/bascat/services/catalog/model"
	"github.com/cxalloy/bascat/services/catalog/normalize"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(Options{})
}

func TestValidateRawPoint(t *testing.T) {
	e := newTestEngine(t)

	assert.NoError(t, e.ValidateRawPoint(model.RawPoint{ObjectName: "AI39", ObjectType: model.ObjectTypeAI}))
	assert.Error(t, e.ValidateRawPoint(model.RawPoint{ObjectType: model.ObjectTypeAI}), "missing objectName")
	assert.Error(t, e.ValidateRawPoint(model.RawPoint{ObjectName: "X1", ObjectType: "ZZ"}), "object type outside the closed set")
}

func TestNormalize_RoomTemperatureScenario(t *testing.T) {
	e := newTestEngine(t)

	np := e.Normalize(context.Background(), model.RawPoint{
		ObjectName:  "AI39",
		ObjectType:  model.ObjectTypeAI,
		DisplayName: "ROOM TEMP 4",
		Description: "Room Temperature",
		Units:       "°F",
	}, model.NormalizationContext{EquipmentType: "VAV_CONTROLLER"})

	assert.Equal(t, "Room Temperature", np.NormalizedName)
	assert.Equal(t, model.FunctionSensor, np.PointFunction)
	assert.Greater(t, np.ConfidenceScore, 0.70)
}

func TestNormalizeBatch_PreservesOrder(t *testing.T) {
	e := newTestEngine(t)
	inputs := []normalize.BatchInput{
		{Raw: model.RawPoint{ObjectName: "AI1", ObjectType: model.ObjectTypeAI, DisplayName: "ROOM TEMP"}},
		{Raw: model.RawPoint{ObjectName: "AO1", ObjectType: model.ObjectTypeAO, DisplayName: "DAMPER POS"}},
	}

	results := e.NormalizeBatch(context.Background(), inputs, 2)

	require.Len(t, results, 2)
	assert.Equal(t, "AI1", results[0].ObjectName)
	assert.Equal(t, "AO1", results[1].ObjectName)
}

func TestSignature_CacheRoundTrip(t *testing.T) {
	db, err := dgbadger.Open(dgbadger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	e := New(Options{SignatureCache: catalogcache.New(db, 0, nil)})
	np := e.Normalize(context.Background(), model.RawPoint{
		ObjectName:  "AI39",
		ObjectType:  model.ObjectTypeAI,
		DisplayName: "ROOM TEMP",
		Units:       "°F",
	}, model.NormalizationContext{})

	first := e.Signature(context.Background(), np)
	second := e.Signature(context.Background(), np)

	assert.Equal(t, first, second, "cached signature must equal the freshly built one")
	assert.Contains(t, first.Keywords, "room")
	assert.Contains(t, first.Keywords, "temperature")
}

// The S5 scenario: a template point carrying only a raw bacnetDis value
// must still match the observed zone-temperature setpoint on name and
// units, with the context quality flag set.
func TestMatchTemplate_ZoneTemperatureAgainstRawFacet(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	observed := e.Normalize(ctx, model.RawPoint{
		ObjectName:  "AV7",
		ObjectType:  model.ObjectTypeAV,
		DisplayName: "ZN-T SP",
		Units:       "°F",
		IsWritable:  true,
	}, model.NormalizationContext{})
	require.Equal(t, model.FunctionSetpoint, observed.PointFunction)

	template := model.EquipmentTemplate{
		ID:            "tpl-vav",
		Name:          "VAV Standard",
		EquipmentType: "VAV_CONTROLLER",
		Points: []model.PointTemplate{{
			TemplatePointID: "tp-znt",
			PointFunction:   model.FunctionSensor,
			Units:           "°F",
			BACnetDis:       "ZN-T",
			MatchingFacet:   model.FacetBACnetDis,
			Required:        true,
		}},
	}

	matches := e.MatchTemplate(ctx, []model.NormalizedPoint{observed}, template)

	require.Len(t, matches, 1)
	assert.GreaterOrEqual(t, matches[0].MatchScore, 0.70)
	assert.True(t, matches[0].Quality.Context, "units agree, so the context flag must be set")
	assert.Equal(t, "AV7", matches[0].MatchedPointObjectName)
}

func TestMatchTemplate_BestObservedPerTemplatePoint(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	sensor := e.Normalize(ctx, model.RawPoint{
		ObjectName: "AI1", ObjectType: model.ObjectTypeAI, DisplayName: "ZN-T", Units: "°F",
	}, model.NormalizationContext{})
	setpoint := e.Normalize(ctx, model.RawPoint{
		ObjectName: "AV1", ObjectType: model.ObjectTypeAV, DisplayName: "ZN-T SP", Units: "°F", IsWritable: true,
	}, model.NormalizationContext{})

	template := model.EquipmentTemplate{
		ID: "tpl",
		Points: []model.PointTemplate{{
			TemplatePointID: "tp-1",
			Name:            "Zone Temperature",
			PointFunction:   model.FunctionSensor,
			Units:           "°F",
		}},
	}

	matches := e.MatchTemplate(ctx, []model.NormalizedPoint{setpoint, sensor}, template)

	require.Len(t, matches, 1, "one template point yields at most one match")
	assert.Equal(t, "AI1", matches[0].MatchedPointObjectName,
		"the sensor outscores the setpoint on function agreement")
}

func TestMatchTemplate_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	points := []model.NormalizedPoint{
		e.Normalize(ctx, model.RawPoint{ObjectName: "AI1", ObjectType: model.ObjectTypeAI, DisplayName: "ROOM TEMP"}, model.NormalizationContext{}),
		e.Normalize(ctx, model.RawPoint{ObjectName: "AO1", ObjectType: model.ObjectTypeAO, DisplayName: "DAMPER POS"}, model.NormalizationContext{}),
	}
	template := model.EquipmentTemplate{
		ID: "tpl",
		Points: []model.PointTemplate{
			{TemplatePointID: "tp-temp", Name: "Room Temperature", PointFunction: model.FunctionSensor},
			{TemplatePointID: "tp-dmp", Name: "Damper Position", PointFunction: model.FunctionCommand},
		},
	}

	first := e.MatchTemplate(ctx, points, template)
	second := e.MatchTemplate(ctx, points, template)
	assert.Equal(t, first, second)
}

func TestAutoMap_ExactScenario(t *testing.T) {
	e := newTestEngine(t)

	result := e.AutoMap(context.Background(),
		[]model.BACnetEquipment{{ID: "b1", Name: "VAV-101", Type: "VAV_CONTROLLER"}},
		[]model.CxAlloyEquipment{{ID: "c1", Name: "VAV-101", Type: "VAV Terminal"}})

	require.Len(t, result.Exact, 1)
	assert.Equal(t, 1.0, result.Exact[0].Confidence)
	assert.Equal(t, model.MatchTypeTypeAssisted, result.Exact[0].MatchType)
}

func TestRefreshTemplateStats(t *testing.T) {
	e := newTestEngine(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	report := model.EffectivenessReport{
		OverallEffectiveness: 0.72,
		PointMatchRate:       0.9,
		ConfidenceScore:      0.8,
		UsageFrequency:       5,
	}

	updated := e.RefreshTemplateStats(model.EquipmentTemplate{ID: "tpl"}, report, now)

	assert.Equal(t, 5, updated.UsageCount)
	assert.InDelta(t, 0.72, updated.Effectiveness, 1e-9)
	assert.InDelta(t, 1.0, updated.SuccessRate, 1e-9)
	assert.Equal(t, now, updated.UpdatedAt)
}
