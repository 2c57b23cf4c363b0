// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package normalize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/dictionary"
	"github.com/cxalloy/bascat/services/catalog/model"
)

func testNormalizer() *Normalizer {
	store := dictionary.NewStore(dictionary.LoadEmbedded())
	return New(store, config.DefaultNormalizationConfig())
}

// Room-temperature sensor.
func TestPoint_RoomTemperatureSensor(t *testing.T) {
	n := testNormalizer()
	out := n.Point(model.RawPoint{
		ObjectName:  "AI-4",
		ObjectType:  model.ObjectTypeAI,
		DisplayName: "ROOM TEMP 4",
	}, model.NormalizationContext{})

	assert.Equal(t, "Room Temperature", out.NormalizedName)
	assert.Equal(t, "Room Temperature Sensor", out.ExpandedDescription)
	assert.Equal(t, model.FunctionSensor, out.PointFunction)
	assert.True(t, out.HasTag("room"))
	assert.True(t, out.HasTag("temp"))
	assert.True(t, out.HasTag("sensor"))
	assert.Empty(t, out.Errors)
}

// Damper command.
func TestPoint_DamperCommand(t *testing.T) {
	n := testNormalizer()
	out := n.Point(model.RawPoint{
		ObjectName:  "AO-5",
		ObjectType:  model.ObjectTypeAO,
		DisplayName: "DAMPER POS 5",
	}, model.NormalizationContext{})

	assert.Equal(t, "Damper Position", out.NormalizedName)
	assert.Equal(t, model.FunctionCommand, out.PointFunction)
	assert.True(t, out.HasTag("cmd"))
	assert.True(t, out.HasTag("damper"))
}

// Zone setpoint.
func TestPoint_ZoneSetpoint(t *testing.T) {
	n := testNormalizer()
	out := n.Point(model.RawPoint{
		ObjectName:  "AV-1",
		ObjectType:  model.ObjectTypeAV,
		DisplayName: "ZN-T SP",
		IsWritable:  true,
	}, model.NormalizationContext{})

	assert.Equal(t, "Zone Temperature", out.NormalizedName)
	assert.Equal(t, "Zone Temperature Setpoint", out.ExpandedDescription)
	assert.Equal(t, model.FunctionSetpoint, out.PointFunction)
	assert.True(t, out.HasTag("sp"))
	assert.True(t, out.RequiresManualReview)
}

func TestPoint_BinaryInputStatusPromotion(t *testing.T) {
	n := testNormalizer()
	out := n.Point(model.RawPoint{
		ObjectName:  "BI-2",
		ObjectType:  model.ObjectTypeBI,
		DisplayName: "FAN STATUS",
	}, model.NormalizationContext{})

	assert.Equal(t, model.FunctionStatus, out.PointFunction)
}

func TestPoint_AnalogInputNeverPromotesToStatus(t *testing.T) {
	n := testNormalizer()
	out := n.Point(model.RawPoint{
		ObjectName:  "AI-9",
		ObjectType:  model.ObjectTypeAI,
		DisplayName: "FAN STATUS",
	}, model.NormalizationContext{})

	assert.Equal(t, model.FunctionSensor, out.PointFunction)
}

func TestPoint_MultistateValueWithoutSetpointOrWritableIsUnknown(t *testing.T) {
	n := testNormalizer()
	out := n.Point(model.RawPoint{
		ObjectName:  "MSV-3",
		ObjectType:  model.ObjectTypeMSV,
		DisplayName: "OCC MODE",
	}, model.NormalizationContext{})

	assert.Equal(t, model.FunctionUnknown, out.PointFunction)
}

func TestPoint_EquipmentContextPreferredOverGeneral(t *testing.T) {
	n := testNormalizer()
	out := n.Point(model.RawPoint{
		ObjectName:  "AI-10",
		ObjectType:  model.ObjectTypeAI,
		DisplayName: "SAT",
	}, model.NormalizationContext{EquipmentType: "AHU"})

	assert.Equal(t, "Supply Air Temperature", out.NormalizedName)
	assert.True(t, out.HasContextInference)
}

func TestPoint_EmptySourceIsTotal(t *testing.T) {
	n := testNormalizer()
	out := n.Point(model.RawPoint{ObjectName: "", ObjectType: model.ObjectTypeAI}, model.NormalizationContext{})

	assert.Equal(t, "Unknown Point", out.NormalizedName)
	assert.Equal(t, model.ConfidenceUnknown, out.ConfidenceLevel)
	assert.True(t, out.RequiresManualReview)
}

func TestPoint_NeverPanics(t *testing.T) {
	n := New(nil, config.DefaultNormalizationConfig())
	require.NotPanics(t, func() {
		n.Point(model.RawPoint{ObjectName: "X", ObjectType: model.ObjectTypeAI, DisplayName: "???"}, model.NormalizationContext{})
	})
}

func TestPoint_Deterministic(t *testing.T) {
	n := testNormalizer()
	raw := model.RawPoint{ObjectName: "AI-4", ObjectType: model.ObjectTypeAI, DisplayName: "ROOM TEMP 4"}
	first := n.Point(raw, model.NormalizationContext{})
	for i := 0; i < 20; i++ {
		again := n.Point(raw, model.NormalizationContext{})
		assert.Equal(t, first.NormalizedName, again.NormalizedName)
		assert.Equal(t, first.ConfidenceScore, again.ConfidenceScore)
	}
}

func TestBatch_MatchesSequential(t *testing.T) {
	n := testNormalizer()
	inputs := []BatchInput{
		{Raw: model.RawPoint{ObjectName: "AI-1", ObjectType: model.ObjectTypeAI, DisplayName: "ROOM TEMP 1"}},
		{Raw: model.RawPoint{ObjectName: "AO-2", ObjectType: model.ObjectTypeAO, DisplayName: "DAMPER POS 2"}},
		{Raw: model.RawPoint{ObjectName: "AV-3", ObjectType: model.ObjectTypeAV, DisplayName: "ZN-T SP", IsWritable: true}},
	}

	results := n.Batch(context.Background(), inputs, 2)
	require.Len(t, results, 3)
	assert.Equal(t, "Room Temperature", results[0].NormalizedName)
	assert.Equal(t, "Damper Position", results[1].NormalizedName)
	assert.Equal(t, "Zone Temperature", results[2].NormalizedName)
}

// Removing a dictionary entry can only lower (or leave) a point's
// confidence; adding a higher-priority entry can only raise it.
func TestPoint_DictionaryMonotonicity(t *testing.T) {
	raw := model.RawPoint{ObjectName: "AI-9", ObjectType: model.ObjectTypeAI, DisplayName: "ROOM TEMP"}

	full := dictionary.LoadEmbedded()
	withFull := New(dictionary.NewStore(full), config.DefaultNormalizationConfig()).
		Point(raw, model.NormalizationContext{})

	// Drop TEMP from the general table.
	pruned := &dictionary.Set{
		General:   make(dictionary.Table, len(full.General)),
		Equipment: full.Equipment,
		Vendor:    full.Vendor,
	}
	for k, e := range full.General {
		if k != "TEMP" {
			pruned.General[k] = e
		}
	}
	withPruned := New(dictionary.NewStore(pruned), config.DefaultNormalizationConfig()).
		Point(raw, model.NormalizationContext{})
	assert.LessOrEqual(t, withPruned.ConfidenceScore, withFull.ConfidenceScore)

	// Shadow TEMP with a max-priority equipment entry.
	boosted := &dictionary.Set{
		General: full.General,
		Equipment: map[string]dictionary.Table{
			"TEST_EQUIPMENT": {
				"TEMP": dictionary.Entry{Acronym: "TEMP", Expansion: "Temperature", Priority: 10},
			},
		},
		Vendor: full.Vendor,
	}
	withBoosted := New(dictionary.NewStore(boosted), config.DefaultNormalizationConfig()).
		Point(raw, model.NormalizationContext{EquipmentType: "TEST_EQUIPMENT"})
	assert.GreaterOrEqual(t, withBoosted.ConfidenceScore, withFull.ConfidenceScore)
}

// Every normalized point carries the "point" entity tag, whatever the
// input.
func TestPoint_AlwaysSeedsPointTag(t *testing.T) {
	n := testNormalizer()
	cases := []model.RawPoint{
		{ObjectName: "AI39", ObjectType: model.ObjectTypeAI, DisplayName: "ROOM TEMP 4"},
		{ObjectName: "X", ObjectType: model.ObjectTypeBV},
		{},
	}
	for _, raw := range cases {
		out := n.Point(raw, model.NormalizationContext{})
		assert.True(t, out.HasTag("point"), "input %+v", raw)
	}
}
