// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxalloy/bascat/services/catalog/model"
)

func TestReadWriteJSONFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	want := []model.RawPoint{
		{ObjectName: "AI39", ObjectType: model.ObjectTypeAI, DisplayName: "ROOM TEMP 4", Units: "°F"},
		{ObjectName: "AO0", ObjectType: model.ObjectTypeAO, DisplayName: "DAMPER POS 5", Units: "%"},
	}

	require.NoError(t, writeJSONFile(path, want))
	got, err := readJSONFile[[]model.RawPoint](path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadJSONFile_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, writeJSONFile(path, []map[string]any{{"objectName": "AI1", "bogus": true}}))

	_, err := readJSONFile[[]model.RawPoint](path)
	assert.Error(t, err)
}

func TestReviewItem_Rendering(t *testing.T) {
	np := model.NormalizedPoint{
		ObjectName:      "AI39",
		NormalizedName:  "Room Temperature",
		PointFunction:   model.FunctionSensor,
		ConfidenceScore: 0.42,
	}
	item := reviewItem{index: 0, np: &np}

	assert.Contains(t, item.Title(), "AI39")
	assert.Contains(t, item.Title(), "Room Temperature")
	assert.NotContains(t, item.Title(), "✓")
	assert.Contains(t, item.Description(), "0.42")

	item.edited = true
	assert.Contains(t, item.Title(), "✓")
}
