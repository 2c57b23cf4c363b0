// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	set := LoadEmbedded()
	require.NotNil(t, set)

	e, ok := set.General.Lookup("sa")
	require.True(t, ok)
	assert.Equal(t, "Supply Air", e.Expansion)

	vav := set.EquipmentTable("VAV_CONTROLLER")
	require.NotNil(t, vav)
	e, ok = vav.Lookup("dpr")
	require.True(t, ok)
	assert.Equal(t, "VAV Damper", e.Expansion)

	jci := set.VendorTable("JCI")
	require.NotNil(t, jci)
	_, ok = jci.Lookup("MSTP")
	assert.True(t, ok)
}

// TestCCWStrayDuplicateResolution pins §9 open question (b): the higher
// priority entry wins regardless of file order.
func TestCCWStrayDuplicateResolution(t *testing.T) {
	set := LoadEmbedded()
	e, ok := set.General.Lookup("CCW")
	require.True(t, ok)
	assert.Equal(t, "Counterclockwise", e.Expansion)
	assert.Equal(t, 6, e.Priority)
}

func TestDedupTiesKeepFirstOccurrence(t *testing.T) {
	entries := []Entry{
		{Acronym: "X", Expansion: "First", Priority: 5},
		{Acronym: "X", Expansion: "Second", Priority: 5},
	}
	table := dedup(entries)
	assert.Equal(t, "First", table["X"].Expansion)
}

func TestDedupHigherPriorityWins(t *testing.T) {
	entries := []Entry{
		{Acronym: "X", Expansion: "Low", Priority: 3},
		{Acronym: "X", Expansion: "High", Priority: 9},
	}
	table := dedup(entries)
	assert.Equal(t, "High", table["X"].Expansion)
}

func TestStoreWatchAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(LoadEmbedded())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Watch(ctx, dir, nil))

	// No override file yet: base embedded value still wins.
	e, ok := store.Snapshot().General.Lookup("SA")
	require.True(t, ok)
	assert.Equal(t, "Supply Air", e.Expansion)

	overridePath := filepath.Join(dir, overrideGeneralFile)
	content := []byte("- acronym: SA\n  expansion: Supply Airflow Override\n  category: airflow\n  priority: 8\n")
	require.NoError(t, os.WriteFile(overridePath, content, 0o644))

	require.Eventually(t, func() bool {
		e, ok := store.Snapshot().General.Lookup("SA")
		return ok && e.Expansion == "Supply Airflow Override"
	}, 2*time.Second, 20*time.Millisecond)
}
