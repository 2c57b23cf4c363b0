// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package catalogcache

import (
	"context"
	"testing"

	dgbadger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxalloy/bascat/services/catalog/model"
)

// openTestStore opens an in-memory BadgerDB store. The DB is closed at
// test cleanup.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := dgbadger.Open(dgbadger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, 0, nil)
}

func testSignature() model.PointSignature {
	return model.PointSignature{
		Pattern:           "*ROOM*TEMPERATURE*",
		NormalizedPattern: "ROOMTEMPERATURE",
		Keywords:          []string{"temperature", "room"},
		Confidence:        0.9,
		Specificity:       0.75,
		PointFunction:     model.FunctionSensor,
		ObjectType:        model.ObjectTypeAI,
		Units:             "°F",
	}
}

func TestLoad_MissOnEmptyDB(t *testing.T) {
	store := openTestStore(t)

	_, hit, err := store.Load(context.Background(), "AI39", "v-abc")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	want := testSignature()

	require.NoError(t, store.Save(context.Background(), "AI39", "v-abc", want))

	got, hit, err := store.Load(context.Background(), "AI39", "v-abc")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, want, got)
}

func TestLoad_DictionaryVersionPartitionsKeys(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Save(context.Background(), "AI39", "v-old", testSignature()))

	// Same object under a different dictionary version is a miss: a
	// dictionary reload invalidates without an explicit purge.
	_, hit, err := store.Load(context.Background(), "AI39", "v-new")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNilStore_IsAlwaysMissNeverFail(t *testing.T) {
	var store *Store

	_, hit, err := store.Load(context.Background(), "AI39", "v")
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, store.Save(context.Background(), "AI39", "v", testSignature()))
	assert.NoError(t, store.Close())
}

func TestLoad_CancelledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := store.Load(ctx, "AI39", "v")
	assert.Error(t, err)
}
