// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package catalogcache persists derived PointSignatures between process
// restarts. Signatures are cheap to derive but a commissioning run touches
// the same device point lists over and over; caching them keyed by
// (objectName, dictionary version) means a dictionary reload invalidates
// every stale entry without an explicit invalidation API — the old keys
// simply become unreachable and age out via BadgerDB's native TTL.
package catalogcache

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"log/slog"
	"time"

	dgbadger "github.com/dgraph-io/badger/v4"

	"github.com/cxalloy/bascat/services/catalog/model"
)

// signatureKeyPrefix is prepended to the cache key. Versioned (v1) to allow
// future encoding changes without collision.
const signatureKeyPrefix = "catalog/sig/v1/"

// defaultTTL is the default lifetime of a cached signature entry. Long
// enough to span a multi-day commissioning visit; short enough that
// abandoned device entries do not accumulate indefinitely.
const defaultTTL = 7 * 24 * time.Hour

// errCacheMiss distinguishes "key not found" (a normal miss) from a genuine
// storage error inside Load.
var errCacheMiss = errors.New("cache miss")

// SignatureStore persists PointSignatures across process restarts.
//
// Both methods are nil-safe on the *Store implementation: a nil *Store
// behaves as an always-miss, never-fail cache, which is the correct mode
// for tests and for CLI invocations that do not configure a cache
// directory.
type SignatureStore interface {
	// Load retrieves the cached signature for (objectName, dictVersion).
	// Returns (zero, false, nil) on miss, (zero, false, error) on storage
	// failure, (sig, true, nil) on hit.
	Load(ctx context.Context, objectName, dictVersion string) (model.PointSignature, bool, error)

	// Save persists a signature under (objectName, dictVersion). The store
	// applies its TTL automatically. A save failure is non-fatal to the
	// caller: the signature is simply recomputed next time.
	Save(ctx context.Context, objectName, dictVersion string, sig model.PointSignature) error
}

// Store implements SignatureStore backed by a BadgerDB instance the caller
// owns. Signatures are gob-encoded; a PointSignature is a few hundred bytes
// so a full device's points fit in one memtable.
//
// Safe for concurrent use; BadgerDB transactions are per-goroutine.
type Store struct {
	db     *dgbadger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// Open opens (or creates) a BadgerDB at dir and returns a Store over it.
// Close releases the DB. ttl <= 0 selects the default (7 days).
func Open(dir string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	opts := dgbadger.DefaultOptions(dir).WithLogger(nil)
	db, err := dgbadger.Open(opts)
	if err != nil {
		return nil, err
	}
	return New(db, ttl, logger), nil
}

// New wraps an already-open BadgerDB. Close on the returned Store closes
// db as well; the Store does not track whether it opened db itself.
func New(db *dgbadger.DB, ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, ttl: ttl, logger: logger}
}

// Close closes the underlying DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func cacheKey(objectName, dictVersion string) []byte {
	return []byte(signatureKeyPrefix + dictVersion + "/" + objectName)
}

// Load retrieves the cached signature for (objectName, dictVersion). A nil
// Store always misses.
func (s *Store) Load(ctx context.Context, objectName, dictVersion string) (model.PointSignature, bool, error) {
	var zero model.PointSignature
	if s == nil || s.db == nil {
		return zero, false, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	var raw []byte
	err := s.db.View(func(txn *dgbadger.Txn) error {
		item, err := txn.Get(cacheKey(objectName, dictVersion))
		if errors.Is(err, dgbadger.ErrKeyNotFound) {
			return errCacheMiss
		}
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, errCacheMiss) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}

	var sig model.PointSignature
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&sig); err != nil {
		// A decode failure means the entry was written by an incompatible
		// build. Treat as a miss; the TTL will collect it.
		s.logger.Warn("catalogcache: decode failed, treating as miss",
			slog.String("objectName", objectName), slog.Any("error", err))
		return zero, false, nil
	}
	return sig, true, nil
}

// Save persists a signature under (objectName, dictVersion) with the
// store's TTL. A nil Store is a no-op.
func (s *Store) Save(ctx context.Context, objectName, dictVersion string, sig model.PointSignature) error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(sig); err != nil {
		return err
	}
	return s.db.Update(func(txn *dgbadger.Txn) error {
		entry := dgbadger.NewEntry(cacheKey(objectName, dictVersion), buf.Bytes()).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
}
