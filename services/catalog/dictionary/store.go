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
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Store holds the process-wide dictionary snapshot consumed by the
// normalizer. A Store is safe for concurrent reads from any number of
// normalize() calls; Watch is the only writer, and it publishes each new
// snapshot atomically (§5, §9 "Process-wide dictionary state").
type Store struct {
	snapshot atomic.Pointer[Set]
}

// NewStore creates a Store seeded with the given snapshot (typically
// LoadEmbedded()'s result).
func NewStore(initial *Set) *Store {
	s := &Store{}
	s.snapshot.Store(initial)
	return s
}

// Snapshot returns the current dictionary set. The returned value must be
// treated as read-only; callers must not mutate its Tables.
func (s *Store) Snapshot() *Set {
	return s.snapshot.Load()
}

// override file names expected inside a watched directory. Any subset may
// be present; missing files simply contribute no overrides for that table.
const (
	overrideGeneralFile   = "general.yaml"
	overrideEquipmentFile = "equipment.yaml"
	overrideVendorFile    = "vendor.yaml"
)

// Watch watches dir for changes to general.yaml/equipment.yaml/vendor.yaml
// and republishes a merged snapshot (embedded base + file overrides) each
// time one changes. It loads the overrides once synchronously before
// returning so the first Snapshot() after Watch returns already reflects
// dir's contents. Watch runs its event loop in a goroutine until ctx is
// canceled; it does not block the caller.
func (s *Store) Watch(ctx context.Context, dir string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := s.reload(dir, logger); err != nil {
		logger.Warn("dictionary: initial override load failed", slog.String("dir", dir), slog.Any("error", err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if err := s.reload(dir, logger); err != nil {
					logger.Warn("dictionary: reload failed", slog.String("event", event.Name), slog.Any("error", err))
					continue
				}
				logger.Info("dictionary: reloaded overrides", slog.String("event", event.Name))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("dictionary: watcher error", slog.Any("error", err))
			}
		}
	}()

	return nil
}

func (s *Store) reload(dir string, logger *slog.Logger) error {
	base := LoadEmbedded()

	general, err := readEntryFile(filepath.Join(dir, overrideGeneralFile))
	if err != nil {
		return err
	}
	equipment, err := readGroupedFile(filepath.Join(dir, overrideEquipmentFile))
	if err != nil {
		return err
	}
	vendor, err := readGroupedFile(filepath.Join(dir, overrideVendorFile))
	if err != nil {
		return err
	}

	merged := MergeOverrides(base, general, equipment, vendor)
	s.snapshot.Store(merged)
	logger.Debug("dictionary: snapshot published",
		slog.Int("generalOverrides", len(general)),
		slog.Int("equipmentGroups", len(equipment)),
		slog.Int("vendorGroups", len(vendor)))
	return nil
}

func readEntryFile(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func readGroupedFile(path string) (map[string][]Entry, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var grouped map[string][]Entry
	if err := yaml.Unmarshal(raw, &grouped); err != nil {
		return nil, err
	}
	return grouped, nil
}
