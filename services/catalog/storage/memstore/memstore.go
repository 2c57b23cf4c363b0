// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package memstore is the reference in-memory Repository. It backs the CLI
// when no database is configured and gives the test suite a concrete store
// with the same observable semantics as the MongoDB adapter.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cxalloy/bascat/services/catalog/model"
	"github.com/cxalloy/bascat/services/catalog/storage"
)

// Store is an in-memory Repository. The zero value is not usable; call New.
type Store struct {
	mu           sync.RWMutex
	templates    map[string]model.EquipmentTemplate
	applications []model.TemplateApplication
	bacnet       map[string]model.BACnetEquipment
	cxalloy      map[string]model.CxAlloyEquipment
	mappings     []model.AutoMappingMatch
}

var _ storage.Repository = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		templates: make(map[string]model.EquipmentTemplate),
		bacnet:    make(map[string]model.BACnetEquipment),
		cxalloy:   make(map[string]model.CxAlloyEquipment),
	}
}

// ListTemplates returns all templates sorted by ID for determinism.
func (s *Store) ListTemplates(_ context.Context) ([]model.EquipmentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.EquipmentTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetTemplate returns the template with the given ID.
func (s *Store) GetTemplate(_ context.Context, id string) (model.EquipmentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok {
		return model.EquipmentTemplate{}, storage.ErrNotFound
	}
	return t, nil
}

// SaveTemplate inserts or replaces a template keyed by ID.
func (s *Store) SaveTemplate(_ context.Context, t model.EquipmentTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[t.ID] = t
	return nil
}

// DeleteTemplate removes the template with the given ID.
func (s *Store) DeleteTemplate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.templates, id)
	return nil
}

// RecordApplication appends one immutable application record.
func (s *Store) RecordApplication(_ context.Context, a model.TemplateApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications = append(s.applications, a)
	return nil
}

// ListApplications returns applications newest first; templateID == ""
// returns all.
func (s *Store) ListApplications(_ context.Context, templateID string) ([]model.TemplateApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.TemplateApplication, 0, len(s.applications))
	for _, a := range s.applications {
		if templateID == "" || a.TemplateID == templateID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

// ListBACnetEquipment returns discovered equipment sorted by ID.
func (s *Store) ListBACnetEquipment(_ context.Context) ([]model.BACnetEquipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.BACnetEquipment, 0, len(s.bacnet))
	for _, e := range s.bacnet {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveBACnetEquipment inserts or replaces a discovered equipment record.
func (s *Store) SaveBACnetEquipment(_ context.Context, e model.BACnetEquipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bacnet[e.ID] = e
	return nil
}

// ListCxAlloyEquipment returns catalog equipment sorted by ID.
func (s *Store) ListCxAlloyEquipment(_ context.Context) ([]model.CxAlloyEquipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CxAlloyEquipment, 0, len(s.cxalloy))
	for _, e := range s.cxalloy {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveCxAlloyEquipment inserts or replaces a catalog equipment record.
func (s *Store) SaveCxAlloyEquipment(_ context.Context, e model.CxAlloyEquipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cxalloy[e.ID] = e
	return nil
}

// SaveMappingResult appends every exact and suggested match under one lock
// acquisition, so a concurrent ListMappings sees all of the run's matches
// or none of them.
func (s *Store) SaveMappingResult(_ context.Context, result model.AutoMappingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings = append(s.mappings, result.Exact...)
	s.mappings = append(s.mappings, result.Suggested...)
	return nil
}

// ListMappings returns all recorded mapping matches in insertion order.
func (s *Store) ListMappings(_ context.Context) ([]model.AutoMappingMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AutoMappingMatch, len(s.mappings))
	copy(out, s.mappings)
	return out, nil
}
