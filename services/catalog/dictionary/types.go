// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package dictionary loads and serves the three acronym tables consumed by
// the normalizer's dictionary cascade (§4.2): general, equipment-specific,
// and vendor-specific. Tables are immutable once loaded; Store publishes new
// snapshots atomically so a hot reload never races a concurrent normalize
// call (§5, §9 "Process-wide dictionary state").
package dictionary

import "github.com/cxalloy/bascat/services/catalog/model"

// Entry is one acronym record, the wire/file shape named in §6: "a sequence
// of records with fields {acronym, expansion, category, priority, tags?,
// pointFunction?}".
type Entry struct {
	Acronym       string   `yaml:"acronym"`
	Expansion     string   `yaml:"expansion"`
	Category      string   `yaml:"category"`
	Priority      int      `yaml:"priority"`
	Tags          []string `yaml:"tags,omitempty"`
	PointFunction string   `yaml:"pointFunction,omitempty"`
}

// PriorityScore maps the 1-10 priority to the [0,1] confidence contribution
// used by the general table (§4.2 step 2: "entry priority × 10, clamped to
// [0,1]" — priority is already 1-10, so this is priority/10).
func (e Entry) PriorityScore() float64 {
	score := float64(e.Priority) / 10.0
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

// Function returns the entry's implied PointFunction, if any, and whether
// one was set.
func (e Entry) Function() (model.PointFunction, bool) {
	if e.PointFunction == "" {
		return "", false
	}
	return model.PointFunction(e.PointFunction), true
}

// Table is a loaded, deduplicated acronym table keyed by uppercase acronym.
type Table map[string]Entry

// Lookup finds the entry for token, case-insensitively.
func (t Table) Lookup(token string) (Entry, bool) {
	e, ok := t[normalizeKey(token)]
	return e, ok
}

// Set is the full dictionary snapshot: one general table plus equipment-type
// and vendor-name keyed tables, exactly the three tables named in §2.
type Set struct {
	General   Table
	Equipment map[string]Table
	Vendor    map[string]Table
}

// EquipmentTable returns the table for equipmentType, or an empty table if
// there isn't one. Lookups are case-insensitive on the key.
func (s *Set) EquipmentTable(equipmentType string) Table {
	if s == nil || equipmentType == "" {
		return nil
	}
	return s.Equipment[normalizeKey(equipmentType)]
}

// VendorTable returns the table for vendorName, or an empty table if there
// isn't one. Lookups are case-insensitive on the key.
func (s *Set) VendorTable(vendorName string) Table {
	if s == nil || vendorName == "" {
		return nil
	}
	return s.Vendor[normalizeKey(vendorName)]
}
