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
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/general.yaml
var generalYAML []byte

//go:embed data/equipment.yaml
var equipmentYAML []byte

//go:embed data/vendor.yaml
var vendorYAML []byte

func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// LoadEmbedded parses the dictionaries built into the binary via go:embed.
// It never fails on well-formed build data; a YAML error here is a defect
// in this module's own shipped data, not a caller error, so it panics
// rather than returning an error through the normalize() call path.
func LoadEmbedded() *Set {
	general, err := parseTable(generalYAML)
	if err != nil {
		panic(fmt.Sprintf("dictionary: embedded general.yaml is invalid: %v", err))
	}

	equipment, err := parseGrouped(equipmentYAML)
	if err != nil {
		panic(fmt.Sprintf("dictionary: embedded equipment.yaml is invalid: %v", err))
	}

	vendor, err := parseGrouped(vendorYAML)
	if err != nil {
		panic(fmt.Sprintf("dictionary: embedded vendor.yaml is invalid: %v", err))
	}

	return &Set{General: general, Equipment: equipment, Vendor: vendor}
}

// parseTable decodes a flat list of Entry records into a deduplicated
// Table. When the same acronym appears more than once (the source data's
// stray CCW redefinition being the motivating case, §9 open question b),
// the entry with the higher Priority wins; ties are broken by first
// occurrence in the decoded order.
func parseTable(raw []byte) (Table, error) {
	var entries []Entry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return dedup(entries), nil
}

// parseGrouped decodes a map of group-name to entry list (the shape used by
// equipment.yaml and vendor.yaml) into group-keyed, deduplicated Tables.
func parseGrouped(raw []byte) (map[string]Table, error) {
	var grouped map[string][]Entry
	if err := yaml.Unmarshal(raw, &grouped); err != nil {
		return nil, err
	}

	out := make(map[string]Table, len(grouped))
	for group, entries := range grouped {
		out[normalizeKey(group)] = dedup(entries)
	}
	return out, nil
}

func dedup(entries []Entry) Table {
	table := make(Table, len(entries))
	for _, e := range entries {
		key := normalizeKey(e.Acronym)
		existing, seen := table[key]
		if !seen || e.Priority > existing.Priority {
			table[key] = e
		}
		// Equal priority: keep the first occurrence already stored, i.e.
		// do nothing further here.
	}
	return table
}

// MergeOverrides layers override entries on top of base, returning a new
// Set. Overrides win outright regardless of priority — an operator placing
// a file in the watched override directory is making a deliberate
// correction, not contributing a competing acronym definition.
func MergeOverrides(base *Set, overrideGeneral []Entry, overrideEquipment, overrideVendor map[string][]Entry) *Set {
	merged := &Set{
		General:   mergeTable(base.General, overrideGeneral),
		Equipment: mergeGrouped(base.Equipment, overrideEquipment),
		Vendor:    mergeGrouped(base.Vendor, overrideVendor),
	}
	return merged
}

func mergeTable(base Table, overrides []Entry) Table {
	out := make(Table, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for _, e := range overrides {
		out[normalizeKey(e.Acronym)] = e
	}
	return out
}

func mergeGrouped(base map[string]Table, overrides map[string][]Entry) map[string]Table {
	out := make(map[string]Table, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for group, entries := range overrides {
		key := normalizeKey(group)
		out[key] = mergeTable(out[key], entries)
	}
	return out
}
