// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package automap

import (
	"strings"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/textsim"
)

// normalizeTypeString lowercases t, replaces -_ with spaces, and collapses
// repeated whitespace, so "VAV_Controller" and "vav  controller" compare
// equal.
func normalizeTypeString(t string) string {
	t = strings.ToLower(t)
	t = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, t)
	return strings.Join(strings.Fields(t), " ")
}

// sameEquivalenceGroup reports whether a and b (already normalized) appear
// together in any of config.TypeEquivalenceGroups.
func sameEquivalenceGroup(a, b string) bool {
	for _, group := range config.TypeEquivalenceGroups {
		inA, inB := false, false
		for _, v := range group {
			if v == a {
				inA = true
			}
			if v == b {
				inB = true
			}
		}
		if inA && inB {
			return true
		}
	}
	return false
}

// typeCompatibility scores two equipment-type strings per §4.5. present is
// false when either side is blank, meaning the term contributes nothing to
// the composite score.
func typeCompatibility(a, b string, cfg config.AutoMapConfig) (score float64, present bool) {
	if a == "" || b == "" {
		return 0, false
	}
	na, nb := normalizeTypeString(a), normalizeTypeString(b)
	switch {
	case na == nb:
		return cfg.TypeEqualScore, true
	case sameEquivalenceGroup(na, nb):
		return cfg.TypeEquivalentScore, true
	case strings.Contains(na, nb) || strings.Contains(nb, na):
		return cfg.TypeSubstringScore, true
	default:
		return 0, true
	}
}

// locationSimilarity scores two location strings via edit-distance
// similarity. present is false when either side is blank.
func locationSimilarity(a, b string) (score float64, present bool) {
	if a == "" || b == "" {
		return 0, false
	}
	return textsim.Similarity(strings.ToLower(a), strings.ToLower(b)), true
}
