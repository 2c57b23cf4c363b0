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
	"unicode"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/textsim"
)

// normalizeFull lowercases s and strips every non-alphanumeric rune,
// including the -_. separators (§4.5 tier 1).
func normalizeFull(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// normalizeSoft lowercases s and strips only the -_. separators, leaving
// spaces and digits untouched (§4.5 tier 2).
func normalizeSoft(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '-' || r == '_' || r == '.' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// nameSimilarity implements the three-tier "advanced name similarity" of
// §4.5: the first tier to yield a result wins.
func nameSimilarity(a, b string, cfg config.AutoMapConfig) float64 {
	fullA, fullB := normalizeFull(a), normalizeFull(b)
	if fullA == fullB {
		return 1.00
	}

	softA, softB := normalizeSoft(a), normalizeSoft(b)
	if softA == softB {
		return cfg.SoftNormEqualScore
	}
	if shorter, longer, ok := containment(softA, softB); ok {
		// Containment interpolates upward from the base rather than
		// scaling it down by the length ratio: a device name that is a
		// whole-token prefix of a catalog name ("VAV_1" inside
		// "VAV-1 Terminal") is strong evidence of identity even when the
		// catalog name carries a long descriptive suffix. Scaling by
		// shorter/longer would score such pairs below the suggestion
		// threshold, losing exactly the matches containment exists to
		// surface.
		ratio := float64(len(shorter)) / float64(len(longer))
		return cfg.SubstringContainmentBase + (1-cfg.SubstringContainmentBase)*ratio
	}

	return textsim.Similarity(fullA, fullB)
}

// containment reports whether one of a, b is a non-empty substring of the
// other, returning the shorter/longer pair in that order.
func containment(a, b string) (shorter, longer string, ok bool) {
	if a == "" || b == "" {
		return "", "", false
	}
	shorter, longer = a, b
	if len(a) > len(b) {
		shorter, longer = b, a
	}
	return shorter, longer, strings.Contains(longer, shorter)
}

// isExactName reports whether a, b are equal under full normalization —
// the condition that grants a 1.00 composite score outright (see Mapper.score).
func isExactName(a, b string) bool {
	return normalizeFull(a) == normalizeFull(b)
}
