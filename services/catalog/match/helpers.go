// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package match

import "github.com/cxalloy/bascat/services/catalog/textsim"

// levenshteinDistance is a thin package-local alias onto textsim, kept so
// the scoring code above reads as "distance" rather than a cross-package
// call at every use site.
func levenshteinDistance(a, b string) int {
	return textsim.Levenshtein(a, b)
}

// jaccardOverlap delegates to textsim.Jaccard (§4.4, "keyword Jaccard
// overlap").
func jaccardOverlap(a, b []string) float64 {
	return textsim.Jaccard(a, b)
}

// patternSimilarity implements §4.4's pattern-similarity term: 1.0 for
// equal normalized patterns, else one minus the normalized edit distance.
func patternSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	sim := 1 - float64(levenshteinDistance(a, b))/float64(maxLen)
	if sim < 0 {
		return 0
	}
	return sim
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
