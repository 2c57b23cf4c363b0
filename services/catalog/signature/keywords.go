// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package signature implements the Signature Builder (§4.3): it derives a
// wildcard keyword pattern from a NormalizedPoint, used as the matching key
// against PointTemplates.
package signature

import (
	"sort"
	"strings"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/tokenize"
)

type keyword struct {
	canonical string
	tier      config.KeywordTier
	order     int
}

// extractKeywords implements §4.3's keyword extraction and canonicalization:
// split name into words, drop stop words and anything shorter than
// MinKeywordLength, canonicalize each survivor against the pinned table,
// order by tier (stable on original position), then truncate to
// MaxWildcards.
func extractKeywords(name string, cfg config.SignatureConfig) []string {
	words := tokenize.Tokens(name)

	entries := make([]keyword, 0, len(words))
	for i, w := range words {
		lower := strings.ToLower(w)
		if config.SignatureStopWords[lower] {
			continue
		}
		if len(lower) < cfg.MinKeywordLength {
			continue
		}

		canonical := ""
		tier := config.TierOther
		for _, ck := range config.CanonicalKeywords() {
			if ck.Regex.MatchString(lower) {
				canonical = ck.Canonical
				tier = ck.Tier
				break
			}
		}
		if canonical == "" {
			// Only unmapped tokens of length >= 3 pass through verbatim
			// (§4.3); shorter unmapped fragments are too ambiguous to be
			// matching keys.
			if len(lower) < 3 {
				continue
			}
			canonical = lower
		}

		entries = append(entries, keyword{canonical: canonical, tier: tier, order: i})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].tier < entries[j].tier
	})

	if len(entries) > cfg.MaxWildcards {
		entries = entries[:cfg.MaxWildcards]
	}

	kept := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.canonical] {
			continue
		}
		seen[e.canonical] = true
		kept = append(kept, e.canonical)
	}
	return kept
}
