// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package model

// PointSignature is a wildcard keyword pattern derived from a
// NormalizedPoint, used as the matching key against PointTemplates.
//
// Keywords is bounded by the signature builder's maxWildcards option
// (default 5); callers must not assume more than that many entries.
type PointSignature struct {
	Pattern           string        `json:"pattern"`
	NormalizedPattern string        `json:"normalizedPattern"`
	Keywords          []string      `json:"keywords"`
	Confidence        float64       `json:"confidence"`
	Specificity       float64       `json:"specificity"`
	PointFunction     PointFunction `json:"pointFunction"`
	ObjectType        ObjectType    `json:"objectType,omitempty"`
	Units             string        `json:"units,omitempty"`
	MatchCount        int           `json:"matchCount"`
	SuccessfulMatches int           `json:"successfulMatches"`
}
