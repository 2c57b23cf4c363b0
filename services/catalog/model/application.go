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

import "time"

// AppliedPoint records the binding chosen (or not found) for one
// PointTemplate during a template application.
type AppliedPoint struct {
	PointObjectName string  `json:"pointObjectName,omitempty"`
	TemplatePointID string  `json:"templatePointId"`
	Matched         bool    `json:"matched"`
	Confidence      float64 `json:"confidence"`
	NavName         string  `json:"navName,omitempty"`
	Units           string  `json:"units,omitempty"`
}

// MatchingResults aggregates the outcome of one template application.
type MatchingResults struct {
	TotalPoints           int     `json:"totalPoints"`
	MatchedPoints         int     `json:"matchedPoints"`
	UnmatchedPoints       int     `json:"unmatchedPoints"`
	AverageConfidence     float64 `json:"averageConfidence"`
	RequiredPointsMatched int     `json:"requiredPointsMatched"`
	OptionalPointsMatched int     `json:"optionalPointsMatched"`
}

// MatchingOptions controls how Apply binds template points to observed
// points and what it carries over from the template once a binding is made.
type MatchingOptions struct {
	// MatchingFacet is the PointTemplate field compared against each
	// candidate observed point's corresponding value.
	MatchingFacet MatchingFacet

	// AllowPartialMatches permits a substring match on MatchingFacet when
	// no exact (case-insensitive) match exists.
	AllowPartialMatches bool

	// CopyNavName carries the template's NavName onto the applied point
	// instead of keeping the observed point's own name.
	CopyNavName bool

	// CopyUnits carries the template's Units onto the applied point
	// instead of keeping the observed point's own units.
	CopyUnits bool

	// ConfidenceThreshold is the minimum AverageConfidence for
	// TemplateApplication.IsSuccessful to be true. Default 0.70.
	ConfidenceThreshold float64
}

// DefaultMatchingOptions returns the options used when none are supplied.
func DefaultMatchingOptions() MatchingOptions {
	return MatchingOptions{
		MatchingFacet:       FacetBACnetDis,
		AllowPartialMatches: false,
		CopyNavName:         false,
		CopyUnits:           false,
		ConfidenceThreshold: 0.70,
	}
}

// ObservedPoint is a candidate point presented to the Template Applicator
// as a binding target: an observed point plus the BACnet facet values it
// actually carries on the field device.
type ObservedPoint struct {
	ObjectName string
	NavName    string
	Units      string
	BACnetCur  string
	BACnetDis  string
	BACnetDesc string

	// Score is this point's own confidence, e.g. from a prior
	// TemplateMatch. Used as AppliedPoint.Confidence when a binding is
	// made and Score > 0; otherwise the default 0.70 applies (§4.6).
	Score float64
}

// FacetValue returns the observed point's value on the given matching
// facet, or "" if the facet is unrecognized.
func (p ObservedPoint) FacetValue(facet MatchingFacet) string {
	switch facet {
	case FacetBACnetCur:
		return p.BACnetCur
	case FacetBACnetDis:
		return p.BACnetDis
	case FacetBACnetDesc:
		return p.BACnetDesc
	default:
		return ""
	}
}

// TemplateApplication is the immutable record of one Apply call.
type TemplateApplication struct {
	ID                string            `json:"id"`
	TemplateID        string            `json:"templateId"`
	TargetEquipmentID string            `json:"targetEquipmentId"`
	AppliedPoints     []AppliedPoint    `json:"appliedPoints"`
	MatchingOptions   MatchingOptions   `json:"matchingOptions"`
	MatchingResults   MatchingResults   `json:"matchingResults"`
	IsSuccessful      bool              `json:"isSuccessful"`
	AppliedAt         time.Time         `json:"appliedAt"`
	AppliedBy         string            `json:"appliedBy"`
}

// EffectivenessReport summarizes a template's historical application
// results, per §4.7.
type EffectivenessReport struct {
	OverallEffectiveness float64  `json:"overallEffectiveness"`
	PointMatchRate       float64  `json:"pointMatchRate"`
	ConfidenceScore      float64  `json:"confidenceScore"`
	UsageFrequency       int      `json:"usageFrequency"`
	Recommendations      []string `json:"recommendations"`
}
