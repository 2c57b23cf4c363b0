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

// PointTemplate is one required or optional point slot within an
// EquipmentTemplate.
type PointTemplate struct {
	TemplatePointID   string        `json:"templatePointId"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	PointFunction     PointFunction `json:"pointFunction"`
	ObjectType        ObjectType    `json:"objectType,omitempty"`
	Units             string        `json:"units,omitempty"`
	Required          bool          `json:"required"`
	NavName           string        `json:"navName,omitempty"`
	BACnetCur         string        `json:"bacnetCur,omitempty"`
	BACnetDis         string        `json:"bacnetDis,omitempty"`
	BACnetDesc        string        `json:"bacnetDesc,omitempty"`
	MatchingFacet     MatchingFacet `json:"matchingFacet"`
	DefaultConfidence float64       `json:"defaultConfidence"`
	Tags              []Tag         `json:"tags,omitempty"`
}

// FacetValue returns the template's value on the given matching facet,
// or "" if the facet is unrecognized.
func (p PointTemplate) FacetValue(facet MatchingFacet) string {
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

// EquipmentTemplate is an ordered set of PointTemplates plus equipment-type
// metadata. EquipmentTemplates are created by users (or migration), updated
// only by the Effectiveness Aggregator, and never mutated during matching.
type EquipmentTemplate struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	EquipmentType string          `json:"equipmentType"`
	Category      string          `json:"category,omitempty"`
	Vendor        string          `json:"vendor,omitempty"`
	Model         string          `json:"model,omitempty"`
	Points        []PointTemplate `json:"points"`
	TemplateType  TemplateType    `json:"templateType"`
	IsBuiltIn     bool            `json:"isBuiltIn"`
	IsDefault     bool            `json:"isDefault"`
	UsageCount    int             `json:"usageCount"`
	SuccessRate   float64         `json:"successRate"`
	Effectiveness float64         `json:"effectiveness"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// RequiredPoints returns the subset of Points with Required set.
func (t EquipmentTemplate) RequiredPoints() []PointTemplate {
	out := make([]PointTemplate, 0, len(t.Points))
	for _, p := range t.Points {
		if p.Required {
			out = append(out, p)
		}
	}
	return out
}

// PatternMatch records whether one keyword of a signature pair lined up.
type PatternMatch struct {
	Keyword  string  `json:"keyword"`
	Position int     `json:"position"`
	Weight   float64 `json:"weight"`
	Matched  bool    `json:"matched"`
}

// MatchQuality is a set of independent quality flags for a TemplateMatch;
// more than one may be set simultaneously (§4.4, "Quality flags").
type MatchQuality struct {
	Exact   bool `json:"exact"`
	Partial bool `json:"partial"`
	Fuzzy   bool `json:"fuzzy"`
	Context bool `json:"context"`
}

// TemplateMatch is the scored pairing of one template point against one
// observed point.
type TemplateMatch struct {
	TemplateID             string         `json:"templateId"`
	TemplatePointID        string         `json:"templatePointId"`
	MatchedPointObjectName string         `json:"matchedPointObjectName"`
	Confidence             float64        `json:"confidence"`
	MatchScore             float64        `json:"matchScore"`
	PatternMatches         []PatternMatch `json:"patternMatches"`
	Quality                MatchQuality   `json:"quality"`
	Warnings               []string       `json:"warnings,omitempty"`
	Recommendations        []string       `json:"recommendations,omitempty"`
}
