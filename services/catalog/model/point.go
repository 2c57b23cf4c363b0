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

// RawPoint is a single BACnet point descriptor as supplied by the trio/CSV
// ingest path (outside this module's scope). ObjectName is the stable
// external identifier and must be unique within a device; ObjectType must be
// one of the values enumerated in enums.go.
//
// Struct tags drive validator.v10 checks at the ingestion boundary; the core
// engines below never re-validate these fields.
type RawPoint struct {
	ObjectName  string     `validate:"required" json:"objectName"`
	ObjectType  ObjectType `validate:"required,oneof=AI AO AV BI BO BV MSI MSO MSV" json:"objectType"`
	DisplayName string     `json:"displayName"`
	Description string     `json:"description,omitempty"`
	Units       string     `json:"units,omitempty"`
	IsWritable  bool       `json:"isWritable"`
	IsCommand   bool       `json:"isCommand"`
}

// PrimarySource returns the string normalization should tokenize: the
// display name when present, else the object name (§4.2 step 1).
func (p RawPoint) PrimarySource() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ObjectName
}

// NormalizationContext carries optional hints that narrow dictionary lookup.
// It is immutable for the duration of a single normalize call.
type NormalizationContext struct {
	EquipmentType string `json:"equipmentType,omitempty"`
	VendorName    string `json:"vendorName,omitempty"`
	Units         string `json:"units,omitempty"`
	PointCategory string `json:"pointCategory,omitempty"`
}

// TokenAnalysis is the per-token result of the dictionary cascade (§4.2
// step 2). It is an internal artifact; normalize() folds it into the final
// NormalizedPoint rather than exposing it directly.
type TokenAnalysis struct {
	OriginalToken   string
	NormalizedToken string
	Confidence      float64
	Source          TokenSource
	MatchedAcronym  string
	Expansion       string

	// DictionaryTags and FunctionHint carry a dictionary entry's optional
	// tags/pointFunction fields (§6) through to tag generation and function
	// determination, without requiring a second table lookup.
	DictionaryTags []string
	FunctionHint   PointFunction
}

// Tag is a semantic marker attached to a NormalizedPoint.
type Tag struct {
	Name       string      `json:"name"`
	Category   TagCategory `json:"category"`
	Confidence float64     `json:"confidence"`
	Source     TagSource   `json:"source"`
}

// ExpandedAcronym records one token that was expanded during normalization,
// for display in a review UI or audit log.
type ExpandedAcronym struct {
	Original   string  `json:"original"`
	Expanded   string  `json:"expanded"`
	Confidence float64 `json:"confidence"`
}

// NormalizedPoint is the output of the Normalizer (§4.2). It is a pure
// function of its inputs and the dictionary snapshot in effect at the time
// of the call.
type NormalizedPoint struct {
	NormalizedName       string              `json:"normalizedName"`
	ExpandedDescription  string              `json:"expandedDescription"`
	PointFunction        PointFunction       `json:"pointFunction"`
	Units                string              `json:"units,omitempty"`
	Tags                 []Tag               `json:"tags"`
	ConfidenceLevel      ConfidenceLevel     `json:"confidenceLevel"`
	ConfidenceScore      float64             `json:"confidenceScore"`
	Method               NormalizationMethod `json:"method"`
	AppliedRules         []string            `json:"appliedRules,omitempty"`
	ExpandedAcronyms     []ExpandedAcronym   `json:"expandedAcronyms,omitempty"`
	HasAcronymExpansion  bool                `json:"hasAcronymExpansion"`
	HasUnitNormalization bool                `json:"hasUnitNormalization"`
	HasContextInference  bool                `json:"hasContextInference"`
	RequiresManualReview bool                `json:"requiresManualReview"`

	// ObjectName/ObjectType are carried through from the RawPoint so
	// downstream stages (signature, match) do not need the original value
	// alongside the normalized one.
	ObjectName string     `json:"objectName"`
	ObjectType ObjectType `json:"objectType"`

	// Errors holds structured internal-defect messages (§7). Always empty
	// on the success path; normalize() never panics or returns an error
	// value, it reports failures here instead.
	Errors []string `json:"errors,omitempty"`
}

// HasTag reports whether the point already carries a tag with the given
// name, regardless of category or source.
func (n NormalizedPoint) HasTag(name string) bool {
	for _, t := range n.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}
