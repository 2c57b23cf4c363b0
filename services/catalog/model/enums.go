// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package model defines the data structures shared by every stage of the
// point catalog pipeline: the raw BACnet descriptor, the normalized point it
// becomes, the signature derived from it, and the templates and mappings it
// is eventually matched against.
package model

// ObjectType is the closed set of BACnet object types a RawPoint may carry.
// Unknown strings must be rejected at the ingestion boundary, not here.
type ObjectType string

const (
	ObjectTypeAI  ObjectType = "AI"
	ObjectTypeAO  ObjectType = "AO"
	ObjectTypeAV  ObjectType = "AV"
	ObjectTypeBI  ObjectType = "BI"
	ObjectTypeBO  ObjectType = "BO"
	ObjectTypeBV  ObjectType = "BV"
	ObjectTypeMSI ObjectType = "MSI"
	ObjectTypeMSO ObjectType = "MSO"
	ObjectTypeMSV ObjectType = "MSV"
)

// IsInput reports whether the object type is an input (AI, BI, MSI).
func (t ObjectType) IsInput() bool {
	switch t {
	case ObjectTypeAI, ObjectTypeBI, ObjectTypeMSI:
		return true
	default:
		return false
	}
}

// IsOutput reports whether the object type is an output (AO, BO, MSO).
func (t ObjectType) IsOutput() bool {
	switch t {
	case ObjectTypeAO, ObjectTypeBO, ObjectTypeMSO:
		return true
	default:
		return false
	}
}

// IsValue reports whether the object type is a value object (AV, BV, MSV).
func (t ObjectType) IsValue() bool {
	switch t {
	case ObjectTypeAV, ObjectTypeBV, ObjectTypeMSV:
		return true
	default:
		return false
	}
}

// IsBinary reports whether the object type carries a two-state value
// (BI, BO, BV).
func (t ObjectType) IsBinary() bool {
	switch t {
	case ObjectTypeBI, ObjectTypeBO, ObjectTypeBV:
		return true
	default:
		return false
	}
}

// IsMultistate reports whether the object type carries an enumerated value
// (MSI, MSO, MSV).
func (t ObjectType) IsMultistate() bool {
	switch t {
	case ObjectTypeMSI, ObjectTypeMSO, ObjectTypeMSV:
		return true
	default:
		return false
	}
}

// PointFunction is the role a point plays in equipment control.
type PointFunction string

const (
	FunctionSensor   PointFunction = "Sensor"
	FunctionSetpoint PointFunction = "Setpoint"
	FunctionCommand  PointFunction = "Command"
	FunctionStatus   PointFunction = "Status"
	FunctionUnknown  PointFunction = "Unknown"
)

// ConfidenceLevel buckets a continuous confidence score for display.
type ConfidenceLevel string

const (
	ConfidenceHigh    ConfidenceLevel = "High"
	ConfidenceMedium  ConfidenceLevel = "Medium"
	ConfidenceLow     ConfidenceLevel = "Low"
	ConfidenceUnknown ConfidenceLevel = "Unknown"
)

// LevelForScore maps a confidence score in [0,1] to its display level.
// >=0.80 High, >=0.50 Medium, >=0.20 Low, else Unknown.
func LevelForScore(score float64) ConfidenceLevel {
	switch {
	case score >= 0.80:
		return ConfidenceHigh
	case score >= 0.50:
		return ConfidenceMedium
	case score >= 0.20:
		return ConfidenceLow
	default:
		return ConfidenceUnknown
	}
}

// TagCategory classifies a semantic Tag.
type TagCategory string

const (
	TagCategoryEntity      TagCategory = "Entity"
	TagCategorySubstance   TagCategory = "Substance"
	TagCategoryMeasurement TagCategory = "Measurement"
	TagCategoryFunction    TagCategory = "Function"
	TagCategoryLocation    TagCategory = "Location"
	TagCategoryState       TagCategory = "State"
	TagCategoryOther       TagCategory = "Other"
)

// TagSource distinguishes a tag that came directly from a dictionary entry
// from one inferred by context.
type TagSource string

const (
	TagSourceExplicit TagSource = "explicit"
	TagSourceInferred TagSource = "inferred"
)

// TokenSource records which dictionary cascade step resolved a token.
type TokenSource string

const (
	TokenSourceGeneral   TokenSource = "general"
	TokenSourceEquipment TokenSource = "equipment"
	TokenSourceVendor    TokenSource = "vendor"
	TokenSourceUnit      TokenSource = "unit"
	TokenSourcePattern   TokenSource = "pattern"
)

// NormalizationMethod records which cascade step ultimately drove the
// normalization result as a whole ("none" when nothing matched).
type NormalizationMethod string

const (
	MethodGeneral   NormalizationMethod = "general"
	MethodEquipment NormalizationMethod = "equipment"
	MethodVendor    NormalizationMethod = "vendor"
	MethodUnit      NormalizationMethod = "unit"
	MethodPattern   NormalizationMethod = "pattern"
	MethodNone      NormalizationMethod = "none"
)

// MatchingFacet names the PointTemplate field used to bind a template point
// to an observed point during Apply.
type MatchingFacet string

const (
	FacetBACnetCur  MatchingFacet = "bacnetCur"
	FacetBACnetDis  MatchingFacet = "bacnetDis"
	FacetBACnetDesc MatchingFacet = "bacnetDesc"
)

// TemplateType distinguishes how an EquipmentTemplate is meant to be used.
type TemplateType string

const (
	TemplateTypeEquipment TemplateType = "equipment"
	TemplateTypeMapping   TemplateType = "mapping"
	TemplateTypeHybrid    TemplateType = "hybrid"
)

// MatchType records how an AutoMappingMatch was produced.
type MatchType string

const (
	MatchTypeExact        MatchType = "exact"
	MatchTypeFuzzy        MatchType = "fuzzy"
	MatchTypeTypeAssisted MatchType = "type-assisted"
)
