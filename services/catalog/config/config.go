// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config collects every scoring constant, weight, and threshold
// named in the specification (§9: "collect them in a single configuration
// surface so the test suite can pin them") into one typed, overridable
// surface. Every engine package accepts its relevant Config field instead
// of hard-coding a constant, so a test can pin or perturb exactly one
// number and assert monotonicity (§8 property 3) without touching engine
// code.
package config

// NormalizationConfig controls the Normalizer (§4.2).
type NormalizationConfig struct {
	// EquipmentPriorityBase is the confidence assigned to a token resolved
	// by the equipment-specific dictionary table.
	EquipmentPriorityBase float64

	// VendorPriorityBase is the confidence assigned to a token resolved by
	// the vendor-specific dictionary table.
	VendorPriorityBase float64

	// EquipmentContextBonus is added to the overall confidence when
	// NormalizationContext.EquipmentType was supplied.
	EquipmentContextBonus float64

	// UnitContextBonus is added when any unit context was recognized.
	UnitContextBonus float64

	// VendorInferredBonus is added when a vendor was inferred or supplied.
	VendorInferredBonus float64

	// ManualReviewThreshold: scores below this require manual review.
	ManualReviewThreshold float64

	// PreferContractorDescription resolves open question (a): when true,
	// ExpandedDescription starts from RawPoint.Description instead of the
	// synthesized base name whenever the former is longer than the base
	// name; the function suffix is appended either way.
	PreferContractorDescription bool
}

// DefaultNormalizationConfig returns the specification's pinned constants.
func DefaultNormalizationConfig() NormalizationConfig {
	return NormalizationConfig{
		EquipmentPriorityBase:       0.95,
		VendorPriorityBase:          0.85,
		EquipmentContextBonus:       0.10,
		UnitContextBonus:            0.10,
		VendorInferredBonus:         0.05,
		ManualReviewThreshold:       0.70,
		PreferContractorDescription: false,
	}
}

// SignatureConfig controls the Signature Builder (§4.3).
type SignatureConfig struct {
	MaxWildcards     int
	MinKeywordLength int

	// Confidence weights. The keyword term is
	// KeywordCountWeight × min(keywords/KeywordCountNorm, 1).
	BaseConfidence         float64
	KeywordCountWeight     float64
	KeywordCountNorm       float64
	FunctionKnownBonus     float64
	UnitsPresentBonus      float64
	ObjectTypePresentBonus float64
	SourceHighBonus        float64
	SourceMediumBonus      float64

	// Specificity weights: base + min(keywords/SpecificityKeywordNorm,
	// SpecificityKeywordCap) + SpecificityTechnicalWeight per technical
	// keyword + SpecificityWildcardBonus per unused wildcard slot under
	// SpecificityWildcardBudget.
	SpecificityBase            float64
	SpecificityKeywordNorm     float64
	SpecificityKeywordCap      float64
	SpecificityTechnicalWeight float64
	SpecificityWildcardBonus   float64
	SpecificityWildcardBudget  int
}

// DefaultSignatureConfig returns the specification's pinned constants.
func DefaultSignatureConfig() SignatureConfig {
	return SignatureConfig{
		MaxWildcards:               5,
		MinKeywordLength:           2,
		BaseConfidence:             0.50,
		KeywordCountWeight:         0.30,
		KeywordCountNorm:           4,
		FunctionKnownBonus:         0.20,
		UnitsPresentBonus:          0.10,
		ObjectTypePresentBonus:     0.10,
		SourceHighBonus:            0.15,
		SourceMediumBonus:          0.10,
		SpecificityBase:            0.50,
		SpecificityKeywordNorm:     5,
		SpecificityKeywordCap:      0.30,
		SpecificityTechnicalWeight: 0.10,
		SpecificityWildcardBonus:   0.05,
		SpecificityWildcardBudget:  5,
	}
}

// MatchConfig controls the Template Matcher (§4.4).
type MatchConfig struct {
	PatternWeight           float64
	KeywordWeight           float64
	FunctionWeight          float64
	ContextWeight           float64
	HighConfidenceBoost     float64
	HighConfidenceThreshold float64

	ConfidenceThreshold float64
	MaxResults          int

	ExactQualityThreshold   float64
	PartialQualityThreshold float64
	FuzzyQualityThreshold   float64

	RequiredPointWarningThreshold float64
	FewKeywordsThreshold          int
}

// DefaultMatchConfig returns the specification's pinned constants.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		PatternWeight:                 0.40,
		KeywordWeight:                 0.30,
		FunctionWeight:                0.20,
		ContextWeight:                 0.10,
		HighConfidenceBoost:           1.10,
		HighConfidenceThreshold:       0.80,
		ConfidenceThreshold:           0.70,
		MaxResults:                    10,
		ExactQualityThreshold:         0.95,
		PartialQualityThreshold:       0.70,
		FuzzyQualityThreshold:         0.50,
		RequiredPointWarningThreshold: 0.80,
		FewKeywordsThreshold:          2,
	}
}

// AutoMapConfig controls the Auto-Mapper (§4.5).
type AutoMapConfig struct {
	NameSimilarityWeight float64
	TypeWeight           float64
	LocationWeight       float64

	ExactThreshold     float64
	SuggestedThreshold float64

	SoftNormEqualScore       float64
	SubstringContainmentBase float64

	TypeEqualScore      float64
	TypeEquivalentScore float64
	TypeSubstringScore  float64
}

// DefaultAutoMapConfig returns the specification's pinned constants.
func DefaultAutoMapConfig() AutoMapConfig {
	return AutoMapConfig{
		NameSimilarityWeight:     0.80,
		TypeWeight:               0.10,
		LocationWeight:           0.10,
		ExactThreshold:           0.95,
		SuggestedThreshold:       0.60,
		SoftNormEqualScore:       0.95,
		SubstringContainmentBase: 0.80,
		TypeEqualScore:           1.00,
		TypeEquivalentScore:      0.90,
		TypeSubstringScore:       0.60,
	}
}

// EffectivenessConfig controls the Effectiveness Aggregator (§4.7).
type EffectivenessConfig struct {
	OverallLowThreshold    float64
	MatchRateLowThreshold  float64
	ConfidenceLowThreshold float64
}

// DefaultEffectivenessConfig returns the specification's pinned constants.
func DefaultEffectivenessConfig() EffectivenessConfig {
	return EffectivenessConfig{
		OverallLowThreshold:    0.60,
		MatchRateLowThreshold:  0.70,
		ConfidenceLowThreshold: 0.80,
	}
}

// Config bundles every engine's configuration. The zero value is not
// useful; use Default().
type Config struct {
	Normalization NormalizationConfig
	Signature     SignatureConfig
	Match         MatchConfig
	AutoMap       AutoMapConfig
	Effectiveness EffectivenessConfig
}

// Default returns the specification's pinned constants for every engine.
func Default() Config {
	return Config{
		Normalization: DefaultNormalizationConfig(),
		Signature:     DefaultSignatureConfig(),
		Match:         DefaultMatchConfig(),
		AutoMap:       DefaultAutoMapConfig(),
		Effectiveness: DefaultEffectivenessConfig(),
	}
}
