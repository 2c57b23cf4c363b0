// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package normalize

import (
	"strings"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/dictionary"
	"github.com/cxalloy/bascat/services/catalog/errs"
	"github.com/cxalloy/bascat/services/catalog/model"
	"github.com/cxalloy/bascat/services/catalog/tokenize"
)

// Normalizer turns RawPoints into NormalizedPoints against a dictionary
// snapshot it does not own (§4.2, §5). A Normalizer is safe for concurrent
// use: Point only reads its Store's Snapshot.
type Normalizer struct {
	dict *dictionary.Store
	cfg  config.NormalizationConfig
}

// New builds a Normalizer reading from dict and scored by cfg.
func New(dict *dictionary.Store, cfg config.NormalizationConfig) *Normalizer {
	return &Normalizer{dict: dict, cfg: cfg}
}

// Point implements the full §4.2 pipeline. It never panics (§7): a recovered
// programming error is folded into the result's Errors field and the point
// still comes back with a best-effort name, Unknown confidence, and
// requiresManualReview set.
func (n *Normalizer) Point(raw model.RawPoint, ctx model.NormalizationContext) (result model.NormalizedPoint) {
	defer func() {
		if msgs := errs.Guard(recover()); msgs != nil {
			result.Errors = append(result.Errors, msgs...)
			result.ConfidenceLevel = model.ConfidenceUnknown
			result.RequiresManualReview = true
			if result.NormalizedName == "" {
				result.NormalizedName = fallbackName(raw)
			}
		}
	}()

	source := raw.PrimarySource()
	if strings.TrimSpace(source) == "" {
		return model.NormalizedPoint{
			NormalizedName:  "Unknown Point",
			PointFunction:   model.FunctionUnknown,
			ConfidenceLevel: model.ConfidenceUnknown,
			Method:          model.MethodNone,
			Tags: []model.Tag{
				{Name: "point", Category: model.TagCategoryEntity, Confidence: 1.0, Source: model.TagSourceExplicit},
			},
			RequiresManualReview: true,
			ObjectName:           raw.ObjectName,
			ObjectType:           raw.ObjectType,
		}
	}

	tokens := tokenize.Tokens(source)

	var dict *dictionary.Set
	if n.dict != nil {
		dict = n.dict.Snapshot()
	}
	equipmentTable := dict.EquipmentTable(ctx.EquipmentType)
	vendorTable := dict.VendorTable(ctx.VendorName)
	var generalTable dictionary.Table
	if dict != nil {
		generalTable = dict.General
	}

	analyses := make([]model.TokenAnalysis, 0, len(tokens))
	for _, tok := range tokens {
		analyses = append(analyses, analyzeToken(tok, equipmentTable, vendorTable, generalTable))
	}

	units := ctx.Units
	if units == "" {
		units = raw.Units
	}
	cx := analyzeContext(units, ctx.VendorName, tokens, dict)

	lowerTokens := make([]string, len(tokens))
	for i, t := range tokens {
		lowerTokens[i] = strings.ToLower(t)
	}
	fn := DetermineFunction(lowerTokens, raw.ObjectType, raw.IsWritable, raw.IsCommand)

	baseName := buildBaseName(analyses, fn)
	if baseName == "" {
		baseName = fallbackName(raw)
	}
	description := buildDescription(baseName, raw.Description, fn, raw.ObjectType, n.cfg)

	tags := buildTags(analyses, fn)

	hasEquipmentContext := ctx.EquipmentType != ""
	hasUnitContext := cx.unitCategory != "" || units != ""
	score := scoreConfidence(analyses, hasEquipmentContext, hasUnitContext, cx.vendorKnown, n.cfg)

	var expanded []model.ExpandedAcronym
	hasAcronymExpansion := false
	for _, a := range analyses {
		if a.Source == model.TokenSourceEquipment || a.Source == model.TokenSourceVendor || a.Source == model.TokenSourceGeneral {
			if !strings.EqualFold(a.OriginalToken, a.Expansion) {
				expanded = append(expanded, model.ExpandedAcronym{
					Original:   a.OriginalToken,
					Expanded:   a.Expansion,
					Confidence: a.Confidence,
				})
				hasAcronymExpansion = true
			}
		}
	}

	result = model.NormalizedPoint{
		NormalizedName:       baseName,
		ExpandedDescription:  description,
		PointFunction:        fn,
		Units:                units,
		Tags:                 tags,
		ConfidenceScore:      score,
		ConfidenceLevel:      model.LevelForScore(score),
		Method:               methodForAnalyses(analyses),
		ExpandedAcronyms:     expanded,
		HasAcronymExpansion:  hasAcronymExpansion,
		HasUnitNormalization: hasUnitContext,
		HasContextInference:  hasEquipmentContext || cx.vendorKnown,
		RequiresManualReview: score < n.cfg.ManualReviewThreshold,
		ObjectName:           raw.ObjectName,
		ObjectType:           raw.ObjectType,
	}
	return result
}

func fallbackName(raw model.RawPoint) string {
	source := raw.PrimarySource()
	if source == "" {
		return "Unknown Point"
	}
	return source
}
