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
	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/model"
)

// scoreConfidence implements §4.2 step 8: the mean of the per-token
// confidences, plus bonuses for equipment context, recognized unit context,
// and a known vendor, clamped to [0,1].
func scoreConfidence(analyses []model.TokenAnalysis, hasEquipmentContext, hasUnitContext, hasVendor bool, cfg config.NormalizationConfig) float64 {
	if len(analyses) == 0 {
		return 0
	}

	var sum float64
	for _, a := range analyses {
		sum += a.Confidence
	}
	score := sum / float64(len(analyses))

	if hasEquipmentContext {
		score += cfg.EquipmentContextBonus
	}
	if hasUnitContext {
		score += cfg.UnitContextBonus
	}
	if hasVendor {
		score += cfg.VendorInferredBonus
	}

	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

func methodForAnalyses(analyses []model.TokenAnalysis) model.NormalizationMethod {
	// The method that resolved the most tokens drives the point's overall
	// method (§3: "method" records which cascade step drove the result).
	// Ties favor the step that runs earliest in the cascade.
	counts := map[model.TokenSource]int{}
	for _, a := range analyses {
		counts[a.Source]++
	}
	order := []model.TokenSource{
		model.TokenSourceEquipment,
		model.TokenSourceVendor,
		model.TokenSourceGeneral,
		model.TokenSourceUnit,
		model.TokenSourcePattern,
	}
	methodBySource := map[model.TokenSource]model.NormalizationMethod{
		model.TokenSourceEquipment: model.MethodEquipment,
		model.TokenSourceVendor:    model.MethodVendor,
		model.TokenSourceGeneral:   model.MethodGeneral,
		model.TokenSourceUnit:      model.MethodUnit,
		model.TokenSourcePattern:   model.MethodPattern,
	}

	best := model.MethodNone
	bestCount := 0
	for _, src := range order {
		if counts[src] > bestCount {
			bestCount = counts[src]
			best = methodBySource[src]
		}
	}
	return best
}
