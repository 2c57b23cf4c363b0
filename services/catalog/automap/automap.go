// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package automap implements the Auto-Mapper (§4.5): a greedy, deterministic
// pairing of discovered BACnet equipment against CxAlloy catalog equipment
// by name similarity plus type/location corroboration.
package automap

import (
	"context"
	"fmt"
	"time"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/errs"
	"github.com/cxalloy/bascat/services/catalog/model"
)

// Mapper implements AutoMap. Clock defaults to time.Now when nil; tests may
// override it for deterministic ElapsedMs assertions.
type Mapper struct {
	cfg   config.AutoMapConfig
	clock func() time.Time
}

// New builds a Mapper scored by cfg.
func New(cfg config.AutoMapConfig) *Mapper {
	return &Mapper{cfg: cfg, clock: time.Now}
}

// AutoMap pairs each source against the best remaining target in source
// order (§4.5, "Greedy assignment"). It never panics (§7); ctx is checked
// between source iterations only (§5) — there are no internal timeouts.
func (m *Mapper) AutoMap(ctx context.Context, sources []model.BACnetEquipment, targets []model.CxAlloyEquipment) (result model.AutoMappingResult) {
	start := m.now()
	defer func() {
		if msgs := errs.Guard(recover()); msgs != nil {
			result = model.AutoMappingResult{
				UnmatchedSource: sources,
				UnmatchedTarget: targets,
				Stats: model.AutoMappingStats{
					TotalSources: len(sources),
					TotalTargets: len(targets),
				},
			}
		}
	}()

	claimed := make(map[string]bool, len(targets))
	result.Exact = make([]model.AutoMappingMatch, 0, len(sources))
	result.Suggested = make([]model.AutoMappingMatch, 0, len(sources))

	for i, src := range sources {
		if ctx != nil && ctx.Err() != nil {
			result.UnmatchedSource = append(result.UnmatchedSource, sources[i:]...)
			break
		}

		bestIdx := -1
		var bestScore float64
		var bestMatch model.AutoMappingMatch
		for i, tgt := range targets {
			if claimed[tgt.ID] {
				continue
			}
			score, match := m.score(src, tgt)
			if bestIdx == -1 || score > bestScore {
				bestIdx, bestScore, bestMatch = i, score, match
			}
		}

		switch {
		case bestIdx == -1:
			result.UnmatchedSource = append(result.UnmatchedSource, src)
		case bestScore >= m.cfg.ExactThreshold:
			claimed[targets[bestIdx].ID] = true
			result.Exact = append(result.Exact, bestMatch)
		case bestScore >= m.cfg.SuggestedThreshold:
			claimed[targets[bestIdx].ID] = true
			result.Suggested = append(result.Suggested, bestMatch)
		default:
			result.UnmatchedSource = append(result.UnmatchedSource, src)
		}
	}

	for _, tgt := range targets {
		if !claimed[tgt.ID] {
			result.UnmatchedTarget = append(result.UnmatchedTarget, tgt)
		}
	}

	result.Stats = model.AutoMappingStats{
		TotalSources:         len(sources),
		TotalTargets:         len(targets),
		ExactCount:           len(result.Exact),
		SuggestedCount:       len(result.Suggested),
		UnmatchedSourceCount: len(result.UnmatchedSource),
		UnmatchedTargetCount: len(result.UnmatchedTarget),
		ElapsedMs:            m.now().Sub(start).Milliseconds(),
	}
	return result
}

// score computes the composite score for one (source, target) pair and the
// AutoMappingMatch it would produce if chosen.
//
// A tier-1 exact name match (identical after full normalization) is treated
// as definitive identity: the composite is 1.00 outright rather than the
// weighted sum, since the weighted formula reaches 1.00 only when type and
// location are both present and both score 1.00 (the weight of an absent
// term is not reallocated to the name term). Type agreement still
// escalates MatchType, and type/location still appear in Reasons.
func (m *Mapper) score(src model.BACnetEquipment, tgt model.CxAlloyEquipment) (float64, model.AutoMappingMatch) {
	nameSim := nameSimilarity(src.Name, tgt.Name, m.cfg)
	typeScore, typePresent := typeCompatibility(src.Type, tgt.Type, m.cfg)
	locScore, locPresent := locationSimilarity(src.Location, tgt.Location)

	var composite float64
	var reasons []string
	if isExactName(src.Name, tgt.Name) {
		composite = 1.00
		reasons = append(reasons, "equipment names match exactly after normalization")
	} else {
		composite = m.cfg.NameSimilarityWeight * nameSim
		reasons = append(reasons, fmt.Sprintf("name similarity %.2f", nameSim))
		if typePresent {
			composite += m.cfg.TypeWeight * typeScore
		}
		if locPresent {
			composite += m.cfg.LocationWeight * locScore
		}
		composite = clamp01(composite)
	}

	matchType := model.MatchTypeFuzzy
	if isExactName(src.Name, tgt.Name) {
		matchType = model.MatchTypeExact
	}
	if typePresent && typeScore > 0 {
		matchType = model.MatchTypeTypeAssisted
		reasons = append(reasons, fmt.Sprintf("equipment type compatible (%.2f)", typeScore))
	}
	if locPresent {
		reasons = append(reasons, fmt.Sprintf("location similarity %.2f", locScore))
	}

	return composite, model.AutoMappingMatch{
		BACnetEquipmentID:  src.ID,
		CxAlloyEquipmentID: tgt.ID,
		Confidence:         composite,
		MatchType:          matchType,
		Reasons:            reasons,
	}
}

func (m *Mapper) now() time.Time {
	if m.clock != nil {
		return m.clock()
	}
	return time.Now()
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
