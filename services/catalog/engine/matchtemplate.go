// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/cxalloy/bascat/services/catalog/match"
	"github.com/cxalloy/bascat/services/catalog/model"
)

// scoredPair carries one (template-point, observed-point) score together
// with the observed signature the tie-break rules need.
type scoredPair struct {
	tm  model.TemplateMatch
	obs model.PointSignature
	tp  model.PointTemplate
}

// MatchTemplate scores every template point of template against every
// observed point and returns the best match per template point, highest
// score first, truncated to the configured MaxResults (§4.4). Only pairs
// at or above the confidence threshold are considered. Ties break on
// function agreement, then units agreement, then lexicographic observed
// object name, so the result is deterministic for any input order.
func (e *Engine) MatchTemplate(ctx context.Context, points []model.NormalizedPoint, template model.EquipmentTemplate) []model.TemplateMatch {
	_, span := engineTracer.Start(ctx, "catalog.match_template")
	defer span.End()
	start := time.Now()

	candidates := make([]match.Candidate, 0, len(template.Points))
	for _, tp := range template.Points {
		candidates = append(candidates, match.Candidate{
			TemplateID:      template.ID,
			TemplatePointID: tp.TemplatePointID,
			Signature:       e.templatePointSignature(tp),
			Required:        tp.Required,
		})
	}
	byID := make(map[string]model.PointTemplate, len(template.Points))
	for _, tp := range template.Points {
		byID[tp.TemplatePointID] = tp
	}

	// Best pair per template point. Cancellation is checked between
	// observed-point iterations only (§5); there are no internal timeouts.
	best := make(map[string]scoredPair, len(template.Points))
	for _, p := range points {
		if ctx.Err() != nil {
			break
		}
		obsSig := e.builder.Build(p)
		for _, tm := range e.matcher.Match(obsSig, p.ObjectName, candidates) {
			pair := scoredPair{tm: tm, obs: obsSig, tp: byID[tm.TemplatePointID]}
			cur, ok := best[tm.TemplatePointID]
			if !ok || betterPair(pair, cur) {
				best[tm.TemplatePointID] = pair
			}
		}
	}

	matches := make([]model.TemplateMatch, 0, len(best))
	for _, pair := range best {
		matches = append(matches, pair.tm)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		return matches[i].TemplatePointID < matches[j].TemplatePointID
	})
	if max := e.cfg.Match.MaxResults; len(matches) > max {
		matches = matches[:max]
	}

	span.SetAttributes(
		attribute.String("template_id", template.ID),
		attribute.Int("observed_points", len(points)),
		attribute.Int("matches", len(matches)),
	)
	observeCall("match", start, true)
	return matches
}

// betterPair implements the §4.4 tie-break: higher score wins; on equal
// scores prefer the observed point whose function matches the template
// point, then the one whose units match, then the lexicographically
// smaller observed object name.
func betterPair(a, b scoredPair) bool {
	if a.tm.MatchScore != b.tm.MatchScore {
		return a.tm.MatchScore > b.tm.MatchScore
	}
	aFn, bFn := a.obs.PointFunction == a.tp.PointFunction, b.obs.PointFunction == b.tp.PointFunction
	if aFn != bFn {
		return aFn
	}
	aUnits, bUnits := a.obs.Units == a.tp.Units, b.obs.Units == b.tp.Units
	if aUnits != bUnits {
		return aUnits
	}
	return a.tm.MatchedPointObjectName < b.tm.MatchedPointObjectName
}

// templatePointSignature derives the candidate-side signature for one
// template point. When the template carries a human-readable Name it
// stands in for the normalized name directly; otherwise the raw facet
// value (e.g. bacnetDis "ZN-T") runs through the normalizer first so both
// sides of the score are expressed in the same expanded vocabulary. The
// template's declared function always wins over anything the normalizer
// infers.
func (e *Engine) templatePointSignature(tp model.PointTemplate) model.PointSignature {
	name := tp.Name
	if name == "" {
		facet := tp.MatchingFacet
		if facet == "" {
			facet = model.FacetBACnetDis
		}
		np := e.normalizer.Point(model.RawPoint{
			ObjectName:  tp.TemplatePointID,
			ObjectType:  tp.ObjectType,
			DisplayName: tp.FacetValue(facet),
			Units:       tp.Units,
		}, model.NormalizationContext{Units: tp.Units})
		name = np.NormalizedName
	}
	return e.builder.Build(model.NormalizedPoint{
		NormalizedName:  name,
		PointFunction:   tp.PointFunction,
		ObjectType:      tp.ObjectType,
		Units:           tp.Units,
		ConfidenceLevel: model.LevelForScore(tp.DefaultConfidence),
		ConfidenceScore: tp.DefaultConfidence,
	})
}
