// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package applicator implements the Template Applicator (§4.6): binding an
// EquipmentTemplate's point slots to a target equipment's observed points.
package applicator

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cxalloy/bascat/services/catalog/errs"
	"github.com/cxalloy/bascat/services/catalog/model"
)

// Applicator implements Apply. Clock and IDFunc are overridable for
// deterministic tests (§8 property 6: idempotence except for timestamps).
type Applicator struct {
	Clock  func() time.Time
	IDFunc func() string
}

// New builds an Applicator using the real clock and a UUID generator.
func New() *Applicator {
	return &Applicator{Clock: time.Now, IDFunc: uuid.NewString}
}

// Apply binds each of template's PointTemplates to the best candidate in
// targetPoints, per §4.6. It never panics (§7).
func (a *Applicator) Apply(template model.EquipmentTemplate, targetEquipmentID string, targetPoints []model.ObservedPoint, opts model.MatchingOptions, appliedBy string) (app model.TemplateApplication) {
	defer func() {
		if msgs := errs.Guard(recover()); msgs != nil {
			app = model.TemplateApplication{
				ID:                a.id(),
				TemplateID:        template.ID,
				TargetEquipmentID: targetEquipmentID,
				MatchingOptions:   opts,
				AppliedAt:         a.now(),
				AppliedBy:         appliedBy,
			}
		}
	}()

	if opts.ConfidenceThreshold == 0 {
		opts = model.DefaultMatchingOptions()
	}

	used := make(map[string]bool, len(targetPoints))
	appliedPoints := make([]model.AppliedPoint, 0, len(template.Points))

	for _, tp := range template.Points {
		candidate, found := selectCandidate(tp, targetPoints, used, opts)
		if !found {
			appliedPoints = append(appliedPoints, model.AppliedPoint{
				TemplatePointID: tp.TemplatePointID,
				Matched:         false,
			})
			continue
		}
		used[candidate.ObjectName] = true

		navName := candidate.NavName
		if opts.CopyNavName && tp.NavName != "" {
			navName = tp.NavName
		}
		units := candidate.Units
		if opts.CopyUnits && tp.Units != "" {
			units = tp.Units
		}
		confidence := candidate.Score
		if confidence <= 0 {
			confidence = 0.70
		}

		appliedPoints = append(appliedPoints, model.AppliedPoint{
			PointObjectName: candidate.ObjectName,
			TemplatePointID: tp.TemplatePointID,
			Matched:         true,
			Confidence:      confidence,
			NavName:         navName,
			Units:           units,
		})
	}

	results := aggregate(template, appliedPoints, len(targetPoints))

	return model.TemplateApplication{
		ID:                a.id(),
		TemplateID:        template.ID,
		TargetEquipmentID: targetEquipmentID,
		AppliedPoints:     appliedPoints,
		MatchingOptions:   opts,
		MatchingResults:   results,
		IsSuccessful:      results.MatchedPoints > 0 && results.AverageConfidence >= opts.ConfidenceThreshold,
		AppliedAt:         a.now(),
		AppliedBy:         appliedBy,
	}
}

// selectCandidate finds the best unused observed point for tp's matching
// facet: an exact case-insensitive match first, then — if allowed — a
// substring match in either direction (§4.6).
func selectCandidate(tp model.PointTemplate, targetPoints []model.ObservedPoint, used map[string]bool, opts model.MatchingOptions) (model.ObservedPoint, bool) {
	want := strings.ToLower(tp.FacetValue(opts.MatchingFacet))
	if want == "" {
		return model.ObservedPoint{}, false
	}

	for _, p := range targetPoints {
		if used[p.ObjectName] {
			continue
		}
		if strings.ToLower(p.FacetValue(opts.MatchingFacet)) == want {
			return p, true
		}
	}

	if !opts.AllowPartialMatches {
		return model.ObservedPoint{}, false
	}

	for _, p := range targetPoints {
		if used[p.ObjectName] {
			continue
		}
		have := strings.ToLower(p.FacetValue(opts.MatchingFacet))
		if have == "" {
			continue
		}
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return p, true
		}
	}
	return model.ObservedPoint{}, false
}

func aggregate(template model.EquipmentTemplate, applied []model.AppliedPoint, totalObserved int) model.MatchingResults {
	results := model.MatchingResults{TotalPoints: totalObserved}

	requiredByID := make(map[string]bool, len(template.Points))
	for _, tp := range template.Points {
		if tp.Required {
			requiredByID[tp.TemplatePointID] = true
		}
	}

	var confidenceSum float64
	for _, ap := range applied {
		if !ap.Matched {
			continue
		}
		results.MatchedPoints++
		confidenceSum += ap.Confidence
		if requiredByID[ap.TemplatePointID] {
			results.RequiredPointsMatched++
		} else {
			results.OptionalPointsMatched++
		}
	}
	results.UnmatchedPoints = len(applied) - results.MatchedPoints
	if results.MatchedPoints > 0 {
		results.AverageConfidence = confidenceSum / float64(results.MatchedPoints)
	}
	return results
}

func (a *Applicator) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

func (a *Applicator) id() string {
	if a.IDFunc != nil {
		return a.IDFunc()
	}
	return uuid.NewString()
}
