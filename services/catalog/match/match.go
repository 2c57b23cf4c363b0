// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package match

import (
	"fmt"
	"sort"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/errs"
	"github.com/cxalloy/bascat/services/catalog/model"
)

// Candidate is one template point a signature is scored against, along with
// its own precomputed signature.
type Candidate struct {
	TemplateID      string
	TemplatePointID string
	Signature       model.PointSignature
	Required        bool
}

// Matcher implements the Template Matcher (§4.4).
type Matcher struct {
	cfg config.MatchConfig
}

// New builds a Matcher scored by cfg.
func New(cfg config.MatchConfig) *Matcher {
	return &Matcher{cfg: cfg}
}

// Match scores observed against every candidate, keeps the ones at or above
// ConfidenceThreshold, and returns up to MaxResults, highest score first.
// Equal scores are ordered by TemplatePointID for determinism (§8
// property 1); candidate specificity and Required do not affect the order.
func (m *Matcher) Match(observed model.PointSignature, observedObjectName string, candidates []Candidate) (matches []model.TemplateMatch) {
	defer func() {
		if msgs := errs.Guard(recover()); msgs != nil {
			matches = nil
		}
	}()

	scored := make([]model.TemplateMatch, 0, len(candidates))
	for _, c := range candidates {
		tm := m.score(observed, observedObjectName, c)
		if tm.MatchScore >= m.cfg.ConfidenceThreshold {
			scored = append(scored, tm)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore != scored[j].MatchScore {
			return scored[i].MatchScore > scored[j].MatchScore
		}
		return scored[i].TemplatePointID < scored[j].TemplatePointID
	})

	if len(scored) > m.cfg.MaxResults {
		scored = scored[:m.cfg.MaxResults]
	}
	return scored
}

func (m *Matcher) score(observed model.PointSignature, observedObjectName string, c Candidate) model.TemplateMatch {
	patternScore := patternSimilarity(observed.NormalizedPattern, c.Signature.NormalizedPattern)
	keywordScore := jaccardOverlap(observed.Keywords, c.Signature.Keywords)
	functionScore := functionMatchScore(observed.PointFunction, c.Signature.PointFunction)
	contextScore, contextAgree := contextMatchScore(observed, c.Signature)

	composite := m.cfg.PatternWeight*patternScore +
		m.cfg.KeywordWeight*keywordScore +
		m.cfg.FunctionWeight*functionScore +
		m.cfg.ContextWeight*contextScore

	if observed.Confidence >= m.cfg.HighConfidenceThreshold {
		composite *= m.cfg.HighConfidenceBoost
	}
	composite = clamp01(composite)

	quality := model.MatchQuality{
		Exact:   composite >= m.cfg.ExactQualityThreshold,
		Partial: composite >= m.cfg.PartialQualityThreshold && composite < m.cfg.ExactQualityThreshold,
		Fuzzy:   composite >= m.cfg.FuzzyQualityThreshold && composite < m.cfg.PartialQualityThreshold,
		Context: contextAgree || functionScore == 1.0,
	}

	patternMatches := make([]model.PatternMatch, 0, len(c.Signature.Keywords))
	if n := len(c.Signature.Keywords); n > 0 {
		weight := 1.0 / float64(n)
		observedSet := toSet(observed.Keywords)
		for i, kw := range c.Signature.Keywords {
			patternMatches = append(patternMatches, model.PatternMatch{
				Keyword:  kw,
				Position: i,
				Weight:   weight,
				Matched:  observedSet[kw],
			})
		}
	}

	var warnings, recommendations []string
	if c.Required && composite < m.cfg.RequiredPointWarningThreshold {
		warnings = append(warnings, fmt.Sprintf("required template point %s matched below the warning threshold", c.TemplatePointID))
	}
	if functionScore == 0 && observed.PointFunction != "" && c.Signature.PointFunction != "" {
		recommendations = append(recommendations, fmt.Sprintf("point function disagrees (%s vs %s); verify before binding", observed.PointFunction, c.Signature.PointFunction))
	}
	if observed.Units != "" && c.Signature.Units != "" && observed.Units != c.Signature.Units {
		recommendations = append(recommendations, fmt.Sprintf("units disagree (%s vs %s); verify before binding", observed.Units, c.Signature.Units))
	}
	if len(observed.Keywords) < m.cfg.FewKeywordsThreshold {
		recommendations = append(recommendations, "observed point signature has fewer than two keywords; match may be unreliable")
	}
	if quality.Fuzzy {
		recommendations = append(recommendations, "fuzzy match: confirm manually before applying")
	}

	return model.TemplateMatch{
		TemplateID:             c.TemplateID,
		TemplatePointID:        c.TemplatePointID,
		MatchedPointObjectName: observedObjectName,
		Confidence:             composite,
		MatchScore:             composite,
		PatternMatches:         patternMatches,
		Quality:                quality,
		Warnings:               warnings,
		Recommendations:        recommendations,
	}
}

// functionMatchScore is strictly binary (§4.4): 1 if the functions are
// equal, else 0. Unknown counts as a value like any other.
func functionMatchScore(a, b model.PointFunction) float64 {
	if a == b {
		return 1.0
	}
	return 0.0
}

// contextMatchScore returns the mean agreement over the present attributes
// of {units, objectType}, plus whether any single attribute agreed — the
// latter feeds the §4.4 "context" quality flag, which is set when any of
// units, object type, or function agree.
func contextMatchScore(a, b model.PointSignature) (float64, bool) {
	score := 0.0
	total := 0.0
	agree := false
	if a.ObjectType != "" || b.ObjectType != "" {
		total++
		if a.ObjectType == b.ObjectType {
			score++
			agree = true
		}
	}
	if a.Units != "" || b.Units != "" {
		total++
		if a.Units == b.Units {
			score++
			agree = true
		}
	}
	if total == 0 {
		return 0, false
	}
	return score / total, agree
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
