// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package effectiveness implements the Effectiveness Aggregator (§4.7):
// summarizing a template's historical TemplateApplications into the metrics
// that §4.7 and EquipmentTemplate.SuccessRate/Effectiveness are maintained
// from.
package effectiveness

import (
	"fmt"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/errs"
	"github.com/cxalloy/bascat/services/catalog/model"
)

// Aggregator implements Report. Stateless; cfg pins the fixed-prose
// recommendation thresholds of §4.7.
type Aggregator struct {
	cfg config.EffectivenessConfig
}

// New builds an Aggregator scored by cfg.
func New(cfg config.EffectivenessConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Report computes an EffectivenessReport for template from its historical
// applications. It never panics (§7); an empty applications slice produces
// a zero-valued report with a single recommendation noting no usage yet.
func (a *Aggregator) Report(template model.EquipmentTemplate, applications []model.TemplateApplication) (report model.EffectivenessReport) {
	defer func() {
		if msgs := errs.Guard(recover()); msgs != nil {
			report = model.EffectivenessReport{}
		}
	}()

	report.UsageFrequency = len(applications)
	if len(applications) == 0 {
		report.Recommendations = []string{"template has not been applied yet; no effectiveness data available"}
		return report
	}

	var successful int
	var matchRateSum, confidenceSum float64
	for _, app := range applications {
		if app.IsSuccessful {
			successful++
		}
		matchRateSum += matchRate(app)
		confidenceSum += app.MatchingResults.AverageConfidence
	}

	n := float64(len(applications))
	meanMatchRate := matchRateSum / n
	meanConfidence := confidenceSum / n
	successRate := float64(successful) / n

	report.PointMatchRate = meanMatchRate
	report.ConfidenceScore = meanConfidence
	report.OverallEffectiveness = successRate * meanMatchRate * meanConfidence
	report.Recommendations = recommendations(a.cfg, report)
	return report
}

// matchRate is the fraction of a single application's template points that
// were bound to an observed point.
func matchRate(app model.TemplateApplication) float64 {
	total := app.MatchingResults.MatchedPoints + app.MatchingResults.UnmatchedPoints
	if total == 0 {
		return 0
	}
	return float64(app.MatchingResults.MatchedPoints) / float64(total)
}

// recommendations implements §4.7's "fixed prose keyed on thresholds".
func recommendations(cfg config.EffectivenessConfig, r model.EffectivenessReport) []string {
	var out []string
	if r.OverallEffectiveness < cfg.OverallLowThreshold {
		out = append(out, fmt.Sprintf("overall effectiveness %.2f is below %.2f; review template point definitions", r.OverallEffectiveness, cfg.OverallLowThreshold))
	}
	if r.PointMatchRate < cfg.MatchRateLowThreshold {
		out = append(out, fmt.Sprintf("point match rate %.2f is below %.2f; consider relaxing matching options or adding optional points", r.PointMatchRate, cfg.MatchRateLowThreshold))
	}
	if r.ConfidenceScore < cfg.ConfidenceLowThreshold {
		out = append(out, fmt.Sprintf("average confidence %.2f is below %.2f; verify template point naming against the field device", r.ConfidenceScore, cfg.ConfidenceLowThreshold))
	}
	return out
}
