// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package signature

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/errs"
	"github.com/cxalloy/bascat/services/catalog/model"
)

// emptyPattern is emitted when no keywords survive extraction (§4.3,
// "Empty input yields *UNKNOWN*").
const emptyPattern = "*UNKNOWN*"

// Builder derives PointSignatures from NormalizedPoints (§4.3).
type Builder struct {
	cfg config.SignatureConfig
}

// New builds a Builder scored by cfg.
func New(cfg config.SignatureConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build implements §4.3 end to end. It never panics (§7).
func (b *Builder) Build(point model.NormalizedPoint) (sig model.PointSignature) {
	defer func() {
		if msgs := errs.Guard(recover()); msgs != nil {
			sig = model.PointSignature{
				Pattern:       emptyPattern,
				PointFunction: point.PointFunction,
				ObjectType:    point.ObjectType,
			}
		}
	}()

	keywords := extractKeywords(point.NormalizedName, b.cfg)

	// The wildcard form is upper case (§4.3, "Pattern"); keywords stay
	// lower case for Jaccard overlap in the matcher. NormalizedPattern is
	// the pattern with the wildcard chars dropped (§3).
	pattern := emptyPattern
	if len(keywords) > 0 {
		pattern = "*" + strings.ToUpper(strings.Join(keywords, "*")) + "*"
	}
	normalizedPattern := strings.ReplaceAll(pattern, "*", "")

	keywordTerm := float64(len(keywords)) / b.cfg.KeywordCountNorm
	if keywordTerm > 1 {
		keywordTerm = 1
	}
	confidence := b.cfg.BaseConfidence + b.cfg.KeywordCountWeight*keywordTerm
	if point.PointFunction != model.FunctionUnknown && point.PointFunction != "" {
		confidence += b.cfg.FunctionKnownBonus
	}
	if point.Units != "" {
		confidence += b.cfg.UnitsPresentBonus
	}
	if point.ObjectType != "" {
		confidence += b.cfg.ObjectTypePresentBonus
	}
	switch point.ConfidenceLevel {
	case model.ConfidenceHigh:
		confidence += b.cfg.SourceHighBonus
	case model.ConfidenceMedium:
		confidence += b.cfg.SourceMediumBonus
	}
	confidence = clamp01(confidence)

	technicalCount := 0
	for _, k := range keywords {
		if config.TechnicalKeywords[k] {
			technicalCount++
		}
	}
	keywordDepth := float64(len(keywords)) / b.cfg.SpecificityKeywordNorm
	if keywordDepth > b.cfg.SpecificityKeywordCap {
		keywordDepth = b.cfg.SpecificityKeywordCap
	}
	specificity := b.cfg.SpecificityBase + keywordDepth
	specificity += b.cfg.SpecificityTechnicalWeight * float64(technicalCount)
	if spare := b.cfg.SpecificityWildcardBudget - strings.Count(pattern, "*"); spare > 0 {
		specificity += b.cfg.SpecificityWildcardBonus * float64(spare)
	}
	specificity = clamp01(specificity)

	return model.PointSignature{
		Pattern:           pattern,
		NormalizedPattern: normalizedPattern,
		Keywords:          keywords,
		Confidence:        confidence,
		Specificity:       specificity,
		PointFunction:     point.PointFunction,
		ObjectType:        point.ObjectType,
		Units:             point.Units,
	}
}

// BuildMany builds signatures for many points concurrently, bounded by
// maxConcurrency, preserving input order.
func (b *Builder) BuildMany(ctx context.Context, points []model.NormalizedPoint, maxConcurrency int) []model.PointSignature {
	results := make([]model.PointSignature, len(points))
	g, _ := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}
	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			results[i] = b.Build(p)
			return nil
		})
	}
	_ = g.Wait()
	return results
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
