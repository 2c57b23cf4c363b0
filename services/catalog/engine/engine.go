// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine is the instrumented facade over the catalog core. The
// engines underneath (normalize, signature, match, automap, applicator,
// effectiveness) stay pure; this layer owns the dictionary snapshot handle,
// the optional signature cache, OTel spans, and Prometheus metrics, so
// callers get one construction site and the core packages stay
// side-effect-free (§5).
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cxalloy/bascat/services/catalog/applicator"
	"github.com/cxalloy/bascat/services/catalog/automap"
	"github.com/cxalloy/bascat/services/catalog/catalogcache"
	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/dictionary"
	"github.com/cxalloy/bascat/services/catalog/effectiveness"
	"github.com/cxalloy/bascat/services/catalog/match"
	"github.com/cxalloy/bascat/services/catalog/model"
	"github.com/cxalloy/bascat/services/catalog/normalize"
	"github.com/cxalloy/bascat/services/catalog/signature"
)

// engineTracer is the shared OTel tracer for all facade operations.
var engineTracer = otel.Tracer("bascat.catalog.engine")

// rawPointValidator enforces the ingestion-boundary struct tags on
// RawPoint (§9, "reject unknown strings at the ingestion boundary").
var rawPointValidator = validator.New()

// Options configures an Engine. Zero-value fields select defaults.
type Options struct {
	// Config pins every scoring constant. Zero value selects
	// config.Default().
	Config config.Config

	// Dictionaries is the process-wide dictionary store. Nil selects a
	// store seeded with the embedded tables.
	Dictionaries *dictionary.Store

	// SignatureCache persists derived signatures between runs. Nil runs
	// without persistence (always-miss).
	SignatureCache *catalogcache.Store

	// Logger receives cache and reload diagnostics. Nil selects
	// slog.Default().
	Logger *slog.Logger
}

// Engine bundles the catalog core behind one handle. Safe for concurrent
// use: all mutable state lives in the dictionary store's atomic snapshot
// and the (internally synchronized) signature cache.
type Engine struct {
	cfg        config.Config
	dict       *dictionary.Store
	sigCache   *catalogcache.Store
	logger     *slog.Logger
	normalizer *normalize.Normalizer
	builder    *signature.Builder
	matcher    *match.Matcher
	mapper     *automap.Mapper
	applicator *applicator.Applicator
	aggregator *effectiveness.Aggregator
}

// New constructs an Engine from opts.
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	dict := opts.Dictionaries
	if dict == nil {
		dict = dictionary.NewStore(dictionary.LoadEmbedded())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:        cfg,
		dict:       dict,
		sigCache:   opts.SignatureCache,
		logger:     logger,
		normalizer: normalize.New(dict, cfg.Normalization),
		builder:    signature.New(cfg.Signature),
		matcher:    match.New(cfg.Match),
		mapper:     automap.New(cfg.AutoMap),
		applicator: applicator.New(),
		aggregator: effectiveness.New(cfg.Effectiveness),
	}
}

// Dictionaries returns the engine's dictionary store, e.g. for starting a
// hot-reload watch.
func (e *Engine) Dictionaries() *dictionary.Store { return e.dict }

// ValidateRawPoint applies the ingestion-boundary validation tags on
// RawPoint. The core itself is total and never re-validates; callers that
// ingest untrusted descriptors run this first and reject failures.
func (e *Engine) ValidateRawPoint(raw model.RawPoint) error {
	return rawPointValidator.Struct(raw)
}

// Normalize runs the §4.2 pipeline on one point.
func (e *Engine) Normalize(ctx context.Context, raw model.RawPoint, nctx model.NormalizationContext) model.NormalizedPoint {
	_, span := engineTracer.Start(ctx, "catalog.normalize")
	defer span.End()
	start := time.Now()

	np := e.normalizer.Point(raw, nctx)

	span.SetAttributes(
		attribute.String("object_type", string(raw.ObjectType)),
		attribute.String("point_function", string(np.PointFunction)),
		attribute.Float64("confidence", np.ConfidenceScore),
		attribute.Bool("requires_manual_review", np.RequiresManualReview),
	)
	observeCall("normalize", start, len(np.Errors) == 0)
	if np.RequiresManualReview {
		normalizeReviewTotal.Inc()
	}
	return np
}

// NormalizeBatch normalizes many points concurrently, bounded by
// maxConcurrency, preserving input order.
func (e *Engine) NormalizeBatch(ctx context.Context, inputs []normalize.BatchInput, maxConcurrency int) []model.NormalizedPoint {
	ctx, span := engineTracer.Start(ctx, "catalog.normalize_batch")
	defer span.End()
	start := time.Now()

	results := e.normalizer.Batch(ctx, inputs, maxConcurrency)

	span.SetAttributes(attribute.Int("points", len(inputs)))
	observeCall("normalize_batch", start, true)
	return results
}

// Signature derives the wildcard signature for a normalized point,
// consulting the cache (when configured) under the current dictionary
// version so a dictionary reload invalidates naturally (§3).
func (e *Engine) Signature(ctx context.Context, np model.NormalizedPoint) model.PointSignature {
	_, span := engineTracer.Start(ctx, "catalog.signature")
	defer span.End()
	start := time.Now()

	version := e.dict.Snapshot().Version()
	if np.ObjectName != "" {
		if sig, hit, err := e.sigCache.Load(ctx, np.ObjectName, version); err == nil && hit {
			signatureCacheTotal.WithLabelValues("hit").Inc()
			span.SetAttributes(attribute.Bool("cache_hit", true))
			observeCall("signature", start, true)
			return sig
		} else if err != nil {
			e.logger.Warn("signature cache load failed", slog.String("objectName", np.ObjectName), slog.Any("error", err))
		}
		signatureCacheTotal.WithLabelValues("miss").Inc()
	}

	sig := e.builder.Build(np)

	if np.ObjectName != "" {
		if err := e.sigCache.Save(ctx, np.ObjectName, version, sig); err != nil {
			e.logger.Warn("signature cache save failed", slog.String("objectName", np.ObjectName), slog.Any("error", err))
		}
	}

	span.SetAttributes(
		attribute.String("pattern", sig.Pattern),
		attribute.Int("keywords", len(sig.Keywords)),
		attribute.Float64("specificity", sig.Specificity),
	)
	observeCall("signature", start, true)
	return sig
}

// AutoMap pairs discovered equipment against catalog equipment (§4.5).
func (e *Engine) AutoMap(ctx context.Context, sources []model.BACnetEquipment, targets []model.CxAlloyEquipment) model.AutoMappingResult {
	ctx, span := engineTracer.Start(ctx, "catalog.automap")
	defer span.End()
	start := time.Now()

	result := e.mapper.AutoMap(ctx, sources, targets)

	span.SetAttributes(
		attribute.Int("sources", len(sources)),
		attribute.Int("targets", len(targets)),
		attribute.Int("exact", len(result.Exact)),
		attribute.Int("suggested", len(result.Suggested)),
	)
	automapOutcomeTotal.WithLabelValues("exact").Add(float64(len(result.Exact)))
	automapOutcomeTotal.WithLabelValues("suggested").Add(float64(len(result.Suggested)))
	automapOutcomeTotal.WithLabelValues("unmatched").Add(float64(len(result.UnmatchedSource)))
	observeCall("automap", start, true)
	return result
}

// Apply binds a template to a target equipment's observed points (§4.6).
func (e *Engine) Apply(ctx context.Context, template model.EquipmentTemplate, targetEquipmentID string, targetPoints []model.ObservedPoint, opts model.MatchingOptions, appliedBy string) model.TemplateApplication {
	_, span := engineTracer.Start(ctx, "catalog.apply")
	defer span.End()
	start := time.Now()

	app := e.applicator.Apply(template, targetEquipmentID, targetPoints, opts, appliedBy)

	span.SetAttributes(
		attribute.String("template_id", template.ID),
		attribute.Int("matched_points", app.MatchingResults.MatchedPoints),
		attribute.Bool("successful", app.IsSuccessful),
	)
	observeCall("apply", start, true)
	return app
}

// Effectiveness summarizes a template's historical applications (§4.7).
func (e *Engine) Effectiveness(ctx context.Context, template model.EquipmentTemplate, applications []model.TemplateApplication) model.EffectivenessReport {
	_, span := engineTracer.Start(ctx, "catalog.effectiveness")
	defer span.End()
	start := time.Now()

	report := e.aggregator.Report(template, applications)

	span.SetAttributes(
		attribute.String("template_id", template.ID),
		attribute.Float64("overall_effectiveness", report.OverallEffectiveness),
	)
	observeCall("effectiveness", start, true)
	return report
}

// RefreshTemplateStats returns template with its usage counters updated
// from an effectiveness report (§3: EquipmentTemplates are "updated by
// effectiveness aggregation"). The input is not mutated; callers persist
// the returned copy.
func (e *Engine) RefreshTemplateStats(template model.EquipmentTemplate, report model.EffectivenessReport, now time.Time) model.EquipmentTemplate {
	template.UsageCount = report.UsageFrequency
	template.Effectiveness = report.OverallEffectiveness
	if report.UsageFrequency > 0 && report.PointMatchRate > 0 && report.ConfidenceScore > 0 {
		template.SuccessRate = report.OverallEffectiveness / (report.PointMatchRate * report.ConfidenceScore)
		if template.SuccessRate > 1 {
			template.SuccessRate = 1
		}
	} else {
		template.SuccessRate = 0
	}
	template.UpdatedAt = now
	return template
}
