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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level Prometheus metrics for catalog engine operations.
// Auto-registered via promauto so no explicit registry wiring is needed.
var (
	// callDuration measures the duration of each facade operation.
	//
	// Labels:
	//   - operation: "normalize", "normalize_batch", "signature", "match",
	//     "automap", "apply", "effectiveness"
	//   - status: "success" or "error"
	callDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bascat",
			Subsystem: "catalog",
			Name:      "call_duration_seconds",
			Help:      "Duration of catalog engine calls in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation", "status"},
	)

	// callsTotal counts facade operations.
	callsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bascat",
			Subsystem: "catalog",
			Name:      "calls_total",
			Help:      "Total catalog engine calls.",
		},
		[]string{"operation", "status"},
	)

	// normalizeReviewTotal counts normalized points flagged for manual
	// review, the engine's main quality signal.
	normalizeReviewTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bascat",
			Subsystem: "catalog",
			Name:      "normalize_manual_review_total",
			Help:      "Normalized points flagged requiresManualReview.",
		},
	)

	// signatureCacheTotal counts signature cache lookups by result.
	//
	// Labels:
	//   - result: "hit" or "miss"
	signatureCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bascat",
			Subsystem: "catalog",
			Name:      "signature_cache_total",
			Help:      "Signature cache lookups by result.",
		},
		[]string{"result"},
	)

	// automapOutcomeTotal counts auto-mapping placements by bucket.
	//
	// Labels:
	//   - bucket: "exact", "suggested", "unmatched"
	automapOutcomeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bascat",
			Subsystem: "catalog",
			Name:      "automap_outcome_total",
			Help:      "Auto-mapping source placements by bucket.",
		},
		[]string{"bucket"},
	)
)

// observeCall records duration and count for one facade operation.
func observeCall(operation string, start time.Time, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	callDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
	callsTotal.WithLabelValues(operation, status).Inc()
}
