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
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cxalloy/bascat/services/catalog/model"
)

// BatchInput pairs a RawPoint with its own context, so a single Batch call
// can normalize points pulled from different equipment or vendors at once.
type BatchInput struct {
	Raw     model.RawPoint
	Context model.NormalizationContext
}

// Batch normalizes many points concurrently, bounded by maxConcurrency.
// Each Point call is independent and never errors (§7), so Batch only
// parallelizes the work; it returns results in input order. A
// maxConcurrency of 0 or less defaults to unbounded (errgroup.SetLimit is
// skipped).
func (n *Normalizer) Batch(ctx context.Context, inputs []BatchInput, maxConcurrency int) []model.NormalizedPoint {
	results := make([]model.NormalizedPoint, len(inputs))
	g, _ := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			results[i] = n.Point(in.Raw, in.Context)
			return nil
		})
	}
	// Every goroutine returns nil; Wait only blocks for completion.
	_ = g.Wait()
	return results
}
