// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package errs centralizes the "internal defect" capture required of every
// top-level core function (§7): no panic may escape normalize, signature,
// match, autoMap, apply, or effectiveness. Each of those functions defers
// Guard so a programming error does not crash the caller. Only normalize
// records the message, on NormalizedPoint.Errors; the other result types
// have no errors field, so those functions drop the message and return a
// fallback value instead (an *UNKNOWN* signature, no matches, every source
// and target unmatched, an application with no applied points, or a zero
// effectiveness report).
package errs

import "fmt"

// Guard runs fn and recovers any panic, returning a single-element slice
// describing it, or nil if fn completed normally. A caller whose output
// value has an Errors field appends the result onto it:
//
//	defer func() {
//	    if msgs := errs.Guard(recover()); msgs != nil {
//	        result.Errors = append(result.Errors, msgs...)
//	    }
//	}()
func Guard(recovered any) []string {
	if recovered == nil {
		return nil
	}
	return []string{fmt.Sprintf("internal defect: %v", recovered)}
}
