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
	"sort"
	"strings"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/dictionary"
)

// contextResult is the resolved context analysis from §4.2 step 3: an
// equipment-type hint, a measurement category inferred from units (if any),
// and a vendor name, supplied or inferred.
type contextResult struct {
	unitCategory string
	vendorName   string
	vendorKnown  bool
}

// analyzeContext implements step 3. unitsText is the raw units string off
// the point or context, if any; tokens are the point's own tokens, used to
// infer a vendor when none was supplied.
func analyzeContext(unitsText, suppliedVendor string, tokens []string, dict *dictionary.Set) contextResult {
	var res contextResult

	if unitsText != "" {
		lower := strings.ToLower(unitsText)
		for _, p := range config.UnitPatterns() {
			if p.Regex.MatchString(lower) {
				res.unitCategory = p.Category
				break
			}
		}
	}

	if suppliedVendor != "" {
		res.vendorName = suppliedVendor
		res.vendorKnown = true
		return res
	}

	if dict == nil {
		return res
	}
	// Map iteration order is random; sort vendor names first so inference
	// is deterministic when a point's tokens happen to match more than one
	// vendor table (§8 property 1).
	vendors := make([]string, 0, len(dict.Vendor))
	for v := range dict.Vendor {
		vendors = append(vendors, v)
	}
	sort.Strings(vendors)
	for _, vendor := range vendors {
		table := dict.Vendor[vendor]
		for _, tok := range tokens {
			if _, ok := table.Lookup(tok); ok {
				res.vendorName = vendor
				res.vendorKnown = true
				return res
			}
		}
	}
	return res
}
