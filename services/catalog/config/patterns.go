// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import "regexp"

// UnitPattern is one compiled unit-category matcher for §4.2.1 unit-based
// inference.
type UnitPattern struct {
	Category      string
	Regex         *regexp.Regexp
	LeadingLetter byte // expected first letter of a token in this category, lowercase
	HighConfidence float64
	LowConfidence  float64
}

// unitPatterns is the pinned regex table from §4.2.1, compiled once at
// package init. Order matters only for which category name is reported
// when a unit string happens to satisfy more than one pattern; the
// specification does not rank them, so first-match-wins in this order.
var unitPatterns = []UnitPattern{
	{Category: "temperature", Regex: regexp.MustCompile(`(?i)°?[cf]\b|deg|temp`), LeadingLetter: 't', HighConfidence: 0.80, LowConfidence: 0.60},
	{Category: "pressure", Regex: regexp.MustCompile(`(?i)psi|pa\b|inh2o|inhg|bar|press`), LeadingLetter: 'p', HighConfidence: 0.80, LowConfidence: 0.60},
	{Category: "flow", Regex: regexp.MustCompile(`(?i)cfm|gpm|lps|m3h|flow`), LeadingLetter: 'f', HighConfidence: 0.80, LowConfidence: 0.60},
	{Category: "percentage", Regex: regexp.MustCompile(`%|pct|percent`), LeadingLetter: 0, HighConfidence: 0.80, LowConfidence: 0.60},
	{Category: "power", Regex: regexp.MustCompile(`(?i)kw|w\b|hp|power`), LeadingLetter: 'p', HighConfidence: 0.80, LowConfidence: 0.60},
	{Category: "humidity", Regex: regexp.MustCompile(`(?i)%?rh|humidity`), LeadingLetter: 'h', HighConfidence: 0.80, LowConfidence: 0.60},
	{Category: "co2", Regex: regexp.MustCompile(`(?i)ppm|co2`), LeadingLetter: 'c', HighConfidence: 0.80, LowConfidence: 0.60},
}

// UnitPatterns returns the pinned unit-category matchers, in specification
// order.
func UnitPatterns() []UnitPattern {
	return unitPatterns
}

// TokenPattern is one §4.2.2 pattern-based token inference rule.
type TokenPattern struct {
	Tokens     []string // lowercase token literals this rule matches
	Expansion  string
	Confidence float64
}

// tokenPatterns is the pinned pattern-inference table from §4.2.2. Checked
// in order; the first rule whose Tokens contains the lowercased token wins.
var tokenPatterns = []TokenPattern{
	{Tokens: []string{"sp", "setp", "setpt"}, Expansion: "Setpoint", Confidence: 0.90},
	{Tokens: []string{"cmd", "cmmd", "command"}, Expansion: "Command", Confidence: 0.90},
	{Tokens: []string{"st", "stat", "status"}, Expansion: "Status", Confidence: 0.85},
	{Tokens: []string{"pos", "position"}, Expansion: "Position", Confidence: 0.80},
	{Tokens: []string{"lvl", "level"}, Expansion: "Level", Confidence: 0.80},
}

// TokenPatterns returns the pinned pattern-inference rules, in
// specification order.
func TokenPatterns() []TokenPattern {
	return tokenPatterns
}

// CommonFunctionWords are short, frequent tokens left lowercase rather than
// Title-Cased or expanded when no other cascade step claims them (§4.2.2,
// "short, common function words left lowercase").
var CommonFunctionWords = map[string]bool{
	"of":  true,
	"the": true,
	"a":   true,
	"an":  true,
	"at":  true,
	"in":  true,
	"on":  true,
	"to":  true,
	"for": true,
}
