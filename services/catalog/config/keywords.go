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

// KeywordTier orders canonical keywords for signature truncation (§4.3,
// "Ordering"): measurement/function indicators sort first, then equipment,
// then location. Lower values sort first.
type KeywordTier int

const (
	TierMeasurementOrFunction KeywordTier = 0
	TierEquipment             KeywordTier = 1
	TierLocation              KeywordTier = 2
	TierOther                 KeywordTier = 3
)

// CanonicalKeyword maps a family of surface tokens to one canonical
// keyword used in signatures, plus the tier that controls truncation
// order.
type CanonicalKeyword struct {
	Regex     *regexp.Regexp
	Canonical string
	Tier      KeywordTier
}

// canonicalKeywords is the pinned keyword-canonicalization table for §4.3.
// Checked in order; first match wins.
var canonicalKeywords = []CanonicalKeyword{
	{Regex: regexp.MustCompile(`(?i)^temp(erature)?s?$`), Canonical: "temperature", Tier: TierMeasurementOrFunction},
	{Regex: regexp.MustCompile(`(?i)^press(ure)?s?$`), Canonical: "pressure", Tier: TierMeasurementOrFunction},
	{Regex: regexp.MustCompile(`(?i)^flows?$`), Canonical: "flow", Tier: TierMeasurementOrFunction},
	{Regex: regexp.MustCompile(`(?i)^(setpoint|sp|setpt)s?$`), Canonical: "setpoint", Tier: TierMeasurementOrFunction},
	{Regex: regexp.MustCompile(`(?i)^position$`), Canonical: "position", Tier: TierMeasurementOrFunction},
	{Regex: regexp.MustCompile(`(?i)^status$`), Canonical: "status", Tier: TierMeasurementOrFunction},
	{Regex: regexp.MustCompile(`(?i)^command$`), Canonical: "command", Tier: TierMeasurementOrFunction},
	{Regex: regexp.MustCompile(`(?i)^sensor$`), Canonical: "sensor", Tier: TierMeasurementOrFunction},
	{Regex: regexp.MustCompile(`(?i)^dampers?$`), Canonical: "damper", Tier: TierEquipment},
	{Regex: regexp.MustCompile(`(?i)^valves?$`), Canonical: "valve", Tier: TierEquipment},
	{Regex: regexp.MustCompile(`(?i)^fans?$`), Canonical: "fan", Tier: TierEquipment},
	{Regex: regexp.MustCompile(`(?i)^rooms?$`), Canonical: "room", Tier: TierLocation},
	{Regex: regexp.MustCompile(`(?i)^supply$`), Canonical: "supply", Tier: TierLocation},
	{Regex: regexp.MustCompile(`(?i)^return$`), Canonical: "return", Tier: TierLocation},
	{Regex: regexp.MustCompile(`(?i)^exhaust$`), Canonical: "exhaust", Tier: TierLocation},
}

// CanonicalKeywords returns the pinned keyword-canonicalization table.
func CanonicalKeywords() []CanonicalKeyword {
	return canonicalKeywords
}

// TechnicalKeywords is the set of canonical keywords counted as "technical"
// for specificity scoring (§4.3, "Specificity").
var TechnicalKeywords = map[string]bool{
	"temperature": true,
	"pressure":    true,
	"flow":        true,
	"setpoint":    true,
	"position":    true,
	"status":      true,
	"command":     true,
	"sensor":      true,
	"damper":      true,
	"valve":       true,
	"fan":         true,
}

// SignatureStopWords are dropped from keyword extraction regardless of
// length (§4.3, "drop a fixed stop-word set").
var SignatureStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "with": true, "by": true,
	"from": true, "and": true, "or": true, "is": true, "are": true,
}
