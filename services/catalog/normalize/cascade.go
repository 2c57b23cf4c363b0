// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package normalize implements the Normalizer (§4.2): it turns a RawPoint
// plus NormalizationContext into a NormalizedPoint by running each token
// through a dictionary cascade, determining the point's function, and
// synthesizing a Title-Case name, description, tag set, and confidence
// score.
package normalize

import (
	"strings"
	"unicode"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/dictionary"
	"github.com/cxalloy/bascat/services/catalog/model"
	"github.com/cxalloy/bascat/services/catalog/tokenize"
)

// analyzeToken runs one token through the dictionary cascade (§4.2 step 2):
// equipment table → vendor table → general table → unit inference →
// pattern inference. The first step that produces a hit wins; later steps
// are not consulted. A token nothing claims still returns a TokenAnalysis
// (totality, §8 property 2) with a low fallback confidence — the
// specification's cascade ends at pattern inference, so this fallback
// covers what's left over.
func analyzeToken(token string, equipment, vendor, general dictionary.Table) model.TokenAnalysis {
	if tokenize.IsNumeric(token) {
		return model.TokenAnalysis{
			OriginalToken:   token,
			NormalizedToken: token,
			Confidence:      1.0,
			Source:          model.TokenSourcePattern,
			Expansion:       token,
		}
	}

	if e, ok := equipment.Lookup(token); ok {
		return entryAnalysis(token, e, model.TokenSourceEquipment, config.DefaultNormalizationConfig().EquipmentPriorityBase)
	}

	if e, ok := vendor.Lookup(token); ok {
		return entryAnalysis(token, e, model.TokenSourceVendor, config.DefaultNormalizationConfig().VendorPriorityBase)
	}

	if e, ok := general.Lookup(token); ok {
		return entryAnalysis(token, e, model.TokenSourceGeneral, e.PriorityScore())
	}

	if ta, ok := analyzeUnitToken(token); ok {
		return ta
	}

	if ta, ok := analyzePatternToken(token); ok {
		return ta
	}

	if config.CommonFunctionWords[strings.ToLower(token)] {
		return model.TokenAnalysis{
			OriginalToken:   token,
			NormalizedToken: strings.ToLower(token),
			Confidence:      0.50,
			Source:          model.TokenSourcePattern,
			Expansion:       strings.ToLower(token),
		}
	}

	// Nothing claimed the token: fall back to the token itself, Title-Cased,
	// at a low confidence that will push the point toward manual review
	// (§7, "Ambiguity").
	return model.TokenAnalysis{
		OriginalToken:   token,
		NormalizedToken: titleCaseWord(token),
		Confidence:      0.20,
		Source:          model.TokenSourcePattern,
		Expansion:       titleCaseWord(token),
	}
}

// analyzeUnitToken implements §4.2.1: a token matching a compiled unit
// pattern becomes that category's name, at high confidence if the token's
// leading letter is consistent with the category, else low confidence.
func analyzeUnitToken(token string) (model.TokenAnalysis, bool) {
	lower := strings.ToLower(token)
	for _, p := range config.UnitPatterns() {
		if !p.Regex.MatchString(lower) {
			continue
		}
		confidence := p.LowConfidence
		if p.LeadingLetter != 0 && len(lower) > 0 && byte(lower[0]) == p.LeadingLetter {
			confidence = p.HighConfidence
		}
		expansion := titleCaseWord(p.Category)
		return model.TokenAnalysis{
			OriginalToken:   token,
			NormalizedToken: expansion,
			Confidence:      confidence,
			Source:          model.TokenSourceUnit,
			Expansion:       expansion,
		}, true
	}
	return model.TokenAnalysis{}, false
}

// analyzePatternToken implements §4.2.2's literal token-pattern table.
func analyzePatternToken(token string) (model.TokenAnalysis, bool) {
	lower := strings.ToLower(token)
	for _, p := range config.TokenPatterns() {
		for _, t := range p.Tokens {
			if lower == t {
				return model.TokenAnalysis{
					OriginalToken:   token,
					NormalizedToken: p.Expansion,
					Confidence:      p.Confidence,
					Source:          model.TokenSourcePattern,
					Expansion:       p.Expansion,
				}, true
			}
		}
	}
	return model.TokenAnalysis{}, false
}

func entryAnalysis(token string, e dictionary.Entry, source model.TokenSource, confidence float64) model.TokenAnalysis {
	ta := model.TokenAnalysis{
		OriginalToken:   token,
		NormalizedToken: e.Expansion,
		Confidence:      confidence,
		Source:          source,
		MatchedAcronym:  e.Acronym,
		Expansion:       e.Expansion,
		DictionaryTags:  e.Tags,
	}
	if fn, ok := e.Function(); ok {
		ta.FunctionHint = fn
	}
	return ta
}

func titleCaseWord(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
