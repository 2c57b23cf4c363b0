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
	"strings"

	"github.com/cxalloy/bascat/services/catalog/config"
	"github.com/cxalloy/bascat/services/catalog/model"
	"github.com/cxalloy/bascat/services/catalog/tokenize"
)

// buildBaseName implements §4.2 step 5: join the expansions of every token
// that is neither purely numeric nor a restatement of the point's own
// function, collapse whitespace, and Title-Case the result.
func buildBaseName(analyses []model.TokenAnalysis, fn model.PointFunction) string {
	suffixWord := excludeWordForFunction(fn)

	var words []string
	for _, a := range analyses {
		if tokenize.IsNumeric(a.OriginalToken) {
			continue
		}
		if suffixWord != "" && strings.EqualFold(a.Expansion, suffixWord) {
			continue
		}
		words = append(words, strings.Fields(a.Expansion)...)
	}

	for i, w := range words {
		words[i] = titleCaseWord(w)
	}
	return strings.Join(words, " ")
}

// excludeWordForFunction is the word a token's expansion must NOT equal to
// survive into the base name: the determined function's own name, since
// step 6 appends it separately.
func excludeWordForFunction(fn model.PointFunction) string {
	switch fn {
	case model.FunctionSetpoint:
		return "Setpoint"
	case model.FunctionCommand:
		return "Command"
	case model.FunctionStatus:
		return "Status"
	case model.FunctionSensor:
		return "Sensor"
	default:
		return ""
	}
}

// buildDescription implements §4.2 step 6: append the function's suffix to
// the base name, honoring the PreferContractorDescription option (open
// question (a)) when the contractor's own description is more informative.
func buildDescription(baseName string, rawDescription string, fn model.PointFunction, objectType model.ObjectType, cfg config.NormalizationConfig) string {
	description := baseName
	if cfg.PreferContractorDescription && len(strings.TrimSpace(rawDescription)) > len(baseName) {
		description = strings.TrimSpace(rawDescription)
	}

	word, applies := functionSuffixWord(fn, objectType)
	if !applies {
		return description
	}
	if description == "" {
		return word
	}
	return description + " " + word
}
