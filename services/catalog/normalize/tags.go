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

	"github.com/cxalloy/bascat/services/catalog/model"
)

var tagCategoryByWord = map[string]model.TagCategory{
	"temperature": model.TagCategoryMeasurement,
	"temp":        model.TagCategoryMeasurement,
	"pressure":    model.TagCategoryMeasurement,
	"flow":        model.TagCategoryMeasurement,
	"humidity":    model.TagCategoryMeasurement,
	"power":       model.TagCategoryMeasurement,
	"level":       model.TagCategoryMeasurement,
	"percentage":  model.TagCategoryMeasurement,
	"co2":         model.TagCategoryMeasurement,

	"air":   model.TagCategorySubstance,
	"water": model.TagCategorySubstance,
	"steam": model.TagCategorySubstance,
	"elec":  model.TagCategorySubstance,

	"sensor":   model.TagCategoryFunction,
	"sp":       model.TagCategoryFunction,
	"setpoint": model.TagCategoryFunction,
	"cmd":      model.TagCategoryFunction,
	"command":  model.TagCategoryFunction,
	"status":   model.TagCategoryFunction,

	"room":    model.TagCategoryLocation,
	"zone":    model.TagCategoryLocation,
	"supply":  model.TagCategoryLocation,
	"return":  model.TagCategoryLocation,
	"exhaust": model.TagCategoryLocation,

	"damper": model.TagCategoryEntity,
	"valve":  model.TagCategoryEntity,
	"fan":    model.TagCategoryEntity,
	"point":  model.TagCategoryEntity,

	"occ":   model.TagCategoryState,
	"unocc": model.TagCategoryState,
	"alarm": model.TagCategoryState,
	"fail":  model.TagCategoryState,
}

// functionTagName is the tag added for the point's determined function
// (§4.2 step 7: "one function tag: sensor|sp|cmd|status").
func functionTagName(fn model.PointFunction) (string, bool) {
	switch fn {
	case model.FunctionSensor:
		return "sensor", true
	case model.FunctionSetpoint:
		return "sp", true
	case model.FunctionCommand:
		return "cmd", true
	case model.FunctionStatus:
		return "status", true
	default:
		return "", false
	}
}

// buildTags implements §4.2 step 7: seed an explicit "point" entity tag,
// add one tag per dictionary tag carried by a token (category looked up in
// tagCategoryByWord, Other when unlisted), and add one function tag for
// the determined PointFunction.
// Duplicate tag names collapse to the highest-confidence occurrence.
func buildTags(analyses []model.TokenAnalysis, fn model.PointFunction) []model.Tag {
	byName := map[string]model.Tag{
		"point": {Name: "point", Category: model.TagCategoryEntity, Confidence: 1.0, Source: model.TagSourceExplicit},
	}

	addTag := func(name string, confidence float64, source model.TagSource) {
		name = strings.ToLower(name)
		category, known := tagCategoryByWord[name]
		if !known {
			category = model.TagCategoryOther
		}
		if existing, ok := byName[name]; ok && existing.Confidence >= confidence {
			return
		}
		byName[name] = model.Tag{Name: name, Category: category, Confidence: confidence, Source: source}
	}

	for _, a := range analyses {
		for _, t := range a.DictionaryTags {
			addTag(t, a.Confidence, model.TagSourceExplicit)
		}
	}

	if name, ok := functionTagName(fn); ok {
		addTag(name, 1.0, model.TagSourceInferred)
	}

	tags := make([]model.Tag, 0, len(byName))
	for _, name := range sortedKeys(byName) {
		tags = append(tags, byName[name])
	}
	return tags
}

func sortedKeys(m map[string]model.Tag) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Small fixed set; simple insertion sort keeps this dependency-free and
	// avoids importing sort for a handful of elements.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
