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

// setpointMarkers are the explicit setpoint tokens step 4 tests for on
// AV/BV/MSV points. This set differs from the §4.2.2 pattern-inference
// list ("sp","setp","setpt"): "setp" is not a marker here, while "stpt"
// and "setpoint" are.
var setpointMarkers = map[string]bool{
	"sp": true, "setpt": true, "stpt": true, "setpoint": true,
}

// commandMarkers are the explicit command tokens the no-object-type
// fallback tests for, mirroring the §4.2.2 command patterns.
var commandMarkers = map[string]bool{
	"cmd": true, "cmmd": true, "command": true,
}

// statusTokens are the status-bearing tokens step 4 tests for on
// binary-input/multistate-input points.
var statusTokens = map[string]bool{
	"status": true, "stat": true, "st": true, "alarm": true, "alm": true,
	"fail": true, "flt": true, "run": true,
}

// DetermineFunction implements §4.2 step 4. tokens must be lowercased.
func DetermineFunction(tokens []string, objectType model.ObjectType, isWritable, isCommand bool) model.PointFunction {
	switch {
	case objectType == model.ObjectTypeAO || objectType == model.ObjectTypeBO || objectType == model.ObjectTypeMSO:
		return model.FunctionCommand

	case objectType == model.ObjectTypeAI:
		return model.FunctionSensor

	case objectType == model.ObjectTypeBI || objectType == model.ObjectTypeMSI:
		if containsAny(tokens, statusTokens) {
			return model.FunctionStatus
		}
		return model.FunctionSensor

	case objectType.IsValue():
		if containsAny(tokens, setpointMarkers) {
			return model.FunctionSetpoint
		}
		if isWritable || isCommand {
			return model.FunctionCommand
		}
		return model.FunctionUnknown

	default:
		// No object type available: fall back to token evidence, in
		// priority order Setpoint > Command > Status > Sensor.
		switch {
		case containsAny(tokens, setpointMarkers):
			return model.FunctionSetpoint
		case containsAny(tokens, commandMarkers):
			return model.FunctionCommand
		case containsAny(tokens, statusTokens):
			return model.FunctionStatus
		default:
			return model.FunctionSensor
		}
	}
}

func containsAny(tokens []string, set map[string]bool) bool {
	for _, t := range tokens {
		if set[strings.ToLower(t)] {
			return true
		}
	}
	return false
}

// functionSuffixWord is the literal word appended to the synthesized name in
// step 6, and the word excluded from the base name in step 5 when a token's
// expansion already says it.
func functionSuffixWord(fn model.PointFunction, objectType model.ObjectType) (word string, applies bool) {
	switch fn {
	case model.FunctionSetpoint:
		return "Setpoint", true
	case model.FunctionCommand:
		return "Command", true
	case model.FunctionStatus:
		return "Status", true
	case model.FunctionSensor:
		return "Sensor", objectType.IsInput()
	default:
		return "", false
	}
}
