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

// TypeEquivalenceGroups is the closed table of equipment-type variant sets
// used by the auto-mapper's type-compatibility score (§4.5): any two
// strings within the same group are considered equivalent (score 0.90).
// Strings are matched after the auto-mapper's type normalization:
// lowercasing, turning - and _ into spaces, and collapsing repeated
// whitespace.
var TypeEquivalenceGroups = [][]string{
	{"air handler unit", "ahu", "air handling unit"},
	{"vav controller", "vav terminal", "vav box", "variable air volume"},
	{"chiller", "chilled water plant"},
	{"boiler", "hot water plant"},
	{"fan coil unit", "fcu"},
	{"rooftop unit", "rtu", "packaged rooftop unit"},
	{"heat pump", "hp"},
	{"unit heater", "uh"},
	{"make up air unit", "mau", "makeup air unit"},
	{"exhaust fan", "ef"},
	{"supply fan", "sf"},
	{"cooling tower", "ct"},
	{"pump", "circulating pump", "circ pump"},
}
