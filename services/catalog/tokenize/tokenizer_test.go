// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"underscore", "SA_TS", []string{"SA", "TS"}},
		{"hyphen", "ZN-T", []string{"ZN", "T"}},
		{"dot_and_space", "ROOM TEMP 4", []string{"ROOM", "TEMP", "4"}},
		{"camel_case", "DamperPosition", []string{"Damper", "Position"}},
		{"allcaps_preserved", "HGR_SIG", []string{"HGR", "SIG"}},
		{"mixed_delims_and_camel", "sa.fanSpeedCmd", []string{"sa", "fan", "Speed", "Cmd"}},
		{"numeric_retained", "AI39", []string{"AI39"}},
		{"empty", "", nil},
		{"only_delimiters", "__--..", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokens(tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("4"))
	assert.True(t, IsNumeric("39"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("4A"))
}
