// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cxalloy/bascat/services/catalog/model"
	"github.com/cxalloy/bascat/services/catalog/normalize"
)

func newMatchCmd() *cobra.Command {
	var (
		templatePath string
		pointsPath   string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score observed points against an equipment template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			template, err := readJSONFile[model.EquipmentTemplate](templatePath)
			if err != nil {
				return err
			}
			points, err := readJSONFile[[]model.RawPoint](pointsPath)
			if err != nil {
				return err
			}

			e, cleanup, err := newEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			inputs := make([]normalize.BatchInput, 0, len(points))
			for _, p := range points {
				inputs = append(inputs, normalize.BatchInput{
					Raw:     p,
					Context: model.NormalizationContext{EquipmentType: template.EquipmentType, Units: p.Units},
				})
			}
			normalized := e.NormalizeBatch(cmd.Context(), inputs, 8)

			matches := e.MatchTemplate(cmd.Context(), normalized, template)

			return emit(matches, func() {
				fmt.Println(styleHeader.Render(fmt.Sprintf("%-16s %-10s %-6s %s", "TEMPLATE POINT", "OBJECT", "SCORE", "QUALITY")))
				for _, m := range matches {
					quality := "fuzzy"
					switch {
					case m.Quality.Exact:
						quality = styleGood.Render("exact")
					case m.Quality.Partial:
						quality = "partial"
					}
					fmt.Printf("%-16s %-10s %-6.2f %s\n", m.TemplatePointID, m.MatchedPointObjectName, m.MatchScore, quality)
					for _, w := range m.Warnings {
						fmt.Println("  " + styleWarn.Render(w))
					}
					for _, r := range m.Recommendations {
						fmt.Println("  " + styleDim.Render(r))
					}
				}
				fmt.Println(styleDim.Render(fmt.Sprintf("%d of %d template points matched", len(matches), len(template.Points))))
			})
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "JSON file with the EquipmentTemplate")
	cmd.Flags().StringVar(&pointsPath, "points", "-", "JSON file of RawPoints ('-' for stdin)")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}
