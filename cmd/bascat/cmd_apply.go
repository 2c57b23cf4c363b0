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
	"os/user"

	"github.com/spf13/cobra"

	"github.com/cxalloy/bascat/services/catalog/model"
)

func newApplyCmd() *cobra.Command {
	var (
		templatePath string
		pointsPath   string
		equipmentID  string
		facet        string
		partial      bool
		copyNavName  bool
		copyUnits    bool
		appliedBy    string
		record       bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply an equipment template to a target equipment's observed points",
		RunE: func(cmd *cobra.Command, _ []string) error {
			template, err := readJSONFile[model.EquipmentTemplate](templatePath)
			if err != nil {
				return err
			}
			points, err := readJSONFile[[]model.ObservedPoint](pointsPath)
			if err != nil {
				return err
			}

			opts := model.DefaultMatchingOptions()
			if facet != "" {
				opts.MatchingFacet = model.MatchingFacet(facet)
			}
			opts.AllowPartialMatches = partial
			opts.CopyNavName = copyNavName
			opts.CopyUnits = copyUnits

			if appliedBy == "" {
				if u, err := user.Current(); err == nil {
					appliedBy = u.Username
				} else {
					appliedBy = "unknown"
				}
			}

			e, cleanup, err := newEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			app := e.Apply(cmd.Context(), template, equipmentID, points, opts, appliedBy)

			if record {
				repo, repoCleanup, err := newRepository(cmd.Context())
				if err != nil {
					return err
				}
				defer repoCleanup()
				if err := repo.RecordApplication(cmd.Context(), app); err != nil {
					return fmt.Errorf("record application: %w", err)
				}
			}

			return emit(app, func() {
				for _, ap := range app.AppliedPoints {
					if ap.Matched {
						fmt.Printf("  %-16s → %-12s %.2f\n", ap.TemplatePointID, ap.PointObjectName, ap.Confidence)
					} else {
						fmt.Printf("  %-16s %s\n", ap.TemplatePointID, styleWarn.Render("unmatched"))
					}
				}
				verdict := styleWarn.Render("NOT SUCCESSFUL")
				if app.IsSuccessful {
					verdict = styleGood.Render("SUCCESSFUL")
				}
				fmt.Printf("%s: %d/%d points, mean confidence %.2f\n",
					verdict, app.MatchingResults.MatchedPoints,
					app.MatchingResults.MatchedPoints+app.MatchingResults.UnmatchedPoints,
					app.MatchingResults.AverageConfidence)
			})
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "JSON file with the EquipmentTemplate")
	cmd.Flags().StringVar(&pointsPath, "points", "-", "JSON file of ObservedPoints ('-' for stdin)")
	cmd.Flags().StringVar(&equipmentID, "equipment", "", "target equipment ID")
	cmd.Flags().StringVar(&facet, "facet", "", "matching facet: bacnetCur, bacnetDis, or bacnetDesc")
	cmd.Flags().BoolVar(&partial, "partial", false, "allow substring facet matches")
	cmd.Flags().BoolVar(&copyNavName, "copy-nav-name", false, "carry the template's navName onto applied points")
	cmd.Flags().BoolVar(&copyUnits, "copy-units", false, "carry the template's units onto applied points")
	cmd.Flags().StringVar(&appliedBy, "by", "", "user recorded on the application (default: current user)")
	cmd.Flags().BoolVar(&record, "record", false, "persist the application to the configured repository")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("equipment")
	return cmd
}
