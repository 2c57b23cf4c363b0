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
	"time"

	"github.com/spf13/cobra"

	"github.com/cxalloy/bascat/services/catalog/model"
)

func newEffectivenessCmd() *cobra.Command {
	var (
		templatePath     string
		templateID       string
		applicationsPath string
		refresh          bool
	)

	cmd := &cobra.Command{
		Use:   "effectiveness",
		Short: "Summarize a template's historical application results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, cleanup, err := newEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			var template model.EquipmentTemplate
			var applications []model.TemplateApplication

			if templateID != "" {
				// Repository-driven path: template and history both come
				// from the configured store.
				repo, repoCleanup, err := newRepository(cmd.Context())
				if err != nil {
					return err
				}
				defer repoCleanup()

				template, err = repo.GetTemplate(cmd.Context(), templateID)
				if err != nil {
					return fmt.Errorf("load template %s: %w", templateID, err)
				}
				applications, err = repo.ListApplications(cmd.Context(), templateID)
				if err != nil {
					return fmt.Errorf("list applications: %w", err)
				}

				report := e.Effectiveness(cmd.Context(), template, applications)
				if refresh {
					updated := e.RefreshTemplateStats(template, report, time.Now())
					if err := repo.SaveTemplate(cmd.Context(), updated); err != nil {
						return fmt.Errorf("save refreshed template: %w", err)
					}
				}
				return emitReport(report)
			}

			template, err = readJSONFile[model.EquipmentTemplate](templatePath)
			if err != nil {
				return err
			}
			applications, err = readJSONFile[[]model.TemplateApplication](applicationsPath)
			if err != nil {
				return err
			}
			return emitReport(e.Effectiveness(cmd.Context(), template, applications))
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "JSON file with the EquipmentTemplate")
	cmd.Flags().StringVar(&templateID, "template-id", "", "template ID to load from the repository instead of --template")
	cmd.Flags().StringVar(&applicationsPath, "applications", "", "JSON file of TemplateApplications")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "write refreshed usage stats back to the repository (with --template-id)")
	return cmd
}

func emitReport(report model.EffectivenessReport) error {
	return emit(report, func() {
		fmt.Printf("overall effectiveness  %.2f\n", report.OverallEffectiveness)
		fmt.Printf("point match rate       %.2f\n", report.PointMatchRate)
		fmt.Printf("confidence score       %.2f\n", report.ConfidenceScore)
		fmt.Printf("applications           %d\n", report.UsageFrequency)
		for _, r := range report.Recommendations {
			fmt.Println(styleWarn.Render("• " + r))
		}
	})
}
