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
	"strings"

	"github.com/spf13/cobra"

	"github.com/cxalloy/bascat/services/catalog/model"
)

func newAutomapCmd() *cobra.Command {
	var (
		sourcesPath string
		targetsPath string
		save        bool
	)

	cmd := &cobra.Command{
		Use:   "automap",
		Short: "Pair discovered BACnet equipment against CxAlloy catalog equipment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sources, err := readJSONFile[[]model.BACnetEquipment](sourcesPath)
			if err != nil {
				return err
			}
			targets, err := readJSONFile[[]model.CxAlloyEquipment](targetsPath)
			if err != nil {
				return err
			}

			e, cleanup, err := newEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			result := e.AutoMap(cmd.Context(), sources, targets)

			if save {
				repo, repoCleanup, err := newRepository(cmd.Context())
				if err != nil {
					return err
				}
				defer repoCleanup()
				if err := repo.SaveMappingResult(cmd.Context(), result); err != nil {
					return fmt.Errorf("save mappings: %w", err)
				}
			}

			return emit(result, func() {
				printBucket := func(label string, matches []model.AutoMappingMatch) {
					if len(matches) == 0 {
						return
					}
					fmt.Println(styleHeader.Render(label))
					for _, m := range matches {
						fmt.Printf("  %-12s → %-12s %.2f  %s\n",
							m.BACnetEquipmentID, m.CxAlloyEquipmentID, m.Confidence,
							styleDim.Render(strings.Join(m.Reasons, "; ")))
					}
				}
				printBucket("EXACT", result.Exact)
				printBucket("SUGGESTED", result.Suggested)
				if len(result.UnmatchedSource) > 0 {
					fmt.Println(styleHeader.Render("UNMATCHED"))
					for _, s := range result.UnmatchedSource {
						fmt.Printf("  %-12s %s\n", s.ID, styleWarn.Render(s.Name))
					}
				}
				fmt.Println(styleDim.Render(fmt.Sprintf(
					"%d exact, %d suggested, %d unmatched of %d sources in %dms",
					result.Stats.ExactCount, result.Stats.SuggestedCount,
					result.Stats.UnmatchedSourceCount, result.Stats.TotalSources,
					result.Stats.ElapsedMs)))
			})
		},
	}

	cmd.Flags().StringVar(&sourcesPath, "sources", "", "JSON file of discovered BACnetEquipment")
	cmd.Flags().StringVar(&targetsPath, "targets", "", "JSON file of CxAlloyEquipment catalog entries")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run's matches to the configured repository")
	_ = cmd.MarkFlagRequired("sources")
	_ = cmd.MarkFlagRequired("targets")
	return cmd
}
