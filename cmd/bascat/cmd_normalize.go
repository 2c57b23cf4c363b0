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

func newNormalizeCmd() *cobra.Command {
	var (
		input         string
		equipmentType string
		vendorName    string
		concurrency   int
	)

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize raw BACnet point descriptors into expanded, tagged names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			points, err := readJSONFile[[]model.RawPoint](input)
			if err != nil {
				return err
			}

			e, cleanup, err := newEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			inputs := make([]normalize.BatchInput, 0, len(points))
			for i, p := range points {
				if err := e.ValidateRawPoint(p); err != nil {
					return fmt.Errorf("point %d (%s): %w", i, p.ObjectName, err)
				}
				inputs = append(inputs, normalize.BatchInput{
					Raw: p,
					Context: model.NormalizationContext{
						EquipmentType: equipmentType,
						VendorName:    vendorName,
						Units:         p.Units,
					},
				})
			}

			results := e.NormalizeBatch(cmd.Context(), inputs, concurrency)

			return emit(results, func() {
				fmt.Println(styleHeader.Render(fmt.Sprintf("%-10s %-32s %-9s %-6s %s", "OBJECT", "NORMALIZED NAME", "FUNCTION", "CONF", "FLAGS")))
				for _, np := range results {
					flags := ""
					if np.RequiresManualReview {
						flags = styleWarn.Render("review")
					}
					fmt.Printf("%-10s %-32s %-9s %-6.2f %s\n",
						np.ObjectName, np.NormalizedName, np.PointFunction, np.ConfidenceScore, flags)
				}
				fmt.Println(styleDim.Render(fmt.Sprintf("%d points", len(results))))
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "JSON file of RawPoints ('-' for stdin)")
	cmd.Flags().StringVar(&equipmentType, "equipment-type", "", "equipment type hint (e.g. VAV_CONTROLLER)")
	cmd.Flags().StringVar(&vendorName, "vendor", "", "vendor name hint")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "max concurrent normalizations")
	return cmd
}
