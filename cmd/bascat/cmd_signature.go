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
	"github.com/cxalloy/bascat/services/catalog/normalize"
)

// signatureRow pairs a signature with the object it was derived from, for
// both the JSON and table renderings.
type signatureRow struct {
	ObjectName string               `json:"objectName"`
	Signature  model.PointSignature `json:"signature"`
}

func newSignatureCmd() *cobra.Command {
	var (
		input         string
		equipmentType string
	)

	cmd := &cobra.Command{
		Use:   "signature",
		Short: "Derive wildcard keyword signatures for raw points",
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
			for _, p := range points {
				inputs = append(inputs, normalize.BatchInput{
					Raw:     p,
					Context: model.NormalizationContext{EquipmentType: equipmentType, Units: p.Units},
				})
			}
			normalized := e.NormalizeBatch(cmd.Context(), inputs, 8)

			rows := make([]signatureRow, 0, len(normalized))
			for _, np := range normalized {
				rows = append(rows, signatureRow{
					ObjectName: np.ObjectName,
					Signature:  e.Signature(cmd.Context(), np),
				})
			}

			return emit(rows, func() {
				fmt.Println(styleHeader.Render(fmt.Sprintf("%-10s %-30s %-6s %-6s %s", "OBJECT", "PATTERN", "CONF", "SPEC", "KEYWORDS")))
				for _, r := range rows {
					fmt.Printf("%-10s %-30s %-6.2f %-6.2f %s\n",
						r.ObjectName, r.Signature.Pattern, r.Signature.Confidence,
						r.Signature.Specificity, strings.Join(r.Signature.Keywords, ", "))
				}
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "JSON file of RawPoints ('-' for stdin)")
	cmd.Flags().StringVar(&equipmentType, "equipment-type", "", "equipment type hint")
	return cmd
}
