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
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cxalloy/bascat/services/catalog/model"
	"github.com/cxalloy/bascat/services/catalog/normalize"
)

func newReviewCmd() *cobra.Command {
	var (
		input         string
		output        string
		equipmentType string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Interactively review and correct low-confidence normalizations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return errors.New("review needs an interactive terminal; use 'normalize' for pipelines")
			}

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

			// Only the flagged points go through the terminal pass; the
			// rest ship unchanged.
			var flagged []int
			for i, np := range normalized {
				if np.RequiresManualReview {
					flagged = append(flagged, i)
				}
			}
			if len(flagged) == 0 {
				fmt.Println(styleGood.Render("no points require manual review"))
				return writeJSONFile(output, normalized)
			}

			if err := runReviewLoop(normalized, flagged); err != nil {
				return err
			}
			return writeJSONFile(output, normalized)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file of RawPoints")
	cmd.Flags().StringVarP(&output, "output", "o", "", "where to write the reviewed points (default stdout)")
	cmd.Flags().StringVar(&equipmentType, "equipment-type", "", "equipment type hint")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// reviewItem adapts one flagged point to the bubbles list.
type reviewItem struct {
	index  int // into the normalized slice
	np     *model.NormalizedPoint
	edited bool
}

func (i reviewItem) Title() string {
	title := fmt.Sprintf("%s  %s", i.np.ObjectName, i.np.NormalizedName)
	if i.edited {
		title += "  ✓"
	}
	return title
}

func (i reviewItem) Description() string {
	return fmt.Sprintf("%s · confidence %.2f", i.np.PointFunction, i.np.ConfidenceScore)
}

func (i reviewItem) FilterValue() string { return i.np.ObjectName + " " + i.np.NormalizedName }

// reviewModel is the list screen. Selecting an item quits the program with
// the selection recorded; the caller then runs the edit form and re-enters
// the list, which keeps each huh form on a clean terminal.
type reviewModel struct {
	list     list.Model
	selected int
}

func newReviewModel(items []list.Item, cursor int) reviewModel {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Points requiring manual review — enter to edit, q to finish"
	l.Styles.Title = lipgloss.NewStyle().Bold(true)
	l.Select(cursor)
	return reviewModel{list: l, selected: -1}
}

func (m reviewModel) Init() tea.Cmd { return nil }

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.list.FilterState() != list.Filtering {
				m.selected = m.list.Index()
				return m, tea.Quit
			}
		case "q", "ctrl+c":
			if m.list.FilterState() != list.Filtering {
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m reviewModel) View() string { return m.list.View() }

// runReviewLoop alternates the list screen with a huh edit form until the
// reviewer quits the list without a selection. Edits land directly in
// normalized via the items' pointers.
func runReviewLoop(normalized []model.NormalizedPoint, flagged []int) error {
	items := make([]list.Item, 0, len(flagged))
	for _, idx := range flagged {
		items = append(items, reviewItem{index: idx, np: &normalized[idx]})
	}

	cursor := 0
	for {
		final, err := tea.NewProgram(newReviewModel(items, cursor), tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}
		m := final.(reviewModel)
		if m.selected < 0 {
			return nil
		}
		cursor = m.selected

		item := items[m.selected].(reviewItem)
		edited, err := editPoint(item.np)
		if err != nil {
			return err
		}
		item.edited = item.edited || edited
		items[m.selected] = item
	}
}

// editPoint runs the huh form for one point. Accepted edits mutate np and
// clear its review flag.
func editPoint(np *model.NormalizedPoint) (bool, error) {
	name := np.NormalizedName
	function := string(np.PointFunction)
	accept := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Normalized name").
				Description(fmt.Sprintf("from %s, confidence %.2f", np.ObjectName, np.ConfidenceScore)).
				Value(&name),
			huh.NewSelect[string]().
				Title("Point function").
				Options(
					huh.NewOption("Sensor", string(model.FunctionSensor)),
					huh.NewOption("Setpoint", string(model.FunctionSetpoint)),
					huh.NewOption("Command", string(model.FunctionCommand)),
					huh.NewOption("Status", string(model.FunctionStatus)),
					huh.NewOption("Unknown", string(model.FunctionUnknown)),
				).
				Value(&function),
			huh.NewConfirm().
				Title("Accept this point?").
				Affirmative("Accept").
				Negative("Keep flagged").
				Value(&accept),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	if !accept {
		return false, nil
	}

	np.NormalizedName = name
	np.PointFunction = model.PointFunction(function)
	np.RequiresManualReview = false
	np.AppliedRules = append(np.AppliedRules, "manual review accepted")
	return true, nil
}
