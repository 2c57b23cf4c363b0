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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// readJSONFile decodes one JSON document from path, or from stdin when
// path is "-".
func readJSONFile[T any](path string) (T, error) {
	var out T
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return out, err
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// writeJSONFile encodes v to path, or stdout when path is "" or "-".
func writeJSONFile(path string, v any) error {
	w := os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// humanOutput reports whether results should render as a table: stdout is
// a terminal and --json was not given.
func humanOutput() bool {
	return !flagJSON && isatty.IsTerminal(os.Stdout.Fd())
}

// Table styles for human output.
var (
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Faint(true)
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleGood   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// emit writes v as JSON when output is piped (or --json), else calls
// renderHuman to print a table.
func emit(v any, renderHuman func()) error {
	if humanOutput() {
		renderHuman()
		return nil
	}
	return writeJSONFile("", v)
}
