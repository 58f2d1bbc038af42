// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package format

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// SourceWindow renders the list(delta) window: lines
// [lineNumber-delta+1 .. lineNumber+delta+1] (1-based, clamped), the
// current line prefixed with '>', a line carrying a breakpoint with '*',
// others with a space, and the current column highlighted in green when
// colorEnabled.
//
// lineNumber and column are zero-based, matching the wire protocol.
func SourceWindow(source string, lineNumber, column, delta int, breakpointLines map[int]bool, colorEnabled bool) []string {
	lines := strings.Split(source, "\n")
	total := len(lines)

	start := lineNumber - delta + 1
	if start < 1 {
		start = 1
	}
	end := lineNumber + delta + 1
	if end > total {
		end = total
	}

	out := make([]string, 0, end-start+1)
	for ln := start; ln <= end; ln++ {
		idx := ln - 1
		marker := " "
		if ln == lineNumber+1 {
			marker = ">"
		} else if breakpointLines[idx] {
			marker = "*"
		}

		text := lines[idx]
		if ln == lineNumber+1 && colorEnabled && column >= 0 && column < len(text) {
			text = text[:column] + color.GreenString(string(text[column])) + text[column+1:]
		}

		out = append(out, fmt.Sprintf("%s%4d %s", marker, ln, text))
	}
	return out
}
