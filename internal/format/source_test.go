// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package format

import (
	"strings"
	"testing"
)

func TestSourceWindowMarksCurrentAndBreakpointLines(t *testing.T) {
	source := "line1\nline2\nline3\nline4\nline5"
	bps := map[int]bool{3: true}

	out := SourceWindow(source, 2, 0, 1, bps, false)
	if len(out) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(out), out)
	}
	if !strings.HasPrefix(out[1], ">") {
		t.Fatalf("expected current line marked with '>', got %q", out[1])
	}
	if !strings.HasPrefix(out[2], "*") {
		t.Fatalf("expected breakpoint line marked with '*', got %q", out[2])
	}
}

func TestSourceWindowClampsAtFileBoundaries(t *testing.T) {
	source := "only one line"
	out := SourceWindow(source, 0, 0, 5, nil, false)
	if len(out) != 1 {
		t.Fatalf("expected window clamped to a single line, got %d: %v", len(out), out)
	}
}
