// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package format

import "fmt"

// Frame is the subset of a call frame this package needs to render a
// backtrace line; it is deliberately decoupled from the session package.
type Frame struct {
	Index        int
	FunctionName string
	URL          string
	LineNumber   int // zero-based
}

// PauseHeader renders one-line pause announcement:
// "<breakKind> in <relurl>:<line+1>".
func PauseHeader(breakKind, url string, lineNumber int) string {
	return fmt.Sprintf("%s in %s:%d", breakKind, url, lineNumber+1)
}

// BreakKind maps a Debugger.paused reason to the word prints:
// "break" for "other", else the reason itself.
func BreakKind(reason string) string {
	if reason == "other" {
		return "break"
	}
	return reason
}

// Backtrace renders an ordered list of frames, most-recent first, one
// per line as "#N functionName url:line".
func Backtrace(frames []Frame) []string {
	out := make([]string, 0, len(frames))
	for _, f := range frames {
		name := f.FunctionName
		if name == "" {
			name = "(anonymous function)"
		}
		out = append(out, fmt.Sprintf("#%d %s %s:%d", f.Index, name, f.URL, f.LineNumber+1))
	}
	return out
}

// Watchers renders the idx: expr = value lines watchers(verbose)
// produces.
func Watchers(exprs, values []string) []string {
	out := make([]string, 0, len(exprs))
	for i, expr := range exprs {
		out = append(out, fmt.Sprintf("%d: %s = %s", i, expr, values[i]))
	}
	return out
}
