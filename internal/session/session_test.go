// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package session

import (
	"testing"

	"github.com/nodeinspect/jsinspect/internal/cdp"
	"github.com/nodeinspect/jsinspect/internal/xlog"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	client := cdp.New(xlog.Discard)
	hooks := Hooks{
		Print:        func(string) {},
		SuspendWhile: func(fn func()) { fn() },
	}
	return New(xlog.Discard, client, nil, hooks, false)
}

func TestUpsertScriptMarksNative(t *testing.T) {
	s := newTestSession(t)
	sc := s.upsertScript("1", "internal/bootstrap/node.js")
	if !sc.IsNative {
		t.Fatalf("expected internal/ script to be native")
	}
	sc2 := s.upsertScript("2", "/home/user/app.js")
	if sc2.IsNative {
		t.Fatalf("expected user script to be non-native")
	}
}

func TestScriptsMatchingSubstring(t *testing.T) {
	s := newTestSession(t)
	s.upsertScript("1", "/home/user/app.js")
	s.upsertScript("2", "/home/user/lib/util.js")

	matches := s.scriptsMatchingSubstring("util.js")
	if len(matches) != 1 || matches[0].ScriptID != "2" {
		t.Fatalf("expected one match for util.js, got %+v", matches)
	}
}

func TestClearScriptsEmptiesRegistry(t *testing.T) {
	s := newTestSession(t)
	s.upsertScript("1", "/home/user/app.js")
	s.clearScripts()
	if len(s.scripts) != 0 {
		t.Fatalf("expected empty registry after clearScripts")
	}
}

func TestUpsertBreakpointDedupesByID(t *testing.T) {
	s := newTestSession(t)
	s.upsertBreakpoint(Breakpoint{BreakpointID: "bp1", Location: Location{LineNumber: 4}})
	s.upsertBreakpoint(Breakpoint{BreakpointID: "bp1", Location: Location{LineNumber: 9}})

	snap := s.breakpointsSnapshot()
	if len(snap) != 1 {
		t.Fatalf("expected a single deduped entry, got %d", len(snap))
	}
	if snap[0].Location.LineNumber != 9 {
		t.Fatalf("expected the replacement entry's line, got %d", snap[0].Location.LineNumber)
	}
}

func TestRemoveBreakpointAtMatchesURLAndLine(t *testing.T) {
	s := newTestSession(t)
	s.upsertBreakpoint(Breakpoint{BreakpointID: "bp1", Location: Location{ScriptURL: "/home/user/app.js", LineNumber: 9}})

	bp, ok := s.removeBreakpointAt("app.js", 10)
	if !ok {
		t.Fatalf("expected to find breakpoint at app.js:10")
	}
	if bp.BreakpointID != "bp1" {
		t.Fatalf("unexpected breakpoint removed: %+v", bp)
	}
	if len(s.breakpointsSnapshot()) != 0 {
		t.Fatalf("expected breakpoint list to be empty after removal")
	}
}

func TestSetBacktraceSelectsTopFrame(t *testing.T) {
	s := newTestSession(t)
	s.setBacktrace([]CallFrame{
		{FunctionName: "inner"},
		{FunctionName: "outer"},
	})
	frame := s.selectedFrame()
	if frame == nil || frame.FunctionName != "inner" {
		t.Fatalf("expected top frame selected, got %+v", frame)
	}

	s.clearBacktrace()
	if s.selectedFrame() != nil {
		t.Fatalf("expected no selected frame after clearBacktrace")
	}
}

func TestWatchAndUnwatchByExpressionAndIndex(t *testing.T) {
	s := newTestSession(t)
	s.Watch("a")
	s.Watch("b")
	s.Watch("c")

	if !s.Unwatch("b") {
		t.Fatalf("expected to unwatch by expression")
	}
	if !s.Unwatch("0") {
		t.Fatalf("expected to unwatch by index")
	}
	remaining := s.watchersSnapshot()
	if len(remaining) != 1 || remaining[0] != "c" {
		t.Fatalf("unexpected remaining watchers: %v", remaining)
	}
	if s.Unwatch("nope") {
		t.Fatalf("expected false for unknown watcher")
	}
}

func TestLastCommandRoundTrip(t *testing.T) {
	s := newTestSession(t)
	if s.LastCommand() != "" {
		t.Fatalf("expected empty initial lastCommand")
	}
	s.SetLastCommand(`exec("1+1")`)
	if s.LastCommand() != `exec("1+1")` {
		t.Fatalf("unexpected lastCommand: %q", s.LastCommand())
	}
}
