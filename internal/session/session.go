// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

// Package session is the single source of truth for the user-visible
// debugger: scripts, breakpoints, call frames, watchers, and pause
// state. It subscribes to protocol events and translates them into the
// state the REPL renders.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/runtime"

	"github.com/nodeinspect/jsinspect/internal/cdp"
	"github.com/nodeinspect/jsinspect/internal/child"
	"github.com/nodeinspect/jsinspect/internal/format"
	"github.com/nodeinspect/jsinspect/internal/xlog"
)

// PauseOnException is the three-state exception-pause setting.
type PauseOnException string

const (
	PauseNone     PauseOnException = "none"
	PauseUncaught PauseOnException = "uncaught"
	PauseAll      PauseOnException = "all"
)

// Hooks is the narrow, function-valued capability record the session
// uses to reach back into the REPL/terminal without holding a pointer to
// it (break the session<->REPL cycle with a capability
// record instead of mutual struct references).
type Hooks struct {
	Print        func(line string)
	SuspendWhile func(fn func())
}

// Session owns scripts, breakpoints, the current backtrace, watchers,
// and pause state, and drives them off a *cdp.Client's events.
type Session struct {
	log     xlog.Logger
	client  *cdp.Client
	domains *cdp.Domains
	child   *child.Session
	hooks   Hooks
	color   bool

	mu               sync.Mutex
	scripts          map[string]*Script
	breakpoints      []Breakpoint
	backtrace        []CallFrame
	selected         int
	watchers         []string
	paused           bool
	pauseOnException PauseOnException
	lastCommand      string
	historyControl   []string
	historyDebug     []string
}

// New wires a Session against an already-constructed client and child
// lifecycle, and subscribes to the Debugger domain's events.
func New(log xlog.Logger, client *cdp.Client, childSession *child.Session, hooks Hooks, colorEnabled bool) *Session {
	s := &Session{
		log:              log,
		client:           client,
		domains:          cdp.NewDomains(client),
		child:            childSession,
		hooks:            hooks,
		color:            colorEnabled,
		scripts:          make(map[string]*Script),
		selected:         -1,
		pauseOnException: PauseNone,
	}
	s.domains.Debugger.On("scriptParsed", s.onScriptParsed)
	s.domains.Debugger.On("paused", s.onPaused)
	s.domains.Debugger.On("resumed", s.onResumed)
	s.domains.Debugger.On("breakpointResolved", s.onBreakpointResolved)
	return s
}

func (s *Session) print(line string)               { s.hooks.Print(line) }
func (s *Session) printf(layout string, a ...any)   { s.hooks.Print(fmt.Sprintf(layout, a...)) }
func (s *Session) suspendWhile(fn func())           { s.hooks.SuspendWhile(fn) }

// Paused reports whether the target is currently between a
// Debugger.paused event and a successful resume.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Session) setPaused(v bool) {
	s.mu.Lock()
	s.paused = v
	s.mu.Unlock()
}

// LastCommand/SetLastCommand back the REPL's empty-line-repeats-lastCommand
// rule.
func (s *Session) LastCommand() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCommand
}

func (s *Session) SetLastCommand(cmd string) {
	s.mu.Lock()
	s.lastCommand = cmd
	s.mu.Unlock()
}

// --- wire event shapes (CDTP's own JSON, not cdproto's generated structs,
// so the session stays decoupled from a generated event-type catalogue) ---

type wireLocation struct {
	ScriptID     string `json:"scriptId"`
	LineNumber   int    `json:"lineNumber"`
	ColumnNumber int    `json:"columnNumber"`
}

func (l wireLocation) toLocation() Location {
	return Location{ScriptID: l.ScriptID, LineNumber: l.LineNumber, ColumnNumber: l.ColumnNumber}
}

type wireScope struct {
	Type   string               `json:"type"`
	Object *runtime.RemoteObject `json:"object"`
}

type wireCallFrame struct {
	CallFrameID  string       `json:"callFrameId"`
	FunctionName string       `json:"functionName"`
	Location     wireLocation `json:"location"`
	ScopeChain   []wireScope  `json:"scopeChain"`
}

func (s *Session) onScriptParsed(_ string, params json.RawMessage) {
	var ev struct {
		ScriptID string `json:"scriptId"`
		URL      string `json:"url"`
	}
	if err := json.Unmarshal(params, &ev); err != nil {
		s.log.Warnf("scriptParsed: %v", err)
		return
	}
	s.upsertScript(ev.ScriptID, ev.URL)
}

func (s *Session) onPaused(_ string, params json.RawMessage) {
	var ev struct {
		CallFrames []wireCallFrame `json:"callFrames"`
		Reason     string          `json:"reason"`
	}
	if err := json.Unmarshal(params, &ev); err != nil {
		s.log.Warnf("paused: %v", err)
		return
	}

	frames := make([]CallFrame, len(ev.CallFrames))
	for i, wf := range ev.CallFrames {
		scopes := make([]Scope, len(wf.ScopeChain))
		for j, ws := range wf.ScopeChain {
			scopes[j] = Scope{Type: ws.Type, Object: ws.Object}
		}
		frames[i] = CallFrame{
			CallFrameID:  wf.CallFrameID,
			FunctionName: wf.FunctionName,
			Location:     wf.Location.toLocation(),
			ScopeChain:   scopes,
		}
	}

	s.setBacktrace(frames)
	s.setPaused(true)

	s.suspendWhile(func() {
		s.renderPauseView(ev.Reason)
	})
}

func (s *Session) onResumed(_ string, _ json.RawMessage) {
	s.clearBacktrace()
	s.setPaused(false)
}

func (s *Session) onBreakpointResolved(_ string, params json.RawMessage) {
	var ev struct {
		BreakpointID string       `json:"breakpointId"`
		Location     wireLocation `json:"location"`
	}
	if err := json.Unmarshal(params, &ev); err != nil {
		s.log.Warnf("breakpointResolved: %v", err)
		return
	}
	loc := ev.Location.toLocation()
	if sc := s.scriptByID(loc.ScriptID); sc != nil {
		loc.ScriptURL = sc.URL
	}
	s.upsertBreakpoint(Breakpoint{BreakpointID: ev.BreakpointID, Location: loc})
}

// renderPauseView implements on-pause sequence: the one-line
// header, then watchers (verbose), then a ±2-line source snippet — in
// that order, completing before any user input is processed.
func (s *Session) renderPauseView(reason string) {
	frame := s.selectedFrame()
	if frame == nil {
		return
	}
	sc := s.scriptByID(frame.Location.ScriptID)
	url := frame.Location.ScriptID
	if sc != nil {
		url = sc.URL
	}

	s.print(format.PauseHeader(format.BreakKind(reason), relativeURL(url), frame.Location.LineNumber))

	s.printWatchers(context.Background(), true)
	s.printListWindow(context.Background(), 2)
}
