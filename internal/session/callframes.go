// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package session

import "github.com/chromedp/cdproto/runtime"

// CallFrame is one stack frame in a paused target.
type CallFrame struct {
	CallFrameID  string
	FunctionName string
	Location     Location
	ScopeChain   []Scope
}

// Scope is one entry of a CallFrame's scope chain.
type Scope struct {
	Type   string
	Object *runtime.RemoteObject
}

// setBacktrace records the backtrace from a Debugger.paused event and
// selects the top frame (invariant: selectedFrame non-null iff
// paused).
func (s *Session) setBacktrace(frames []CallFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backtrace = frames
	if len(frames) > 0 {
		s.selected = 0
	} else {
		s.selected = -1
	}
}

// clearBacktrace is called on Debugger.resumed.
func (s *Session) clearBacktrace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backtrace = nil
	s.selected = -1
}

// selectedFrame returns the currently selected call frame, or nil if the
// session is not paused.
func (s *Session) selectedFrame() *CallFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected < 0 || s.selected >= len(s.backtrace) {
		return nil
	}
	f := s.backtrace[s.selected]
	return &f
}

func (s *Session) backtraceSnapshot() []CallFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CallFrame, len(s.backtrace))
	copy(out, s.backtrace)
	return out
}
