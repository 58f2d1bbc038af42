// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package session

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/runtime"

	"github.com/nodeinspect/jsinspect/internal/format"
)

// Connect performs target discovery and the WebSocket upgrade against
// host/port on the session's client, in a single attempt without retry.
func (s *Session) Connect(ctx context.Context, host string, port int) error {
	return s.client.Connect(ctx, host, port)
}

// Bootstrap enables the Debugger/Runtime/Profiler domains, applies the
// current pauseOnException setting and breakpoint list, and lets the
// target run (bootstrap sequence).
func (s *Session) Bootstrap(ctx context.Context) error {
	if err := s.domains.Runtime.Enable(ctx); err != nil {
		return err
	}
	if err := s.domains.Debugger.Enable(ctx); err != nil {
		return err
	}
	if err := s.domains.Debugger.SetPauseOnExceptions(ctx, string(s.PauseOnException())); err != nil {
		return err
	}
	if err := s.domains.Debugger.SetAsyncCallStackDepth(ctx, 0); err != nil {
		return err
	}
	if err := s.domains.Profiler.Enable(ctx); err != nil {
		return err
	}
	if err := s.domains.Profiler.SetSamplingInterval(ctx, 100); err != nil {
		return err
	}
	if err := s.domains.Debugger.SetBlackboxPatterns(ctx, []string{}); err != nil {
		return err
	}
	for _, bp := range s.breakpointsSnapshot() {
		s.reapplyBreakpoint(ctx, bp)
	}
	return s.domains.Runtime.RunIfWaitingForDebugger(ctx)
}

// LogTargetVersion queries Browser.getVersion and logs the target's
// protocol/product/revision strings at debug level; a target that
// doesn't implement the Browser domain just logs the failure and
// doesn't affect the session otherwise.
func (s *Session) LogTargetVersion(ctx context.Context) {
	v, err := s.domains.Browser.GetVersion(ctx)
	if err != nil {
		s.log.Debugf("Browser.getVersion: %v", err)
		return
	}
	s.log.Debugf("target version: protocol=%s product=%s revision=%s", v.ProtocolVersion, v.Product, v.Revision)
}

func (s *Session) reapplyBreakpoint(ctx context.Context, bp Breakpoint) {
	if bp.Location.ScriptURL == "" {
		return
	}
	id, err := s.domains.Debugger.SetBreakpointByURL(ctx, bp.Location.LineNumber, "", urlRegexForScript(bp.Location.ScriptURL), "")
	if err != nil {
		s.log.Warnf("reapply breakpoint %s:%d: %v", bp.Location.ScriptURL, bp.Location.LineNumber+1, err)
		return
	}
	s.upsertBreakpoint(Breakpoint{BreakpointID: id, Location: bp.Location})
}

// PauseOnException/SetPauseOnException back the `breakOnException`,
// `breakOnUncaught`, `breakOnNone` verbs.
func (s *Session) PauseOnException() PauseOnException {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pauseOnException
}

func (s *Session) SetPauseOnException(ctx context.Context, mode PauseOnException) error {
	s.mu.Lock()
	s.pauseOnException = mode
	s.mu.Unlock()
	return s.domains.Debugger.SetPauseOnExceptions(ctx, string(mode))
}

// Cont resumes a paused target (`cont`/`c`).
func (s *Session) Cont(ctx context.Context) error {
	return s.domains.Debugger.Resume(ctx)
}

// Next steps over the current line (`next`/`n`).
func (s *Session) Next(ctx context.Context) error {
	return s.domains.Debugger.StepOver(ctx)
}

// Step steps into the current call (`step`/`s`).
func (s *Session) Step(ctx context.Context) error {
	return s.domains.Debugger.StepInto(ctx)
}

// Out steps out of the current function (`out`/`o`).
func (s *Session) Out(ctx context.Context) error {
	return s.domains.Debugger.StepOut(ctx)
}

// Pause requests an immediate break (`pause`).
func (s *Session) Pause(ctx context.Context) error {
	return s.domains.Debugger.Pause(ctx)
}

// Backtrace renders the current call stack, most-recent-first (`backtrace`/`bt`).
func (s *Session) Backtrace() []string {
	frames := s.backtraceSnapshot()
	out := make([]format.Frame, len(frames))
	for i, f := range frames {
		out[i] = format.Frame{
			Index:        i,
			FunctionName: f.FunctionName,
			URL:          s.urlForLocation(f.Location),
			LineNumber:   f.Location.LineNumber,
		}
	}
	return format.Backtrace(out)
}

func (s *Session) urlForLocation(loc Location) string {
	if loc.ScriptURL != "" {
		return relativeURL(loc.ScriptURL)
	}
	if sc := s.scriptByID(loc.ScriptID); sc != nil {
		return relativeURL(sc.URL)
	}
	return loc.ScriptID
}

// List renders the delta-line source window around the selected frame
// (`list(delta)`).
func (s *Session) List(ctx context.Context, delta int) ([]string, error) {
	lines, err := s.listWindow(ctx, delta)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *Session) printListWindow(ctx context.Context, delta int) {
	lines, err := s.listWindow(ctx, delta)
	if err != nil {
		s.printf("<no source available: %v>", err)
		return
	}
	for _, l := range lines {
		s.print(l)
	}
}

func (s *Session) listWindow(ctx context.Context, delta int) ([]string, error) {
	frame := s.selectedFrame()
	if frame == nil {
		return nil, fmt.Errorf("not paused")
	}
	source, err := s.domains.Debugger.GetScriptSource(ctx, frame.Location.ScriptID)
	if err != nil {
		return nil, err
	}
	bpLines := make(map[int]bool)
	for _, bp := range s.breakpointsSnapshot() {
		if bp.Location.ScriptID == frame.Location.ScriptID {
			bpLines[bp.Location.LineNumber] = true
		}
	}
	return format.SourceWindow(source, frame.Location.LineNumber, frame.Location.ColumnNumber, delta, bpLines, s.color), nil
}

// CurrentLine returns the 1-based line of the selected call frame, for
// `setBreakpoint()`'s no-args default; ok is false when not paused.
func (s *Session) CurrentLine() (line int, ok bool) {
	frame := s.selectedFrame()
	if frame == nil {
		return 0, false
	}
	return frame.Location.LineNumber + 1, true
}

// SetBreakpointAtCurrentLine sets a breakpoint at line (1-based) in the
// currently paused script (setBreakpoint() with no args, shape 1).
func (s *Session) SetBreakpointAtCurrentLine(ctx context.Context, line int) (string, error) {
	frame := s.selectedFrame()
	if frame == nil {
		return "", fmt.Errorf("not paused")
	}
	return s.SetBreakpointInScript(ctx, frame.Location.ScriptID, line)
}

// SetBreakpointInScript sets a breakpoint at a known scriptId+line
// (shape 2: setBreakpoint(line)).
func (s *Session) SetBreakpointInScript(ctx context.Context, scriptID string, line int) (string, error) {
	id, actual, err := s.domains.Debugger.SetBreakpoint(ctx, scriptID, line-1)
	if err != nil {
		return "", err
	}
	url := ""
	if sc := s.scriptByID(scriptID); sc != nil {
		url = sc.URL
	}
	s.upsertBreakpoint(Breakpoint{
		BreakpointID: id,
		Location:     Location{ScriptID: scriptID, ScriptURL: url, LineNumber: actual},
	})
	return id, nil
}

// SetBreakpointByName sets a breakpoint by script filename substring and
// line (shape 3: setBreakpoint('script.js', line)). It resolves the
// substring against known scripts: a single match uses its exact url,
// zero matches fall back to the anchored basename regex, and multiple
// matches return a "Script name is ambiguous" error without setting one.
func (s *Session) SetBreakpointByName(ctx context.Context, name string, line int) (string, error) {
	matches := s.scriptsMatchingSubstring(name)
	if len(matches) > 1 {
		return "", fmt.Errorf("Script name is ambiguous")
	}
	var id string
	var err error
	var url string
	if len(matches) == 1 {
		url = matches[0].URL
		id, err = s.domains.Debugger.SetBreakpointByURL(ctx, line-1, url, "", "")
	} else {
		url = name
		id, err = s.domains.Debugger.SetBreakpointByURL(ctx, line-1, "", urlRegexForScript(name), "")
	}
	if err != nil {
		return "", err
	}
	s.upsertBreakpoint(Breakpoint{
		BreakpointID: id,
		Location:     Location{ScriptURL: url, LineNumber: line - 1},
	})
	return id, nil
}

// SetBreakpointByFunctionRef handles the "name()" breakpoint shape:
// prefix is evaluated as debug(prefix) via the command-line API, which
// registers a debugger statement inside the named function. Unlike
// SetBreakpointByName, the resulting breakpoint has no removable
// handle, so it is never recorded in the breakpoint table.
func (s *Session) SetBreakpointByFunctionRef(ctx context.Context, prefix string) error {
	_, exc, err := s.evalInContext(ctx, fmt.Sprintf("debug(%s)", prefix), false)
	if err != nil {
		return err
	}
	if exc != nil {
		return fmt.Errorf("%s", format.ExceptionMessage(exc))
	}
	return nil
}

// ClearBreakpoint removes the breakpoint at urlSubstring:line (`clearBreakpoint`).
func (s *Session) ClearBreakpoint(ctx context.Context, urlSubstring string, line int) error {
	bp, ok := s.removeBreakpointAt(urlSubstring, line)
	if !ok {
		return fmt.Errorf("no breakpoint at %s:%d", urlSubstring, line)
	}
	return s.domains.Debugger.RemoveBreakpoint(ctx, bp.BreakpointID)
}

// Breakpoints renders the current breakpoint list (`breakpoints`).
func (s *Session) Breakpoints() []string {
	bps := s.breakpointsSnapshot()
	out := make([]string, 0, len(bps))
	for i, bp := range bps {
		out = append(out, fmt.Sprintf("#%d %s:%d", i, s.urlForLocation(bp.Location), bp.Location.LineNumber+1))
	}
	return out
}

// Watchers renders the watch-expression list, evaluating each against the
// selected frame when verbose (`watchers(verbose)`).
func (s *Session) Watchers(ctx context.Context, verbose bool) []string {
	exprs := s.watchersSnapshot()
	if !verbose {
		out := make([]string, len(exprs))
		for i, e := range exprs {
			out[i] = fmt.Sprintf("%d: %s", i, e)
		}
		return out
	}
	values := make([]string, len(exprs))
	for i, e := range exprs {
		values[i] = s.evaluateQuiet(ctx, e)
	}
	return format.Watchers(exprs, values)
}

func (s *Session) printWatchers(ctx context.Context, verbose bool) {
	if len(s.watchersSnapshot()) == 0 {
		return
	}
	for _, l := range s.Watchers(ctx, verbose) {
		s.print(l)
	}
}

// evaluateQuiet evaluates expr for watcher rendering, swallowing errors
// into a "<error>" placeholder rather than failing the whole watch list.
func (s *Session) evaluateQuiet(ctx context.Context, expr string) string {
	obj, exc, err := s.evalInContext(ctx, expr, true)
	if err != nil {
		return fmt.Sprintf("<%s>", err)
	}
	if exc != nil {
		return fmt.Sprintf("<%s>", format.ExceptionMessage(exc))
	}
	return format.RemoteObject(obj)
}

// Exec evaluates expr, either on the selected call frame (paused) or in
// the global context (`exec`/`repl`, two eval modes).
func (s *Session) Exec(ctx context.Context, expr string) (string, error) {
	obj, exc, err := s.evalInContext(ctx, expr, true)
	if err != nil {
		return "", err
	}
	if exc != nil {
		return "", fmt.Errorf("%s", format.ExceptionMessage(exc))
	}
	return format.RemoteObject(obj), nil
}

func (s *Session) evalInContext(ctx context.Context, expr string, preview bool) (*runtime.RemoteObject, *runtime.ExceptionDetails, error) {
	if frame := s.selectedFrame(); frame != nil {
		return s.domains.Debugger.EvaluateOnCallFrame(ctx, frame.CallFrameID, expr, false, preview)
	}
	return s.domains.Runtime.Evaluate(ctx, expr, preview)
}

// Scripts renders the known, non-native script list (`scripts`).
func (s *Session) Scripts(showNative bool) []string {
	s.mu.Lock()
	scripts := make([]*Script, 0, len(s.scripts))
	for _, sc := range s.scripts {
		scripts = append(scripts, sc)
	}
	s.mu.Unlock()

	out := make([]string, 0, len(scripts))
	for _, sc := range scripts {
		if sc.IsNative && !showNative {
			continue
		}
		out = append(out, sc.ScriptID+" "+sc.URL)
	}
	return out
}

// Kill terminates the child process (`kill`).
func (s *Session) Kill() error {
	if s.child == nil {
		return nil
	}
	return s.child.Kill()
}

// Reset clears per-connection state ahead of a restart/reconnect: scripts
// and backtrace do not survive, breakpoints and watchers do.
func (s *Session) Reset() {
	s.clearScripts()
	s.clearBacktrace()
	s.setPaused(false)
}
