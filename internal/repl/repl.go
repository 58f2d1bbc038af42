// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/nodeinspect/jsinspect/internal/session"
)

// Mode selects which of two REPL surfaces is active.
type Mode int

const (
	ModeControl Mode = iota
	ModeDebug
)

func (m Mode) prompt() string {
	if m == ModeDebug {
		return "> "
	}
	return "debug> "
}

// REPL drives the control/debug prompt loop over a *session.Session. Run
// and Restart are function-valued hooks rather than direct child/cdp
// references, so this package stays decoupled from process-lifecycle and
// protocol-connection concerns (the same capability-record pattern the
// session uses to reach back into the terminal).
type REPL struct {
	sess    *session.Session
	editor  LineEditor
	out     io.Writer
	color   bool
	version string

	onRun     func(ctx context.Context) error
	onRestart func(ctx context.Context) error

	mu            sync.Mutex
	mode          Mode
	lastDebugExpr string

	outMu sync.Mutex
}

// New constructs a REPL. onRun/onRestart back the `run`/`restart` verbs,
// which need to spawn or respawn the child and reconnect — orchestration
// that lives above the session.
func New(sess *session.Session, editor LineEditor, out io.Writer, version string, colorEnabled bool, onRun, onRestart func(ctx context.Context) error) *REPL {
	return &REPL{
		sess:      sess,
		editor:    editor,
		out:       out,
		color:     colorEnabled,
		version:   version,
		onRun:     onRun,
		onRestart: onRestart,
		mode:      ModeControl,
	}
}

// Print writes one already-formatted line, the Hooks.Print the session
// calls on pause/breakpoint-resolved rendering.
func (r *REPL) Print(line string) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	fmt.Fprintln(r.out, line)
}

// SuspendWhile runs fn synchronously and returns when it does. It does
// not pause the line editor or stdin and does not redraw the prompt
// afterwards; PrintChildLine never redraws the prompt, whether or not fn
// is running.
func (r *REPL) SuspendWhile(fn func()) {
	fn()
}

// PrintChildLine renders one line of child stdout/stderr with its "< "
// prefix, and is passed to child.NewSession as its OutputFunc.
func (r *REPL) PrintChildLine(line string) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	fmt.Fprintf(r.out, "< %s\n", line)
}

func (r *REPL) currentMode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

func (r *REPL) setMode(m Mode) {
	r.mu.Lock()
	r.mode = m
	r.mu.Unlock()
}

// Run is the top-level loop: it alternates between control and debug
// mode until the editor reports ErrClosed in control mode (SIGINT, EOF,
// or an explicit quit), which is "explicit user quit".
func (r *REPL) Run(ctx context.Context) error {
	for {
		var err error
		if r.currentMode() == ModeControl {
			err = r.controlTurn(ctx)
		} else {
			err = r.debugTurn(ctx)
		}
		if err == nil {
			continue
		}
		if errors.Is(err, errExitDebugMode) {
			r.setMode(ModeControl)
			continue
		}
		if errors.Is(err, ErrClosed) {
			if r.currentMode() == ModeDebug {
				r.setMode(ModeControl)
				continue
			}
			return nil
		}
		return err
	}
}

var errExitDebugMode = errors.New("repl: exit debug mode")

func (r *REPL) controlTurn(ctx context.Context) error {
	line, err := r.editor.Prompt(ModeControl.prompt())
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		trimmed = r.sess.LastCommand()
		if trimmed == "" {
			return nil
		}
	} else {
		r.editor.AppendHistory(trimmed)
		r.sess.SetLastCommand(rewriteBareExec(trimmed))
		trimmed = rewriteBareExec(trimmed)
	}

	cmd := parseCommand(trimmed)
	r.dispatch(ctx, cmd)
	return nil
}

func (r *REPL) debugTurn(ctx context.Context) error {
	line, err := r.editor.Prompt(ModeDebug.prompt())
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == ".exit" {
		return errExitDebugMode
	}
	if trimmed == "" {
		trimmed = r.lastDebugExpr
		if trimmed == "" {
			return nil
		}
	} else {
		r.editor.AppendHistory(trimmed)
		r.lastDebugExpr = trimmed
	}

	result, err := r.sess.Exec(ctx, trimmed)
	if err != nil {
		fmt.Fprintf(r.out, "Uncaught %v\n", err)
		return nil
	}
	fmt.Fprintln(r.out, result)
	return nil
}

// dispatch implements the control-mode verb sandbox.
func (r *REPL) dispatch(ctx context.Context, cmd command) {
	switch cmd.verb {
	case "run":
		r.call(r.onRun(ctx))
	case "restart":
		r.call(r.onRestart(ctx))
	case "kill":
		r.call(r.sess.Kill())
	case "cont", "c":
		r.call(r.sess.Cont(ctx))
	case "next", "n":
		r.call(r.sess.Next(ctx))
	case "step", "s":
		r.call(r.sess.Step(ctx))
	case "out", "o":
		r.call(r.sess.Out(ctx))
	case "pause":
		r.call(r.sess.Pause(ctx))
	case "backtrace", "bt":
		r.printAll(r.sess.Backtrace())
	case "list":
		delta := 5
		if len(cmd.args) > 0 {
			if n, err := strconv.Atoi(cmd.args[0]); err == nil {
				delta = n
			}
		}
		lines, err := r.sess.List(ctx, delta)
		if err != nil {
			fmt.Fprintf(r.out, "%v\n", err)
			return
		}
		r.printAll(lines)
	case "setBreakpoint", "sb":
		r.dispatchSetBreakpoint(ctx, cmd.args)
	case "clearBreakpoint", "cb":
		r.dispatchClearBreakpoint(ctx, cmd.args)
	case "breakpoints":
		r.printAll(r.sess.Breakpoints())
	case "breakOnException":
		r.call(r.sess.SetPauseOnException(ctx, session.PauseAll))
	case "breakOnUncaught":
		r.call(r.sess.SetPauseOnException(ctx, session.PauseUncaught))
	case "breakOnNone":
		r.call(r.sess.SetPauseOnException(ctx, session.PauseNone))
	case "watch":
		if len(cmd.args) > 0 {
			r.sess.Watch(cmd.args[0])
		}
	case "unwatch":
		if len(cmd.args) > 0 {
			r.sess.Unwatch(cmd.args[0])
		}
	case "watchers":
		r.printAll(r.sess.Watchers(ctx, true))
	case "exec":
		if len(cmd.args) == 0 {
			return
		}
		result, err := r.sess.Exec(ctx, cmd.args[0])
		if err != nil {
			fmt.Fprintf(r.out, "Uncaught %v\n", err)
			return
		}
		fmt.Fprintln(r.out, result)
	case "repl":
		r.setMode(ModeDebug)
	case "scripts":
		r.printAll(r.sess.Scripts(false))
	case "version":
		fmt.Fprintln(r.out, r.version)
	case "help":
		r.printAll(helpText)
	default:
		fmt.Fprintf(r.out, "unknown command: %s\n", cmd.verb)
	}
}

func (r *REPL) dispatchSetBreakpoint(ctx context.Context, args []string) {
	if len(args) >= 1 && strings.HasSuffix(args[0], "()") {
		prefix := strings.TrimSuffix(args[0], "()")
		if err := r.sess.SetBreakpointByFunctionRef(ctx, prefix); err != nil {
			fmt.Fprintf(r.out, "%v\n", err)
			return
		}
		fmt.Fprintln(r.out, "breakpoint set")
		return
	}

	var (
		id  string
		err error
	)
	switch len(args) {
	case 0:
		line, ok := r.sess.CurrentLine()
		if !ok {
			fmt.Fprintln(r.out, "not paused")
			return
		}
		id, err = r.sess.SetBreakpointAtCurrentLine(ctx, line)
	case 1:
		if line, aerr := strconv.Atoi(args[0]); aerr == nil {
			if line <= 0 {
				fmt.Fprintln(r.out, "Line should be a positive value")
				return
			}
			id, err = r.sess.SetBreakpointAtCurrentLine(ctx, line)
		} else {
			err = fmt.Errorf("setBreakpoint requires a line number here")
		}
	default:
		line, aerr := strconv.Atoi(args[1])
		if aerr != nil {
			err = fmt.Errorf("invalid line %q", args[1])
			break
		}
		if line <= 0 {
			fmt.Fprintln(r.out, "Line should be a positive value")
			return
		}
		id, err = r.sess.SetBreakpointByName(ctx, args[0], line)
	}
	if err != nil {
		fmt.Fprintf(r.out, "%v\n", err)
		return
	}
	fmt.Fprintf(r.out, "breakpoint %s set\n", id)
}

func (r *REPL) dispatchClearBreakpoint(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(r.out, "clearBreakpoint requires a script and a line")
		return
	}
	line, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(r.out, "invalid line %q\n", args[1])
		return
	}
	r.call(r.sess.ClearBreakpoint(ctx, args[0], line))
}

func (r *REPL) call(err error) {
	if err != nil {
		r.outMu.Lock()
		defer r.outMu.Unlock()
		fmt.Fprintf(r.out, "%v\n", err)
	}
}

func (r *REPL) printAll(lines []string) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	for _, l := range lines {
		fmt.Fprintln(r.out, l)
	}
}

var helpText = []string{
	"run, restart, kill",
	"cont (c), next (n), step (s), out (o), pause",
	"backtrace (bt), list",
	"setBreakpoint (sb), clearBreakpoint (cb), breakpoints",
	"breakOnException, breakOnUncaught, breakOnNone",
	"watch, unwatch, watchers",
	"exec, repl, scripts, version",
}

// Close releases the line editor, flushing any terminal state it holds.
func (r *REPL) Close() error {
	return r.editor.Close()
}
