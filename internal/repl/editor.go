// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

// Package repl is the REPL command surface: the control/debug mode
// prompt loop, the verb sandbox, and child-output interleaving. Line
// editing itself is a declared non-goal of the core loop and sits
// behind the narrow LineEditor interface below.
package repl

import (
	"bufio"
	"errors"
	"io"

	"github.com/peterh/liner"
)

// ErrClosed is returned by Prompt on EOF on stdin, or on Ctrl-C in the
// liner-backed editor; it is the signal the REPL loop uses to stop
// cleanly (or, in debug mode, to return to control mode).
var ErrClosed = errors.New("repl: editor closed")

// LineEditor is the narrow seam between the REPL loop and whatever reads
// a line of input. A *liner.State backs interactive TTY sessions;
// streamEditor backs NODE_NO_READLINE / non-TTY piped input.
type LineEditor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// linerEditor adapts peterh/liner, the line-editor dependency the wider
// example pack uses for exactly this role (an embedded JS console).
type linerEditor struct {
	state *liner.State
}

// NewLinerEditor constructs a LineEditor backed by peterh/liner, with
// Ctrl-C reported as an error (liner.ErrPromptAborted) instead of killing
// the process, matching "exit on SIGINT" being the REPL
// loop's decision to make, not the editor's.
func NewLinerEditor() LineEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &linerEditor{state: state}
}

func (e *linerEditor) Prompt(prompt string) (string, error) {
	line, err := e.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrClosed
	}
	if errors.Is(err, io.EOF) {
		return "", ErrClosed
	}
	return line, err
}

func (e *linerEditor) AppendHistory(line string) {
	if line != "" {
		e.state.AppendHistory(line)
	}
}

func (e *linerEditor) Close() error { return e.state.Close() }

// streamEditor is the NODE_NO_READLINE=1 / non-TTY fallback: no prompt
// echo, no history, just line-buffered reads.
type streamEditor struct {
	scanner *bufio.Scanner
}

// NewStreamEditor wraps r for non-interactive input, the
// NODE_NO_READLINE=1 behaviour.
func NewStreamEditor(r io.Reader) LineEditor {
	return &streamEditor{scanner: bufio.NewScanner(r)}
}

func (e *streamEditor) Prompt(_ string) (string, error) {
	if !e.scanner.Scan() {
		if err := e.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrClosed
	}
	return e.scanner.Text(), nil
}

func (e *streamEditor) AppendHistory(string) {}
func (e *streamEditor) Close() error         { return nil }
