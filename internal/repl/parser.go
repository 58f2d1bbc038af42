// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package repl

import "strings"

// command is one parsed line of control-mode input: a verb name and its
// argument list, each argument already unquoted.
type command struct {
	verb string
	args []string
}

// parseCommand implements the small sandbox-expression grammar:
// "<verb>", "<verb>()", "<verb>(arg, arg, ...)", or a bare word followed
// by free text (the exec/repl shorthand, rewritten by the caller before
// this runs). Arguments are either quoted strings or bare tokens
// (numbers, identifiers); whitespace around them is trimmed.
func parseCommand(line string) command {
	line = strings.TrimSpace(line)
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return command{verb: line}
	}
	verb := strings.TrimSpace(line[:open])
	close := strings.LastIndexByte(line, ')')
	if close < open {
		return command{verb: verb}
	}
	body := line[open+1 : close]
	return command{verb: verb, args: splitArgs(body)}
}

// splitArgs splits a comma-separated argument list, respecting single-
// and double-quoted strings so "a, b" isn't split on the internal comma.
func splitArgs(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	var args []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			args = append(args, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	args = append(args, strings.TrimSpace(cur.String()))
	return args
}

// rewriteBareExec implements "Bare `exec <anything>` is
// rewritten to `exec(\"<anything>\")` before evaluation" rule, applied
// before parseCommand so the free text survives as a single argument.
func rewriteBareExec(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"exec ", "repl "} {
		if strings.HasPrefix(trimmed, prefix) {
			verb := strings.TrimSpace(prefix)
			rest := trimmed[len(prefix):]
			escaped := strings.ReplaceAll(rest, `"`, `\"`)
			return verb + `("` + escaped + `")`
		}
	}
	return line
}
