// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package repl

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want command
	}{
		{"bare verb", "cont", command{verb: "cont"}},
		{"empty args", "backtrace()", command{verb: "backtrace"}},
		{"single arg", "list(2)", command{verb: "list", args: []string{"2"}}},
		{"quoted and numeric", `setBreakpoint('app.js', 10)`, command{verb: "setBreakpoint", args: []string{"app.js", "10"}}},
		{"double quoted", `exec("1+1")`, command{verb: "exec", args: []string{"1+1"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseCommand(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("parseCommand(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRewriteBareExec(t *testing.T) {
	cases := []struct{ in, want string }{
		{"exec foo", `exec("foo")`},
		{`exec a "quoted" b`, `exec("a \"quoted\" b")`},
		{"cont", "cont"},
		{"repl", "repl"},
		{"repl x.y", `repl("x.y")`},
	}
	for _, tc := range cases {
		if got := rewriteBareExec(tc.in); got != tc.want {
			t.Fatalf("rewriteBareExec(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
