// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package format

import (
	"encoding/json"
	"testing"

	"github.com/chromedp/cdproto/runtime"
)

func TestRemoteObjectPrimitives(t *testing.T) {
	strVal, _ := json.Marshal("hello")
	numVal, _ := json.Marshal(42)

	cases := []struct {
		name string
		obj  *runtime.RemoteObject
		want string
	}{
		{"undefined", nil, "undefined"},
		{"string", &runtime.RemoteObject{Type: runtime.TypeString, Value: strVal}, "'hello'"},
		{"number", &runtime.RemoteObject{Type: runtime.TypeNumber, Value: numVal}, "42"},
		{"null", &runtime.RemoteObject{Type: runtime.TypeObject, Subtype: runtime.SubtypeNull}, "null"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RemoteObject(tc.obj); got != tc.want {
				t.Fatalf("RemoteObject() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRemoteObjectArrayPreview(t *testing.T) {
	obj := &runtime.RemoteObject{
		Type:    runtime.TypeObject,
		Subtype: runtime.SubtypeArray,
		Preview: &runtime.ObjectPreview{
			Properties: []*runtime.PropertyPreview{
				{Name: "0", Type: runtime.TypeNumber, Value: "1"},
				{Name: "1", Type: runtime.TypeNumber, Value: "2"},
			},
		},
	}
	want := "[ 1, 2 ]"
	if got := RemoteObject(obj); got != want {
		t.Fatalf("RemoteObject() = %q, want %q", got, want)
	}
}

func TestBacktraceAnonymousFunction(t *testing.T) {
	frames := []Frame{{Index: 0, FunctionName: "", URL: "app.js", LineNumber: 9}}
	got := Backtrace(frames)
	want := "#0 (anonymous function) app.js:10"
	if len(got) != 1 || got[0] != want {
		t.Fatalf("Backtrace() = %v, want [%q]", got, want)
	}
}

func TestPauseHeaderAndBreakKind(t *testing.T) {
	if got := BreakKind("other"); got != "break" {
		t.Fatalf("BreakKind(other) = %q, want break", got)
	}
	if got := BreakKind("exception"); got != "exception" {
		t.Fatalf("BreakKind(exception) = %q, want exception", got)
	}
	got := PauseHeader("break", "app.js", 4)
	want := "break in app.js:5"
	if got != want {
		t.Fatalf("PauseHeader() = %q, want %q", got, want)
	}
}

func TestWatchersRendersIndexedLines(t *testing.T) {
	got := Watchers([]string{"a", "b"}, []string{"1", "'x'"})
	want := []string{"0: a = 1", "1: b = 'x'"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Watchers()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
