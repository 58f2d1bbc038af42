// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

// Package format renders remote-value pretty-printing (within what the
// protocol's preview already provides), source snippets, and
// backtraces. It has no knowledge of the session or the protocol
// client.
package format

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/chromedp/cdproto/runtime"
)

// functionNameRE extracts the name from a function's source description
// ("function foo(a) {...}", "function* gen() {...}", "foo(a) {...}").
var functionNameRE = regexp.MustCompile(`^(?:function\*? )?([^(\s]+)\(`)

// RemoteObject renders a CDTP RemoteObject per cases:
// primitives by literal, functions as "[<className>: <name>]" (or
// "[<className>]" when the description yields no name), Date/
// RegExp subtypes specially, arrays bracketed, other previewed objects
// brace-enclosed, objects without a preview by their description.
func RemoteObject(obj *runtime.RemoteObject) string {
	if obj == nil {
		return "undefined"
	}

	switch obj.Type {
	case runtime.TypeUndefined:
		return "undefined"
	case runtime.TypeString:
		var s string
		if err := json.Unmarshal(obj.Value, &s); err == nil {
			return "'" + s + "'"
		}
		return string(obj.Value)
	case runtime.TypeNumber, runtime.TypeBoolean:
		if len(obj.Value) > 0 {
			return string(obj.Value)
		}
		return obj.Description
	case runtime.TypeFunction:
		name := obj.ClassName
		if name == "" {
			name = "Function"
		}
		if m := functionNameRE.FindStringSubmatch(obj.Description); m != nil {
			return fmt.Sprintf("[%s: %s]", name, m[1])
		}
		return fmt.Sprintf("[%s]", name)
	case runtime.TypeObject:
		switch obj.Subtype {
		case runtime.SubtypeNull:
			return "null"
		case runtime.SubtypeDate:
			return obj.Description
		case runtime.SubtypeRegexp:
			return obj.Description
		case runtime.SubtypeArray:
			return renderArrayPreview(obj)
		default:
			if obj.Preview != nil {
				return renderObjectPreview(obj.Preview)
			}
			return obj.Description
		}
	default:
		if len(obj.Value) > 0 {
			return string(obj.Value)
		}
		return obj.Description
	}
}

func renderArrayPreview(obj *runtime.RemoteObject) string {
	if obj.Preview == nil {
		return obj.Description
	}
	parts := make([]string, 0, len(obj.Preview.Properties))
	for _, p := range obj.Preview.Properties {
		parts = append(parts, previewValue(p))
	}
	body := strings.Join(parts, ", ")
	if obj.Preview.Overflow {
		if body != "" {
			body += ", "
		}
		body += "..."
	}
	return "[ " + body + " ]"
}

func renderObjectPreview(preview *runtime.ObjectPreview) string {
	parts := make([]string, 0, len(preview.Properties))
	for _, p := range preview.Properties {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name, previewValue(p)))
	}
	body := strings.Join(parts, ", ")
	if preview.Overflow {
		if body != "" {
			body += ", "
		}
		body += "..."
	}
	return "{ " + body + " }"
}

func previewValue(p *runtime.PropertyPreview) string {
	if p.ValuePreview != nil {
		return renderObjectPreview(p.ValuePreview)
	}
	if p.Type == runtime.TypeString {
		return "'" + p.Value + "'"
	}
	return p.Value
}

// firstLineOf returns the first non-empty line of s, used for
// thrown-result messages.
func firstLineOf(s string) string {
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed
		}
	}
	return s
}

// ExceptionMessage extracts the error message from a thrown result: the
// first non-empty line of the exception's description, name prefix
// included (e.g. "TypeError: x is not a function"); else the rendered
// exception value; else the details' text.
func ExceptionMessage(details *runtime.ExceptionDetails) string {
	if details == nil {
		return ""
	}
	if details.Exception != nil {
		if details.Exception.Description != "" {
			return firstLineOf(details.Exception.Description)
		}
		return RemoteObject(details.Exception)
	}
	return details.Text
}
