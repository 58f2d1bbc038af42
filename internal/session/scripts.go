// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package session

import "strings"

// Script's IsNative is derived once, at scriptParsed time, from the url.
type Script struct {
	ScriptID string
	URL      string
	IsNative bool
}

// nativeURLs are the well-known built-in script URLs; anything matching
// this set, or the bootstrap module name, is native.
var nativeURLs = map[string]bool{
	"bootstrap_node.js": true,
	"node.js":           true,
	"internal/bootstrap/node.js": true,
}

func isNativeURL(url string) bool {
	if nativeURLs[url] {
		return true
	}
	return strings.HasPrefix(url, "internal/")
}

// upsertScript inserts or replaces the script keyed by scriptID.
func (s *Session) upsertScript(scriptID, url string) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc := &Script{ScriptID: scriptID, URL: url, IsNative: isNativeURL(url)}
	s.scripts[scriptID] = sc
	return sc
}

func (s *Session) scriptByID(scriptID string) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scripts[scriptID]
}

// scriptsMatchingSubstring returns every known script, native or not,
// whose url contains needle, for named-target breakpoint resolution.
func (s *Session) scriptsMatchingSubstring(needle string) []*Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Script
	for _, sc := range s.scripts {
		if strings.Contains(sc.URL, needle) {
			out = append(out, sc)
		}
	}
	return out
}

// clearScripts drops the script registry; called on restart, since
// scripts and call frames do not persist across it.
func (s *Session) clearScripts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts = make(map[string]*Script)
}

// relativeURL returns url unchanged for the pause line
// ("<breakKind> in <relurl>:<line+1>"); it computes no path relative to
// the main script's directory, since scriptParsed already reports urls
// the way the target's own resolver sees them.
func relativeURL(url string) string {
	return url
}
