// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package session

import "strconv"

// Watch appends expr to the watch list. Duplicates are allowed.
func (s *Session) Watch(expr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, expr)
}

// Unwatch removes expr by first exact expression match, then by numeric
// index if expr parses as an integer.
func (s *Session) Unwatch(expr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.watchers {
		if w == expr {
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			return true
		}
	}
	if idx, err := strconv.Atoi(expr); err == nil && idx >= 0 && idx < len(s.watchers) {
		s.watchers = append(s.watchers[:idx], s.watchers[idx+1:]...)
		return true
	}
	return false
}

func (s *Session) watchersSnapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.watchers))
	copy(out, s.watchers)
	return out
}
