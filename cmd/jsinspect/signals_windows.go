// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

//go:build windows

package main

import "os"

// terminationSignals on Windows is limited to what os/signal actually
// delivers there (no SIGTERM/SIGHUP equivalents).
func terminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
