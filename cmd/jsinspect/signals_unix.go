// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

//go:build !windows

package main

import (
	"os"
	"syscall"
)

// terminationSignals lists the signals "explicit user quit"
// applies to, beyond what the line editor already intercepts.
func terminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
}
