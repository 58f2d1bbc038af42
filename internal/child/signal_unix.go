// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

//go:build !windows

package child

import (
	"os"
	"syscall"
)

func signalUSR1(proc *os.Process) error {
	return proc.Signal(syscall.SIGUSR1)
}
