// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

//go:build windows

package child

import (
	"errors"
	"os"
)

// ErrUnsupportedPlatform is returned by -p <pid> attachment on platforms
// that do not support sending a listen-on-demand signal.
var ErrUnsupportedPlatform = errors.New("child: attach by pid is not supported on this platform")

func signalUSR1(proc *os.Process) error {
	return ErrUnsupportedPlatform
}
