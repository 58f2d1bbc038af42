// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

// Package config resolves the CLI invocation shapes and environment
// toggles of the CLI layer into a single, validated Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nodeinspect/jsinspect/internal/child"
)

// ErrUsage is returned for a CLI shape doesn't recognize, or for
// zero arguments; callers print Usage to stderr and exit 1.
var ErrUsage = errors.New("usage error")

// Config is everything main needs to start a Session: the resolved
// target and the environment toggles names.
type Config struct {
	Target child.Target

	NoReadline    bool // NODE_NO_READLINE
	ForceReadline bool // NODE_FORCE_READLINE
	DisableColors bool // NODE_DISABLE_COLORS
	Verbose       bool // NODE_INSPECT_VERBOSE or DEBUG=inspect
}

// Usage is the multi-line message prints to stderr on a zero-arg
// or malformed invocation.
const Usage = `Usage: jsinspect script.js [arguments]
       jsinspect <host>:<port>
       jsinspect -p <pid>
       jsinspect --port=<port> script.js [arguments]
       jsinspect --version`

// Parse resolves argv (excluding the program name, i.e. os.Args[1:]) and
// the process environment into a Config. --version is reported via
// ErrVersionRequested so main can print the version and exit 0 without
// constructing a target.
func Parse(argv []string, env func(string) string) (Config, error) {
	cfg := Config{
		NoReadline:    envBool(env, "NODE_NO_READLINE"),
		ForceReadline: envBool(env, "NODE_FORCE_READLINE"),
		DisableColors: envBool(env, "NODE_DISABLE_COLORS"),
		Verbose:       envBool(env, "NODE_INSPECT_VERBOSE") || env("DEBUG") == "inspect",
	}

	if len(argv) == 0 {
		return Config{}, ErrUsage
	}

	if argv[0] == "--version" {
		return Config{}, ErrVersionRequested
	}

	if argv[0] == "-p" {
		if len(argv) < 2 {
			return Config{}, ErrUsage
		}
		pid, err := strconv.Atoi(argv[1])
		if err != nil {
			return Config{}, fmt.Errorf("%w: invalid pid %q", ErrUsage, argv[1])
		}
		cfg.Target = child.Target{Mode: child.ModeRemote, PID: pid, Host: "127.0.0.1", Port: 0}
		return cfg, nil
	}

	if port, ok := strings.CutPrefix(argv[0], "--port="); ok {
		p, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, fmt.Errorf("%w: invalid port %q", ErrUsage, port)
		}
		if len(argv) < 2 {
			return Config{}, ErrUsage
		}
		cfg.Target = child.Target{Mode: child.ModeSpawn, Script: argv[1], ScriptArgs: argv[2:], Port: p}
		return cfg, nil
	}

	if host, port, ok := splitHostPort(argv[0]); ok {
		cfg.Target = child.Target{Mode: child.ModeRemote, Host: host, Port: port}
		return cfg, nil
	}

	cfg.Target = child.Target{Mode: child.ModeSpawn, Script: argv[0], ScriptArgs: argv[1:]}
	return cfg, nil
}

// ErrVersionRequested signals `--version`; main prints the version banner
// and exits 0 rather than treating it as a usage error.
var ErrVersionRequested = errors.New("version requested")

func envBool(env func(string) string, key string) bool {
	return env(key) == "1" || env(key) == "true"
}

// splitHostPort recognizes "<host>:<port>" attach shape. It
// deliberately requires a numeric port so "script.js" (no colon) and
// Windows-style paths aren't misparsed as a host.
func splitHostPort(arg string) (host string, port int, ok bool) {
	idx := strings.LastIndex(arg, ":")
	if idx < 0 {
		return "", 0, false
	}
	host = arg[:idx]
	p, err := strconv.Atoi(arg[idx+1:])
	if err != nil || host == "" {
		return "", 0, false
	}
	return host, p, true
}

// Environ adapts os.Getenv to the env func(string) string Parse expects,
// kept as a thin seam so tests can stub it.
func Environ() func(string) string { return os.Getenv }
