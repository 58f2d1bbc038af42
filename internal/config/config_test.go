// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package config

import (
	"errors"
	"testing"

	"github.com/nodeinspect/jsinspect/internal/child"
)

func noEnv(string) string { return "" }

func TestParseSpawnMode(t *testing.T) {
	cfg, err := Parse([]string{"script.js", "--flag", "arg"}, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target.Mode != child.ModeSpawn {
		t.Fatalf("expected spawn mode, got %v", cfg.Target.Mode)
	}
	if cfg.Target.Script != "script.js" {
		t.Fatalf("expected script.js, got %q", cfg.Target.Script)
	}
	if len(cfg.Target.ScriptArgs) != 2 {
		t.Fatalf("expected 2 script args, got %v", cfg.Target.ScriptArgs)
	}
}

func TestParseAttachHostPort(t *testing.T) {
	cfg, err := Parse([]string{"localhost:9229"}, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target.Mode != child.ModeRemote {
		t.Fatalf("expected remote mode")
	}
	if cfg.Target.Host != "localhost" || cfg.Target.Port != 9229 {
		t.Fatalf("unexpected host/port: %+v", cfg.Target)
	}
}

func TestParsePidAttach(t *testing.T) {
	cfg, err := Parse([]string{"-p", "4242"}, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target.PID != 4242 {
		t.Fatalf("expected pid 4242, got %d", cfg.Target.PID)
	}
}

func TestParsePidAttachInvalid(t *testing.T) {
	if _, err := Parse([]string{"-p", "not-a-pid"}, noEnv); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestParseExplicitPort(t *testing.T) {
	cfg, err := Parse([]string{"--port=9333", "script.js"}, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target.Port != 9333 {
		t.Fatalf("expected port 9333, got %d", cfg.Target.Port)
	}
}

func TestParseVersionRequested(t *testing.T) {
	if _, err := Parse([]string{"--version"}, noEnv); !errors.Is(err, ErrVersionRequested) {
		t.Fatalf("expected ErrVersionRequested, got %v", err)
	}
}

func TestParseZeroArgsIsUsageError(t *testing.T) {
	if _, err := Parse(nil, noEnv); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestParseEnvToggles(t *testing.T) {
	env := map[string]string{
		"NODE_NO_READLINE":    "1",
		"NODE_DISABLE_COLORS": "1",
		"DEBUG":               "inspect",
	}
	cfg, err := Parse([]string{"script.js"}, func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.NoReadline || !cfg.DisableColors || !cfg.Verbose {
		t.Fatalf("expected all toggles set: %+v", cfg)
	}
	if cfg.ForceReadline {
		t.Fatalf("expected ForceReadline unset")
	}
}
