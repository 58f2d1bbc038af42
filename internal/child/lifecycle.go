// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

// Package child is the target process lifecycle: spawn, inspect-URL
// discovery by scanning stderr, connection retry, and restart. Remote
// mode (attach to an already-listening inspector) skips spawning
// altogether.
package child

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/nodeinspect/jsinspect/internal/cdp"
	"github.com/nodeinspect/jsinspect/internal/xlog"
)

// Mode selects how the debugger reaches a target.
type Mode int

const (
	ModeSpawn Mode = iota
	ModeRemote
)

// Target is the resolved shape of one of the three CLI invocations.
type Target struct {
	Mode       Mode
	Script     string
	ScriptArgs []string
	Host       string
	Port       int
	PID        int // 0 unless remote mode was given -p
}

const (
	defaultPort       = 9229
	listeningMarker   = "chrome-devtools://"
	maxConnectRetries = 10
	retryInterval     = 500 * time.Millisecond
	probeTimeout      = 300 * time.Millisecond
)

// ErrConnectionExhausted is returned once all retries are spent.
var ErrConnectionExhausted = errors.New("failed to connect, please retry")

// ErrTargetNotFound is returned for -p <pid> when the process does not
// exist (mapped from ESRCH on the platforms that support it).
var ErrTargetNotFound = errors.New("target process doesn't exist")

// OutputFunc receives one non-empty line of child stdout/stderr as the
// child printed it; the "< " framing of child output rendering is left to
// the receiver.
type OutputFunc func(line string)

// Session owns one target process (or remote attachment) across its
// lifetime, including restarts.
type Session struct {
	log    xlog.Logger
	target Target
	onLine OutputFunc

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewSession creates a lifecycle manager for target. onLine is called for
// every non-empty line the child prints to stdout or stderr once it is
// running.
func NewSession(log xlog.Logger, target Target, onLine OutputFunc) *Session {
	return &Session{log: log, target: target, onLine: onLine}
}

// Start spawns the child (spawn mode) and waits for the inspector to
// start listening, or is a no-op in remote mode. It returns the host/port
// to connect the protocol client to.
func (s *Session) Start(ctx context.Context) (host string, port int, err error) {
	if s.target.Mode == ModeRemote {
		port := s.target.Port
		if port == 0 {
			port = defaultPort
		}
		return s.target.Host, port, nil
	}

	port = s.target.Port
	if port == 0 {
		port = defaultPort
	}

	cmd := exec.CommandContext(ctx, s.target.Script, s.target.ScriptArgs...)
	cmd.Args = append([]string{s.target.Script,
		"--inspect",
		fmt.Sprintf("--debug-brk=%d", port)},
		s.target.ScriptArgs...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", 0, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", 0, err
	}

	if err := cmd.Start(); err != nil {
		return "", 0, err
	}

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()

	listening := make(chan struct{})
	var once sync.Once
	markReady := func() { once.Do(func() { close(listening) }) }

	go s.pump(stdout, markReady)
	go s.pumpStderr(stderr, markReady)

	select {
	case <-listening:
	case <-ctx.Done():
		return "", 0, ctx.Err()
	}

	return "127.0.0.1", port, nil
}

func (s *Session) pump(r io.Reader, _ func()) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if s.onLine != nil {
			s.onLine(line)
		}
	}
}

func (s *Session) pumpStderr(r io.Reader, markReady func()) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, listeningMarker) {
			markReady()
		}
		if line == "" {
			continue
		}
		if s.onLine != nil {
			s.onLine(line)
		}
	}
}

// Kill terminates the child, if one is running. No-op in remote mode.
func (s *Session) Kill() error {
	s.mu.Lock()
	cmd := s.cmd
	s.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// Restart kills the current child (if any) and starts a fresh one on the
// same target, returning the new host/port to reconnect to.
func (s *Session) Restart(ctx context.Context) (host string, port int, err error) {
	_ = s.Kill()
	s.mu.Lock()
	s.cmd = nil
	s.mu.Unlock()
	return s.Start(ctx)
}

// probeInspector checks that host:port is answering /json/version before
// ConnectWithRetry attempts the WebSocket upgrade, avoiding a hung
// upgrade attempt against a target whose inspector hasn't started
// listening yet.
func probeInspector(ctx context.Context, host string, port int) error {
	reqCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	url := fmt.Sprintf("http://%s:%d/json/version", host, port)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return nil
}

// ConnectWithRetry probes the inspector endpoint and attempts
// client.Connect up to maxConnectRetries times, retryInterval apart,
// calling onAttemptFailed between attempts (the session prints a single
// "."). It returns ErrConnectionExhausted after the last failed attempt.
func ConnectWithRetry(ctx context.Context, client *cdp.Client, host string, port int, onAttemptFailed func()) error {
	var lastErr error
	for attempt := 0; attempt < maxConnectRetries; attempt++ {
		if err := probeInspector(ctx, host, port); err != nil {
			lastErr = err
		} else if err := client.Connect(ctx, host, port); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if attempt < maxConnectRetries-1 {
			if onAttemptFailed != nil {
				onAttemptFailed()
			}
			select {
			case <-time.After(retryInterval):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	_ = lastErr
	return ErrConnectionExhausted
}

// SignalToListen makes a running process (identified by pid) start
// listening on its inspector port, by sending it SIGUSR1 (or the
// platform's equivalent) for `-p <pid>` remote attachment. It returns
// ErrTargetNotFound when the process does not exist; any other error
// means the signal could not be sent (not supported on all platforms).
func SignalToListen(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return ErrTargetNotFound
	}
	if err := signalUSR1(proc); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return ErrTargetNotFound
		}
		return err
	}
	return nil
}
