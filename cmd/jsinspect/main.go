// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

// Command jsinspect is an interactive CDTP debugger front-end: it spawns
// or attaches to a target's inspector, drives the protocol over a
// restricted RFC-6455 WebSocket, and exposes a control/debug REPL over
// it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/nodeinspect/jsinspect/internal/cdp"
	"github.com/nodeinspect/jsinspect/internal/child"
	"github.com/nodeinspect/jsinspect/internal/config"
	"github.com/nodeinspect/jsinspect/internal/repl"
	"github.com/nodeinspect/jsinspect/internal/session"
	"github.com/nodeinspect/jsinspect/internal/xlog"
)

func printBanner() {
	banner :=
		`
░█▀▀░█▀█░█▀█░█▀█░█▀█░█░█░░░░░░░░░█▀█░█▀▄░█▀▀░█▀▄░█▀▀░█▀▀░▀█▀
░▀▀█░█░█░█▀█░█▀▀░█▀▀░░█░░░░▄▄▄░░░█▀▀░█░█░█▀▀░█▀▄░█▀▀░▀▀█░░█░
░▀▀▀░▀░▀░▀░▀░▀░░░▀░░░░▀░░░░░░░░░░▀░░░▀▀░░▀░░░▀░▀░▀▀▀░▀▀▀░░▀░
░█▄█░▀█▀░█▀▀░█▀▄░█▀█░░░▀█▀░█▄░█░█▀▀░█▀█░█▀▀░█▀▀░▀█▀
░█░█░░█░░█░░░█▀▄░█░█░░░░█░░█▀▄░█▀▀░█▀▀░█░░░░█░░░░█░
░▀░▀░▀▀▀░▀▀▀░▀░▀░▀▀▀░░░▀▀▀░▀░▀░▀░░░▀░░░▀▀▀░▀▀▀░░▀░
`
	fmt.Fprintln(os.Stderr, banner)
}

func readVersion() string {
	data, err := os.ReadFile("VERSION")
	if err != nil {
		return "0.0.0-dev"
	}
	return strings.TrimSpace(string(data))
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Parse(os.Args[1:], config.Environ())
	if errors.Is(err, config.ErrVersionRequested) {
		fmt.Println(readVersion())
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, config.Usage)
		return 1
	}

	log := xlog.New(os.Stderr, cfg.Verbose)
	colorEnabled := !cfg.DisableColors

	printBanner()
	version := readVersion()
	log.Infof("jsinspect version %s", version)

	client := cdp.New(log)

	var r *repl.REPL
	hooks := session.Hooks{
		Print:        func(line string) { r.Print(line) },
		SuspendWhile: func(fn func()) { r.SuspendWhile(fn) },
	}

	var childSession *child.Session
	onLine := func(line string) {
		if r != nil {
			r.PrintChildLine(line)
		}
	}
	childSession = child.NewSession(log, cfg.Target, onLine)

	sess := session.New(log, client, childSession, hooks, colorEnabled)

	ctx := context.Background()

	onRun := func(ctx context.Context) error {
		return startTarget(ctx, log, client, childSession, sess)
	}
	onRestart := func(ctx context.Context) error {
		return restartTarget(ctx, log, client, childSession, sess)
	}

	var editor repl.LineEditor
	if cfg.NoReadline {
		editor = repl.NewStreamEditor(os.Stdin)
	} else {
		editor = repl.NewLinerEditor()
	}

	r = repl.New(sess, editor, os.Stdout, version, colorEnabled, onRun, onRestart)
	defer r.Close()

	installSignalHandler(log, childSession, client)

	if cfg.Target.Mode == child.ModeRemote && cfg.Target.PID != 0 {
		if serr := child.SignalToListen(cfg.Target.PID); serr != nil {
			if errors.Is(serr, child.ErrTargetNotFound) {
				fmt.Fprintf(os.Stderr, "Target process: %d doesn't exist.\n", cfg.Target.PID)
				return 1
			}
			log.Warnf("failed to signal target %d to listen: %v", cfg.Target.PID, serr)
		}
	}

	if err := startTarget(ctx, log, client, childSession, sess); err != nil {
		if errors.Is(err, child.ErrConnectionExhausted) {
			fmt.Fprintln(os.Stderr, "failed to connect, please retry")
			return 1
		}
		fmt.Fprintf(os.Stderr, "There was an internal error in jsinspect. Please report this bug.\n%v\n", err)
		_ = childSession.Kill()
		return 1
	}

	if err := r.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "There was an internal error in jsinspect. Please report this bug.\n%v\n", err)
		_ = childSession.Kill()
		return 1
	}

	_ = childSession.Kill()
	client.Reset()
	return 0
}

func startTarget(ctx context.Context, log xlog.Logger, client *cdp.Client, childSession *child.Session, sess *session.Session) error {
	host, port, err := childSession.Start(ctx)
	if err != nil {
		return err
	}
	if err := child.ConnectWithRetry(ctx, client, host, port, func() { fmt.Fprint(os.Stdout, ".") }); err != nil {
		return err
	}
	sess.Reset()
	if err := sess.Bootstrap(ctx); err != nil {
		return err
	}
	sess.LogTargetVersion(ctx)
	return nil
}

func restartTarget(ctx context.Context, log xlog.Logger, client *cdp.Client, childSession *child.Session, sess *session.Session) error {
	client.Reset()
	host, port, err := childSession.Restart(ctx)
	if err != nil {
		return err
	}
	if err := child.ConnectWithRetry(ctx, client, host, port, func() { fmt.Fprint(os.Stdout, ".") }); err != nil {
		return err
	}
	sess.Reset()
	if err := sess.Bootstrap(ctx); err != nil {
		return err
	}
	sess.LogTargetVersion(ctx)
	return nil
}

// installSignalHandler wires SIGINT/SIGTERM/SIGHUP to "explicit
// user quit" path: kill the child, reset the client, exit 0. SIGINT on an
// interactive terminal is ordinarily intercepted first by the line
// editor (liner.SetCtrlCAborts); this handler is the fallback for
// non-interactive streams and for SIGTERM/SIGHUP, which the editor never
// sees.
func installSignalHandler(log xlog.Logger, childSession *child.Session, client *cdp.Client) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, terminationSignals()...)
	go func() {
		<-sigCh
		log.Infof("received termination signal, shutting down")
		_ = childSession.Kill()
		client.Reset()
		os.Exit(0)
	}()
}
