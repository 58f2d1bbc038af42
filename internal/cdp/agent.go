// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package cdp

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// Agent is the component-F façade over one CDTP domain ("Debugger",
// "Runtime", "Profiler", ...): Call collapses to client.CallMethod with
// the method name qualified by the domain, and On routes inbound
// "<Domain>.<event>" events to one handler per short event name, so
// callers never have to enumerate the CDTP surface by hand.
type Agent struct {
	client *Client
	domain string

	mu       sync.Mutex
	handlers map[string]EventHandler
}

// Domain returns a new façade for the named CDTP domain and registers its
// event router with the client, replacing the router of any earlier
// Domain call for the same name.
func (c *Client) Domain(name string) *Agent {
	a := &Agent{client: c, domain: name, handlers: make(map[string]EventHandler)}
	c.OnEvent(name, a.route)
	return a
}

// Call invokes "<domain>.<method>" and blocks for the response.
func (a *Agent) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	return a.client.CallMethod(ctx, a.domain+"."+method, params)
}

// On subscribes to "<domain>.<event>", dispatched under its short name.
func (a *Agent) On(event string, fn EventHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handlers[event] = fn
}

func (a *Agent) route(method string, params json.RawMessage) {
	_, short, ok := strings.Cut(method, ".")
	if !ok {
		short = method
	}
	a.mu.Lock()
	fn := a.handlers[short]
	a.mu.Unlock()
	if fn != nil {
		fn(method, params)
	}
}
