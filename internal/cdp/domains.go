// Copyright 2026 - Giacomo Failla <failla.giacomo@gmail.com>
// MIT License. See LICENSE file for details.

package cdp

import (
	"context"
	"encoding/json"

	cdptypes "github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/debugger"
	"github.com/chromedp/cdproto/profiler"
	"github.com/chromedp/cdproto/runtime"
)

// Domains bundles the façades this client drives, a narrow method
// list instead of enumerating the whole CDTP surface:
// Debugger.{enable,resume,stepOver,stepInto,stepOut,pause,
// setBreakpoint,setBreakpointByUrl,removeBreakpoint,
// setPauseOnExceptions,setAsyncCallStackDepth,setBlackboxPatterns,
// evaluateOnCallFrame,getScriptSource}, Runtime.{enable,evaluate,
// getProperties,runIfWaitingForDebugger}, Profiler.{enable,
// setSamplingInterval}, Browser.{getVersion}.
type Domains struct {
	Debugger *DebuggerAgent
	Runtime  *RuntimeAgent
	Profiler *ProfilerAgent
	Browser  *BrowserAgent
}

// NewDomains wires the agents against one client.
func NewDomains(c *Client) *Domains {
	return &Domains{
		Debugger: &DebuggerAgent{Agent: c.Domain("Debugger")},
		Runtime:  &RuntimeAgent{Agent: c.Domain("Runtime")},
		Profiler: &ProfilerAgent{Agent: c.Domain("Profiler")},
		Browser:  &BrowserAgent{Agent: c.Domain("Browser")},
	}
}

// DebuggerAgent is the typed façade over the Debugger domain, built on
// cdproto's generated param structs where the shape is a simple struct
// with json tags; CallFrameID, whose type varies across cdproto releases,
// is carried as a plain string instead.
type DebuggerAgent struct{ *Agent }

func (d *DebuggerAgent) Enable(ctx context.Context) error {
	_, err := d.Call(ctx, "enable", &debugger.EnableParams{})
	return err
}

func (d *DebuggerAgent) SetPauseOnExceptions(ctx context.Context, state string) error {
	_, err := d.Call(ctx, "setPauseOnExceptions", &debugger.SetPauseOnExceptionsParams{
		State: debugger.PauseOnExceptionsState(state),
	})
	return err
}

func (d *DebuggerAgent) SetAsyncCallStackDepth(ctx context.Context, maxDepth int64) error {
	_, err := d.Call(ctx, "setAsyncCallStackDepth", &debugger.SetAsyncCallStackDepthParams{MaxDepth: maxDepth})
	return err
}

func (d *DebuggerAgent) SetBlackboxPatterns(ctx context.Context, patterns []string) error {
	_, err := d.Call(ctx, "setBlackboxPatterns", &debugger.SetBlackboxPatternsParams{Patterns: patterns})
	return err
}

func (d *DebuggerAgent) Resume(ctx context.Context) error {
	_, err := d.Call(ctx, "resume", &debugger.ResumeParams{})
	return err
}

func (d *DebuggerAgent) StepOver(ctx context.Context) error {
	_, err := d.Call(ctx, "stepOver", &debugger.StepOverParams{})
	return err
}

func (d *DebuggerAgent) StepInto(ctx context.Context) error {
	_, err := d.Call(ctx, "stepInto", &debugger.StepIntoParams{})
	return err
}

func (d *DebuggerAgent) StepOut(ctx context.Context) error {
	_, err := d.Call(ctx, "stepOut", &debugger.StepOutParams{})
	return err
}

func (d *DebuggerAgent) Pause(ctx context.Context) error {
	_, err := d.Call(ctx, "pause", &debugger.PauseParams{})
	return err
}

// SetBreakpoint sets a breakpoint at a known scriptId+line (request
// shapes 1 and 2 of setBreakpoint).
func (d *DebuggerAgent) SetBreakpoint(ctx context.Context, scriptID string, lineNumber int) (breakpointID string, actualLine int, err error) {
	raw, err := d.Call(ctx, "setBreakpoint", map[string]any{
		"location": cdptypes.Location{
			ScriptID:   cdptypes.ScriptID(scriptID),
			LineNumber: int64(lineNumber),
		},
	})
	if err != nil {
		return "", 0, err
	}
	var out struct {
		BreakpointID   string `json:"breakpointId"`
		ActualLocation struct {
			LineNumber int64 `json:"lineNumber"`
		} `json:"actualLocation"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", 0, err
	}
	return out.BreakpointID, int(out.ActualLocation.LineNumber), nil
}

// SetBreakpointByURL sets a breakpoint by url or urlRegex (request shape
// 3 of setBreakpoint): exactly one of url/urlRegex should be non-empty.
func (d *DebuggerAgent) SetBreakpointByURL(ctx context.Context, lineNumber int, url, urlRegex string, condition string) (breakpointID string, err error) {
	params := map[string]any{"lineNumber": lineNumber}
	if url != "" {
		params["url"] = url
	}
	if urlRegex != "" {
		params["urlRegex"] = urlRegex
	}
	if condition != "" {
		params["condition"] = condition
	}
	raw, err := d.Call(ctx, "setBreakpointByUrl", params)
	if err != nil {
		return "", err
	}
	var out struct {
		BreakpointID string `json:"breakpointId"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	return out.BreakpointID, nil
}

func (d *DebuggerAgent) RemoveBreakpoint(ctx context.Context, breakpointID string) error {
	_, err := d.Call(ctx, "removeBreakpoint", &debugger.RemoveBreakpointParams{
		BreakpointID: cdptypes.BreakpointID(breakpointID),
	})
	return err
}

// EvaluateOnCallFrame evaluates expression in the context of callFrameID.
func (d *DebuggerAgent) EvaluateOnCallFrame(ctx context.Context, callFrameID, expression string, returnByValue, generatePreview bool) (*runtime.RemoteObject, *runtime.ExceptionDetails, error) {
	raw, err := d.Call(ctx, "evaluateOnCallFrame", map[string]any{
		"callFrameId":           callFrameID,
		"expression":            expression,
		"returnByValue":         returnByValue,
		"generatePreview":       generatePreview,
		"includeCommandLineAPI": true,
	})
	if err != nil {
		return nil, nil, err
	}
	var out struct {
		Result           *runtime.RemoteObject     `json:"result"`
		ExceptionDetails *runtime.ExceptionDetails `json:"exceptionDetails"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, nil, err
	}
	return out.Result, out.ExceptionDetails, nil
}

func (d *DebuggerAgent) GetScriptSource(ctx context.Context, scriptID string) (string, error) {
	raw, err := d.Call(ctx, "getScriptSource", &debugger.GetScriptSourceParams{
		ScriptID: cdptypes.ScriptID(scriptID),
	})
	if err != nil {
		return "", err
	}
	var out struct {
		ScriptSource string `json:"scriptSource"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	return out.ScriptSource, nil
}

// RuntimeAgent is the typed façade over the Runtime domain.
type RuntimeAgent struct{ *Agent }

func (r *RuntimeAgent) Enable(ctx context.Context) error {
	_, err := r.Call(ctx, "enable", &runtime.EnableParams{})
	return err
}

func (r *RuntimeAgent) RunIfWaitingForDebugger(ctx context.Context) error {
	_, err := r.Call(ctx, "runIfWaitingForDebugger", &runtime.RunIfWaitingForDebuggerParams{})
	return err
}

// Evaluate evaluates expression in the global context (contextID == 0).
func (r *RuntimeAgent) Evaluate(ctx context.Context, expression string, generatePreview bool) (*runtime.RemoteObject, *runtime.ExceptionDetails, error) {
	raw, err := r.Call(ctx, "evaluate", map[string]any{
		"expression":            expression,
		"generatePreview":       generatePreview,
		"includeCommandLineAPI": true,
	})
	if err != nil {
		return nil, nil, err
	}
	var out struct {
		Result           *runtime.RemoteObject     `json:"result"`
		ExceptionDetails *runtime.ExceptionDetails `json:"exceptionDetails"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, nil, err
	}
	return out.Result, out.ExceptionDetails, nil
}

func (r *RuntimeAgent) GetProperties(ctx context.Context, objectID string) ([]*runtime.PropertyDescriptor, error) {
	raw, err := r.Call(ctx, "getProperties", map[string]any{
		"objectId":       objectID,
		"ownProperties":  true,
		"generatePreview": true,
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Result []*runtime.PropertyDescriptor `json:"result"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// ProfilerAgent is the typed façade over the Profiler domain.
type ProfilerAgent struct{ *Agent }

func (p *ProfilerAgent) Enable(ctx context.Context) error {
	_, err := p.Call(ctx, "enable", &profiler.EnableParams{})
	return err
}

func (p *ProfilerAgent) SetSamplingInterval(ctx context.Context, interval int64) error {
	_, err := p.Call(ctx, "setSamplingInterval", &profiler.SetSamplingIntervalParams{Interval: interval})
	return err
}

// BrowserVersion is the subset of Browser.getVersion's result this
// client cares about.
type BrowserVersion struct {
	ProtocolVersion string
	Product         string
	Revision        string
	UserAgent       string
	JSVersion       string
}

// BrowserAgent is the typed façade over the Browser domain.
type BrowserAgent struct{ *Agent }

// GetVersion reports the target's protocol version, product, and
// revision strings, used for the debug-level target version log line.
func (b *BrowserAgent) GetVersion(ctx context.Context) (BrowserVersion, error) {
	raw, err := b.Call(ctx, "getVersion", nil)
	if err != nil {
		return BrowserVersion{}, err
	}
	var out struct {
		ProtocolVersion string `json:"protocolVersion"`
		Product         string `json:"product"`
		Revision        string `json:"revision"`
		UserAgent       string `json:"userAgent"`
		JSVersion       string `json:"jsVersion"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return BrowserVersion{}, err
	}
	return BrowserVersion{
		ProtocolVersion: out.ProtocolVersion,
		Product:         out.Product,
		Revision:        out.Revision,
		UserAgent:       out.UserAgent,
		JSVersion:       out.JSVersion,
	}, nil
}
