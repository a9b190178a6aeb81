// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recorder provides a test double that records the method calls
// made against a named subject, so that tests can assert on them later.
// Recorders are created through a Registry, which keeps the most recently
// created recorder of every identity and an optional recording sink that
// mirrors all recorded calls as timestamped lines.
package recorder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// NoArgs marks a call that was made without arguments.
// It is distinct from an explicit nil argument.
var NoArgs interface{} = noArgs{}

type noArgs struct{}

func (noArgs) String() string { return "<no arguments>" }

// Call is a single recorded invocation.
type Call struct {
	Method string
	Args   interface{} // NoArgs if the call had no arguments.
}

// HasArgs reports whether the call was made with arguments.
func (c Call) HasArgs() bool {
	return c.Args != NoArgs
}

// String renders the call as method(args) with args as compact JSON.
func (c Call) String() string {
	return c.Method + "(" + formatArgs(c.Args) + ")"
}

// Recorder records calls in invocation order. It is safe for concurrent
// use; the recording sink sees calls in the same order as the history.
type Recorder struct {
	id       string
	name     string
	registry *Registry

	mu    sync.Mutex
	calls []Call
}

// Option configures a Recorder created by Registry.New.
type Option func(*Recorder)

// WithName sets the display name used in console and sink lines.
func WithName(name string) Option {
	return func(r *Recorder) { r.name = name }
}

// ID returns the identity the recorder was registered with.
func (r *Recorder) ID() string { return r.id }

// Name returns the display name of the recorder.
func (r *Recorder) Name() string { return r.name }

// Record appends a call to the history. Use NoArgs for a call made
// without arguments. The call is also written to the console and to the
// registry's recording sink; those writes never affect the history.
func (r *Recorder) Record(method string, args interface{}) {
	c := Call{Method: method, Args: args}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, c)
	r.registry.notify(r, c)
}

// CallCount returns the number of recorded calls.
func (r *Recorder) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.calls)
}

// Calls returns a copy of the recorded calls in invocation order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Call(nil), r.calls...)
}

// WasCalledWith returns nil if method was called with arguments equal to
// expected, NoArgs matching only calls made without arguments. Otherwise
// it returns an *AssertionError that lists every recorded call.
func (r *Recorder) WasCalledWith(method string, expected interface{}) error {
	calls := r.Calls()
	for _, c := range calls {
		if c.Method == method && argsEqual(expected, c.Args) {
			return nil
		}
	}

	r.registry.metrics.AssertionFailureCount.Inc()
	return &AssertionError{
		Recorder: r.name,
		Method:   method,
		Expected: expected,
		Calls:    calls,
	}
}

// Clear empties the history. The registration of the recorder is kept.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.calls = []Call{}
	r.mu.Unlock()
}

// formatArgs renders args as compact JSON without HTML escaping,
// or as an empty string for NoArgs.
func formatArgs(args interface{}) string {
	if args == NoArgs {
		return ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(args); err != nil {
		return fmt.Sprintf("%+v", args)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// formatExpected renders the expected arguments of an assertion.
func formatExpected(args interface{}) string {
	if args == NoArgs {
		return NoArgs.(fmt.Stringer).String()
	}
	return formatArgs(args)
}

// line returns the human readable form of c used in console and sink output.
func line(name string, c Call) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(name)
	b.WriteString("] ")
	b.WriteString(c.String())
	return b.String()
}
