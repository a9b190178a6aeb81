// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recorder

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Pich78/percussion-studio-sub002/pkg/host"
	"github.com/Pich78/percussion-studio-sub002/pkg/logging"
	"github.com/google/uuid"
)

// SinkTimeLayout is the layout of the timestamp prefix of sink lines.
const SinkTimeLayout = "15:04:05.000"

// Registry keeps track of recorders by identity and owns the recording
// sink shared by all of them. It is safe for concurrent use.
type Registry struct {
	console  logging.Console
	document host.Document
	now      func() time.Time
	metrics  metrics

	mu        sync.Mutex
	recorders map[string]*Recorder
	sink      host.Element
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithConsole sets the console every recorded call is written to.
func WithConsole(c logging.Console) RegistryOption {
	return func(r *Registry) { r.console = c }
}

// WithDocument sets the document recording sinks are resolved in.
func WithDocument(d host.Document) RegistryOption {
	return func(r *Registry) { r.document = d }
}

// WithClock sets the clock used to timestamp sink lines.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry returns an empty registry without a recording sink.
// Unless configured otherwise, console output goes to stderr.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		recorders: make(map[string]*Recorder),
		now:       time.Now,
		metrics:   newMetrics(),
	}
	for _, o := range opts {
		o(r)
	}
	if r.console == nil {
		r.console = logging.New(os.Stderr)
	}
	return r
}

// New creates a recorder with an empty history and registers it under
// identity, replacing any recorder registered with the same identity.
// A random identity is assigned when identity is empty. The display name
// defaults to the identity.
func (r *Registry) New(identity string, opts ...Option) *Recorder {
	if identity == "" {
		identity = uuid.NewString()
	}
	rec := &Recorder{
		id:       identity,
		name:     identity,
		registry: r,
		calls:    []Call{},
	}
	for _, o := range opts {
		o(rec)
	}

	r.mu.Lock()
	r.recorders[identity] = rec
	r.mu.Unlock()

	return rec
}

// Lookup returns the recorder currently registered under identity.
func (r *Registry) Lookup(identity string) (*Recorder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recorders[identity]
	return rec, ok
}

// Len returns the number of registered recorders.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.recorders)
}

// SetRecordingSink resolves id in the configured document and installs
// the element as the sink of every recorder of the registry. If the
// element cannot be found the current sink is kept and a warning is
// written to the console. The result reports whether the sink was changed.
func (r *Registry) SetRecordingSink(id string) bool {
	var (
		el host.Element
		ok bool
	)
	if r.document != nil {
		el, ok = r.document.ElementByID(id)
	}
	if !ok {
		r.console.Warn(fmt.Sprintf("Recording sink element not found: %s", id))
		return false
	}

	r.mu.Lock()
	r.sink = el
	r.mu.Unlock()
	return true
}

// ResetAll clears the contents of the recording sink, if any, and
// unregisters every recorder. Recorders already held by callers stay
// usable and keep their history. The sink itself stays installed.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	sink := r.sink
	r.recorders = make(map[string]*Recorder)
	r.mu.Unlock()

	r.metrics.ResetCount.Inc()
	if sink == nil {
		return
	}
	if err := sink.Clear(); err != nil {
		r.console.Error(fmt.Errorf("recorder: failed to clear sink %q: %w", sink.ID(), err))
	}
}

// notify writes the recorded call c of rec to the console and the sink.
func (r *Registry) notify(rec *Recorder, c Call) {
	r.metrics.CallCount.Inc()

	l := line(rec.name, c)
	r.console.Log(l)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sink == nil {
		return
	}
	ts := r.now().Format(SinkTimeLayout)
	if err := r.sink.AppendText("[" + ts + "] " + l + "\n"); err != nil {
		r.console.Error(fmt.Errorf("recorder: failed to write to sink %q: %w", r.sink.ID(), err))
	}
}
