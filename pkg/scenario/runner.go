// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/Pich78/percussion-studio-sub002/pkg/host"
	"github.com/Pich78/percussion-studio-sub002/pkg/log"
	"github.com/Pich78/percussion-studio-sub002/pkg/logging"
	"github.com/Pich78/percussion-studio-sub002/pkg/recorder"
)

// Runner runs scenarios against one logger and one recorder registry
// sharing an in-memory document.
type Runner struct {
	Document *host.MemDocument
	Logger   *log.Logger
	Registry *recorder.Registry
	Metrics  *log.Metrics

	params url.Values
}

// NewRunner returns a Runner whose logger and registry write their
// console output to c. Additional logger options are applied last.
func NewRunner(c logging.Console, opts ...log.Option) *Runner {
	r := &Runner{
		Document: host.NewDocument(),
		Metrics:  log.NewMetrics(),
		params:   url.Values{},
	}
	opts = append([]log.Option{
		log.WithConsole(c),
		log.WithDocument(r.Document),
		log.WithParams(r.params),
		log.WithLevelHooks(log.AllSeverities, r.Metrics),
	}, opts...)
	r.Logger = log.New(opts...)
	r.Registry = recorder.NewRegistry(
		recorder.WithConsole(c),
		recorder.WithDocument(r.Document),
	)
	return r
}

// Run creates the elements of s and runs its steps in order. It stops at
// the first failing step; failed assertions wrap recorder.ErrNotCalled.
func (r *Runner) Run(s *Scenario) error {
	for _, id := range s.Elements {
		r.Document.Create(id)
	}
	for k, v := range s.Params {
		r.params.Set(k, v)
	}
	for i, st := range s.Steps {
		if err := r.step(st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *Runner) step(s Step) error {
	switch {
	case s.Init != nil:
		r.Logger.Init(*s.Init)
	case s.Target != nil:
		r.Logger.SetTarget(*s.Target)
	case s.Log != nil:
		level, err := ParseLevel(s.Log.Level)
		if err != nil {
			return err
		}
		r.Logger.LogEvent(level, s.Log.Source, s.Log.Method, s.Log.Feature, s.Log.Message, s.Log.Extra)
	case s.Recorder != nil:
		var opts []recorder.Option
		if s.Recorder.Name != "" {
			opts = append(opts, recorder.WithName(s.Recorder.Name))
		}
		r.Registry.New(s.Recorder.ID, opts...)
	case s.Record != nil:
		rec, err := r.lookup(s.Record.ID)
		if err != nil {
			return err
		}
		rec.Record(s.Record.Method, s.Record.Args)
	case s.Assert != nil:
		rec, err := r.lookup(s.Assert.ID)
		if err != nil {
			return err
		}
		return rec.WasCalledWith(s.Assert.Method, s.Assert.Args)
	case s.Clear != nil:
		rec, err := r.lookup(*s.Clear)
		if err != nil {
			return err
		}
		rec.Clear()
	case s.RecordingSink != nil:
		r.Registry.SetRecordingSink(*s.RecordingSink)
	case s.Reset != nil:
		if *s.Reset {
			r.Registry.ResetAll()
		}
	default:
		return ErrUnknownStep
	}
	return nil
}

func (r *Runner) lookup(id string) (*recorder.Recorder, error) {
	rec, ok := r.Registry.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecorder, id)
	}
	return rec, nil
}

// ParseLevel parses a severity name, or a decimal number for
// severities outside of the named ones.
func ParseLevel(s string) (log.Severity, error) {
	if level, ok := log.ParseSeverity(s); ok {
		return level, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return log.Severity(n), nil
}
