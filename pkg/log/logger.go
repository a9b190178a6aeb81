// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Pich78/percussion-studio-sub002/pkg/host"
	"github.com/Pich78/percussion-studio-sub002/pkg/logging"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"
)

// levelHooks is a helper type for storing and
// help triggering the hooks on a logger instance.
type levelHooks map[Severity][]Hook

// fire triggers all the hooks for the given severity,
// followed by the hooks registered with AllSeverities.
func (lh levelHooks) fire(s Severity) error {
	hooks := lh[s]
	if s != AllSeverities {
		hooks = append(hooks[:len(hooks):len(hooks)], lh[AllSeverities]...)
	}
	for _, hook := range hooks {
		if err := hook.Fire(s); err != nil {
			return err
		}
	}
	return nil
}

// Logger is a level-gated event logger. The zero value is not usable,
// create instances with New. A Logger is safe for concurrent use.
type Logger struct {
	opts Options

	// threshold is the least severity that is emitted.
	// Only Init changes it.
	threshold *atomic.Int32

	// channels maps each known severity to its console channel.
	// Severities without an entry use the generic channel.
	channels map[Severity]func(args ...interface{})

	// mu guards target and serializes dispatch so that
	// events are observed by their output in call order.
	mu     sync.Mutex
	target host.Element
}

// New returns a Logger with the Info threshold and no target.
// Unless configured otherwise, console output goes to stderr.
func New(opts ...Option) *Logger {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.console == nil {
		o.console = logging.New(os.Stderr)
	}
	if o.now == nil {
		o.now = time.Now
	}

	return &Logger{
		opts:      o,
		threshold: atomic.NewInt32(int32(DefaultThreshold)),
		channels: map[Severity]func(args ...interface{}){
			SeverityDebug: o.console.Debug,
			SeverityInfo:  o.console.Info,
			SeverityWarn:  o.console.Warn,
			SeverityError: o.console.Error,
		},
	}
}

// Threshold returns the current threshold.
func (l *Logger) Threshold() Severity {
	return Severity(l.threshold.Load())
}

// Init sets the threshold from cfg and reports the result on the console.
// A known cfg.Level is used as is and an unknown one resets the threshold
// to Info. With an empty cfg.Level the ambient log_level parameter is used
// if it names a known severity, otherwise the threshold is left unchanged.
func (l *Logger) Init(cfg Config) {
	s := l.resolveThreshold(cfg)
	l.threshold.Store(int32(s))
	l.opts.console.Info(fmt.Sprintf("Logger initialized with level: %s", s))
}

func (l *Logger) resolveThreshold(cfg Config) Severity {
	if cfg.Level != "" {
		if s, ok := ParseSeverity(cfg.Level); ok {
			return s
		}
		return DefaultThreshold
	}
	if l.opts.params != nil {
		if s, ok := ParseSeverity(l.opts.params.Get(ParamLogLevel)); ok {
			return s
		}
	}
	return l.Threshold()
}

// SetTarget resolves id in the configured document and makes the element
// the only output of subsequent events. If the element cannot be found the
// current output is kept and a warning is written to the console.
// The result reports whether the target was changed.
func (l *Logger) SetTarget(id string) bool {
	var (
		el host.Element
		ok bool
	)
	if l.opts.document != nil {
		el, ok = l.opts.document.ElementByID(id)
	}
	if !ok {
		l.opts.console.Warn(fmt.Sprintf("Log target element not found: %s", id))
		return false
	}

	l.mu.Lock()
	l.target = el
	l.mu.Unlock()

	l.opts.console.Info(fmt.Sprintf("Log target set to: %s", id))
	return true
}

// LogEvent emits an event unless level is below the threshold. Events of
// an unknown severity are always emitted. Write failures are reported on
// the console error channel, LogEvent itself never fails.
func (l *Logger) LogEvent(level Severity, source, method, feature, message string, extra []interface{}) {
	if level.Known() && level < l.Threshold() {
		return
	}

	e := Event{
		Time:    l.opts.now(),
		Level:   level,
		Source:  source,
		Method:  method,
		Feature: feature,
		Message: message,
		Extra:   extra,
	}
	if err := l.log(e); err != nil {
		l.opts.console.Error(err)
	}
}

// log writes e to the target if one is set, or to the
// console otherwise, and then fires the level hooks.
func (l *Logger) log(e Event) error {
	line := e.Line()

	l.mu.Lock()
	defer l.mu.Unlock()

	var merr *multierror.Error
	if l.target != nil {
		if err := l.target.AppendBlock(line, e.Detail()); err != nil {
			merr = multierror.Append(
				merr,
				fmt.Errorf("log %s: failed to write event to %q: %w", e.Level, l.target.ID(), err),
			)
		} else if err := l.target.ScrollToEnd(); err != nil {
			merr = multierror.Append(
				merr,
				fmt.Errorf("log %s: failed to scroll %q: %w", e.Level, l.target.ID(), err),
			)
		}
	} else {
		args := make([]interface{}, 0, 1+len(e.Extra))
		args = append(args, line)
		l.channel(e.Level)(append(args, e.Extra...)...)
	}

	if err := l.opts.levelHooks.fire(e.Level); err != nil {
		merr = multierror.Append(
			merr,
			fmt.Errorf("log %s: failed to fire hooks: %w", e.Level, err),
		)
	}
	return merr.ErrorOrNil()
}

// channel returns the console channel for s.
func (l *Logger) channel(s Severity) func(args ...interface{}) {
	if fn, ok := l.channels[s]; ok {
		return fn
	}
	return l.opts.console.Log
}
