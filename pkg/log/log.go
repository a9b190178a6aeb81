// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log implements a level-gated event logger. Events below the
// configured threshold are dropped, the rest are rendered as a single
// bracketed line and written either to one target element or, when no
// target is set, to the console channel matching their severity.
package log

import (
	"strconv"
	"strings"
	"time"

	"github.com/Pich78/percussion-studio-sub002/pkg/host"
	"github.com/Pich78/percussion-studio-sub002/pkg/logging"
)

// Severity specifies the importance of an event.
// Lower values are more verbose.
type Severity int32

const (
	// SeverityDebug is for verbose diagnostic events.
	SeverityDebug Severity = iota
	// SeverityInfo is for normal operational events.
	SeverityInfo
	// SeverityWarn is for unexpected but recoverable conditions.
	SeverityWarn
	// SeverityError is for failures.
	SeverityError

	// AllSeverities is a placeholder used to register
	// level hooks that fire on every severity.
	AllSeverities = Severity(1<<31 - 1)
)

// DefaultThreshold is the threshold of a newly created Logger.
const DefaultThreshold = SeverityInfo

// ParamLogLevel is the name of the ambient parameter consulted
// by Init when no explicit level is configured.
const ParamLogLevel = "log_level"

// Known reports whether s is one of the four named severities.
func (s Severity) Known() bool {
	return s >= SeverityDebug && s <= SeverityError
}

// String implements the fmt.Stringer interface.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	}
	return strconv.FormatInt(int64(s), 10)
}

// ParseSeverity returns the severity named by s. The match is case
// insensitive and "warning" is accepted as an alias of "warn".
// The boolean result reports whether s names a known severity.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return SeverityDebug, true
	case "info":
		return SeverityInfo, true
	case "warn", "warning":
		return SeverityWarn, true
	case "error":
		return SeverityError, true
	}
	return 0, false
}

// Hook is fired after an event of the associated
// severity has been written. The call must be non-blocking.
type Hook interface {
	Fire(Severity) error
}

// Params is the ambient configuration source, typically the query
// parameters of the host's current location. url.Values satisfies it.
type Params interface {
	Get(key string) string
}

// Config is the configuration accepted by Logger.Init.
type Config struct {
	// Level is one of debug, info, warn or error. When empty,
	// the ambient log_level parameter is consulted instead.
	Level string `mapstructure:"level" yaml:"level"`
}

// Options specifies parameters that affect logger behavior.
type Options struct {
	console    logging.Console
	document   host.Document
	params     Params
	now        func() time.Time
	levelHooks levelHooks
}

// Option represent Options parameters modifier.
type Option func(*Options)

// WithConsole tells the logger where to write its own notices
// and the events emitted while no target is set.
func WithConsole(c logging.Console) Option {
	return func(opts *Options) { opts.console = c }
}

// WithDocument tells the logger how to resolve target identifiers.
// Without a document every SetTarget call fails.
func WithDocument(d host.Document) Option {
	return func(opts *Options) { opts.document = d }
}

// WithParams tells the logger where to look up the ambient log_level parameter.
func WithParams(p Params) Option {
	return func(opts *Options) { opts.params = p }
}

// WithClock tells the logger which function to use to timestamp events.
func WithClock(now func() time.Time) Option {
	return func(opts *Options) { opts.now = now }
}

// WithLevelHooks tells the logger to register and execute hooks at
// related severity levels. If AllSeverities is given, then the
// given hooks are executed for every emitted event, including
// events of an unknown severity.
func WithLevelHooks(s Severity, hooks ...Hook) Option {
	return func(opts *Options) {
		if opts.levelHooks == nil {
			opts.levelHooks = make(levelHooks)
		}
		opts.levelHooks[s] = append(opts.levelHooks[s], hooks...)
	}
}
