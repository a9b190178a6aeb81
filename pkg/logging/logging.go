// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging provides the console abstraction used as the default
// output of the event logger and the call recorder, and an implementation
// of it. It uses logrus under the hood.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// ChannelKey is the logrus field that carries the console channel name.
const ChannelKey = "channel"

// Console channel names.
const (
	ChannelDebug = "debug"
	ChannelInfo  = "info"
	ChannelWarn  = "warn"
	ChannelError = "error"
	ChannelLog   = "log"
)

// Console has four severity-named output channels and one generic channel.
// Arguments are rendered space separated.
type Console interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Log(args ...interface{})
}

var _ Console = (*console)(nil)

type console struct {
	logger *logrus.Logger
}

// Option configures the console returned by New.
type Option func(*logrus.Logger)

// WithTextFormatter renders each line with logrus' text formatter, which
// adds a timestamp, the level and the channel field around the message.
func WithTextFormatter() Option {
	return func(l *logrus.Logger) {
		l.Formatter = &logrus.TextFormatter{
			FullTimestamp: true,
		}
	}
}

// New returns a Console that writes to w. Every channel is enabled,
// filtering is left to the caller. By default only the message is written,
// one line per call.
func New(w io.Writer, opts ...Option) Console {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.TraceLevel)
	l.Formatter = lineFormatter{}
	for _, o := range opts {
		o(l)
	}
	return &console{logger: l}
}

// NewFromLogrus returns a Console backed by the given logrus logger.
// The logger's level and formatter are left untouched.
func NewFromLogrus(l *logrus.Logger) Console {
	return &console{logger: l}
}

func (c *console) channel(name string) *logrus.Entry {
	return c.logger.WithField(ChannelKey, name)
}

// Debug implements the Console interface.
func (c *console) Debug(args ...interface{}) { c.channel(ChannelDebug).Debugln(args...) }

// Info implements the Console interface.
func (c *console) Info(args ...interface{}) { c.channel(ChannelInfo).Infoln(args...) }

// Warn implements the Console interface.
func (c *console) Warn(args ...interface{}) { c.channel(ChannelWarn).Warnln(args...) }

// Error implements the Console interface.
func (c *console) Error(args ...interface{}) { c.channel(ChannelError).Errorln(args...) }

// Log implements the Console interface. The generic
// channel is written at logrus' info level.
func (c *console) Log(args ...interface{}) { c.channel(ChannelLog).Println(args...) }

// lineFormatter writes the bare message followed by a newline.
type lineFormatter struct{}

// Format implements the logrus.Formatter interface.
func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := make([]byte, 0, len(e.Message)+1)
	b = append(b, e.Message...)
	return append(b, '\n'), nil
}
