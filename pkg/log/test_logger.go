// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"strings"
	"testing"

	"github.com/Pich78/percussion-studio-sub002/pkg/logging"
)

// NewTestLogger returns logger used for testing.
// This logger uses t.Log as console for log outputs.
func NewTestLogger(t testing.TB, opts ...Option) *Logger {
	t.Helper()

	opts = append([]Option{WithConsole(logging.New(&testWriter{t: t}))}, opts...)

	return New(opts...)
}

type testWriter struct {
	t testing.TB
}

func (tw *testWriter) Write(p []byte) (n int, err error) {
	tw.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
