// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recorder

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// ErrNotCalled is matched by every *AssertionError.
var ErrNotCalled = errors.New("expected call not recorded")

// AssertionError is returned by WasCalledWith when no recorded
// call matches. It carries the full history for diagnosis.
type AssertionError struct {
	Recorder string
	Method   string
	Expected interface{}
	Calls    []Call
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "recorder %s: %v: %s with arguments %s", e.Recorder, ErrNotCalled, e.Method, formatExpected(e.Expected))
	if len(e.Calls) == 0 {
		b.WriteString("; no calls recorded")
		return b.String()
	}
	b.WriteString("; recorded calls:")
	for i, c := range e.Calls {
		fmt.Fprintf(&b, "\n\t%d. %s with arguments %s", i+1, c.Method, formatExpected(c.Args))
	}
	return b.String()
}

// Is reports whether target is ErrNotCalled.
func (e *AssertionError) Is(target error) bool {
	return target == ErrNotCalled
}

// AssertCalledWith fails the test immediately if r has no
// call of method with arguments equal to expected.
func AssertCalledWith(tb testing.TB, r *Recorder, method string, expected interface{}) {
	tb.Helper()

	if err := r.WasCalledWith(method, expected); err != nil {
		tb.Fatal(err)
	}
}
