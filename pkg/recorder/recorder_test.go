// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recorder_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Pich78/percussion-studio-sub002/pkg/host"
	"github.com/Pich78/percussion-studio-sub002/pkg/logging"
	"github.com/Pich78/percussion-studio-sub002/pkg/recorder"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newRegistry(t *testing.T, opts ...recorder.RegistryOption) (*recorder.Registry, *test.Hook) {
	t.Helper()

	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.TraceLevel)
	opts = append([]recorder.RegistryOption{recorder.WithConsole(logging.NewFromLogrus(l))}, opts...)
	return recorder.NewRegistry(opts...), hook
}

func TestRecord(t *testing.T) {
	t.Parallel()

	reg, hook := newRegistry(t)
	r := reg.New("instrument-panel", recorder.WithName("InstrumentPanel"))

	if have := r.CallCount(); have != 0 {
		t.Fatalf("CallCount(): want 0; have %d", have)
	}

	r.Record("foo", map[string]interface{}{"a": 1})
	r.Record("bar", recorder.NoArgs)
	r.Record("foo", map[string]interface{}{"a": 1})
	r.Record("baz", nil)

	want := []recorder.Call{
		{Method: "foo", Args: map[string]interface{}{"a": 1}},
		{Method: "bar", Args: recorder.NoArgs},
		{Method: "foo", Args: map[string]interface{}{"a": 1}},
		{Method: "baz", Args: nil},
	}
	if diff := cmp.Diff(want, r.Calls(), cmp.Comparer(func(a, b recorder.Call) bool {
		return a.String() == b.String() && a.HasArgs() == b.HasArgs()
	})); diff != "" {
		t.Errorf("Calls() mismatch (-want +have):\n%s", diff)
	}
	if have := r.CallCount(); have != 4 {
		t.Errorf("CallCount(): want 4; have %d", have)
	}

	var lines []string
	for _, e := range hook.AllEntries() {
		if e.Data[logging.ChannelKey] != logging.ChannelLog {
			t.Errorf("console channel: want %q; have %v", logging.ChannelLog, e.Data[logging.ChannelKey])
		}
		lines = append(lines, e.Message)
	}
	wantLines := []string{
		`[InstrumentPanel] foo({"a":1})`,
		`[InstrumentPanel] bar()`,
		`[InstrumentPanel] foo({"a":1})`,
		`[InstrumentPanel] baz(null)`,
	}
	if diff := cmp.Diff(wantLines, lines); diff != "" {
		t.Errorf("console lines mismatch (-want +have):\n%s", diff)
	}
}

func TestCallHasArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		call recorder.Call
		want bool
	}{
		{recorder.Call{Method: "m", Args: recorder.NoArgs}, false},
		{recorder.Call{Method: "m", Args: nil}, true},
		{recorder.Call{Method: "m", Args: map[string]interface{}{}}, true},
		{recorder.Call{Method: "m", Args: []int{1}}, true},
	}
	for _, tc := range testCases {
		if have := tc.call.HasArgs(); have != tc.want {
			t.Errorf("%s.HasArgs(): want %t; have %t", tc.call, tc.want, have)
		}
	}
}

func TestWasCalledWith(t *testing.T) {
	t.Parallel()

	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}

	reg, _ := newRegistry(t)
	r := reg.New("grid")
	r.Record("foo", map[string]interface{}{"a": 1})
	r.Record("bar", recorder.NoArgs)
	r.Record("move", point{X: 1, Y: 2})
	r.Record("reset", nil)
	r.Record("set", []interface{}{"kick", 3, true})
	r.Record("empty", map[string]interface{}{})

	testCases := []struct {
		name     string
		method   string
		expected interface{}
		match    bool
	}{
		{"no arguments", "bar", recorder.NoArgs, true},
		{"equal map", "foo", map[string]interface{}{"a": 1}, true},
		{"numeric type does not matter", "foo", map[string]float64{"a": 1}, true},
		{"struct equals map with same fields", "move", map[string]int{"y": 2, "x": 1}, true},
		{"struct equals struct", "move", point{X: 1, Y: 2}, true},
		{"explicit nil", "reset", nil, true},
		{"sequence", "set", []interface{}{"kick", 3.0, true}, true},
		{"empty map", "empty", map[string]interface{}{}, true},
		{"different value", "foo", map[string]interface{}{"a": 2}, false},
		{"extra key", "foo", map[string]interface{}{"a": 1, "b": 1}, false},
		{"no arguments does not match arguments", "foo", recorder.NoArgs, false},
		{"arguments do not match no arguments", "bar", map[string]interface{}{}, false},
		{"nil does not match no arguments", "bar", nil, false},
		{"no arguments does not match nil", "reset", recorder.NoArgs, false},
		{"empty map is not nil", "empty", nil, false},
		{"sequence order matters", "set", []interface{}{3, "kick", true}, false},
		{"unknown method", "qux", recorder.NoArgs, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := r.WasCalledWith(tc.method, tc.expected)
			if tc.match && err != nil {
				t.Fatalf("WasCalledWith(%q, %v): unexpected error: %v", tc.method, tc.expected, err)
			}
			if !tc.match && !errors.Is(err, recorder.ErrNotCalled) {
				t.Fatalf("WasCalledWith(%q, %v): want %v; have %v", tc.method, tc.expected, recorder.ErrNotCalled, err)
			}
		})
	}
}

func TestWasCalledWithUnencodableArgs(t *testing.T) {
	t.Parallel()

	ch := make(chan int)
	reg, _ := newRegistry(t)
	r := reg.New("stream")
	r.Record("subscribe", ch)

	if err := r.WasCalledWith("subscribe", ch); err != nil {
		t.Errorf("WasCalledWith(...): unexpected error: %v", err)
	}
	if err := r.WasCalledWith("subscribe", make(chan int)); err == nil {
		t.Error("WasCalledWith(...): want error for a different channel")
	}
}

func TestWasCalledWithFailureMessage(t *testing.T) {
	t.Parallel()

	reg, _ := newRegistry(t)
	r := reg.New("panel", recorder.WithName("Panel"))
	r.Record("foo", map[string]interface{}{"a": 1})
	r.Record("bar", recorder.NoArgs)

	err := r.WasCalledWith("foo", map[string]interface{}{"a": 2})
	if err == nil {
		t.Fatal("WasCalledWith(...): want error")
	}

	var aerr *recorder.AssertionError
	if !errors.As(err, &aerr) {
		t.Fatalf("want *recorder.AssertionError; have %T", err)
	}
	if aerr.Method != "foo" || len(aerr.Calls) != 2 {
		t.Errorf("AssertionError: want method foo and 2 calls; have %q and %d", aerr.Method, len(aerr.Calls))
	}

	want := "recorder Panel: expected call not recorded: foo with arguments {\"a\":2}; recorded calls:" +
		"\n\t1. foo with arguments {\"a\":1}" +
		"\n\t2. bar with arguments <no arguments>"
	if have := err.Error(); have != want {
		t.Errorf("Error():\nwant %q\nhave %q", want, have)
	}
}

func TestWasCalledWithNoCalls(t *testing.T) {
	t.Parallel()

	reg, _ := newRegistry(t)
	err := reg.New("idle").WasCalledWith("start", recorder.NoArgs)
	if err == nil {
		t.Fatal("WasCalledWith(...): want error")
	}
	if !strings.HasSuffix(err.Error(), "start with arguments <no arguments>; no calls recorded") {
		t.Errorf("Error(): unexpected message %q", err)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	reg, _ := newRegistry(t)
	r := reg.New("transport")
	r.Record("play", recorder.NoArgs)
	if err := r.WasCalledWith("play", recorder.NoArgs); err != nil {
		t.Fatal(err)
	}

	r.Clear()

	if have := r.CallCount(); have != 0 {
		t.Errorf("CallCount(): want 0; have %d", have)
	}
	if err := r.WasCalledWith("play", recorder.NoArgs); !errors.Is(err, recorder.ErrNotCalled) {
		t.Errorf("WasCalledWith(...): want %v after Clear; have %v", recorder.ErrNotCalled, err)
	}
	if have, ok := reg.Lookup("transport"); !ok || have != r {
		t.Error("Lookup(...): Clear must not affect registration")
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	t.Parallel()

	reg, _ := newRegistry(t)
	first := reg.New("mixer")
	second := reg.New("mixer")

	have, ok := reg.Lookup("mixer")
	if !ok || have != second {
		t.Fatal("Lookup(...): want the second recorder")
	}
	if reg.Len() != 1 {
		t.Errorf("Len(): want 1; have %d", reg.Len())
	}

	first.Record("mute", recorder.NoArgs)
	if first.CallCount() != 1 || second.CallCount() != 0 {
		t.Errorf("histories are not independent: first %d, second %d", first.CallCount(), second.CallCount())
	}

	if _, ok := reg.Lookup("unknown"); ok {
		t.Error("Lookup(unknown): want not found")
	}
}

func TestRegistryGeneratedIdentity(t *testing.T) {
	t.Parallel()

	reg, _ := newRegistry(t)
	a, b := reg.New(""), reg.New("")

	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("want distinct generated identities; have %q and %q", a.ID(), b.ID())
	}
	if a.Name() != a.ID() {
		t.Errorf("Name(): want identity %q; have %q", a.ID(), a.Name())
	}
	if have, ok := reg.Lookup(a.ID()); !ok || have != a {
		t.Error("Lookup(...): generated identity not registered")
	}
}

func TestRecordingSink(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	sink := doc.Create("recording")
	clock := time.Date(2025, 6, 7, 8, 9, 10, 11000000, time.Local)
	reg, hook := newRegistry(t,
		recorder.WithDocument(doc),
		recorder.WithClock(func() time.Time { return clock }),
	)

	if reg.SetRecordingSink("missing") {
		t.Fatal("SetRecordingSink(missing): want false")
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel {
		t.Errorf("want a console warning about the missing sink; have %v", e)
	}
	if !reg.SetRecordingSink("recording") {
		t.Fatal("SetRecordingSink(recording): want true")
	}

	r := reg.New("pad", recorder.WithName("Pad"))
	r.Record("hit", map[string]interface{}{"velocity": 90})
	r.Record("release", recorder.NoArgs)

	want := "[08:09:10.011] [Pad] hit({\"velocity\":90})\n" +
		"[08:09:10.011] [Pad] release()\n"
	if have := sink.Text(); have != want {
		t.Errorf("sink text:\nwant %q\nhave %q", want, have)
	}

	r.Record("render", map[string]interface{}{"tpl": "<b>&</b>"})
	if want := "[08:09:10.011] [Pad] render({\"tpl\":\"<b>&</b>\"})\n"; !strings.HasSuffix(sink.Text(), want) {
		t.Errorf("markup must be written verbatim: want suffix %q; have %q", want, sink.Text())
	}
	if e := hook.LastEntry(); e == nil || e.Message != `[Pad] render({"tpl":"<b>&</b>"})` {
		t.Errorf("console line: have %v", e)
	}

	if reg.SetRecordingSink("missing") {
		t.Fatal("SetRecordingSink(missing): want false")
	}
	r.Record("hit", recorder.NoArgs)
	if !strings.HasSuffix(sink.Text(), "[Pad] hit()\n") {
		t.Errorf("prior sink was not kept: %q", sink.Text())
	}
}

// failingElement fails every operation.
type failingElement struct{ host.Element }

func (failingElement) ID() string              { return "failing" }
func (failingElement) AppendText(string) error { return errors.New("append failed") }
func (failingElement) Clear() error            { return errors.New("clear failed") }

type failingDocument struct{}

func (failingDocument) ElementByID(string) (host.Element, bool) { return failingElement{}, true }

func TestRecordingSinkFailuresDoNotAffectHistory(t *testing.T) {
	t.Parallel()

	reg, hook := newRegistry(t, recorder.WithDocument(failingDocument{}))
	reg.SetRecordingSink("failing")

	r := reg.New("pad")
	r.Record("hit", recorder.NoArgs)

	if r.CallCount() != 1 {
		t.Errorf("CallCount(): want 1; have %d", r.CallCount())
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel {
		t.Errorf("want the sink failure on the console error channel; have %v", e)
	}

	reg.ResetAll()
	if e := hook.LastEntry(); e == nil || !strings.Contains(e.Message, "clear failed") {
		t.Errorf("want the clear failure on the console; have %v", e)
	}
}

func TestResetAll(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	sink := doc.Create("recording")
	reg, _ := newRegistry(t, recorder.WithDocument(doc))
	reg.SetRecordingSink("recording")

	a := reg.New("a")
	b := reg.New("b")
	a.Record("one", recorder.NoArgs)
	b.Record("two", recorder.NoArgs)

	reg.ResetAll()

	if sink.Text() != "" {
		t.Errorf("sink text: want empty after ResetAll; have %q", sink.Text())
	}
	if reg.Len() != 0 {
		t.Errorf("Len(): want 0; have %d", reg.Len())
	}
	for _, id := range []string{"a", "b"} {
		if _, ok := reg.Lookup(id); ok {
			t.Errorf("Lookup(%q): want not found after ResetAll", id)
		}
	}

	// Held references remain valid.
	if err := a.WasCalledWith("one", recorder.NoArgs); err != nil {
		t.Errorf("held recorder lost its history: %v", err)
	}
	a.Record("three", recorder.NoArgs)
	if a.CallCount() != 2 {
		t.Errorf("CallCount(): want 2; have %d", a.CallCount())
	}
	if !strings.HasSuffix(sink.Text(), "[a] three()\n") {
		t.Errorf("sink must stay installed after ResetAll; have %q", sink.Text())
	}
}

func TestResetAllWithoutSink(t *testing.T) {
	t.Parallel()

	reg, hook := newRegistry(t)
	reg.New("a")
	hook.Reset()

	reg.ResetAll()

	if reg.Len() != 0 {
		t.Errorf("Len(): want 0; have %d", reg.Len())
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("console: want no output; have %v", hook.AllEntries())
	}
}

func TestRegistryMetrics(t *testing.T) {
	t.Parallel()

	reg, _ := newRegistry(t)
	r := reg.New("a")
	r.Record("x", recorder.NoArgs)
	r.Record("y", recorder.NoArgs)
	_ = r.WasCalledWith("z", recorder.NoArgs)
	reg.ResetAll()

	collectors := reg.Metrics()
	if len(collectors) != 3 {
		t.Fatalf("Metrics(): want 3 collectors; have %d", len(collectors))
	}
	want := []float64{2, 1, 1}
	for i, c := range collectors {
		if have := testutil.ToFloat64(c); have != want[i] {
			t.Errorf("collector %d: want %v; have %v", i, want[i], have)
		}
	}
}

func TestAssertCalledWith(t *testing.T) {
	t.Parallel()

	reg, _ := newRegistry(t)
	r := reg.New("a")
	r.Record("x", []int{1, 2})

	recorder.AssertCalledWith(t, r, "x", []int{1, 2})
}

func TestRecordConcurrent(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	sink := doc.Create("recording")
	reg, _ := newRegistry(t, recorder.WithDocument(doc))
	reg.SetRecordingSink("recording")
	r := reg.New("busy")

	const workers, calls = 8, 100
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < calls; i++ {
				r.Record("tick", w*calls+i)
			}
		}(w)
	}
	wg.Wait()

	history := r.Calls()
	if have := len(history); have != workers*calls {
		t.Fatalf("CallCount(): want %d; have %d", workers*calls, have)
	}

	lines := strings.Split(strings.TrimSuffix(sink.Text(), "\n"), "\n")
	if len(lines) != len(history) {
		t.Fatalf("sink lines: want %d; have %d", len(history), len(lines))
	}
	for i, c := range history {
		if want := "] [busy] " + c.String(); !strings.HasSuffix(lines[i], want) {
			t.Fatalf("sink line %d: want suffix %q; have %q", i, want, lines[i])
		}
	}
}
