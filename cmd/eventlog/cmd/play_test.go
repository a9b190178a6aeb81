// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Pich78/percussion-studio-sub002/cmd/eventlog/cmd"
	"github.com/Pich78/percussion-studio-sub002/pkg/recorder"
	"github.com/spf13/afero"
)

const playScenario = `
steps:
  - init: {level: warn}
  - log: {level: info, source: Player, method: play, feature: transport, message: dropped}
  - log: {level: error, source: Player, method: play, feature: transport, message: failed}
  - recorder: {id: panel, name: Panel}
  - record: {id: panel, method: foo, args: {a: 1}}
  - record: {id: panel, method: bar}
  - assert: {id: panel, method: bar}
`

func writeScenario(t *testing.T, s string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/scenario.yaml", []byte(s), 0644); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestPlayCmd(t *testing.T) {
	var outputBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithArgs("play", "/scenario.yaml", "--metrics"),
		cmd.WithFs(writeScenario(t, playScenario)),
		cmd.WithOutput(&outputBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}

	got := outputBuf.String()
	if strings.Contains(got, "dropped") {
		t.Errorf("event below threshold in output %q", got)
	}
	for _, want := range []string{
		"[ERROR][Player][play][transport] - failed",
		`[Panel] foo({"a":1})`,
		"[Panel] bar()",
		"eventlog_log_error_count 1",
		"eventlog_log_info_count 0",
		"eventlog_recorder_call_count 2",
		"eventlog_recorder_assertion_failure_count 0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}

func TestPlayCmdFailedAssertion(t *testing.T) {
	const s = `
steps:
  - recorder: {id: panel}
  - record: {id: panel, method: foo, args: {a: 1}}
  - assert: {id: panel, method: foo, args: {a: 2}}
`
	err := newCommand(t,
		cmd.WithArgs("play", "/scenario.yaml"),
		cmd.WithFs(writeScenario(t, s)),
		cmd.WithOutput(new(bytes.Buffer)),
	).Execute()
	if !errors.Is(err, recorder.ErrNotCalled) {
		t.Fatalf("want error %v; have %v", recorder.ErrNotCalled, err)
	}
}

func TestPlayCmdMissingFile(t *testing.T) {
	err := newCommand(t,
		cmd.WithArgs("play", "/missing.yaml"),
		cmd.WithFs(afero.NewMemMapFs()),
		cmd.WithOutput(new(bytes.Buffer)),
	).Execute()
	if err == nil {
		t.Fatal("expected error for a missing scenario file")
	}
}
