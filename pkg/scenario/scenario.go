// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scenario reads scripted sequences of logger and recorder
// operations from YAML and runs them.
//
// A scenario looks like:
//
//	elements: [event-log, recording]
//	params:
//	  log_level: debug
//	steps:
//	  - init: {}
//	  - target: event-log
//	  - log: {level: info, source: Player, method: play, feature: transport, message: started}
//	  - recorder: {id: panel, name: Panel}
//	  - record: {id: panel, method: select, args: {pad: 3}}
//	  - assert: {id: panel, method: select, args: {pad: 3}}
//	  - reset: true
//
// In record and assert steps an absent args key means the call has no
// arguments, while "args: null" is an explicit null argument.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/Pich78/percussion-studio-sub002/pkg/log"
	"github.com/Pich78/percussion-studio-sub002/pkg/recorder"
	"gopkg.in/yaml.v2"
)

var (
	// ErrUnknownStep is returned for steps that do not hold exactly one operation.
	ErrUnknownStep = errors.New("unknown step")
	// ErrUnknownRecorder is returned when a step names an unregistered recorder.
	ErrUnknownRecorder = errors.New("unknown recorder")
	// ErrUnknownLevel is returned for log steps with an unparsable level.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrInvalidCall is returned for record and assert steps with unknown
	// fields or with an id or method that is not a string.
	ErrInvalidCall = errors.New("invalid call")
)

// Scenario is a parsed scenario file.
type Scenario struct {
	// Elements are created in the document before the first step runs.
	Elements []string `yaml:"elements"`
	// Params are the ambient parameters seen by init steps.
	Params map[string]string `yaml:"params"`
	Steps  []Step            `yaml:"steps"`
}

// Step holds exactly one operation.
type Step struct {
	Init          *log.Config   `yaml:"init"`
	Target        *string       `yaml:"target"`
	Log           *LogStep      `yaml:"log"`
	Recorder      *RecorderStep `yaml:"recorder"`
	Record        *CallStep     `yaml:"record"`
	Assert        *CallStep     `yaml:"assert"`
	Clear         *string       `yaml:"clear"`
	RecordingSink *string       `yaml:"recording_sink"`
	Reset         *bool         `yaml:"reset"`
}

// LogStep emits one event.
type LogStep struct {
	Level   string        `yaml:"level"`
	Source  string        `yaml:"source"`
	Method  string        `yaml:"method"`
	Feature string        `yaml:"feature"`
	Message string        `yaml:"message"`
	Extra   []interface{} `yaml:"extra"`
}

// RecorderStep creates and registers a recorder.
type RecorderStep struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// CallStep records or asserts a call on a registered recorder.
type CallStep struct {
	ID     string
	Method string
	Args   interface{} // recorder.NoArgs if the args key is absent.
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (s *CallStep) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	s.Args = recorder.NoArgs
	for k, v := range raw {
		switch k {
		case "id", "method":
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: %s must be a string, have %T", ErrInvalidCall, k, v)
			}
			if k == "id" {
				s.ID = str
			} else {
				s.Method = str
			}
		case "args":
			s.Args = normalize(v)
		default:
			return fmt.Errorf("%w: unknown field %q", ErrInvalidCall, k)
		}
	}
	return nil
}

// Parse reads a scenario from r.
func Parse(r io.Reader) (*Scenario, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i := range s.Steps {
		if s.Steps[i].Log != nil {
			for j, v := range s.Steps[i].Log.Extra {
				s.Steps[i].Log.Extra[j] = normalize(v)
			}
		}
		if n := s.Steps[i].operations(); n != 1 {
			return nil, fmt.Errorf("step %d: %w: want one operation, have %d", i+1, ErrUnknownStep, n)
		}
	}
	return &s, nil
}

// operations returns the number of operations set on the step.
func (s Step) operations() (n int) {
	for _, set := range []bool{
		s.Init != nil,
		s.Target != nil,
		s.Log != nil,
		s.Recorder != nil,
		s.Record != nil,
		s.Assert != nil,
		s.Clear != nil,
		s.RecordingSink != nil,
		s.Reset != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// normalize converts the map[interface{}]interface{} values produced by
// the YAML decoder into map[string]interface{}, so they can be encoded as JSON.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	}
	return v
}
