// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import "github.com/Pich78/percussion-studio-sub002/pkg/logging"

// consoleCall is a single call made against a testConsole.
type consoleCall struct {
	Channel string
	Args    []interface{}
}

// testConsole records the calls made against it.
type testConsole struct {
	calls []consoleCall
}

var _ logging.Console = (*testConsole)(nil)

func (c *testConsole) record(channel string, args []interface{}) {
	c.calls = append(c.calls, consoleCall{Channel: channel, Args: args})
}

func (c *testConsole) Debug(args ...interface{}) { c.record(logging.ChannelDebug, args) }
func (c *testConsole) Info(args ...interface{})  { c.record(logging.ChannelInfo, args) }
func (c *testConsole) Warn(args ...interface{})  { c.record(logging.ChannelWarn, args) }
func (c *testConsole) Error(args ...interface{}) { c.record(logging.ChannelError, args) }
func (c *testConsole) Log(args ...interface{})   { c.record(logging.ChannelLog, args) }

func (c *testConsole) reset() { c.calls = nil }
