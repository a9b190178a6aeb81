// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 layout of event timestamps.
// Timestamps are always rendered in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Event is a single structured log event.
type Event struct {
	Time    time.Time
	Level   Severity
	Source  string // Logical emitter name.
	Method  string // Logical operation name.
	Feature string // Free-form tag.
	Message string
	Extra   []interface{}
}

// Line renders the event as a single line:
//
//	[<timestamp>][<LEVEL>][<source>][<method>][<feature>] - <message>
//
// Tools that scrape log text rely on this shape.
func (e Event) Line() string {
	var b strings.Builder
	b.Grow(len(TimestampLayout) + len(e.Source) + len(e.Method) + len(e.Feature) + len(e.Message) + 24)
	for _, f := range []string{
		e.Time.UTC().Format(TimestampLayout),
		strings.ToUpper(e.Level.String()),
		e.Source,
		e.Method,
		e.Feature,
	} {
		b.WriteByte('[')
		b.WriteString(f)
		b.WriteByte(']')
	}
	b.WriteString(" - ")
	b.WriteString(e.Message)
	return b.String()
}

// Detail renders the extra values as 2-space indented JSON.
// It returns an empty string if there are no extra values.
// HTML characters are kept as they are. Values that cannot
// be encoded as JSON are rendered with fmt.
func (e Event) Detail() string {
	if len(e.Extra) == 0 {
		return ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e.Extra); err != nil {
		return fmt.Sprintf("%+v", e.Extra)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
