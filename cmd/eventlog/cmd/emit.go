// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Pich78/percussion-studio-sub002/pkg/host"
	"github.com/Pich78/percussion-studio-sub002/pkg/log"
	"github.com/Pich78/percussion-studio-sub002/pkg/scenario"
	"github.com/spf13/cobra"
)

func (c *command) initEmitCmd() {
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Emit a single event",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) > 0 {
				return cmd.Help()
			}

			level, err := scenario.ParseLevel(c.config.GetString(optionNameLevel))
			if err != nil {
				return err
			}

			rawExtra, err := cmd.Flags().GetStringArray(optionNameExtra)
			if err != nil {
				return err
			}
			extra, err := parseExtra(rawExtra, c.config.GetBool(optionNameJSONExtraStrict))
			if err != nil {
				return err
			}

			opts := []log.Option{log.WithConsole(c.newConsole(cmd))}
			if rawURL := c.config.GetString(optionNameURL); rawURL != "" {
				u, err := url.Parse(rawURL)
				if err != nil {
					return fmt.Errorf("parse url: %w", err)
				}
				opts = append(opts, log.WithParams(u.Query()))
			}
			if dir := c.config.GetString(optionNameTargetDir); dir != "" {
				opts = append(opts, log.WithDocument(host.NewFSDocument(c.fs, dir)))
			}
			logger := log.New(opts...)

			logger.Init(log.Config{Level: c.config.GetString(optionNameLogLevel)})
			if target := c.config.GetString(optionNameTarget); target != "" {
				logger.SetTarget(target)
			}

			logger.LogEvent(
				level,
				c.config.GetString(optionNameSource),
				c.config.GetString(optionNameMethod),
				c.config.GetString(optionNameFeature),
				c.config.GetString(optionNameMessage),
				extra,
			)
			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.config.BindPFlags(cmd.Flags())
		},
	}

	cmd.Flags().String(optionNameLevel, "info", "event severity: debug, info, warn, error or a number")
	cmd.Flags().String(optionNameSource, "", "logical emitter name")
	cmd.Flags().String(optionNameMethod, "", "logical operation name")
	cmd.Flags().String(optionNameFeature, "", "free-form tag")
	cmd.Flags().String(optionNameMessage, "", "event message")
	cmd.Flags().StringArray(optionNameExtra, nil, "extra JSON value attached to the event, can be repeated")
	cmd.Flags().String(optionNameLogLevel, "", "logger threshold, when empty the log_level query parameter of --url is used")
	cmd.Flags().String(optionNameURL, "", "location whose query parameters are the ambient configuration")
	cmd.Flags().String(optionNameTarget, "", "identifier of the element events are written to")
	cmd.Flags().String(optionNameTargetDir, ".", "directory holding the <id>.log files that back target elements")
	cmd.Flags().Bool(optionNameJSONExtraStrict, false, "fail on --extra values that are not valid JSON instead of passing them as strings")

	c.root.AddCommand(cmd)
}

// parseExtra decodes every raw value as JSON. Invalid values are kept as
// plain strings, unless strict is set in which case an error is returned.
func parseExtra(raw []string, strict bool) ([]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	extra := make([]interface{}, 0, len(raw))
	for i, r := range raw {
		var v interface{}
		if err := json.Unmarshal([]byte(r), &v); err != nil {
			if strict {
				return nil, fmt.Errorf("extra %d: %w", i+1, err)
			}
			v = r
		}
		extra = append(extra, v)
	}
	return extra, nil
}
