// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/Pich78/percussion-studio-sub002/pkg/metrics"
	"github.com/Pich78/percussion-studio-sub002/pkg/scenario"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func (c *command) initPlayCmd() {
	cmd := &cobra.Command{
		Use:   "play <scenario.yaml>",
		Short: "Run a scenario of logger and recorder steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			f, err := c.fs.Open(args[0])
			if err != nil {
				return fmt.Errorf("open scenario: %w", err)
			}
			sc, err := scenario.Parse(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			runner := scenario.NewRunner(c.newConsole(cmd))
			var merr *multierror.Error
			if err := runner.Run(sc); err != nil {
				merr = multierror.Append(merr, err)
			}

			if c.config.GetBool(optionNameMetrics) {
				r := metrics.NewRegistry()
				metrics.MustRegister(r, runner.Metrics, runner.Registry)
				if err := metrics.WriteText(cmd.OutOrStdout(), r); err != nil {
					merr = multierror.Append(merr, err)
				}
			}
			return merr.ErrorOrNil()
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.config.BindPFlags(cmd.Flags())
		},
	}

	cmd.Flags().Bool(optionNameMetrics, false, "print the collected metrics after the scenario has run")

	c.root.AddCommand(cmd)
}
