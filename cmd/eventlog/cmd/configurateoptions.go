// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func (c *command) initConfigurateOptionsCmd() {
	c.root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print configuration options",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := yaml.Marshal(c.config.AllSettings())
			if err != nil {
				return err
			}
			cmd.Print(string(d))
			return nil
		},
	})
}
