// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Pich78/percussion-studio-sub002/pkg/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	optionNameLevel           = "level"
	optionNameSource          = "source"
	optionNameMethod          = "method"
	optionNameFeature         = "feature"
	optionNameMessage         = "message"
	optionNameExtra           = "extra"
	optionNameLogLevel        = "log-level"
	optionNameURL             = "url"
	optionNameTarget          = "target"
	optionNameTargetDir       = "target-dir"
	optionNameJSONExtraStrict = "json-extra-strict"
	optionNameMetrics         = "metrics"
	optionNameTextFormat      = "text-format"
)

func init() {
	cobra.EnableCommandSorting = false
}

type command struct {
	root    *cobra.Command
	config  *viper.Viper
	fs      afero.Fs
	cfgFile string
	homeDir string
}

type option func(*command)

func newCommand(opts ...option) (c *command, err error) {
	c = &command{
		root: &cobra.Command{
			Use:           "eventlog",
			Short:         "Level-gated event logger and call recorder",
			SilenceErrors: true,
			SilenceUsage:  true,
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				return c.initConfig()
			},
		},
	}

	for _, o := range opts {
		o(c)
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	// Find home directory.
	if err := c.setHomeDir(); err != nil {
		return nil, err
	}

	c.initGlobalFlags()

	c.initEmitCmd()
	c.initPlayCmd()
	c.initConfigurateOptionsCmd()
	c.initVersionCmd()

	return c, nil
}

func (c *command) Execute() (err error) {
	return c.root.Execute()
}

// Execute parses command line arguments and runs appropriate functions.
func Execute() (err error) {
	c, err := newCommand()
	if err != nil {
		return err
	}
	return c.Execute()
}

func (c *command) initGlobalFlags() {
	globalFlags := c.root.PersistentFlags()
	globalFlags.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.eventlog.yaml)")
	globalFlags.Bool(optionNameTextFormat, false, "decorate console lines with timestamp, level and channel")
}

func (c *command) initConfig() (err error) {
	config := viper.New()
	config.SetFs(c.fs)
	configName := ".eventlog"
	if c.cfgFile != "" {
		// Use config file from the flag.
		config.SetConfigFile(c.cfgFile)
	} else {
		// Search config in home directory with name ".eventlog" (without extension).
		config.AddConfigPath(c.homeDir)
		config.SetConfigName(configName)
	}

	// Environment
	config.SetEnvPrefix("eventlog")
	config.AutomaticEnv() // read in environment variables that match
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if c.homeDir != "" && c.cfgFile == "" {
		c.cfgFile = filepath.Join(c.homeDir, configName+".yaml")
	}

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		var e viper.ConfigFileNotFoundError
		if !errors.As(err, &e) {
			return err
		}
	}
	if err := config.BindPFlags(c.root.PersistentFlags()); err != nil {
		return err
	}
	c.config = config
	return nil
}

func (c *command) setHomeDir() (err error) {
	if c.homeDir != "" {
		return
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.homeDir = dir
	return nil
}

// newConsole returns the console all commands write their output to.
func (c *command) newConsole(cmd *cobra.Command) logging.Console {
	var opts []logging.Option
	if c.config.GetBool(optionNameTextFormat) {
		opts = append(opts, logging.WithTextFormatter())
	}
	return logging.New(cmd.OutOrStdout(), opts...)
}
