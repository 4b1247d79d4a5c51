// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command nodegen renders code generation templates for the descriptors of
// AST nodes and diagnostic messages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool

	logger *zap.Logger
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nodegen",
		Short: "Render code generation templates for AST nodes and messages",
		Long: `nodegen renders templates that iterate over the nodes and the messages
declared in one or more schema files, and over their fields.

Templates are written with braces, {{ helper node-name }}, or with tags,
<helper node-name>. The syntax is detected from the template if not given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			config.Encoding = "console"
			config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	root.AddCommand(
		newRenderCmd(),
		newCheckCmd(),
		newHelpersCmd(),
		newWatchCmd(),
		newRunCmd(),
	)
	return root
}
