// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/spf13/cobra"
)

// Execute runs the reprofs root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand creates the reprofs root command with all subcommands
// attached.
func NewRootCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "reprofs",
		Short: "Reproducer file bundle collector",
		Long: `reprofs copies the external files a tool run touched into a
self-contained bundle and keeps a mapping from the original paths to the
copies, so the run can be reproduced later against the bundle alone.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), debug)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newCollectCommand(),
		newPackCommand(),
		newMountCommand(),
	)

	return cmd
}
