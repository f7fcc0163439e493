// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reprofs/reprofs/internal/collect"
	"github.com/reprofs/reprofs/internal/overlay"
)

func newMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount manifest mountpoint",
		Short: "Present a bundle at its original paths via FUSE",
		Long: `Mount serves a collected bundle read-only at the given mountpoint. The
virtual paths of the mapping manifest appear below the mountpoint, each
reading from its copied file, so a tool can be re-run against the bundle.
Mount blocks until the filesystem is unmounted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runMount(args[0], args[1])
		},
	}

	return cmd
}

func runMount(manifestPath, mountpoint string) error {
	manifest, err := collect.ReadManifest(manifestPath)
	if err != nil {
		return err
	}

	fsys, err := overlay.FromMappings(manifest.Entries)
	if err != nil {
		return fmt.Errorf("build overlay: %w", err)
	}

	slog.Info("Serving bundle",
		slog.String("manifest", manifestPath),
		slog.String("mountpoint", mountpoint))

	return overlay.Mount(fsys, mountpoint)
}
