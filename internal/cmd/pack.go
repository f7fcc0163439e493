// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reprofs/reprofs/internal/bundle"
	"github.com/reprofs/reprofs/internal/collect"
	"github.com/reprofs/reprofs/internal/overlay"
)

func newPackCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pack [flags] manifest",
		Short: "Export a collected bundle as a cpio archive",
		Long: `Pack reads a mapping manifest and writes all bundle files into a single
cpio archive. Entries appear under their virtual paths, so the archive can be
unpacked and inspected anywhere without the manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPack(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "bundle.cpio",
		"archive file to write")

	return cmd
}

func runPack(manifestPath, output string) error {
	manifest, err := collect.ReadManifest(manifestPath)
	if err != nil {
		return err
	}

	fsys, err := overlay.FromMappings(manifest.Entries)
	if err != nil {
		return fmt.Errorf("build overlay: %w", err)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	writer := bundle.NewCPIOWriter(file)

	err = bundle.Write(writer, fsys)
	if err != nil {
		_ = writer.Close()
		_ = file.Close()

		return err
	}

	err = writer.Close()
	if err != nil {
		_ = file.Close()
		return err
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}
