// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reprofs/reprofs/internal/collect"
)

var (
	okColor   = color.New(color.FgGreen)
	skipColor = color.New(color.FgYellow)
)

func newCollectCommand() *cobra.Command {
	var (
		rootDir      string
		manifestPath string
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "collect [flags] [file...]",
		Short: "Copy the given files into a reproducer bundle",
		Long: `Collect copies the given files below the bundle root, mirroring their
real, symlink-free paths, and writes the virtual-to-real mapping manifest.
File paths are read from the arguments, or from stdin, one per line, if no
arguments are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd, args, rootDir, manifestPath, strict)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "",
		"bundle root directory (required)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "",
		"write the mapping manifest to this file")
	cmd.Flags().BoolVar(&strict, "strict", false,
		"fail on the first file that cannot be copied")

	_ = cmd.MarkFlagRequired("root")

	return cmd
}

func runCollect(
	cmd *cobra.Command,
	args []string,
	rootDir string,
	manifestPath string,
	strict bool,
) error {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("absolute root: %w", err)
	}

	collector, err := collect.New(absRoot)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths, err = readPaths(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	for _, path := range paths {
		collector.AddFile(path)
	}

	err = collector.CopyFiles(strict)
	if err != nil {
		return err
	}

	if manifestPath != "" {
		err = collect.WriteManifest(manifestPath, collector)
		if err != nil {
			return err
		}
	}

	printSummary(cmd.OutOrStdout(), collector)

	return nil
}

func readPaths(r io.Reader) ([]string, error) {
	var paths []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		paths = append(paths, line)
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return paths, nil
}

func printSummary(w io.Writer, collector *collect.Collector) {
	skipped := collector.Skipped()
	copied := len(collector.CopyEntries()) - len(skipped)

	fmt.Fprintf(w, "%s %d files copied to %s\n",
		okColor.Sprint("collected:"), copied, collector.Root())

	for _, skip := range skipped {
		fmt.Fprintf(w, "%s %s: %v\n",
			skipColor.Sprint("skipped:"), skip.Source, skip.Err)
	}
}
