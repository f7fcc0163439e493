// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package collect

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

const dirMode = 0o755

// SkippedFile records a copy failure that was tolerated because stop-on-error
// was disabled.
type SkippedFile struct {
	Source string
	Err    error
}

// CopyFiles copies every registered file to its destination below the root.
//
// Parent directories are created as needed and existing destinations are
// overwritten, so re-running after a prior full or partial run is safe.
//
// With stopOnError set, the first failing entry aborts the run and its error
// is returned. Files copied before the failure stay in place. Without it,
// failing entries are recorded for [Collector.Skipped] and the run continues;
// a vanished source file costs one bundle entry, not the whole bundle.
func (c *Collector) CopyFiles(stopOnError bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.skipped = nil

	for _, entry := range c.entries {
		err := copyFile(entry.Source, entry.Dest)
		if err == nil {
			continue
		}

		if stopOnError {
			return fmt.Errorf("copy %s: %w", entry.Source, err)
		}

		slog.Debug("Skip file",
			slog.String("source", entry.Source),
			slog.Any("error", err))

		c.skipped = append(c.skipped, SkippedFile{
			Source: entry.Source,
			Err:    err,
		})
	}

	return nil
}

// Skipped returns the entries skipped by the most recent [Collector.CopyFiles]
// run without stop-on-error.
func (c *Collector) Skipped() []SkippedFile {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.skipped)
}

// copyFile copies src to dst, creating parent directories and preserving the
// source's permission bits. An existing destination is truncated.
func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(dst), dirMode)
	if err != nil {
		return err
	}

	perm := info.Mode().Perm()

	dest, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	_, err = io.Copy(dest, source)
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return err
	}

	// The create mode is subject to the umask and an existing destination
	// keeps its old bits, so set the exact bits afterwards.
	return os.Chmod(dst, perm)
}
