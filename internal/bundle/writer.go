// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import (
	"fmt"
	"io/fs"
)

const defaultFileMode = 0o755

// Writer defines the bundle archive writer interface.
type Writer interface {
	WriteRegular(path string, source fs.File, mode fs.FileMode) error
	WriteDirectory(path string) error
}

// Write walks fsys and writes all directories and regular files to the given
// [Writer].
func Write(writer Writer, fsys fs.FS) error {
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == "." {
			return nil
		}

		if entry.IsDir() {
			return writer.WriteDirectory(path)
		}

		source, err := fsys.Open(path)
		if err != nil {
			return err //nolint:wrapcheck
		}
		defer source.Close()

		return writer.WriteRegular(path, source, defaultFileMode)
	})
	if err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}

	return nil
}
