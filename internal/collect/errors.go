// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package collect

import "errors"

var (
	// ErrEmptyRoot is returned if a collector is created without a root
	// directory.
	ErrEmptyRoot = errors.New("root must not be empty")

	// ErrRootNotAbsolute is returned if the given root directory is not an
	// absolute path.
	ErrRootNotAbsolute = errors.New("root must be an absolute path")

	// ErrManifestVersion is returned if a manifest has an unknown version.
	ErrManifestVersion = errors.New("unsupported manifest version")
)
