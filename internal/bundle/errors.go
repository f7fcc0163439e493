// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import "errors"

// ErrNotRegularFile is returned if a source file is not a regular file.
var ErrNotRegularFile = errors.New("source is not a regular file")
