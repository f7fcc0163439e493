// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package overlay presents the files of a collected bundle at their original
// virtual paths.
//
// An [FS] is built from a bundle's mapping table. It implements [io/fs.FS]
// for in-process consumers and archive export. For memory efficiency file
// content is not copied into the overlay itself. Opening an overlay file
// opens the copied backing file underneath.
//
// [Mount] additionally serves the overlay read-only through FUSE, so an
// unmodified tool can be re-run against the bundle and see the original
// absolute paths.
package overlay
