// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package collect records the external files a host tool touches and
// materializes a self-contained copy of them below a private root directory.
//
// Files are registered with [Collector.AddFile] while the tool runs and
// copied in a single pass with [Collector.CopyFiles] once collection is done.
// Each file's directory is canonicalized to its symlink-free real path, so
// the copies mirror the real locations on disk while the mapping table keeps
// the paths exactly as they were referenced. The mapping table can later
// drive a virtual filesystem overlay that presents the copies at the original
// paths, letting the tool be re-run against the bundle.
package collect
