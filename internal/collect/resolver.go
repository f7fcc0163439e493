// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package collect

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxSymlinkDepth bounds recursive link resolution so that cyclic links
// terminate instead of recursing forever.
const maxSymlinkDepth = 10

// resolver canonicalizes directory paths to their symlink-free real form.
//
// Every resolved path prefix is cached for the lifetime of the resolver, so
// resolving many files below the same deep directory tree queries the
// filesystem for each directory only once. The cache is never invalidated.
// Collected bundles are point-in-time snapshots, so stale results are
// acceptable.
type resolver struct {
	cache map[string]string
}

func newResolver() *resolver {
	return &resolver{
		cache: make(map[string]string),
	}
}

// resolveDir returns the real path of the given absolute directory path.
//
// The path is resolved prefix by prefix from the root down. Each prefix is
// looked up in the cache first. On a miss the filesystem is queried: symbolic
// links are resolved recursively, everything else resolves to itself.
//
// Resolution never fails. A prefix that cannot be inspected, because it does
// not exist or readlink fails, resolves to itself unchanged.
func (r *resolver) resolveDir(dir string) string {
	return r.resolve(filepath.Clean(dir), maxSymlinkDepth)
}

func (r *resolver) resolve(dir string, depth int) string {
	if resolved, hit := r.cache[dir]; hit {
		return resolved
	}

	sep := string(filepath.Separator)
	resolved := sep

	var prefix strings.Builder

	for _, name := range strings.Split(strings.TrimPrefix(dir, sep), sep) {
		if name == "" {
			continue
		}

		prefix.WriteString(sep)
		prefix.WriteString(name)

		if cached, hit := r.cache[prefix.String()]; hit {
			resolved = cached
			continue
		}

		resolved = r.resolveStep(filepath.Join(resolved, name), depth)
		r.cache[prefix.String()] = resolved
	}

	return resolved
}

// resolveStep resolves a single path element that has already been joined to
// its resolved parent. If the element is a symbolic link, the target is
// re-anchored to the link's containing directory and canonicalized
// recursively.
func (r *resolver) resolveStep(path string, depth int) string {
	if depth == 0 {
		return path
	}

	info, err := os.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return path
	}

	target, err := os.Readlink(path)
	if err != nil {
		return path
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}

	return r.resolve(filepath.Clean(target), depth-1)
}
