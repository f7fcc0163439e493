// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package collect

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// CopyEntry describes a single file to copy into the bundle: the symlink-free
// source path and its destination below the collector's root.
type CopyEntry struct {
	Source string
	Dest   string
}

// Collector records external files referenced by a host tool and maps each
// one to a destination below a private root directory.
//
// All recording state is guarded by a mutex, so [Collector.AddFile] may be
// called from multiple goroutines. The copy phase is sequential and is meant
// to run once after collection has finished.
type Collector struct {
	root string

	mu       sync.Mutex
	seen     map[string]struct{}
	resolver *resolver
	entries  []CopyEntry
	copied   map[string]struct{}
	mapping  MappingTable
	skipped  []SkippedFile
}

// New creates a [Collector] that mirrors every added file below root.
//
// The root must be a non-empty absolute path. It is fixed for the lifetime of
// the collector.
func New(root string) (*Collector, error) {
	if root == "" {
		return nil, ErrEmptyRoot
	}

	if !filepath.IsAbs(root) {
		return nil, ErrRootNotAbsolute
	}

	return &Collector{
		root:     filepath.Clean(root),
		seen:     make(map[string]struct{}),
		resolver: newResolver(),
		copied:   make(map[string]struct{}),
	}, nil
}

// Root returns the bundle root directory.
func (c *Collector) Root() string {
	return c.root
}

// AddFile records the given path for inclusion in the bundle.
//
// The path is normalized lexically and recorded as seen. Adding the same
// path again is a no-op. The file's directory is canonicalized so the copy
// destination mirrors the real, symlink-free location, while the mapping
// table keeps the path as it was referenced. Two paths that resolve to the
// same real file get separate mapping entries but a single copy entry.
//
// AddFile performs no write I/O and never fails. Paths that do not exist
// still get a best-effort destination.
func (c *Collector) AddFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	vpath := normalize(path)

	if _, ok := c.seen[vpath]; ok {
		return
	}

	c.seen[vpath] = struct{}{}

	dir, name := filepath.Split(vpath)
	realPath := filepath.Join(c.resolver.resolveDir(dir), name)
	dest := c.rerooted(realPath)

	if _, ok := c.copied[realPath]; !ok {
		c.copied[realPath] = struct{}{}
		c.entries = append(c.entries, CopyEntry{
			Source: realPath,
			Dest:   dest,
		})
	}

	c.mapping.add(vpath, dest)
}

// CopyEntries returns the registered copy entries in the order the real files
// were discovered.
func (c *Collector) CopyEntries() []CopyEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.entries)
}

// Mappings returns the accumulated mapping entries in insertion order.
func (c *Collector) Mappings() []MappingEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mapping.Entries()
}

// rerooted mirrors an absolute path verbatim below the root directory.
func (c *Collector) rerooted(path string) string {
	relPath := strings.TrimPrefix(path, string(filepath.Separator))
	return filepath.Join(c.root, relPath)
}

// normalize returns the lexically cleaned absolute form of path. Dot and
// dot-dot elements are eliminated before any filesystem resolution happens.
func normalize(path string) string {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err == nil {
			path = abs
		}
	}

	return filepath.Clean(path)
}
