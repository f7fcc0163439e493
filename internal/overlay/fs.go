// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package overlay

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/reprofs/reprofs/internal/collect"
)

var _ fs.FS = (*FS)(nil)

// FS is an in-memory [fs.FS] that presents bundle copies at their original
// virtual paths.
//
// Virtual paths become regular files backed by their copied destination,
// added with [FS.Map] or built in bulk with [FromMappings]. Use [FS.Mkdir] or
// [FS.MkdirAll] to create any required directories beforehand.
type FS struct {
	root directory
}

// New creates a new empty [FS].
func New() *FS {
	return &FS{
		root: make(directory),
	}
}

// FromMappings builds an [FS] from a bundle's mapping table.
//
// Every virtual path becomes a regular file that reads from the entry's real
// (copied) path, with all parent directories created on the way.
func FromMappings(entries []collect.MappingEntry) (*FS, error) {
	fsys := New()

	for _, entry := range entries {
		name := clean(entry.VPath)

		err := fsys.MkdirAll(path.Dir(name))
		if err != nil {
			return nil, err
		}

		err = fsys.Map(name, entry.RPath)
		if err != nil {
			return nil, err
		}
	}

	return fsys, nil
}

// Open opens the named file.
//
// It returns a [fs.PathError] in case of errors.
func (fsys *FS) Open(name string) (fs.File, error) {
	dEntry, err := fsys.find(name)
	if err != nil {
		return nil, &fs.PathError{
			Op:   "open",
			Path: name,
			Err:  err,
		}
	}

	return dEntry.node.open(dEntry)
}

// Map adds a regular file with the given name that reads from the backing
// path when opened.
//
// It returns a [fs.PathError] in case of errors.
func (fsys *FS) Map(name, backing string) error {
	err := fsys.addNode(clean(name), &mappedFile{backing: backing})
	if err != nil {
		return &fs.PathError{
			Op:   "map",
			Path: name,
			Err:  err,
		}
	}

	return nil
}

// Mkdir creates a new directory with the given name.
//
// It returns a [fs.PathError] in case of errors.
func (fsys *FS) Mkdir(name string) error {
	newDir := make(directory)

	err := fsys.addNode(clean(name), &newDir)
	if err != nil {
		return &fs.PathError{
			Op:   "mkdir",
			Path: name,
			Err:  err,
		}
	}

	return nil
}

// MkdirAll creates a directory with the given name along with all necessary
// parents.
//
// If the directory exists already, it does nothing and returns nil. It
// returns a [fs.PathError] in case of errors.
func (fsys *FS) MkdirAll(name string) error {
	cleaned := clean(name)

	dEntry, err := fsys.find(cleaned)
	if err == nil {
		if dEntry.IsDir() {
			return nil
		}

		return &fs.PathError{
			Op:   "mkdir",
			Path: name,
			Err:  ErrFileNotDir,
		}
	}

	parent := path.Dir(cleaned)
	if parent != cleaned && parent != "." {
		err = fsys.MkdirAll(parent)
		if err != nil {
			return err
		}
	}

	return fsys.Mkdir(cleaned)
}

func (fsys *FS) addNode(name string, n node) error {
	parent, err := fsys.subDir(path.Dir(name))
	if err != nil {
		return err
	}

	return parent.add(path.Base(name), n)
}

func (fsys *FS) subDir(name string) (*directory, error) {
	dEntry, err := fsys.find(name)
	if err != nil {
		return nil, err
	}

	dir, isDir := dEntry.node.(*directory)
	if !isDir {
		return nil, ErrFileNotDir
	}

	return dir, nil
}

func (fsys *FS) find(name string) (dirEntry, error) {
	dEntry := dirEntry{name: ".", node: &fsys.root}

	if name == "" || name == "." {
		return dEntry, nil
	}

	if !fs.ValidPath(name) {
		return dirEntry{}, ErrFileInvalid
	}

	for _, elem := range strings.Split(name, "/") {
		dir, isDir := dEntry.node.(*directory)
		if !isDir {
			return dirEntry{}, ErrFileNotExist
		}

		next, exists := (*dir)[elem]
		if !exists {
			return dirEntry{}, ErrFileNotExist
		}

		dEntry = dirEntry{name: elem, node: next}
	}

	return dEntry, nil
}

// clean converts an absolute or OS specific path into an [fs.FS] style
// rooted, slash-separated one.
func clean(name string) string {
	name = path.Clean(filepath.ToSlash(name))
	name = strings.TrimPrefix(name, "/")

	if name == "" {
		return "."
	}

	return name
}
