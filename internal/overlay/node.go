// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package overlay

import (
	"io"
	"io/fs"
	"os"
	"slices"
	"time"
)

const defaultFileMode = 0o755

// node is a single overlay tree entry.
type node interface {
	open(entry dirEntry) (fs.File, error)
	mode() fs.FileMode
}

var (
	_ fs.FileInfo = (*fileInfo)(nil)
	_ fs.DirEntry = (*fileInfo)(nil)
	_ fs.DirEntry = (*dirEntry)(nil)
)

type dirEntry struct {
	name string
	node node
}

func (e *dirEntry) Name() string      { return e.name }
func (e *dirEntry) Type() fs.FileMode { return e.node.mode().Type() }
func (e *dirEntry) IsDir() bool       { return e.node.mode().IsDir() }
func (e *dirEntry) String() string    { return fs.FormatDirEntry(e) }

func (e *dirEntry) Info() (fs.FileInfo, error) {
	file, err := e.node.open(*e)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return file.Stat() //nolint:wrapcheck
}

type fileInfo struct {
	dirEntry

	size    int64
	modTime time.Time
}

func (i *fileInfo) Size() int64        { return i.size }
func (i *fileInfo) Mode() fs.FileMode  { return i.node.mode() }
func (i *fileInfo) ModTime() time.Time { return i.modTime }
func (i *fileInfo) Sys() any           { return nil }
func (i *fileInfo) String() string     { return fs.FormatFileInfo(i) }

var (
	_ fs.File        = (*openFile)(nil)
	_ fs.ReadDirFile = (*openFile)(nil)
)

type openFile struct {
	info    fileInfo
	reader  io.Reader
	entries []fs.DirEntry
	offset  int
}

// Stat implements [fs.File].
func (f *openFile) Stat() (fs.FileInfo, error) {
	return &f.info, nil
}

// Read implements [fs.File].
func (f *openFile) Read(b []byte) (int, error) {
	if f.reader == nil {
		return 0, ErrFileInvalid
	}

	return f.reader.Read(b) //nolint:wrapcheck
}

// Close implements [fs.File].
func (f *openFile) Close() error {
	closer, ok := f.reader.(io.Closer)
	if !ok {
		return nil
	}

	return closer.Close() //nolint:wrapcheck
}

// ReadDir implements [fs.ReadDirFile].
func (f *openFile) ReadDir(count int) ([]fs.DirEntry, error) {
	if !f.info.IsDir() {
		return nil, ErrFileNotDir
	}

	start := f.offset
	end := len(f.entries)
	available := end - start

	if available == 0 && count > 0 {
		return nil, io.EOF
	}

	if count > 0 && available > count {
		end = start + count
	}

	f.offset = end

	return f.entries[start:end], nil
}

var _ node = (*mappedFile)(nil)

// mappedFile is a regular overlay file whose content lives in the bundle
// copy. The backing file is opened lazily.
type mappedFile struct {
	backing string
}

func (*mappedFile) mode() fs.FileMode {
	return defaultFileMode
}

func (f *mappedFile) open(entry dirEntry) (fs.File, error) {
	backing, err := os.Open(f.backing)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	info, err := backing.Stat()
	if err != nil {
		_ = backing.Close()
		return nil, err //nolint:wrapcheck
	}

	if !info.Mode().IsRegular() {
		_ = backing.Close()
		return nil, ErrFileNotRegular
	}

	openFile := &openFile{
		info: fileInfo{
			dirEntry: entry,
			size:     info.Size(),
			modTime:  info.ModTime(),
		},
		reader: backing,
	}

	return openFile, nil
}

var _ node = (*directory)(nil)

type directory map[string]node

func (*directory) mode() fs.FileMode {
	return defaultFileMode | fs.ModeDir
}

func (d *directory) open(entry dirEntry) (fs.File, error) {
	openFile := &openFile{
		info: fileInfo{
			dirEntry: entry,
		},
		entries: d.entries(),
	}

	return openFile, nil
}

func (d *directory) entries() []fs.DirEntry {
	entries := make([]fs.DirEntry, 0, len(*d))

	names := make([]string, 0, len(*d))
	for name := range *d {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		entries = append(entries, &dirEntry{
			name: name,
			node: (*d)[name],
		})
	}

	return entries
}

func (d *directory) add(name string, n node) error {
	if name == "." {
		return ErrFileExist
	}

	_, exists := (*d)[name]
	if exists {
		return ErrFileExist
	}

	(*d)[name] = n

	return nil
}
