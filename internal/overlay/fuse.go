// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package overlay

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

// Mount serves the overlay read-only at the given mountpoint.
//
// It blocks until the filesystem is unmounted or the connection is closed.
func Mount(fsys *FS, mountpoint string) error {
	conn, err := fuse.Mount(
		mountpoint,
		fuse.FSName("reprofs"),
		fuse.Subtype("reprofs"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return fmt.Errorf("mount %s: %w", mountpoint, err)
	}
	defer conn.Close()

	err = fusefs.Serve(conn, &serverFS{fsys: fsys})
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	<-conn.Ready

	if err := conn.MountError; err != nil {
		return fmt.Errorf("mount %s: %w", mountpoint, err)
	}

	return nil
}

var (
	_ fusefs.FS                 = (*serverFS)(nil)
	_ fusefs.Node               = (*serveDir)(nil)
	_ fusefs.NodeStringLookuper = (*serveDir)(nil)
	_ fusefs.HandleReadDirAller = (*serveDir)(nil)
	_ fusefs.Node               = (*serveFile)(nil)
	_ fusefs.HandleReadAller    = (*serveFile)(nil)
)

type serverFS struct {
	fsys *FS
}

// Root implements [fusefs.FS].
func (s *serverFS) Root() (fusefs.Node, error) {
	return &serveDir{fsys: s.fsys, path: "."}, nil
}

// serveDir serves an overlay directory as FUSE node.
type serveDir struct {
	fsys *FS
	path string
}

// Attr implements [fusefs.Node].
func (d *serveDir) Attr(_ context.Context, attr *fuse.Attr) error {
	attr.Mode = os.ModeDir | defaultFileMode
	return nil
}

// Lookup implements [fusefs.NodeStringLookuper].
func (d *serveDir) Lookup(_ context.Context, name string) (fusefs.Node, error) {
	childPath := path.Join(d.path, name)

	info, err := stat(d.fsys, childPath)
	if err != nil {
		return nil, syscall.ENOENT
	}

	if info.IsDir() {
		return &serveDir{fsys: d.fsys, path: childPath}, nil
	}

	return &serveFile{fsys: d.fsys, path: childPath}, nil
}

// ReadDirAll implements [fusefs.HandleReadDirAller].
func (d *serveDir) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	entries, err := fs.ReadDir(d.fsys, d.path)
	if err != nil {
		return nil, syscall.EIO
	}

	dirents := make([]fuse.Dirent, 0, len(entries))

	for _, entry := range entries {
		direntType := fuse.DT_File
		if entry.IsDir() {
			direntType = fuse.DT_Dir
		}

		dirents = append(dirents, fuse.Dirent{
			Name: entry.Name(),
			Type: direntType,
		})
	}

	return dirents, nil
}

// serveFile serves a mapped overlay file as FUSE node. The backing file is
// only touched when attributes or content are requested.
type serveFile struct {
	fsys *FS
	path string
}

// Attr implements [fusefs.Node].
func (f *serveFile) Attr(_ context.Context, attr *fuse.Attr) error {
	info, err := stat(f.fsys, f.path)
	if err != nil {
		return syscall.ENOENT
	}

	attr.Mode = info.Mode()
	attr.Size = uint64(info.Size())
	attr.Mtime = info.ModTime()

	return nil
}

// ReadAll implements [fusefs.HandleReadAller].
func (f *serveFile) ReadAll(_ context.Context) ([]byte, error) {
	file, err := f.fsys.Open(f.path)
	if err != nil {
		return nil, syscall.ENOENT
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, syscall.EIO
	}

	return content, nil
}

func stat(fsys *FS, name string) (fs.FileInfo, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return file.Stat() //nolint:wrapcheck
}
