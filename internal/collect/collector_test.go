// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package collect_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reprofs/reprofs/internal/collect"
)

// realTempDir returns a fresh temp directory with all symlinks resolved, so
// expected destinations can be computed from it directly.
func realTempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	return dir
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(path), 0o644))
}

// rerooted mirrors the absolute path below root, like the collector does for
// copy destinations.
func rerooted(root, path string) string {
	return filepath.Join(root, strings.TrimPrefix(path, "/"))
}

func TestCollectorRerooting(t *testing.T) {
	fileRoot := realTempDir(t)
	root := realTempDir(t)

	src := filepath.Join(fileRoot, "aaa")
	writeFile(t, src)

	collector, err := collect.New(root)
	require.NoError(t, err)

	collector.AddFile(src)

	dest := rerooted(root, src)

	assert.Equal(t,
		[]collect.CopyEntry{{Source: src, Dest: dest}},
		collector.CopyEntries())
	assert.Equal(t,
		[]collect.MappingEntry{{VPath: src, RPath: dest}},
		collector.Mappings())
}

func TestCollectorSymlinks(t *testing.T) {
	fileRoot := realTempDir(t)
	root := realTempDir(t)

	// Files aaa, bbb, ccc and a directory foo containing ddd.
	for _, name := range []string{"aaa", "bbb", "ccc"} {
		writeFile(t, filepath.Join(fileRoot, name))
	}

	foo := filepath.Join(fileRoot, "foo")
	require.NoError(t, os.Mkdir(foo, 0o755))
	writeFile(t, filepath.Join(foo, "ddd"))

	// A file eee in foo's parent directory, referenced through foo.
	writeFile(t, filepath.Join(fileRoot, "eee"))

	// A symlink bar pointing to foo.
	bar := filepath.Join(fileRoot, "bar")
	require.NoError(t, os.Symlink(foo, bar))

	collector, err := collect.New(root)
	require.NoError(t, err)

	for _, name := range []string{"aaa", "bbb", "ccc"} {
		collector.AddFile(filepath.Join(fileRoot, name))
	}

	collector.AddFile(filepath.Join(foo, "ddd"))
	collector.AddFile(foo + "/../eee")
	collector.AddFile(filepath.Join(bar, "ddd"))

	mappings := collector.Mappings()

	t.Run("common case", func(t *testing.T) {
		vpath := filepath.Join(fileRoot, "aaa")
		assert.Contains(t, mappings, collect.MappingEntry{
			VPath: vpath,
			RPath: rerooted(root, vpath),
		})
	})

	t.Run("virtual path maps to real location", func(t *testing.T) {
		assert.Contains(t, mappings, collect.MappingEntry{
			VPath: filepath.Join(bar, "ddd"),
			RPath: rerooted(root, filepath.Join(foo, "ddd")),
		})
	})

	t.Run("dot-dot removed", func(t *testing.T) {
		assert.Contains(t, mappings, collect.MappingEntry{
			VPath: filepath.Join(fileRoot, "eee"),
			RPath: rerooted(root, filepath.Join(fileRoot, "eee")),
		})
	})

	t.Run("single copy entry per real file", func(t *testing.T) {
		var count int

		for _, entry := range collector.CopyEntries() {
			if entry.Source == filepath.Join(foo, "ddd") {
				count++
			}
		}

		assert.Equal(t, 1, count)
	})
}

func TestCollectorMappingOrder(t *testing.T) {
	collector, err := collect.New(t.TempDir())
	require.NoError(t, err)

	paths := []string{"/path/to/b", "/path/to/a", "/path/to/c"}
	for _, path := range paths {
		collector.AddFile(path)
	}

	mappings := collector.Mappings()
	require.Len(t, mappings, len(paths))

	for idx, path := range paths {
		assert.Equal(t, path, mappings[idx].VPath)
	}
}

func TestCollectorCopyFiles(t *testing.T) {
	fileRoot := realTempDir(t)
	root := realTempDir(t)

	files := []string{"aaa", "bbb", "ccc"}
	for _, name := range files {
		writeFile(t, filepath.Join(fileRoot, name))
	}

	collector, err := collect.New(root)
	require.NoError(t, err)

	for _, name := range files {
		collector.AddFile(filepath.Join(fileRoot, name))
	}

	require.NoError(t, collector.CopyFiles(true))

	for _, name := range files {
		src := filepath.Join(fileRoot, name)

		content, err := os.ReadFile(rerooted(root, src))
		require.NoError(t, err)
		assert.Equal(t, src, string(content))
	}

	// A bogus file makes the strict copy fail.
	collector.AddFile("/some/bogus/file")
	err = collector.CopyFiles(true)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	// Without stop-on-error the copy still succeeds and reports the skipped
	// entry separately.
	require.NoError(t, collector.CopyFiles(false))

	skipped := collector.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, "/some/bogus/file", skipped[0].Source)
	assert.ErrorIs(t, skipped[0].Err, fs.ErrNotExist)
}

func TestCollectorCopyFilesRerun(t *testing.T) {
	fileRoot := realTempDir(t)
	root := realTempDir(t)

	src := filepath.Join(fileRoot, "aaa")
	writeFile(t, src)

	collector, err := collect.New(root)
	require.NoError(t, err)

	collector.AddFile(src)

	require.NoError(t, collector.CopyFiles(true))
	require.NoError(t, collector.CopyFiles(true))

	content, err := os.ReadFile(rerooted(root, src))
	require.NoError(t, err)
	assert.Equal(t, src, string(content))
}

func TestCollectorCopyFilesPreservesMode(t *testing.T) {
	fileRoot := realTempDir(t)
	root := realTempDir(t)

	src := filepath.Join(fileRoot, "script")
	writeFile(t, src)
	require.NoError(t, os.Chmod(src, 0o750))

	collector, err := collect.New(root)
	require.NoError(t, err)

	collector.AddFile(src)
	require.NoError(t, collector.CopyFiles(true))

	info, err := os.Stat(rerooted(root, src))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o750), info.Mode().Perm())
}
