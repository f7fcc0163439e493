// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reprofs/reprofs/internal/cmd"
	"github.com/reprofs/reprofs/internal/collect"
)

func runCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	rootCmd := cmd.NewRootCommand()

	var stdout bytes.Buffer

	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(io.Discard)

	if stdin != nil {
		rootCmd.SetIn(stdin)
	}

	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return stdout.String(), err
}

// realTempDir returns a fresh temp directory with all symlinks resolved, so
// expected destinations can be computed from it directly.
func realTempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	return dir
}

func rerooted(root, path string) string {
	return filepath.Join(root, strings.TrimPrefix(path, "/"))
}

func TestCollectCommand(t *testing.T) {
	fileRoot := realTempDir(t)

	src := filepath.Join(fileRoot, "aaa")
	require.NoError(t, os.WriteFile(src, []byte("aaa"), 0o644))

	t.Run("args", func(t *testing.T) {
		root := t.TempDir()
		manifestPath := filepath.Join(t.TempDir(), "manifest.yaml")

		stdout, err := runCommand(t, nil,
			"collect", "--root", root, "--manifest", manifestPath, src)
		require.NoError(t, err)
		assert.Contains(t, stdout, "collected:")

		content, err := os.ReadFile(rerooted(root, src))
		require.NoError(t, err)
		assert.Equal(t, "aaa", string(content))

		manifest, err := collect.ReadManifest(manifestPath)
		require.NoError(t, err)
		assert.Equal(t, []collect.MappingEntry{
			{VPath: src, RPath: rerooted(root, src)},
		}, manifest.Entries)
	})

	t.Run("stdin", func(t *testing.T) {
		root := t.TempDir()
		stdin := strings.NewReader(src + "\n\n")

		_, err := runCommand(t, stdin, "collect", "--root", root)
		require.NoError(t, err)

		assert.FileExists(t, rerooted(root, src))
	})

	t.Run("skips bogus file", func(t *testing.T) {
		root := t.TempDir()

		stdout, err := runCommand(t, nil,
			"collect", "--root", root, src, "/some/bogus/file")
		require.NoError(t, err)
		assert.Contains(t, stdout, "skipped:")
		assert.Contains(t, stdout, "/some/bogus/file")
	})

	t.Run("strict fails on bogus file", func(t *testing.T) {
		root := t.TempDir()

		_, err := runCommand(t, nil,
			"collect", "--root", root, "--strict", src, "/some/bogus/file")
		assert.Error(t, err)
	})

	t.Run("root required", func(t *testing.T) {
		_, err := runCommand(t, nil, "collect", src)
		assert.Error(t, err)
	})
}

func TestPackCommand(t *testing.T) {
	fileRoot := realTempDir(t)

	src := filepath.Join(fileRoot, "aaa")
	require.NoError(t, os.WriteFile(src, []byte("aaa"), 0o644))

	root := t.TempDir()
	manifestPath := filepath.Join(t.TempDir(), "manifest.yaml")

	_, err := runCommand(t, nil,
		"collect", "--root", root, "--manifest", manifestPath, src)
	require.NoError(t, err)

	archivePath := filepath.Join(t.TempDir(), "bundle.cpio")

	_, err = runCommand(t, nil, "pack", "-o", archivePath, manifestPath)
	require.NoError(t, err)

	archive, err := os.Open(archivePath)
	require.NoError(t, err)

	defer archive.Close()

	names := make(map[string]bool)

	reader := cpio.NewReader(archive)

	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)

		names[header.Name] = true
	}

	// The archive lists the file under its virtual path.
	assert.True(t, names[strings.TrimPrefix(src, "/")])
}

func TestMountCommandArgs(t *testing.T) {
	_, err := runCommand(t, nil, "mount", "just-one-arg")
	assert.Error(t, err)
}
