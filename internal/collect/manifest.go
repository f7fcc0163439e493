// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package collect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersion  = 1
	manifestFileMode = 0o644
)

// Manifest is the serialized form of a bundle's mapping table.
type Manifest struct {
	Version int            `yaml:"version"`
	Root    string         `yaml:"root"`
	Entries []MappingEntry `yaml:"mappings"`
}

// WriteManifest writes the collector's root and mapping table as a YAML
// manifest to the given path.
func WriteManifest(path string, collector *Collector) error {
	manifest := Manifest{
		Version: manifestVersion,
		Root:    collector.Root(),
		Entries: collector.Mappings(),
	}

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	err = os.WriteFile(path, data, manifestFileMode)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// ReadManifest loads a manifest written by [WriteManifest].
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest

	err = yaml.Unmarshal(data, &manifest)
	if err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	if manifest.Version != manifestVersion {
		return nil, fmt.Errorf("%w: %d", ErrManifestVersion, manifest.Version)
	}

	return &manifest, nil
}
