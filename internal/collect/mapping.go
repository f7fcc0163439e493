// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package collect

import "slices"

// MappingEntry maps a virtual path, as referenced by the host tool, to the
// real path of its copy below the bundle root.
//
// The two differ whenever the referenced path traversed a symbolic link or
// the bundle root relocated the file, which is the usual case.
type MappingEntry struct {
	VPath string `yaml:"virtual"`
	RPath string `yaml:"real"`
}

// MappingTable accumulates the virtual-to-real path pairs that drive a
// virtual filesystem overlay.
//
// Entries are kept in insertion order and are only ever appended. The order
// makes serialized output deterministic; consumers must treat the entries as
// a set.
type MappingTable struct {
	entries []MappingEntry
}

func (t *MappingTable) add(vpath, rpath string) {
	t.entries = append(t.entries, MappingEntry{
		VPath: vpath,
		RPath: rpath,
	})
}

// Entries returns a copy of the accumulated entries in insertion order.
func (t *MappingTable) Entries() []MappingEntry {
	return slices.Clone(t.entries)
}
