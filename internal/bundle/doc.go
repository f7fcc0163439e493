// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bundle exports a collected reproducer bundle as a single portable
// archive.
//
// The archive is written from the bundle's overlay filesystem, so entries
// appear under their virtual paths and the bundle can be unpacked and
// inspected anywhere without the mapping manifest.
package bundle
