// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI commands for reprofs. It handles flag parsing,
// logging setup, and output handling.
package cmd
