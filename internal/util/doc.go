// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the clara packages.
//
// # Key Functions
//
// Text:
//   - StringWidth, TruncateWidth: display-width aware measuring (go-runewidth)
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - WrapText: soft wrapping that keeps the author's line breaks
//
// Files:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	lines := util.WrapText(msg.Text, 40)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
