// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the onboard packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: display-width truncation with ellipsis (CJK and emoji aware)
//   - PadRight: pad to a display width
//   - SplitLines: split text on \n, \r\n and \r
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync, used by config saves
//     and form exports
//
// # Usage
//
//	label := util.TruncateWidth(chip, 28)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
