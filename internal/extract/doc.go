// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package extract holds the client-side logic of the document extractor:
// the file type gate applied before any upload, the derivation of the
// employee form from extracted CV data, and form export.
package extract
