// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest computes the suggestion chips shown under the chat
// transcript.
//
// Suggestions blend keyword rules applied to the latest user turn with
// whatever the backend suggestions endpoint returns. Backend output comes
// from a language model and is treated as untrusted: JSON fragments and
// numbered lists are split apart, then anything that still looks like markup
// is dropped before deduplication.
//
// # Pipeline
//
//  1. No user turn yet: the bootstrap list.
//  2. Local rules on the last user turn.
//  3. Backend entries, expanded (JSON array or list split) and cleaned.
//  4. Filter, dedupe local-first, keep the first three.
//
// Every computation carries a sequence number. Engine.Apply drops results
// older than the newest one applied, so a slow backend answer never
// overwrites chips derived from a newer transcript.
package suggest
