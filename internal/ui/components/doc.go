// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable UI pieces shared by the onboard
panels.

# Components

  - Form: labelled text, multi-line and select fields with a submit button
  - RenderChips: numbered suggestion chips
  - RenderTabs: the tab bar of the shell
  - RenderMarkdown: the lightweight markdown pass used for roadmaps
  - HighlightJSON: chroma-highlighted JSON for extracted data
  - Toasts: auto-dismissing notifications

Components are plain values driven by the owning panel's Update; none of
them talk to the backend.
*/
package components
