// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"encoding/json"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/onboard-tui/internal/api"
)

// MaxChips is the number of suggestions shown once the user has spoken.
const MaxChips = 3

// bootstrap is shown before the first user turn.
var bootstrap = []string{
	"Tạo lộ trình cho developer",
	"Chính sách nghỉ phép như thế nào?",
	"Tạo email chào mừng",
	"Xử lý CV",
	"help",
}

// Bootstrap returns a copy of the bootstrap list.
func Bootstrap() []string {
	out := make([]string, len(bootstrap))
	copy(out, bootstrap)
	return out
}

// =============================================================================
// LOCAL RULES
// =============================================================================

type rule struct {
	keywords    []string
	suggestions []string
}

var rules = []rule{
	{
		keywords:    []string{"developer", "lộ trình"},
		suggestions: []string{"Gợi ý học tập cho developer", "Các kỹ năng cần cho developer mới"},
	},
	{
		keywords:    []string{"email"},
		suggestions: []string{"Tạo email chào mừng", "Tạo email nhắc nhở onboarding"},
	},
	{
		keywords:    []string{"cv", "hồ sơ"},
		suggestions: []string{"Xử lý CV", "Tự động điền biểu mẫu từ CV"},
	},
	{
		keywords:    []string{"chính sách"},
		suggestions: []string{"Chính sách nghỉ phép như thế nào?", "Chính sách thưởng/phạt"},
	},
}

// fold normalizes to NFC and case-folds, so "LỘ TRÌNH" typed with combining
// marks still matches "lộ trình".
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Local applies the keyword rules to the latest user turn. Every matching
// rule contributes its suggestions in rule order; no match yields "help".
func Local(lastUser string) []string {
	text := fold(lastUser)

	var out []string
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, fold(kw)) {
				out = append(out, r.suggestions...)
				break
			}
		}
	}
	if len(out) == 0 {
		out = append(out, "help")
	}
	return out
}

// =============================================================================
// BACKEND NORMALIZATION
// =============================================================================

// listSplit splits model output on line breaks and "N. " list markers.
var listSplit = regexp.MustCompile(`\n|\r|\d+\.\s+`)

// Normalize expands backend entries into flat strings. A string holding a
// JSON array of strings is spliced. Otherwise a string that splits into
// more than one non-empty piece is spliced. Anything else is kept verbatim.
// Nested arrays are spliced; non-string elements are dropped.
func Normalize(entries []api.SuggestionEntry) []string {
	var out []string
	for _, e := range entries {
		if e.IsList {
			out = append(out, e.Items...)
			continue
		}
		out = append(out, expand(e.Text)...)
	}
	return out
}

func expand(item string) []string {
	var decoded any
	if err := json.Unmarshal([]byte(item), &decoded); err == nil {
		arr, ok := decoded.([]any)
		if !ok {
			return []string{item}
		}
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}

	var pieces []string
	for _, p := range listSplit.Split(item, -1) {
		if p = strings.TrimSpace(p); p != "" {
			pieces = append(pieces, p)
		}
	}
	if len(pieces) > 1 {
		return pieces
	}
	return []string{item}
}

// =============================================================================
// CLEANING AND FILTERING
// =============================================================================

// Clean trims whitespace, trailing commas and surrounding double quotes
// until none are left, so Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	for {
		next := cleanOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func cleanOnce(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, ","))
	s = strings.TrimLeft(s, `"`)
	s = strings.TrimRight(s, `"`)
	return s
}

// Allowed reports whether a backend suggestion may be shown.
func Allowed(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	switch {
	case t == "", t == "[]", t == "[ ]":
		return false
	case strings.Contains(t, "json"),
		strings.Contains(t, "["),
		strings.Contains(t, "]"),
		strings.Contains(t, "```"):
		return false
	}
	return true
}

// =============================================================================
// MERGE
// =============================================================================

// Build runs the whole pipeline for a history of user-turn contents and the
// entries returned by the backend.
func Build(userTurns []string, backend []api.SuggestionEntry) []string {
	if len(userTurns) == 0 {
		return Bootstrap()
	}

	local := Local(userTurns[len(userTurns)-1])

	var remote []string
	for _, s := range Normalize(backend) {
		if s = Clean(s); Allowed(s) {
			remote = append(remote, s)
		}
	}

	return merge(local, remote)
}

// merge dedupes local then remote suggestions and keeps the first
// MaxChips. An empty merge falls back to the bootstrap list.
func merge(local, remote []string) []string {
	merged := dedupe(append(local, remote...))
	if len(merged) == 0 {
		return Bootstrap()
	}
	if len(merged) > MaxChips {
		merged = merged[:MaxChips]
	}
	return merged
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
