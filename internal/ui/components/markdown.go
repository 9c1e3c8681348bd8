// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/onboard-tui/internal/ui/styles"
	"github.com/jeranaias/onboard-tui/internal/util"
)

// =============================================================================
// LIGHTWEIGHT MARKDOWN
// =============================================================================

// BlockKind classifies one line of roadmap text.
type BlockKind int

const (
	BlockBlank BlockKind = iota
	BlockHeading1
	BlockHeading2
	BlockHeading3
	BlockBullet
	BlockNumbered
	BlockParagraph
)

// Span is a run of text, bold or not.
type Span struct {
	Text string
	Bold bool
}

// Block is one parsed line.
type Block struct {
	Kind   BlockKind
	Number string // BlockNumbered only
	Spans  []Span
}

// Text joins the block's spans.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

var numberedRe = regexp.MustCompile(`^(\d+)\.\s*`)

// ParseMarkdown splits text into lines and classifies each one. Only
// headings (#, ##, ###), bullets (- or *), numbered lines (N.) and **bold**
// spans are recognised; everything else is a paragraph.
func ParseMarkdown(text string) []Block {
	lines := util.SplitLines(text)
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, parseLine(line))
	}
	return blocks
}

func parseLine(line string) Block {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "###"):
		return Block{Kind: BlockHeading3, Spans: plain(strings.Replace(line, "###", "", 1))}
	case strings.HasPrefix(line, "##"):
		return Block{Kind: BlockHeading2, Spans: plain(strings.Replace(line, "##", "", 1))}
	case strings.HasPrefix(line, "#"):
		return Block{Kind: BlockHeading1, Spans: plain(strings.Replace(line, "#", "", 1))}
	case trimmed == "":
		return Block{Kind: BlockBlank}
	case isBullet(trimmed):
		return Block{Kind: BlockBullet, Spans: ParseSpans(strings.TrimSpace(trimmed[1:]))}
	}
	if m := numberedRe.FindStringSubmatch(trimmed); m != nil {
		return Block{
			Kind:   BlockNumbered,
			Number: m[1],
			Spans:  ParseSpans(strings.TrimSpace(trimmed[len(m[0]):])),
		}
	}
	return Block{Kind: BlockParagraph, Spans: ParseSpans(line)}
}

// isBullet accepts "-" and "*" markers but not a line opening with a
// **bold** span.
func isBullet(trimmed string) bool {
	if strings.HasPrefix(trimmed, "-") {
		return true
	}
	return strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "**")
}

func plain(s string) []Span {
	return []Span{{Text: strings.TrimSpace(s)}}
}

// ParseSpans splits s on "**"; odd segments are bold.
func ParseSpans(s string) []Span {
	if !strings.Contains(s, "**") {
		return []Span{{Text: s}}
	}
	parts := strings.Split(s, "**")
	spans := make([]Span, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		spans = append(spans, Span{Text: p, Bold: i%2 == 1})
	}
	return spans
}

// RenderMarkdown renders text with the theme's heading, list and bold
// styles, wrapping to width when positive.
func RenderMarkdown(theme *styles.Theme, text string, width int) string {
	blocks := ParseMarkdown(text)
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, renderBlock(theme, b, width))
	}
	return strings.Join(out, "\n")
}

func renderBlock(theme *styles.Theme, b Block, width int) string {
	wrap := func(s lipgloss.Style, indent int) lipgloss.Style {
		if width > indent {
			return s.Width(width - indent)
		}
		return s
	}

	switch b.Kind {
	case BlockBlank:
		return ""
	case BlockHeading1:
		return "\n" + wrap(theme.Heading1, 0).Render(b.Text())
	case BlockHeading2:
		return "\n" + wrap(theme.Heading2, 0).Render("▌ "+b.Text())
	case BlockHeading3:
		return wrap(theme.Heading3, 0).Render("› " + b.Text())
	case BlockBullet:
		marker := theme.Bullet.Render("  ✓ ")
		return lipgloss.JoinHorizontal(lipgloss.Top, marker, wrap(lipgloss.NewStyle(), 4).Render(renderSpans(theme, b.Spans)))
	case BlockNumbered:
		marker := theme.Number.Render("  " + b.Number + ". ")
		indent := lipgloss.Width(marker)
		return lipgloss.JoinHorizontal(lipgloss.Top, marker, wrap(lipgloss.NewStyle(), indent).Render(renderSpans(theme, b.Spans)))
	default:
		return wrap(lipgloss.NewStyle(), 0).Render(renderSpans(theme, b.Spans))
	}
}

func renderSpans(theme *styles.Theme, spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Bold {
			sb.WriteString(theme.Bold.Render(s.Text))
		} else {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}
