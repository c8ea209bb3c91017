package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Terminal styles.
var (
	promptStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
	thinkingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	toolStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	obsStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// previewWidth is the terminal cell budget for one-line action and
// observation previews.
const previewWidth = 100

// separator divides turns in the scrollback.
var separator = separatorStyle.Render(strings.Repeat("-", 80))

// newMarkdownRenderer builds the glamour renderer used for final answers.
// A nil renderer is fine; rendering then falls back to plain text.
func newMarkdownRenderer() *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWidth),
	)
	if err != nil {
		return nil
	}

	return r
}

// renderMarkdown converts markdown to terminal-formatted output, falling
// back to the raw text when rendering is unavailable.
func renderMarkdown(r *glamour.TermRenderer, text string) string {
	if r == nil {
		return text
	}

	out, err := r.Render(text)
	if err != nil {
		return text
	}

	return strings.TrimRight(out, "\n")
}

// previewLine flattens s to a single line and truncates it to width terminal
// cells, appending "..." when cut. Width is measured in cells, not runes, so
// wide characters do not overflow the line.
func previewLine(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}

	return runewidth.Truncate(s, width, "...")
}
