// Package layout classifies the viewport into tiers and provides the
// geometry and stacking helpers the dashboard renders with.
//
// Usage:
//
//	tier := layout.Classify(reader.Read())
//	body := layout.HStack(1, sidebar, content)
package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HStack joins items horizontally with the specified gap between them.
// Items are aligned at the top. Empty items are skipped.
func HStack(gap int, items ...string) string {
	items = nonEmpty(items)
	if len(items) == 0 {
		return ""
	}
	if len(items) == 1 {
		return items[0]
	}

	spacer := strings.Repeat(" ", max(gap, 0))
	result := items[0]
	for i := 1; i < len(items); i++ {
		if spacer != "" {
			result = lipgloss.JoinHorizontal(lipgloss.Top, result, spacer, items[i])
		} else {
			result = lipgloss.JoinHorizontal(lipgloss.Top, result, items[i])
		}
	}
	return result
}

// VStack joins items vertically with the specified gap (blank lines) between them.
// Empty items are skipped.
func VStack(gap int, items ...string) string {
	items = nonEmpty(items)
	if len(items) == 0 {
		return ""
	}
	if len(items) == 1 {
		return items[0]
	}

	var spacer string
	if gap > 0 {
		spacer = strings.Repeat("\n", gap-1)
	}

	result := items[0]
	for i := 1; i < len(items); i++ {
		if gap > 0 {
			result = lipgloss.JoinVertical(lipgloss.Left, result, spacer, items[i])
		} else {
			result = lipgloss.JoinVertical(lipgloss.Left, result, items[i])
		}
	}
	return result
}

// Flow arranges items in rows of cols, left to right then top to bottom,
// with hgap columns between items and vgap blank lines between rows.
func Flow(cols, hgap, vgap int, items []string) string {
	if len(items) == 0 || cols < 1 {
		return ""
	}
	rows := make([]string, 0, (len(items)+cols-1)/cols)
	for i := 0; i < len(items); i += cols {
		rows = append(rows, HStack(hgap, items[i:min(i+cols, len(items))]...))
	}
	return VStack(vgap, rows...)
}

// Fill expands content to fill the specified width with spaces.
func Fill(w int, content string) string {
	contentWidth := lipgloss.Width(content)
	if contentWidth >= w {
		return content
	}
	return content + strings.Repeat(" ", w-contentWidth)
}

// Right aligns content to the right within the specified width.
func Right(w int, content string) string {
	return lipgloss.NewStyle().Width(w).Align(lipgloss.Right).Render(content)
}

// Place puts content in the given rect, clipping anything outside of it.
func Place(r Rect, content string) string {
	if r.Width <= 0 || r.Height <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Width(r.Width).MaxWidth(r.Width).
		Height(r.Height).MaxHeight(r.Height).
		Render(content)
}

func nonEmpty(items []string) []string {
	out := items[:0:0]
	for _, it := range items {
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}
