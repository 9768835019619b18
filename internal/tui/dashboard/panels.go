package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/soilution/fieldview/internal/tui/layout"
	"github.com/soilution/fieldview/internal/tui/theme"
)

// railThreshold is the sidebar width below which only icons are drawn.
const railThreshold = 12

func buildAlerts(readings []Reading) []string {
	var out []string
	for _, r := range readings {
		switch {
		case r.Moisture < 30:
			out = append(out, fmt.Sprintf("Low moisture in %s (%.0f%%)", r.Location, r.Moisture))
		case r.PH < 5.8:
			out = append(out, fmt.Sprintf("Acidic soil in %s (pH %.1f)", r.Location, r.PH))
		case r.PH > 8.2:
			out = append(out, fmt.Sprintf("Alkaline soil in %s (pH %.1f)", r.Location, r.PH))
		}
	}
	return out
}

func buildInbox(readings []Reading, now time.Time) []string {
	out := make([]string, 0, min(len(readings), 8))
	for _, r := range readings[:min(len(readings), 8)] {
		out = append(out, fmt.Sprintf("%s: grow %s · %s", r.Location, r.Crop, ago(now.Sub(r.RecommendedAt))))
	}
	return out
}

func ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

// --- Sidebar ---

func renderSidebar(th theme.Theme, active page, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rail := width < railThreshold
	lines := []string{""}
	for p := range pageCount {
		label := pageIcons[p] + " " + pageNames[p]
		if rail {
			label = pageIcons[p]
		}
		style := th.Styles.SidebarItem
		marker := "  "
		if p == active {
			style = th.Styles.SidebarItemSelected
			marker = "▌ "
		}
		if rail {
			marker = marker[:len(marker)-1]
		}
		lines = append(lines, style.Render(truncate(marker+label, width)))
	}
	return lipgloss.NewStyle().
		Width(width).Height(height).MaxHeight(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(th.Palette.SurfaceSubtle).
		Render(strings.Join(lines, "\n"))
}

// sidebarPage maps a row inside the body to the page listed on it.
func sidebarPage(row int) (page, bool) {
	p := page(row - 1)
	if p < 0 || p >= pageCount {
		return 0, false
	}
	return p, true
}

// --- Inbox drawer ---

func renderInbox(th theme.Theme, items []string, width, height int) string {
	if width < 4 || height <= 0 {
		return ""
	}
	inner := width - 2
	lines := []string{th.Styles.Subtitle.Render(truncate("Inbox", inner)), ""}
	if len(items) == 0 {
		lines = append(lines, th.Styles.Dim.Render("No messages"))
	}
	for _, it := range items {
		lines = append(lines, th.Styles.Body.Render(truncate(it, inner)))
	}
	return th.Styles.Panel.
		Width(inner).Height(max(height-2, 0)).MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

// --- Dropdowns and the collapsed menu ---

// dropdown renders a bordered panel sized and aligned by region's
// width and align properties, inside a container innerW cells wide.
func (m Model) dropdown(region, title string, items []string, innerW int) (panel string, offset int) {
	w := m.store.Size(region, "width", innerW, theme.Width.Dropdown)
	if w < 4 {
		return "", 0
	}
	lines := []string{m.theme.Styles.Subtitle.Render(truncate(title, w-2))}
	for _, it := range items {
		lines = append(lines, truncate(it, w-2))
	}
	panel = m.theme.Styles.Panel.Width(w - 2).Render(strings.Join(lines, "\n"))
	if m.store.Value(region, "align", "left") == "right" {
		offset = innerW - lipgloss.Width(panel)
	}
	return panel, max(offset, 0)
}

// overlay returns the open dropdown or menu panel and its horizontal
// offset inside the content column.
func (m Model) overlay(f frame) (panel string, offset int) {
	switch {
	case m.menuOpen && f.tier.CollapsesNavigation():
		items := make([]string, 0, pageCount)
		for p := range pageCount {
			items = append(items, fmt.Sprintf("%d %s %s", p+1, pageIcons[p], pageNames[p]))
		}
		w := min(f.innerW, theme.Width.Dropdown)
		if w < 4 {
			return "", 0
		}
		lines := []string{m.theme.Styles.Subtitle.Render("Menu")}
		for _, it := range items {
			lines = append(lines, truncate(it, w-2))
		}
		return m.theme.Styles.Panel.Width(w - 2).Render(strings.Join(lines, "\n")), 0
	case m.profileOpen:
		return m.dropdown(compensation.RegionProfileMenu, "Field manager",
			[]string{"Workspace: Test Farm", fmt.Sprintf("%d readings", len(m.readings)), "q: sign out"}, f.innerW)
	case m.notifyOpen:
		items := m.alerts
		if len(items) == 0 {
			items = []string{"All fields within range"}
		}
		return m.dropdown(compensation.RegionNotifications, "Alerts", items, f.innerW)
	}
	return "", 0
}

// menuPage maps a row inside the open menu panel to a page.
func menuPage(row int) (page, bool) {
	// Border and title occupy the first two rows.
	p := page(row - 2)
	if p < 0 || p >= pageCount {
		return 0, false
	}
	return p, true
}

// --- Header buttons ---

type button struct {
	id    string
	label string
	rect  layout.Rect
}

const (
	actionRefresh = "refresh"
	actionAlerts  = "alerts"
	actionInbox   = "inbox"
	actionProfile = "profile"
)

var actions = []struct{ id, full, short string }{
	{actionRefresh, "Refresh", "⟳"},
	{actionAlerts, "Alerts", "!"},
	{actionInbox, "Inbox", "✉"},
	{actionProfile, "Profile", "☺"},
}

// headerButtons lays the action buttons out right-aligned on the first
// header row. Padding comes from the action-buttons region.
func (m Model) headerButtons(f frame) []button {
	pad := m.store.Box(compensation.RegionActionButtons, "padding", Box{0, 1, 0, 1})
	short := f.tier <= layout.Narrow

	out := make([]button, len(actions))
	x := m.width
	for i := len(actions) - 1; i >= 0; i-- {
		a := actions[i]
		label := a.full
		if short {
			label = a.short
		}
		if a.id == actionAlerts && len(m.alerts) > 0 && !short {
			label = fmt.Sprintf("%s %d", label, len(m.alerts))
		}
		w := lipgloss.Width(label) + pad.Horizontal()
		x -= w
		out[i] = button{id: a.id, label: label, rect: layout.NewRect(x, 0, w, 1)}
		x--
	}
	return out
}

func (m Model) renderButton(b button) string {
	pad := m.store.Box(compensation.RegionActionButtons, "padding", Box{0, 1, 0, 1})
	style := m.theme.Styles.Button
	if m.pressed == b.id {
		style = m.theme.Styles.ButtonPressed
	}
	// Vertical padding is not drawn on the one-row header.
	return style.Padding(0, pad.Right, 0, pad.Left).Render(b.label)
}
