package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/soilution/fieldview/internal/tui/layout"
	"github.com/soilution/fieldview/internal/tui/theme"
)

type readingColumn struct {
	title string
	width int
	cell  func(Reading) string
}

// Columns in priority order; narrower tables keep a prefix.
var readingColumns = []readingColumn{
	{"Date", 12, func(r Reading) string { return r.RecommendedAt.Format("Jan 02 15:04") }},
	{"Crop", 11, func(r Reading) string { return r.Crop }},
	{"Field", 9, func(r Reading) string { return r.Location }},
	{"N", 6, func(r Reading) string { return fmt.Sprintf("%.1f", r.Nitrogen) }},
	{"P", 6, func(r Reading) string { return fmt.Sprintf("%.1f", r.Phosphorus) }},
	{"K", 6, func(r Reading) string { return fmt.Sprintf("%.1f", r.Potassium) }},
	{"pH", 5, func(r Reading) string { return fmt.Sprintf("%.2f", r.PH) }},
	{"Moist.", 6, func(r Reading) string { return fmt.Sprintf("%.0f%%", r.Moisture) }},
	{"Temp", 6, func(r Reading) string { return fmt.Sprintf("%.1f°", r.Temperature) }},
	{"EC", 5, func(r Reading) string { return fmt.Sprintf("%.2f", r.Conductivity) }},
	{"Rain", 6, func(r Reading) string { return fmt.Sprintf("%.0fmm", r.Rainfall) }},
}

// recordsPerPage is how many readings the stacked rendition shows at once.
const recordsPerPage = 4

// cellPadding is the horizontal padding bubbles/table puts around cells.
const cellPadding = 2

// fitColumns returns the leading columns that fit in width, at least two.
func fitColumns(width int) []readingColumn {
	n, used := 0, 0
	for _, c := range readingColumns {
		if used+c.width+cellPadding > width && n >= 2 {
			break
		}
		used += c.width + cellPadding
		n++
	}
	return readingColumns[:n]
}

func filterReadings(readings []Reading, q string) []Reading {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return readings
	}
	var out []Reading
	for _, r := range readings {
		if strings.Contains(r.Crop, q) || strings.Contains(strings.ToLower(r.Location), q) {
			out = append(out, r)
		}
	}
	return out
}

func tableStyles(th theme.Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(th.Palette.TextMuted).
		BorderBottom(true).
		Foreground(th.Palette.TextDim).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(th.Palette.AccentStrong).
		Background(th.Palette.Pressed).
		Bold(true)
	return s
}

type tableKey struct {
	width, height int
	query         string
	dataVersion   int
}

// syncTable rebuilds the bubbles table when its inputs changed.
func (m Model) syncTable(rows []Reading, width, height int) Model {
	key := tableKey{width: width, height: height, query: m.filter.Value(), dataVersion: m.dataVersion}
	if key == m.tableKey {
		return m
	}
	m.tableKey = key

	cols := fitColumns(width)
	tc := make([]table.Column, len(cols))
	for i, c := range cols {
		tc[i] = table.Column{Title: c.title, Width: c.width}
	}
	tr := make([]table.Row, len(rows))
	for i, r := range rows {
		row := make(table.Row, len(cols))
		for j, c := range cols {
			row[j] = c.cell(r)
		}
		tr[i] = row
	}

	cursor := m.table.Cursor()
	// Rows must never outnumber the columns they are rendered against.
	m.table.SetRows(nil)
	m.table.SetColumns(tc)
	m.table.SetRows(tr)
	m.table.SetWidth(width)
	m.table.SetHeight(max(height, 2))
	m.table.SetCursor(min(cursor, max(len(tr)-1, 0)))
	return m
}

// stackedReadings renders each reading as labelled rows, the narrow
// rendition of the table.
func stackedReadings(th theme.Theme, rows []Reading, width int) string {
	if len(rows) == 0 {
		return th.Styles.Dim.Render("No readings match")
	}
	label := th.Styles.Dim
	blocks := make([]string, 0, len(rows))
	for _, r := range rows {
		var lines []string
		lines = append(lines, th.Styles.Subtitle.Render(truncate(r.Crop+" · "+r.Location, width)))
		for _, c := range readingColumns {
			if c.title == "Crop" || c.title == "Field" {
				continue
			}
			prefix := c.title + ": "
			lines = append(lines, label.Render(prefix)+truncate(c.cell(r), width-lipgloss.Width(prefix)))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) readingsPage(f frame) (string, Model) {
	pad := m.store.Box(compensation.RegionSearchInput, "padding", Box{})
	m.filter.Width = max(min(theme.Width.Search, f.innerW-pad.Horizontal()-lipgloss.Width(m.filter.Prompt)-1), 1)
	search := lipgloss.NewStyle().
		Padding(pad.Top, pad.Right, pad.Bottom, pad.Left).
		Render(m.filter.View())

	rows := filterReadings(m.readings, m.filter.Value())
	title := m.theme.Styles.Title.Render(fmt.Sprintf("Readings (%d)", len(rows)))

	if f.tier.StacksTables() {
		if len(rows) == 0 {
			m.pager.Page, m.pager.TotalPages = 0, 1
		} else {
			m.pager.SetTotalPages(len(rows))
		}
		m.pager.Page = min(m.pager.Page, m.pager.TotalPages-1)
		lo, hi := m.pager.GetSliceBounds(len(rows))
		body := stackedReadings(m.theme, rows[lo:hi], f.innerW)
		if m.pager.TotalPages > 1 {
			body = layout.VStack(1, body, m.pager.View())
		}
		return layout3(title, search, body), m
	}
	used := lipgloss.Height(title) + lipgloss.Height(search) + 2
	m = m.syncTable(rows, f.innerW, f.innerH-used)
	return layout3(title, search, m.table.View()), m
}

func layout3(title, search, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left, title, search, "", body)
}
