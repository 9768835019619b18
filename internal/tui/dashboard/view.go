package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/soilution/fieldview/internal/tui/layout"
	"github.com/soilution/fieldview/internal/tui/theme"
	"go.uber.org/zap"
)

// frame is the geometry of one render, derived from the window size, the
// current tier and the region properties.
type frame struct {
	tier       layout.Tier
	dims       layout.Dimensions
	grid       layout.Grid
	inboxW     int
	inboxLeft  bool
	mainX      int
	mainW      int
	pad        Box
	marginLeft int
	innerW     int
	innerH     int
}

func (m Model) frame() frame {
	tier := m.controller.Current().Tier()
	sidebarW := m.store.Size(compensation.RegionSidebar, "width", m.width, theme.Width.Sidebar)
	if m.railHover && tier == layout.VeryNarrow {
		// The rail opens to full width while the pointer is over it.
		sidebarW = max(sidebarW, theme.Width.Sidebar)
	}
	dims := layout.Calculate(m.width, m.height, tier, sidebarW, m.sidebarOpen)

	f := frame{
		tier: tier,
		dims: dims,
		grid: layout.CalculateGrid(m.width, m.height),
	}
	f.mainX = dims.Width - dims.ContentWidth
	f.mainW = dims.ContentWidth
	if m.inboxOpen {
		f.inboxW = m.store.Size(compensation.RegionInbox, "width", dims.ContentWidth, theme.Width.Inbox)
		f.inboxLeft = m.store.Value(compensation.RegionInbox, "align", "right") == "left"
		f.mainW = max(dims.ContentWidth-f.inboxW, 0)
		if f.inboxLeft {
			f.mainX += f.inboxW
		}
	}
	f.pad = m.store.Box(compensation.RegionMainContent, "padding", Box{1, 2, 0, 2})
	f.marginLeft = m.store.Int(compensation.RegionMainContent, "margin-left", 1)
	f.innerW = max(f.mainW-f.pad.Horizontal()-f.marginLeft, 0)
	f.innerH = max(dims.BodyHeight-f.pad.Vertical(), 0)
	return f
}

// contentOrigin is the screen position of the viewport's top-left cell.
func (f frame) contentOrigin() (x, y int) {
	return f.mainX + f.marginLeft + f.pad.Left, f.grid.Body.Y + f.pad.Top
}

// inboxRect is the drawer's screen rectangle.
func (f frame) inboxRect() layout.Rect {
	x := f.mainX + f.mainW
	if f.inboxLeft {
		x = f.mainX - f.inboxW
	}
	return layout.NewRect(x, f.grid.Body.Y, f.inboxW, f.dims.BodyHeight)
}

// refreshBody re-renders the active page into the body viewport and starts
// loading any snapshot placeholders that scrolled into view.
func (m Model) refreshBody() (Model, tea.Cmd) {
	f := m.frame()
	m.body.Width = f.innerW
	m.body.Height = f.innerH

	content, tilesTop, next := m.pageContent(f)
	m = next
	m.body.SetContent(content)
	artW, artH := snapshotArtSize(f.innerW)
	if m.page != pageSnapshots || artW <= 0 {
		return m, nil
	}

	view := layout.NewRect(0, m.body.YOffset, f.innerW, f.innerH)
	hits := m.loader.Intersecting(view, func(i int) layout.Rect {
		return layout.NewRect(0, tilesTop+i*(theme.Height.Snapshot+1), f.innerW, theme.Height.Snapshot)
	})
	if len(hits) == 0 {
		return m, nil
	}
	cmds := make([]tea.Cmd, 0, len(hits))
	for _, i := range hits {
		m.logger.Debug("snapshot entered viewport", zap.Int("index", i))
		cmds = append(cmds, loadSnapshot(i, m.snapshots[i].reading, artW, artH))
	}
	content, _, m = m.pageContent(f)
	m.body.SetContent(content)
	return m, tea.Batch(cmds...)
}

func snapshotArtSize(innerW int) (w, h int) {
	return innerW - 4, theme.Height.Snapshot - 3
}

// pageContent renders the page with any open overlay above it. tilesTop
// is the content row of the first snapshot tile.
func (m Model) pageContent(f frame) (content string, tilesTop int, next Model) {
	if f.innerW <= 0 {
		return "", 0, m
	}
	panel, offset := m.overlay(f)
	if panel != "" {
		panel = lipgloss.NewStyle().PaddingLeft(offset).Render(panel)
	}

	var page string
	switch m.page {
	case pageOverview:
		page = m.overviewPage(f)
	case pageReadings:
		page, m = m.readingsPage(f)
	case pageSnapshots:
		var top int
		page, top = m.snapshotsPage(f)
		tilesTop = top
		if panel != "" {
			tilesTop += lipgloss.Height(panel)
		}
	case pageHelp:
		doc, err := m.helpDoc.Render(f.innerW, m.theme.IsDark)
		if err != nil {
			m.logger.Warn("help rendering failed", zap.Error(err))
		}
		page = doc
	}
	return layout.VStack(0, panel, page), tilesTop, m
}

func (m Model) overviewPage(f frame) string {
	st := m.store
	stats := renderStats(st, m.theme, f.tier, m.summary, f.innerW)

	cpad := st.Box(compensation.RegionChartContainer, "padding", Box{1, 2, 1, 2})
	marginTop := st.Int(compensation.RegionChartContainer, "margin-top", 1)
	title := "Crop Recommendation History"
	if st.Value(compensation.RegionChartTitle, "label-mode", "full") == "short" {
		title = "Crops"
	}

	innerW := max(f.innerW-2-cpad.Horizontal(), 0)
	geom := chartGeometry{
		width:       st.Size(compensation.RegionCropChart, "width", innerW, innerW),
		height:      st.Int(compensation.RegionCropChart, "height", theme.Height.Chart),
		legend:      st.Value(compensation.RegionCropChart, "legend-position", legendRight),
		dataVersion: m.dataVersion,
	}
	chart := m.chart.Render(m.theme.Palette, m.counts, geom)
	container := m.theme.Styles.Panel.
		Padding(cpad.Top, cpad.Right, cpad.Bottom, cpad.Left).
		Width(max(f.innerW-2, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Styles.Subtitle.Render(truncate(title, innerW)), chart))

	return layout.VStack(marginTop, stats, container)
}

func (m Model) snapshotsPage(f frame) (string, int) {
	loaded := 0
	for _, s := range m.snapshots {
		if s.loaded {
			loaded++
		}
	}
	head := m.theme.Styles.Title.Render(truncate(
		fmt.Sprintf("Field snapshots %d/%d", loaded, len(m.snapshots)), f.innerW))
	if barW := min(f.innerW-lipgloss.Width(head)-1, theme.Width.Card); barW >= 6 && len(m.snapshots) > 0 {
		bar := m.loadBar
		bar.Width = barW
		head += " " + bar.ViewAs(float64(loaded)/float64(len(m.snapshots)))
	}
	const top = 2

	artW, _ := snapshotArtSize(f.innerW)
	tile := m.theme.Styles.Panel.Width(max(f.innerW-2, 0)).Height(theme.Height.Snapshot - 2)
	tiles := make([]string, len(m.snapshots))
	for i, s := range m.snapshots {
		caption := m.theme.Styles.Subtitle.Render(truncate(
			fmt.Sprintf("%s · %s · %s", s.reading.Location, s.reading.Crop, s.reading.ID.String()[:8]), artW+2))
		var body string
		switch {
		case s.loaded:
			body = lipgloss.NewStyle().Foreground(m.theme.Palette.SeriesColor(i)).Render(s.art)
		case m.loader.observed[i]:
			body = m.theme.Styles.Muted.Render("waiting for viewport")
		default:
			body = m.spinner.View() + m.theme.Styles.Dim.Render(" loading snapshot")
		}
		tiles[i] = tile.Render(lipgloss.JoinVertical(lipgloss.Left, caption, body))
	}
	if len(tiles) == 0 {
		return layout.VStack(1, head, m.theme.Styles.Dim.Render("No snapshots")), top
	}
	return layout.VStack(1, head, layout.VStack(1, tiles...)), top
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	f := m.frame()
	if !f.dims.IsViable() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.theme.Styles.Warning.Render(layout.TooSmallMessage()))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(f),
		m.renderBody(f),
		m.renderStatus(),
	)
}

func (m Model) renderHeader(f frame) string {
	s := m.theme.Styles
	var left string
	if f.tier.CollapsesNavigation() {
		left = s.Accent.Render("☰") + " "
	}
	left += s.Title.Render("fieldview")
	if f.tier != layout.Unclassified {
		left += " " + s.Badge.Render(f.tier.String())
	}

	var btns []string
	limit := m.width
	for _, b := range m.headerButtons(f) {
		if b.rect.X < 0 {
			continue
		}
		if len(btns) == 0 {
			limit = b.rect.X
		}
		btns = append(btns, m.renderButton(b))
	}
	left = lipgloss.NewStyle().MaxWidth(max(limit-1, 0)).Render(left)
	row := layout.Fill(limit, left) + strings.Join(btns, " ")
	return s.Header.Width(m.width).MaxWidth(m.width).Render(row)
}

func (m Model) renderBody(f frame) string {
	h := f.dims.BodyHeight
	sidebar := renderSidebar(m.theme, m.page, f.dims.SidebarWidth, h)

	var main string
	if f.mainW > 0 {
		main = lipgloss.NewStyle().
			MarginLeft(f.marginLeft).
			Padding(f.pad.Top, f.pad.Right, f.pad.Bottom, f.pad.Left).
			Render(m.body.View())
		main = layout.Place(layout.NewRect(0, 0, f.mainW, h), main)
	}

	var inbox string
	if m.inboxOpen {
		inbox = renderInbox(m.theme, m.inbox, f.inboxW, h)
	}
	parts := []string{sidebar, main, inbox}
	if f.inboxLeft {
		parts = []string{sidebar, inbox, main}
	}
	return layout.Place(layout.NewRect(0, 0, m.width, h), layout.HStack(0, parts...))
}

func (m Model) renderStatus() string {
	s := m.theme.Styles
	st := m.controller.Current()
	left := s.Badge.Render(st.Tier().String()) + s.Dim.Render(fmt.Sprintf(" %dpx", st.Signal.WidthPx))
	if st.Profile.Touch {
		left += s.Dim.Render(" touch")
	}

	right := m.help.ShortHelpView(m.keys.ShortHelp())
	switch {
	case m.lastErr != nil:
		right = s.Error.Render(m.status)
	case m.status != "":
		right = s.Dim.Render(m.status)
	}
	room := max(m.width-lipgloss.Width(left)-1, 0)
	right = lipgloss.NewStyle().MaxWidth(room).Render(right)
	return lipgloss.NewStyle().MaxWidth(m.width).Render(left + " " + layout.Right(room, right))
}

// layoutRect is the screen rectangle of a rendered block placed at x, y.
func layoutRect(x, y int, block string) layout.Rect {
	return layout.NewRect(x, y, lipgloss.Width(block), lipgloss.Height(block))
}
