package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/soilution/fieldview/internal/tui/layout"
	"go.uber.org/zap"
)

// swipeThreshold is the vertical drag, in rows, that counts as a swipe.
const swipeThreshold = 2

// Update handles a message. A panic while handling it is logged and the
// model from before the message is kept.
func (m Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("recovered from panic in update",
				zap.Any("panic", r),
				zap.String("msg", fmt.Sprintf("%T", msg)),
				zap.Stack("stack"))
			m.lastErr = fmt.Errorf("internal error: %v", r)
			m.status = "internal error, see log"
			model, cmd = m, nil
		}
	}()
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case evaluateMsg:
		if msg.seq != m.resizeSeq {
			return m, nil
		}
		m = m.evaluate(false)
		return m.refreshBody()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case catalogMsg:
		if _, err := m.controller.Reconfigure(msg.catalog); err != nil {
			m.lastErr = err
			m.status = "catalog reload failed, keeping previous catalog"
		} else {
			m.lastErr = nil
			m.status = "catalog reloaded"
		}
		next, cmd := m.refreshBody()
		if m.catalogs == nil {
			return next, cmd
		}
		return next, tea.Batch(cmd, waitForCatalog(m.catalogs))

	case catalogClosedMsg:
		m.logger.Debug("catalog stream closed")
		return m, nil

	case snapshotLoadedMsg:
		if msg.index >= 0 && msg.index < len(m.snapshots) {
			m.snapshots[msg.index].art = msg.art
			m.snapshots[msg.index].loaded = true
		}
		return m.refreshBody()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.page != pageSnapshots {
			return m, cmd
		}
		next, load := m.refreshBody()
		return next, tea.Batch(cmd, load)

	case errMsg:
		m.logger.Error("command failed", zap.Error(msg.err))
		m.lastErr = msg.err
		m.status = msg.err.Error()
		return m, nil
	}
	return m, nil
}

// handleResize records the new geometry at once and schedules a debounced
// evaluation. The first size message evaluates immediately.
func (m Model) handleResize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.term.cols = msg.Width
	m.railHover = false

	if !m.started {
		m.started = true
		m = m.evaluate(true)
		return m.refreshBody()
	}

	m.resizeSeq++
	seq := m.resizeSeq
	next, cmd := m.refreshBody()
	return next, tea.Batch(cmd, tea.Tick(m.cfg.Debounce, func(time.Time) tea.Msg {
		return evaluateMsg{seq: seq}
	}))
}

func (m Model) evaluate(start bool) Model {
	ctx := context.Background()
	eval := m.controller.Evaluate
	if start {
		eval = m.controller.Start
	}
	res, err := eval(ctx)
	if err != nil {
		m.lastErr = err
		m.status = fmt.Sprintf("layout update failed, staying %s", m.controller.Current().Tier())
		return m
	}
	if res.Changed {
		m.lastErr = nil
		m.status = fmt.Sprintf("%s → %s", res.From, res.To)
	}
	return m
}

// --- Keyboard ---

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.filter.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "enter":
			m.filter.Blur()
			return m.refreshBody()
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.pager.Page = 0
		next, load := m.refreshBody()
		return next, tea.Batch(cmd, load)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dismiss):
		m = m.dismiss()
	case key.Matches(msg, m.keys.Menu):
		m.menuOpen = !m.menuOpen
		m.profileOpen, m.notifyOpen = false, false
	case key.Matches(msg, m.keys.Sidebar):
		m.sidebarOpen = !m.sidebarOpen
	case key.Matches(msg, m.keys.Inbox):
		m.inboxOpen = !m.inboxOpen
	case key.Matches(msg, m.keys.Profile):
		m = m.toggleProfile()
	case key.Matches(msg, m.keys.Notifications):
		m = m.toggleNotifications()
	case key.Matches(msg, m.keys.NextPage):
		return m.switchPage((m.page + 1) % pageCount)
	case key.Matches(msg, m.keys.PrevPage):
		return m.switchPage((m.page + pageCount - 1) % pageCount)
	case key.Matches(msg, m.keys.Filter):
		if m.page != pageReadings {
			return m, nil
		}
		focus := m.filter.Focus()
		next, load := m.refreshBody()
		return next, tea.Batch(focus, load)
	case key.Matches(msg, m.keys.NextRecords):
		if m.page == pageReadings && m.frame().tier.StacksTables() {
			m.pager.NextPage()
			m.body.GotoTop()
		}
	case key.Matches(msg, m.keys.PrevRecords):
		if m.page == pageReadings && m.frame().tier.StacksTables() {
			m.pager.PrevPage()
			m.body.GotoTop()
		}
	case key.Matches(msg, m.keys.Refresh):
		m = m.regenerate()
	default:
		for i, b := range m.keys.Pages {
			if key.Matches(msg, b) {
				return m.switchPage(page(i))
			}
		}
		return m.scroll(msg)
	}
	return m.refreshBody()
}

// scroll hands navigation keys to the readings table when it is shown,
// otherwise to the body viewport.
func (m Model) scroll(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.page == pageReadings && !m.frame().tier.StacksTables() {
		m.table, cmd = m.table.Update(msg)
	} else {
		m.body, cmd = m.body.Update(msg)
	}
	next, load := m.refreshBody()
	return next, tea.Batch(cmd, load)
}

func (m Model) dismiss() Model {
	m.menuOpen = false
	m.profileOpen = false
	m.notifyOpen = false
	m.inboxOpen = false
	m.sidebarOpen = false
	return m
}

func (m Model) toggleProfile() Model {
	m.profileOpen = !m.profileOpen
	m.notifyOpen, m.menuOpen = false, false
	return m
}

func (m Model) toggleNotifications() Model {
	m.notifyOpen = !m.notifyOpen
	m.profileOpen, m.menuOpen = false, false
	return m
}

func (m Model) regenerate() Model {
	m.seed++
	m = m.loadReadings()
	m.logger.Info("sample readings regenerated", zap.Int64("seed", m.seed), zap.Int("records", len(m.readings)))
	return m
}

// switchPage mounts the page's regions and lets the controller apply
// overrides that were waiting for them, or revert those left behind.
func (m Model) switchPage(p page) (Model, tea.Cmd) {
	if p == m.page {
		m.menuOpen = false
		return m.refreshBody()
	}
	m.page = p
	m.menuOpen = false
	if m.frame().tier.CollapsesNavigation() {
		m.sidebarOpen = false
	}
	m.store.Mount(regionsFor(p)...)
	if _, err := m.controller.Sync(); err != nil {
		m.lastErr = err
		m.status = "layout sync failed"
	}
	m.body.GotoTop()
	return m.refreshBody()
}

func (m Model) activate(id string) Model {
	switch id {
	case actionRefresh:
		return m.regenerate()
	case actionAlerts:
		return m.toggleNotifications()
	case actionInbox:
		m.inboxOpen = !m.inboxOpen
	case actionProfile:
		return m.toggleProfile()
	}
	return m
}

// --- Mouse ---

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		return m.scroll(msg)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.handlePress(msg)
	case msg.Action == tea.MouseActionRelease:
		return m.handleRelease(msg)
	case msg.Action == tea.MouseActionMotion:
		return m.handleMotion(msg)
	}
	return m, nil
}

// handleMotion widens the very narrow rail while the pointer is over it
// and collapses it again once the pointer leaves.
func (m Model) handleMotion(msg tea.MouseMsg) (Model, tea.Cmd) {
	f := m.frame()
	over := f.tier == layout.VeryNarrow &&
		msg.X < f.dims.SidebarWidth &&
		msg.Y >= f.grid.Body.Y && msg.Y < f.grid.Footer.Y
	if over == m.railHover {
		return m, nil
	}
	m.railHover = over
	return m.refreshBody()
}

func (m Model) buttonAt(f frame, x, y int) (button, bool) {
	for _, b := range m.headerButtons(f) {
		if b.rect.X >= 0 && b.rect.Contains(x, y) {
			return b, true
		}
	}
	return button{}, false
}

// handlePress gives press feedback on action buttons, starts swipe
// tracking and closes whatever open pane the press landed outside of.
func (m Model) handlePress(msg tea.MouseMsg) (Model, tea.Cmd) {
	f := m.frame()
	m.dragging, m.dragStartY = true, msg.Y

	if b, ok := m.buttonAt(f, msg.X, msg.Y); ok {
		m.pressed = b.id
		return m, nil
	}
	if msg.Y < f.grid.Body.Y {
		if msg.Y == 0 && msg.X < 2 && f.tier.CollapsesNavigation() {
			m.menuOpen = !m.menuOpen
			m.profileOpen, m.notifyOpen = false, false
		}
		return m.refreshBody()
	}
	if msg.Y >= f.grid.Footer.Y {
		return m, nil
	}

	if msg.X < f.dims.SidebarWidth {
		if p, ok := sidebarPage(msg.Y - f.grid.Body.Y); ok {
			return m.switchPage(p)
		}
		return m, nil
	}
	if m.sidebarOpen && f.tier.CollapsesNavigation() {
		// The open sidebar overlays the page; a press beside it closes it.
		m.sidebarOpen = false
		return m.refreshBody()
	}
	if m.inboxOpen && !f.inboxRect().Contains(msg.X, msg.Y) {
		m.inboxOpen = false
		return m.refreshBody()
	}

	if panel, offset := m.overlay(f); panel != "" {
		ox, oy := f.contentOrigin()
		r := layoutRect(ox+offset, oy-m.body.YOffset, panel)
		if !r.Contains(msg.X, msg.Y) {
			m.menuOpen, m.profileOpen, m.notifyOpen = false, false, false
			return m.refreshBody()
		}
		if m.menuOpen {
			if p, ok := menuPage(msg.Y - r.Y); ok {
				return m.switchPage(p)
			}
		}
	}
	return m, nil
}

func (m Model) handleRelease(msg tea.MouseMsg) (Model, tea.Cmd) {
	f := m.frame()
	if m.pressed != "" {
		id := m.pressed
		m.pressed = ""
		if b, ok := m.buttonAt(f, msg.X, msg.Y); ok && b.id == id {
			m = m.activate(id)
		}
	}
	if m.dragging {
		m.dragging = false
		if dy := msg.Y - m.dragStartY; dy > swipeThreshold || dy < -swipeThreshold {
			dir := "down"
			if dy < 0 {
				dir = "up"
			}
			m.logger.Debug("swipe", zap.String("direction", dir), zap.Int("rows", abs(dy)))
			m.body.SetYOffset(m.body.YOffset - dy)
		}
	}
	return m.refreshBody()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
