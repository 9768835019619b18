// Package dashboard is the fieldview terminal dashboard. It hosts the
// responsive engine: resizes are debounced on the event loop, evaluated by
// the controller, and every pane reads its geometry from the RegionStore
// the compensation applicator writes to.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/soilution/fieldview/internal/config"
	"github.com/soilution/fieldview/internal/logging"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/soilution/fieldview/internal/responsive/engine"
	"github.com/soilution/fieldview/internal/responsive/signal"
	"github.com/soilution/fieldview/internal/tui/theme"
	"go.uber.org/zap"
)

type page int

const (
	pageOverview page = iota
	pageReadings
	pageSnapshots
	pageHelp
	pageCount
)

var pageNames = [pageCount]string{"Overview", "Readings", "Snapshots", "Help"}
var pageIcons = [pageCount]string{"▦", "≡", "▣", "?"}

// Regions present on every page. Drawers and dropdowns stay mounted while
// closed so their overrides survive toggling.
var chromeRegions = []string{
	compensation.RegionSidebar,
	compensation.RegionInbox,
	compensation.RegionProfileMenu,
	compensation.RegionNotifications,
	compensation.RegionMainContent,
	compensation.RegionActionButtons,
}

var pageRegions = [pageCount][]string{
	pageOverview: {
		compensation.RegionStatsGrid,
		compensation.RegionStatsCard,
		compensation.RegionStatsCardTitle,
		compensation.RegionStatsCardValue,
		compensation.RegionStatsCardIcon,
		compensation.RegionChartContainer,
		compensation.RegionChartTitle,
		compensation.RegionCropChart,
	},
	pageReadings: {
		compensation.RegionSearchInput,
		compensation.RegionReadingsTable,
	},
}

func regionsFor(p page) []string {
	out := append([]string(nil), chromeRegions...)
	return append(out, pageRegions[p]...)
}

// --- Messages ---

// evaluateMsg fires when a resize burst has been quiet for the debounce
// window. Only the latest sequence evaluates.
type evaluateMsg struct{ seq int }

type catalogMsg struct{ catalog compensation.Catalog }

type catalogClosedMsg struct{}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// terminal is the signal environment backed by the last window size.
type terminal struct {
	cols   int
	cellPx int
	agent  string
}

func (t *terminal) ViewportWidth() int { return signal.ColumnsToPx(t.cols, t.cellPx) }
func (t *terminal) UserAgent() string  { return t.agent }

// Options configures a dashboard Model.
type Options struct {
	Config  *config.Config
	Catalog compensation.Catalog
	// Catalogs delivers reloaded catalogs, e.g. from engine.WatchCatalog.
	Catalogs <-chan compensation.Catalog
	Theme    theme.Theme
	Logger   *zap.Logger
	// Now stamps the sample readings. Defaults to time.Now.
	Now func() time.Time
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	cfg    *config.Config
	keys   keyMap
	theme  theme.Theme
	logger *zap.Logger
	now    func() time.Time

	term       *terminal
	store      *RegionStore
	controller *engine.Controller
	chart      *cropChart
	helpDoc    *helpView
	catalogs   <-chan compensation.Catalog

	width, height int
	resizeSeq     int
	started       bool

	page        page
	menuOpen    bool
	sidebarOpen bool
	inboxOpen   bool
	profileOpen bool
	notifyOpen  bool

	pressed    string
	dragging   bool
	dragStartY int
	railHover  bool

	seed        int64
	dataVersion int
	readings    []Reading
	summary     Summary
	counts      []CropCount
	alerts      []string
	inbox       []string

	table    table.Model
	tableKey tableKey
	filter   textinput.Model
	pager    paginator.Model
	body     viewport.Model
	spinner  spinner.Model
	help     help.Model

	snapshots []snapshot
	loader    *lazyLoader
	loadBar   progress.Model

	status  string
	lastErr error
}

// New builds the dashboard. The engine starts Unclassified and performs its
// first evaluation on the first window size message.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named(logging.Dashboard)
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	th := opts.Theme
	term := &terminal{cellPx: cfg.CellWidthPx, agent: cfg.UserAgent}
	store := NewRegionStore(regionsFor(pageOverview)...)
	chart := newCropChart()

	ctrl := engine.New(signal.NewReader(term), store, opts.Catalog, engine.Options{
		Debounce:      cfg.Debounce,
		RefreshCharts: chart.Refresh,
		OnTransition: func(from, to engine.State) {
			logger.Debug("body classes",
				zap.Strings("removed", from.Tier().Classes()),
				zap.Strings("added", to.Tier().Classes()))
		},
		Logger: logger.Named(logging.Engine),
	})

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter by crop or field"
	filter.CharLimit = 32

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(th.Palette.Accent)

	tbl := table.New(table.WithFocused(true))
	tbl.SetStyles(tableStyles(th))

	pg := paginator.New()
	pg.Type = paginator.Dots
	pg.PerPage = recordsPerPage
	pg.InactiveDot = th.Styles.Dim.Render("•")
	pg.ActiveDot = th.Styles.Accent.Render("◉")

	// Gradients blend hex colors; 256-color palettes get a solid fill.
	fill := progress.WithScaledGradient(th.Hex(th.Palette.AccentStrong), th.Hex(th.Palette.Accent))
	if th.Is256 {
		fill = progress.WithSolidFill(th.Hex(th.Palette.Accent))
	}
	bar := progress.New(fill, progress.WithoutPercentage())

	h := help.New()
	h.Styles.ShortKey = th.Styles.Accent
	h.Styles.ShortDesc = th.Styles.Dim

	m := Model{
		cfg:        cfg,
		keys:       defaultKeyMap(),
		theme:      th,
		logger:     logger,
		now:        now,
		term:       term,
		store:      store,
		controller: ctrl,
		chart:      chart,
		helpDoc:    &helpView{},
		catalogs:   opts.Catalogs,
		seed:       cfg.Sample.Seed,
		table:      tbl,
		filter:     filter,
		pager:      pg,
		loadBar:    bar,
		body:       viewport.New(0, 0),
		spinner:    sp,
		help:       h,
	}
	return m.loadReadings()
}

// Init starts the spinner and, when configured, the catalog listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.catalogs != nil {
		cmds = append(cmds, waitForCatalog(m.catalogs))
	}
	return tea.Batch(cmds...)
}

// Controller exposes the engine for inspection.
func (m Model) Controller() *engine.Controller {
	return m.controller
}

// Regions exposes the region store for inspection.
func (m Model) Regions() *RegionStore {
	return m.store
}

func waitForCatalog(ch <-chan compensation.Catalog) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return catalogClosedMsg{}
		}
		return catalogMsg{catalog: c}
	}
}

// loadReadings regenerates the sample data from m.seed.
func (m Model) loadReadings() Model {
	m.readings = GenerateReadings(m.cfg.Sample.Records, m.seed, m.now())
	m.summary = Summarize(m.readings)
	m.counts = CountCrops(m.readings)
	m.alerts = buildAlerts(m.readings)
	m.inbox = buildInbox(m.readings, m.now())
	m.dataVersion++

	m.snapshots = make([]snapshot, len(m.readings))
	for i, r := range m.readings {
		m.snapshots[i] = snapshot{reading: r}
	}
	m.loader = newLazyLoader(len(m.snapshots))
	return m
}
