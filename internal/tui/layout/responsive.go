package layout

// Dimensions holds the current terminal dimensions and derived layout values.
type Dimensions struct {
	// Raw terminal size
	Width  int
	Height int

	// Derived values
	Tier         Tier
	SidebarWidth int
	ContentWidth int
	BodyHeight   int
}

// Calculate computes layout dimensions for a terminal size.
// sidebarW is the sidebar width currently in effect; it is dropped when
// the tier collapses navigation and the sidebar is not open.
func Calculate(width, height int, tier Tier, sidebarW int, sidebarOpen bool) Dimensions {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	if tier.CollapsesNavigation() && !sidebarOpen {
		sidebarW = 0
	}
	if sidebarW > width {
		sidebarW = width
	}
	if sidebarW < 0 {
		sidebarW = 0
	}

	grid := CalculateGrid(width, height)
	bodyHeight := grid.Body.Height
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	// Content is what remains right of the sidebar and its border.
	contentW := width - sidebarW
	if sidebarW > 0 {
		contentW--
	}
	if contentW < 0 {
		contentW = 0
	}

	return Dimensions{
		Width:        width,
		Height:       height,
		Tier:         tier,
		SidebarWidth: sidebarW,
		ContentWidth: contentW,
		BodyHeight:   bodyHeight,
	}
}

// MinWidth is the minimum supported terminal width.
const MinWidth = 20

// MinHeight is the minimum supported terminal height.
const MinHeight = 8

// IsViable returns true if the terminal is large enough for the dashboard.
func (d Dimensions) IsViable() bool {
	return d.Width >= MinWidth && d.Height >= MinHeight
}

// TooSmallMessage returns a message to display when terminal is too small.
func TooSmallMessage() string {
	return "Terminal too small. Need at least 20×8."
}
