package theme

// Space defines the spacing scale in terminal cells.
var Space = struct {
	None int
	XS   int
	SM   int
	MD   int
	LG   int
}{
	None: 0,
	XS:   1,
	SM:   2,
	MD:   4,
	LG:   6,
}

// Width defines default pane widths in terminal cells. Compensation
// overrides replace these per region; a cleared override falls back here.
var Width = struct {
	Sidebar  int // navigation sidebar
	Rail     int // icon-only sidebar
	Inbox    int // inbox drawer
	Dropdown int // profile and notification dropdowns
	Card     int // minimum stats card width
	Search   int // readings filter input
}{
	Sidebar:  22,
	Rail:     7,
	Inbox:    36,
	Dropdown: 32,
	Card:     18,
	Search:   28,
}

// Height defines default heights in terminal rows.
var Height = struct {
	Chart    int
	Snapshot int
}{
	Chart:    12,
	Snapshot: 7,
}
