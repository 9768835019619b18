package layout

// Grid splits the screen into the three fixed zones of the dashboard:
// a two-row header, the body and a one-row status line.
type Grid struct {
	Header Rect
	Body   Rect
	Footer Rect
}

const (
	HeaderHeight = 2 // title row and its bottom border
	FooterHeight = 1
)

// CalculateGrid allocates the header first, then the footer from the
// bottom; the body gets what is left. On very short screens the body
// collapses before the footer and the footer before the header.
func CalculateGrid(width, height int) Grid {
	width, height = max(width, 0), max(height, 0)

	headerH := min(HeaderHeight, height)
	footerH := min(FooterHeight, height-headerH)
	bodyH := height - headerH - footerH

	return Grid{
		Header: NewRect(0, 0, width, headerH),
		Body:   NewRect(0, headerH, width, bodyH),
		Footer: NewRect(0, headerH+bodyH, width, footerH),
	}
}
