package layout

import "fmt"

// Rect is a cell rectangle in screen space, origin at the top-left.
// Width and Height are never negative.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect clamps negative sizes to zero.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: max(w, 0), Height: max(h, 0)}
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@%d,%d", r.Width, r.Height, r.X, r.Y)
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.Width == 0 || r.Height == 0 }

// Contains reports whether the cell at x, y lies inside r. Mouse hit
// testing goes through it.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}
