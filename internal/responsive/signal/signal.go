// Package signal reads the raw viewport signals the tier classifier works
// from: the viewport width in pixels and whether the client is a touch
// device.
package signal

import (
	"os"
	"regexp"

	"golang.org/x/term"
)

// ViewportSignal is a single reading of the host environment.
type ViewportSignal struct {
	WidthPx       int
	IsTouchDevice bool
}

// Environment is the host surface the reader samples.
type Environment interface {
	// ViewportWidth returns the current viewport width in pixels.
	ViewportWidth() int
	// UserAgent returns the client's user-agent string.
	UserAgent() string
}

// Reader produces a fresh ViewportSignal on every call to Read.
type Reader struct {
	env Environment
}

// NewReader creates a reader over env.
func NewReader(env Environment) Reader {
	return Reader{env: env}
}

// Read samples the environment. It never caches.
func (r Reader) Read() ViewportSignal {
	if r.env == nil {
		return ViewportSignal{}
	}
	w := r.env.ViewportWidth()
	if w < 0 {
		w = 0
	}
	return ViewportSignal{
		WidthPx:       w,
		IsTouchDevice: IsTouchUserAgent(r.env.UserAgent()),
	}
}

var touchAgents = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// IsTouchUserAgent reports whether ua identifies a mobile/touch client.
func IsTouchUserAgent(ua string) bool {
	if ua == "" {
		return false
	}
	return touchAgents.MatchString(ua)
}

// DefaultCellWidthPx is the pixel width assumed for one terminal column.
const DefaultCellWidthPx = 8

// StaticEnvironment reports a fixed width and user agent.
type StaticEnvironment struct {
	WidthPx int
	Agent   string
}

func (s StaticEnvironment) ViewportWidth() int { return s.WidthPx }
func (s StaticEnvironment) UserAgent() string  { return s.Agent }

// TerminalEnvironment measures the controlling terminal.
// The viewport width is the column count times CellWidthPx.
type TerminalEnvironment struct {
	Fd          int
	CellWidthPx int
	Agent       string

	// size is swapped out in tests.
	size func(fd int) (int, int, error)
}

// NewTerminalEnvironment measures stdout.
func NewTerminalEnvironment(cellWidthPx int, agent string) *TerminalEnvironment {
	if cellWidthPx <= 0 {
		cellWidthPx = DefaultCellWidthPx
	}
	return &TerminalEnvironment{
		Fd:          int(os.Stdout.Fd()),
		CellWidthPx: cellWidthPx,
		Agent:       agent,
		size:        term.GetSize,
	}
}

// ViewportWidth returns 0 when the terminal size cannot be queried.
func (t *TerminalEnvironment) ViewportWidth() int {
	size := t.size
	if size == nil {
		size = term.GetSize
	}
	cols, _, err := size(t.Fd)
	if err != nil || cols < 0 {
		return 0
	}
	return ColumnsToPx(cols, t.CellWidthPx)
}

func (t *TerminalEnvironment) UserAgent() string { return t.Agent }

// ColumnsToPx converts a terminal column count into viewport pixels.
func ColumnsToPx(cols, cellWidthPx int) int {
	if cellWidthPx <= 0 {
		cellWidthPx = DefaultCellWidthPx
	}
	if cols < 0 {
		return 0
	}
	return cols * cellWidthPx
}
