package dashboard

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/soilution/fieldview/internal/tui/layout"
)

// snapshotLatency simulates fetching a field snapshot.
var snapshotLatency = 300 * time.Millisecond

type snapshot struct {
	reading Reading
	art     string
	loaded  bool
}

type snapshotLoadedMsg struct {
	index int
	art   string
}

// lazyLoader tracks which snapshot tiles still wait for their image.
// A tile is observed until it first intersects the visible viewport.
type lazyLoader struct {
	observed map[int]bool
}

func newLazyLoader(n int) *lazyLoader {
	l := &lazyLoader{observed: make(map[int]bool, n)}
	for i := range n {
		l.observed[i] = true
	}
	return l
}

// Observe registers tile i.
func (l *lazyLoader) Observe(i int) {
	l.observed[i] = true
}

// Pending reports how many tiles are still observed.
func (l *lazyLoader) Pending() int {
	return len(l.observed)
}

// Intersecting returns the observed tiles whose bounds intersect view, in
// order, and stops observing them.
func (l *lazyLoader) Intersecting(view layout.Rect, bounds func(i int) layout.Rect) []int {
	var hits []int
	for i := range l.observed {
		if bounds(i).Intersects(view) {
			hits = append(hits, i)
		}
	}
	sort.Ints(hits)
	for _, i := range hits {
		delete(l.observed, i)
	}
	return hits
}

// loadSnapshot renders a deterministic moisture map for r after the
// simulated fetch delay.
func loadSnapshot(index int, r Reading, width, height int) tea.Cmd {
	if width <= 0 || height <= 0 {
		return func() tea.Msg {
			return errMsg{fmt.Errorf("snapshot %d: no room for a %dx%d image", index, width, height)}
		}
	}
	return tea.Tick(snapshotLatency, func(time.Time) tea.Msg {
		return snapshotLoadedMsg{index: index, art: moistureMap(r, width, height)}
	})
}

var shades = []rune(" ░▒▓█")

func moistureMap(r Reading, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write(r.ID[:])
	state := h.Sum32()
	// Wetter fields skew toward darker shades.
	bias := int(r.Moisture / 25)

	lines := make([]string, height)
	for y := range height {
		var b strings.Builder
		for range width {
			state = state*1664525 + 1013904223
			idx := min(int(state>>29)%len(shades)+bias/2, len(shades)-1)
			b.WriteRune(shades[idx])
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
