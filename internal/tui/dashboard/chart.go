package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/soilution/fieldview/internal/tui/layout"
	"github.com/soilution/fieldview/internal/tui/theme"
)

// Legend placements understood by the crop-history-chart region.
const (
	legendRight  = "right"
	legendBottom = "bottom"
)

const (
	barWidth = 2
	barGap   = 1
)

type chartGeometry struct {
	width, height int
	legend        string
	dataVersion   int
}

// cropChart renders recommendation counts as vertical bars. Layout is
// cached until the geometry or data changes, or Refresh is called.
type cropChart struct {
	geom      chartGeometry
	cached    string
	valid     bool
	refreshes int
}

func newCropChart() *cropChart {
	return &cropChart{}
}

// Refresh drops the cached layout so the next render measures again.
func (c *cropChart) Refresh() {
	c.valid = false
	c.refreshes++
}

// Refreshes counts Refresh calls.
func (c *cropChart) Refreshes() int {
	return c.refreshes
}

func (c *cropChart) Render(p theme.Palette, counts []CropCount, g chartGeometry) string {
	if c.valid && c.geom == g {
		return c.cached
	}
	c.geom = g
	c.cached = drawChart(p, counts, g)
	c.valid = true
	return c.cached
}

func drawChart(p theme.Palette, counts []CropCount, g chartGeometry) string {
	if g.width <= 0 || g.height <= 0 {
		return ""
	}
	if len(counts) == 0 {
		return lipgloss.NewStyle().Foreground(p.TextDim).Render("No crop history yet")
	}

	// A right legend is a column of "█ crop n" lines two cells from the bars.
	legendW, plotW := 0, g.width
	if g.legend == legendRight {
		for _, c := range counts {
			legendW = max(legendW, lipgloss.Width(legendEntry(c))+2)
		}
		legendW = min(legendW, g.width/2)
		plotW = g.width - legendW - 2
	}
	n := min(len(counts), max((plotW+barGap)/(barWidth+barGap), 1))
	shown := counts[:n]

	plotH := g.height
	var legendLines []string
	for i, c := range shown {
		sw := lipgloss.NewStyle().Foreground(p.SeriesColor(i)).Render("█")
		legendLines = append(legendLines, sw+" "+legendEntry(c))
	}
	var legend string
	if g.legend == legendBottom {
		legend = wrapLegend(legendLines, g.width)
		plotH = max(plotH-lipgloss.Height(legend), 1)
	} else {
		for i := range legendLines {
			legendLines[i] = truncateStyled(legendLines[i], legendW)
		}
		legend = strings.Join(legendLines, "\n")
	}

	peak := shown[0].Count
	for _, c := range shown {
		peak = max(peak, c.Count)
	}

	rows := make([]string, plotH)
	for row := range plotH {
		level := plotH - row
		var b strings.Builder
		for i, c := range shown {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", barGap))
			}
			h := c.Count * plotH / peak
			if h == 0 && c.Count > 0 {
				h = 1
			}
			cell := strings.Repeat(" ", barWidth)
			if h >= level {
				cell = lipgloss.NewStyle().Foreground(p.SeriesColor(i)).Render(strings.Repeat("█", barWidth))
			}
			b.WriteString(cell)
		}
		rows[row] = b.String()
	}
	plot := strings.Join(rows, "\n")

	if g.legend == legendBottom {
		return layout.VStack(0, plot, legend)
	}
	return layout.HStack(2, plot, legend)
}

func legendEntry(c CropCount) string {
	return fmt.Sprintf("%s %d", c.Crop, c.Count)
}

// wrapLegend flows entries into lines no wider than width.
func wrapLegend(entries []string, width int) string {
	var lines []string
	var cur string
	for _, e := range entries {
		switch {
		case cur == "":
			cur = e
		case lipgloss.Width(cur)+2+lipgloss.Width(e) <= width:
			cur += "  " + e
		default:
			lines = append(lines, cur)
			cur = e
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return strings.Join(lines, "\n")
}

func truncateStyled(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().MaxWidth(n).Render(s)
}
