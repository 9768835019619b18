package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/soilution/fieldview/internal/tui/layout"
	"github.com/soilution/fieldview/internal/tui/theme"
)

type statCard struct {
	icon  string
	short string
	full  string
	unit  string
	value func(Summary) float64
	prec  int
}

var statCards = []statCard{
	{"◆", "N", "Nitrogen", "mg/kg", func(s Summary) float64 { return s.Nitrogen }, 1},
	{"◇", "P", "Phosphorus", "mg/kg", func(s Summary) float64 { return s.Phosphorus }, 1},
	{"●", "K", "Potassium", "mg/kg", func(s Summary) float64 { return s.Potassium }, 1},
	{"☼", "T", "Temperature", "°C", func(s Summary) float64 { return s.Temperature }, 1},
	{"≈", "H₂O", "Moisture", "%", func(s Summary) float64 { return s.Moisture }, 1},
	{"±", "pH", "Soil pH", "", func(s Summary) float64 { return s.PH }, 2},
	{"ϟ", "EC", "Conductivity", "dS/m", func(s Summary) float64 { return s.Conductivity }, 2},
}

// maxCardColumns mirrors the dashboard grid: two columns on handsets,
// four on tablets, all seven on desktops.
func maxCardColumns(t layout.Tier) int {
	switch {
	case t >= layout.Desktop:
		return len(statCards)
	case t == layout.Tablet:
		return 4
	default:
		return 2
	}
}

// cardStyle collects the region properties that shape a stats card.
type cardStyle struct {
	gap       int
	padding   Box
	marginBot int
	titleMode string
	valueMode string
	showIcon  bool
}

func readCardStyle(st *RegionStore) cardStyle {
	return cardStyle{
		gap:       st.Int(compensation.RegionStatsGrid, "gap", 1),
		padding:   st.Box(compensation.RegionStatsCard, "padding", Box{0, 1, 0, 1}),
		marginBot: st.Int(compensation.RegionStatsCard, "margin-bottom", 1),
		titleMode: st.Value(compensation.RegionStatsCardTitle, "label-mode", "full"),
		valueMode: st.Value(compensation.RegionStatsCardValue, "label-mode", "full"),
		showIcon:  st.Value(compensation.RegionStatsCardIcon, "display", "inline") != "none",
	}
}

func (c statCard) title(mode string) string {
	if mode == "short" {
		return c.short
	}
	return c.full
}

func (c statCard) formatValue(s Summary, mode string) string {
	v := fmt.Sprintf("%.*f", c.prec, c.value(s))
	if mode == "short" || c.unit == "" {
		return v
	}
	return v + " " + c.unit
}

// cardColumns picks how many cards fit per row in width cells.
func cardColumns(tier layout.Tier, width int, cs cardStyle) int {
	minCard := cs.padding.Horizontal() + 2 + 6
	cols := maxCardColumns(tier)
	for cols > 1 && (width-cs.gap*(cols-1))/cols < minCard {
		cols--
	}
	return cols
}

func renderStats(st *RegionStore, th theme.Theme, tier layout.Tier, sum Summary, width int) string {
	if width <= 0 {
		return ""
	}
	cs := readCardStyle(st)
	cols := cardColumns(tier, width, cs)
	cardW := max((width-cs.gap*(cols-1))/cols, 3)
	inner := max(cardW-2-cs.padding.Horizontal(), 1)

	s := th.Styles
	box := s.Card.
		Padding(cs.padding.Top, cs.padding.Right, cs.padding.Bottom, cs.padding.Left).
		Width(cardW - 2)

	cards := make([]string, 0, len(statCards))
	for _, c := range statCards {
		title := c.title(cs.titleMode)
		if cs.showIcon {
			title = s.CardIcon.Render(c.icon) + " " + s.CardTitle.Render(truncate(title, inner-2))
		} else {
			title = s.CardTitle.Render(truncate(title, inner))
		}
		value := s.CardValue.Render(truncate(c.formatValue(sum, cs.valueMode), inner))
		cards = append(cards, box.Render(lipgloss.JoinVertical(lipgloss.Left, title, value)))
	}

	return layout.Flow(cols, cs.gap, cs.marginBot, cards)
}

// truncate shortens plain text to n cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
