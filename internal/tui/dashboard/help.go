package dashboard

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Keyboard reference

| Key | Action |
| --- | --- |
| 1-4, tab | switch page |
| m | toggle the navigation menu |
| s | open or close the sidebar |
| i | toggle the inbox drawer |
| p | toggle the profile dropdown |
| n | toggle the notifications dropdown |
| / | filter readings by crop or field |
| [ ] | page through stacked readings |
| r | regenerate sample readings |
| esc | close dropdowns, drawer and sidebar |
| q | quit |

## Layout tiers

The dashboard classifies the terminal width into a tier and applies the
compensation overrides for it. Width in pixels is columns multiplied by the
configured cell width.

- **very-narrow**: up to 320px. Compact labels, icon rail, stacked chart legend.
- **narrow**: 321 to 576px. Navigation collapses behind the menu.
- **mobile**: 577 to 767px. Tables stack into label rows.
- **tablet**: 768 to 991px.
- **desktop**: 992px and wider.
`

// helpView renders the keyboard reference, re-rendering only when the
// width or style changes.
type helpView struct {
	style    string
	width    int
	rendered string
}

func (h *helpView) Render(width int, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	if h.rendered != "" && h.width == width && h.style == style {
		return h.rendered, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-4, 10)),
	)
	if err != nil {
		return helpMarkdown, err
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown, err
	}
	h.width, h.style = width, style
	h.rendered = strings.TrimRight(out, "\n")
	return h.rendered, nil
}
