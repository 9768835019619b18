package layout

import (
	"fmt"
	"strings"

	"github.com/soilution/fieldview/internal/responsive/signal"
)

// Tier represents viewport width categories for responsive layouts.
// Tiers are ordered by increasing width.
type Tier int

const (
	// Unclassified is the controller state before the first reading.
	// Classify never returns it.
	Unclassified Tier = iota - 1

	// VeryNarrow is for viewports <= 320px.
	// Compensation overrides apply here.
	VeryNarrow

	// Narrow is for viewports 321-576px.
	// Navigation collapses behind the sidebar toggle from here to Mobile.
	Narrow

	// Mobile is for viewports 577-767px.
	Mobile

	// Tablet is for viewports 768-991px.
	Tablet

	// Desktop is for viewports >= 992px.
	Desktop
)

// Thresholds for tier detection, inclusive upper bounds in pixels.
const (
	VeryNarrowMax = 320
	NarrowMax     = 576
	MobileMax     = 767
	TabletMax     = 991
)

// Tiers lists every classifiable tier in ascending order.
var Tiers = []Tier{VeryNarrow, Narrow, Mobile, Tablet, Desktop}

// Classify returns the tier for the given viewport signal.
// The touch flag never influences the tier.
func Classify(sig signal.ViewportSignal) Tier {
	return Detect(sig.WidthPx)
}

// Detect returns the tier for a width in pixels.
func Detect(widthPx int) Tier {
	switch {
	case widthPx <= VeryNarrowMax:
		return VeryNarrow
	case widthPx <= NarrowMax:
		return Narrow
	case widthPx <= MobileMax:
		return Mobile
	case widthPx <= TabletMax:
		return Tablet
	default:
		return Desktop
	}
}

// String returns the catalog name of the tier.
func (t Tier) String() string {
	switch t {
	case Unclassified:
		return "unclassified"
	case VeryNarrow:
		return "very-narrow"
	case Narrow:
		return "narrow"
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	case Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// ParseTier is the inverse of String for classifiable tiers.
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Tiers {
		if t.String() == name {
			return t, nil
		}
	}
	return Unclassified, fmt.Errorf("unknown tier %q", s)
}

// Classes returns the legacy presentation class names for the tier.
func (t Tier) Classes() []string {
	switch t {
	case VeryNarrow:
		return []string{"mobile", "very-small-screen"}
	case Narrow:
		return []string{"mobile", "small-screen"}
	case Mobile:
		return []string{"mobile"}
	case Tablet:
		return []string{"tablet"}
	case Desktop:
		return []string{"desktop"}
	default:
		return nil
	}
}

// CollapsesNavigation reports whether the sidebar is hidden behind a toggle.
// VeryNarrow keeps a compact rail instead.
func (t Tier) CollapsesNavigation() bool {
	return t == Narrow || t == Mobile
}

// StacksTables reports whether tables render as stacked label/value rows.
func (t Tier) StacksTables() bool {
	return t >= VeryNarrow && t <= Mobile
}
