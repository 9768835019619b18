package layout

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/soilution/fieldview/internal/responsive/signal"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		width    int
		expected Tier
	}{
		{0, VeryNarrow},
		{1, VeryNarrow},
		{320, VeryNarrow},
		{321, Narrow},
		{576, Narrow},
		{577, Mobile},
		{767, Mobile},
		{768, Tablet},
		{991, Tablet},
		{992, Desktop},
		{1200, Desktop},
		{1 << 30, Desktop},
	}

	for _, tc := range tests {
		for _, touch := range []bool{false, true} {
			result := Classify(signal.ViewportSignal{WidthPx: tc.width, IsTouchDevice: touch})
			if result != tc.expected {
				t.Errorf("Classify(%d, touch=%v) = %v, want %v", tc.width, touch, result, tc.expected)
			}
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prev := Classify(signal.ViewportSignal{WidthPx: 0})
	for w := 1; w <= 2000; w++ {
		cur := Classify(signal.ViewportSignal{WidthPx: w})
		if cur < prev {
			t.Fatalf("tier decreased at width %d: %v -> %v", w, prev, cur)
		}
		prev = cur
	}
}

func TestClassifyDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		sig := signal.ViewportSignal{WidthPx: rng.Intn(4000)}
		a, b := Classify(sig), Classify(sig)
		if a != b {
			t.Fatalf("Classify(%d) not deterministic: %v vs %v", sig.WidthPx, a, b)
		}
		if a == Unclassified {
			t.Fatalf("Classify(%d) returned Unclassified", sig.WidthPx)
		}
	}
}

func TestTierStringRoundTrip(t *testing.T) {
	for _, tier := range Tiers {
		got, err := ParseTier(tier.String())
		if err != nil {
			t.Fatalf("ParseTier(%q): %v", tier.String(), err)
		}
		if got != tier {
			t.Errorf("ParseTier(%q) = %v, want %v", tier.String(), got, tier)
		}
	}
	if _, err := ParseTier("unclassified"); err == nil {
		t.Error("ParseTier(unclassified) should fail")
	}
	if Tier(42).String() != "unknown" {
		t.Errorf("Tier(42).String() = %q", Tier(42).String())
	}
}

func TestTierClasses(t *testing.T) {
	if got := strings.Join(VeryNarrow.Classes(), " "); got != "mobile very-small-screen" {
		t.Errorf("VeryNarrow.Classes() = %q", got)
	}
	if got := strings.Join(Tablet.Classes(), " "); got != "tablet" {
		t.Errorf("Tablet.Classes() = %q", got)
	}
	if Unclassified.Classes() != nil {
		t.Error("Unclassified should have no classes")
	}
}

func TestTierStacksTables(t *testing.T) {
	want := map[Tier]bool{
		Unclassified: false,
		VeryNarrow:   true,
		Narrow:       true,
		Mobile:       true,
		Tablet:       false,
		Desktop:      false,
	}
	for tier, stacks := range want {
		if got := tier.StacksTables(); got != stacks {
			t.Errorf("%v.StacksTables() = %v, want %v", tier, got, stacks)
		}
	}
}

func TestNewRect(t *testing.T) {
	tests := []struct {
		name         string
		x, y, w, h   int
		wantW, wantH int
	}{
		{"normal", 0, 0, 10, 10, 10, 10},
		{"negative width", 0, 0, -5, 10, 0, 10},
		{"negative height", 0, 0, 10, -5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(tt.x, tt.y, tt.w, tt.h)
			if r.Width != tt.wantW || r.Height != tt.wantH {
				t.Errorf("NewRect() = %v, want w=%d h=%d", r, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	view := NewRect(0, 10, 80, 20)
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", NewRect(5, 12, 10, 3), true},
		{"above", NewRect(0, 0, 10, 10), false},
		{"touching top edge", NewRect(0, 9, 10, 2), true},
		{"below", NewRect(0, 30, 10, 3), false},
		{"empty", NewRect(5, 12, 0, 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Intersects(view); got != tt.want {
				t.Errorf("%v.Intersects(%v) = %v, want %v", tt.r, view, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 1, 3, 2)
	for _, p := range [][2]int{{2, 1}, {4, 2}} {
		if !r.Contains(p[0], p[1]) {
			t.Errorf("%v should contain %v", r, p)
		}
	}
	for _, p := range [][2]int{{1, 1}, {5, 1}, {2, 3}} {
		if r.Contains(p[0], p[1]) {
			t.Errorf("%v should not contain %v", r, p)
		}
	}
	if !NewRect(0, 0, 0, 4).Empty() {
		t.Error("zero width rect should be empty")
	}
}

func TestCalculateGrid(t *testing.T) {
	tests := []struct {
		name        string
		w, h        int
		wantBodyH   int
		wantFooterY int
	}{
		{"Standard (80x24)", 80, 24, 21, 23},
		{"Exact Chrome (80x3)", 80, 3, 0, 2},
		{"Too Small (80x1)", 80, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := CalculateGrid(tt.w, tt.h)
			if g.Body.Height != tt.wantBodyH {
				t.Errorf("Body.Height = %d, want %d", g.Body.Height, tt.wantBodyH)
			}
			if g.Footer.Y != tt.wantFooterY {
				t.Errorf("Footer.Y = %d, want %d", g.Footer.Y, tt.wantFooterY)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	dim := Calculate(120, 40, Tablet, 24, false)
	if dim.SidebarWidth != 24 {
		t.Errorf("SidebarWidth = %d, want 24", dim.SidebarWidth)
	}
	if dim.ContentWidth != 95 {
		t.Errorf("ContentWidth = %d, want 95", dim.ContentWidth)
	}
	if dim.BodyHeight != 37 {
		t.Errorf("BodyHeight = %d, want 37", dim.BodyHeight)
	}

	collapsed := Calculate(60, 20, Narrow, 24, false)
	if collapsed.SidebarWidth != 0 || collapsed.ContentWidth != 60 {
		t.Errorf("collapsed = %+v, want no sidebar", collapsed)
	}

	opened := Calculate(60, 20, Narrow, 24, true)
	if opened.SidebarWidth != 24 {
		t.Errorf("opened SidebarWidth = %d, want 24", opened.SidebarWidth)
	}

	rail := Calculate(40, 20, VeryNarrow, 7, false)
	if rail.SidebarWidth != 7 {
		t.Errorf("rail SidebarWidth = %d, want 7", rail.SidebarWidth)
	}
}

func TestDimensionsIsViable(t *testing.T) {
	if Calculate(10, 5, VeryNarrow, 0, false).IsViable() {
		t.Error("10x5 should not be viable")
	}
	if !Calculate(40, 20, VeryNarrow, 7, false).IsViable() {
		t.Error("40x20 should be viable")
	}
}

func TestStacks(t *testing.T) {
	if HStack(1) != "" {
		t.Error("HStack() should be empty")
	}
	if got := HStack(1, "a", "", "b"); got != "a b" {
		t.Errorf("HStack = %q, want %q", got, "a b")
	}
	if got := VStack(0, "a", "b"); got != "a\nb" {
		t.Errorf("VStack = %q, want %q", got, "a\nb")
	}
	if got := Flow(2, 1, 1, []string{"a", "b", "c"}); got != "a b\n   \nc  " {
		t.Errorf("Flow = %q", got)
	}
	if Flow(0, 1, 1, []string{"a"}) != "" {
		t.Error("Flow with no columns should be empty")
	}
	if got := Fill(4, "ab"); got != "ab  " {
		t.Errorf("Fill = %q", got)
	}
}
