package compensation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soilution/fieldview/internal/tui/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	veryNarrow = Profile{Tier: layout.VeryNarrow}
	narrow     = Profile{Tier: layout.Narrow}
	desktop    = Profile{Tier: layout.Desktop}
)

func testCatalog() Catalog {
	return Catalog{
		Tiers: map[layout.Tier]Set{
			layout.VeryNarrow: {
				{"sidebar", "width", "7"},
				{"stats-card", "padding", "0"},
				{"chart", "height", "8"},
			},
		},
		Touch: Set{
			{"buttons", "padding", "0 2"},
			{"sidebar", "width", "9"},
		},
	}
}

func allRegions() *fakeSurface {
	return newFakeSurface("sidebar", "stats-card", "chart", "buttons")
}

func TestApplyTransitionAppliesVeryNarrowSet(t *testing.T) {
	s := allRegions()
	a := NewApplicator(s, testCatalog())

	rep, err := a.ApplyTransition(Unclassified, veryNarrow)
	require.NoError(t, err)

	assert.Len(t, rep.Applied, 3)
	assert.Empty(t, rep.Reverted)
	assert.Equal(t, "7", s.regions["sidebar"]["width"])
	assert.Equal(t, "8", s.regions["chart"]["height"])
	assert.Equal(t, testCatalog().Tiers[layout.VeryNarrow], a.Applied().sorted())
}

func TestApplyTransitionNoOpOnSameProfile(t *testing.T) {
	s := allRegions()
	a := NewApplicator(s, testCatalog())

	rep, err := a.ApplyTransition(veryNarrow, veryNarrow)
	require.NoError(t, err)
	assert.Zero(t, rep.Mutations())
	assert.Zero(t, s.writes)
}

func TestApplyTransitionIdempotent(t *testing.T) {
	s := allRegions()
	a := NewApplicator(s, testCatalog())

	_, err := a.ApplyTransition(narrow, veryNarrow)
	require.NoError(t, err)
	once := s.state()
	writes := s.writes

	rep, err := a.ApplyTransition(narrow, veryNarrow)
	require.NoError(t, err)
	assert.Zero(t, rep.Mutations())
	assert.Equal(t, writes, s.writes)
	if diff := cmp.Diff(once, s.state()); diff != "" {
		t.Errorf("state changed on re-application (-once +twice):\n%s", diff)
	}
}

func TestApplyTransitionReversible(t *testing.T) {
	s := allRegions()
	// Non-default baselines that existed before the engine ran.
	s.regions["sidebar"]["width"] = "24"
	s.regions["stats-card"]["padding"] = "1 2"
	before := s.state()

	a := NewApplicator(s, testCatalog())
	_, err := a.ApplyTransition(desktop, veryNarrow)
	require.NoError(t, err)
	assert.Equal(t, "7", s.regions["sidebar"]["width"])

	rep, err := a.ApplyTransition(veryNarrow, desktop)
	require.NoError(t, err)
	assert.Len(t, rep.Reverted, 3)
	if diff := cmp.Diff(before, s.state()); diff != "" {
		t.Errorf("state not restored (-before +after):\n%s", diff)
	}
	assert.Empty(t, a.Applied())
}

func TestApplyTransitionWithoutBaselineReaderClears(t *testing.T) {
	f := allRegions()
	a := NewApplicator(writeOnly{f}, testCatalog())

	_, err := a.ApplyTransition(narrow, veryNarrow)
	require.NoError(t, err)
	_, err = a.ApplyTransition(veryNarrow, narrow)
	require.NoError(t, err)

	_, ok := f.regions["sidebar"]["width"]
	assert.False(t, ok, "reverting without a baseline reader should clear the property")
}

func TestApplyTransitionToleratesMissingRegion(t *testing.T) {
	s := newFakeSurface("sidebar", "chart", "unrelated")
	s.regions["unrelated"]["width"] = "3"
	a := NewApplicator(s, testCatalog())

	rep, err := a.ApplyTransition(narrow, veryNarrow)
	require.NoError(t, err)

	assert.Len(t, rep.Applied, 2)
	assert.Equal(t, []Override{{"stats-card", "padding", "0"}}, rep.Skipped)
	assert.Equal(t, map[string]string{"width": "3"}, s.regions["unrelated"])
	assert.False(t, s.HasRegion("stats-card"))
}

func TestRevertDeferredUntilRegionReturns(t *testing.T) {
	s := allRegions()
	a := NewApplicator(s, testCatalog())
	_, err := a.ApplyTransition(narrow, veryNarrow)
	require.NoError(t, err)

	// The chart leaves the page, then the viewport widens.
	chart := s.regions["chart"]
	delete(s.regions, "chart")
	rep, err := a.ApplyTransition(veryNarrow, narrow)
	require.NoError(t, err)
	assert.Equal(t, []Override{{"chart", "height", ""}}, rep.Skipped)

	// Back on the page: the pending revert goes through.
	s.regions["chart"] = chart
	rep, err = a.Sync(narrow)
	require.NoError(t, err)
	assert.Equal(t, []Override{{"chart", "height", ""}}, rep.Reverted)
	assert.Empty(t, s.regions["chart"])
	assert.Empty(t, a.Applied())
}

func TestTouchLayering(t *testing.T) {
	s := allRegions()
	a := NewApplicator(s, testCatalog())

	_, err := a.ApplyTransition(Unclassified, Profile{Tier: layout.Desktop, Touch: true})
	require.NoError(t, err)
	assert.Equal(t, "9", s.regions["sidebar"]["width"])
	assert.Equal(t, "0 2", s.regions["buttons"]["padding"])

	// Tier entries win over touch entries.
	_, err = a.ApplyTransition(Profile{Tier: layout.Desktop, Touch: true}, Profile{Tier: layout.VeryNarrow, Touch: true})
	require.NoError(t, err)
	assert.Equal(t, "7", s.regions["sidebar"]["width"])

	_, err = a.ApplyTransition(Profile{Tier: layout.VeryNarrow, Touch: true}, Profile{Tier: layout.Desktop, Touch: true})
	require.NoError(t, err)
	assert.Equal(t, "9", s.regions["sidebar"]["width"])
	assert.Empty(t, s.regions["chart"])
}

func TestPrimitiveFailureRollsBack(t *testing.T) {
	s := allRegions()
	s.regions["sidebar"]["width"] = "24"
	s.failOn["stats-card.padding=0"] = true
	before := s.state()

	a := NewApplicator(s, testCatalog())
	rep, err := a.ApplyTransition(desktop, veryNarrow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrimitiveFailure))

	var perr *PrimitiveError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "set", perr.Op)
	assert.Equal(t, "stats-card", perr.Override.Region)
	assert.NoError(t, perr.RollbackErr)

	assert.Zero(t, rep.Mutations())
	assert.Empty(t, a.Applied())
	if diff := cmp.Diff(before, s.state()); diff != "" {
		t.Errorf("partial application observable (-before +after):\n%s", diff)
	}

	// The next attempt goes through once the surface recovers.
	delete(s.failOn, "stats-card.padding=0")
	_, err = a.ApplyTransition(desktop, veryNarrow)
	require.NoError(t, err)
	assert.Equal(t, "7", s.regions["sidebar"]["width"])
}

func TestPrimitivePanicRollsBack(t *testing.T) {
	s := allRegions()
	a := NewApplicator(s, testCatalog())
	_, err := a.ApplyTransition(desktop, veryNarrow)
	require.NoError(t, err)
	applied := a.Applied()
	mid := s.state()

	// Reverting the stats card panics after two reverts went through.
	s.panicOn["stats-card.padding="] = true
	_, err = a.ApplyTransition(veryNarrow, desktop)
	require.ErrorIs(t, err, ErrPrimitiveFailure)
	assert.Contains(t, err.Error(), "panic")

	assert.Equal(t, applied, a.Applied())
	if diff := cmp.Diff(mid, s.state()); diff != "" {
		t.Errorf("surface not restored after panic (-want +got):\n%s", diff)
	}
}

func TestBaselinePanicRollsBack(t *testing.T) {
	s := allRegions()
	a := NewApplicator(s, testCatalog())
	before := s.state()

	// The sidebar is written before the stats card baseline read.
	s.readPanic["stats-card.padding"] = true
	_, err := a.ApplyTransition(desktop, veryNarrow)
	require.ErrorIs(t, err, ErrPrimitiveFailure)
	var perr *PrimitiveError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "baseline", perr.Op)
	assert.NoError(t, perr.RollbackErr)

	assert.Empty(t, a.Applied())
	assert.False(t, a.Pending())
	if diff := cmp.Diff(before, s.state()); diff != "" {
		t.Errorf("surface not restored after baseline panic (-want +got):\n%s", diff)
	}
}

func TestSameProfileSettlesPendingWrites(t *testing.T) {
	s := allRegions()
	a := NewApplicator(s, testCatalog())
	chart := s.regions["chart"]
	delete(s.regions, "chart")

	rep, err := a.ApplyTransition(desktop, veryNarrow)
	require.NoError(t, err)
	assert.Equal(t, []Override{{"chart", "height", "8"}}, rep.Skipped)
	assert.True(t, a.Pending())

	s.regions["chart"] = chart
	rep, err = a.ApplyTransition(veryNarrow, veryNarrow)
	require.NoError(t, err)
	assert.Equal(t, []Override{{"chart", "height", "8"}}, rep.Applied)
	assert.Equal(t, "8", s.regions["chart"]["height"])
	assert.False(t, a.Pending())

	writes := s.writes
	rep, err = a.ApplyTransition(veryNarrow, veryNarrow)
	require.NoError(t, err)
	assert.Zero(t, rep.Mutations())
	assert.Equal(t, writes, s.writes)
}

func TestReplaceCatalog(t *testing.T) {
	s := allRegions()
	a := NewApplicator(s, testCatalog())
	_, err := a.ApplyTransition(desktop, veryNarrow)
	require.NoError(t, err)

	next := Catalog{Tiers: map[layout.Tier]Set{
		layout.VeryNarrow: {{"sidebar", "width", "5"}},
	}}
	rep, err := a.Replace(next, veryNarrow)
	require.NoError(t, err)

	assert.Equal(t, []Override{{"sidebar", "width", "5"}}, rep.Applied)
	assert.Len(t, rep.Reverted, 2)
	assert.Equal(t, Set{{"sidebar", "width", "5"}}, a.Applied())

	// Reverting to desktop restores the original baseline, not the
	// intermediate value of the old catalog.
	_, err = a.ApplyTransition(veryNarrow, desktop)
	require.NoError(t, err)
	_, ok := s.regions["sidebar"]["width"]
	assert.False(t, ok)
}

func TestReplaceFailureKeepsCatalog(t *testing.T) {
	s := allRegions()
	a := NewApplicator(s, testCatalog())
	s.failOn["sidebar.width=5"] = true

	next := Catalog{Tiers: map[layout.Tier]Set{
		layout.VeryNarrow: {{"sidebar", "width", "5"}},
	}}
	_, err := a.Replace(next, veryNarrow)
	require.Error(t, err)
	assert.Equal(t, testCatalog(), a.Catalog())
}

func (s Set) sorted() Set {
	out := append(Set(nil), s...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func less(a, b Override) bool {
	if a.Region != b.Region {
		return a.Region < b.Region
	}
	return a.Property < b.Property
}
