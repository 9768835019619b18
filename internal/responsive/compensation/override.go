// Package compensation applies and reverts the per-tier catalog of region
// overrides through the two host primitives, capturing baselines so every
// transition can be undone exactly.
package compensation

import (
	"github.com/soilution/fieldview/internal/tui/layout"
)

// Override is a single property assignment targeting a named region.
type Override struct {
	Region   string `yaml:"region" json:"region"`
	Property string `yaml:"property" json:"property"`
	Value    string `yaml:"value" json:"value"`
}

// Key identifies the slot an override writes to.
type Key struct {
	Region   string
	Property string
}

// Key returns the (region, property) slot of the override.
func (o Override) Key() Key {
	return Key{Region: o.Region, Property: o.Property}
}

// Set is an ordered group of overrides. When two entries share a key the
// later one wins.
type Set []Override

// Normalize drops shadowed entries, keeping the position of the first
// occurrence and the value of the last.
func (s Set) Normalize() Set {
	if len(s) == 0 {
		return nil
	}
	idx := make(map[Key]int, len(s))
	out := make(Set, 0, len(s))
	for _, o := range s {
		if i, ok := idx[o.Key()]; ok {
			out[i] = o
			continue
		}
		idx[o.Key()] = len(out)
		out = append(out, o)
	}
	return out
}

// Profile is what the applicator transitions between: a tier plus the
// device class layered on top of it.
type Profile struct {
	Tier  layout.Tier
	Touch bool
}

// Unclassified is the profile before the first reading.
var Unclassified = Profile{Tier: layout.Unclassified}

func (p Profile) String() string {
	if p.Touch {
		return p.Tier.String() + "+touch"
	}
	return p.Tier.String()
}

// Surface is the host write surface. Setting an empty value clears the
// property back to the renderer default.
type Surface interface {
	SetRegionProperty(region, property, value string) error
	HasRegion(region string) bool
}

// BaselineReader is implemented by surfaces that can report the value a
// property holds before any override touched it.
type BaselineReader interface {
	RegionProperty(region, property string) (string, bool)
}
