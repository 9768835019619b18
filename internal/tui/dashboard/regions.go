package dashboard

import (
	"sort"
	"strconv"
	"strings"
)

// RegionStore is the style sheet the compensation applicator writes to.
// Each named region carries a property map the renderer consults before
// falling back to its built-in defaults. Presence follows the active page.
//
// It is owned by the bubbletea event loop and is not safe for concurrent use.
type RegionStore struct {
	props   map[string]map[string]string
	mounted map[string]bool
}

// NewRegionStore returns a store with the given regions mounted.
func NewRegionStore(regions ...string) *RegionStore {
	s := &RegionStore{
		props:   make(map[string]map[string]string),
		mounted: make(map[string]bool),
	}
	s.Mount(regions...)
	return s
}

// SetRegionProperty sets or, for an empty value, clears a property.
func (s *RegionStore) SetRegionProperty(region, property, value string) error {
	if value == "" {
		if p, ok := s.props[region]; ok {
			delete(p, property)
			if len(p) == 0 {
				delete(s.props, region)
			}
		}
		return nil
	}
	p, ok := s.props[region]
	if !ok {
		p = make(map[string]string)
		s.props[region] = p
	}
	p[property] = value
	return nil
}

// HasRegion reports whether region is rendered on the current page.
func (s *RegionStore) HasRegion(region string) bool {
	return s.mounted[region]
}

// RegionProperty returns the explicitly set value of a property.
func (s *RegionStore) RegionProperty(region, property string) (string, bool) {
	v, ok := s.props[region][property]
	return v, ok
}

// Mount replaces the set of present regions.
func (s *RegionStore) Mount(regions ...string) {
	s.mounted = make(map[string]bool, len(regions))
	for _, r := range regions {
		s.mounted[r] = true
	}
}

// Mounted lists the present regions in sorted order.
func (s *RegionStore) Mounted() []string {
	out := make([]string, 0, len(s.mounted))
	for r := range s.mounted {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Value returns the property value or def.
func (s *RegionStore) Value(region, property, def string) string {
	if v, ok := s.RegionProperty(region, property); ok {
		return v
	}
	return def
}

// Int returns the property as a non-negative integer, or def when it is
// unset or unparsable.
func (s *RegionStore) Int(region, property string, def int) int {
	v, ok := s.RegionProperty(region, property)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// Size resolves a length property that is either a cell count ("24") or a
// percentage of container ("100%"). The result never exceeds container.
func (s *RegionStore) Size(region, property string, container, def int) int {
	n := def
	if v, ok := s.RegionProperty(region, property); ok {
		if resolved, ok := parseLength(v, container); ok {
			n = resolved
		}
	}
	if n > container {
		n = container
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Box resolves a padding-like property written in the one, two or four
// value shorthand ("1", "0 2", "1 2 1 2"). The result is top, right,
// bottom, left.
func (s *RegionStore) Box(region, property string, def Box) Box {
	v, ok := s.RegionProperty(region, property)
	if !ok {
		return def
	}
	b, ok := parseBox(v)
	if !ok {
		return def
	}
	return b
}

// Box is a top, right, bottom, left quadruple in cells.
type Box struct {
	Top, Right, Bottom, Left int
}

// Horizontal is Left + Right.
func (b Box) Horizontal() int { return b.Left + b.Right }

// Vertical is Top + Bottom.
func (b Box) Vertical() int { return b.Top + b.Bottom }

func parseLength(v string, container int) (int, bool) {
	v = strings.TrimSpace(v)
	if pct, ok := strings.CutSuffix(v, "%"); ok {
		n, err := strconv.Atoi(pct)
		if err != nil || n < 0 {
			return 0, false
		}
		return container * n / 100, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseBox(v string) (Box, bool) {
	fields := strings.Fields(v)
	vals := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return Box{}, false
		}
		vals[i] = n
	}
	switch len(vals) {
	case 1:
		return Box{vals[0], vals[0], vals[0], vals[0]}, true
	case 2:
		return Box{vals[0], vals[1], vals[0], vals[1]}, true
	case 4:
		return Box{vals[0], vals[1], vals[2], vals[3]}, true
	}
	return Box{}, false
}
