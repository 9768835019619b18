package compensation

import (
	"errors"
	"fmt"
	"maps"
)

// fakeSurface is an in-memory page. Regions map to property maps.
type fakeSurface struct {
	regions map[string]map[string]string
	writes  int

	// failOn makes SetRegionProperty fail for region.property=value.
	failOn  map[string]bool
	panicOn map[string]bool
	// readPanic makes RegionProperty panic for region.property.
	readPanic map[string]bool
}

func newFakeSurface(regions ...string) *fakeSurface {
	f := &fakeSurface{
		regions:   make(map[string]map[string]string),
		failOn:    make(map[string]bool),
		panicOn:   make(map[string]bool),
		readPanic: make(map[string]bool),
	}
	for _, r := range regions {
		f.regions[r] = make(map[string]string)
	}
	return f
}

func (f *fakeSurface) HasRegion(region string) bool {
	_, ok := f.regions[region]
	return ok
}

func (f *fakeSurface) SetRegionProperty(region, property, value string) error {
	key := fmt.Sprintf("%s.%s=%s", region, property, value)
	if f.panicOn[key] {
		panic("boom: " + key)
	}
	if f.failOn[key] {
		return errors.New("refused " + key)
	}
	props, ok := f.regions[region]
	if !ok {
		return fmt.Errorf("no region %s", region)
	}
	f.writes++
	if value == "" {
		delete(props, property)
		return nil
	}
	props[property] = value
	return nil
}

func (f *fakeSurface) RegionProperty(region, property string) (string, bool) {
	if f.readPanic[region+"."+property] {
		panic("unreadable " + region + "." + property)
	}
	v, ok := f.regions[region][property]
	return v, ok
}

func (f *fakeSurface) state() map[string]map[string]string {
	out := make(map[string]map[string]string, len(f.regions))
	for r, props := range f.regions {
		out[r] = maps.Clone(props)
	}
	return out
}

// writeOnly exposes only the two primitives of the wrapped fake.
type writeOnly struct {
	f *fakeSurface
}

func (w writeOnly) HasRegion(region string) bool { return w.f.HasRegion(region) }

func (w writeOnly) SetRegionProperty(region, property, value string) error {
	return w.f.SetRegionProperty(region, property, value)
}
