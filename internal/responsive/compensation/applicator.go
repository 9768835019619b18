package compensation

import (
	"errors"
	"maps"
	"sort"
)

// Report lists what a transition did.
type Report struct {
	Applied  []Override
	Reverted []Override // Value holds the restored baseline
	Skipped  []Override // region absent from the current page
}

// Mutations returns the number of primitive writes the transition made.
func (r Report) Mutations() int {
	return len(r.Applied) + len(r.Reverted)
}

type slot struct {
	baseline string
	written  string
}

type undo struct {
	key   Key
	value string
}

// Applicator writes compensation sets through a Surface. It is not safe
// for concurrent use; callers serialize transitions.
type Applicator struct {
	surface Surface
	catalog Catalog

	// applied holds every key whose region currently carries an override.
	applied map[Key]slot
	// pending is set while an apply or revert waits for an absent region.
	pending bool
}

// NewApplicator creates an applicator with nothing applied.
func NewApplicator(s Surface, c Catalog) *Applicator {
	return &Applicator{
		surface: s,
		catalog: c,
		applied: make(map[Key]slot),
	}
}

// Catalog returns the catalog in use.
func (a *Applicator) Catalog() Catalog {
	return a.catalog
}

// Applied returns the overrides currently written, sorted by key.
func (a *Applicator) Applied() Set {
	out := make(Set, 0, len(a.applied))
	for _, k := range sortedKeys(a.applied) {
		out = append(out, Override{Region: k.Region, Property: k.Property, Value: a.applied[k].written})
	}
	return out
}

// ApplyTransition moves the surface from the set of from to the set of to.
// A transition onto the same profile is a no-op unless deferred writes are
// still pending, in which case it settles them.
func (a *Applicator) ApplyTransition(from, to Profile) (Report, error) {
	if from == to && !a.pending {
		return Report{}, nil
	}
	return a.reconcile(a.catalog.For(to))
}

// Sync reconciles the surface with the set of p without assuming anything
// about the previous profile. Hosts call it when regions appear or vanish.
func (a *Applicator) Sync(p Profile) (Report, error) {
	return a.reconcile(a.catalog.For(p))
}

// Replace swaps the catalog and reconciles the surface with the new set of
// p. On failure the previous catalog stays in effect.
func (a *Applicator) Replace(c Catalog, p Profile) (Report, error) {
	prev := a.catalog
	a.catalog = c
	rep, err := a.reconcile(c.For(p))
	if err != nil {
		a.catalog = prev
	}
	return rep, err
}

// reconcile reverts stale keys and applies target. Any primitive failure
// rolls the surface and the bookkeeping back to where they were.
func (a *Applicator) reconcile(target Set) (rep Report, err error) {
	snapshot, wasPending := maps.Clone(a.applied), a.pending
	var journal []undo

	defer func() {
		if err == nil {
			a.pending = len(rep.Skipped) > 0
			return
		}
		var perr *PrimitiveError
		if errors.As(err, &perr) {
			perr.RollbackErr = a.rollback(journal)
		}
		a.applied, a.pending = snapshot, wasPending
		rep = Report{}
	}()

	want := make(map[Key]string, len(target))
	for _, o := range target {
		want[o.Key()] = o.Value
	}

	// Revert: keys no longer wanted go back to their baseline.
	for _, k := range sortedKeys(a.applied) {
		if _, ok := want[k]; ok {
			continue
		}
		s := a.applied[k]
		o := Override{Region: k.Region, Property: k.Property, Value: s.baseline}
		present, err := a.has(o)
		if err != nil {
			return rep, err
		}
		if !present {
			// Reverted once the region is back on the page.
			rep.Skipped = append(rep.Skipped, o)
			continue
		}
		if err := a.set(o); err != nil {
			return rep, err
		}
		journal = append(journal, undo{key: k, value: s.written})
		delete(a.applied, k)
		rep.Reverted = append(rep.Reverted, o)
	}

	// Apply.
	for _, o := range target {
		k := o.Key()
		present, err := a.has(o)
		if err != nil {
			return rep, err
		}
		if !present {
			rep.Skipped = append(rep.Skipped, o)
			continue
		}

		s, ok := a.applied[k]
		if ok && s.written == o.Value {
			continue
		}
		prior := s.written
		if !ok {
			base, err := a.baseline(o)
			if err != nil {
				return rep, err
			}
			s.baseline = base
			prior = base
		}
		if err := a.set(o); err != nil {
			return rep, err
		}
		journal = append(journal, undo{key: k, value: prior})
		s.written = o.Value
		a.applied[k] = s
		rep.Applied = append(rep.Applied, o)
	}
	return rep, nil
}

func (a *Applicator) rollback(journal []undo) error {
	var errs []error
	for i := len(journal) - 1; i >= 0; i-- {
		u := journal[i]
		if err := a.set(Override{Region: u.key.Region, Property: u.key.Property, Value: u.value}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Pending reports whether an apply or revert is waiting for its region.
func (a *Applicator) Pending() bool {
	return a.pending
}

func (a *Applicator) baseline(o Override) (v string, err error) {
	br, ok := a.surface.(BaselineReader)
	if !ok {
		return "", nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PrimitiveError{Op: "baseline", Override: o, Err: panicError{r}}
		}
	}()
	v, _ = br.RegionProperty(o.Region, o.Property)
	return v, nil
}

func (a *Applicator) has(o Override) (present bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PrimitiveError{Op: "has", Override: o, Err: panicError{r}}
		}
	}()
	return a.surface.HasRegion(o.Region), nil
}

func (a *Applicator) set(o Override) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PrimitiveError{Op: "set", Override: o, Err: panicError{r}}
		}
	}()
	if err := a.surface.SetRegionProperty(o.Region, o.Property, o.Value); err != nil {
		return &PrimitiveError{Op: "set", Override: o, Err: err}
	}
	return nil
}

func sortedKeys(m map[Key]slot) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Region != keys[j].Region {
			return keys[i].Region < keys[j].Region
		}
		return keys[i].Property < keys[j].Property
	})
	return keys
}
