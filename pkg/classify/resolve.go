package classify

import (
	"sort"

	"github.com/lodestone-mc/lodestone/pkg/modules"
	"github.com/lodestone-mc/lodestone/pkg/types"
)

// Options carries the identity of the inputs a snapshot is derived from.
type Options struct {
	Generation uint64
	ScanID     string
}

type match struct {
	position int
	module   *modules.Module
	entry    modules.Entry
}

// Resolve classifies packages against mods, given in load order. It never
// fails: module contents were validated when they were loaded.
func Resolve(mods []*modules.Module, packages []types.InstalledPackage, opts Options) *Snapshot {
	index := indexEntries(mods)

	out := make([]Classification, len(packages))
	for i, pkg := range packages {
		out[i] = classifyPackage(pkg, index[types.NormalizeID(pkg.ID)])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Package, out[j].Package
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.ID < b.ID
	})
	return newSnapshot(out, opts)
}

// indexEntries groups entries by package id, preserving load order and
// entry order.
func indexEntries(mods []*modules.Module) map[string][]match {
	index := make(map[string][]match)
	for pos, m := range mods {
		for _, e := range m.Entries {
			index[e.PackageID] = append(index[e.PackageID], match{position: pos, module: m, entry: e})
		}
	}
	return index
}

func classifyPackage(pkg types.InstalledPackage, candidates []match) Classification {
	c := Classification{Package: pkg, Status: StatusUnknown}

	var matched []match
	for _, m := range candidates {
		if m.entry.Constraint.Matches(pkg.Version) {
			matched = append(matched, m)
		}
	}
	if len(matched) == 0 {
		return c
	}

	winner := matched[len(matched)-1].position
	var winning []types.Tag
	for _, m := range matched {
		if m.position == winner {
			winning = append(winning, m.entry.Tag)
		}
	}
	c.Tags = types.NewTagSet(winning...)
	if len(c.Tags) > 1 {
		c.Status = StatusAmbiguous
	} else {
		c.Status = StatusResolved
	}

	c.Provenance = make([]Provenance, len(matched))
	for i, m := range matched {
		p := Provenance{
			Module:     m.module.Header.Name,
			Position:   m.position,
			Entry:      m.entry.Index,
			Constraint: m.entry.Constraint.String(),
			Tag:        m.entry.Tag,
		}
		switch {
		case m.position == winner:
			p.Disposition = DispositionWinning
		case c.Tags.Contains(m.entry.Tag):
			p.Disposition = DispositionAgreeing
		default:
			p.Disposition = DispositionOverridden
		}
		c.Provenance[i] = p
	}
	return c
}
