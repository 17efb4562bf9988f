package contribution

import (
	"sort"
	"strings"

	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/modules"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/lodestone-mc/lodestone/pkg/version"
)

// DefaultModuleName names contributed modules when the header has none.
const DefaultModuleName = "contribution"

// ManualTags maps a package id to the tag the operator chose for it.
type ManualTags map[string]types.Tag

// ParseAssignment reads an "id=tag" assignment as typed on a command line.
func ParseAssignment(s string) (string, types.Tag, error) {
	id, tag, ok := strings.Cut(s, "=")
	id = types.NormalizeID(id)
	t := types.NewTag(tag)
	if !ok || id == "" || t == "" {
		return "", "", errors.Newf(errors.ErrInvalidInput, "expected id=tag, got %q", s).
			WithDetail("assignment", s)
	}
	return id, t, nil
}

// Build creates a module with one entry per manually tagged Unknown package
// of snapshot. Every package is pinned to its detected version, or matched
// for any version when that version could not be read. Several files with
// the same id and version collapse into one entry.
func Build(snapshot *classify.Snapshot, manual ManualTags, header modules.Header) (*modules.Module, error) {
	if len(manual) == 0 {
		return nil, errors.New(errors.ErrNoManualTags, "no manual tags given, nothing to contribute")
	}
	if snapshot == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no classification available, scan first")
	}

	if strings.TrimSpace(header.Name) == "" {
		header.Name = DefaultModuleName
	}
	if header.Version < 1 {
		header.Version = 1
	}

	unknown := make(map[string][]types.InstalledPackage)
	for _, c := range snapshot.Unknown() {
		unknown[c.Package.ID] = append(unknown[c.Package.ID], c.Package)
	}

	ids := make([]string, 0, len(manual))
	tags := make(map[string]types.Tag, len(manual))
	for rawID, rawTag := range manual {
		id := types.NormalizeID(rawID)
		tag := types.NewTag(string(rawTag))
		if tag == "" || tag == types.TagUnknown {
			return nil, errors.Newf(errors.ErrInvalidInput, "%q is not a tag that can be contributed", rawTag).
				WithDetail("package", id)
		}
		if len(unknown[id]) == 0 {
			return nil, errors.Newf(errors.ErrInvalidInput, "package %q is not an unknown package", rawID).
				WithDetail("package", id)
		}
		if _, dup := tags[id]; dup {
			return nil, errors.Newf(errors.ErrInvalidInput, "package %q is tagged twice", rawID).
				WithDetail("package", id)
		}
		tags[id] = tag
		ids = append(ids, id)
	}
	sort.Strings(ids)

	m := &modules.Module{Header: header, Source: "contribution"}
	for _, id := range ids {
		for _, c := range constraintsFor(unknown[id]) {
			m.Entries = append(m.Entries, modules.Entry{
				Index:      len(m.Entries),
				PackageID:  id,
				Constraint: c,
				Tag:        tags[id],
			})
		}
	}

	if err := modules.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// constraintsFor pins each distinct detected version. One unreadable version
// turns the whole id into a wildcard, which already covers the others.
func constraintsFor(packages []types.InstalledPackage) []version.Constraint {
	seen := make(map[string]bool)
	var versions []string
	for _, p := range packages {
		if p.Unparsable() {
			return []version.Constraint{version.Any()}
		}
		v := version.Normalize(p.Version)
		if !seen[v] {
			seen[v] = true
			versions = append(versions, v)
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		if c := version.Compare(versions[i], versions[j]); c != 0 {
			return c < 0
		}
		return versions[i] < versions[j]
	})

	out := make([]version.Constraint, len(versions))
	for i, v := range versions {
		out[i] = version.Exact(v)
	}
	return out
}
