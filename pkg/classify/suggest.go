package classify

import (
	"sort"

	"github.com/lodestone-mc/lodestone/pkg/modules"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/sahilm/fuzzy"
)

// DefaultSuggestions is the number of candidates Suggest keeps per package.
const DefaultSuggestions = 3

// Candidate is a module package id that resembles an unknown package.
type Candidate struct {
	ID    string       `json:"id"`
	Score int          `json:"score"`
	Tags  types.TagSet `json:"tags"`

	// SameID is set when a module names this exact id but no entry covers
	// the installed version.
	SameID bool `json:"sameId"`
}

// Suggestion pairs an Unknown package with its closest module ids.
type Suggestion struct {
	Package    types.InstalledPackage `json:"package"`
	Candidates []Candidate            `json:"candidates"`
}

// Suggest proposes, for every Unknown package of the snapshot, up to limit
// package ids from mods that look alike, best first. Packages without any
// candidate are left out.
func Suggest(snapshot *Snapshot, mods []*modules.Module, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestions
	}

	tagsByID := make(map[string][]types.Tag)
	var ids []string
	for _, m := range mods {
		for _, e := range m.Entries {
			if _, seen := tagsByID[e.PackageID]; !seen {
				ids = append(ids, e.PackageID)
			}
			tagsByID[e.PackageID] = append(tagsByID[e.PackageID], e.Tag)
		}
	}
	sort.Strings(ids)

	var out []Suggestion
	for _, c := range snapshot.Unknown() {
		var candidates []Candidate
		for _, match := range fuzzy.Find(c.Package.ID, ids) {
			candidates = append(candidates, Candidate{
				ID:     match.Str,
				Score:  match.Score,
				Tags:   types.NewTagSet(tagsByID[match.Str]...),
				SameID: match.Str == c.Package.ID,
			})
		}
		if len(candidates) == 0 {
			continue
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].SameID != candidates[j].SameID {
				return candidates[i].SameID
			}
			if candidates[i].Score != candidates[j].Score {
				return candidates[i].Score > candidates[j].Score
			}
			return candidates[i].ID < candidates[j].ID
		})
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}
		out = append(out, Suggestion{Package: c.Package, Candidates: candidates})
	}
	return out
}
