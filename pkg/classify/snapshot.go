package classify

import (
	"encoding/json"

	"github.com/lodestone-mc/lodestone/pkg/internal/hashutil"
	"github.com/lodestone-mc/lodestone/pkg/types"
)

// Snapshot is an immutable set of classifications derived from one store
// generation and one scan. Accessors return copies.
type Snapshot struct {
	classifications []Classification
	generation      uint64
	scanID          string
	fingerprint     string
	byPath          map[string]int
}

func newSnapshot(classifications []Classification, opts Options) *Snapshot {
	s := &Snapshot{
		classifications: classifications,
		generation:      opts.Generation,
		scanID:          opts.ScanID,
		byPath:          make(map[string]int, len(classifications)),
	}
	for i, c := range classifications {
		if _, dup := s.byPath[c.Package.Path]; !dup {
			s.byPath[c.Package.Path] = i
		}
	}
	s.fingerprint = fingerprint(classifications)
	return s
}

// fingerprint hashes the canonical encoding of the classifications. The
// generation and scan id are left out so equal verdicts hash equally.
func fingerprint(classifications []Classification) string {
	if classifications == nil {
		classifications = []Classification{}
	}
	data, err := json.Marshal(classifications)
	if err != nil {
		return ""
	}
	return hashutil.Sum(data)
}

// Generation is the store generation the snapshot was resolved against.
func (s *Snapshot) Generation() uint64 { return s.generation }

// ScanID identifies the scan the snapshot was resolved from.
func (s *Snapshot) ScanID() string { return s.scanID }

// Fingerprint is the hex SHA-256 of the canonical JSON of the
// classifications.
func (s *Snapshot) Fingerprint() string { return s.fingerprint }

// Len returns the number of classified packages.
func (s *Snapshot) Len() int { return len(s.classifications) }

// All returns every classification, sorted by path then id.
func (s *Snapshot) All() []Classification {
	return s.Filter(nil)
}

// Unknown returns the packages no module matched.
func (s *Snapshot) Unknown() []Classification {
	return s.Filter(func(c Classification) bool { return c.Status == StatusUnknown })
}

// Ambiguous returns the packages whose winning module disagrees with itself.
func (s *Snapshot) Ambiguous() []Classification {
	return s.Filter(func(c Classification) bool { return c.Status == StatusAmbiguous })
}

// Filter returns the classifications keep accepts, in snapshot order. A nil
// keep accepts everything.
func (s *Snapshot) Filter(keep func(Classification) bool) []Classification {
	out := make([]Classification, 0, len(s.classifications))
	for _, c := range s.classifications {
		c = c.clone()
		if keep == nil || keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Lookup returns the classification of the package at path.
func (s *Snapshot) Lookup(path string) (Classification, bool) {
	i, ok := s.byPath[path]
	if !ok {
		return Classification{}, false
	}
	return s.classifications[i].clone(), true
}

// ByID returns every package with the given id; duplicates are separate
// files.
func (s *Snapshot) ByID(id string) []Classification {
	id = types.NormalizeID(id)
	return s.Filter(func(c Classification) bool { return c.Package.ID == id })
}

// Counts summarizes a snapshot.
type Counts struct {
	Total    int               `json:"total"`
	ByStatus map[string]int    `json:"byStatus"`
	ByTag    map[types.Tag]int `json:"byTag"`
}

// Counts tallies packages per status and per tag. A package with several
// tags counts once for each.
func (s *Snapshot) Counts() Counts {
	counts := Counts{
		Total:    len(s.classifications),
		ByStatus: make(map[string]int),
		ByTag:    make(map[types.Tag]int),
	}
	for _, c := range s.classifications {
		counts.ByStatus[c.Status.String()]++
		if c.Status == StatusUnknown {
			counts.ByTag[types.TagUnknown]++
			continue
		}
		for _, t := range c.Tags {
			counts.ByTag[t]++
		}
	}
	return counts
}

// MarshalJSON encodes the snapshot with its identity and fingerprint.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	classifications := s.classifications
	if classifications == nil {
		classifications = []Classification{}
	}
	return json.Marshal(struct {
		Generation      uint64           `json:"generation"`
		ScanID          string           `json:"scanId"`
		Fingerprint     string           `json:"fingerprint"`
		Classifications []Classification `json:"classifications"`
	}{s.generation, s.scanID, s.fingerprint, classifications})
}
