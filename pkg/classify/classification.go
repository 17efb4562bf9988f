package classify

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/lodestone-mc/lodestone/pkg/types"
)

// Status is the outcome of resolving one package.
type Status int

const (
	StatusUnknown Status = iota
	StatusResolved
	StatusAmbiguous
)

var statusNames = map[Status]string{
	StatusUnknown:   "Unknown",
	StatusResolved:  "Resolved",
	StatusAmbiguous: "Ambiguous",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Disposition records how a matching entry relates to the final verdict.
type Disposition string

const (
	DispositionWinning    Disposition = "winning"
	DispositionAgreeing   Disposition = "agreeing"
	DispositionOverridden Disposition = "overridden"
)

// Provenance is one module entry that matched a package.
type Provenance struct {
	Module      string      `json:"module"`
	Position    int         `json:"position"`
	Entry       int         `json:"entry"`
	Constraint  string      `json:"constraint"`
	Tag         types.Tag   `json:"tag"`
	Disposition Disposition `json:"disposition"`
}

// Classification is the verdict for one installed package.
type Classification struct {
	Package    types.InstalledPackage `json:"package"`
	Status     Status                 `json:"status"`
	Tags       types.TagSet           `json:"tags"`
	Provenance []Provenance           `json:"provenance"`
}

// clone returns c with its own Tags and Provenance, so a caller cannot
// reach into a snapshot.
func (c Classification) clone() Classification {
	c.Tags = slices.Clone(c.Tags)
	c.Provenance = slices.Clone(c.Provenance)
	return c
}

// HasAnyTag reports whether the classification carries one of tags.
func (c Classification) HasAnyTag(tags types.TagSet) bool {
	return c.Tags.Intersects(tags)
}

// Winner returns the module whose verdict applies, empty for Unknown.
func (c Classification) Winner() string {
	for _, p := range c.Provenance {
		if p.Disposition == DispositionWinning {
			return p.Module
		}
	}
	return ""
}

// Overridden returns the provenance entries that lost to a later module.
func (c Classification) Overridden() []Provenance {
	var out []Provenance
	for _, p := range c.Provenance {
		if p.Disposition == DispositionOverridden {
			out = append(out, p)
		}
	}
	return out
}

// MarshalJSON keeps empty tag and provenance lists as [] so encodings are
// stable.
func (c Classification) MarshalJSON() ([]byte, error) {
	type alias Classification
	a := alias(c)
	if a.Tags == nil {
		a.Tags = types.TagSet{}
	}
	if a.Provenance == nil {
		a.Provenance = []Provenance{}
	}
	return json.Marshal(a)
}
