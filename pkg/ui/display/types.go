// Package display holds the view models commands hand to a renderer and a
// line-oriented renderer shared by the terminal and text formats.
package display

import (
	"encoding/json"
	"sort"

	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/modules"
	"github.com/lodestone-mc/lodestone/pkg/types"
)

// ScanResult is the output of "scan": every classification of a snapshot.
type ScanResult struct {
	ModsDir         string                    `json:"modsDir"`
	Generation      uint64                    `json:"generation"`
	ScanID          string                    `json:"scanId"`
	Fingerprint     string                    `json:"fingerprint"`
	Counts          classify.Counts           `json:"counts"`
	Classifications []classify.Classification `json:"classifications"`

	// Verbose adds provenance to text output.
	Verbose bool `json:"-"`
}

// NewScanResult builds the view of snap, optionally narrowed to filter.
func NewScanResult(modsDir string, snap *classify.Snapshot, filter types.TagSet) *ScanResult {
	all := snap.All()
	if len(filter) > 0 {
		all = snap.Filter(func(c classify.Classification) bool {
			if c.Status == classify.StatusUnknown {
				return filter.Contains(types.TagUnknown)
			}
			return c.HasAnyTag(filter)
		})
	}
	if all == nil {
		all = []classify.Classification{}
	}
	return &ScanResult{
		ModsDir:         modsDir,
		Generation:      snap.Generation(),
		ScanID:          snap.ScanID(),
		Fingerprint:     snap.Fingerprint(),
		Counts:          snap.Counts(),
		Classifications: all,
	}
}

// ModuleSummary describes one loaded module.
type ModuleSummary struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Version  int    `json:"version"`
	Author   string `json:"author"`
	Entries  int    `json:"entries"`
	Source   string `json:"source"`
}

// ModuleList is the output of "modules list", in load order.
type ModuleList struct {
	Generation uint64          `json:"generation"`
	Modules    []ModuleSummary `json:"modules"`
}

// NewModuleList summarizes mods in the order given.
func NewModuleList(generation uint64, mods []*modules.Module) *ModuleList {
	list := &ModuleList{Generation: generation, Modules: make([]ModuleSummary, 0, len(mods))}
	for i, m := range mods {
		list.Modules = append(list.Modules, summarize(i, m))
	}
	return list
}

func summarize(position int, m *modules.Module) ModuleSummary {
	return ModuleSummary{
		Position: position,
		Name:     m.Header.Name,
		Version:  m.Header.Version,
		Author:   m.Header.Author,
		Entries:  len(m.Entries),
		Source:   m.Source,
	}
}

// EntryRow is one rule of a module.
type EntryRow struct {
	Index      int       `json:"index"`
	PackageID  string    `json:"modID"`
	Constraint string    `json:"modVersion"`
	Tag        types.Tag `json:"modType"`
}

// ModuleDetail is the output of "modules show".
type ModuleDetail struct {
	ModuleSummary
	Rules []EntryRow `json:"rules"`
}

// NewModuleDetail lists the rules of m sorted by package id, then by
// position in the file.
func NewModuleDetail(position int, m *modules.Module) *ModuleDetail {
	detail := &ModuleDetail{ModuleSummary: summarize(position, m), Rules: make([]EntryRow, 0, len(m.Entries))}
	for _, e := range m.Entries {
		detail.Rules = append(detail.Rules, EntryRow{
			Index:      e.Index,
			PackageID:  e.PackageID,
			Constraint: e.Constraint.String(),
			Tag:        e.Tag,
		})
	}
	sort.SliceStable(detail.Rules, func(i, j int) bool {
		if detail.Rules[i].PackageID != detail.Rules[j].PackageID {
			return detail.Rules[i].PackageID < detail.Rules[j].PackageID
		}
		return detail.Rules[i].Index < detail.Rules[j].Index
	})
	return detail
}

// FileValidation is the verdict for one module file.
type FileValidation struct {
	Path    string           `json:"path"`
	Module  string           `json:"module,omitempty"`
	Entries int              `json:"entries"`
	Valid   bool             `json:"valid"`
	Code    errors.ErrorCode `json:"code,omitempty"`
	Error   string           `json:"error,omitempty"`

	// Collisions lists overlapping rules when Code is OVERLAPPING_RULE.
	Collisions []modules.Collision `json:"collisions,omitempty"`
}

// NewFileValidation records the outcome of parsing path.
func NewFileValidation(path string, m *modules.Module, err error) FileValidation {
	v := FileValidation{Path: path, Valid: err == nil}
	if m != nil {
		v.Module = m.Header.Name
		v.Entries = len(m.Entries)
	}
	if err != nil {
		v.Code = errors.GetErrorCode(err)
		v.Error = err.Error()
		if collisions, ok := errors.GetErrorDetails(err)["collisions"].([]modules.Collision); ok {
			v.Collisions = collisions
		}
	}
	return v
}

// ValidationResult is the output of "modules validate".
type ValidationResult struct {
	Files []FileValidation `json:"files"`
}

// OK reports whether every file is valid.
func (v *ValidationResult) OK() bool {
	for _, f := range v.Files {
		if !f.Valid {
			return false
		}
	}
	return true
}

// UnknownResult is the output of "unknown".
type UnknownResult struct {
	Unknown     []types.InstalledPackage `json:"unknown"`
	Suggestions []classify.Suggestion    `json:"suggestions"`
}

// NewUnknownResult lists the Unknown packages of snap with suggestions.
func NewUnknownResult(snap *classify.Snapshot, suggestions []classify.Suggestion) *UnknownResult {
	res := &UnknownResult{
		Unknown:     make([]types.InstalledPackage, 0),
		Suggestions: suggestions,
	}
	if res.Suggestions == nil {
		res.Suggestions = []classify.Suggestion{}
	}
	for _, c := range snap.Unknown() {
		res.Unknown = append(res.Unknown, c.Package)
	}
	return res
}

// SuggestionsFor returns the candidates proposed for the package at path.
func (u *UnknownResult) SuggestionsFor(path string) []classify.Candidate {
	for _, s := range u.Suggestions {
		if s.Package.Path == path {
			return s.Candidates
		}
	}
	return nil
}

// ContributionResult is the output of "contribute".
type ContributionResult struct {
	Module  string          `json:"module"`
	Entries int             `json:"entries"`
	Payload json.RawMessage `json:"payload"`

	// SubmittedTo is the outbox file written, empty when not submitted.
	SubmittedTo string `json:"submittedTo,omitempty"`
}
