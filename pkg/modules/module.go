package modules

import (
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/lodestone-mc/lodestone/pkg/version"
)

// Header identifies a module. It is provenance only and plays no part in
// precedence beyond load order.
type Header struct {
	Name    string `json:"moduleName"`
	Version int    `json:"moduleVersion"`
	Author  string `json:"moduleAuthor"`
}

// Entry is one classification rule.
type Entry struct {
	// Index is the position of the entry in its module file.
	Index      int
	PackageID  string
	Constraint version.Constraint
	Tag        types.Tag
}

// Module is a named, versioned set of rules. Modules held by a Store must
// not be modified.
type Module struct {
	Header  Header
	Entries []Entry

	// Source is the file or label the module was loaded from.
	Source string
}

// Name returns the module name.
func (m *Module) Name() string { return m.Header.Name }

// EntriesFor returns the entries that apply to a normalized package id.
func (m *Module) EntriesFor(packageID string) []Entry {
	var out []Entry
	for _, e := range m.Entries {
		if e.PackageID == packageID {
			out = append(out, e)
		}
	}
	return out
}

// PackageIDs returns the distinct package ids of the module in entry order.
func (m *Module) PackageIDs() []string {
	seen := make(map[string]bool, len(m.Entries))
	var ids []string
	for _, e := range m.Entries {
		if !seen[e.PackageID] {
			seen[e.PackageID] = true
			ids = append(ids, e.PackageID)
		}
	}
	return ids
}

func (m *Module) clone() *Module {
	c := *m
	c.Entries = make([]Entry, len(m.Entries))
	copy(c.Entries, m.Entries)
	return &c
}

// wire types for the JSON file format

type moduleFile struct {
	Header Header      `json:"header"`
	Mods   []entryFile `json:"mods"`
}

type entryFile struct {
	ModID      string `json:"modID"`
	ModVersion string `json:"modVersion"`
	ModType    string `json:"modType"`
}
