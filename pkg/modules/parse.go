package modules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/lodestone-mc/lodestone/pkg/version"
)

// Collision describes two entries of one module whose constraints share at
// least one version of the same package.
type Collision struct {
	PackageID   string `json:"packageId"`
	First       int    `json:"first"`
	Second      int    `json:"second"`
	FirstRange  string `json:"firstConstraint"`
	SecondRange string `json:"secondConstraint"`
}

func (c Collision) String() string {
	return fmt.Sprintf("%s: entry %d (%s) overlaps entry %d (%s)",
		c.PackageID, c.First, c.FirstRange, c.Second, c.SecondRange)
}

// Parse decodes and validates a module file. source names the file or label
// the data came from and is carried into errors and provenance.
func Parse(source string, data []byte) (*Module, error) {
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrModuleParse, "module is not valid JSON").
			WithDetail("module", source)
	}

	schema, err := moduleSchema()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "module schema failed to compile")
	}
	if err := schema.Validate(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrModuleParse, "module does not match the module format").
			WithDetail("module", source)
	}

	var file moduleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, errors.ErrModuleParse, "failed to decode module").
			WithDetail("module", source)
	}

	m := &Module{
		Header: Header{
			Name:    strings.TrimSpace(file.Header.Name),
			Version: file.Header.Version,
			Author:  strings.TrimSpace(file.Header.Author),
		},
		Entries: make([]Entry, 0, len(file.Mods)),
		Source:  source,
	}

	for i, raw := range file.Mods {
		c, err := version.Parse(raw.ModVersion)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidConstraint, "entry %d has an invalid version constraint", i).
				WithDetails(map[string]interface{}{
					"module":     moduleLabel(m),
					"package":    raw.ModID,
					"entry":      i,
					"constraint": raw.ModVersion,
				})
		}
		m.Entries = append(m.Entries, Entry{
			Index:      i,
			PackageID:  types.NormalizeID(raw.ModID),
			Constraint: c,
			Tag:        types.NewTag(raw.ModType),
		})
	}

	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks a module built in memory with the rules applied to loaded
// files: header, entry ids and tags, and overlapping entries.
func Validate(m *Module) error {
	if m == nil {
		return errors.New(errors.ErrModuleInvalid, "module is nil")
	}
	label := moduleLabel(m)

	if strings.TrimSpace(m.Header.Name) == "" {
		return errors.New(errors.ErrModuleInvalid, "module name must not be empty").
			WithDetail("module", label)
	}
	if m.Header.Version < 1 {
		return errors.Newf(errors.ErrModuleInvalid, "module version must be at least 1, got %d", m.Header.Version).
			WithDetail("module", label)
	}

	for _, e := range m.Entries {
		if e.PackageID == "" {
			return errors.Newf(errors.ErrModuleInvalid, "entry %d has an empty package id", e.Index).
				WithDetail("module", label).
				WithDetail("entry", e.Index)
		}
		if e.PackageID != types.NormalizeID(e.PackageID) {
			return errors.Newf(errors.ErrModuleInvalid, "entry %d package id %q is not normalized", e.Index, e.PackageID).
				WithDetail("module", label).
				WithDetail("package", e.PackageID)
		}
		switch e.Tag {
		case "":
			return errors.Newf(errors.ErrModuleInvalid, "entry %d for %s has an empty tag", e.Index, e.PackageID).
				WithDetail("module", label).
				WithDetail("package", e.PackageID)
		case types.TagUnknown:
			return errors.Newf(errors.ErrModuleInvalid, "entry %d for %s uses the reserved tag %q", e.Index, e.PackageID, types.TagUnknown.Display()).
				WithDetail("module", label).
				WithDetail("package", e.PackageID)
		}
	}

	if collisions := Overlapping(m); len(collisions) > 0 {
		lines := make([]string, len(collisions))
		for i, c := range collisions {
			lines[i] = c.String()
		}
		return errors.Newf(errors.ErrOverlappingRule, "module has overlapping entries: %s", strings.Join(lines, "; ")).
			WithDetail("module", label).
			WithDetail("package", collisions[0].PackageID).
			WithDetail("collisions", collisions)
	}
	return nil
}

// Overlapping returns every pair of entries for the same package id whose
// constraints intersect, in entry order.
func Overlapping(m *Module) []Collision {
	var out []Collision
	for i := 0; i < len(m.Entries); i++ {
		a := m.Entries[i]
		for j := i + 1; j < len(m.Entries); j++ {
			b := m.Entries[j]
			if a.PackageID != b.PackageID {
				continue
			}
			if version.Overlaps(a.Constraint, b.Constraint) {
				out = append(out, Collision{
					PackageID:   a.PackageID,
					First:       a.Index,
					Second:      b.Index,
					FirstRange:  a.Constraint.String(),
					SecondRange: b.Constraint.String(),
				})
			}
		}
	}
	return out
}

// Encode writes a module in the file format, indented.
func Encode(m *Module) ([]byte, error) {
	file := moduleFile{
		Header: m.Header,
		Mods:   make([]entryFile, len(m.Entries)),
	}
	for i, e := range m.Entries {
		file.Mods[i] = entryFile{
			ModID:      e.PackageID,
			ModVersion: e.Constraint.String(),
			ModType:    e.Tag.Display(),
		}
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode module").
			WithDetail("module", m.Header.Name)
	}
	return append(data, '\n'), nil
}

func moduleLabel(m *Module) string {
	if m.Header.Name != "" {
		return m.Header.Name
	}
	return m.Source
}
