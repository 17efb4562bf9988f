package scanner

import (
	"github.com/lodestone-mc/lodestone/pkg/registry"
	"github.com/lodestone-mc/lodestone/pkg/types"
)

// Identity is what an extractor reads from a mod archive.
type Identity struct {
	ID      string
	Version string
}

// Extractor reads the identity of a mod from one metadata format. found is
// false when the archive does not carry that format; err is set when it
// does but the metadata is broken.
type Extractor interface {
	Extract(jar *Jar) (id Identity, found bool, err error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(jar *Jar) (Identity, bool, error)

// Extract calls f.
func (f ExtractorFunc) Extract(jar *Jar) (Identity, bool, error) { return f(jar) }

// Extractor names, recorded as InstalledPackage.Source.
const (
	SourceFabric   = "fabric"
	SourceQuilt    = "quilt"
	SourceNeoForge = "neoforge"
	SourceForge    = "forge"
	SourceMcmod    = "mcmod"
	SourceMaven    = "maven"
)

// DefaultExtractors returns a registry holding the built-in extractors in
// precedence order.
func DefaultExtractors() registry.Registry[Extractor] {
	reg := registry.New[Extractor]()
	registry.MustRegister[Extractor](reg, SourceFabric, ExtractorFunc(extractFabric))
	registry.MustRegister[Extractor](reg, SourceQuilt, ExtractorFunc(extractQuilt))
	registry.MustRegister[Extractor](reg, SourceNeoForge, ExtractorFunc(extractNeoForge))
	registry.MustRegister[Extractor](reg, SourceForge, ExtractorFunc(extractForge))
	registry.MustRegister[Extractor](reg, SourceMcmod, ExtractorFunc(extractMcmod))
	registry.MustRegister[Extractor](reg, SourceMaven, ExtractorFunc(extractMaven))
	return reg
}

func identity(id, ver string) (Identity, bool) {
	id = types.NormalizeID(id)
	if id == "" {
		return Identity{}, false
	}
	return Identity{ID: id, Version: cleanVersion(ver)}, true
}

// cleanVersion returns the unparsable sentinel for empty versions and
// unresolved build placeholders such as "${version}".
func cleanVersion(v string) string {
	if v == "" || containsPlaceholder(v) {
		return types.UnparsableVersion
	}
	return v
}

func containsPlaceholder(v string) bool {
	for i := 0; i+1 < len(v); i++ {
		if v[i] == '$' && v[i+1] == '{' {
			return true
		}
	}
	return false
}
