package types

import (
	"path/filepath"
	"strings"
)

// UnparsableVersion is the sentinel version given to files whose embedded
// metadata could not be read. Such packages surface as Unknown.
const UnparsableVersion = "unparsable"

// InstalledPackage is one physical mod file discovered by a scan.
// Duplicate ids across files are kept as distinct packages.
type InstalledPackage struct {
	ID       string `json:"id"`
	Version  string `json:"version"`
	Path     string `json:"path"`
	FileName string `json:"fileName"`

	// Source names the metadata extractor that produced the identity,
	// empty when the file was unparsable.
	Source string `json:"source,omitempty"`
}

// Unparsable reports whether the package metadata could not be read.
func (p InstalledPackage) Unparsable() bool {
	return p.Version == UnparsableVersion
}

// NormalizeID normalizes a package id for comparison (trimmed, lower case).
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// modFileExtensions are stripped from file names, outermost first.
var modFileExtensions = []string{".disabled", ".jar", ".zip", ".litemod"}

// IDFromFileName derives a fallback package id from a file name: known mod
// file extensions are dropped and everything from the first "-<digit>",
// "_<digit>" or "-v<digit>" on is cut off.
func IDFromFileName(name string) string {
	base := filepath.Base(name)
	for _, ext := range modFileExtensions {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			base = base[:len(base)-len(ext)]
		}
	}
	for i := 1; i < len(base)-1; i++ {
		if base[i] != '-' && base[i] != '_' {
			continue
		}
		next := base[i+1:]
		if isDigit(next[0]) || (len(next) > 1 && (next[0] == 'v' || next[0] == 'V') && isDigit(next[1])) {
			base = base[:i]
			break
		}
	}
	return NormalizeID(base)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
