package version

import (
	"strings"
)

// Normalize trims whitespace and strips a leading "v" in front of a digit.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 1 && (s[0] == 'v' || s[0] == 'V') && isDigit(s[1]) {
		s = s[1:]
	}
	return s
}

// Version is a parsed, ordered version.
type Version struct {
	// core holds the numeric components without leading zeros.
	core   []string
	suffix string
}

// ParseVersion parses s into an ordered Version. It reports false when s has
// no numeric core.
func ParseVersion(s string) (Version, bool) {
	s = Normalize(s)
	if s == "" || !isDigit(s[0]) {
		return Version{}, false
	}

	var v Version
	i := 0
	for {
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		v.core = append(v.core, trimZeros(s[start:i]))
		if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
			i++
			continue
		}
		break
	}
	v.suffix = s[i:]
	return v, true
}

// Compare returns -1, 0 or 1 when a sorts before, equal to or after b.
// Unparsable versions sort before parsable ones and compare to each other
// by their normalized text.
func Compare(a, b string) int {
	va, okA := ParseVersion(a)
	vb, okB := ParseVersion(b)
	switch {
	case !okA && !okB:
		return strings.Compare(Normalize(a), Normalize(b))
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return va.Compare(vb)
}

// Compare orders v against o.
func (v Version) Compare(o Version) int {
	n := len(v.core)
	if len(o.core) > n {
		n = len(o.core)
	}
	for i := 0; i < n; i++ {
		if c := compareNumeric(component(v.core, i), component(o.core, i)); c != 0 {
			return c
		}
	}
	switch {
	case v.suffix == o.suffix:
		return 0
	case v.suffix == "":
		return -1
	case o.suffix == "":
		return 1
	}
	return strings.Compare(v.suffix, o.suffix)
}

func (v Version) String() string {
	return strings.Join(v.core, ".") + v.suffix
}

func component(core []string, i int) string {
	if i < len(core) {
		return core[i]
	}
	return "0"
}

// compareNumeric compares digit strings without leading zeros, so any length
// of component is handled without overflow.
func compareNumeric(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func trimZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
