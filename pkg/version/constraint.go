package version

import (
	"strings"

	"github.com/lodestone-mc/lodestone/pkg/errors"
)

// Kind identifies the variant of a Constraint.
type Kind int

const (
	KindAny Kind = iota
	KindExact
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindExact:
		return "exact"
	case KindRange:
		return "range"
	default:
		return "invalid"
	}
}

// Wildcard is the wire form of the Any constraint.
const Wildcard = "*"

// bound is one side of an interval. An unset bound is unbounded.
type bound struct {
	set       bool
	inclusive bool
	text      string
	v         Version
}

// Constraint is a version constraint carried by a module entry. The zero
// value is Any.
type Constraint struct {
	kind  Kind
	exact string
	lo    bound
	hi    bound
}

// Any returns the wildcard constraint.
func Any() Constraint { return Constraint{kind: KindAny} }

// Exact returns a constraint matching one normalized version string.
func Exact(v string) Constraint {
	return Constraint{kind: KindExact, exact: Normalize(v)}
}

// NewRange builds an interval. An empty lo or hi leaves that side unbounded.
func NewRange(lo, hi string, loInclusive, hiInclusive bool) (Constraint, error) {
	c := Constraint{kind: KindRange}
	var err error
	if c.lo, err = newBound(lo, loInclusive); err != nil {
		return Constraint{}, err
	}
	if c.hi, err = newBound(hi, hiInclusive); err != nil {
		return Constraint{}, err
	}

	if !c.lo.set && !c.hi.set {
		return Constraint{}, invalid(c.String(), "interval must have at least one bound, use \"*\" for any version")
	}
	if c.lo.set && c.hi.set {
		switch cmp := c.lo.v.Compare(c.hi.v); {
		case cmp > 0:
			return Constraint{}, invalid(c.String(), "lower bound is greater than upper bound")
		case cmp == 0 && !(c.lo.inclusive && c.hi.inclusive):
			return Constraint{}, invalid(c.String(), "interval is empty")
		}
	}
	return c, nil
}

func newBound(text string, inclusive bool) (bound, error) {
	text = Normalize(text)
	if text == "" {
		return bound{}, nil
	}
	v, ok := ParseVersion(text)
	if !ok {
		return bound{}, invalid(text, "interval bound is not a dotted numeric version")
	}
	return bound{set: true, inclusive: inclusive, text: text, v: v}, nil
}

// Parse reads the wire form of a constraint (see package documentation).
func Parse(s string) (Constraint, error) {
	raw := strings.TrimSpace(s)
	switch {
	case raw == "":
		return Constraint{}, invalid(s, "constraint is empty")
	case raw == Wildcard:
		return Any(), nil
	case raw[0] == '[' || raw[0] == '(':
		return parseInterval(raw)
	}
	return Exact(raw), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// static tables.
func MustParse(s string) Constraint {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseInterval(raw string) (Constraint, error) {
	last := raw[len(raw)-1]
	if len(raw) < 3 || (last != ']' && last != ')') {
		return Constraint{}, invalid(raw, "interval must end with ']' or ')'")
	}
	loInclusive := raw[0] == '['
	hiInclusive := last == ']'
	inner := raw[1 : len(raw)-1]

	parts := strings.Split(inner, ",")
	switch len(parts) {
	case 1:
		if !loInclusive || !hiInclusive {
			return Constraint{}, invalid(raw, "single version interval must use square brackets")
		}
		return NewRange(parts[0], parts[0], true, true)
	case 2:
		return NewRange(parts[0], parts[1], loInclusive, hiInclusive)
	default:
		return Constraint{}, invalid(raw, "only a single interval is supported")
	}
}

func invalid(constraint, reason string) error {
	return errors.Newf(errors.ErrInvalidConstraint, "invalid version constraint %q: %s", constraint, reason).
		WithDetail("constraint", constraint)
}

// Kind returns the constraint variant.
func (c Constraint) Kind() Kind { return c.kind }

// Matches reports whether version satisfies c. It never fails: Any matches
// everything, and unparsable versions fail every interval.
func (c Constraint) Matches(version string) bool {
	switch c.kind {
	case KindAny:
		return true
	case KindExact:
		return Normalize(version) == c.exact
	case KindRange:
		v, ok := ParseVersion(version)
		if !ok {
			return false
		}
		return c.containsVersion(v)
	}
	return false
}

// Matches is the function form of Constraint.Matches.
func Matches(c Constraint, version string) bool {
	return c.Matches(version)
}

func (c Constraint) containsVersion(v Version) bool {
	if c.lo.set {
		cmp := v.Compare(c.lo.v)
		if cmp < 0 || (cmp == 0 && !c.lo.inclusive) {
			return false
		}
	}
	if c.hi.set {
		cmp := v.Compare(c.hi.v)
		if cmp > 0 || (cmp == 0 && !c.hi.inclusive) {
			return false
		}
	}
	return true
}

// String returns the wire form of c.
func (c Constraint) String() string {
	switch c.kind {
	case KindExact:
		return c.exact
	case KindRange:
		if c.lo.set && c.hi.set && c.lo.text == c.hi.text {
			return "[" + c.lo.text + "]"
		}
		var b strings.Builder
		if c.lo.set && c.lo.inclusive {
			b.WriteByte('[')
		} else {
			b.WriteByte('(')
		}
		b.WriteString(c.lo.text)
		b.WriteByte(',')
		b.WriteString(c.hi.text)
		if c.hi.set && c.hi.inclusive {
			b.WriteByte(']')
		} else {
			b.WriteByte(')')
		}
		return b.String()
	}
	return Wildcard
}

// Overlaps reports whether some version satisfies both a and b.
func Overlaps(a, b Constraint) bool {
	switch {
	case a.kind == KindAny || b.kind == KindAny:
		return true
	case a.kind == KindExact && b.kind == KindExact:
		return a.exact == b.exact
	case a.kind == KindExact:
		return b.Matches(a.exact)
	case b.kind == KindExact:
		return a.Matches(b.exact)
	}
	return rangesIntersect(a, b)
}

func rangesIntersect(a, b Constraint) bool {
	lo := tighterLower(a.lo, b.lo)
	hi := tighterUpper(a.hi, b.hi)
	if !lo.set || !hi.set {
		return true
	}
	cmp := lo.v.Compare(hi.v)
	return cmp < 0 || (cmp == 0 && lo.inclusive && hi.inclusive)
}

func tighterLower(x, y bound) bound {
	switch {
	case !x.set:
		return y
	case !y.set:
		return x
	}
	switch cmp := x.v.Compare(y.v); {
	case cmp > 0:
		return x
	case cmp < 0:
		return y
	}
	x.inclusive = x.inclusive && y.inclusive
	return x
}

func tighterUpper(x, y bound) bound {
	switch {
	case !x.set:
		return y
	case !y.set:
		return x
	}
	switch cmp := x.v.Compare(y.v); {
	case cmp < 0:
		return x
	case cmp > 0:
		return y
	}
	x.inclusive = x.inclusive && y.inclusive
	return x
}
