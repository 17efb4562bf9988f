package operations

import (
	"fmt"
	"io"
	"strings"

	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/types"
)

// Verb is the action a Plan performs.
type Verb int

const (
	VerbRemove Verb = iota
	VerbMove
	VerbArchive
	VerbExport
)

var verbNames = []string{"remove", "move", "archive", "export"}

func (v Verb) String() string {
	if int(v) >= 0 && int(v) < len(verbNames) {
		return verbNames[v]
	}
	return fmt.Sprintf("Verb(%d)", int(v))
}

// MarshalText encodes the verb by name.
func (v Verb) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Destructive reports whether the verb changes mod files.
func (v Verb) Destructive() bool { return v == VerbRemove || v == VerbMove }

// ParseVerb reads a verb name, case-insensitively.
func ParseVerb(s string) (Verb, error) {
	for i, name := range verbNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Verb(i), nil
		}
	}
	return 0, errors.Newf(errors.ErrInvalidInput, "unknown operation %q", s).
		WithDetail("verb", s)
}

// Plan describes one bulk operation. Plans are never persisted.
type Plan struct {
	Verb   Verb
	Filter types.TagSet

	// Destination is the target directory for Move, the archive path for
	// Archive and the output file for Export.
	Destination string

	// Writer receives the Export listing instead of Destination.
	Writer io.Writer

	// DryRun runs the preflight and reports what would happen.
	DryRun bool
}

// Validate rejects plans that cannot be executed at all.
func (p Plan) Validate() error {
	if len(p.Filter) == 0 {
		return errors.New(errors.ErrInvalidInput, "at least one tag is required to select packages").
			WithDetail("verb", p.Verb.String())
	}
	switch p.Verb {
	case VerbRemove:
	case VerbMove, VerbArchive:
		if strings.TrimSpace(p.Destination) == "" {
			return errors.Newf(errors.ErrInvalidInput, "%s needs a destination", p.Verb).
				WithDetail("verb", p.Verb.String())
		}
	case VerbExport:
		if p.Writer == nil && strings.TrimSpace(p.Destination) == "" {
			return errors.New(errors.ErrInvalidInput, "export needs an output file or writer").
				WithDetail("verb", p.Verb.String())
		}
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown operation %s", p.Verb).
			WithDetail("verb", p.Verb.String())
	}
	return nil
}

// Select returns the classifications whose tags intersect filter, in
// snapshot order. Unknown packages are selected only through the "unknown"
// pseudo-tag.
func Select(filter types.TagSet, snapshot *classify.Snapshot) []classify.Classification {
	if snapshot == nil {
		return nil
	}
	wantUnknown := filter.Contains(types.TagUnknown)
	return snapshot.Filter(func(c classify.Classification) bool {
		if c.Status == classify.StatusUnknown {
			return wantUnknown
		}
		return c.Tags.Intersects(filter)
	})
}
