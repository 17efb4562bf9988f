package types

import (
	"sort"
	"strings"
)

// Tag is a case-normalized classification label attached to a package.
type Tag string

// Well-known tags. Any other non-empty string is a valid custom tag.
const (
	TagClient Tag = "client"
	TagServer Tag = "server"
	TagBoth   Tag = "both"

	// TagUnknown is the filter pseudo-tag that selects packages no module
	// matched. Modules may not use it.
	TagUnknown Tag = "unknown"
)

var displayNames = map[Tag]string{
	TagClient:  "Client",
	TagServer:  "Server",
	TagBoth:    "Both",
	TagUnknown: "Unknown",
}

// NewTag normalizes s into a Tag (trimmed, lower case).
func NewTag(s string) Tag {
	return Tag(strings.ToLower(strings.TrimSpace(s)))
}

// IsWellKnown reports whether t is one of Client, Server or Both.
func (t Tag) IsWellKnown() bool {
	return t == TagClient || t == TagServer || t == TagBoth
}

// Display returns the conventional spelling for well-known tags and the
// normalized value for custom ones.
func (t Tag) Display() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}

func (t Tag) String() string { return string(t) }

// TagSet is a sorted, duplicate-free list of tags.
type TagSet []Tag

// NewTagSet builds a sorted, duplicate-free set from tags.
func NewTagSet(tags ...Tag) TagSet {
	seen := make(map[Tag]bool, len(tags))
	set := make(TagSet, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		set = append(set, t)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}

// Contains reports whether t is in the set.
func (s TagSet) Contains(t Tag) bool {
	for _, tag := range s {
		if tag == t {
			return true
		}
	}
	return false
}

// Intersects reports whether any tag of other is in s.
func (s TagSet) Intersects(other TagSet) bool {
	for _, t := range other {
		if s.Contains(t) {
			return true
		}
	}
	return false
}

// Join renders the set in display form separated by sep.
func (s TagSet) Join(sep string) string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.Display()
	}
	return strings.Join(parts, sep)
}

// ParseTags splits a comma separated list of tags, as typed on a command
// line, into a normalized set.
func ParseTags(values ...string) TagSet {
	var tags []Tag
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if t := NewTag(part); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return NewTagSet(tags...)
}
