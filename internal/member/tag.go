package member

import (
	"sort"
	"strings"
)

// TagSeparator separates tag names inside a single cell.
const TagSeparator = ";"

// Tag is a short free-form label attached to a member.
type Tag struct{ name string }

// NewTag validates and returns a Tag.
func NewTag(s string) (Tag, error) {
	if err := checkVar("tag", s, tagRules); err != nil {
		return Tag{}, err
	}
	return Tag{name: s}, nil
}

// Name returns the tag label without decoration.
func (t Tag) Name() string { return t.name }

// String renders the tag the way the address book displays it.
func (t Tag) String() string { return "[" + t.name + "]" }

// ParseTags splits a tags cell into unique tag names.
//
// Bracket characters are stripped, entries are trimmed and empty entries are
// dropped. The result is sorted so that the set has a stable order.
func ParseTags(cell string) []string {
	if cell == "" {
		return nil
	}

	cell = strings.NewReplacer("[", "", "]", "").Replace(cell)

	seen := make(map[string]bool)
	var names []string
	for _, part := range strings.Split(cell, TagSeparator) {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		names = append(names, part)
	}

	sort.Strings(names)
	return names
}

// JoinTags renders tags as a single cell, the inverse of ParseTags for tag
// names without separators or brackets.
func JoinTags(tags []Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.name
	}
	return strings.Join(names, TagSeparator)
}
