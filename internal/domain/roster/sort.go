package roster

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortNames returns a copy of names in English collation order, so "de Leon"
// sits beside "Dean" instead of after every capitalized name.
func SortNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	// Collators keep scratch buffers and are not safe to share.
	collate.New(language.English).SortStrings(out)
	return out
}

// BuildEntries sorts deduplicated names for a category and attaches the role
// and profile link to each.
func BuildEntries(raw Roster, names []string, c Category) []PlayerEntry {
	sorted := SortNames(names)
	entries := make([]PlayerEntry, len(sorted))
	for i, name := range sorted {
		role := RoleFor(raw, name, c)
		entries[i] = PlayerEntry{
			Name:        name,
			Role:        role,
			ProfilePath: ProfilePath(name, role),
		}
	}
	return entries
}
