package render

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortSystemFirst orders items so that system entries precede user entries.
// Within each group items are ordered by name using locale-aware collation.
func SortSystemFirst[T any](items []T, isSystem func(T) bool, name func(T) string) {
	// Collators are not safe for concurrent use.
	c := collate.New(language.Und)
	slices.SortStableFunc(items, func(a, b T) int {
		sa, sb := isSystem(a), isSystem(b)
		switch {
		case sa && !sb:
			return -1
		case !sa && sb:
			return 1
		}
		return c.CompareString(name(a), name(b))
	})
}
