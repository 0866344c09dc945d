// Package candidates holds the immutable list of names offered by the menu.
package candidates

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Set is a deduplicated, case-insensitively sorted list of candidate names.
// A Set never changes after New returns.
type Set struct {
	items []string
}

// New builds a Set from names in any order. Empty names and duplicates are
// dropped. Names that differ only in case are both kept and ordered by their
// byte value so the result is deterministic.
func New(names []string) *Set {
	items := lo.Uniq(lo.Filter(names, func(name string, _ int) bool {
		return name != ""
	}))
	slices.SortFunc(items, compareFold)
	return &Set{items: items}
}

func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Len returns the number of candidates.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns a copy of the candidates in order.
func (s *Set) Items() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.items)
}
