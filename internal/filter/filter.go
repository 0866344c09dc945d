// Package filter narrows a candidate list to the names that fuzzily match a
// query.
//
// A name matches when every rune of the query occurs in the name in the same
// order, ignoring case. Matches are not scored: names that start with the query
// (case-sensitive) are moved ahead of the rest and the input order is kept
// within both groups.
package filter

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Matcher tests names against a single query. The zero value matches
// everything.
type Matcher struct {
	query  string
	folded []rune
}

// NewMatcher prepares query for repeated matching.
func NewMatcher(query string) Matcher {
	return Matcher{query: query, folded: []rune(strings.ToLower(query))}
}

// Match reports whether the query is a case-insensitive subsequence of name.
func (m Matcher) Match(name string) bool {
	if len(m.folded) == 0 {
		return true
	}
	i := 0
	for _, r := range strings.ToLower(name) {
		if r != m.folded[i] {
			continue
		}
		i++
		if i == len(m.folded) {
			return true
		}
	}
	return false
}

// Prefixed reports whether name starts with the literal query.
func (m Matcher) Prefixed(name string) bool {
	return strings.HasPrefix(name, m.query)
}

// Matches reports whether query fuzzily matches name.
func Matches(name, query string) bool {
	return NewMatcher(query).Match(name)
}

// Filter returns the candidates matching query, prefix matches first. An empty
// query returns all candidates in their original order. The input slice is
// never modified.
func Filter(candidates []string, query string) []string {
	if query == "" {
		return slices.Clone(candidates)
	}
	m := NewMatcher(query)
	matched := lo.Filter(candidates, func(name string, _ int) bool {
		return m.Match(name)
	})
	prefixed := lo.Filter(matched, func(name string, _ int) bool {
		return m.Prefixed(name)
	})
	if len(prefixed) == 0 || len(prefixed) == len(matched) {
		return matched
	}
	rest := lo.Reject(matched, func(name string, _ int) bool {
		return m.Prefixed(name)
	})
	return append(prefixed, rest...)
}
