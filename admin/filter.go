// Package admin holds the list/filter/sort behaviour of the catalog admin
// pages (characteristics, domain types, quality rules) over their fixed
// sample sets.
package admin

import "strings"

// Predicate reports whether an item stays in the displayed subset.
type Predicate[T any] func(T) bool

// Apply runs the predicates in order and keeps the items that pass all of
// them. The input slice is not modified.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range preds {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// MatchText matches items where any field contains query, ignoring case. An
// empty query matches everything.
func MatchText[T any](query string, fields func(T) []string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(item T) bool {
		if q == "" {
			return true
		}
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}
}

// Equals matches items whose field equals want, ignoring case. An empty want
// or "all" matches everything.
func Equals[T any](want string, field func(T) string) Predicate[T] {
	return func(item T) bool {
		if want == "" || strings.EqualFold(want, "all") {
			return true
		}
		return strings.EqualFold(field(item), want)
	}
}
