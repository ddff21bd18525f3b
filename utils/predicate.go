package utils

import "strings"

// Predicate reports whether a value is selected.
type Predicate[T any] func(T) bool

// And combines predicates with logical AND. Nil predicates are treated as always true,
// so And() and And(nil) select everything.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p != nil && !p(v) {
				return false
			}
		}

		return true
	}
}

// Or combines predicates with logical OR. Nil predicates are skipped; with no usable
// predicate nothing is selected.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p != nil && p(v) {
				return true
			}
		}

		return false
	}
}

// Not negates p. A nil p is treated as always true.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(v T) bool {
		return p != nil && !p(v)
	}
}

// OneOf selects strings equal to one of names.
func OneOf(names ...string) Predicate[string] {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	return func(s string) bool {
		_, ok := set[s]
		return ok
	}
}

// HasPrefix selects strings starting with prefix.
func HasPrefix(prefix string) Predicate[string] {
	return func(s string) bool {
		return strings.HasPrefix(s, prefix)
	}
}
