// Package common holds small helpers shared by the internal packages.
package common

import (
	"slices"
	"strings"
)

// UnknownStr is printed for values outside a known enumeration.
const UnknownStr = "unknown"

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Duplicates returns the values that occur more than once in s, in order of their
// second occurrence, each reported once.
func Duplicates[S ~[]E, E comparable](s S) []E {
	seen := make(map[E]int, len(s))

	var out []E

	for _, v := range s {
		seen[v]++
		if seen[v] == 2 {
			out = append(out, v)
		}
	}

	return out
}

// Closest returns the candidates sharing the longest case-insensitive prefix with name,
// provided that prefix is at least half of name. Candidates are returned sorted.
func Closest(name string, candidates []string) []string {
	best := 0

	var out []string

	for _, c := range candidates {
		n := commonPrefix(strings.ToLower(name), strings.ToLower(c))
		if n == 0 || n*2 < len(name) {
			continue
		}

		switch {
		case n > best:
			best = n
			out = []string{c}
		case n == best:
			out = append(out, c)
		}
	}

	slices.Sort(out)

	return out
}

func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}

	return n
}
