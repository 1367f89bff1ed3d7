// Package charset provides an immutable-style set of single characters.
package charset

import (
	"sort"
	"strings"
)

// Set is a set of unique characters. Each element is a single normalized
// character stored as a string. Mutating operations return new sets so the
// aggregation pipeline can be reasoned about value-wise.
type Set struct {
	m map[string]struct{}
}

// New builds a set from the given characters.
func New(chars ...string) Set {
	m := make(map[string]struct{}, len(chars))
	for _, ch := range chars {
		if ch == "" {
			continue
		}
		m[ch] = struct{}{}
	}
	return Set{m: m}
}

// Len returns the number of characters in the set.
func (s Set) Len() int {
	return len(s.m)
}

// Contains reports whether ch is in the set.
func (s Set) Contains(ch string) bool {
	_, ok := s.m[ch]
	return ok
}

// Union returns a new set with the elements of both sets.
func (s Set) Union(other Set) Set {
	m := make(map[string]struct{}, len(s.m)+len(other.m))
	for ch := range s.m {
		m[ch] = struct{}{}
	}
	for ch := range other.m {
		m[ch] = struct{}{}
	}
	return Set{m: m}
}

// Diff returns a new set with the elements of s not present in other.
func (s Set) Diff(other Set) Set {
	m := make(map[string]struct{}, len(s.m))
	for ch := range s.m {
		if _, ok := other.m[ch]; !ok {
			m[ch] = struct{}{}
		}
	}
	return Set{m: m}
}

// Intersect returns a new set with the elements present in both sets.
func (s Set) Intersect(other Set) Set {
	small, large := s.m, other.m
	if len(large) < len(small) {
		small, large = large, small
	}
	m := make(map[string]struct{}, len(small))
	for ch := range small {
		if _, ok := large[ch]; ok {
			m[ch] = struct{}{}
		}
	}
	return Set{m: m}
}

// Sorted returns the characters in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s.m))
	for ch := range s.m {
		out = append(out, ch)
	}
	sort.Strings(out)
	return out
}

// Join concatenates the sorted characters into one string.
func (s Set) Join() string {
	return strings.Join(s.Sorted(), "")
}
