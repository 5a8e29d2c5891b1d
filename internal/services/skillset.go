package services

import (
	"sort"
	"strings"
)

// SkillSet is a set of normalized technology/organization terms. Terms
// are lowercased and trimmed on insert; empty terms are dropped, so two
// spellings differing only by case or surrounding whitespace are the
// same skill.
type SkillSet map[string]struct{}

func NewSkillSet(terms ...string) SkillSet {
	s := make(SkillSet, len(terms))
	for _, term := range terms {
		s.Add(term)
	}
	return s
}

// Add inserts one term after normalization. Terms that are empty after
// trimming are silently dropped.
func (s SkillSet) Add(term string) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return
	}
	s[term] = struct{}{}
}

func (s SkillSet) Has(term string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(term))]
	return ok
}

func (s SkillSet) Len() int {
	return len(s)
}

func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := SkillSet{}
	for term := range s {
		if _, ok := other[term]; ok {
			out[term] = struct{}{}
		}
	}
	return out
}

func (s SkillSet) Union(other SkillSet) SkillSet {
	out := make(SkillSet, len(s)+len(other))
	for term := range s {
		out[term] = struct{}{}
	}
	for term := range other {
		out[term] = struct{}{}
	}
	return out
}

// Sorted returns the terms as a sorted slice, never nil.
func (s SkillSet) Sorted() []string {
	terms := make([]string, 0, len(s))
	for term := range s {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
