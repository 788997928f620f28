// Package keywords does substring membership tests for ordered keyword groups
// in a single Aho-Corasick pass.
package keywords

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Set is an immutable compiled form of ordered keyword groups. It is safe for
// concurrent use.
type Set struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	// groupsOf maps a dictionary index to every group listing that keyword.
	groupsOf [][]int
	size     int
}

// Compile builds a Set. Keywords are lowercased but not trimmed, so "bs "
// still needs the trailing space. Blank keywords are ignored and a keyword
// shared by several groups is stored once.
func Compile(groups [][]string) *Set {
	s := &Set{size: len(groups)}
	index := make(map[string]int)

	for g, kws := range groups {
		for _, kw := range kws {
			kw = lower(kw)
			if strings.TrimSpace(kw) == "" {
				continue
			}
			i, ok := index[kw]
			if !ok {
				i = len(s.keywords)
				index[kw] = i
				s.keywords = append(s.keywords, kw)
				s.groupsOf = append(s.groupsOf, nil)
			}
			if !containsInt(s.groupsOf[i], g) {
				s.groupsOf[i] = append(s.groupsOf[i], g)
			}
		}
	}

	if len(s.keywords) > 0 {
		s.matcher = ahocorasick.NewStringMatcher(s.keywords)
	}
	return s
}

// Match lowercases text and reports, per group in declared order, whether any
// of the group's keywords occurs in it as a substring.
func (s *Set) Match(text string) []bool {
	hits := make([]bool, s.size)
	if s.matcher == nil || text == "" {
		return hits
	}

	for _, i := range s.matcher.MatchThreadSafe([]byte(lower(text))) {
		if i >= len(s.groupsOf) {
			continue
		}
		for _, g := range s.groupsOf[i] {
			hits[g] = true
		}
	}
	return hits
}

// First returns the index of the first group with a hit, or -1.
func (s *Set) First(text string) int {
	for g, hit := range s.Match(text) {
		if hit {
			return g
		}
	}
	return -1
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
