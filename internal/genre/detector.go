// Package genre detects genre keywords in free-text queries.
package genre

import (
	"sort"
	"strings"
)

// Set is a set of canonical genre tags.
type Set map[string]struct{}

func (s Set) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Sorted returns the tags in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for tag := range s {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// MatchesAny reports whether any of genres, compared case-insensitively,
// is in the set.
func (s Set) MatchesAny(genres []string) bool {
	for _, g := range genres {
		if s.Contains(strings.ToLower(g)) {
			return true
		}
	}
	return false
}

const tokenPunctuation = ".,!?;:\"()[]{}"

type Detector struct {
	table Table
}

func NewDetector(table Table) *Detector {
	return &Detector{table: table}
}

// Detect returns the canonical tags mentioned in query. The first rule
// that finds anything wins:
//  1. the whole query is a surface form;
//  2. surface forms occurring anywhere in the query (all of them);
//  3. individual words with surrounding punctuation removed.
//
// Matching is substring based, so "sf" also matches inside longer words.
func (d *Detector) Detect(query string) Set {
	q := strings.ToLower(strings.TrimSpace(query))
	detected := Set{}
	if q == "" {
		return detected
	}

	if tag, ok := d.table.Lookup(q); ok {
		detected[tag] = struct{}{}
		return detected
	}

	for _, term := range d.table.terms {
		if strings.Contains(q, term) {
			detected[d.table.lookup[term]] = struct{}{}
		}
	}
	if len(detected) > 0 {
		return detected
	}

	for _, word := range strings.Fields(q) {
		word = strings.Trim(word, tokenPunctuation)
		if tag, ok := d.table.Lookup(word); ok {
			detected[tag] = struct{}{}
		}
	}
	return detected
}
