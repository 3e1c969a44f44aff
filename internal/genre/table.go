package genre

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table maps lowercase surface forms ("sci-fi") to canonical tags
// ("science fiction"). It is immutable once built.
type Table struct {
	terms  []string
	lookup map[string]string
}

var defaultAliases = map[string][]string{
	"science fiction":      {"science fiction", "sci-fi", "scifi", "sf"},
	"fantasy":              {"fantasy"},
	"romance":              {"romance", "romantic"},
	"dystopia":             {"dystopia", "dystopian"},
	"nonfiction":           {"nonfiction", "non-fiction", "non fiction"},
	"classic":              {"classic", "classics"},
	"adventure":            {"adventure"},
	"cyberpunk":            {"cyberpunk"},
	"gothic":               {"gothic"},
	"history":              {"history", "historical"},
	"epic":                 {"epic"},
	"survival":             {"survival"},
	"political fiction":    {"political", "politics"},
	"coming-of-age":        {"coming-of-age", "coming of age"},
	"social commentary":    {"social commentary"},
	"thriller":             {"thriller"},
	"mystery":              {"mystery"},
	"psychological":        {"psychological"},
	"young adult":          {"young adult", "ya"},
	"contemporary fiction": {"contemporary"},
	"memoir":               {"memoir"},
	"biography":            {"biography"},
	"self-help":            {"self-help"},
	"philosophy":           {"philosophy"},
}

// DefaultTable returns the built-in genre vocabulary.
func DefaultTable() Table {
	t, _ := NewTable(defaultAliases)
	return t
}

// NewTable builds a table from canonical tag -> surface forms. Every tag
// also matches itself.
func NewTable(aliases map[string][]string) (Table, error) {
	lookup := make(map[string]string)
	for tag, forms := range aliases {
		tag = normalize(tag)
		if tag == "" {
			return Table{}, fmt.Errorf("empty genre tag")
		}
		for _, f := range append([]string{tag}, forms...) {
			f = normalize(f)
			if f == "" {
				continue
			}
			if prev, ok := lookup[f]; ok && prev != tag {
				return Table{}, fmt.Errorf("surface form %q maps to both %q and %q", f, prev, tag)
			}
			lookup[f] = tag
		}
	}
	terms := make([]string, 0, len(lookup))
	for f := range lookup {
		terms = append(terms, f)
	}
	sort.Strings(terms)
	return Table{terms: terms, lookup: lookup}, nil
}

// LoadTable reads a YAML document of the form
//
//	science fiction: [sci-fi, scifi, sf]
//	romance: [romantic]
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	var aliases map[string][]string
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return Table{}, fmt.Errorf("parse genre table %s: %w", path, err)
	}
	if len(aliases) == 0 {
		return Table{}, fmt.Errorf("genre table %s is empty", path)
	}
	return NewTable(aliases)
}

// Lookup returns the canonical tag for an exact surface form.
func (t Table) Lookup(form string) (string, bool) {
	tag, ok := t.lookup[form]
	return tag, ok
}

// Len is the number of surface forms.
func (t Table) Len() int { return len(t.terms) }

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
