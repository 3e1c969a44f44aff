// Package title finds catalog titles mentioned in a query.
package title

import (
	"strings"

	"github.com/0x5457/book-rec/internal/models"
)

type Matcher struct {
	titles []string
}

func NewMatcher(books []models.Book) *Matcher {
	titles := make([]string, len(books))
	for i, b := range books {
		titles[i] = strings.ToLower(b.Title)
	}
	return &Matcher{titles: titles}
}

// Find returns the catalog position of the first title (in catalog order)
// contained in query, compared case-insensitively. Containment is plain
// substring search: "dune" matches "dunes".
func (m *Matcher) Find(query string) (int, bool) {
	q := strings.ToLower(query)
	for i, t := range m.titles {
		if t != "" && strings.Contains(q, t) {
			return i, true
		}
	}
	return -1, false
}
