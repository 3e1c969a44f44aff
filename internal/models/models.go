package models

// Book is one catalog entry. IDs are 1-based catalog positions.
type Book struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Cover       string   `json:"cover,omitempty"`
}

// Text is the string embedded for the book when building the corpus index.
func (b Book) Text() string {
	return b.Title + " " + b.Author + " " + b.Description
}
