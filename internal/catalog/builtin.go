package catalog

import "github.com/0x5457/book-rec/internal/models"

// Builtin returns the catalog used when no source is configured or the
// configured source cannot be read.
func Builtin() []models.Book {
	return []models.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert",
			Description: "Epic science fiction about politics, religion, and desert planet Arrakis.",
			Genres:      []string{"Science Fiction", "Adventure"}},
		{ID: 2, Title: "Pride and Prejudice", Author: "Jane Austen",
			Description: "A witty social commentary and romance centered on Elizabeth Bennet.",
			Genres:      []string{"Romance", "Classic"}},
		{ID: 3, Title: "The Hobbit", Author: "J.R.R. Tolkien",
			Description: "A reluctant hobbit goes on an adventure with dwarves to reclaim treasure.",
			Genres:      []string{"Fantasy", "Adventure"}},
		{ID: 4, Title: "1984", Author: "George Orwell",
			Description: "Dystopian novel about surveillance, totalitarianism and truth control.",
			Genres:      []string{"Dystopia", "Political Fiction"}},
		{ID: 5, Title: "The Martian", Author: "Andy Weir",
			Description: "A stranded astronaut uses engineering and humor to survive on Mars.",
			Genres:      []string{"Science Fiction", "Survival"}},
		{ID: 6, Title: "Neuromancer", Author: "William Gibson",
			Description: "Cyberpunk classic; a washed-up hacker is hired for one last job.",
			Genres:      []string{"Science Fiction", "Cyberpunk"}},
		{ID: 7, Title: "The Hunger Games", Author: "Suzanne Collins",
			Description: "A dystopian tale of survival and rebellion in a totalitarian society.",
			Genres:      []string{"Dystopia", "Adventure", "Young Adult"}},
		{ID: 8, Title: "Harry Potter and the Sorcerer's Stone", Author: "J.K. Rowling",
			Description: "A young wizard discovers his magical heritage and attends Hogwarts.",
			Genres:      []string{"Fantasy", "Adventure", "Young Adult"}},
		{ID: 9, Title: "Gone Girl", Author: "Gillian Flynn",
			Description: "A psychological thriller about a marriage gone wrong.",
			Genres:      []string{"Thriller", "Mystery", "Psychological"}},
		{ID: 10, Title: "Sapiens", Author: "Yuval Noah Harari",
			Description: "A brief history of humankind exploring cognitive, agricultural, and scientific revolutions.",
			Genres:      []string{"Nonfiction", "History"}},
		{ID: 11, Title: "The Fault in Our Stars", Author: "John Green",
			Description: "A love story between two teenagers with cancer.",
			Genres:      []string{"Romance", "Young Adult", "Contemporary Fiction"}},
		{ID: 12, Title: "Atomic Habits", Author: "James Clear",
			Description: "A guide to building good habits and breaking bad ones.",
			Genres:      []string{"Nonfiction", "Self-Help", "Psychology"}},
	}
}
