package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/0x5457/book-rec/internal/models"
	_ "modernc.org/sqlite"
)

const selectBooks = `SELECT
	COALESCE(title, ''),
	COALESCE(author, ''),
	COALESCE(description, ''),
	COALESCE(genres, '')
FROM books ORDER BY rowid`

// readSQLite reads the books table of a SQLite file. Row order is rowid order.
func readSQLite(ctx context.Context, path string) ([]models.Book, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, selectBooks)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	books := []models.Book{}
	for rows.Next() {
		var title, author, description, genres string
		if err := rows.Scan(&title, &author, &description, &genres); err != nil {
			return nil, err
		}
		books = append(books, newBook(len(books)+1, title, author, description, genres, ""))
	}
	return books, rows.Err()
}
