package entity

import (
	"strings"
	"time"
)

// Book is a catalogued book. ISBN is unique and is what posts reference.
type Book struct {
	ID           int64
	ISBN         string
	Title        string
	AuthorID     int64
	PublishedAt  *time.Time
	ThumbnailURL *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Author is a book author, looked up by name.
type Author struct {
	ID   int64
	Name string
}

// BookWithPosts is a book with its author and every journal entry about it.
type BookWithPosts struct {
	Book   Book
	Author Author
	Posts  []PostDetail
}

// NormalizeISBN returns the identifier a book is stored under. When the
// catalogue supplies "ISBN10 ISBN13" the ISBN-13 is kept; surrounding space
// is dropped.
func NormalizeISBN(isbn string) string {
	fields := strings.Fields(isbn)
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	default:
		return fields[len(fields)-1]
	}
}
