// Package book provides HTTP handlers for the catalogue endpoints under /books.
package book

import (
	"time"

	"book-journal/internal/domain/entity"
)

// DTO represents the JSON structure of a catalogued book.
type DTO struct {
	ID           int64      `json:"id"`
	ISBN         string     `json:"isbn"`
	Title        string     `json:"title"`
	AuthorID     int64      `json:"authorId"`
	PublishedAt  *time.Time `json:"publishedAt"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func toDTO(b *entity.Book) DTO {
	return DTO{
		ID:           b.ID,
		ISBN:         b.ISBN,
		Title:        b.Title,
		AuthorID:     b.AuthorID,
		PublishedAt:  b.PublishedAt,
		ThumbnailURL: b.ThumbnailURL,
		CreatedAt:    b.CreatedAt,
	}
}
