// Package post provides HTTP handlers for the reading journal endpoints under /posts.
package post

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"book-journal/internal/domain/entity"
	postUC "book-journal/internal/usecase/post"
)

// DTO represents the JSON structure of a post with its relations.
type DTO struct {
	ID        int64     `json:"id"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Rating    int       `json:"rating"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsPrivate bool      `json:"isPrivate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   int       `json:"version"`
	User      UserDTO   `json:"user"`
	Book      BookDTO   `json:"book"`
}

// UserDTO is the public part of a post's owner.
type UserDTO struct {
	ID      uuid.UUID   `json:"id"`
	Profile *ProfileDTO `json:"profile"`
}

type ProfileDTO struct {
	Nickname  string  `json:"nickname"`
	AvatarURL *string `json:"avatarUrl"`
	Bio       *string `json:"bio"`
}

// BookDTO is a book with its author.
type BookDTO struct {
	ID           int64      `json:"id"`
	ISBN         string     `json:"isbn"`
	Title        string     `json:"title"`
	PublishedAt  *time.Time `json:"publishedAt"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	Author       AuthorDTO  `json:"author"`
}

type AuthorDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookPostsDTO is the response of GET /posts/book/{isbn}.
type BookPostsDTO struct {
	BookDTO
	Posts []DTO `json:"posts"`
}

func toDTO(d *entity.PostDetail) DTO {
	out := DTO{
		ID:        d.Post.ID,
		Title:     d.Post.Title,
		Content:   d.Post.Content,
		Rating:    d.Post.Rating,
		StartDate: d.Post.StartDate,
		EndDate:   d.Post.EndDate,
		IsPrivate: d.Post.IsPrivate,
		CreatedAt: d.Post.CreatedAt,
		UpdatedAt: d.Post.UpdatedAt,
		Version:   d.Post.Version,
		User:      UserDTO{ID: d.Post.UserID},
		Book:      toBookDTO(d.Book, d.Author),
	}
	if d.Profile != nil {
		out.User.Profile = &ProfileDTO{
			Nickname:  d.Profile.Nickname,
			AvatarURL: d.Profile.AvatarURL,
			Bio:       d.Profile.Bio,
		}
	}
	return out
}

func toDTOs(details []*entity.PostDetail) []DTO {
	out := make([]DTO, 0, len(details))
	for _, d := range details {
		out = append(out, toDTO(d))
	}
	return out
}

func toBookDTO(b entity.Book, a entity.Author) BookDTO {
	return BookDTO{
		ID:           b.ID,
		ISBN:         b.ISBN,
		Title:        b.Title,
		PublishedAt:  b.PublishedAt,
		ThumbnailURL: b.ThumbnailURL,
		Author:       AuthorDTO{ID: a.ID, Name: a.Name},
	}
}

// WriteRequest is the body of POST /posts and PUT /posts/{id}.
type WriteRequest struct {
	Title     *string          `json:"title"`
	Content   *string          `json:"content"`
	Rating    int              `json:"rating"`
	StartDate Date             `json:"startDate"`
	EndDate   Date             `json:"endDate"`
	IsPrivate bool             `json:"isPrivate"`
	Book      BookWriteRequest `json:"book"`
}

// BookWriteRequest describes the book a post is about. Unknown catalogue
// fields (contents, url, publisher) are accepted and ignored.
type BookWriteRequest struct {
	ISBN         string  `json:"isbn"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	PublishedAt  *Date   `json:"publishedAt"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

func (req WriteRequest) input() postUC.WriteInput {
	in := postUC.WriteInput{
		Title:     req.Title,
		Content:   req.Content,
		Rating:    req.Rating,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
		IsPrivate: req.IsPrivate,
		Book: postUC.BookInput{
			ISBN:         req.Book.ISBN,
			Title:        req.Book.Title,
			Author:       req.Book.Author,
			ThumbnailURL: req.Book.ThumbnailURL,
		},
	}
	if req.Book.PublishedAt != nil {
		t := req.Book.PublishedAt.Time
		in.Book.PublishedAt = &t
	}
	return in
}

// Date accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}
