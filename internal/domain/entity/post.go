// Package entity defines the core domain entities and validation logic for the application.
// It contains the reading journal objects (Post, Book, Author, User, Profile) along with
// their validation rules and domain-specific errors.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Post is one reading journal entry written by a user about a book.
type Post struct {
	ID        int64
	UserID    uuid.UUID
	BookISBN  string
	Title     *string
	Content   *string
	Rating    int
	StartDate time.Time
	EndDate   time.Time
	IsPrivate bool
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
	DeletedAt *time.Time
}

// PostDetail is a post together with the relations a listing renders:
// the book, its author and the owner's profile.
type PostDetail struct {
	Post    Post
	Book    Book
	Author  Author
	Profile *Profile
}

// Sortable post fields as they appear in order directives.
const (
	PostFieldID        = "id"
	PostFieldRating    = "rating"
	PostFieldStartDate = "startDate"
	PostFieldEndDate   = "endDate"
	PostFieldCreatedAt = "createdAt"
	PostFieldUpdatedAt = "updatedAt"
)

// CursorValue returns the value of a sortable field for cursor encoding.
func (p *Post) CursorValue(field string) (any, bool) {
	switch field {
	case PostFieldID:
		return p.ID, true
	case PostFieldRating:
		return p.Rating, true
	case PostFieldStartDate:
		return p.StartDate, true
	case PostFieldEndDate:
		return p.EndDate, true
	case PostFieldCreatedAt:
		return p.CreatedAt, true
	case PostFieldUpdatedAt:
		return p.UpdatedAt, true
	}
	return nil, false
}

// CursorValue delegates to the embedded post.
func (d *PostDetail) CursorValue(field string) (any, bool) {
	return d.Post.CursorValue(field)
}

// IsOwnedBy reports whether userID wrote the post.
func (p *Post) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && p.UserID == userID
}

// VisibleTo reports whether viewer may read the post. Private posts are only
// visible to their owner; uuid.Nil stands for an anonymous viewer.
func (p *Post) VisibleTo(viewer uuid.UUID) bool {
	return !p.IsPrivate || p.IsOwnedBy(viewer)
}
