// Package repository declares the storage ports the use cases depend on.
package repository

import (
	"context"

	"github.com/google/uuid"

	"book-journal/internal/common/pagination"
	"book-journal/internal/domain/entity"
)

// PostFilter narrows a post listing.
type PostFilter struct {
	UserID         *uuid.UUID // Optional: only posts written by this user
	IncludePrivate bool       // Include private posts (owner listings only)
}

// PostPage is one cursor page of posts.
type PostPage struct {
	Posts      []*entity.PostDetail
	NextCursor *string
	// Count is the number of posts matching the filter from the cursor
	// position on, including the rows of this page.
	Count int64
}

type PostRepository interface {
	// ListPage returns one page of posts ordered and positioned by req.
	// Pagination input errors keep their sentinel so errors.Is works.
	ListPage(ctx context.Context, filter PostFilter, req pagination.Request) (*PostPage, error)
	// Get returns the post with its relations.
	// Returns (nil, nil) if the post does not exist or was deleted.
	Get(ctx context.Context, id int64) (*entity.PostDetail, error)
	// ListByBook returns every visible post about the book, newest first.
	ListByBook(ctx context.Context, isbn string) ([]entity.PostDetail, error)
	Create(ctx context.Context, post *entity.Post) error
	// Update writes the mutable columns and bumps the version.
	Update(ctx context.Context, post *entity.Post) error
	// SoftDelete marks the post deleted. It returns entity.ErrNotFound when no live post has id.
	SoftDelete(ctx context.Context, id int64) error
}
