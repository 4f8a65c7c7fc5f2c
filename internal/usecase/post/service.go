package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"book-journal/internal/common/pagination"
	"book-journal/internal/domain/entity"
	"book-journal/internal/observability/metrics"
	"book-journal/internal/repository"
	"book-journal/internal/resilience/retry"
)

// BookInput describes the book a post is written about. The book and its
// author are created on first use.
type BookInput struct {
	ISBN         string
	Title        string
	Author       string
	PublishedAt  *time.Time
	ThumbnailURL *string
}

// WriteInput carries the fields of a create or update request.
type WriteInput struct {
	Title     *string
	Content   *string
	Rating    int
	StartDate time.Time
	EndDate   time.Time
	IsPrivate bool
	Book      BookInput
}

// Service provides the post use cases.
// Reads go through Repos; writes run inside a transaction opened by Tx.
type Service struct {
	Repos   repository.Repos
	Tx      repository.Transactor
	Listing pagination.Config
	Logger  *slog.Logger
}

// DefaultListing is the pagination configuration of post listings:
// five posts per page, newest reading first.
func DefaultListing() pagination.Config {
	return pagination.DefaultConfig().
		WithDefaultOrder([]string{entity.PostFieldStartDate + "_DESC", entity.PostFieldID + "_DESC"})
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Service) listing() pagination.Config {
	if s.Listing.DefaultTake <= 0 {
		return DefaultListing()
	}
	return s.Listing
}

// pageRequest fills in defaults and rejects malformed order or take values
// before any SQL is built.
func (s *Service) pageRequest(req pagination.Request) (pagination.Request, error) {
	cfg := s.listing()
	req = req.WithDefaults(cfg)
	if err := req.Validate(cfg); err != nil {
		return req, err
	}
	return req, nil
}

// ListPublic returns one page of public posts from every user.
func (s *Service) ListPublic(ctx context.Context, req pagination.Request) (*repository.PostPage, error) {
	req, err := s.pageRequest(req)
	if err != nil {
		return nil, fmt.Errorf("list public posts: %w", err)
	}
	page, err := s.Repos.Posts.ListPage(ctx, repository.PostFilter{}, req)
	if err != nil {
		return nil, fmt.Errorf("list public posts: %w", err)
	}
	return page, nil
}

// ListByUser returns one page of the posts written by ownerID. Private posts
// are included only when the viewer is the owner.
func (s *Service) ListByUser(ctx context.Context, ownerID, viewerID uuid.UUID, req pagination.Request) (*repository.PostPage, error) {
	if ownerID == uuid.Nil {
		return nil, ErrUserNotFound
	}
	req, err := s.pageRequest(req)
	if err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}

	filter := repository.PostFilter{
		UserID:         &ownerID,
		IncludePrivate: viewerID != uuid.Nil && viewerID == ownerID,
	}
	page, err := s.Repos.Posts.ListPage(ctx, filter, req)
	if err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}
	return page, nil
}

// Get returns a single post with its relations.
// Returns ErrInvalidPostID if the ID is not positive.
// Returns ErrPostNotFound if the post does not exist.
// Returns ErrForbidden if the post is private and the viewer is not its owner.
func (s *Service) Get(ctx context.Context, viewerID uuid.UUID, id int64) (*entity.PostDetail, error) {
	if id <= 0 {
		return nil, ErrInvalidPostID
	}

	detail, err := s.Repos.Posts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if detail == nil {
		return nil, ErrPostNotFound
	}
	if !detail.Post.VisibleTo(viewerID) {
		return nil, ErrForbidden
	}
	return detail, nil
}

// ListByBook returns the book with the given ISBN, its author and every
// public post about it.
func (s *Service) ListByBook(ctx context.Context, isbn string) (*entity.BookWithPosts, error) {
	isbn = entity.NormalizeISBN(isbn)
	if isbn == "" {
		return nil, ErrBookNotFound
	}

	book, err := s.Repos.Books.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("list book posts: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	author, err := s.Repos.Authors.Get(ctx, book.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("list book posts: %w", err)
	}
	posts, err := s.Repos.Posts.ListByBook(ctx, book.ISBN)
	if err != nil {
		return nil, fmt.Errorf("list book posts: %w", err)
	}

	result := &entity.BookWithPosts{Book: *book, Posts: posts}
	if author != nil {
		result.Author = *author
	}
	return result, nil
}

// Create stores a new post for userID. The referenced author and book are
// looked up by name and ISBN and created when missing, all in one transaction.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in WriteInput) (*entity.PostDetail, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if err := in.validate(userID); err != nil {
		return nil, err
	}

	var created *entity.PostDetail
	err := retry.WithBackoff(ctx, retry.TxConfig(), func() error {
		return s.Tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repos) error {
			if err := requireUser(ctx, repos.Users, userID); err != nil {
				return err
			}
			book, err := ensureBook(ctx, repos, in.Book)
			if err != nil {
				return err
			}

			post := in.post(userID)
			post.BookISBN = book.ISBN
			if err := repos.Posts.Create(ctx, post); err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			created, err = repos.Posts.Get(ctx, post.ID)
			if err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			if created == nil {
				return fmt.Errorf("create post: %w", ErrPostNotFound)
			}
			return nil
		})
	})
	metrics.RecordPostWrite("create", err)
	if err != nil {
		return nil, err
	}

	s.logger().Info("[create] Post created successfully",
		slog.Int64("post_id", created.Post.ID),
		slog.String("user_id", userID.String()),
		slog.String("book_isbn", created.Book.ISBN))
	return created, nil
}

// Update replaces the content of post id. Only the owner may update a post.
// Returns ErrPostNotFound if the post does not exist.
// Returns ErrForbidden if userID did not write the post.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, id int64, in WriteInput) (*entity.PostDetail, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if id <= 0 {
		return nil, ErrInvalidPostID
	}
	if err := in.validate(userID); err != nil {
		return nil, err
	}

	var updated *entity.PostDetail
	err := retry.WithBackoff(ctx, retry.TxConfig(), func() error {
		return s.Tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repos) error {
			if err := requireUser(ctx, repos.Users, userID); err != nil {
				return err
			}
			existing, err := repos.Posts.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("update post: %w", err)
			}
			if existing == nil {
				return ErrPostNotFound
			}
			if !existing.Post.IsOwnedBy(userID) {
				return ErrForbidden
			}

			book, err := ensureBook(ctx, repos, in.Book)
			if err != nil {
				return err
			}

			post := in.post(userID)
			post.ID = id
			post.BookISBN = book.ISBN
			if err := repos.Posts.Update(ctx, post); err != nil {
				if errors.Is(err, entity.ErrNotFound) {
					return ErrPostNotFound
				}
				return fmt.Errorf("update post: %w", err)
			}
			updated, err = repos.Posts.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("update post: %w", err)
			}
			if updated == nil {
				return ErrPostNotFound
			}
			return nil
		})
	})
	metrics.RecordPostWrite("update", err)
	if err != nil {
		return nil, err
	}

	s.logger().Info("[update] Post updated",
		slog.Int64("post_id", id),
		slog.String("user_id", userID.String()))
	return updated, nil
}

// Delete soft-deletes post id on behalf of its owner.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	if id <= 0 {
		return ErrInvalidPostID
	}

	existing, err := s.Repos.Posts.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if existing == nil {
		return ErrPostNotFound
	}
	if !existing.Post.IsOwnedBy(userID) {
		return ErrForbidden
	}

	err = s.Repos.Posts.SoftDelete(ctx, id)
	metrics.RecordPostWrite("delete", err)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}

	s.logger().Info("[remove] Post deleted", slog.Int64("post_id", id))
	return nil
}

func requireUser(ctx context.Context, users repository.UserRepository, id uuid.UUID) error {
	user, err := users.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

// ensureBook returns the book with in.ISBN, creating it and its author first
// when the catalogue does not know it yet.
func ensureBook(ctx context.Context, repos repository.Repos, in BookInput) (*entity.Book, error) {
	isbn := entity.NormalizeISBN(in.ISBN)

	book, err := repos.Books.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book != nil {
		return book, nil
	}

	author, err := ensureAuthor(ctx, repos.Authors, in.Author)
	if err != nil {
		return nil, err
	}
	book = &entity.Book{
		ISBN:         isbn,
		Title:        strings.TrimSpace(in.Title),
		AuthorID:     author.ID,
		PublishedAt:  in.PublishedAt,
		ThumbnailURL: in.ThumbnailURL,
	}
	if err := repos.Books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	metrics.RecordBookCreated()
	return book, nil
}

func ensureAuthor(ctx context.Context, authors repository.AuthorRepository, name string) (*entity.Author, error) {
	name = strings.TrimSpace(name)
	author, err := authors.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	if author != nil {
		return author, nil
	}
	author = &entity.Author{Name: name}
	if err := authors.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	metrics.RecordAuthorCreated()
	return author, nil
}

func (in WriteInput) post(userID uuid.UUID) *entity.Post {
	return &entity.Post{
		UserID:    userID,
		BookISBN:  entity.NormalizeISBN(in.Book.ISBN),
		Title:     in.Title,
		Content:   in.Content,
		Rating:    in.Rating,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		IsPrivate: in.IsPrivate,
	}
}

func (in WriteInput) validate(userID uuid.UUID) error {
	if err := in.post(userID).Validate(); err != nil {
		return err
	}
	book := entity.Book{ISBN: in.Book.ISBN, Title: in.Book.Title, ThumbnailURL: in.Book.ThumbnailURL}
	if err := book.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(in.Book.Author) == "" {
		return &entity.ValidationError{Field: "book.author", Message: "author is required"}
	}
	return nil
}
