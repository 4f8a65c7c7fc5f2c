package repository

import (
	"context"

	"github.com/google/uuid"

	"book-journal/internal/domain/entity"
)

type BookRepository interface {
	// GetByISBN returns (nil, nil) if no book has the isbn.
	GetByISBN(ctx context.Context, isbn string) (*entity.Book, error)
	// List returns every book, most recently added first.
	List(ctx context.Context) ([]entity.Book, error)
	Create(ctx context.Context, book *entity.Book) error
}

type AuthorRepository interface {
	// GetByName returns (nil, nil) if no author has the name.
	GetByName(ctx context.Context, name string) (*entity.Author, error)
	Get(ctx context.Context, id int64) (*entity.Author, error)
	Create(ctx context.Context, author *entity.Author) error
}

type UserRepository interface {
	// Get returns (nil, nil) if the user does not exist.
	Get(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type ProfileRepository interface {
	// Get returns (nil, nil) if the user has no profile.
	Get(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	// Update applies the non-nil fields of patch and returns the stored
	// profile, or (nil, nil) if the user has none. A taken nickname
	// yields entity.ErrConflict.
	Update(ctx context.Context, userID uuid.UUID, patch entity.ProfilePatch) (*entity.Profile, error)
}

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Posts    PostRepository
	Books    BookRepository
	Authors  AuthorRepository
	Users    UserRepository
	Profiles ProfileRepository
}

// Transactor runs fn inside a database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}
