package book

import (
	"context"
	"fmt"

	"book-journal/internal/domain/entity"
	"book-journal/internal/repository"
)

// Service provides book catalogue use cases.
type Service struct {
	Repo repository.BookRepository
}

// Get returns the book stored under isbn. A "ISBN10 ISBN13" pair is looked
// up by its ISBN-13.
// Returns ErrBookNotFound if the catalogue has no such book.
func (s *Service) Get(ctx context.Context, isbn string) (*entity.Book, error) {
	isbn = entity.NormalizeISBN(isbn)
	if isbn == "" {
		return nil, ErrBookNotFound
	}

	book, err := s.Repo.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// List returns every catalogued book, most recently added first.
func (s *Service) List(ctx context.Context) ([]entity.Book, error) {
	books, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}
